//go:build profile

package profiler

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestBuildProfileBalancesScopes(t *testing.T) {
	names := []string{"frame", "update", "draw"}
	evs := []event{
		{at: 1_000, frame: 0, open: true},
		{at: 2_000, frame: 1, open: true},
		{at: 3_000, frame: 1},
		{at: 3_500, frame: 2},
		{at: 4_000, frame: 2, open: true},
	}
	doc, err := buildProfile(evs, names)
	if err != nil {
		t.Fatal(err)
	}
	got := doc.Profiles[0].Events
	// The stray close is dropped; draw and frame are closed at the end.
	if len(got) != 6 {
		t.Fatalf("events = %+v", got)
	}
	depth := 0
	for _, e := range got {
		if e.Type == "O" {
			depth++
		} else {
			depth--
		}
		if depth < 0 {
			t.Fatal("close before open")
		}
	}
	if depth != 0 {
		t.Fatalf("unbalanced depth %d", depth)
	}
	if doc.Profiles[0].EndValue != 3 {
		t.Fatalf("end = %d, want 3", doc.Profiles[0].EndValue)
	}
	if len(doc.Shared.Frames) != 3 || doc.Shared.Frames[2].Name != "draw" {
		t.Fatalf("frames = %+v", doc.Shared.Frames)
	}
}

func TestRingKeepsNewest(t *testing.T) {
	var r recorder
	r.init(2)
	for i := range 3 {
		r.push(event{frame: i})
	}
	got, _ := r.snapshot()
	if len(got) != 2 || got[0].frame != 1 || got[1].frame != 2 {
		t.Fatalf("snapshot = %+v", got)
	}
}

func TestDumpWritesCapture(t *testing.T) {
	Init(64)
	func() {
		defer Start("outer")()
		Start("inner")()
	}()
	path := filepath.Join(t.TempDir(), "capture.json")
	if err := Dump(path); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc ssFile
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatal(err)
	}
	if n := len(doc.Profiles[0].Events); n != 4 {
		t.Fatalf("events = %d, want 4", n)
	}
}
