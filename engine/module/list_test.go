package module

import (
	"testing"

	"github.com/hubastard/groveui/engine/core"
)

type counter struct{ n int }

func (c *counter) Update(float64) { c.n++ }

func TestListSetReplacesInPlace(t *testing.T) {
	var l List[Updater]
	a, b, c := &counter{}, &counter{}, &counter{}
	l.Add(a)
	l.Set("k", b)
	l.Set("k", c)

	if l.Len() != 2 {
		t.Fatalf("Len = %d, want 2", l.Len())
	}
	if l.At(1) != Updater(c) {
		t.Fatal("keyed slot should hold the replacement at the same index")
	}
	if got, _ := l.Get("k"); got != Updater(c) {
		t.Fatal("Get should return the replacement")
	}
	if l.Contains(b) {
		t.Fatal("replaced module still present")
	}
}

func TestListDeleteDelay(t *testing.T) {
	tests := map[string]struct {
		rebind   bool
		wantLen  int
		wantKeep bool
	}{
		"removes after flush":  {rebind: false, wantLen: 0},
		"rebound key survives": {rebind: true, wantLen: 1, wantKeep: true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			d := core.NewDeferred()
			var l List[Updater]
			l.Set("move", &counter{})
			l.DeleteDelay("move", d)
			if l.Len() != 1 {
				t.Fatal("removal must wait for the flush")
			}
			if tt.rebind {
				l.Set("move", &counter{})
			}
			d.Flush()
			if l.Len() != tt.wantLen || l.Has("move") != tt.wantKeep {
				t.Fatalf("Len = %d Has = %v", l.Len(), l.Has("move"))
			}
		})
	}
}

func TestUpdaterListReachesAppendedModules(t *testing.T) {
	l := NewUpdaterList()
	late := &counter{}
	l.Add(Func(func(float64) { l.Add(late) }))
	l.Update(16)
	if late.n != 1 {
		t.Fatalf("module appended mid-pass updated %d times, want 1", late.n)
	}
}

func TestUpdaterListNests(t *testing.T) {
	outer, inner := NewUpdaterList(), NewUpdaterList()
	c := &counter{}
	inner.Add(c)
	outer.Set("move", inner)
	outer.Update(16)
	outer.Update(16)
	if c.n != 2 {
		t.Fatalf("nested updates = %d, want 2", c.n)
	}
}

func TestFuncModulesAreDistinct(t *testing.T) {
	var l List[Updater]
	f := Func(func(float64) {})
	g := Func(func(float64) {})
	l.Add(f)
	l.Add(g)
	if !l.Remove(f) || l.Len() != 1 || l.At(0) != Updater(g) {
		t.Fatal("Remove should drop only the matching wrapper")
	}
}
