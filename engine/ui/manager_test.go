package ui

import (
	"encoding/json"
	"errors"
	"testing"
)

const mainUI = `{
	"id": "main",
	"nodes": [
		{
			"class": "button",
			"presetId": "p-ok",
			"name": "ok",
			"enabled": true,
			"content": "OK",
			"events": {"click": [{"id": "play-sound"}]},
			"scripts": [{"id": "pulse", "enabled": true}],
			"transform": {"width": 120, "height": 40, "opacity": 1, "scaleX": 1, "scaleY": 1}
		},
		{
			"class": "reference",
			"presetId": "r-ok",
			"prefabId": "p-ok",
			"synchronous": true,
			"enabled": true,
			"events": {"hover": [{"id": "log"}]},
			"scripts": [{"id": "pulse", "enabled": false}, {"id": "shake", "enabled": true}],
			"transform": {"x": 40, "y": 8, "width": 999, "opacity": 1, "scaleX": 1, "scaleY": 1}
		},
		{
			"class": "container",
			"presetId": "p-panel",
			"name": "panel",
			"enabled": true,
			"children": [
				{"class": "reference", "presetId": "r-bad", "prefabId": "missing", "enabled": true},
				{"class": "text", "presetId": "p-off", "name": "off", "enabled": false}
			]
		}
	]
}`

func loadMain(t *testing.T, env *testEnv) *File {
	t.Helper()
	var f File
	if err := json.Unmarshal([]byte(mainUI), &f); err != nil {
		t.Fatal(err)
	}
	env.m.LoadFiles(&f)
	return &f
}

func TestLoadFilesDecodesKindData(t *testing.T) {
	env := newTestEnv(t)
	loadMain(t, env)

	ok, found := env.m.Preset("p-ok")
	if !found || ok.Button == nil {
		t.Fatal("button preset missing")
	}
	if ok.Button.Content != "OK" || ok.Button.Size != 16 {
		t.Fatalf("button data = %+v", ok.Button)
	}
	if cmds := ok.Events["click"]; cmds == nil || len(cmds.List) != 1 || cmds.List[0].ID != "play-sound" {
		t.Fatalf("click commands = %+v", ok.Events["click"])
	}
}

func TestReferencesFlattenToPrefabCopies(t *testing.T) {
	env := newTestEnv(t)
	f := loadMain(t, env)

	ref, found := env.m.Preset("r-ok")
	if !found || ref.Class != "button" || ref.ReferenceID != "r-ok" {
		t.Fatalf("reference = %+v", ref)
	}
	if ref.Events["click"] == nil || ref.Events["hover"] == nil {
		t.Fatal("reference should merge its events over the prefab's")
	}
	if ref.Transform.X != 40 || ref.Transform.Y != 8 || ref.Transform.Width != 120 {
		t.Fatalf("synchronous transform = %+v", ref.Transform)
	}
	if len(ref.Scripts) != 2 || ref.Scripts[0].Enabled || ref.Scripts[1].ID != "shake" {
		t.Fatalf("scripts = %+v", ref.Scripts)
	}
	if f.Nodes[1] != ref {
		t.Fatal("file tree should hold the flattened node")
	}

	if _, found := env.m.Preset("r-bad"); found {
		t.Fatal("invalid reference should be dropped")
	}
	if got := len(f.Nodes[2].Children); got != 1 {
		t.Fatalf("panel children = %d, want 1", got)
	}
}

func TestLoadCreatesEnabledNodes(t *testing.T) {
	env := newTestEnv(t)
	loadMain(t, env)

	els, err := env.m.Load("main")
	if err != nil {
		t.Fatal(err)
	}
	if len(els) != 3 {
		t.Fatalf("loaded %d elements, want 3", len(els))
	}
	if env.m.Latest() != els[2] {
		t.Fatal("latest should be the last loaded element")
	}
	if els[2].Node().ChildCount() != 0 || env.m.Get("off") != nil {
		t.Fatal("disabled nodes should not be created")
	}
	if els[0].Node().Connected() {
		t.Fatal("Load should not attach elements")
	}
}

func TestAddByPresetAndReference(t *testing.T) {
	env := newTestEnv(t)
	loadMain(t, env)

	e, err := env.m.Add("r-ok")
	if err != nil {
		t.Fatal(err)
	}
	if !e.Node().Connected() || env.m.Get("r-ok") != e {
		t.Fatal("reference element should be attached and indexed")
	}
	if e.Node().X() != 40 {
		t.Fatalf("x = %v, want 40", e.Node().X())
	}
	if _, ok := e.(*Button); !ok {
		t.Fatalf("element is %T, want *Button", e)
	}
}

func TestUnknownIDs(t *testing.T) {
	env := newTestEnv(t)
	loadMain(t, env)

	tests := map[string]struct {
		run  func() error
		want error
	}{
		"ui": {
			run:  func() error { _, err := env.m.Load("nope"); return err },
			want: ErrInvalidUI,
		},
		"preset": {
			run:  func() error { _, err := env.m.CreateElement("nope"); return err },
			want: ErrInvalidPreset,
		},
		"add": {
			run:  func() error { _, err := env.m.Add("r-bad"); return err },
			want: ErrInvalidPreset,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestResetDestroysTree(t *testing.T) {
	env := newTestEnv(t)
	menu := env.menu("menu", grid, "a", "b")
	env.m.AddFocus(menu)
	env.m.AddPointerEventRoot(menu)

	env.m.Reset()
	if env.m.Root().ChildCount() != 0 || env.m.Focus() != nil {
		t.Fatal("reset left elements or focuses")
	}
	if env.m.PointerEventRoot() != Element(env.m.Root()) {
		t.Fatal("reset should clear pointer event roots")
	}
	if env.m.Get("a") != nil {
		t.Fatal("destroyed buttons still indexed")
	}
}

func TestSetScaleReprintsTexts(t *testing.T) {
	env := newTestEnv(t)
	env.add(node("text", "label", 0, 0, 100, 20))
	env.m.Update(16)

	env.m.SetScale(2)
	if env.printers.scale != 2 || env.m.Scale() != 2 {
		t.Fatalf("scale = %v", env.printers.scale)
	}
	env.m.SetScale(0)
	if env.m.Scale() != 2 {
		t.Fatal("non-positive scale should be ignored")
	}
}
