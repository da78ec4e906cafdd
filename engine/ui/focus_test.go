package ui

import (
	"testing"

	"github.com/hubastard/groveui/engine/core"
)

// menu builds a focusable container with buttons at the given rects.
func (env *testEnv) menu(name string, rects map[string][4]float64, order ...string) Element {
	n := node("container", name, 0, 0, 800, 600, "focus", "blur")
	for _, b := range order {
		r := rects[b]
		n.Children = append(n.Children, node("button", b, r[0], r[1], r[2], r[3], "click", "select", "deselect"))
	}
	return env.add(n)
}

func (env *testEnv) button(name string) *Button {
	return env.m.Get(name).(*Button)
}

func (env *testEnv) selectedName(focus Element) string {
	if b := env.m.SelectedButton(focus); b != nil {
		return b.Name()
	}
	return ""
}

var grid = map[string][4]float64{
	"a": {0, 0, 100, 40},
	"b": {0, 100, 100, 40},
	"c": {200, 0, 100, 40},
	"d": {0, 200, 100, 40},
}

func TestAddFocusSelectsFirstButton(t *testing.T) {
	env := newTestEnv(t)
	menu := env.menu("menu", grid, "a", "b", "c")

	env.m.AddFocus(menu)
	env.m.AddFocus(menu)
	if got := len(env.m.Focuses()); got != 1 {
		t.Fatalf("focus stack = %d, want 1", got)
	}
	if got := env.selectedName(menu); got != "a" {
		t.Fatalf("selected = %q, want a", got)
	}
	if env.commands.count("menu", "focus") != 1 || !env.commands.has("a", "select") {
		t.Fatalf("events = %v", env.commands.calls)
	}
	if got := env.m.IndexOfSelectedButton(menu); got != 0 {
		t.Fatalf("index = %d", got)
	}
}

func TestDirectionalNavigation(t *testing.T) {
	tests := map[string]struct {
		from string
		key  core.Key
		want string
	}{
		"down":          {"a", core.KeyDown, "b"},
		"right":         {"a", core.KeyRight, "c"},
		"right from b":  {"b", core.KeyRight, "c"},
		"up from d":     {"d", core.KeyUp, "b"},
		"left no match": {"a", core.KeyLeft, "a"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(t)
			menu := env.menu("menu", grid, "a", "b", "c", "d")
			env.m.AddFocus(menu)
			env.m.SelectButton(env.button(tt.from))

			env.m.HandleEvent(core.EventKey{Key: tt.key, Down: true})
			if got := env.selectedName(menu); got != tt.want {
				t.Fatalf("selected = %q, want %q", got, tt.want)
			}
			if tt.from != tt.want && env.button(tt.from).State() != ButtonNormal {
				t.Fatal("previous button should be restored")
			}
		})
	}
}

func TestNavigationTieGoesToLaterButton(t *testing.T) {
	env := newTestEnv(t)
	rects := map[string][4]float64{
		"mid":   {100, 0, 100, 40},
		"left":  {0, 100, 100, 40},
		"right": {200, 100, 100, 40},
	}
	menu := env.menu("menu", rects, "mid", "left", "right")
	env.m.AddFocus(menu)

	env.m.HandleEvent(core.EventKey{Key: core.KeyDown, Down: true})
	if got := env.selectedName(menu); got != "right" {
		t.Fatalf("selected = %q, want right", got)
	}
}

func TestHeldDirectionBlocksOthersAndRepeats(t *testing.T) {
	env := newTestEnv(t)
	column := map[string][4]float64{
		"a": grid["a"],
		"b": grid["b"],
		"c": grid["c"],
		"d": grid["d"],
		"e": {0, 300, 100, 40},
	}
	menu := env.menu("menu", column, "a", "b", "c", "d", "e")
	env.m.AddFocus(menu)

	if !env.m.HandleEvent(core.EventKey{Key: core.KeyDown, Down: true}) {
		t.Fatal("arrow keys should be consumed while a focus exists")
	}
	env.m.HandleEvent(core.EventKey{Key: core.KeyRight, Down: true})
	if got := env.selectedName(menu); got != "b" {
		t.Fatalf("selected = %q, want b", got)
	}

	env.m.Update(499)
	if got := env.selectedName(menu); got != "b" {
		t.Fatalf("turbo fired early: %q", got)
	}
	env.m.Update(1)
	if got := env.selectedName(menu); got != "d" {
		t.Fatalf("after delay = %q, want d", got)
	}
	env.m.Update(99)
	if got := env.selectedName(menu); got != "d" {
		t.Fatalf("repeat fired early: %q", got)
	}
	env.m.Update(1)
	if got := env.selectedName(menu); got != "e" {
		t.Fatalf("after interval = %q, want e", got)
	}

	env.m.HandleEvent(core.EventKey{Key: core.KeyDown})
	env.m.HandleEvent(core.EventKey{Key: core.KeyUp, Down: true})
	if got := env.selectedName(menu); got != "d" {
		t.Fatalf("up after release = %q, want d", got)
	}
	env.m.Update(500)
	if got := env.selectedName(menu); got != "b" {
		t.Fatalf("up repeat = %q, want b", got)
	}
}

func TestConfirmClicksSelectedButton(t *testing.T) {
	env := newTestEnv(t)
	menu := env.menu("menu", grid, "a", "b")
	env.m.AddFocus(menu)

	for _, k := range []core.Key{core.KeyEnter, core.KeySpace} {
		if !env.m.HandleEvent(core.EventKey{Key: k, Down: true}) {
			t.Fatalf("%v not consumed", k)
		}
	}
	env.m.HandleEvent(core.EventGamepadButton{Button: core.GamepadA, Down: true})
	if got := env.commands.count("a", "click"); got != 3 {
		t.Fatalf("clicks = %d, want 3", got)
	}
}

func TestEscapeCancelsOnlyCancelableFocus(t *testing.T) {
	env := newTestEnv(t)
	menu := env.menu("menu", grid, "a")
	env.m.AddFocus(menu)

	env.m.HandleEvent(core.EventKey{Key: core.KeyEscape, Down: true})
	if env.m.Focus() != menu {
		t.Fatal("non-cancelable focus was removed")
	}
	menu.Node().SetFocusCancelable(true)
	env.m.HandleEvent(core.EventKey{Key: core.KeyEscape, Down: true})
	if env.m.Focus() != nil {
		t.Fatal("cancelable focus should be removed")
	}
	if env.button("a").Selected() {
		t.Fatal("buttons of a removed focus should be restored")
	}
	if !env.commands.has("menu", "blur") {
		t.Fatal("blur not emitted")
	}
}

func TestLowerFocusButtonsAreProtected(t *testing.T) {
	env := newTestEnv(t)
	menu := env.menu("menu", grid, "a", "b")
	popup := env.menu("popup", map[string][4]float64{"ok": {400, 400, 100, 40}}, "ok")
	popup.Node().SetPointerEvents(PointerSkipped)
	env.m.AddFocus(menu)
	env.m.AddFocus(popup)

	b := env.button("b")
	if !b.IsProtected() || env.button("ok").IsProtected() {
		t.Fatal("only buttons under lower focuses are protected")
	}
	env.m.HandleEvent(core.EventMouseMove{X: 50, Y: 120})
	env.m.HandleEvent(core.EventMouseButton{Button: core.MouseLeft, Down: true, X: 50, Y: 120})
	env.m.HandleEvent(core.EventMouseButton{Button: core.MouseLeft, X: 50, Y: 120})
	if b.State() != ButtonNormal || env.commands.has("b", "click") {
		t.Fatalf("protected button reacted: state %v", b.State())
	}
	if got := env.selectedName(menu); got != "a" {
		t.Fatalf("lower focus selection = %q, want a", got)
	}

	env.m.RemoveFocus(popup)
	if b.IsProtected() {
		t.Fatal("protection should end with the popup")
	}
	if env.button("ok").State() != ButtonNormal {
		t.Fatal("popup buttons should be restored")
	}
}

func TestDescendantFocusMode(t *testing.T) {
	env := newTestEnv(t)
	n := node("container", "panel", 0, 0, 800, 600)
	row := node("container", "row", 0, 0, 800, 100)
	row.Children = []*Node{node("button", "deep", 0, 0, 100, 40)}
	n.Children = []*Node{row, node("button", "top", 0, 200, 100, 40)}
	panel := env.add(n)

	env.m.AddFocus(panel)
	if got := env.selectedName(panel); got != "top" {
		t.Fatalf("child mode selected %q", got)
	}
	env.m.RemoveFocus(panel)
	panel.Node().SetFocusMode(FocusDescendantButtons)
	env.m.AddFocus(panel)
	if got := env.selectedName(panel); got != "deep" {
		t.Fatalf("descendant mode selected %q", got)
	}
}

func TestDestroyedFocusLeavesStack(t *testing.T) {
	env := newTestEnv(t)
	menu := env.menu("menu", grid, "a")
	env.m.AddFocus(menu)
	menu.Destroy()
	if env.m.Focus() != nil || len(env.m.Focuses()) != 0 {
		t.Fatal("destroyed focus still on the stack")
	}
}
