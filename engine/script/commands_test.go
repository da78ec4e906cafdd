package script

import (
	"testing"

	"github.com/hubastard/groveui/engine/core"
	"github.com/hubastard/groveui/engine/ui"
)

func TestCommandsRunSynchronously(t *testing.T) {
	e := newEnv(t)
	other := e.add(t, "other", nil)
	cmds := &ui.Commands{List: []ui.Command{
		cmd("hide", map[string]any{"element": "other"}),
		cmd("set", map[string]any{"props": map[string]any{"x": 30.0}}),
		cmd("script", map[string]any{"code": `element.setAttr("ran", event.source.name());`}),
	}}
	el := e.add(t, "box", map[string]*ui.Commands{"autorun": cmds})

	e.m.Update(16)
	if other.Node().Visible() {
		t.Fatal("hide should target the named element")
	}
	if el.Node().X() != 30 {
		t.Fatalf("x = %v, want 30", el.Node().X())
	}
	if v, _ := el.Node().Attr("ran"); v != "box" {
		t.Fatalf("script attr = %#v", v)
	}
	if len(el.Node().Updaters().Items()) != 0 {
		t.Fatal("finished lists should not leave a handler")
	}
}

func TestWaitSuspendsList(t *testing.T) {
	e := newEnv(t)
	cmds := &ui.Commands{List: []ui.Command{
		cmd("wait", map[string]any{"duration": 100.0}),
		cmd("hide", nil),
	}}
	el := e.add(t, "box", map[string]*ui.Commands{"click": cmds})

	el.Emit("click", nil, false)
	if !el.Node().Visible() {
		t.Fatal("hide ran before the wait")
	}
	e.m.Update(60)
	if !el.Node().Visible() {
		t.Fatal("hide ran early")
	}
	e.m.Update(40)
	if el.Node().Visible() {
		t.Fatal("hide should run once the wait elapsed")
	}
	e.m.Update(16)
	if len(el.Node().Updaters().Items()) != 0 {
		t.Fatal("finished handler should drop itself")
	}
}

func TestUnregisterFinishesRunningList(t *testing.T) {
	e := newEnv(t)
	cmds := &ui.Commands{List: []ui.Command{
		cmd("wait", map[string]any{"duration": 50.0}),
		cmd("hide", nil),
	}}
	el := e.add(t, "box", nil)
	el.Node().Register("click", cmds)
	el.Emit("click", nil, false)

	el.Node().Unregister("click")
	e.m.Update(100)
	if !el.Node().Visible() {
		t.Fatal("unregistered list kept running")
	}
}

func TestUnknownCommandIsReportedAndSkipped(t *testing.T) {
	e := newEnv(t)
	cmds := &ui.Commands{List: []ui.Command{cmd("teleport", nil), cmd("hide", nil)}}
	el := e.add(t, "box", map[string]*ui.Commands{"click": cmds})

	el.Emit("click", nil, false)
	if el.Node().Visible() {
		t.Fatal("commands after a failure should still run")
	}
	if len(e.reports.errs) != 1 {
		t.Fatalf("reports = %v", e.reports.errs)
	}
}

func TestStopPropagation(t *testing.T) {
	e := newEnv(t)
	parent := e.add(t, "parent", map[string]*ui.Commands{
		"click": {List: []ui.Command{cmd("log", map[string]any{"message": "parent"}), cmd("hide", nil)}},
	})
	n := ui.NewNode("container")
	n.Name = "child"
	n.Transform.Width, n.Transform.Height = 10, 10
	n.Events["click"] = &ui.Commands{List: []ui.Command{cmd("stop-propagation", nil)}}
	child := e.m.NewElement(n)
	parent.Node().AppendChild(child)

	e.m.Services().Bubbles.Start()
	child.Emit("click", core.EventSignal{Source: child}, true)
	if !parent.Node().Visible() {
		t.Fatal("parent handled a stopped event")
	}
}
