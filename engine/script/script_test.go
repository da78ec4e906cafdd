package script

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hubastard/groveui/engine/core"
	"github.com/hubastard/groveui/engine/ui"
)

type reports struct{ errs []error }

func (r *reports) Report(err error) { r.errs = append(r.errs, err) }

type env struct {
	m       *ui.Manager
	host    *Host
	runner  *Runner
	reports *reports
}

func newEnv(t *testing.T) *env {
	t.Helper()
	rep := &reports{}
	host := NewHost(rep)
	runner := NewRunner(host, rep)
	m := ui.New(ui.Services{Commands: runner, Scripts: host, Reporter: rep}, ui.DefaultConfig())
	return &env{m: m, host: host, runner: runner, reports: rep}
}

func (e *env) add(t *testing.T, name string, events map[string]*ui.Commands, scripts ...ui.ScriptRef) ui.Element {
	t.Helper()
	n := ui.NewNode("container")
	n.Name = name
	n.Transform.Width = 100
	n.Transform.Height = 100
	for typ, cmds := range events {
		n.Events[typ] = cmds
	}
	n.Scripts = scripts
	el := e.m.NewElement(n)
	e.m.Root().AppendChild(el)
	return el
}

// number normalizes the numeric types goja exports.
func number(v any) float64 {
	switch n := v.(type) {
	case int64:
		return float64(n)
	case float64:
		return n
	}
	return -1
}

func cmd(id string, params map[string]any) ui.Command { return ui.Command{ID: id, Params: params} }

func TestScriptHandlersReceiveEvents(t *testing.T) {
	e := newEnv(t)
	err := e.host.Register("counter", `
		var self = this;
		this.count = params.start || 0;
		this.onClick = function (event) { self.count++; self.element.setAttr("count", self.count); };
		this.onMousedownLB = function (event) { self.element.setAttr("x", event.x); };
	`)
	if err != nil {
		t.Fatal(err)
	}
	el := e.add(t, "box", nil, ui.ScriptRef{ID: "counter", Enabled: true, Params: map[string]any{"start": 10}})

	el.Emit("click", core.EventSignal{Source: el}, false)
	el.Emit("click", core.EventSignal{Source: el}, false)
	if v, _ := el.Node().Attr("count"); number(v) != 12 {
		t.Fatalf("count = %#v, want 12", v)
	}
	el.Emit("mousedownLB", core.EventMouseButton{Button: core.MouseLeft, Down: true, X: 42, Y: 7}, false)
	if v, _ := el.Node().Attr("x"); number(v) != 42 {
		t.Fatalf("x = %#v, want 42", v)
	}
	if len(e.reports.errs) != 0 {
		t.Fatalf("errors = %v", e.reports.errs)
	}
}

func TestAttachSkipsDisabledAndUnknownScripts(t *testing.T) {
	e := newEnv(t)
	if err := e.host.Register("mark", `this.onClick = function () { this.element.setAttr("hit", true); };`); err != nil {
		t.Fatal(err)
	}
	el := e.add(t, "box", nil,
		ui.ScriptRef{ID: "mark", Enabled: false},
		ui.ScriptRef{ID: "nope", Enabled: true},
	)
	if d := e.host.Attach(el, []ui.ScriptRef{{ID: "mark"}}); d != nil {
		t.Fatal("disabled scripts should attach nothing")
	}
	el.Emit("click", nil, false)
	if _, ok := el.Node().Attr("hit"); ok {
		t.Fatal("disabled script ran")
	}
}

func TestScriptErrorsAreReported(t *testing.T) {
	e := newEnv(t)
	if err := e.host.Register("broken", `this.onClick = function () { missing(); };`); err != nil {
		t.Fatal(err)
	}
	el := e.add(t, "box", nil, ui.ScriptRef{ID: "broken", Enabled: true})
	el.Emit("click", nil, false)

	if len(e.reports.errs) != 1 {
		t.Fatalf("reports = %v", e.reports.errs)
	}
	var se *Error
	if !errors.As(e.reports.errs[0], &se) || se.Element != "box" || se.Event != "click" {
		t.Fatalf("report = %v", e.reports.errs[0])
	}
}

func TestRegisterRejectsBadSource(t *testing.T) {
	e := newEnv(t)
	if err := e.host.Register("bad", `this.onClick = function ( {`); err == nil {
		t.Fatal("syntax error should fail to register")
	}
}

func TestScriptBudgetInterrupts(t *testing.T) {
	e := newEnv(t)
	e.host.Budget = 20 * time.Millisecond
	if err := e.host.Register("spin", `this.onClick = function () { for (;;) {} };`); err != nil {
		t.Fatal(err)
	}
	el := e.add(t, "box", nil, ui.ScriptRef{ID: "spin", Enabled: true})
	el.Emit("click", nil, false)
	if len(e.reports.errs) != 1 || !strings.Contains(e.reports.errs[0].Error(), "budget") {
		t.Fatalf("reports = %v", e.reports.errs)
	}

	if _, err := e.host.Eval(el, nil, `return 1 + 1;`); err != nil {
		t.Fatalf("VM should recover after an interrupt: %v", err)
	}
}

func TestHandlerName(t *testing.T) {
	tests := map[string]string{
		"click":       "onClick",
		"mousedownLB": "onMousedownLB",
		"":            "on",
	}
	for in, want := range tests {
		if got := handlerName(in); got != want {
			t.Fatalf("handlerName(%q) = %q, want %q", in, got, want)
		}
	}
}
