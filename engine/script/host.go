// Package script runs element behavior scripts on a goja VM and executes
// the declarative command lists bound to element events.
package script

import (
	"fmt"
	"strings"
	"time"

	"github.com/dop251/goja"
	"github.com/hubastard/groveui/engine/core"
	"github.com/hubastard/groveui/engine/ui"
)

var logger = core.NewLogger("script")

// DefaultBudget bounds one script call before the VM is interrupted.
const DefaultBudget = 250 * time.Millisecond

// Host owns the VM shared by every script of one UI manager. It is not safe
// for concurrent use.
type Host struct {
	vm        *goja.Runtime
	factories map[string]goja.Callable
	snippets  map[string]goja.Callable
	reporter  ui.Reporter
	Budget    time.Duration
}

func NewHost(reporter ui.Reporter) *Host {
	vm := goja.New()
	vm.SetFieldNameMapper(goja.UncapFieldNameMapper())
	h := &Host{
		vm:        vm,
		factories: map[string]goja.Callable{},
		snippets:  map[string]goja.Callable{},
		reporter:  reporter,
		Budget:    DefaultBudget,
	}
	console := vm.NewObject()
	console.Set("log", func(args ...any) { logger.Info(fmt.Sprint(args...)) })
	console.Set("error", func(args ...any) { logger.Error(fmt.Sprint(args...)) })
	vm.Set("console", console)
	return h
}

// Register compiles a behavior script. The source runs with `this` bound to
// a fresh instance and `params` holding the attachment parameters; it
// defines handlers such as this.onClick = function (event) {...}.
func (h *Host) Register(id, src string) error {
	prog, err := goja.Compile(id, "(function (params) {\n"+src+"\n})", false)
	if err != nil {
		return fmt.Errorf("compile script %s: %w", id, err)
	}
	v, err := h.vm.RunProgram(prog)
	if err != nil {
		return fmt.Errorf("load script %s: %w", id, err)
	}
	fn, ok := goja.AssertFunction(v)
	if !ok {
		return fmt.Errorf("load script %s: not a function", id)
	}
	h.factories[id] = fn
	return nil
}

// Set exposes a Go value to every script as a global.
func (h *Host) Set(name string, v any) error { return h.vm.Set(name, v) }

type instance struct {
	id  string
	obj *goja.Object
}

type dispatcher struct {
	h         *Host
	owner     ui.Element
	instances []instance
}

// Attach instantiates the enabled scripts of owner. It returns nil when
// nothing was attached.
func (h *Host) Attach(owner ui.Element, refs []ui.ScriptRef) ui.ScriptDispatcher {
	d := &dispatcher{h: h, owner: owner}
	for _, ref := range refs {
		if !ref.Enabled {
			continue
		}
		fn, ok := h.factories[ref.ID]
		if !ok {
			logger.Warn("unknown script", "script", ref.ID, "element", owner.Node().Name())
			continue
		}
		obj := h.vm.NewObject()
		obj.Set("element", wrap(owner))
		params := ref.Params
		if params == nil {
			params = map[string]any{}
		}
		if _, err := h.call(fn, obj, h.vm.ToValue(params)); err != nil {
			h.report(owner, "create", ref.ID, err)
			continue
		}
		d.instances = append(d.instances, instance{id: ref.ID, obj: obj})
	}
	if len(d.instances) == 0 {
		return nil
	}
	return d
}

// Emit calls the matching on<Type> handler of every instance.
func (d *dispatcher) Emit(typ string, ev core.Event) {
	name := handlerName(typ)
	for _, inst := range d.instances {
		fn, ok := goja.AssertFunction(inst.obj.Get(name))
		if !ok {
			continue
		}
		if _, err := d.h.call(fn, inst.obj, d.h.eventValue(ev)); err != nil {
			d.h.report(d.owner, typ, inst.id, err)
		}
	}
}

// handlerName maps an event type to its handler, "mousedownLB" to
// "onMousedownLB".
func handlerName(typ string) string {
	if typ == "" {
		return "on"
	}
	return "on" + strings.ToUpper(typ[:1]) + typ[1:]
}

// Eval runs a snippet with element and event in scope. Snippets are
// compiled once per distinct source.
func (h *Host) Eval(owner ui.Element, ev core.Event, src string) (goja.Value, error) {
	fn, ok := h.snippets[src]
	if !ok {
		prog, err := goja.Compile("snippet", "(function (element, event) {\n"+src+"\n})", false)
		if err != nil {
			return nil, fmt.Errorf("compile snippet: %w", err)
		}
		v, err := h.vm.RunProgram(prog)
		if err != nil {
			return nil, fmt.Errorf("load snippet: %w", err)
		}
		if fn, ok = goja.AssertFunction(v); !ok {
			return nil, fmt.Errorf("load snippet: not a function")
		}
		h.snippets[src] = fn
	}
	return h.call(fn, goja.Undefined(), h.vm.ToValue(wrap(owner)), h.eventValue(ev))
}

// call runs fn and interrupts the VM once the budget is spent.
func (h *Host) call(fn goja.Callable, this goja.Value, args ...goja.Value) (goja.Value, error) {
	if h.Budget > 0 {
		t := time.AfterFunc(h.Budget, func() { h.vm.Interrupt("script budget exceeded") })
		defer func() {
			t.Stop()
			h.vm.ClearInterrupt()
		}()
	}
	return fn(this, args...)
}

func (h *Host) eventValue(ev core.Event) goja.Value {
	if ev == nil {
		return goja.Undefined()
	}
	if s, ok := ev.(core.EventSignal); ok {
		if e, ok := s.Source.(ui.Element); ok {
			obj := h.vm.NewObject()
			obj.Set("source", wrap(e))
			return obj
		}
	}
	return h.vm.ToValue(ev)
}

func (h *Host) report(owner ui.Element, event, source string, err error) {
	n := owner.Node()
	e := &Error{Element: n.Name(), Preset: n.PresetID(), Event: event, Source: "script " + source, Err: err}
	if h.reporter != nil {
		h.reporter.Report(e)
		return
	}
	logger.Error("script failed", "err", e)
}
