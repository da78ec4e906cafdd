package script

import (
	"errors"
	"fmt"

	"github.com/hubastard/groveui/engine/core"
	"github.com/hubastard/groveui/engine/ui"
)

// Context is what a command sees while it runs.
type Context struct {
	Owner  ui.Element
	Type   string
	Event  core.Event
	Bubble bool
	host   *Host
}

func (c *Context) Manager() *ui.Manager { return c.Owner.Node().Manager() }

// Target resolves the "element" parameter, falling back to the owner.
func (c *Context) Target(params map[string]any) ui.Element {
	if key := stringParam(params, "element", ""); key != "" {
		return c.Manager().Get(key)
	}
	return c.Owner
}

// CommandFunc executes one command. A positive wait suspends the list for
// that many milliseconds.
type CommandFunc func(c *Context, params map[string]any) (wait float64, err error)

// Runner executes command lists. It implements ui.CommandRunner.
type Runner struct {
	host     *Host
	commands map[string]CommandFunc
	reporter ui.Reporter
}

// NewRunner returns a runner with the built-in commands. host may be nil,
// which disables the script command.
func NewRunner(host *Host, reporter ui.Reporter) *Runner {
	r := &Runner{host: host, commands: map[string]CommandFunc{}, reporter: reporter}
	for id, fn := range builtins {
		r.commands[id] = fn
	}
	return r
}

// Register adds or replaces a command.
func (r *Runner) Register(id string, fn CommandFunc) { r.commands[id] = fn }

// Run starts cmds and returns a handler when a command suspended the list.
func (r *Runner) Run(owner ui.Element, cmds *ui.Commands, typ string, ev core.Event, bubble bool) ui.Handler {
	h := &EventHandler{
		r:    r,
		cmds: cmds,
		ctx:  &Context{Owner: owner, Type: typ, Event: ev, Bubble: bubble, host: r.host},
	}
	h.resume()
	if h.finished {
		return nil
	}
	return h
}

// EventHandler is a command list in progress.
type EventHandler struct {
	r        *Runner
	cmds     *ui.Commands
	ctx      *Context
	pc       int
	wait     float64
	finished bool
}

func (h *EventHandler) Commands() *ui.Commands { return h.cmds }
func (h *EventHandler) Finished() bool         { return h.finished }
func (h *EventHandler) Finish()                { h.finished = true }

func (h *EventHandler) Update(dt float64) {
	if h.finished {
		return
	}
	h.wait -= dt
	if h.wait <= 0 {
		h.resume()
	}
}

// resume runs commands until one waits or the list ends. A failing command
// is reported and skipped.
func (h *EventHandler) resume() {
	for h.pc < len(h.cmds.List) && !h.finished {
		cmd := h.cmds.List[h.pc]
		h.pc++
		fn, ok := h.r.commands[cmd.ID]
		if !ok {
			h.r.report(h.ctx, cmd.ID, fmt.Errorf("unknown command %q", cmd.ID))
			continue
		}
		wait, err := fn(h.ctx, cmd.Params)
		if err != nil {
			h.r.report(h.ctx, cmd.ID, err)
			continue
		}
		if wait > 0 {
			h.wait = wait
			return
		}
	}
	h.finished = true
}

func (r *Runner) report(c *Context, id string, err error) {
	n := c.Owner.Node()
	e := &Error{Element: n.Name(), Preset: n.PresetID(), Event: c.Type, Source: "command " + id, Err: err}
	if r.reporter != nil {
		r.reporter.Report(e)
		return
	}
	logger.Error("command failed", "err", e)
}

func stringParam(params map[string]any, key, def string) string {
	if s, ok := params[key].(string); ok {
		return s
	}
	return def
}

func numberParam(params map[string]any, key string, def float64) float64 {
	switch v := params[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return def
}

func boolParam(params map[string]any, key string) bool {
	b, _ := params[key].(bool)
	return b
}

func propsParam(params map[string]any, key string) ui.Props {
	raw, _ := params[key].(map[string]any)
	props := make(ui.Props, len(raw))
	for k, v := range raw {
		if f, ok := v.(float64); ok {
			props[k] = f
		}
	}
	return props
}

var errNoTarget = errors.New("target element not found")

var builtins = map[string]CommandFunc{
	"wait": func(_ *Context, p map[string]any) (float64, error) {
		return numberParam(p, "duration", 0), nil
	},
	"log": func(c *Context, p map[string]any) (float64, error) {
		logger.Info(stringParam(p, "message", ""), "element", c.Owner.Node().Name(), "event", c.Type)
		return 0, nil
	},
	"script": func(c *Context, p map[string]any) (float64, error) {
		if c.host == nil {
			return 0, errors.New("no script host")
		}
		_, err := c.host.Eval(c.Owner, c.Event, stringParam(p, "code", ""))
		return 0, err
	},
	"show": func(c *Context, p map[string]any) (float64, error) {
		e := c.Target(p)
		if e == nil {
			return 0, errNoTarget
		}
		e.Node().Show()
		return 0, nil
	},
	"hide": func(c *Context, p map[string]any) (float64, error) {
		e := c.Target(p)
		if e == nil {
			return 0, errNoTarget
		}
		e.Node().Hide()
		return 0, nil
	},
	"set": func(c *Context, p map[string]any) (float64, error) {
		e := c.Target(p)
		if e == nil {
			return 0, errNoTarget
		}
		e.Node().Set(propsParam(p, "props"))
		return 0, nil
	},
	"move": func(c *Context, p map[string]any) (float64, error) {
		e := c.Target(p)
		if e == nil {
			return 0, errNoTarget
		}
		duration := numberParam(p, "duration", 0)
		e.Node().Move(propsParam(p, "props"), stringParam(p, "easing", "linear"), duration)
		if boolParam(p, "wait") {
			return duration, nil
		}
		return 0, nil
	},
	"destroy": func(c *Context, p map[string]any) (float64, error) {
		e := c.Target(p)
		if e == nil {
			return 0, errNoTarget
		}
		e.Destroy()
		return 0, nil
	},
	"add-focus": func(c *Context, p map[string]any) (float64, error) {
		e := c.Target(p)
		if e == nil {
			return 0, errNoTarget
		}
		if boolParam(p, "cancelable") {
			e.Node().SetFocusCancelable(true)
		}
		c.Manager().AddFocus(e)
		return 0, nil
	},
	"remove-focus": func(c *Context, p map[string]any) (float64, error) {
		e := c.Target(p)
		if e == nil {
			return 0, errNoTarget
		}
		c.Manager().RemoveFocus(e)
		return 0, nil
	},
	"play-se": func(c *Context, p map[string]any) (float64, error) {
		if a := c.Manager().Services().Audio; a != nil {
			a.PlaySE(stringParam(p, "guid", ""))
		}
		return 0, nil
	},
	"stop-propagation": func(c *Context, _ map[string]any) (float64, error) {
		if c.Bubble {
			c.Manager().Services().Bubbles.Stop()
		}
		return 0, nil
	},
	"emit": func(c *Context, p map[string]any) (float64, error) {
		e := c.Target(p)
		if e == nil {
			return 0, errNoTarget
		}
		e.Emit(stringParam(p, "type", ""), core.EventSignal{Source: c.Owner}, false)
		return 0, nil
	},
}
