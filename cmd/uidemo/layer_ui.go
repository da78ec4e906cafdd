package main

import (
	"github.com/hubastard/groveui/engine/core"
	"github.com/hubastard/groveui/engine/gfx/renderer2d"
	"github.com/hubastard/groveui/engine/profiler"
	"github.com/hubastard/groveui/engine/ui"
)

// uiLayer drives one UI manager: the engine tick in, input routing, and the
// tree drawn through the canvas.
type uiLayer struct {
	manager *ui.Manager
	canvas  *renderer2d.Canvas
}

func (l *uiLayer) OnAttach(e *core.Engine) {}
func (l *uiLayer) OnDetach(e *core.Engine) {}

func (l *uiLayer) OnUpdate(e *core.Engine, dt float64) {
	defer profiler.Start("ui.Update")()
	l.manager.Update(dt * 1000)
}

func (l *uiLayer) OnRender(e *core.Engine, alpha float64) {
	defer profiler.Start("ui.Draw")()
	l.canvas.Begin()
	l.manager.Draw(l.canvas)
	l.canvas.End()
}

func (l *uiLayer) OnEvent(e *core.Engine, ev core.Event) bool {
	if r, ok := ev.(core.EventResize); ok {
		if r.W < 1 || r.H < 1 {
			return false
		}
		l.canvas.Resize(r.W, r.H)
		l.manager.Resize()
		return false
	}
	return l.manager.HandleEvent(ev)
}
