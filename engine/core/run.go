package core

import (
	"runtime"
	"time"
)

const (
	// TickRate is the fixed update frequency.
	TickRate = 60
	// maxSteps bounds catch-up updates after a stall.
	maxSteps = 10
)

var logger = NewLogger("core")

// Run wires the platform window + renderer and executes the main loop.
func Run(app App, cfg Config, newWindow func(Config) (Window, error), newRenderer func(Window, Config) (Renderer, error)) error {
	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()

	win, err := newWindow(cfg)
	if err != nil {
		return err
	}
	rend, err := newRenderer(win, cfg)
	if err != nil {
		return err
	}
	defer rend.Shutdown()

	w, h := win.FramebufferSize()
	rend.Resize(w, h)

	eng := newEngine(win, rend)
	win.SetEventCallback(func(ev Event) { eng.dispatch(app, ev) })
	app.OnStart(eng)

	l := newLoop(time.Now())
	for !win.ShouldClose() {
		win.PollEvents()
		steps, alpha := l.advance(time.Now())
		for range steps {
			eng.update(app, l.dt())
		}
		if !eng.hidden {
			eng.render(app, cfg.ClearColor, alpha)
		}
		win.SwapBuffers()
	}

	eng.Layers.ForEachReverse(func(l Layer) bool { l.OnDetach(eng); return false })
	app.OnShutdown(eng)
	logger.Info("engine exit", "uptime", eng.Uptime().Round(time.Millisecond))
	return nil
}

func newEngine(win Window, rend Renderer) *Engine {
	return &Engine{
		Window:   win,
		Renderer: rend,
		Input:    NewInput(),
		Layers:   &LayerStack{},
		Deferred: NewDeferred(),
		start:    time.Now(),
	}
}

// dispatch routes one window event: the app first, then layers top down
// until one handles it. Zero-sized resizes (minimized windows) are dropped.
func (e *Engine) dispatch(app App, ev Event) {
	switch v := ev.(type) {
	case EventResize:
		if v.W < 1 || v.H < 1 {
			return
		}
		e.Renderer.Resize(v.W, v.H)
	case EventVisibility:
		e.hidden = v.Hidden
	}
	e.Input.Handle(ev)
	app.OnEvent(e, ev)
	e.Layers.ForEachReverse(func(l Layer) bool { return l.OnEvent(e, ev) })
	e.Deferred.Flush()
}

func (e *Engine) update(app App, dt float64) {
	app.OnUpdate(e, dt)
	e.Layers.ForEach(func(l Layer) { l.OnUpdate(e, dt) })
	e.Deferred.Flush()
}

func (e *Engine) render(app App, clear [4]float32, alpha float64) {
	e.Renderer.Clear(clear[0], clear[1], clear[2], clear[3])
	app.OnRender(e, alpha)
	e.Layers.ForEach(func(l Layer) { l.OnRender(e, alpha) })
}

// loop accumulates wall time into fixed ticks.
type loop struct {
	tick  time.Duration
	prev  time.Time
	accum time.Duration
}

func newLoop(now time.Time) *loop {
	return &loop{tick: time.Second / TickRate, prev: now}
}

func (l *loop) dt() float64 { return l.tick.Seconds() }

// advance returns how many ticks are due at now and the interpolation factor
// for the remainder. Time beyond maxSteps ticks is dropped.
func (l *loop) advance(now time.Time) (steps int, alpha float64) {
	l.accum += now.Sub(l.prev)
	l.prev = now
	steps = int(l.accum / l.tick)
	if steps > maxSteps {
		steps = maxSteps
		l.accum = 0
	} else {
		l.accum -= time.Duration(steps) * l.tick
	}
	return steps, float64(l.accum) / float64(l.tick)
}
