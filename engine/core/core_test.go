package core

import (
	"math"
	"slices"
	"testing"
	"time"
)

func TestDeferredFlushRunsNestedPushes(t *testing.T) {
	d := NewDeferred()
	var got []int
	d.Push(func() {
		got = append(got, 1)
		d.Push(func() { got = append(got, 3) })
	})
	d.Push(func() { got = append(got, 2) })
	d.Flush()

	if want := []int{1, 2, 3}; !slices.Equal(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	if d.Len() != 0 {
		t.Fatalf("queue not drained: %d", d.Len())
	}
}

func TestDeferredReentrantFlush(t *testing.T) {
	d := NewDeferred()
	var got []int
	d.Push(func() {
		got = append(got, 1)
		d.Push(func() { got = append(got, 3) })
		d.Flush()
	})
	d.Push(func() { got = append(got, 2) })
	d.Flush()

	if want := []int{1, 3, 2}; !slices.Equal(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	if d.Len() != 0 {
		t.Fatalf("queue not drained: %d", d.Len())
	}
}

func TestBubblesScopes(t *testing.T) {
	b := NewBubbles()
	if !b.Get() {
		t.Fatal("fresh bubbles should propagate")
	}
	b.Stop()
	b.Push(true)
	if !b.Get() {
		t.Fatal("pushed scope should start enabled")
	}
	b.Stop()
	b.Pop()
	if b.Get() {
		t.Fatal("outer scope should keep its stopped state")
	}
	b.Pop()
	b.Start()
	if !b.Get() {
		t.Fatal("Start should re-arm the bottom scope")
	}
}

type recLayer struct {
	name    string
	handled bool
	log     *[]string
}

func (l *recLayer) OnAttach(*Engine)          {}
func (l *recLayer) OnDetach(*Engine)          {}
func (l *recLayer) OnUpdate(*Engine, float64) {}
func (l *recLayer) OnRender(*Engine, float64) {}
func (l *recLayer) OnEvent(_ *Engine, _ Event) bool {
	*l.log = append(*l.log, l.name)
	return l.handled
}

func TestLayerStackTopFirstStopsOnHandled(t *testing.T) {
	var log []string
	ls := &LayerStack{}
	ls.Push(&recLayer{name: "scene", log: &log})
	ls.Push(&recLayer{name: "ui", handled: true, log: &log})

	ls.ForEachReverse(func(l Layer) bool { return l.OnEvent(nil, EventMouseMove{}) })

	if want := []string{"ui"}; !slices.Equal(log, want) {
		t.Fatalf("dispatch = %v, want %v", log, want)
	}
}

func TestKeyCodes(t *testing.T) {
	tests := map[string]struct {
		key  Key
		want string
	}{
		"arrow":   {KeyUp, "ArrowUp"},
		"letter":  {KeyQ, "KeyQ"},
		"digit":   {Key7, "Digit7"},
		"fkey":    {KeyF11, "F11"},
		"unknown": {KeyUnknown, ""},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.key.Code(); got != tt.want {
				t.Fatalf("Code() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInputReleasesOnHidden(t *testing.T) {
	in := NewInput()
	in.Handle(EventKey{Key: KeyA, Down: true})
	in.Handle(EventMouseButton{Button: MouseLeft, Down: true})
	in.Handle(EventVisibility{Hidden: true})
	if in.IsKeyDown(KeyA) || in.IsButtonDown(MouseLeft) {
		t.Fatal("hidden window should release held input")
	}
}

type recApp struct{ events []Event }

func (a *recApp) OnStart(*Engine)             {}
func (a *recApp) OnUpdate(*Engine, float64)   {}
func (a *recApp) OnRender(*Engine, float64)   {}
func (a *recApp) OnEvent(_ *Engine, ev Event) { a.events = append(a.events, ev) }
func (a *recApp) OnShutdown(*Engine)          {}

type recRenderer struct {
	Renderer
	resized [][2]int
}

func (r *recRenderer) Resize(w, h int) { r.resized = append(r.resized, [2]int{w, h}) }

func TestDispatch(t *testing.T) {
	var log []string
	rend := &recRenderer{}
	app := &recApp{}
	e := newEngine(nil, rend)
	e.Layers.Push(&recLayer{name: "scene", log: &log})
	e.Layers.Push(&recLayer{name: "ui", log: &log})
	flushed := false
	e.Deferred.Push(func() { flushed = true })

	e.dispatch(app, EventResize{W: 0, H: 300})
	if len(app.events) != 0 || len(rend.resized) != 0 {
		t.Fatal("zero-sized resize should be dropped")
	}
	e.dispatch(app, EventResize{W: 640, H: 480})
	if len(rend.resized) != 1 || rend.resized[0] != [2]int{640, 480} {
		t.Fatalf("resized = %v", rend.resized)
	}
	if want := []string{"ui", "scene"}; !slices.Equal(log, want) {
		t.Fatalf("dispatch = %v, want %v", log, want)
	}
	if !flushed {
		t.Fatal("deferred work should run after dispatch")
	}
	e.dispatch(app, EventVisibility{Hidden: true})
	if !e.Hidden() {
		t.Fatal("visibility event should mark the engine hidden")
	}
}

func TestLoopAdvance(t *testing.T) {
	t0 := time.Unix(0, 0)
	tick := time.Second / TickRate
	tests := map[string]struct {
		elapsed time.Duration
		steps   int
		alpha   float64
	}{
		"idle":      {0, 0, 0},
		"half tick": {tick / 2, 0, 0.5},
		"two ticks": {2 * tick, 2, 0},
		"stall":     {time.Second, maxSteps, 0},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			l := newLoop(t0)
			steps, alpha := l.advance(t0.Add(tt.elapsed))
			if steps != tt.steps || math.Abs(alpha-tt.alpha) > 1e-6 {
				t.Fatalf("advance = %d, %v; want %d, %v", steps, alpha, tt.steps, tt.alpha)
			}
		})
	}
}

func TestPopLayerDetaches(t *testing.T) {
	e := newEngine(nil, nil)
	l := &countLayer{}
	e.PushLayer(l)
	if got, ok := e.PopLayer(); !ok || got != Layer(l) {
		t.Fatal("PopLayer should return the pushed layer")
	}
	if l.attached != 1 || l.detached != 1 {
		t.Fatalf("attach/detach = %d/%d", l.attached, l.detached)
	}
	if _, ok := e.PopLayer(); ok {
		t.Fatal("empty stack should report false")
	}
}

type countLayer struct{ attached, detached int }

func (l *countLayer) OnAttach(*Engine)            { l.attached++ }
func (l *countLayer) OnDetach(*Engine)            { l.detached++ }
func (l *countLayer) OnUpdate(*Engine, float64)   {}
func (l *countLayer) OnRender(*Engine, float64)   {}
func (l *countLayer) OnEvent(*Engine, Event) bool { return false }
