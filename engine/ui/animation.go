package ui

import "github.com/hubastard/groveui/engine/geom"

// Animation plays a sprite animation centered in the element.
type Animation struct {
	Base
	player       AnimationPlayer
	animation    string
	motion       string
	autoplay     bool
	rotatable    bool
	angle        float64
	initialFrame int
	offsetX      float64
	offsetY      float64
	animationX   float64
	animationY   float64
}

func (m *Manager) newAnimation(n *Node) *Animation {
	d := n.Animation
	if d == nil {
		d = DefaultAnimationData()
	}
	a := &Animation{}
	a.init(m, a, KindAnimation, n)
	a.motion = d.Motion
	a.autoplay = d.Autoplay
	a.rotatable = d.Rotatable
	a.angle = d.Angle
	a.initialFrame = d.Frame
	a.offsetX = d.OffsetX
	a.offsetY = d.OffsetY
	a.SetAnimation(d.Animation)
	a.updaters.Set("player", &animationTicker{a: a})
	a.Emit("create", a.signal(), false)
	return a
}

type animationTicker struct{ a *Animation }

func (t *animationTicker) Update(dt float64) {
	if t.a.player != nil {
		t.a.player.Update(dt)
	}
}

func (a *Animation) Player() AnimationPlayer { return a.player }
func (a *Animation) Animation() string       { return a.animation }

// SetAnimation replaces the player. An unknown id leaves the element empty.
func (a *Animation) SetAnimation(id string) {
	if a.animation == id {
		return
	}
	a.animation = id
	if a.player != nil {
		a.player.Destroy()
		a.player = nil
	}
	if id == "" || a.m.svc.Animations == nil {
		return
	}
	p := a.m.svc.Animations.Open(id)
	if p == nil {
		logger.Warn("animation not found", "id", id, "element", a.name)
		return
	}
	p.SetPaused(!a.autoplay)
	p.SetMotion(a.motion)
	p.SetRotatable(a.rotatable)
	p.SetAngle(geom.Radians(a.angle))
	p.Goto(a.initialFrame)
	// Ends are detected while drawing.
	p.OnEnd(func() {
		a.m.svc.Deferred.Push(func() { a.Emit("ended", a.signal(), false) })
	})
	a.player = p
}

func (a *Animation) Motion() string { return a.motion }

func (a *Animation) SetMotion(v string) {
	if a.motion != v {
		a.motion = v
		if a.player != nil {
			a.player.SetMotion(v)
		}
	}
}

func (a *Animation) Rotatable() bool { return a.rotatable }

func (a *Animation) SetRotatable(v bool) {
	if a.rotatable != v {
		a.rotatable = v
		if a.player != nil {
			a.player.SetRotatable(v)
			a.player.SetAngle(geom.Radians(a.angle))
		}
	}
}

// Angle is in degrees.
func (a *Animation) Angle() float64 { return a.angle }

func (a *Animation) SetAngle(v float64) {
	if a.angle != v {
		a.angle = v
		if a.player != nil {
			a.player.SetAngle(geom.Radians(v))
		}
	}
}

// Frame is the current frame index, -1 without a player.
func (a *Animation) Frame() int {
	if a.player == nil {
		return -1
	}
	return a.player.Index()
}

func (a *Animation) SetFrame(i int) {
	if a.player != nil {
		a.player.Goto(i)
	}
}

func (a *Animation) Play() {
	if a.player != nil {
		a.player.SetPaused(false)
	}
}

func (a *Animation) Pause() {
	if a.player != nil {
		a.player.SetPaused(true)
	}
}

func (a *Animation) Offset() (x, y float64) { return a.offsetX, a.offsetY }

func (a *Animation) SetOffset(x, y float64) {
	if a.offsetX == x && a.offsetY == y {
		return
	}
	a.offsetX, a.offsetY = x, y
	if a.connected {
		a.calculateAnimationPosition()
	}
}

func (a *Animation) calculateAnimationPosition() {
	a.animationX = a.frame.X + a.frame.Width/2 + a.offsetX
	a.animationY = a.frame.Y + a.frame.Height/2 + a.offsetY
}

func (a *Animation) Draw(r Renderer) {
	if !a.visible {
		return
	}
	if a.player != nil {
		a.player.Draw(r, a.animationX, a.animationY, a.frame.Opacity, a.frame.Matrix)
	}
	a.drawChildren(r)
}

func (a *Animation) Resize() {
	if w := a.windowParent(); w != nil {
		w.RequestResizing()
		return
	}
	a.calculatePosition()
	a.calculateAnimationPosition()
	a.resizeChildren()
}

func (a *Animation) Destroy() {
	if a.destroyed {
		return
	}
	if a.player != nil {
		a.player.Destroy()
		a.player = nil
	}
	a.Base.Destroy()
}
