package ui

import (
	"github.com/hubastard/groveui/engine/core"
	"github.com/hubastard/groveui/engine/geom"
)

// Root is the top of the tree. It spans the canvas in UI pixels and is
// always connected.
type Root struct {
	Base
}

func newRoot(m *Manager) *Root {
	r := &Root{}
	r.init(m, r, KindRoot, NewNode("root"))
	r.connected = true
	return r
}

func (r *Root) Draw(rd Renderer) { r.drawChildren(rd) }

func (r *Root) Resize() {
	w, h := 0, 0
	if rd := r.m.svc.Renderer; rd != nil {
		w, h = rd.Size()
	}
	scale := r.m.scale
	m := geom.Identity()
	m.Scale(scale, scale)
	r.frame = Frame{
		Width:   float64(w) / scale,
		Height:  float64(h) / scale,
		Matrix:  m,
		Opacity: 1,
	}
	r.resizeChildren()
}

func (r *Root) Emit(string, core.Event, bool) {}

// Container groups children without drawing anything itself.
type Container struct {
	Base
}

func (m *Manager) newContainer(n *Node) *Container {
	c := &Container{}
	c.init(m, c, KindContainer, n)
	c.Emit("create", c.signal(), false)
	return c
}
