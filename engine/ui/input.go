package ui

import (
	"math"
	"slices"

	"github.com/hubastard/groveui/engine/core"
	"github.com/hubastard/groveui/engine/geom"
)

// HandleEvent routes one device event into the tree and reports whether
// the UI consumed it. Unconsumed events should reach the scene.
func (m *Manager) HandleEvent(ev core.Event) bool {
	bubbles := m.svc.Bubbles
	m.input.Handle(ev)
	m.event = ev
	bubbles.Start()

	switch e := ev.(type) {
	case core.EventKey:
		if t := m.inputFocus(); t != nil {
			if t.handleKey(e) {
				bubbles.Stop()
			}
			break
		}
		if e.Down {
			m.keyDown(e)
		} else {
			m.keyUp(e)
		}
	case core.EventChar:
		if t := m.inputFocus(); t != nil {
			t.insertText(string(e.Rune), e)
			bubbles.Stop()
		}
	case core.EventMouseMove:
		m.lastMouse = e
		m.mouseMove(e)
	case core.EventMouseButton:
		m.lastMouse = e
		if e.Down {
			m.mouseDown(e)
		} else {
			m.mouseUp(e)
		}
	case core.EventMouseLeave:
		if hover := m.el(m.eventHover); hover != nil {
			m.eventHover = 0
			hover.Emit("mouseleave", e, true)
		}
	case core.EventDoubleClick:
		if t := m.el(m.eventTarget); t != nil {
			t.Emit("doubleclick", e, true)
			m.updateBubbleState(t)
		}
	case core.EventScroll:
		if hover := m.el(m.eventHover); hover != nil {
			if t, ok := hover.(*TextBox); ok {
				t.wheel(e)
			}
			hover.Emit("wheel", e, true)
			m.updateBubbleState(hover)
		}
	case core.EventTouch:
		m.touch(e)
	case core.EventGamepadButton:
		m.gamepadButton(e)
	case core.EventGamepadStick:
		m.gamepadStick(e)
	case core.EventVisibility:
		for _, id := range slices.Clone(m.videos) {
			if v, ok := m.el(id).(*Video); ok {
				v.onVisibility(e.Hidden)
			}
		}
	}

	m.event = nil
	consumed := !bubbles.Get()
	m.svc.Deferred.Flush()
	return consumed
}

// updateBubbleState keeps an event that landed on a real element away from
// the scene.
func (m *Manager) updateBubbleState(target Element) {
	if target != nil && target != Element(m.root) {
		m.svc.Bubbles.Stop()
	}
}

func (m *Manager) keyDown(e core.EventKey) {
	if len(m.focuses) == 0 {
		return
	}
	bubbles := m.svc.Bubbles
	switch e.Key {
	case core.KeyUp:
		bubbles.Stop()
		m.pressDirKey(dirUp)
	case core.KeyDown:
		bubbles.Stop()
		m.pressDirKey(dirDown)
	case core.KeyLeft:
		bubbles.Stop()
		m.pressDirKey(dirLeft)
	case core.KeyRight:
		bubbles.Stop()
		m.pressDirKey(dirRight)
	case core.KeyEnter, core.KeyNumpadEnter, core.KeySpace:
		bubbles.Stop()
		m.pressConfirmKey()
	case core.KeyEscape:
		m.cancelFocus()
	}
	// The focus may have changed above.
	if f := m.Focus(); f != nil {
		f.Emit("keydown", e, false)
	}
}

func (m *Manager) keyUp(e core.EventKey) {
	focused := len(m.focuses) != 0
	var d direction
	switch e.Key {
	case core.KeyUp:
		d = dirUp
	case core.KeyDown:
		d = dirDown
	case core.KeyLeft:
		d = dirLeft
	case core.KeyRight:
		d = dirRight
	}
	if d != dirNone {
		if focused {
			m.svc.Bubbles.Stop()
		}
		m.releaseDirKey(d)
	}
	if f := m.Focus(); f != nil {
		f.Emit("keyup", e, false)
	}
}

// cancelFocus pops the top focus when it allows cancellation.
func (m *Manager) cancelFocus() bool {
	if f := m.Focus(); f != nil && f.Node().focusCancelable {
		m.svc.Bubbles.Stop()
		m.RemoveLatestFocus()
		return true
	}
	return false
}

func (m *Manager) mouseDown(e core.EventMouseButton) {
	if e.Button == core.MouseRight && m.cancelFocus() {
		return
	}
	target := m.ElementAt(e.X, e.Y)
	target.Emit("mousedown", e, true)
	m.updateBubbleState(target)

	m.svc.Bubbles.Start()
	switch e.Button {
	case core.MouseLeft:
		m.eventTarget = target.Node().id
		if t, ok := target.(*TextBox); ok {
			t.Focus()
		} else {
			m.setInputFocus(nil)
		}
		target.Emit("mousedownLB", e, true)
	case core.MouseRight:
		target.Emit("mousedownRB", e, true)
	}
	m.updateBubbleState(target)
}

func (m *Manager) mouseUp(e core.EventMouseButton) {
	if e.Button == core.MouseLeft {
		for _, id := range slices.Clone(m.pressed) {
			if b := asButton(m.el(id)); b != nil {
				b.behavior.onMouseUpLB()
			}
		}
		m.pressed = m.pressed[:0]
	}

	target := m.ElementAt(e.X, e.Y)
	target.Emit("mouseup", e, true)
	m.updateBubbleState(target)

	bubbles := m.svc.Bubbles
	bubbles.Start()
	switch e.Button {
	case core.MouseLeft:
		target.Emit("mouseupLB", e, true)
		if t := m.el(m.eventTarget); t != nil && t.Node().Contains(target) {
			bubbles.Push(true)
			target.Emit("click", e, true)
			bubbles.Pop()
		}
		m.eventTarget = 0
	case core.MouseRight:
		target.Emit("mouseupRB", e, true)
	}
	m.updateBubbleState(target)
}

// mouseMove sends mouseleave up the old hover chain and mouseenter up the
// new one, stopping at their common ancestor.
func (m *Manager) mouseMove(e core.EventMouseMove) {
	last := m.el(m.eventHover)
	hover := m.ElementAt(e.X, e.Y)
	if last != hover {
		if last != nil && !last.Node().Contains(hover) {
			for el := last; el != nil; {
				el.Emit("mouseleave", e, false)
				if el = el.Node().Parent(); el != nil && el.Node().Contains(hover) {
					break
				}
			}
		}
		if !hover.Node().Contains(last) {
			for el := hover; el != nil; {
				el.Emit("mouseenter", e, false)
				if el = el.Node().Parent(); el != nil && el.Node().Contains(last) {
					break
				}
			}
		}
		m.eventHover = hover.Node().id
	}
	hover.Emit("mousemove", e, true)
	m.updateBubbleState(hover)
}

func (m *Manager) touch(e core.EventTouch) {
	bubbles := m.svc.Bubbles
	switch e.Phase {
	case core.TouchStart:
		for _, t := range e.Touches {
			target := m.ElementAt(t.X, t.Y)
			if id := target.Node().id; !slices.Contains(m.touched, id) {
				m.touched = append(m.touched, id)
				bubbles.Start()
				target.Emit("touchstart", e, true)
				m.updateBubbleState(target)
			}
		}
	case core.TouchMove, core.TouchEnd:
		typ := "touchmove"
		if e.Phase == core.TouchEnd {
			typ = "touchend"
		}
		for _, id := range slices.Clone(m.touched) {
			if target := m.el(id); target != nil {
				bubbles.Start()
				target.Emit(typ, e, true)
				m.updateBubbleState(target)
			}
		}
		if e.Phase == core.TouchEnd {
			m.touched = m.touched[:0]
		}
	}
}

func gamepadDirection(b core.GamepadButton) direction {
	switch b {
	case core.GamepadUp:
		return dirUp
	case core.GamepadDown:
		return dirDown
	case core.GamepadLeft:
		return dirLeft
	case core.GamepadRight:
		return dirRight
	}
	return dirNone
}

func (m *Manager) gamepadButton(e core.EventGamepadButton) {
	if len(m.focuses) == 0 {
		return
	}
	bubbles := m.svc.Bubbles
	d := gamepadDirection(e.Button)
	switch {
	case d != dirNone:
		bubbles.Stop()
		if e.Down {
			m.pressDirKey(d)
		} else {
			m.releaseDirKey(d)
		}
	case e.Down && e.Button == core.GamepadA:
		bubbles.Stop()
		m.pressConfirmKey()
	case e.Down && e.Button == core.GamepadB:
		m.cancelFocus()
	}
	typ := "gamepadbuttonpress"
	if !e.Down {
		typ = "gamepadbuttonrelease"
	}
	if f := m.Focus(); f != nil {
		f.Emit(typ, e, false)
	}
}

// stickDirection maps a stick angle to the nearest of four directions.
// Angles are clockwise degrees from +X, so 90 points down.
func stickDirection(angle float64) direction {
	switch int(math.Floor(geom.ModDegrees(angle+45) / 90)) {
	case 0:
		return dirRight
	case 1:
		return dirDown
	case 2:
		return dirLeft
	}
	return dirUp
}

func (m *Manager) gamepadStick(e core.EventGamepadStick) {
	typ := "gamepadrightstickchange"
	if e.Stick == core.StickLeft {
		typ = "gamepadleftstickchange"
		if e.Angle != -1 {
			if d := stickDirection(e.Angle); m.stickDir != d {
				if m.stickDir != dirNone {
					m.releaseDirKey(m.stickDir)
				}
				m.stickDir = d
				m.pressDirKey(d)
			}
		} else if m.stickDir != dirNone {
			m.releaseDirKey(m.stickDir)
			m.stickDir = dirNone
		}
	}
	if f := m.Focus(); f != nil {
		f.Emit(typ, e, false)
	}
}
