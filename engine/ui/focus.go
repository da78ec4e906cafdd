package ui

import (
	"math"
	"slices"

	"github.com/hubastard/groveui/engine/core"
	"github.com/hubastard/groveui/engine/geom"
)

const (
	// Buttons further than this from the pressed direction are ignored.
	angleTolerance = math.Pi / 3
	angleWeight    = 1.25
)

func asButton(e Element) *Button {
	if e == nil || e.Node().kind != KindButton {
		return nil
	}
	return e.(*Button)
}

// Focus returns the top of the focus stack, or nil.
func (m *Manager) Focus() Element {
	for i := len(m.focuses) - 1; i >= 0; i-- {
		if e := m.el(m.focuses[i]); e != nil {
			return e
		}
	}
	return nil
}

// Focuses returns the focus stack, bottom first.
func (m *Manager) Focuses() []Element {
	out := make([]Element, 0, len(m.focuses))
	for _, id := range m.focuses {
		if e := m.el(id); e != nil {
			out = append(out, e)
		}
	}
	return out
}

func (m *Manager) isFocus(e Element) bool {
	return e != nil && slices.Contains(m.focuses, e.Node().id)
}

// AddFocus pushes e onto the focus stack and selects its default button.
// Adding an element that is already a focus does nothing.
func (m *Manager) AddFocus(e Element) {
	if e == nil || m.isFocus(e) {
		return
	}
	prev := m.Focus()
	m.focuses = append(m.focuses, e.Node().id)
	if b := m.SelectedButton(prev); b != nil {
		b.updateDisplayMode(false)
	}
	m.SelectDefaultButton()
	e.Emit("focus", e.Node().signal(), false)
}

// RemoveFocus drops e from the focus stack, restoring its buttons.
func (m *Manager) RemoveFocus(e Element) {
	if e == nil {
		return
	}
	i := slices.Index(m.focuses, e.Node().id)
	if i == -1 {
		return
	}
	m.focuses = slices.Delete(m.focuses, i, i+1)
	for _, b := range m.focusedButtons(e, true) {
		b.Restore()
	}
	if b := m.SelectedButton(m.Focus()); b != nil {
		b.updateDisplayMode(false)
	}
	e.Emit("blur", e.Node().signal(), false)
}

func (m *Manager) RemoveLatestFocus() { m.RemoveFocus(m.Focus()) }

func (m *Manager) ResetFocuses() {
	for len(m.focuses) != 0 {
		n := len(m.focuses)
		if e := m.el(m.focuses[n-1]); e != nil {
			m.RemoveFocus(e)
		} else {
			m.focuses = m.focuses[:n-1]
		}
	}
}

// SelectedButton returns the selected button controlled by focus. It is nil
// when focus is not on the focus stack.
func (m *Manager) SelectedButton(focus Element) *Button {
	if !m.isFocus(focus) {
		return nil
	}
	return selected(m.focusedButtons(focus, true))
}

func selected(buttons []*Button) *Button {
	for _, b := range buttons {
		if b.selected {
			return b
		}
	}
	return nil
}

// IndexOfSelectedButton returns the position of the selected button among
// the buttons of focus, or -1.
func (m *Manager) IndexOfSelectedButton(focus Element) int {
	if focus == nil {
		return -1
	}
	buttons := m.focusedButtons(focus, true)
	if b := selected(buttons); b != nil {
		return slices.Index(buttons, b)
	}
	return -1
}

// FocusedButtons lists the buttons the top focus controls.
func (m *Manager) FocusedButtons() []*Button { return m.focusedButtons(nil, false) }

// focusedButtons collects the buttons controlled by focus, depth first.
// Unless allowActive is set, a pressed button empties the result.
func (m *Manager) focusedButtons(focus Element, allowActive bool) []*Button {
	if focus == nil {
		if focus = m.Focus(); focus == nil {
			return nil
		}
	}
	f := focus.Node()
	deep := f.focusMode == FocusDescendantButtons
	var buttons []*Button
	invalid := false
	var fetch func(ids []ID)
	fetch = func(ids []ID) {
		for _, id := range ids {
			if invalid {
				return
			}
			e := m.el(id)
			if e == nil {
				continue
			}
			if b := asButton(e); b != nil {
				if !allowActive && b.state == ButtonActive {
					invalid = true
					return
				}
				buttons = append(buttons, b)
			}
			if deep {
				fetch(e.Node().children)
			}
		}
	}
	fetch(f.children)
	if invalid {
		return nil
	}
	return buttons
}

// restoreRelatedButtons restores the siblings of b under the first focus
// that contains it.
func (m *Manager) restoreRelatedButtons(b *Button) {
	for _, id := range m.focuses {
		f := m.el(id)
		if f != nil && f.Node().Contains(b) {
			m.restoreFocusedButtons(f, b)
			return
		}
	}
}

func (m *Manager) restoreFocusedButtons(focus Element, except *Button) {
	for _, b := range m.focusedButtons(focus, true) {
		if b != except {
			b.Restore()
		}
	}
}

// SelectButton hovers b and restores the other buttons of its focus.
func (m *Manager) SelectButton(b *Button) {
	if b == nil {
		return
	}
	for i := len(m.focuses) - 1; i >= 0; i-- {
		f := m.el(m.focuses[i])
		if f != nil && b.ownedBy(f) {
			m.restoreFocusedButtons(f, b)
			break
		}
	}
	b.Hover(false)
}

// SelectDefaultButton hovers the first button of the top focus unless one
// is already selected.
func (m *Manager) SelectDefaultButton() {
	buttons := m.FocusedButtons()
	if len(buttons) != 0 && selected(buttons) == nil {
		buttons[0].Hover(false)
	}
}

// selectButtonByAngle moves the selection to the nearest button in the
// given screen direction. Costs favor buttons close to the direction axis.
func (m *Manager) selectButtonByAngle(angle float64) {
	buttons := m.FocusedButtons()
	if len(buttons) == 0 {
		return
	}
	cur := selected(buttons)
	if cur == nil {
		buttons[0].Hover(true)
		return
	}
	sx := cur.frame.X + cur.frame.Width/2
	sy := cur.frame.Y + cur.frame.Height/2
	var best *Button
	bestCost := math.Inf(1)
	for _, b := range buttons {
		if b == cur {
			continue
		}
		dx := b.frame.X + b.frame.Width/2
		dy := b.frame.Y + b.frame.Height/2
		da := math.Atan2(dy-sy, dx-sx)
		ra := geom.ModRadians(da - angle)
		if ra > angleTolerance {
			ra = geom.ModRadians(angle - da)
			if ra > angleTolerance {
				continue
			}
		}
		dist := geom.Dist(sx, sy, dx, dy)
		cost := math.Round(dist * (math.Cos(ra) + math.Sin(ra)*angleWeight))
		// Ties go to the later button.
		if cost <= bestCost {
			best, bestCost = b, cost
		}
	}
	if best != nil {
		cur.Restore()
		best.Hover(true)
	}
}

func (m *Manager) selectButtonByDir(d direction) {
	switch d {
	case dirUp:
		m.selectButtonByAngle(-math.Pi / 2)
	case dirDown:
		m.selectButtonByAngle(math.Pi / 2)
	case dirLeft:
		m.selectButtonByAngle(math.Pi)
	case dirRight:
		m.selectButtonByAngle(0)
	}
}

// pressDirKey selects by direction and arms the turbo repeat. Another
// direction is ignored until the held one is released.
func (m *Manager) pressDirKey(d direction) {
	if len(m.focuses) == 0 || m.dirKey != dirNone {
		return
	}
	m.dirKey = d
	m.keyTurbo = false
	m.keyTurboElapsed = 0
	m.selectButtonByDir(d)
}

func (m *Manager) releaseDirKey(d direction) {
	if m.dirKey == d {
		m.dirKey = dirNone
		m.keyTurbo = false
		m.keyTurboElapsed = 0
	}
}

// pressConfirmKey clicks the selected button of the top focus.
func (m *Manager) pressConfirmKey() {
	b := selected(m.FocusedButtons())
	if b == nil {
		return
	}
	x, y := m.input.Mouse()
	b.Emit("click", core.EventMouseButton{Button: core.MouseLeft, X: x, Y: y, Synthetic: true}, false)
}

func (m *Manager) updateKeyTurbo(dt float64) {
	if m.dirKey == dirNone {
		return
	}
	m.keyTurboElapsed += dt
	if !m.keyTurbo {
		if m.keyTurboElapsed >= m.cfg.TurboDelay {
			m.keyTurboElapsed -= m.cfg.TurboDelay
			m.keyTurbo = true
			m.selectButtonByDir(m.dirKey)
		}
		return
	}
	if m.keyTurboElapsed >= m.cfg.TurboInterval {
		m.keyTurboElapsed -= m.cfg.TurboInterval
		m.selectButtonByDir(m.dirKey)
	}
}
