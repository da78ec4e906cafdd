package platform

import (
	"math"
	"time"

	"github.com/hubastard/groveui/engine/core"
	"github.com/hubastard/groveui/engine/geom"
)

const (
	doubleClickTime     = 300 * time.Millisecond
	doubleClickDistance = 4.0
	// stickDeadzone is the axis magnitude below which a stick is centered.
	stickDeadzone = 0.5
)

// clickTracker detects double clicks from press timestamps.
type clickTracker struct {
	button core.MouseButton
	x, y   float64
	at     time.Time
}

// press records a button press and reports whether it completes a double
// click. A completed double click does not start another one.
func (c *clickTracker) press(b core.MouseButton, x, y float64, now time.Time) bool {
	double := !c.at.IsZero() &&
		c.button == b &&
		now.Sub(c.at) <= doubleClickTime &&
		geom.Dist(c.x, c.y, x, y) <= doubleClickDistance
	if double {
		c.at = time.Time{}
		return true
	}
	c.button, c.x, c.y, c.at = b, x, y, now
	return false
}

type padState struct {
	buttons [core.GamepadButtonCount]bool
	// axes are left X/Y then right X/Y, Y down.
	axes [4]float64
}

// gamepadTracker turns polled gamepad snapshots into events.
type gamepadTracker struct {
	prev    padState
	sectors [2]int
}

func newGamepadTracker() gamepadTracker {
	return gamepadTracker{sectors: [2]int{-1, -1}}
}

func (t *gamepadTracker) update(s padState, emit func(core.Event)) {
	for i, down := range s.buttons {
		if down != t.prev.buttons[i] {
			emit(core.EventGamepadButton{Button: core.GamepadButton(i), Down: down})
		}
	}
	for stick := range t.sectors {
		x, y := s.axes[stick*2], s.axes[stick*2+1]
		angle, sector := -1.0, -1
		if math.Hypot(x, y) >= stickDeadzone {
			angle = geom.ModDegrees(geom.Degrees(math.Atan2(y, x)))
			sector = int(geom.ModDegrees(angle+45) / 90)
		}
		if sector != t.sectors[stick] {
			t.sectors[stick] = sector
			emit(core.EventGamepadStick{Stick: core.Stick(stick), X: x, Y: y, Angle: angle})
		}
	}
	t.prev = s
}
