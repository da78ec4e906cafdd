package core

// Event model.
type Event interface{ isEvent() }

type EventCloseRequested struct{}

func (EventCloseRequested) isEvent() {}

type EventResize struct{ W, H int }

func (EventResize) isEvent() {}

type EventKey struct {
	Key    Key
	Down   bool
	Repeat bool
	Mods   Mod
}

func (EventKey) isEvent() {}

// EventChar carries text input after keyboard layout and IME processing.
type EventChar struct{ Rune rune }

func (EventChar) isEvent() {}

type EventMouseMove struct{ X, Y float64 }

func (EventMouseMove) isEvent() {}

type EventMouseButton struct {
	Button MouseButton
	Down   bool
	X, Y   float64
	// Synthetic marks clicks generated by keyboard or gamepad confirmation.
	Synthetic bool
}

func (EventMouseButton) isEvent() {}

// EventMouseLeave fires when the cursor leaves the window.
type EventMouseLeave struct{}

func (EventMouseLeave) isEvent() {}

type EventDoubleClick struct {
	Button MouseButton
	X, Y   float64
}

func (EventDoubleClick) isEvent() {}

type EventScroll struct{ Xoff, Yoff float64 }

func (EventScroll) isEvent() {}

type TouchPhase int

const (
	TouchStart TouchPhase = iota
	TouchMove
	TouchEnd
)

type Touch struct {
	ID   int
	X, Y float64
}

// EventTouch lists the touch points that changed in this phase.
type EventTouch struct {
	Phase   TouchPhase
	Touches []Touch
}

func (EventTouch) isEvent() {}

type EventGamepadButton struct {
	Button GamepadButton
	Down   bool
}

func (EventGamepadButton) isEvent() {}

type Stick int

const (
	StickLeft Stick = iota
	StickRight
)

// EventGamepadStick reports a stick direction change. Angle is in degrees,
// clockwise from +X with Y down, or -1 when the stick is centered.
type EventGamepadStick struct {
	Stick Stick
	X, Y  float64
	Angle float64
}

func (EventGamepadStick) isEvent() {}

// EventVisibility fires when the window is minimized/restored or loses/regains focus.
type EventVisibility struct{ Hidden bool }

func (EventVisibility) isEvent() {}

// EventSignal is a non-device event raised by the runtime itself (focus,
// autorun, destroy). Source is the object that raised it.
type EventSignal struct{ Source any }

func (EventSignal) isEvent() {}

type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
)

type Mod int

const (
	ModNone  Mod = 0
	ModShift Mod = 1 << 0
	ModCtrl  Mod = 1 << 1
	ModAlt   Mod = 1 << 2
	ModSuper Mod = 1 << 3
)

type GamepadButton int

const (
	GamepadA GamepadButton = iota
	GamepadB
	GamepadX
	GamepadY
	GamepadLB
	GamepadRB
	GamepadBack
	GamepadStart
	GamepadGuide
	GamepadLS
	GamepadRS
	GamepadUp
	GamepadRight
	GamepadDown
	GamepadLeft
	GamepadButtonCount
)

var gamepadNames = [...]string{"A", "B", "X", "Y", "LB", "RB", "Back", "Start", "Guide", "LS", "RS", "Up", "Right", "Down", "Left"}

func (b GamepadButton) String() string {
	if b < 0 || int(b) >= len(gamepadNames) {
		return ""
	}
	return gamepadNames[b]
}
