package core

import "strconv"

type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyEnter
	KeyNumpadEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeySpace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyShiftLeft
	KeyShiftRight
	KeyControlLeft
	KeyControlRight
	KeyAltLeft
	KeyAltRight
	KeyMinus
	KeyPeriod
	KeyNumpadSubtract
	KeyNumpadDecimal
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	keyCount
)

var keyCodes = [keyCount]string{
	KeyEscape:         "Escape",
	KeyEnter:          "Enter",
	KeyNumpadEnter:    "NumpadEnter",
	KeyTab:            "Tab",
	KeyBackspace:      "Backspace",
	KeyDelete:         "Delete",
	KeyInsert:         "Insert",
	KeySpace:          "Space",
	KeyUp:             "ArrowUp",
	KeyDown:           "ArrowDown",
	KeyLeft:           "ArrowLeft",
	KeyRight:          "ArrowRight",
	KeyHome:           "Home",
	KeyEnd:            "End",
	KeyPageUp:         "PageUp",
	KeyPageDown:       "PageDown",
	KeyShiftLeft:      "ShiftLeft",
	KeyShiftRight:     "ShiftRight",
	KeyControlLeft:    "ControlLeft",
	KeyControlRight:   "ControlRight",
	KeyAltLeft:        "AltLeft",
	KeyAltRight:       "AltRight",
	KeyMinus:          "Minus",
	KeyPeriod:         "Period",
	KeyNumpadSubtract: "NumpadSubtract",
	KeyNumpadDecimal:  "NumpadDecimal",
}

func init() {
	for k := KeyF1; k <= KeyF12; k++ {
		keyCodes[k] = "F" + strconv.Itoa(int(k-KeyF1)+1)
	}
	for k := Key0; k <= Key9; k++ {
		keyCodes[k] = "Digit" + string(rune('0'+k-Key0))
	}
	for k := KeyA; k <= KeyZ; k++ {
		keyCodes[k] = "Key" + string(rune('A'+k-KeyA))
	}
}

// Code returns the physical key code name ("ArrowUp", "KeyA", "Digit1").
// Scripts and command lists match keys by this name.
func (k Key) Code() string {
	if k <= KeyUnknown || k >= keyCount {
		return ""
	}
	return keyCodes[k]
}

func (k Key) String() string { return k.Code() }
