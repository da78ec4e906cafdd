package platform

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/hubastard/groveui/engine/core"
)

var keyMap = map[glfw.Key]core.Key{
	glfw.KeyEscape:       core.KeyEscape,
	glfw.KeyEnter:        core.KeyEnter,
	glfw.KeyKPEnter:      core.KeyNumpadEnter,
	glfw.KeyTab:          core.KeyTab,
	glfw.KeyBackspace:    core.KeyBackspace,
	glfw.KeyDelete:       core.KeyDelete,
	glfw.KeyInsert:       core.KeyInsert,
	glfw.KeySpace:        core.KeySpace,
	glfw.KeyUp:           core.KeyUp,
	glfw.KeyDown:         core.KeyDown,
	glfw.KeyLeft:         core.KeyLeft,
	glfw.KeyRight:        core.KeyRight,
	glfw.KeyHome:         core.KeyHome,
	glfw.KeyEnd:          core.KeyEnd,
	glfw.KeyPageUp:       core.KeyPageUp,
	glfw.KeyPageDown:     core.KeyPageDown,
	glfw.KeyLeftShift:    core.KeyShiftLeft,
	glfw.KeyRightShift:   core.KeyShiftRight,
	glfw.KeyLeftControl:  core.KeyControlLeft,
	glfw.KeyRightControl: core.KeyControlRight,
	glfw.KeyLeftAlt:      core.KeyAltLeft,
	glfw.KeyRightAlt:     core.KeyAltRight,
	glfw.KeyMinus:        core.KeyMinus,
	glfw.KeyPeriod:       core.KeyPeriod,
	glfw.KeyKPSubtract:   core.KeyNumpadSubtract,
	glfw.KeyKPDecimal:    core.KeyNumpadDecimal,
}

func init() {
	for i := 0; i < 12; i++ {
		keyMap[glfw.KeyF1+glfw.Key(i)] = core.KeyF1 + core.Key(i)
	}
	for i := 0; i < 10; i++ {
		keyMap[glfw.Key0+glfw.Key(i)] = core.Key0 + core.Key(i)
	}
	for i := 0; i < 26; i++ {
		keyMap[glfw.KeyA+glfw.Key(i)] = core.KeyA + core.Key(i)
	}
}

func translateKey(k glfw.Key) core.Key {
	if ck, ok := keyMap[k]; ok {
		return ck
	}
	return core.KeyUnknown
}

func translateButton(b glfw.MouseButton) (core.MouseButton, bool) {
	switch b {
	case glfw.MouseButtonLeft:
		return core.MouseLeft, true
	case glfw.MouseButtonMiddle:
		return core.MouseMiddle, true
	case glfw.MouseButtonRight:
		return core.MouseRight, true
	}
	return 0, false
}

func translateMods(m glfw.ModifierKey) core.Mod {
	var out core.Mod
	if m&glfw.ModShift != 0 {
		out |= core.ModShift
	}
	if m&glfw.ModControl != 0 {
		out |= core.ModCtrl
	}
	if m&glfw.ModAlt != 0 {
		out |= core.ModAlt
	}
	if m&glfw.ModSuper != 0 {
		out |= core.ModSuper
	}
	return out
}
