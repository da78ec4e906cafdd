package platform

import (
	"log"
	"runtime"
	"time"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/hubastard/groveui/engine/core"
)

// GLFWWindow implements core.Window and pushes events to the app via a handler.
type GLFWWindow struct {
	w      *glfw.Window
	onEv   func(core.Event)
	clicks clickTracker
	pad    gamepadTracker
}

// New opens a window with the engine configuration. It matches the window
// constructor core.Run expects.
func New(cfg core.Config) (core.Window, error) { return NewGLFWWindow(cfg, nil) }

// Must be called on main thread before any GL calls.
func NewGLFWWindow(cfg core.Config, onEvent func(core.Event)) (*GLFWWindow, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, err
	}

	// GL 3.3 core profile (Mac requires forward-compatible flag).
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, 0)
	glfw.WindowHint(glfw.StencilBits, 8)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, err
	}
	win.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		return nil, err
	}
	log.Printf("GL: %s\n", gl.GoStr(gl.GetString(gl.VERSION)))

	gw := &GLFWWindow{w: win, onEv: onEvent, pad: newGamepadTracker()}

	// Callbacks -> translate to core.Event
	win.SetCloseCallback(func(*glfw.Window) { gw.emit(core.EventCloseRequested{}) })
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		gw.emit(core.EventResize{W: w, H: h})
	})
	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		x, y = gw.toFramebuffer(x, y)
		gw.emit(core.EventMouseMove{X: x, Y: y})
	})
	win.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		if !entered {
			gw.emit(core.EventMouseLeave{})
		}
	})
	win.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		b, ok := translateButton(button)
		if !ok {
			return
		}
		x, y := gw.toFramebuffer(w.GetCursorPos())
		down := action == glfw.Press
		gw.emit(core.EventMouseButton{Button: b, Down: down, X: x, Y: y})
		if down && gw.clicks.press(b, x, y, time.Now()) {
			gw.emit(core.EventDoubleClick{Button: b, X: x, Y: y})
		}
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		k := translateKey(key)
		if k == core.KeyUnknown {
			return
		}
		gw.emit(core.EventKey{
			Key:    k,
			Down:   action != glfw.Release,
			Repeat: action == glfw.Repeat,
			Mods:   translateMods(mods),
		})
	})
	win.SetCharCallback(func(_ *glfw.Window, r rune) {
		gw.emit(core.EventChar{Rune: r})
	})
	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		gw.emit(core.EventScroll{Xoff: xoff, Yoff: yoff})
	})
	win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		gw.emit(core.EventVisibility{Hidden: !focused})
	})
	win.SetIconifyCallback(func(_ *glfw.Window, iconified bool) {
		gw.emit(core.EventVisibility{Hidden: iconified})
	})

	return gw, nil
}

func (g *GLFWWindow) emit(ev core.Event) {
	if g.onEv != nil {
		g.onEv(ev)
	}
}

// toFramebuffer converts screen coordinates to framebuffer pixels, which
// differ on high-DPI displays.
func (g *GLFWWindow) toFramebuffer(x, y float64) (float64, float64) {
	ww, wh := g.w.GetSize()
	fw, fh := g.w.GetFramebufferSize()
	if ww == 0 || wh == 0 {
		return x, y
	}
	return x * float64(fw) / float64(ww), y * float64(fh) / float64(wh)
}

// PollEvents also polls the first connected gamepad; GLFW has no callbacks
// for gamepad input.
func (g *GLFWWindow) PollEvents() {
	glfw.PollEvents()
	g.pollGamepad()
}

func (g *GLFWWindow) pollGamepad() {
	for j := glfw.Joystick1; j <= glfw.JoystickLast; j++ {
		if !j.IsGamepad() {
			continue
		}
		st := j.GetGamepadState()
		if st == nil {
			continue
		}
		var s padState
		for i := range s.buttons {
			s.buttons[i] = st.Buttons[i] == glfw.Press
		}
		s.axes = [4]float64{
			float64(st.Axes[glfw.AxisLeftX]),
			float64(st.Axes[glfw.AxisLeftY]),
			float64(st.Axes[glfw.AxisRightX]),
			float64(st.Axes[glfw.AxisRightY]),
		}
		g.pad.update(s, g.emit)
		return
	}
	g.pad.update(padState{}, g.emit)
}

// core.Window impl
func (g *GLFWWindow) SwapBuffers()                         { g.w.SwapBuffers() }
func (g *GLFWWindow) ShouldClose() bool                    { return g.w.ShouldClose() }
func (g *GLFWWindow) RequestClose()                        { g.w.SetShouldClose(true) }
func (g *GLFWWindow) FramebufferSize() (int, int)          { return g.w.GetFramebufferSize() }
func (g *GLFWWindow) SetTitle(t string)                    { g.w.SetTitle(t) }
func (g *GLFWWindow) SetEventCallback(cb func(core.Event)) { g.onEv = cb }

// Destroy closes the window and terminates GLFW.
func (g *GLFWWindow) Destroy() {
	g.w.Destroy()
	glfw.Terminate()
}
