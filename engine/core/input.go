package core

// Input keeps the latest device state seen by the event loop.
type Input struct {
	keys           map[Key]bool
	buttons        [3]bool
	mouseX, mouseY float64
	mods           Mod
}

func NewInput() *Input { return &Input{keys: map[Key]bool{}} }

func (in *Input) Handle(ev Event) {
	switch e := ev.(type) {
	case EventKey:
		in.keys[e.Key] = e.Down
		in.mods = e.Mods
	case EventMouseMove:
		in.mouseX, in.mouseY = e.X, e.Y
	case EventMouseButton:
		if e.Button >= 0 && int(e.Button) < len(in.buttons) {
			in.buttons[e.Button] = e.Down
		}
	case EventVisibility:
		if e.Hidden {
			clear(in.keys)
			in.buttons = [3]bool{}
		}
	}
}

func (in *Input) IsKeyDown(k Key) bool { return in.keys[k] }
func (in *Input) IsButtonDown(b MouseButton) bool {
	return b >= 0 && int(b) < len(in.buttons) && in.buttons[b]
}
func (in *Input) Mouse() (float64, float64) { return in.mouseX, in.mouseY }
func (in *Input) Mods() Mod                 { return in.mods }
