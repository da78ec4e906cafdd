package ui

import (
	"encoding/json"

	"github.com/hubastard/groveui/engine/colors"
	"github.com/hubastard/groveui/engine/core"
	"github.com/hubastard/groveui/engine/easing"
	"github.com/hubastard/groveui/engine/geom"
	"github.com/hubastard/groveui/engine/module"
)

// Texture is a GPU image the renderer can sample. Complete is false while
// the source is still loading or failed to load.
type Texture interface {
	Width() int
	Height() int
	Complete() bool
	Destroy()
}

type Blend int

const (
	BlendNormal Blend = iota
	BlendAdditive
	BlendSubtract
	BlendMax
	BlendMask
)

type ColorMode int

const (
	ColorModeTexture ColorMode = iota
	ColorModeFixed
)

// Renderer is the drawing surface elements paint into. Coordinates are in
// UI pixels, mapped through the matrix set by SetMatrix.
type Renderer interface {
	Size() (w, h int)
	// LoadTexture returns nil when guid names no known image.
	LoadTexture(guid string) Texture

	SetMatrix(m geom.Matrix)
	SetAlpha(a float64)
	SetBlend(b Blend)

	// DrawImage draws the clip rect (texture pixels) of tex into the
	// destination rect. Negative dw/dh mirror the image.
	DrawImage(tex Texture, clip [4]float64, dx, dy, dw, dh float64, tint [4]float64)
	// DrawImageColor draws a coverage texture (text) filled with color.
	DrawImageColor(tex Texture, clip [4]float64, dx, dy, dw, dh float64, color colors.Color)
	DrawSliceImage(tex Texture, clip [4]float64, border float64, dx, dy, dw, dh float64, tint [4]float64)
	// DrawFan draws a triangle fan of (x, y, u, v) vertices transformed by m.
	DrawFan(tex Texture, m geom.Matrix, vertices []float32, mode ColorMode, color colors.Color)
	FillRect(x, y, w, h float64, color colors.Color)

	// BindMask redirects draws into the mask buffer. It fails when the
	// buffer is already bound.
	BindMask() bool
	// EndMask restores the screen target; the buffer stays reserved.
	EndMask()
	SetMasking(on bool)
	// ReleaseMask clears the given mask-buffer pixels and frees the buffer.
	ReleaseMask(x, y, w, h int)
	MaskSize() (w, h int)

	// BeginClip limits draws to the rect under the current matrix and
	// reports whether clipping took effect. It returns false while another
	// clip is active.
	BeginClip(x, y, w, h float64) bool
	EndClip()
}

// TextEffect decorates printed glyphs.
type TextEffect struct {
	Type          string  `json:"type"` // none | shadow | stroke | outline
	ShadowOffsetX float64 `json:"shadowOffsetX,omitempty"`
	ShadowOffsetY float64 `json:"shadowOffsetY,omitempty"`
	StrokeWidth   float64 `json:"strokeWidth,omitempty"`
	Color         string  `json:"color,omitempty"`
}

func (e TextEffect) ParsedColor() colors.Color { return colors.MustParse(e.Color) }

// TextStyle configures a Printer. Sizes and spacings are unscaled UI pixels.
type TextStyle struct {
	Direction     string
	HAlign        string
	VAlign        string
	Size          float64
	LineSpacing   float64
	LetterSpacing float64
	Color         colors.Color
	Font          string
	Bold          bool
	Italic        bool
	Effect        TextEffect
	WordWrap      bool
	Truncate      bool
	// PlainText prints tags literally.
	PlainText bool
}

// InlineImage is an image tag laid out by the printer, relative to the
// unpadded text origin.
type InlineImage struct {
	Image  string
	Clip   [4]float64
	StartX float64
	StartY float64
	Width  float64
	Height float64
}

type PrintStatus int

const (
	// PrintMore means the character budget ran out before the content did.
	PrintMore PrintStatus = iota
	// PrintWaiting means the next glyph would overflow the print height.
	PrintWaiting
	PrintDone
)

// Printer lays out and rasterizes text into a texture. Texture size and
// padding are in scaled pixels (UI pixels × PrinterFactory.Scale).
type Printer interface {
	// SetStyle resets the printer when the style differs from the current one.
	SetStyle(s TextStyle)
	Content() string
	PrintArea() (w, h float64)
	SetPrintArea(w, h float64)
	// SetPadding fixes the texture padding instead of deriving it from the
	// effect.
	SetPadding(l, t, r, b float64)
	Padding() (l, t, r, b float64)
	Print(content string)
	Reset()
	Texture() Texture
	AlignmentFactor() (x, y float64)
	Horizontal() bool
	Images() []InlineImage
	// Measure returns the advance of s in UI pixels.
	Measure(s string) float64

	// Begin starts paged printing of content from the first character.
	Begin(content string)
	// Advance prints up to n characters (n < 0 is unlimited) on the
	// current page.
	Advance(n int) (printed int, status PrintStatus)
	// ClearPage wipes the texture and restarts at the page origin.
	ClearPage()
	// EndPosition is where the last printed glyph ended, in UI pixels
	// relative to the text origin.
	EndPosition() (x, y float64)

	Destroy()
}

type PrinterFactory interface {
	New() Printer
	Scale() float64
	SetScale(scale float64)
}

// Commands is a declarative command list bound to an event type. Lists are
// compared by identity.
type Commands struct {
	List []Command
}

// UI files store a command list as a bare array.
func (c *Commands) UnmarshalJSON(b []byte) error { return json.Unmarshal(b, &c.List) }
func (c Commands) MarshalJSON() ([]byte, error)  { return json.Marshal(c.List) }

type Command struct {
	ID     string         `json:"id"`
	Params map[string]any `json:"params,omitempty"`
}

// Handler is a running command list.
type Handler interface {
	module.Updater
	Commands() *Commands
	Finished() bool
	Finish()
}

// CommandRunner executes command lists on behalf of elements.
type CommandRunner interface {
	// Run starts commands. It returns nil when the list completed
	// synchronously.
	Run(owner Element, commands *Commands, typ string, ev core.Event, bubble bool) Handler
}

// ScriptRef attaches a behavior script to an element.
type ScriptRef struct {
	ID      string         `json:"id"`
	Enabled bool           `json:"enabled"`
	Params  map[string]any `json:"params,omitempty"`
}

// ScriptDispatcher forwards element events to attached behavior scripts.
type ScriptDispatcher interface {
	Emit(typ string, ev core.Event)
}

type ScriptHost interface {
	Attach(owner Element, scripts []ScriptRef) ScriptDispatcher
}

type Localizer interface {
	Get(id string) (string, bool)
	// Replace substitutes <ref:id> tokens.
	Replace(text string) string
}

// Variables resolves global variables referenced by <global:id> tags.
type Variables interface {
	Get(key string) (any, bool)
}

type Audio interface {
	PlaySE(guid string)
}

// AnimationPlayer plays one sprite animation inside a UI element.
type AnimationPlayer interface {
	SetPaused(paused bool)
	SetMotion(motion string)
	SetRotatable(on bool)
	SetAngle(rad float64)
	Goto(frame int)
	Index() int
	Update(dt float64)
	Draw(r Renderer, x, y, opacity float64, m geom.Matrix)
	// OnEnd is called from Draw when a non-looping motion finishes.
	OnEnd(fn func())
	Destroy()
}

type AnimationLibrary interface {
	// Open returns nil when id names no animation.
	Open(id string) AnimationPlayer
}

// VideoPlayer decodes one video into a texture.
type VideoPlayer interface {
	Play() error
	Pause()
	SetLoop(on bool)
	Loop() bool
	SetPlaybackRate(rate float64)
	// Update uploads due frames. Texture is nil until the first frame.
	Update(dt float64)
	Texture() Texture
	// OnEnded is called once per finished playback.
	OnEnded(fn func())
	Close()
}

type VideoLibrary interface {
	Open(guid string) (VideoPlayer, error)
}

// Clipboard matches github.com/atotto/clipboard.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// Registry is a process-wide entity index elements join on creation.
type Registry interface {
	Add(e Element)
	Remove(e Element)
}

// Reporter surfaces runtime errors without stopping the frame loop.
type Reporter interface {
	Report(err error)
}

// Services bundles the collaborators the UI runtime calls into. Nil
// optional services disable the feature that needs them.
type Services struct {
	Renderer   Renderer
	Printers   PrinterFactory
	Commands   CommandRunner
	Scripts    ScriptHost
	Local      Localizer
	Variables  Variables
	Audio      Audio
	Animations AnimationLibrary
	Videos     VideoLibrary
	Clipboard  Clipboard
	Entities   Registry
	Reporter   Reporter
	Deferred   *core.Deferred
	Bubbles    *core.Bubbles
	Easing     *easing.Registry
}

func (s *Services) withDefaults() {
	if s.Deferred == nil {
		s.Deferred = core.NewDeferred()
	}
	if s.Bubbles == nil {
		s.Bubbles = core.NewBubbles()
	}
	if s.Easing == nil {
		s.Easing = easing.NewRegistry()
	}
	if s.Reporter == nil {
		s.Reporter = logReporter{}
	}
}

type logReporter struct{}

func (logReporter) Report(err error) { logger.Error("ui error", "err", err) }

type noScript struct{}

func (noScript) Emit(string, core.Event) {}
