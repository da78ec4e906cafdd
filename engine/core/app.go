package core

import "time"

// App defines the game/application hooks.
type App interface {
	OnStart(e *Engine)                 // called once after window/renderer init
	OnUpdate(e *Engine, dt float64)    // called at a fixed tick (60Hz by default)
	OnRender(e *Engine, alpha float64) // render with interpolation alpha [0..1]
	OnEvent(e *Engine, ev Event)       // input/window events
	OnShutdown(e *Engine)              // before exit
}

// Engine exposes core services to the App.
type Engine struct {
	Window   Window
	Renderer Renderer
	Input    *Input
	Layers   *LayerStack
	Deferred *Deferred
	start    time.Time
	hidden   bool
}

func (e *Engine) Uptime() time.Duration { return time.Since(e.start) }

// Hidden reports whether the window is minimized or occluded. Rendering is
// skipped while hidden; updates keep running.
func (e *Engine) Hidden() bool { return e.hidden }

// Window abstraction.
type Window interface {
	PollEvents()
	SwapBuffers()
	ShouldClose() bool
	RequestClose()
	FramebufferSize() (int, int)
	SetTitle(title string)
	SetEventCallback(cb func(Event))
}

// Renderer is the GPU backend.
type Renderer interface {
	Init() error
	Resize(w, h int)
	Clear(r, g, b, a float32)
	Shutdown()

	CreatePipeline(desc PipelineDesc) (Pipeline, error)
	CreateMesh(desc MeshDesc) (Mesh, error)
	UpdateMesh(m Mesh, vertices []float32, indices []uint32) error
	CreateTexture(desc TextureDesc) (Texture, error)
	UpdateTexture(t Texture, pixels []byte) error
	DestroyTexture(t Texture)
	CreateFramebuffer(w, h int) (Framebuffer, error)
	// BindFramebuffer redirects draws into fb; nil restores the window.
	BindFramebuffer(fb Framebuffer)
	DestroyFramebuffer(fb Framebuffer)
	// SetScissor restricts draws to a window-pixel rect (origin top-left).
	SetScissor(enabled bool, x, y, w, h int)
	// SetStencil switches the stencil clip stage. StencilWrite clears the
	// stencil and marks covered pixels without touching color.
	SetStencil(mode StencilMode)
	Draw(cmd DrawCmd)

	GPUVendor() string
	GPURenderer() string
	GPUVersion() string
}

type Texture interface {
	Width() int
	Height() int
}

type Pipeline interface{}

type Mesh interface{}

type Framebuffer interface {
	Texture() Texture
	Width() int
	Height() int
}

type TextureFormat int

const (
	TextureRGBA8 TextureFormat = iota
)

type TextureDesc struct {
	Width, Height        int
	Format               TextureFormat
	Pixels               []byte
	MinFilter, MagFilter string // "nearest" | "linear"
	WrapU, WrapV         string // "clamp" | "repeat"
}

type AttribType int

const (
	AttribFloat32 AttribType = iota
)

type VertexAttrib struct {
	Location int
	Size     int
	Type     AttribType
	Offset   int
}

type VertexLayout struct {
	Stride     int
	Attributes []VertexAttrib
}

type PipelineDesc struct {
	VertexSource   string
	FragmentSource string
	DepthTest      bool
	Blend          bool
}

type MeshDesc struct {
	Vertices []float32
	Indices  []uint32
	Layout   VertexLayout
}

// BlendMode selects how a draw combines with the target.
type BlendMode int

const (
	BlendNormal BlendMode = iota
	BlendAdditive
	BlendSubtract
	BlendMax
	BlendCopy
)

// StencilMode selects the stencil clip stage.
type StencilMode int

const (
	StencilOff StencilMode = iota
	StencilWrite
	StencilTest
)

type DrawCmd struct {
	Pipe       Pipeline
	Mesh       Mesh
	Uniforms   map[string]any
	Samplers   map[string]Texture
	IndexCount int // 0 draws the whole mesh
	Blend      BlendMode
}

// Config for the engine run.
type Config struct {
	Title      string
	Width      int
	Height     int
	VSync      bool
	ClearColor [4]float32 // RGBA
}
