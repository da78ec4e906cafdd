// Package glbackend implements core.Renderer on OpenGL 3.3 core.
package glbackend

import (
	"fmt"
	"log"
	"maps"
	"slices"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/groveui/engine/core"
)

// RendererGL must be used from the thread that owns the GL context.
type RendererGL struct {
	win    core.Window
	w, h   int
	target *framebuffer

	pipelines []*pipeline
	meshes    []*mesh
}

func NewRendererGL(win core.Window, _ core.Config) (*RendererGL, error) {
	r := &RendererGL{win: win}
	if err := r.Init(); err != nil {
		return nil, err
	}
	return r, nil
}

// New matches the renderer constructor core.Run expects.
func New(win core.Window, cfg core.Config) (core.Renderer, error) { return NewRendererGL(win, cfg) }

func (r *RendererGL) Init() error {
	if v := gl.GetString(gl.VERSION); v == nil {
		return fmt.Errorf("gl: no current context")
	}
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	applyBlend(core.BlendNormal)
	if r.win != nil {
		r.w, r.h = r.win.FramebufferSize()
	}
	log.Printf("GL renderer: %s (%s)\n", r.GPURenderer(), r.GPUVendor())
	return nil
}

func (r *RendererGL) Shutdown() {
	for _, m := range r.meshes {
		gl.DeleteBuffers(1, &m.vbo)
		gl.DeleteBuffers(1, &m.ebo)
		gl.DeleteVertexArrays(1, &m.vao)
	}
	for _, p := range r.pipelines {
		gl.DeleteProgram(p.prog)
	}
	r.meshes, r.pipelines = nil, nil
}

func (r *RendererGL) Resize(w, h int) {
	r.w, r.h = w, h
	if r.target == nil {
		gl.Viewport(0, 0, int32(w), int32(h))
	}
}

func (r *RendererGL) Clear(rf, gf, bf, af float32) {
	gl.ClearColor(rf, gf, bf, af)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)
}

// SetScissor takes a top-left origin rect in pixels of the current target.
func (r *RendererGL) SetScissor(enabled bool, x, y, w, h int) {
	if !enabled {
		gl.Disable(gl.SCISSOR_TEST)
		return
	}
	th := r.h
	if r.target != nil {
		th = r.target.tex.h
	}
	gl.Enable(gl.SCISSOR_TEST)
	sx, sy, sw, sh := flipRect(x, y, w, h, th)
	gl.Scissor(int32(sx), int32(sy), int32(sw), int32(sh))
}

// flipRect converts a top-left origin rect to GL's bottom-left origin.
func flipRect(x, y, w, h, targetH int) (int, int, int, int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return x, targetH - y - h, w, h
}

type stencilParams struct {
	enabled bool
	clear   bool
	fn, op  uint32
	color   bool
}

// stencilFor marks pixels with 1 on write and passes only marked pixels on test.
func stencilFor(m core.StencilMode) stencilParams {
	switch m {
	case core.StencilWrite:
		return stencilParams{true, true, gl.ALWAYS, gl.REPLACE, false}
	case core.StencilTest:
		return stencilParams{true, false, gl.EQUAL, gl.KEEP, true}
	}
	return stencilParams{color: true}
}

func (r *RendererGL) SetStencil(m core.StencilMode) {
	p := stencilFor(m)
	gl.ColorMask(p.color, p.color, p.color, p.color)
	if !p.enabled {
		gl.Disable(gl.STENCIL_TEST)
		return
	}
	gl.Enable(gl.STENCIL_TEST)
	if p.clear {
		gl.StencilMask(0xFF)
		gl.ClearStencil(0)
		gl.Clear(gl.STENCIL_BUFFER_BIT)
	}
	gl.StencilFunc(p.fn, 1, 0xFF)
	gl.StencilOp(gl.KEEP, gl.KEEP, p.op)
}

type blendParams struct {
	enabled  bool
	equation uint32
	src, dst uint32
}

func blendFor(m core.BlendMode) blendParams {
	switch m {
	case core.BlendAdditive:
		return blendParams{true, gl.FUNC_ADD, gl.SRC_ALPHA, gl.ONE}
	case core.BlendSubtract:
		return blendParams{true, gl.FUNC_REVERSE_SUBTRACT, gl.SRC_ALPHA, gl.ONE}
	case core.BlendMax:
		return blendParams{true, gl.MAX, gl.ONE, gl.ONE}
	case core.BlendCopy:
		return blendParams{enabled: false}
	}
	return blendParams{true, gl.FUNC_ADD, gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA}
}

func applyBlend(m core.BlendMode) {
	p := blendFor(m)
	if !p.enabled {
		gl.Disable(gl.BLEND)
		return
	}
	gl.Enable(gl.BLEND)
	gl.BlendEquation(p.equation)
	gl.BlendFunc(p.src, p.dst)
}

func (r *RendererGL) Draw(cmd core.DrawCmd) {
	p, ok := cmd.Pipe.(*pipeline)
	if !ok {
		return
	}
	m, ok := cmd.Mesh.(*mesh)
	if !ok {
		return
	}
	gl.UseProgram(p.prog)
	if p.depthTest {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
	if p.blend {
		applyBlend(cmd.Blend)
	} else {
		gl.Disable(gl.BLEND)
	}

	// Sorted so texture units are stable between frames.
	unit := int32(0)
	for _, name := range slices.Sorted(maps.Keys(cmd.Samplers)) {
		t, ok := cmd.Samplers[name].(*texture)
		if !ok {
			if fb, isFB := cmd.Samplers[name].(*framebuffer); isFB {
				t = fb.tex
			} else {
				continue
			}
		}
		gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
		gl.BindTexture(gl.TEXTURE_2D, t.id)
		gl.Uniform1i(p.location(name), unit)
		unit++
	}
	for name, v := range cmd.Uniforms {
		setUniform(p.location(name), v)
	}

	count := cmd.IndexCount
	if count <= 0 || count > m.indexCount {
		count = m.indexCount
	}
	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, int32(count), gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
	gl.ActiveTexture(gl.TEXTURE0)
}

func setUniform(loc int32, v any) {
	if loc < 0 {
		return
	}
	switch u := v.(type) {
	case [16]float32:
		gl.UniformMatrix4fv(loc, 1, false, &u[0])
	case float32:
		gl.Uniform1f(loc, u)
	case float64:
		gl.Uniform1f(loc, float32(u))
	case int:
		gl.Uniform1i(loc, int32(u))
	case int32:
		gl.Uniform1i(loc, u)
	case bool:
		b := int32(0)
		if u {
			b = 1
		}
		gl.Uniform1i(loc, b)
	case [2]float32:
		gl.Uniform2f(loc, u[0], u[1])
	case [4]float32:
		gl.Uniform4f(loc, u[0], u[1], u[2], u[3])
	default:
		log.Printf("gl: unsupported uniform type %T\n", v)
	}
}

func (r *RendererGL) GPUVendor() string   { return gl.GoStr(gl.GetString(gl.VENDOR)) }
func (r *RendererGL) GPURenderer() string { return gl.GoStr(gl.GetString(gl.RENDERER)) }
func (r *RendererGL) GPUVersion() string  { return gl.GoStr(gl.GetString(gl.VERSION)) }
