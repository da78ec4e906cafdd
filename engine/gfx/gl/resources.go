package glbackend

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/groveui/engine/core"
)

var errForeign = errors.New("resource not created by this renderer")

type pipeline struct {
	prog      uint32
	depthTest bool
	blend     bool
	locs      map[string]int32
}

func (p *pipeline) location(name string) int32 {
	if loc, ok := p.locs[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.prog, gl.Str(cstr(name)))
	p.locs[name] = loc
	return loc
}

type mesh struct {
	vao, vbo, ebo uint32
	vertCap       int
	indCap        int
	indexCount    int
}

type texture struct {
	id   uint32
	w, h int
}

func (t *texture) Width() int  { return t.w }
func (t *texture) Height() int { return t.h }

type framebuffer struct {
	fbo uint32
	tex *texture
}

func (f *framebuffer) Texture() core.Texture { return f.tex }
func (f *framebuffer) Width() int            { return f.tex.w }
func (f *framebuffer) Height() int           { return f.tex.h }

func (r *RendererGL) CreatePipeline(desc core.PipelineDesc) (core.Pipeline, error) {
	prog, err := makeProgram(desc.VertexSource, desc.FragmentSource)
	if err != nil {
		return nil, err
	}
	p := &pipeline{prog: prog, depthTest: desc.DepthTest, blend: desc.Blend, locs: map[string]int32{}}
	r.pipelines = append(r.pipelines, p)
	return p, nil
}

func (r *RendererGL) CreateMesh(desc core.MeshDesc) (core.Mesh, error) {
	m := &mesh{}
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(desc.Vertices)*4, ptr(desc.Vertices), gl.DYNAMIC_DRAW)
	m.vertCap = len(desc.Vertices)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(desc.Indices)*4, ptr(desc.Indices), gl.DYNAMIC_DRAW)
	m.indCap = len(desc.Indices)
	m.indexCount = len(desc.Indices)

	for _, a := range desc.Layout.Attributes {
		if a.Type != core.AttribFloat32 {
			return nil, fmt.Errorf("attribute %d: unsupported type %d", a.Location, a.Type)
		}
		gl.EnableVertexAttribArray(uint32(a.Location))
		gl.VertexAttribPointer(uint32(a.Location), int32(a.Size), gl.FLOAT, false,
			int32(desc.Layout.Stride), unsafe.Pointer(uintptr(a.Offset)))
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	r.meshes = append(r.meshes, m)
	return m, nil
}

// UpdateMesh replaces the mesh contents, growing the buffers when needed.
func (r *RendererGL) UpdateMesh(cm core.Mesh, vertices []float32, indices []uint32) error {
	m, ok := cm.(*mesh)
	if !ok {
		return errForeign
	}
	gl.BindVertexArray(m.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	if len(vertices) > m.vertCap {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, ptr(vertices), gl.DYNAMIC_DRAW)
		m.vertCap = len(vertices)
	} else if len(vertices) != 0 {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*4, ptr(vertices))
	}
	if len(indices) > m.indCap {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, ptr(indices), gl.DYNAMIC_DRAW)
		m.indCap = len(indices)
	} else if len(indices) != 0 {
		gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, len(indices)*4, ptr(indices))
	}
	m.indexCount = len(indices)
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return nil
}

// ptr is gl.Ptr that accepts empty slices.
func ptr[T any](s []T) unsafe.Pointer {
	if len(s) == 0 {
		return nil
	}
	return gl.Ptr(s)
}

func glFilter(s string) int32 {
	if s == "nearest" {
		return gl.NEAREST
	}
	return gl.LINEAR
}

func glWrap(s string) int32 {
	if s == "repeat" {
		return gl.REPEAT
	}
	return gl.CLAMP_TO_EDGE
}

func (r *RendererGL) CreateTexture(desc core.TextureDesc) (core.Texture, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("texture size %dx%d", desc.Width, desc.Height)
	}
	if desc.Pixels != nil && len(desc.Pixels) != desc.Width*desc.Height*4 {
		return nil, fmt.Errorf("texture pixels: got %d bytes, want %d", len(desc.Pixels), desc.Width*desc.Height*4)
	}
	t := &texture{w: desc.Width, h: desc.Height}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, glFilter(desc.MinFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, glFilter(desc.MagFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, glWrap(desc.WrapU))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, glWrap(desc.WrapV))
	var ptr unsafe.Pointer
	if desc.Pixels != nil {
		ptr = gl.Ptr(desc.Pixels)
	}
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(desc.Width), int32(desc.Height), 0, gl.RGBA, gl.UNSIGNED_BYTE, ptr)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t, nil
}

func (r *RendererGL) UpdateTexture(ct core.Texture, pixels []byte) error {
	t, ok := ct.(*texture)
	if !ok {
		return errForeign
	}
	if len(pixels) != t.w*t.h*4 {
		return fmt.Errorf("texture pixels: got %d bytes, want %d", len(pixels), t.w*t.h*4)
	}
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(t.w), int32(t.h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return nil
}

func (r *RendererGL) DestroyTexture(ct core.Texture) {
	if t, ok := ct.(*texture); ok && t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}

func (r *RendererGL) CreateFramebuffer(w, h int) (core.Framebuffer, error) {
	ct, err := r.CreateTexture(core.TextureDesc{Width: w, Height: h, MinFilter: "nearest", MagFilter: "nearest"})
	if err != nil {
		return nil, err
	}
	f := &framebuffer{tex: ct.(*texture)}
	gl.GenFramebuffers(1, &f.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, f.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, f.tex.id, 0)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, r.boundFBO())
	if status != gl.FRAMEBUFFER_COMPLETE {
		r.DestroyFramebuffer(f)
		return nil, fmt.Errorf("framebuffer incomplete: 0x%x", status)
	}
	return f, nil
}

func (r *RendererGL) BindFramebuffer(cf core.Framebuffer) {
	f, _ := cf.(*framebuffer)
	r.target = f
	if f == nil {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		gl.Viewport(0, 0, int32(r.w), int32(r.h))
		return
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, f.fbo)
	gl.Viewport(0, 0, int32(f.tex.w), int32(f.tex.h))
}

func (r *RendererGL) boundFBO() uint32 {
	if r.target != nil {
		return r.target.fbo
	}
	return 0
}

func (r *RendererGL) DestroyFramebuffer(cf core.Framebuffer) {
	f, ok := cf.(*framebuffer)
	if !ok {
		return
	}
	if r.target == f {
		r.BindFramebuffer(nil)
	}
	if f.fbo != 0 {
		gl.DeleteFramebuffers(1, &f.fbo)
		f.fbo = 0
	}
	r.DestroyTexture(f.tex)
}
