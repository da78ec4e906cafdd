package renderer2d

import (
	"strconv"

	"github.com/hubastard/groveui/engine/colors"
	"github.com/hubastard/groveui/engine/core"
)

// Max textures per batch (common GL limit is 16)
const maxTexSlots = 16

// Vertex: pos2 + color4 + tint4 + uv2 + texIndex1 + mode1 => 14 floats
const vStride = 14

var vertexLayout = core.VertexLayout{
	Stride: vStride * 4,
	Attributes: []core.VertexAttrib{
		{Location: 0, Size: 2, Type: core.AttribFloat32, Offset: 0},      // pos
		{Location: 1, Size: 4, Type: core.AttribFloat32, Offset: 2 * 4},  // color
		{Location: 2, Size: 4, Type: core.AttribFloat32, Offset: 6 * 4},  // tint
		{Location: 3, Size: 2, Type: core.AttribFloat32, Offset: 10 * 4}, // uv
		{Location: 4, Size: 1, Type: core.AttribFloat32, Offset: 12 * 4}, // texIndex
		{Location: 5, Size: 1, Type: core.AttribFloat32, Offset: 13 * 4}, // mode
	},
}

// Vertex modes understood by the default fragment shader.
const (
	// ModeTint multiplies the texel by Color after applying Tint.
	ModeTint float32 = 0
	// ModeFixed paints Color with the texel's alpha as coverage.
	ModeFixed float32 = 1
)

// Vertex is one corner submitted to the batch. Position is in canvas
// pixels after the caller's transform.
type Vertex struct {
	X, Y  float32
	Color colors.Color
	// Tint adds rgb in -1..1 and desaturates by a in 0..1.
	Tint  colors.Color
	U, V  float32
	Mode  float32
}

// Statistics captures the counts generated during a renderer frame.
type Statistics struct {
	DrawCalls    int
	VertexCount  int
	IndexCount   int
	TextureCount int
}

type Renderer2D struct {
	r      core.Renderer
	pipe   core.Pipeline
	white  core.Texture // 1x1 white (slot 0)
	texArr [maxTexSlots]core.Texture
	texCnt int
	blend  core.BlendMode

	verts    []float32
	inds     []uint32
	maxVerts int
	maxInds  int

	mesh     core.Mesh
	samplers map[string]core.Texture
	uniforms map[string]any
	texNames [maxTexSlots]string

	_vp           [16]float32
	stats         Statistics
	extraUniforms map[string]any
	extraSamplers map[string]core.Texture
}

// New creates renderer and compiles the shader pipeline. Empty sources
// select the built-in shaders.
func New(r core.Renderer, vertSrc, fragSrc string, maxQuads int) (*Renderer2D, error) {
	if maxQuads <= 0 {
		maxQuads = 10000
	}
	if vertSrc == "" {
		vertSrc = DefaultVertexShader
	}
	if fragSrc == "" {
		fragSrc = DefaultFragmentShader
	}
	pipe, err := r.CreatePipeline(core.PipelineDesc{
		VertexSource:   vertSrc,
		FragmentSource: fragSrc,
		DepthTest:      false,
		Blend:          true,
	})
	if err != nil {
		return nil, err
	}

	// build 1x1 white texture
	white, err := r.CreateTexture(core.TextureDesc{
		Width: 1, Height: 1,
		Format:    core.TextureRGBA8,
		Pixels:    []byte{255, 255, 255, 255},
		MinFilter: "nearest", MagFilter: "nearest",
		WrapU: "clamp", WrapV: "clamp",
	})
	if err != nil {
		return nil, err
	}

	rd := &Renderer2D{
		r: r, pipe: pipe, white: white,
		maxVerts: maxQuads * 4,
		maxInds:  maxQuads * 6,
	}
	rd.verts = make([]float32, 0, rd.maxVerts*vStride)
	rd.inds = make([]uint32, 0, rd.maxInds)

	// Create a reusable mesh large enough for the biggest batch.
	mesh, err := r.CreateMesh(core.MeshDesc{
		Vertices: make([]float32, rd.maxVerts*vStride),
		Indices:  make([]uint32, rd.maxInds),
		Layout:   vertexLayout,
	})
	if err != nil {
		return nil, err
	}
	rd.mesh = mesh

	rd.samplers = make(map[string]core.Texture, maxTexSlots+1)
	rd.uniforms = make(map[string]any, 4)
	for i := 0; i < maxTexSlots; i++ {
		rd.texNames[i] = "uTex[" + strconv.Itoa(i) + "]"
	}
	rd.resetBatch()
	return rd, nil
}

func (rd *Renderer2D) BeginScene(vp [16]float32) {
	rd._vp = vp
	rd.stats = Statistics{}
	rd.resetBatch()
}

func (rd *Renderer2D) EndScene() { rd.Flush() }

// Stats returns the current frame statistics snapshot.
func (rd *Renderer2D) Stats() Statistics { return rd.stats }

// White is the 1x1 texture used for untextured fills.
func (rd *Renderer2D) White() core.Texture { return rd.white }

// SetViewProjection flushes pending geometry drawn under the old matrix.
func (rd *Renderer2D) SetViewProjection(vp [16]float32) {
	if vp == rd._vp {
		return
	}
	rd.Flush()
	rd._vp = vp
}

// SetBlend flushes when the mode changes.
func (rd *Renderer2D) SetBlend(b core.BlendMode) {
	if b == rd.blend {
		return
	}
	rd.Flush()
	rd.blend = b
}

// SetUniform queues an additional uniform to be sent on every draw call.
// The uniform persists until overwritten; call with nil to remove.
func (rd *Renderer2D) SetUniform(name string, value any) {
	rd.Flush()
	if rd.extraUniforms == nil {
		rd.extraUniforms = make(map[string]any)
	}
	if value == nil {
		delete(rd.extraUniforms, name)
		return
	}
	rd.extraUniforms[name] = value
}

// SetSampler binds an extra texture outside the batch slots; nil removes it.
func (rd *Renderer2D) SetSampler(name string, t core.Texture) {
	rd.Flush()
	if rd.extraSamplers == nil {
		rd.extraSamplers = make(map[string]core.Texture)
	}
	if t == nil {
		delete(rd.extraSamplers, name)
		return
	}
	rd.extraSamplers[name] = t
}

// DrawQuad submits corners in TL, TR, BL, BR order.
func (rd *Renderer2D) DrawQuad(tex core.Texture, v [4]Vertex) {
	rd.ensureCapacity(4, 6)
	slot := rd.texSlot(tex)
	start := rd.push(slot, v[:])
	rd.inds = append(rd.inds,
		start+0, start+2, start+1,
		start+1, start+2, start+3,
	)
}

// DrawFan submits a convex triangle fan around v[0].
func (rd *Renderer2D) DrawFan(tex core.Texture, v []Vertex) {
	if len(v) < 3 {
		return
	}
	if len(v) > rd.maxVerts || (len(v)-2)*3 > rd.maxInds {
		return
	}
	rd.ensureCapacity(len(v), (len(v)-2)*3)
	slot := rd.texSlot(tex)
	start := rd.push(slot, v)
	for i := uint32(1); i < uint32(len(v)-1); i++ {
		rd.inds = append(rd.inds, start, start+i, start+i+1)
	}
}

// --- internals ---

func (rd *Renderer2D) push(slot float32, v []Vertex) uint32 {
	start := uint32(len(rd.verts) / vStride)
	for _, p := range v {
		rd.verts = append(rd.verts,
			p.X, p.Y,
			p.Color[0], p.Color[1], p.Color[2], p.Color[3],
			p.Tint[0], p.Tint[1], p.Tint[2], p.Tint[3],
			p.U, p.V,
			slot,
			p.Mode,
		)
	}
	rd.stats.VertexCount += len(v)
	return start
}

func (rd *Renderer2D) texSlot(t core.Texture) float32 {
	if t == nil {
		t = rd.white
	}
	// already in array?
	for i := 0; i < rd.texCnt; i++ {
		if rd.texArr[i] == t {
			return float32(i)
		}
	}
	// need a new slot
	if rd.texCnt >= maxTexSlots {
		// flush and reset texture bindings
		rd.Flush()
	}
	rd.texArr[rd.texCnt] = t
	rd.texCnt++
	rd.stats.TextureCount = max(rd.stats.TextureCount, rd.texCnt)
	return float32(rd.texCnt - 1)
}

// Flush draws the pending batch.
func (rd *Renderer2D) Flush() {
	if len(rd.inds) == 0 {
		return
	}

	if err := rd.r.UpdateMesh(rd.mesh, rd.verts, rd.inds); err != nil {
		panic(err)
	}

	clear(rd.samplers)
	for i := 0; i < rd.texCnt; i++ {
		rd.samplers[rd.texNames[i]] = rd.texArr[i]
	}
	for k, v := range rd.extraSamplers {
		rd.samplers[k] = v
	}

	clear(rd.uniforms)
	rd.uniforms["uVP"] = rd._vp
	for k, v := range rd.extraUniforms {
		rd.uniforms[k] = v
	}

	rd.r.Draw(core.DrawCmd{
		Pipe:       rd.pipe,
		Mesh:       rd.mesh,
		Uniforms:   rd.uniforms,
		Samplers:   rd.samplers,
		IndexCount: len(rd.inds),
		Blend:      rd.blend,
	})
	rd.stats.DrawCalls++
	rd.stats.IndexCount += len(rd.inds)

	rd.resetBatch()
}

func (rd *Renderer2D) resetBatch() {
	rd.verts = rd.verts[:0]
	rd.inds = rd.inds[:0]
	for i := range rd.texArr {
		rd.texArr[i] = nil
	}
	rd.texArr[0] = rd.white
	rd.texCnt = 1
}

func (rd *Renderer2D) ensureCapacity(nv, ni int) {
	if len(rd.verts)/vStride+nv > rd.maxVerts || len(rd.inds)+ni > rd.maxInds {
		rd.Flush()
	}
}
