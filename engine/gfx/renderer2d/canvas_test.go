package renderer2d

import (
	"errors"
	"image"
	"math"
	"testing"

	"github.com/hubastard/groveui/engine/colors"
	"github.com/hubastard/groveui/engine/core"
	"github.com/hubastard/groveui/engine/geom"
	"github.com/hubastard/groveui/engine/ui"
)

type fakeTex struct{ w, h int }

func (t *fakeTex) Width() int  { return t.w }
func (t *fakeTex) Height() int { return t.h }

type fakeFB struct{ tex *fakeTex }

func (f *fakeFB) Texture() core.Texture { return f.tex }
func (f *fakeFB) Width() int            { return f.tex.w }
func (f *fakeFB) Height() int           { return f.tex.h }

// fakeGPU records what the canvas asks of the backend.
type fakeGPU struct {
	core.Renderer
	draws     []core.DrawCmd
	verts     []float32
	created   int
	destroyed int
	bound     []core.Framebuffer
	scissors  [][5]int
	stencils  []core.StencilMode
	clears    int
}

func (g *fakeGPU) CreatePipeline(core.PipelineDesc) (core.Pipeline, error) { return "pipe", nil }
func (g *fakeGPU) CreateMesh(core.MeshDesc) (core.Mesh, error)             { return "mesh", nil }
func (g *fakeGPU) DestroyTexture(core.Texture)                             { g.destroyed++ }
func (g *fakeGPU) UpdateTexture(core.Texture, []byte) error                { return nil }
func (g *fakeGPU) BindFramebuffer(fb core.Framebuffer)                     { g.bound = append(g.bound, fb) }
func (g *fakeGPU) DestroyFramebuffer(core.Framebuffer)                     {}
func (g *fakeGPU) Clear(_, _, _, _ float32)                                { g.clears++ }
func (g *fakeGPU) SetStencil(m core.StencilMode)                           { g.stencils = append(g.stencils, m) }

func (g *fakeGPU) CreateTexture(d core.TextureDesc) (core.Texture, error) {
	g.created++
	return &fakeTex{w: d.Width, h: d.Height}, nil
}

func (g *fakeGPU) UpdateMesh(_ core.Mesh, v []float32, _ []uint32) error {
	g.verts = append(g.verts[:0], v...)
	return nil
}

func (g *fakeGPU) Draw(cmd core.DrawCmd) {
	cp := cmd
	cp.Uniforms = map[string]any{}
	for k, v := range cmd.Uniforms {
		cp.Uniforms[k] = v
	}
	cp.Samplers = map[string]core.Texture{}
	for k, v := range cmd.Samplers {
		cp.Samplers[k] = v
	}
	g.draws = append(g.draws, cp)
}

func (g *fakeGPU) CreateFramebuffer(w, h int) (core.Framebuffer, error) {
	return &fakeFB{tex: &fakeTex{w, h}}, nil
}

func (g *fakeGPU) SetScissor(on bool, x, y, w, h int) {
	b := 0
	if on {
		b = 1
	}
	g.scissors = append(g.scissors, [5]int{b, x, y, w, h})
}

func newCanvas(t *testing.T) (*Canvas, *fakeGPU) {
	t.Helper()
	g := &fakeGPU{}
	batch, err := New(g, "", "", 16)
	if err != nil {
		t.Fatal(err)
	}
	images := func(guid string) (image.Image, error) {
		if guid == "missing" {
			return nil, errors.New("no such image")
		}
		return image.NewRGBA(image.Rect(0, 0, 64, 32)), nil
	}
	c := NewCanvas(g, batch, images, 800, 600)
	c.Begin()
	return c, g
}

// vertex returns the i-th vertex of the last uploaded batch.
func (g *fakeGPU) vertex(i int) []float32 { return g.verts[i*vStride : (i+1)*vStride] }

func TestLoadTextureSharesAndReleases(t *testing.T) {
	c, g := newCanvas(t)
	a := c.LoadTexture("hero")
	b := c.LoadTexture("hero")
	if g.created != 2 || c.TextureCount() != 1 {
		t.Fatalf("created = %d (white + hero), cached = %d", g.created, c.TextureCount())
	}
	if a.Width() != 64 || !a.Complete() {
		t.Fatalf("texture = %dx%d complete=%v", a.Width(), a.Height(), a.Complete())
	}
	a.Destroy()
	a.Destroy()
	if g.destroyed != 0 || !b.Complete() || a.Complete() {
		t.Fatal("first release should keep the shared texture")
	}
	b.Destroy()
	if g.destroyed != 1 || c.TextureCount() != 0 {
		t.Fatalf("destroyed = %d cached = %d", g.destroyed, c.TextureCount())
	}
	if c.LoadTexture("missing") != nil {
		t.Fatal("failed loads should return nil")
	}
}

func TestDrawImageAppliesMatrixAlphaAndClip(t *testing.T) {
	c, g := newCanvas(t)
	tex := c.LoadTexture("hero")
	m := geom.Identity()
	m.Translate(100, 50)
	c.SetMatrix(m)
	c.SetAlpha(0.5)
	c.DrawImage(tex, [4]float64{16, 0, 32, 16}, 0, 0, 64, 32, [4]float64{255, 0, 0, 0})
	c.End()

	if len(g.draws) != 1 || g.draws[0].IndexCount != 6 {
		t.Fatalf("draws = %+v", g.draws)
	}
	tl, br := g.vertex(0), g.vertex(3)
	if tl[0] != 100 || tl[1] != 50 || br[0] != 164 || br[1] != 82 {
		t.Fatalf("corners = %v / %v", tl[:2], br[:2])
	}
	if tl[5] != 0.5 || tl[6] != 1 {
		t.Fatalf("alpha = %v tint r = %v", tl[5], tl[6])
	}
	if tl[10] != 0.25 || br[10] != 0.75 || br[11] != 0.5 {
		t.Fatalf("uv = %v,%v / %v,%v", tl[10], tl[11], br[10], br[11])
	}
	if _, ok := g.draws[0].Samplers["uTex[1]"]; !ok {
		t.Fatalf("samplers = %v", g.draws[0].Samplers)
	}
}

func TestBlendChangeSplitsBatches(t *testing.T) {
	c, g := newCanvas(t)
	c.FillRect(0, 0, 10, 10, colors.Red)
	c.SetBlend(ui.BlendAdditive)
	c.FillRect(0, 0, 10, 10, colors.Red)
	c.SetBlend(ui.BlendMask)
	c.FillRect(0, 0, 10, 10, colors.Red)
	c.End()
	if len(g.draws) != 3 {
		t.Fatalf("draws = %d, want 3", len(g.draws))
	}
	want := []core.BlendMode{core.BlendNormal, core.BlendAdditive, core.BlendNormal}
	for i, d := range g.draws {
		if d.Blend != want[i] {
			t.Fatalf("draw %d blend = %v, want %v", i, d.Blend, want[i])
		}
	}
}

func TestSliceImageDrawsNineCells(t *testing.T) {
	c, g := newCanvas(t)
	tex := c.LoadTexture("frame")
	c.DrawSliceImage(tex, [4]float64{0, 0, 64, 32}, 8, 0, 0, 200, 100, [4]float64{})
	c.End()
	if got := g.draws[0].IndexCount; got != 9*6 {
		t.Fatalf("indices = %d, want 54", got)
	}
	// Second cell starts at the left border.
	if v := g.vertex(4); v[0] != 8 || v[10] != 0.125 {
		t.Fatalf("cell 1 = x %v u %v", v[0], v[10])
	}

	// Too small for two borders: the middle column collapses.
	c.Begin()
	c.DrawSliceImage(tex, [4]float64{0, 0, 64, 32}, 8, 0, 0, 10, 100, [4]float64{})
	c.End()
	if got := g.draws[1].IndexCount; got != 6*6 {
		t.Fatalf("indices = %d, want 36", got)
	}
}

func TestDrawFanFixedColor(t *testing.T) {
	c, g := newCanvas(t)
	tex := c.LoadTexture("bar")
	verts := []float32{
		0, 0, 0, 0,
		0, 10, 0, 1,
		10, 10, 1, 1,
		10, 0, 1, 0,
	}
	m := geom.Identity()
	m.Scale(2, 2)
	c.DrawFan(tex, m, verts, ui.ColorModeFixed, colors.Blue)
	c.End()
	if got := g.draws[0].IndexCount; got != 6 {
		t.Fatalf("indices = %d", got)
	}
	v := g.vertex(2)
	if v[0] != 20 || v[1] != 20 || v[13] != ModeFixed || v[4] != 1 {
		t.Fatalf("vertex 2 = %v", v)
	}
}

func TestMaskLifecycle(t *testing.T) {
	c, g := newCanvas(t)
	if !c.BindMask() || c.BindMask() {
		t.Fatal("mask buffer should bind once")
	}
	c.EndMask()
	if c.BindMask() {
		t.Fatal("mask stays reserved until released")
	}
	c.SetMasking(true)
	c.FillRect(0, 0, 5, 5, colors.White)
	c.SetMasking(false)
	c.ReleaseMask(10, 20, 30, 40)
	if !c.BindMask() {
		t.Fatal("released mask should bind again")
	}
	c.End()

	if g.clears != 1 {
		t.Fatalf("clears = %d", g.clears)
	}
	if last := g.bound[len(g.bound)-1]; last != nil {
		t.Fatal("End should restore the window target")
	}
	var masked bool
	for _, d := range g.draws {
		if d.Uniforms["uMasking"] == true && d.Samplers["uMask"] != nil {
			masked = true
		}
	}
	if !masked {
		t.Fatal("masked draw did not sample the mask")
	}
}

func TestClipUsesTransformedBounds(t *testing.T) {
	c, g := newCanvas(t)
	m := geom.Identity()
	m.Translate(10.5, 20)
	c.SetMatrix(m)
	if !c.BeginClip(0, 0, 100, 50) {
		t.Fatal("clip should take effect")
	}
	if c.BeginClip(0, 0, 10, 10) {
		t.Fatal("nested clips are ignored")
	}
	c.EndClip()
	want := [][5]int{{1, 10, 20, 101, 50}, {0, 0, 0, 0, 0}}
	if len(g.scissors) != 2 || g.scissors[0] != want[0] || g.scissors[1] != want[1] {
		t.Fatalf("scissors = %v", g.scissors)
	}
}

func TestClipRotatedUsesStencil(t *testing.T) {
	c, g := newCanvas(t)
	m := geom.Identity()
	m.RotateAt(200, 200, math.Pi/4)
	c.SetMatrix(m)
	c.FillRect(0, 0, 5, 5, colors.Red)
	if !c.BeginClip(150, 150, 100, 100) {
		t.Fatal("clip should take effect")
	}
	if c.BeginClip(0, 0, 10, 10) {
		t.Fatal("nested clips are ignored")
	}
	c.FillRect(150, 150, 100, 100, colors.Red)
	c.End()

	want := []core.StencilMode{core.StencilWrite, core.StencilTest, core.StencilOff}
	if len(g.stencils) != len(want) {
		t.Fatalf("stencils = %v", g.stencils)
	}
	for i := range want {
		if g.stencils[i] != want[i] {
			t.Fatalf("stencils = %v, want %v", g.stencils, want)
		}
	}
	for _, s := range g.scissors {
		if s[0] == 1 {
			t.Fatalf("rotated clip set scissor %v", s)
		}
	}
	// Pending draw, window quad, clipped child.
	if len(g.draws) != 3 {
		t.Fatalf("draws = %d, want 3", len(g.draws))
	}
	cx, cy := m.Apply(150, 150)
	if v := g.vertex(0); v[0] != float32(cx) || v[1] != float32(cy) {
		t.Fatalf("child corner = %v,%v want %v,%v", v[0], v[1], cx, cy)
	}
}

func TestClipAxisAlignedSkipsStencil(t *testing.T) {
	tests := map[string]struct {
		m    func() geom.Matrix
		want [5]int
	}{
		"translate": {func() geom.Matrix { m := geom.Identity(); m.Translate(5, 5); return m }, [5]int{1, 5, 5, 20, 10}},
		"scale":     {func() geom.Matrix { m := geom.Identity(); m.Scale(2, 2); return m }, [5]int{1, 0, 0, 40, 20}},
		"flipped":   {func() geom.Matrix { m := geom.Identity(); m.ScaleAt(10, 0, -1, 1); return m }, [5]int{1, 0, 0, 20, 10}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c, g := newCanvas(t)
			c.SetMatrix(tt.m())
			c.BeginClip(0, 0, 20, 10)
			c.EndClip()
			if len(g.stencils) != 0 {
				t.Fatalf("stencils = %v", g.stencils)
			}
			if len(g.scissors) == 0 || g.scissors[0] != tt.want {
				t.Fatalf("scissors = %v, want %v first", g.scissors, tt.want)
			}
		})
	}
}
