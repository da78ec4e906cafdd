package text

import (
	"image/color"
	"testing"

	"github.com/hubastard/groveui/engine/colors"
	"github.com/hubastard/groveui/engine/core"
	"github.com/hubastard/groveui/engine/geom"
	"github.com/hubastard/groveui/engine/ui"
	"golang.org/x/image/font/basicfont"
)

type fakeTex struct{ w, h int }

func (t *fakeTex) Width() int  { return t.w }
func (t *fakeTex) Height() int { return t.h }

type fakeGPU struct {
	core.Renderer
	live    int
	updates int
}

func (g *fakeGPU) CreateTexture(d core.TextureDesc) (core.Texture, error) {
	g.live++
	return &fakeTex{d.Width, d.Height}, nil
}

func (g *fakeGPU) UpdateTexture(core.Texture, []byte) error { g.updates++; return nil }
func (g *fakeGPU) DestroyTexture(core.Texture)              { g.live-- }

func newFactory() (*Factory, *fakeGPU) {
	g := &fakeGPU{}
	return NewFactory(g, NewFonts(), 13), g
}

var white = color.NRGBA{255, 255, 255, 255}

func runes(items []item) string {
	var s []rune
	for _, it := range items {
		s = append(s, it.r)
	}
	return string(s)
}

func TestTokenize(t *testing.T) {
	toks := tokenize("a<color:ff0000>b</color>c<image:star:8:4><bogus>", white, false)
	if len(toks) != 11 {
		t.Fatalf("tokens = %d, want 11", len(toks))
	}
	if toks[1].r != 'b' || toks[1].color != (color.NRGBA{255, 0, 0, 255}) {
		t.Fatalf("tagged rune = %+v", toks[1])
	}
	if toks[2].color != white {
		t.Fatal("</color> should restore the base color")
	}
	if img := toks[3]; img.image != "star" || img.imgW != 8 || img.imgH != 4 {
		t.Fatalf("image = %+v", img)
	}
	if toks[4].r != '<' {
		t.Fatal("unknown tags print as written")
	}

	plain := tokenize("<color:ff0000>x", white, true)
	if len(plain) != 15 {
		t.Fatalf("plain tokens = %d", len(plain))
	}
}

func TestLayoutWrap(t *testing.T) {
	toks := tokenize("hello world foo", white, false)
	tests := map[string]struct {
		breakWords bool
		lines      []string
		sizes      []float64
	}{
		"keep words":  {false, []string{"hello ", "world foo"}, []float64{35, 63}},
		"break words": {true, []string{"hello world", " foo"}, []float64{77, 28}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			l := layoutText(basicfont.Face7x13, toks, layoutOptions{flowLimit: 80, wrap: true, breakWords: tt.breakWords, scale: 1})
			if len(l.lines) != len(tt.lines) {
				t.Fatalf("lines = %d", len(l.lines))
			}
			for i, box := range l.lines {
				if got := runes(l.items[box.start:box.end]); got != tt.lines[i] {
					t.Fatalf("line %d = %q, want %q", i, got, tt.lines[i])
				}
				if box.size != tt.sizes[i] {
					t.Fatalf("line %d size = %v, want %v", i, box.size, tt.sizes[i])
				}
			}
			if l.h != 26 {
				t.Fatalf("height = %v", l.h)
			}
		})
	}
}

func TestLayoutAlignsLines(t *testing.T) {
	toks := tokenize("ab\nabcd", white, false)
	l := layoutText(basicfont.Face7x13, toks, layoutOptions{hf: 0.5, lineSpacing: 3, scale: 1})
	if l.w != 28 || l.h != 29 {
		t.Fatalf("size = %vx%v", l.w, l.h)
	}
	if first := l.items[0]; first.x != 7 || first.y != 0 {
		t.Fatalf("first = %v,%v", first.x, first.y)
	}
	if second := l.items[2]; second.x != 0 || second.y != 16 {
		t.Fatalf("second line = %v,%v", second.x, second.y)
	}
}

func TestLayoutTruncate(t *testing.T) {
	toks := tokenize("hello world foo", white, false)
	l := layoutText(basicfont.Face7x13, toks, layoutOptions{flowLimit: 80, crossLimit: 13, wrap: true, truncate: true, scale: 1})
	if len(l.lines) != 1 {
		t.Fatalf("lines = %d", len(l.lines))
	}
	if got := runes(l.items); got != "hello ..." {
		t.Fatalf("truncated = %q", got)
	}

	single := layoutText(basicfont.Face7x13, toks, layoutOptions{flowLimit: 40, truncate: true, scale: 1})
	if got := runes(single.items); got != "he..." {
		t.Fatalf("cut line = %q", got)
	}
}

func TestLayoutVerticalRightToLeft(t *testing.T) {
	toks := tokenize("ab\ncd", white, false)
	l := layoutText(basicfont.Face7x13, toks, layoutOptions{vertical: true, rightToLeft: true, scale: 1})
	if l.w != 26 || l.h != 26 {
		t.Fatalf("size = %vx%v", l.w, l.h)
	}
	a, b, c := l.items[0], l.items[1], l.items[2]
	if a.x != 13 || a.y != 0 || b.y != 13 || c.x != 0 {
		t.Fatalf("a=%v,%v b=%v c=%v", a.x, a.y, b.y, c.x)
	}
}

func TestPrinterPrint(t *testing.T) {
	f, g := newFactory()
	p := f.New()
	p.SetStyle(ui.TextStyle{Color: colors.White, Effect: ui.TextEffect{Type: "shadow", ShadowOffsetX: 2, ShadowOffsetY: 3}})
	p.Print("hi")

	if l, tp, r, b := p.Padding(); l != 0 || tp != 0 || r != 2 || b != 3 {
		t.Fatalf("padding = %v %v %v %v", l, tp, r, b)
	}
	tex := p.Texture()
	if tex == nil || tex.Width() != 16 || tex.Height() != 16 {
		t.Fatalf("texture = %v", tex)
	}
	if p.Content() != "hi" || p.Measure("hi") != 14 {
		t.Fatalf("content %q measure %v", p.Content(), p.Measure("hi"))
	}
	pix := p.(*Printer).img
	var painted bool
	for i := 3; i < len(pix.Pix); i += 4 {
		if pix.Pix[i] != 0 {
			painted = true
			break
		}
	}
	if !painted {
		t.Fatal("no glyph pixels")
	}

	p.Print("")
	if p.Texture() != nil || g.live != 0 {
		t.Fatalf("empty content kept a texture (live %d)", g.live)
	}
}

func TestPrinterInlineImages(t *testing.T) {
	f, _ := newFactory()
	p := f.New()
	p.Print("a<image:coin>b")
	imgs := p.Images()
	if len(imgs) != 1 {
		t.Fatalf("images = %d", len(imgs))
	}
	if im := imgs[0]; im.Image != "coin" || im.StartX != 7 || im.Width != 13 || im.Clip[2] != 13 {
		t.Fatalf("image = %+v", im)
	}
}

func TestPrinterPages(t *testing.T) {
	f, _ := newFactory()
	p := f.New()
	p.SetStyle(ui.TextStyle{Color: colors.White, WordWrap: true})
	p.SetPadding(0, 0, 0, 0)
	p.SetPrintArea(21, 13)
	if tex := p.Texture(); tex == nil || tex.Width() != 21 || tex.Height() != 13 {
		t.Fatalf("page texture = %v", tex)
	}
	p.Begin("abc\ndef")

	if n, st := p.Advance(2); n != 2 || st != ui.PrintMore {
		t.Fatalf("Advance(2) = %d, %v", n, st)
	}
	if x, y := p.EndPosition(); x != 14 || y != 0 {
		t.Fatalf("end = %v,%v", x, y)
	}
	if n, st := p.Advance(-1); n != 1 || st != ui.PrintWaiting {
		t.Fatalf("Advance(-1) = %d, %v", n, st)
	}
	p.ClearPage()
	if n, st := p.Advance(-1); n != 3 || st != ui.PrintDone {
		t.Fatalf("next page = %d, %v", n, st)
	}
	if x, y := p.EndPosition(); x != 21 || y != 0 {
		t.Fatalf("end = %v,%v", x, y)
	}
}

func TestTypesetterChangesResetPrinters(t *testing.T) {
	f, g := newFactory()
	p := f.New()
	p.Print("hello")
	f.SetBreakWords(true)
	if p.Content() != "" {
		t.Fatal("printer should be reset after a typesetting change")
	}
	f.SetSizeScale(0)
	if f.sizeScale != 1 {
		t.Fatalf("size scale = %v", f.sizeScale)
	}
	p.Destroy()
	if f.Live() != 0 || g.live != 0 {
		t.Fatalf("live printers %d textures %d", f.Live(), g.live)
	}
}

func TestFontsFallBackToBasicFont(t *testing.T) {
	fs := NewFonts()
	if err := fs.Add("broken", []byte("not a font")); err == nil {
		t.Fatal("Add should reject invalid data")
	}
	face, synth := fs.Face("missing", true, false, 20)
	if face != basicfont.Face7x13 || !synth {
		t.Fatalf("face = %v synthetic = %v", face, synth)
	}
}

func TestLabelReprintsOnChange(t *testing.T) {
	f, g := newFactory()
	l := NewLabel(f, ui.TextStyle{Color: colors.White})
	r := &countingRenderer{}
	l.Draw(r, 4, 4, "fps 60")
	l.Draw(r, 4, 4, "fps 60")
	if r.draws != 2 || g.updates != 0 {
		t.Fatalf("draws %d updates %d", r.draws, g.updates)
	}
	if w, h := l.Size(); w != 42 || h != 13 {
		t.Fatalf("size = %vx%v", w, h)
	}
}

type countingRenderer struct {
	ui.Renderer
	draws int
}

func (r *countingRenderer) SetMatrix(geom.Matrix) {}
func (r *countingRenderer) SetAlpha(float64)      {}
func (r *countingRenderer) SetBlend(ui.Blend)     {}

func (r *countingRenderer) DrawImage(ui.Texture, [4]float64, float64, float64, float64, float64, [4]float64) {
	r.draws++
}
