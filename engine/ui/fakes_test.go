package ui

import (
	"errors"
	"testing"

	"github.com/hubastard/groveui/engine/colors"
	"github.com/hubastard/groveui/engine/core"
	"github.com/hubastard/groveui/engine/geom"
)

type fakeTexture struct {
	w, h      int
	destroyed bool
}

func (t *fakeTexture) Width() int     { return t.w }
func (t *fakeTexture) Height() int    { return t.h }
func (t *fakeTexture) Complete() bool { return !t.destroyed }
func (t *fakeTexture) Destroy()       { t.destroyed = true }

type fakeRenderer struct {
	w, h   int
	draws  int
	fans   [][]float32
	clips  int
	loaded []string

	clipping bool
	maskBusy bool
	masks    []string
}

func (r *fakeRenderer) Size() (int, int) { return r.w, r.h }

func (r *fakeRenderer) LoadTexture(guid string) Texture {
	r.loaded = append(r.loaded, guid)
	return &fakeTexture{w: 32, h: 32}
}

func (r *fakeRenderer) SetMatrix(geom.Matrix) {}
func (r *fakeRenderer) SetAlpha(float64)      {}
func (r *fakeRenderer) SetBlend(Blend)        {}

func (r *fakeRenderer) DrawImage(Texture, [4]float64, float64, float64, float64, float64, [4]float64) {
	r.draws++
}

func (r *fakeRenderer) DrawImageColor(Texture, [4]float64, float64, float64, float64, float64, colors.Color) {
	r.draws++
}

func (r *fakeRenderer) DrawSliceImage(Texture, [4]float64, float64, float64, float64, float64, float64, [4]float64) {
	r.draws++
}

func (r *fakeRenderer) DrawFan(_ Texture, _ geom.Matrix, v []float32, _ ColorMode, _ colors.Color) {
	r.fans = append(r.fans, append([]float32(nil), v...))
}

func (r *fakeRenderer) FillRect(float64, float64, float64, float64, colors.Color) { r.draws++ }

func (r *fakeRenderer) BindMask() bool             { return !r.maskBusy }
func (r *fakeRenderer) EndMask()                   { r.masks = append(r.masks, "end") }
func (r *fakeRenderer) ReleaseMask(_, _, _, _ int) { r.masks = append(r.masks, "release") }
func (r *fakeRenderer) MaskSize() (int, int)       { return r.w, r.h }

func (r *fakeRenderer) SetMasking(on bool) {
	if on {
		r.masks = append(r.masks, "on")
		return
	}
	r.masks = append(r.masks, "off")
}

func (r *fakeRenderer) BeginClip(float64, float64, float64, float64) bool {
	r.clips++
	if r.clipping {
		return false
	}
	r.clipping = true
	return true
}

func (r *fakeRenderer) EndClip() { r.clipping = false }

// fakePrinter prints one character per advance unit, ten pixels wide.
type fakePrinter struct {
	style   TextStyle
	content string
	areaW   float64
	areaH   float64
	printed int
	prints  int
	tex     *fakeTexture
}

func (p *fakePrinter) SetStyle(s TextStyle)                { p.style = s }
func (p *fakePrinter) Content() string                     { return p.content }
func (p *fakePrinter) PrintArea() (float64, float64)       { return p.areaW, p.areaH }
func (p *fakePrinter) SetPrintArea(w, h float64)           { p.areaW, p.areaH = w, h }
func (p *fakePrinter) SetPadding(_, _, _, _ float64)       {}
func (p *fakePrinter) Padding() (_, _, _, _ float64)       { return }
func (p *fakePrinter) Reset()                              { p.content, p.printed = "", 0 }
func (p *fakePrinter) AlignmentFactor() (float64, float64) { return 0, 0 }
func (p *fakePrinter) Horizontal() bool                    { return true }
func (p *fakePrinter) Images() []InlineImage               { return nil }
func (p *fakePrinter) Measure(s string) float64            { return float64(len([]rune(s))) * 10 }
func (p *fakePrinter) ClearPage()                          {}
func (p *fakePrinter) EndPosition() (float64, float64)     { return float64(p.printed) * 10, 0 }
func (p *fakePrinter) Destroy()                            {}

func (p *fakePrinter) Texture() Texture {
	if p.tex == nil {
		return nil
	}
	return p.tex
}

func (p *fakePrinter) Print(content string) {
	p.prints++
	p.content = content
	p.printed = len([]rune(content))
	p.tex = &fakeTexture{w: p.printed * 10, h: 16}
}

func (p *fakePrinter) Begin(content string) {
	p.content = content
	p.printed = 0
	p.tex = &fakeTexture{w: 1, h: 1}
}

func (p *fakePrinter) Advance(n int) (int, PrintStatus) {
	total := len([]rune(p.content))
	if n < 0 || p.printed+n > total {
		n = total - p.printed
	}
	p.printed += n
	if p.printed == total {
		return n, PrintDone
	}
	return n, PrintMore
}

type fakePrinters struct {
	scale    float64
	printers []*fakePrinter
}

func (f *fakePrinters) New() Printer {
	p := &fakePrinter{}
	f.printers = append(f.printers, p)
	return p
}

func (f *fakePrinters) Scale() float64     { return f.scale }
func (f *fakePrinters) SetScale(v float64) { f.scale = v }

type commandCall struct {
	owner string
	typ   string
}

// fakeCommands records every command list it is asked to run.
type fakeCommands struct {
	calls []commandCall
}

func (c *fakeCommands) Run(owner Element, _ *Commands, typ string, _ core.Event, _ bool) Handler {
	c.calls = append(c.calls, commandCall{owner: owner.Node().Name(), typ: typ})
	return nil
}

func (c *fakeCommands) has(owner, typ string) bool {
	for _, call := range c.calls {
		if call.owner == owner && call.typ == typ {
			return true
		}
	}
	return false
}

func (c *fakeCommands) count(owner, typ string) int {
	n := 0
	for _, call := range c.calls {
		if call.owner == owner && call.typ == typ {
			n++
		}
	}
	return n
}

type fakeVariables map[string]any

func (v fakeVariables) Get(key string) (any, bool) {
	value, ok := v[key]
	return value, ok
}

// fakeVideo plays until finish is called.
type fakeVideo struct {
	guid    string
	playing bool
	loop    bool
	rate    float64
	played  float64
	closed  bool
	onEnded func()
	tex     *fakeTexture
}

func (v *fakeVideo) Pause()                       { v.playing = false }
func (v *fakeVideo) SetLoop(on bool)              { v.loop = on }
func (v *fakeVideo) Loop() bool                   { return v.loop }
func (v *fakeVideo) SetPlaybackRate(rate float64) { v.rate = rate }
func (v *fakeVideo) Update(dt float64)            { v.played += dt }
func (v *fakeVideo) OnEnded(fn func())            { v.onEnded = fn }
func (v *fakeVideo) Close()                       { v.closed = true }

func (v *fakeVideo) Play() error {
	v.playing = true
	return nil
}

func (v *fakeVideo) Texture() Texture {
	if v.tex == nil {
		return nil
	}
	return v.tex
}

func (v *fakeVideo) finish() {
	v.playing = false
	v.onEnded()
}

type fakeVideos struct {
	opened []*fakeVideo
}

func (f *fakeVideos) Open(guid string) (VideoPlayer, error) {
	if guid == "broken" {
		return nil, errors.New("cannot decode " + guid)
	}
	v := &fakeVideo{guid: guid, tex: &fakeTexture{w: 320, h: 180}}
	f.opened = append(f.opened, v)
	return v, nil
}

// fakeAnimation reports its end on the next draw after finish.
type fakeAnimation struct {
	id        string
	paused    bool
	motion    string
	rotatable bool
	angle     float64
	index     int
	played    float64
	drawnAt   [][2]float64
	finished  bool
	destroyed bool
	onEnd     func()
}

func (a *fakeAnimation) SetPaused(paused bool)   { a.paused = paused }
func (a *fakeAnimation) SetMotion(motion string) { a.motion = motion }
func (a *fakeAnimation) SetRotatable(on bool)    { a.rotatable = on }
func (a *fakeAnimation) SetAngle(rad float64)    { a.angle = rad }
func (a *fakeAnimation) Goto(frame int)          { a.index = frame }
func (a *fakeAnimation) Index() int              { return a.index }
func (a *fakeAnimation) OnEnd(fn func())         { a.onEnd = fn }
func (a *fakeAnimation) Destroy()                { a.destroyed = true }

func (a *fakeAnimation) Update(dt float64) {
	if !a.paused {
		a.played += dt
	}
}

func (a *fakeAnimation) Draw(_ Renderer, x, y, _ float64, _ geom.Matrix) {
	a.drawnAt = append(a.drawnAt, [2]float64{x, y})
	if a.finished {
		a.finished = false
		a.onEnd()
	}
}

type fakeAnimations struct {
	opened []*fakeAnimation
}

func (f *fakeAnimations) Open(id string) AnimationPlayer {
	if id == "missing" {
		return nil
	}
	a := &fakeAnimation{id: id}
	f.opened = append(f.opened, a)
	return a
}

type fakeReporter struct {
	errs []error
}

func (r *fakeReporter) Report(err error) { r.errs = append(r.errs, err) }

type testEnv struct {
	m          *Manager
	renderer   *fakeRenderer
	printers   *fakePrinters
	commands   *fakeCommands
	vars       fakeVariables
	videos     *fakeVideos
	animations *fakeAnimations
	reporter   *fakeReporter
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		renderer:   &fakeRenderer{w: 800, h: 600},
		printers:   &fakePrinters{scale: 1},
		commands:   &fakeCommands{},
		vars:       fakeVariables{},
		videos:     &fakeVideos{},
		animations: &fakeAnimations{},
		reporter:   &fakeReporter{},
	}
	env.m = New(Services{
		Renderer:   env.renderer,
		Printers:   env.printers,
		Commands:   env.commands,
		Variables:  env.vars,
		Videos:     env.videos,
		Animations: env.animations,
		Reporter:   env.reporter,
	}, DefaultConfig())
	return env
}

// node builds a named node with a fixed rect and the given events bound to
// empty command lists.
func node(class, name string, x, y, w, h float64, events ...string) *Node {
	n := NewNode(class)
	n.Name = name
	n.Transform.X = x
	n.Transform.Y = y
	n.Transform.Width = w
	n.Transform.Height = h
	for _, typ := range events {
		n.Events[typ] = &Commands{}
	}
	return n
}

func (env *testEnv) add(n *Node) Element {
	e := env.m.NewElement(n)
	env.m.Root().AppendChild(e)
	return e
}
