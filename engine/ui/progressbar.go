package ui

import (
	"math"

	"github.com/hubastard/groveui/engine/colors"
	"github.com/hubastard/groveui/engine/geom"
)

// ProgressBar fills a texture horizontally, vertically or along an arc.
type ProgressBar struct {
	Base
	texture      Texture
	image        string
	display      string
	clip         [4]float64
	typ          string
	step         float64
	centerX      float64
	centerY      float64
	startAngle   float64
	centralAngle float64
	progress     float64
	colorMode    ColorMode
	color        [4]float64
	blend        Blend

	vertices [28]float32
}

func (m *Manager) newProgressBar(n *Node) *ProgressBar {
	d := n.Progress
	if d == nil {
		d = DefaultProgressBarData()
	}
	p := &ProgressBar{}
	p.init(m, p, KindProgressBar, n)
	p.SetImage(d.Image)
	p.display = d.Display
	p.clip = d.Clip
	p.typ = d.Type
	p.step = d.Step
	p.centerX = d.CenterX
	p.centerY = d.CenterY
	p.startAngle = d.StartAngle
	p.centralAngle = d.CentralAngle
	p.progress = d.Progress
	if d.ColorMode == "fixed" {
		p.colorMode = ColorModeFixed
	}
	p.color = d.Color
	if b, ok := parseBlend(d.Blend); ok && b != BlendMask {
		p.blend = b
	}
	p.Emit("create", p.signal(), false)
	return p
}

func (p *ProgressBar) SetImage(guid string) {
	if p.image == guid {
		return
	}
	p.image = guid
	if p.texture != nil {
		p.texture.Destroy()
		p.texture = nil
	}
	if guid != "" && p.m.svc.Renderer != nil {
		p.texture = p.m.svc.Renderer.LoadTexture(guid)
	}
}

func (p *ProgressBar) Image() string            { return p.image }
func (p *ProgressBar) Progress() float64        { return p.progress }
func (p *ProgressBar) SetProgress(v float64)    { p.progress = v }
func (p *ProgressBar) Step() float64            { return p.step }
func (p *ProgressBar) SetStep(v float64)        { p.step = v }
func (p *ProgressBar) Type() string             { return p.typ }
func (p *ProgressBar) SetClip(c [4]float64)     { p.clip = c }
func (p *ProgressBar) SetCenter(x, y float64)   { p.centerX, p.centerY = x, y }
func (p *ProgressBar) SetColor(c [4]float64)    { p.color = c }
func (p *ProgressBar) SetColorMode(m ColorMode) { p.colorMode = m }

func (p *ProgressBar) SetType(v string) {
	switch v {
	case "horizontal", "vertical", "round":
		p.typ = v
	}
}

func (p *ProgressBar) SetDisplay(v string) {
	switch v {
	case "stretch", "clip":
		p.display = v
	}
}

// SetAngles sets the arc in degrees. A negative central angle runs
// counterclockwise.
func (p *ProgressBar) SetAngles(start, central float64) {
	p.startAngle, p.centralAngle = start, central
}

func (p *ProgressBar) textureClip() [4]float64 {
	if p.display == "clip" {
		return p.clip
	}
	return [4]float64{0, 0, float64(p.texture.Width()), float64(p.texture.Height())}
}

func (p *ProgressBar) Draw(r Renderer) {
	if !p.visible {
		return
	}
	if tex := p.texture; p.progress > 0 && tex != nil && tex.Complete() {
		clip := p.textureClip()
		verts := p.calculateVertices(clip)
		m := p.frame.Matrix
		m.Translate(p.frame.X, p.frame.Y).Scale(p.frame.Width/clip[2], p.frame.Height/clip[3])
		r.SetBlend(p.blend)
		r.SetAlpha(p.frame.Opacity)
		var c colors.Color
		if p.colorMode == ColorModeFixed {
			c = colors.FromTint(p.color)
		}
		r.DrawFan(tex, m, verts, p.colorMode, c)
	}
	p.drawChildren(r)
}

func (p *ProgressBar) setVertex(vi int, dx, dy, sx, sy float64) {
	p.vertices[vi] = float32(dx)
	p.vertices[vi+1] = float32(dy)
	p.vertices[vi+2] = float32(sx)
	p.vertices[vi+3] = float32(sy)
}

// calculateVertices returns the triangle fan in clip pixels with
// normalized texture coordinates.
func (p *ProgressBar) calculateVertices(clip [4]float64) []float32 {
	progress := geom.Clamp(p.progress, 0, 1)
	x, y, w, h := clip[0], clip[1], clip[2], clip[3]
	tw := float64(p.texture.Width())
	th := float64(p.texture.Height())
	switch p.typ {
	case "vertical":
		sh := h * progress
		if p.step != 0 {
			sh = geom.Clamp(math.Round(sh/p.step)*p.step, 0, h)
		}
		dt := h - sh
		p.quad(0, dt, w, h, x/tw, (y+dt)/th, (x+w)/tw, (y+h)/th)
		return p.vertices[:16]
	case "round":
		return p.roundVertices(progress, x, y, w, h, tw, th)
	default:
		sw := w * progress
		if p.step != 0 {
			sw = geom.Clamp(math.Round(sw/p.step)*p.step, 0, w)
		}
		p.quad(0, 0, sw, h, x/tw, y/th, (x+sw)/tw, (y+h)/th)
		return p.vertices[:16]
	}
}

func (p *ProgressBar) quad(dl, dt, dr, db, sl, st, sr, sb float64) {
	p.setVertex(0, dl, dt, sl, st)
	p.setVertex(4, dl, db, sl, sb)
	p.setVertex(8, dr, db, sr, sb)
	p.setVertex(12, dr, dt, sr, st)
}

// Corners are indexed clockwise from the top right.
func (p *ProgressBar) roundVertices(progress, x, y, w, h, tw, th float64) []float32 {
	start := p.startAngle
	central := p.centralAngle
	current := central * progress
	if p.step != 0 {
		current = math.Round(current/p.step) * p.step
		if central >= 0 {
			current = math.Min(current, central)
		} else {
			current = math.Max(current, central)
		}
	}
	if current < 0 {
		current = -current
		start -= current
	}
	start = geom.Radians(start)
	current = geom.Radians(current)

	dl, dt, dr, db := 0.0, 0.0, w, h
	dox, doy := w*p.centerX, h*p.centerY
	tox, toy := dox+x, doy+y
	sl, st, sr, sb := x/tw, y/th, (x+w)/tw, (y+h)/th

	angles := [4]float64{
		geom.ModRadians(math.Atan2(dt-doy, dr-dox) - start),
		geom.ModRadians(math.Atan2(db-doy, dr-dox) - start),
		geom.ModRadians(math.Atan2(db-doy, dl-dox) - start),
		geom.ModRadians(math.Atan2(dt-doy, dl-dox) - start),
	}
	p.setVertex(0, dox, doy, tox/tw, toy/th)

	startIndex := 0
	for i := 1; i < 4; i++ {
		if angles[i] < angles[startIndex] {
			startIndex = i
		}
	}
	vi := 8
	endIndex := startIndex
	for i := 0; i < 4; i++ {
		index := (startIndex + i) % 4
		if angles[index] >= current {
			endIndex = index
			break
		}
		switch index {
		case 0:
			p.setVertex(vi, dr, dt, sr, st)
		case 1:
			p.setVertex(vi, dr, db, sr, sb)
		case 2:
			p.setVertex(vi, dl, db, sl, sb)
		case 3:
			p.setVertex(vi, dl, dt, sl, st)
		}
		vi += 4
	}

	bounds := [2]struct {
		angle float64
		side  int
		vi    int
	}{
		{start, startIndex, 4},
		{start + current, endIndex, vi},
	}
	for _, b := range bounds {
		switch b.side {
		case 0:
			off := math.Tan(b.angle+math.Pi*0.5) * doy
			p.setVertex(b.vi, dox+off, dt, (tox+off)/tw, st)
		case 1:
			off := math.Tan(b.angle) * (w - dox)
			p.setVertex(b.vi, dr, doy+off, sr, (toy+off)/th)
		case 2:
			off := math.Tan(b.angle-math.Pi*0.5) * (h - doy)
			p.setVertex(b.vi, dox-off, db, (tox-off)/tw, sb)
		case 3:
			off := math.Tan(b.angle-math.Pi) * dox
			p.setVertex(b.vi, dl, doy-off, sl, (toy-off)/th)
		}
	}
	n := vi/4 + 1
	return p.vertices[:n*4]
}

func (p *ProgressBar) Destroy() {
	if p.destroyed {
		return
	}
	if p.texture != nil {
		p.texture.Destroy()
		p.texture = nil
	}
	p.Base.Destroy()
}
