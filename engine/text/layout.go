package text

import (
	"image/color"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/hubastard/groveui/engine/colors"
	"golang.org/x/image/font"
)

// token is one printable unit: a rune, a newline, or an inline image.
type token struct {
	r     rune
	color color.NRGBA
	image string

	// Image size in UI pixels; zero uses the line height.
	imgW, imgH float64
}

func nrgba(c colors.Color) color.NRGBA {
	b := func(v float32) uint8 { return uint8(min(max(v, 0), 1)*255 + 0.5) }
	return color.NRGBA{b(c[0]), b(c[1]), b(c[2]), b(c[3])}
}

// tokenize splits s into tokens. Recognized tags are <color:rrggbb[aa]>,
// </color> and <image:guid[:w:h]>; anything else prints as written.
func tokenize(s string, base color.NRGBA, plain bool) []token {
	out := make([]token, 0, len(s))
	stack := []color.NRGBA{base}
	for i := 0; i < len(s); {
		if !plain && s[i] == '<' {
			if end := strings.IndexByte(s[i:], '>'); end > 0 {
				if tok, ok := parseTag(s[i+1:i+end], &stack); ok {
					if tok != nil {
						out = append(out, *tok)
					}
					i += end + 1
					continue
				}
			}
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		if r == '\r' {
			continue
		}
		out = append(out, token{r: r, color: stack[len(stack)-1]})
	}
	return out
}

// parseTag applies a tag body. It returns a token for tags that print.
func parseTag(body string, stack *[]color.NRGBA) (*token, bool) {
	switch {
	case body == "/color":
		if len(*stack) > 1 {
			*stack = (*stack)[:len(*stack)-1]
		}
		return nil, true
	case strings.HasPrefix(body, "color:"):
		c, err := colors.Parse(body[len("color:"):])
		if err != nil {
			return nil, false
		}
		*stack = append(*stack, nrgba(c))
		return nil, true
	case strings.HasPrefix(body, "image:"):
		parts := strings.Split(body[len("image:"):], ":")
		if parts[0] == "" {
			return nil, false
		}
		tok := &token{image: parts[0], color: (*stack)[len(*stack)-1]}
		if len(parts) == 3 {
			w, err1 := strconv.ParseFloat(parts[1], 64)
			h, err2 := strconv.ParseFloat(parts[2], 64)
			if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
				return nil, false
			}
			tok.imgW, tok.imgH = w, h
		}
		return tok, true
	}
	return nil, false
}

// item is a laid out token. x, y is the top left of its cell in scaled
// pixels; adv is the cell size along the flow.
type item struct {
	token
	x, y   float64
	adv    float64
	glyphW float64
	cellH  float64
	line   int
}

type lineBox struct {
	start, end int
	size       float64
	pos        float64
}

type layoutOptions struct {
	// Limits along the flow and across lines, scaled pixels; 0 is unbounded.
	flowLimit, crossLimit float64
	wrap, truncate        bool
	breakWords            bool
	letterSpacing         float64
	lineSpacing           float64
	vertical              bool
	rightToLeft           bool
	hf, vf                float64
	scale                 float64
}

type layout struct {
	items  []item
	lines  []lineBox
	w, h   float64
	ascent float64
	lineH  float64
}

func (l *layout) empty() bool { return len(l.items) == 0 }

func measureTokens(face font.Face, toks []token, o layoutOptions, lineH float64) []item {
	items := make([]item, 0, len(toks))
	prev := rune(-1)
	for _, t := range toks {
		it := item{token: t}
		switch {
		case t.r == '\n':
			prev = -1
		case t.image != "":
			w, h := t.imgW*o.scale, t.imgH*o.scale
			if w == 0 {
				w, h = lineH, lineH
			}
			// Images never grow a line.
			if o.vertical && w > lineH {
				w, h = lineH, h*lineH/w
			} else if !o.vertical && h > lineH {
				w, h = w*lineH/h, lineH
			}
			it.glyphW, it.cellH = w, h
			it.adv = w
			if o.vertical {
				it.adv = h
			}
			prev = -1
		default:
			a, ok := face.GlyphAdvance(t.r)
			if !ok {
				a, _ = face.GlyphAdvance('?')
			}
			it.glyphW = float64(a) / 64
			if prev >= 0 {
				it.glyphW += float64(face.Kern(prev, t.r)) / 64
			}
			it.cellH = lineH
			it.adv = it.glyphW
			if o.vertical {
				it.adv = lineH
			}
			it.adv += o.letterSpacing
			prev = t.r
		}
		items = append(items, it)
	}
	return items
}

func lineSize(items []item) float64 {
	end := len(items)
	for end > 0 && items[end-1].r == ' ' {
		end--
	}
	var s float64
	for _, it := range items[:end] {
		s += it.adv
	}
	return s
}

// breakLines splits items at newlines and, when wrapping, before the item
// that would cross limit. Words break at the last space unless breakWords
// is set or the line has no space.
func breakLines(items []item, limit float64, wrap, breakWords bool) [][]item {
	var lines [][]item
	start, pos := 0, 0.0
	for i := 0; i < len(items); i++ {
		it := items[i]
		if it.r == '\n' && it.image == "" {
			lines = append(lines, items[start:i])
			start, pos = i+1, 0
			continue
		}
		if wrap && limit > 0 && pos+it.adv > limit && i > start {
			brk := i
			if !breakWords {
				for j := i - 1; j > start; j-- {
					if items[j].r == ' ' {
						brk = j + 1
						break
					}
				}
			}
			lines = append(lines, items[start:brk])
			start, pos = brk, 0
			for _, p := range items[start:i] {
				pos += p.adv
			}
		}
		pos += it.adv
	}
	return append(lines, items[start:])
}

func ellipsis(face font.Face, c color.NRGBA, o layoutOptions, lineH float64) []item {
	return measureTokens(face, []token{{r: '.', color: c}, {r: '.', color: c}, {r: '.', color: c}}, o, lineH)
}

// cut keeps as many items as fit in limit together with the ellipsis.
func cut(line []item, dots []item, limit float64) []item {
	room := limit - lineSize(dots)
	var pos float64
	n := 0
	for n < len(line) && pos+line[n].adv <= room {
		pos += line[n].adv
		n++
	}
	out := append([]item(nil), line[:n]...)
	return append(out, dots...)
}

func layoutText(face font.Face, toks []token, o layoutOptions) *layout {
	m := face.Metrics()
	l := &layout{ascent: float64(m.Ascent.Ceil()), lineH: float64(m.Height.Ceil())}
	if o.vertical {
		l.lineH = float64((m.Ascent + m.Descent).Ceil())
	}
	items := measureTokens(face, toks, o, l.lineH)
	lines := breakLines(items, o.flowLimit, o.wrap, o.breakWords)

	if o.truncate {
		var last color.NRGBA
		if len(toks) > 0 {
			last = toks[len(toks)-1].color
		}
		dots := ellipsis(face, last, o, l.lineH)
		if o.crossLimit > 0 {
			fit := 1
			for fit < len(lines) && float64(fit+1)*l.lineH+float64(fit)*o.lineSpacing <= o.crossLimit {
				fit++
			}
			if fit < len(lines) {
				lines = lines[:fit]
				lines[fit-1] = cut(lines[fit-1], dots, o.flowLimit)
			}
		}
		if !o.wrap && o.flowLimit > 0 {
			for i, ln := range lines {
				if lineSize(ln) > o.flowLimit {
					lines[i] = cut(ln, dots, o.flowLimit)
				}
			}
		}
	}

	for i, ln := range lines {
		box := lineBox{start: len(l.items), size: lineSize(ln)}
		box.pos = float64(i) * (l.lineH + o.lineSpacing)
		l.items = append(l.items, ln...)
		box.end = len(l.items)
		l.lines = append(l.lines, box)
		if box.size > l.w {
			l.w = box.size
		}
	}
	n := float64(len(l.lines))
	l.h = n*l.lineH + (n-1)*o.lineSpacing

	flowExtent, crossExtent := l.w, l.h
	if o.vertical {
		l.w, l.h = crossExtent, flowExtent
	}
	for li, box := range l.lines {
		pos := 0.0
		for i := box.start; i < box.end; i++ {
			it := &l.items[i]
			it.line = li
			if o.vertical {
				col := box.pos
				if o.rightToLeft {
					col = crossExtent - box.pos - l.lineH
				}
				it.x = col
				it.y = pos + (flowExtent-box.size)*o.vf
			} else {
				it.x = pos + (flowExtent-box.size)*o.hf
				it.y = box.pos + l.lineH - it.cellH
			}
			pos += it.adv
		}
	}
	return l
}
