package ui

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// lineInput is a single-line edit buffer with a selection. Positions are
// rune offsets.
type lineInput struct {
	value     []rune
	selStart  int
	selEnd    int
	anchor    int
	maxLength int
	// scrollLeft is the horizontal text offset in UI pixels.
	scrollLeft float64
}

func (in *lineInput) String() string { return string(in.value) }

func (in *lineInput) setValue(s string) {
	r := []rune(s)
	if in.maxLength >= 0 && len(r) > in.maxLength {
		r = r[:in.maxLength]
	}
	in.value = r
	in.collapse(len(r))
}

func (in *lineInput) collapse(pos int) {
	pos = max(0, min(pos, len(in.value)))
	in.selStart, in.selEnd, in.anchor = pos, pos, pos
}

func (in *lineInput) hasSelection() bool { return in.selStart != in.selEnd }

func (in *lineInput) selected() string {
	return string(in.value[in.selStart:in.selEnd])
}

// insert replaces the selection with s, truncated to the free capacity.
func (in *lineInput) insert(s string) bool {
	r := []rune(s)
	free := len(r)
	if in.maxLength >= 0 {
		free = in.maxLength - (len(in.value) - (in.selEnd - in.selStart))
	}
	if free < len(r) {
		r = r[:max(free, 0)]
	}
	if len(r) == 0 && !in.hasSelection() {
		return false
	}
	v := make([]rune, 0, len(in.value)+len(r))
	v = append(v, in.value[:in.selStart]...)
	v = append(v, r...)
	v = append(v, in.value[in.selEnd:]...)
	pos := in.selStart + len(r)
	in.value = v
	in.collapse(pos)
	return true
}

func (in *lineInput) deleteBackward() bool {
	if in.hasSelection() {
		return in.insert("")
	}
	if in.selStart == 0 {
		return false
	}
	in.selStart--
	return in.insert("")
}

func (in *lineInput) deleteForward() bool {
	if in.hasSelection() {
		return in.insert("")
	}
	if in.selEnd == len(in.value) {
		return false
	}
	in.selEnd++
	return in.insert("")
}

// moveTo places the caret at pos, extending the selection from the anchor
// when extend is set.
func (in *lineInput) moveTo(pos int, extend bool) {
	pos = max(0, min(pos, len(in.value)))
	if !extend {
		in.collapse(pos)
		return
	}
	in.selStart, in.selEnd = min(in.anchor, pos), max(in.anchor, pos)
}

// caret is the moving end of the selection.
func (in *lineInput) caret() int {
	if in.anchor == in.selStart {
		return in.selEnd
	}
	return in.selStart
}

func (in *lineInput) moveBy(delta int, extend bool) {
	if !extend && in.hasSelection() {
		if delta < 0 {
			in.collapse(in.selStart)
		} else {
			in.collapse(in.selEnd)
		}
		return
	}
	in.moveTo(in.caret()+delta, extend)
}

func (in *lineInput) selectAll() {
	in.anchor = 0
	in.selStart, in.selEnd = 0, len(in.value)
}

// scrollToCaret keeps the caret inside a view innerW pixels wide.
func (in *lineInput) scrollToCaret(measure func(string) float64, innerW float64) {
	textW := measure(string(in.value))
	x := measure(string(in.value[:in.caret()]))
	if x < in.scrollLeft {
		in.scrollLeft = x
	}
	if x > in.scrollLeft+innerW {
		in.scrollLeft = x - innerW
	}
	in.scrollLeft = math.Max(0, math.Min(in.scrollLeft, textW-innerW))
}

var (
	numberFilter = regexp.MustCompile(`^(?:[-.\d]|-?(?:\d+)?\.?\d+)$`)
	leadingFloat = regexp.MustCompile(`^[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`)
)

// parseFloatPrefix reads the longest numeric prefix of s, ignoring leading
// spaces. It reports false when there is none.
func parseFloatPrefix(s string) (float64, bool) {
	m := leadingFloat.FindString(strings.TrimLeft(s, " \t\n"))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		// Out of range literals still carry a sign.
		return v, !math.IsNaN(v)
	}
	return v, true
}

func formatNumber(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
