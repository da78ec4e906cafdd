package ui

import (
	"math"

	"github.com/hubastard/groveui/engine/geom"
)

type Layout int

const (
	LayoutNormal Layout = iota
	LayoutHorizontalGrid
	LayoutVerticalGrid
)

func parseLayout(s string) (Layout, bool) {
	switch s {
	case "normal":
		return LayoutNormal, true
	case "horizontal-grid":
		return LayoutHorizontalGrid, true
	case "vertical-grid":
		return LayoutVerticalGrid, true
	}
	return LayoutNormal, false
}

func (l Layout) String() string {
	switch l {
	case LayoutHorizontalGrid:
		return "horizontal-grid"
	case LayoutVerticalGrid:
		return "vertical-grid"
	}
	return "normal"
}

// asWindow returns e as a window when its kind says it is one.
func asWindow(e Element) *Window {
	if e == nil || e.Node().kind != KindWindow {
		return nil
	}
	return e.(*Window)
}

// Window scrolls its children and can arrange them in a grid. Children
// resolve their transforms against a proxy frame: the scrolled content area
// in normal layout or their grid cell otherwise.
type Window struct {
	Base
	layout       Layout
	scrollX      float64
	scrollY      float64
	scrollWidth  float64
	scrollHeight float64
	gridWidth    float64
	gridHeight   float64
	gridGapX     float64
	gridGapY     float64
	paddingX     float64
	paddingY     float64
	hidden       bool
	columns      int
	rows         int
	requesting   bool
	proxyFrame   Frame
}

func (m *Manager) newWindow(n *Node) *Window {
	d := n.Window
	if d == nil {
		d = DefaultWindowData()
	}
	w := &Window{}
	w.init(m, w, KindWindow, n)
	if l, ok := parseLayout(d.Layout); ok {
		w.layout = l
	}
	w.scrollX = math.Max(d.ScrollX, 0)
	w.scrollY = math.Max(d.ScrollY, 0)
	w.gridWidth = d.GridWidth
	w.gridHeight = d.GridHeight
	w.gridGapX = d.GridGapX
	w.gridGapY = d.GridGapY
	w.paddingX = d.PaddingX
	w.paddingY = d.PaddingY
	w.hidden = d.Overflow == "hidden"
	w.Emit("create", w.signal(), false)
	return w
}

func (w *Window) Layout() Layout { return w.layout }

func (w *Window) SetLayout(l Layout) {
	if w.layout != l {
		w.layout = l
		w.relayout()
	}
}

func (w *Window) relayout() {
	if w.connected {
		w.Resize()
	}
}

func (w *Window) ScrollX() float64      { return w.scrollX }
func (w *Window) ScrollY() float64      { return w.scrollY }
func (w *Window) ScrollWidth() float64  { return w.scrollWidth }
func (w *Window) ScrollHeight() float64 { return w.scrollHeight }
func (w *Window) Columns() int          { return w.columns }
func (w *Window) Rows() int             { return w.rows }

// SetScrollX clamps v to the scroll range. Non-finite values are ignored.
func (w *Window) SetScrollX(v float64) {
	x := math.Max(math.Min(v, w.scrollWidth-w.frame.Width), 0)
	if w.scrollX != x && isFinite(v) {
		w.scrollX = x
		w.relayout()
	}
}

func (w *Window) SetScrollY(v float64) {
	y := math.Max(math.Min(v, w.scrollHeight-w.frame.Height), 0)
	if w.scrollY != y && isFinite(v) {
		w.scrollY = y
		w.relayout()
	}
}

func (w *Window) Grid() (width, height float64) { return w.gridWidth, w.gridHeight }

func (w *Window) SetGrid(width, height float64) {
	if w.gridWidth != width || w.gridHeight != height {
		w.gridWidth, w.gridHeight = width, height
		w.relayout()
	}
}

func (w *Window) GridGap() (x, y float64) { return w.gridGapX, w.gridGapY }

func (w *Window) SetGridGap(x, y float64) {
	if w.gridGapX != x || w.gridGapY != y {
		w.gridGapX, w.gridGapY = x, y
		w.relayout()
	}
}

func (w *Window) Padding() (x, y float64) { return w.paddingX, w.paddingY }

func (w *Window) SetPadding(x, y float64) {
	if w.paddingX != x || w.paddingY != y {
		w.paddingX, w.paddingY = x, y
		w.relayout()
	}
}

func (w *Window) Overflow() string {
	if w.hidden {
		return "hidden"
	}
	return "visible"
}

func (w *Window) SetOverflow(v string) {
	switch v {
	case "visible":
		w.hidden = false
	case "hidden":
		w.hidden = true
	}
}

// VisibleGridColumns is the number of whole cells that fit across the
// window. It returns 0 in normal layout and -1 when cells have no width.
func (w *Window) VisibleGridColumns() int {
	if w.layout == LayoutNormal {
		return 0
	}
	unit := w.gridWidth + w.gridGapX
	if unit <= 0 {
		return -1
	}
	return int(math.Floor((w.frame.Width + w.gridGapX - w.paddingX*2) / unit))
}

// VisibleGridRows mirrors VisibleGridColumns vertically.
func (w *Window) VisibleGridRows() int {
	if w.layout == LayoutNormal {
		return 0
	}
	unit := w.gridHeight + w.gridGapY
	if unit <= 0 {
		return -1
	}
	return int(math.Floor((w.frame.Height + w.gridGapY - w.paddingY*2) / unit))
}

// ScrollToChild scrolls the least distance that brings e fully into view.
func (w *Window) ScrollToChild(e Element) {
	index := w.indexOfChild(e.Node().id)
	if index == -1 {
		return
	}
	switch w.layout {
	case LayoutNormal:
		f := e.Node().frame
		left := f.X - w.frame.X
		top := f.Y - w.frame.Y
		right := left + f.Width
		bottom := top + f.Height
		w.SetScrollX(geom.Clamp(w.scrollX, right-w.frame.Width, left))
		w.SetScrollY(geom.Clamp(w.scrollY, bottom-w.frame.Height, top))
	case LayoutHorizontalGrid:
		if cols := w.VisibleGridColumns(); cols > 0 {
			y := float64(index/cols)*(w.gridHeight+w.gridGapY) + w.paddingY
			w.SetScrollY(geom.Clamp(w.scrollY, y+w.gridHeight-w.frame.Height, y))
		}
	case LayoutVerticalGrid:
		if rows := w.VisibleGridRows(); rows > 0 {
			x := float64(index/rows)*(w.gridWidth+w.gridGapX) + w.paddingX
			w.SetScrollX(geom.Clamp(w.scrollX, x+w.gridWidth-w.frame.Width, x))
		}
	}
}

// RequestResizing schedules one relayout for the end of the frame no matter
// how many children ask for it.
func (w *Window) RequestResizing() {
	if w.requesting {
		return
	}
	w.requesting = true
	w.m.svc.Deferred.Push(func() {
		w.requesting = false
		if !w.destroyed {
			w.Resize()
		}
	})
}

func (w *Window) Resize() {
	if !w.beginResize() {
		return
	}
	switch w.layout {
	case LayoutHorizontalGrid:
		w.horizontalGridResize()
	case LayoutVerticalGrid:
		w.verticalGridResize()
	default:
		w.normalResize()
	}
}

// resizeInCell resolves c against the proxy frame.
func (w *Window) resizeInCell(c Element) {
	n := c.Node()
	n.proxy = &w.proxyFrame
	c.Resize()
	n.proxy = nil
}

func (w *Window) normalResize() {
	w.proxyFrame = Frame{
		X:       w.frame.X - w.scrollX,
		Y:       w.frame.Y - w.scrollY,
		Width:   w.frame.Width,
		Height:  w.frame.Height,
		Matrix:  w.frame.Matrix,
		Opacity: w.frame.Opacity,
	}
	for i := 0; i < len(w.children); i++ {
		if c := w.m.el(w.children[i]); c != nil {
			w.resizeInCell(c)
		}
	}
	w.calculateScrollArea()
}

// calculateScrollArea estimates the content extent from the children's
// transforms and reclamps the scroll position.
func (w *Window) calculateScrollArea() {
	pw, ph := w.frame.Width, w.frame.Height
	sw, sh := pw, ph
	for i := 0; i < len(w.children); i++ {
		c := w.m.el(w.children[i])
		if c == nil {
			continue
		}
		t := &c.Node().transform
		x := t.X + t.X2*pw
		y := t.Y + t.Y2*ph
		cw := math.Max(t.Width+t.Width2*pw, 0)
		ch := math.Max(t.Height+t.Height2*ph, 0)
		sw = math.Max(sw, x+(1-t.AnchorX)*cw*t.ScaleX)
		sh = math.Max(sh, y+(1-t.AnchorY)*ch*t.ScaleY)
	}
	w.scrollWidth = sw
	w.scrollHeight = sh
	w.SetScrollX(w.scrollX)
	w.SetScrollY(w.scrollY)
}

func (w *Window) horizontalGridResize() {
	n := len(w.children)
	if n == 0 {
		w.columns, w.rows = 0, 0
		return
	}
	unitW := w.gridWidth + w.gridGapX
	unitH := w.gridHeight + w.gridGapY
	cols := n
	if unitW != 0 {
		cols = max(int(math.Floor((w.frame.Width+w.gridGapX-w.paddingX*2)/unitW)), 1)
	}
	rows := (n + cols - 1) / cols
	w.scrollWidth = math.Max(w.frame.Width, w.gridWidth)
	w.scrollHeight = math.Max(w.frame.Height, float64(rows)*unitH-w.gridGapY+w.paddingY*2)
	w.columns, w.rows = cols, rows
	w.SetScrollY(w.scrollY)
	w.layoutCells(func(i int) (float64, float64) {
		return float64(i%cols) * unitW, float64(i/cols) * unitH
	})
}

func (w *Window) verticalGridResize() {
	n := len(w.children)
	if n == 0 {
		w.columns, w.rows = 0, 0
		return
	}
	unitW := w.gridWidth + w.gridGapX
	unitH := w.gridHeight + w.gridGapY
	rows := n
	if unitH != 0 {
		rows = max(int(math.Floor((w.frame.Height+w.gridGapY-w.paddingY*2)/unitH)), 1)
	}
	cols := (n + rows - 1) / rows
	w.scrollWidth = math.Max(w.frame.Width, float64(cols)*unitW-w.gridGapX+w.paddingX*2)
	w.scrollHeight = math.Max(w.frame.Height, w.gridHeight)
	w.columns, w.rows = cols, rows
	w.SetScrollX(w.scrollX)
	w.layoutCells(func(i int) (float64, float64) {
		return float64(i/rows) * unitW, float64(i%rows) * unitH
	})
}

// layoutCells resizes every child inside the cell offset cell(i) returns.
func (w *Window) layoutCells(cell func(i int) (x, y float64)) {
	sx := w.frame.X - w.scrollX + w.paddingX
	sy := w.frame.Y - w.scrollY + w.paddingY
	for i := 0; i < len(w.children); i++ {
		c := w.m.el(w.children[i])
		if c == nil {
			continue
		}
		ox, oy := cell(i)
		w.proxyFrame = Frame{
			X:       sx + ox,
			Y:       sy + oy,
			Width:   w.gridWidth,
			Height:  w.gridHeight,
			Matrix:  w.frame.Matrix,
			Opacity: w.frame.Opacity,
		}
		w.resizeInCell(c)
	}
}

func (w *Window) Draw(r Renderer) {
	if !w.visible {
		return
	}
	if !w.hidden {
		w.drawChildren(r)
		return
	}
	r.SetMatrix(w.frame.Matrix)
	// A hidden window inside another clip is not drawn.
	if !r.BeginClip(w.frame.X, w.frame.Y, w.frame.Width, w.frame.Height) {
		return
	}
	start, end := w.visibleRange()
	for i := start; i < end && i < len(w.children); i++ {
		if c := w.m.el(w.children[i]); c != nil {
			c.Draw(r)
		}
	}
	r.EndClip()
}

// visibleRange is the half-open range of children a clipped window draws.
// Grid layouts skip the rows or columns scrolled out of view.
func (w *Window) visibleRange() (start, end int) {
	n := len(w.children)
	unitW := w.gridWidth + w.gridGapX
	unitH := w.gridHeight + w.gridGapY
	if w.layout == LayoutNormal || unitW*unitH == 0 {
		return 0, n
	}
	if w.layout == LayoutHorizontalGrid {
		top := w.scrollY - w.paddingY
		startRow := int(math.Floor(top / unitH))
		endRow := int(math.Ceil((top + w.frame.Height) / unitH))
		return max(startRow*w.columns, 0), min(endRow*w.columns, n)
	}
	left := w.scrollX - w.paddingX
	startCol := int(math.Floor(left / unitW))
	endCol := int(math.Ceil((left + w.frame.Width) / unitW))
	return max(startCol*w.rows, 0), min(endCol*w.rows, n)
}
