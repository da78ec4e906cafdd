package main

import (
	"time"

	"github.com/hubastard/groveui/engine/colors"
	"github.com/hubastard/groveui/engine/core"
	"github.com/hubastard/groveui/engine/geom"
	"github.com/hubastard/groveui/engine/gfx/renderer2d"
	"github.com/hubastard/groveui/engine/profiler"
	"github.com/hubastard/groveui/engine/scratch"
	"github.com/hubastard/groveui/engine/text"
	"github.com/hubastard/groveui/engine/ui"
)

const (
	overlayMargin  = 16
	overlayPadding = 12
)

// debugLayer draws frame, renderer and process statistics over the UI.
// F3 toggles it; Ctrl+P dumps the profiler capture.
type debugLayer struct {
	app     *App
	canvas  *renderer2d.Canvas
	label   *text.Label
	sampler *profiler.Sampler
	buf     *scratch.Buffer
	visible bool

	tick    int
	last    time.Time
	frameMs float64
}

func newDebugLayer(a *App) *debugLayer {
	return &debugLayer{
		app:     a,
		canvas:  a.canvas,
		sampler: profiler.NewSampler(500 * time.Millisecond),
		buf:     scratch.New(1024),
		visible: a.cfg.Debug,
	}
}

func (l *debugLayer) OnAttach(e *core.Engine) {
	l.label = text.NewLabel(l.app.printers, ui.TextStyle{
		Size:  14,
		Color: colors.White,
		Font:  l.app.cfg.Font.File,
	})
}

func (l *debugLayer) OnDetach(e *core.Engine) { l.label.Destroy() }

func (l *debugLayer) OnUpdate(e *core.Engine, dt float64) { l.tick++ }

func (l *debugLayer) OnRender(e *core.Engine, alpha float64) {
	now := time.Now()
	if !l.last.IsZero() {
		l.frameMs = float64(now.Sub(l.last).Microseconds()) / 1000
	}
	l.last = now
	if !l.visible {
		return
	}
	defer profiler.Start("debug.Draw")()

	stats := l.canvas.Stats()
	s := l.sampler.Sample(now)
	b := l.buf
	b.Reset()
	b.S("<color:ffd24a>Frame</color>\n")
	b.S("  tick ").I(l.tick).S("  ").F64(l.frameMs, 2).S(" ms")
	if l.frameMs > 0 {
		b.S(" (").F64(1000/l.frameMs, 1).S(" fps)")
	}
	b.S("\n<color:ffd24a>UI</color>\n")
	b.S("  language ").S(l.app.local.Active()).S("  printers ").I(l.app.printers.Live()).C('\n')
	b.S("  errors ").I(int(l.app.report.count.Load())).C('\n')
	b.S("<color:ffd24a>2D renderer</color>\n")
	b.S("  draw calls ").I(stats.DrawCalls).S("  vertices ").I(stats.VertexCount).C('\n')
	b.S("  indices ").I(stats.IndexCount).S("  textures ").I(l.canvas.TextureCount()).C('\n')
	b.S("<color:ffd24a>Process</color>\n")
	b.S("  heap ").Size(s.HeapAlloc).S("  rss ").Size(s.RSS).C('\n')
	b.S("  allocs ").U(s.Mallocs).S("  goroutines ").I(s.Goroutines).C('\n')
	b.S("  cpu ").F64(s.CPUPercent, 1).S("% of ").I(s.CPUs).S(" cores  mem ").F64(s.MemPercent, 1).S("%\n")
	b.S("<color:ffd24a>GPU</color>\n")
	b.S("  ").S(e.Renderer.GPUVendor()).C('\n')
	b.S("  ").S(e.Renderer.GPURenderer()).C('\n')
	b.S("  ").S(e.Renderer.GPUVersion())

	str := b.String()
	l.label.Set(str)
	w, h := l.label.Size()
	l.canvas.Begin()
	l.canvas.SetMatrix(geom.Identity())
	l.canvas.FillRect(overlayMargin, overlayMargin, w+2*overlayPadding, h+2*overlayPadding, colors.Black.WithAlpha(0.6))
	l.label.Draw(l.canvas, overlayMargin+overlayPadding, overlayMargin+overlayPadding, str)
	l.canvas.End()
}

func (l *debugLayer) OnEvent(e *core.Engine, ev core.Event) bool {
	k, ok := ev.(core.EventKey)
	if !ok || !k.Down {
		return false
	}
	switch {
	case k.Key == core.KeyF3:
		l.visible = !l.visible
		return true
	case k.Key == core.KeyP && k.Mods&core.ModCtrl != 0:
		if path, err := profiler.OpenProfilerGraph(); err != nil {
			logger.Warn("profiler dump", "err", err)
		} else {
			logger.Info("profiler dump", "path", path)
		}
		return true
	}
	return false
}
