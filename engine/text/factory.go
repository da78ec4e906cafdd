package text

import (
	"log/slog"

	"github.com/hubastard/groveui/engine/core"
	"github.com/hubastard/groveui/engine/ui"
)

// Factory creates printers sharing one font set. It also receives the
// per-language typesetting settings from the localizer.
type Factory struct {
	r     core.Renderer
	fonts *Fonts
	log   *slog.Logger

	// DefaultSize applies to styles without a size.
	DefaultSize float64

	scale      float64
	langFont   string
	sizeScale  float64
	breakWords bool
	printers   map[*Printer]struct{}
}

var _ ui.PrinterFactory = (*Factory)(nil)

func NewFactory(r core.Renderer, fonts *Fonts, defaultSize float64) *Factory {
	if defaultSize <= 0 {
		defaultSize = 16
	}
	return &Factory{
		r:           r,
		fonts:       fonts,
		log:         core.NewLogger("text"),
		DefaultSize: defaultSize,
		scale:       1,
		sizeScale:   1,
		printers:    map[*Printer]struct{}{},
	}
}

func (f *Factory) New() ui.Printer {
	p := &Printer{f: f}
	f.printers[p] = struct{}{}
	return p
}

func (f *Factory) Scale() float64 { return f.scale }

// SetScale ignores non-positive values. Elements reprint themselves.
func (f *Factory) SetScale(v float64) {
	if v > 0 {
		f.scale = v
	}
}

func (f *Factory) SetLanguageFont(name string) {
	if name != f.langFont {
		f.langFont = name
		f.invalidate()
	}
}

func (f *Factory) SetSizeScale(v float64) {
	if v <= 0 {
		v = 1
	}
	if v != f.sizeScale {
		f.sizeScale = v
		f.invalidate()
	}
}

func (f *Factory) SetBreakWords(on bool) {
	if on != f.breakWords {
		f.breakWords = on
		f.invalidate()
	}
}

// invalidate empties every live printer so its owner prints again.
func (f *Factory) invalidate() {
	for p := range f.printers {
		p.Reset()
	}
}

// Live reports the printers not yet destroyed.
func (f *Factory) Live() int { return len(f.printers) }
