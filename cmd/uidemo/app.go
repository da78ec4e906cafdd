package main

import (
	"log/slog"
	"sync/atomic"

	"github.com/hubastard/groveui/engine/assets"
	"github.com/hubastard/groveui/engine/config"
	"github.com/hubastard/groveui/engine/core"
	"github.com/hubastard/groveui/engine/gfx/renderer2d"
	"github.com/hubastard/groveui/engine/local"
	"github.com/hubastard/groveui/engine/platform"
	"github.com/hubastard/groveui/engine/profiler"
	"github.com/hubastard/groveui/engine/script"
	"github.com/hubastard/groveui/engine/text"
	"github.com/hubastard/groveui/engine/ui"
)

const maxQuads = 10000

// variables is the global variable table behind <global:id> tags.
type variables map[string]any

func (v variables) Get(key string) (any, bool) {
	x, ok := v[key]
	return x, ok
}

// reporter logs runtime UI and script errors and counts them for the
// overlay.
type reporter struct {
	log   *slog.Logger
	count atomic.Int64
}

func (r *reporter) Report(err error) {
	r.count.Add(1)
	r.log.Error("runtime error", "err", err)
}

type App struct {
	cfg    config.Config
	uiID   string
	store  *assets.Store
	report *reporter
	vars   variables

	fonts    *text.Fonts
	canvas   *renderer2d.Canvas
	printers *text.Factory
	local    *local.Local
	manager  *ui.Manager
}

func newApp(cfg config.Config, uiID string) *App {
	return &App{
		cfg:    cfg,
		uiID:   uiID,
		store:  assets.NewStore(cfg.Paths),
		report: &reporter{log: core.NewLogger("ui")},
		vars:   variables{},
	}
}

func (a *App) OnStart(e *core.Engine) {
	profiler.Init(1 << 16)

	vs, err := a.store.Shader("renderer2d.vert")
	if err != nil {
		logger.Warn("vertex shader, using built-in", "err", err)
	}
	fs, err := a.store.Shader("renderer2d.frag")
	if err != nil {
		logger.Warn("fragment shader, using built-in", "err", err)
	}
	batch, err := renderer2d.New(e.Renderer, vs, fs, maxQuads)
	if err != nil {
		logger.Error("2D renderer", "err", err)
		e.Window.RequestClose()
		return
	}
	w, h := e.Window.FramebufferSize()
	a.canvas = renderer2d.NewCanvas(e.Renderer, batch, a.store.Image, w, h)

	data, err := a.store.Localization()
	if err != nil {
		logger.Error("localization", "err", err)
		data = &local.Data{}
	}
	a.fonts = text.NewFonts()
	a.loadFont(a.cfg.Font.File)
	for _, lang := range data.Languages {
		a.loadFont(lang.Font)
	}
	a.printers = text.NewFactory(e.Renderer, a.fonts, a.cfg.Font.Size)
	a.local = local.New(data, a.vars)
	a.local.SetTypesetter(a.printers)

	host := script.NewHost(a.report)
	scripts, err := a.store.Scripts()
	if err != nil {
		logger.Error("scripts", "err", err)
	}
	for id, src := range scripts {
		if err := host.Register(id, src); err != nil {
			logger.Error("script", "id", id, "err", err)
		}
	}

	a.manager = ui.New(ui.Services{
		Renderer:  a.canvas,
		Printers:  a.printers,
		Commands:  script.NewRunner(host, a.report),
		Scripts:   host,
		Local:     a.local,
		Variables: a.vars,
		Clipboard: platform.Clipboard{},
		Reporter:  a.report,
		Deferred:  e.Deferred,
	}, a.cfg.Manager())
	a.local.OnChange(func(string) { a.manager.UpdateAllTexts() })
	a.local.SetLanguage(a.cfg.UI.Language)

	files, err := a.store.UIFiles()
	if err != nil {
		logger.Error("ui files", "err", err)
	}
	a.manager.LoadFiles(files...)
	if a.uiID == "" && len(files) != 0 {
		a.uiID = files[0].ID
	}
	if a.uiID != "" {
		a.open(a.uiID)
	}

	e.PushLayer(&uiLayer{manager: a.manager, canvas: a.canvas})
	e.PushLayer(newDebugLayer(a))
}

func (a *App) loadFont(name string) {
	if name == "" || a.fonts.Has(name) {
		return
	}
	b, err := a.store.Font(name)
	if err == nil {
		err = a.fonts.Add(name, b)
	}
	if err != nil {
		logger.Warn("font not loaded", "font", name, "err", err)
	}
}

// open replaces the tree with the top-level elements of a UI file.
func (a *App) open(id string) {
	els, err := a.manager.Load(id)
	if err != nil {
		a.report.Report(err)
		return
	}
	for _, el := range els {
		a.manager.Root().AppendChild(el)
	}
	logger.Info("ui opened", "ui", id, "elements", len(els))
}

func (a *App) OnUpdate(e *core.Engine, dt float64)    {}
func (a *App) OnRender(e *core.Engine, alpha float64) {}
func (a *App) OnEvent(e *core.Engine, ev core.Event)  {}

func (a *App) OnShutdown(e *core.Engine) {
	if a.manager != nil {
		a.manager.Reset()
	}
	if a.canvas != nil {
		a.canvas.Destroy()
	}
	if a.fonts != nil {
		a.fonts.Close()
	}
}
