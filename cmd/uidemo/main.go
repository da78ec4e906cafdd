// Command uidemo runs a UI project from disk: UI files, behavior scripts,
// localization, fonts and textures under the configured asset paths.
package main

import (
	"flag"
	"os"

	"github.com/hubastard/groveui/engine/colors"
	"github.com/hubastard/groveui/engine/config"
	"github.com/hubastard/groveui/engine/core"
	glbackend "github.com/hubastard/groveui/engine/gfx/gl"
	"github.com/hubastard/groveui/engine/platform"
)

var logger = core.NewLogger("uidemo")

func main() {
	var cfgPath, uiID string
	flag.StringVar(&cfgPath, "config", "groveui.toml", "runtime configuration file")
	flag.StringVar(&uiID, "ui", "", "UI file to open (defaults to the first one found)")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		// Invalid values were reset to their defaults.
		logger.Warn("config", "err", err)
	}
	core.SetVerbose(cfg.Debug || config.DebugFromEnv())

	app := newApp(cfg, uiID)
	engineCfg := core.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		VSync:      cfg.Window.VSync,
		ClearColor: colors.DarkGray,
	}
	if err := core.Run(app, engineCfg, platform.New, glbackend.New); err != nil {
		logger.Error("engine", "err", err)
		os.Exit(1)
	}
}
