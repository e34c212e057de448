package app

import (
	"fmt"

	"github.com/five82/tailview/internal/config"
	"github.com/five82/tailview/internal/controller"
	"github.com/five82/tailview/internal/prefs"
	"github.com/five82/tailview/internal/ui"
)

// Options configure the tailview application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/tailview/prefs.toml
	Source     string // log file to open at startup (optional)
}

// Run boots the tailview TUI and blocks until the user quits.
func Run(opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	ctrl := controller.New(controller.Options{
		TailInterval: cfg.TailPoll,
		RecentLimit:  cfg.RecentLimit,
		Recent:       userPrefs.Recent,
	})
	defer ctrl.Stop()

	var startupMsg string
	if opts.Source != "" {
		// A bad path is not fatal; the UI starts empty with the error
		// in the status bar.
		if err := ctrl.OpenSource(opts.Source); err != nil {
			startupMsg = err.Error()
		}
	}

	uiOpts := ui.Options{
		Controller: ctrl,
		DrainEvery: cfg.DrainEvery,
		ThemeName:  userPrefs.Theme,
		PrefsPath:  opts.PrefsPath,
		StatusMsg:  startupMsg,
	}
	return ui.Run(uiOpts)
}
