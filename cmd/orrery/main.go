package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/solterm/orrery/app"
	"github.com/solterm/orrery/audio"
	"github.com/solterm/orrery/catalog"
	"github.com/solterm/orrery/client"
	"github.com/solterm/orrery/config"
	"github.com/solterm/orrery/engine"
	"github.com/solterm/orrery/logger"
	"github.com/solterm/orrery/terminal"
)

func main() {
	// Restore the terminal even if we crash, then surface the stack where
	// it can be read.
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset()
			fmt.Fprintf(os.Stderr, "\norrery crashed: %v\n", r)
			fmt.Fprintf(os.Stderr, "stack trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logClose, err := logger.Init(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logClose.Close()

	surface, err := terminal.New()
	if err != nil {
		// Container absent: nothing to draw on. The visualization mounts
		// inert rather than failing loudly, but with no terminal there is
		// no application either.
		fmt.Fprintf(os.Stderr, "terminal: %v\n", err)
		os.Exit(1)
	}

	audioEngine := audio.NewEngine(cfg.Audio)
	if err := audioEngine.Start(); err != nil {
		// Non-fatal, the portal runs silent
		slog.Warn("audio unavailable", "error", err)
	}
	defer audioEngine.Stop()

	viz, err := engine.Mount(surface, catalog.Default(), engine.VizConfig{
		StarCount:    cfg.Stars.Count,
		StarInner:    cfg.Stars.InnerRadius,
		StarOuter:    cfg.Stars.OuterRadius,
		StarSeed:     cfg.Stars.Seed,
		FPS:          cfg.Display.FPS,
		PixelDensity: cfg.Display.PixelDensity,
	}, nil)
	if err != nil {
		surface.Fini()
		fmt.Fprintf(os.Stderr, "mount: %v\n", err)
		os.Exit(1)
	}
	defer viz.Teardown()

	api := client.New(cfg.Backend.BaseURL, cfg.Backend.Timeout, cfg.Backend.QueryRate)

	slog.Info("orrery started",
		"fps", cfg.Display.FPS,
		"stars", cfg.Stars.Count,
		"backend", cfg.Backend.BaseURL,
	)

	if err := app.New(surface, viz, api).Run(); err != nil {
		viz.Teardown()
		fmt.Fprintf(os.Stderr, "orrery: %v\n", err)
		os.Exit(1)
	}
}
