package engine

import (
	"fmt"
	"log/slog"

	"github.com/solterm/orrery/catalog"
	"github.com/solterm/orrery/render"
	"github.com/solterm/orrery/scene"
	"github.com/solterm/orrery/starfield"
	"github.com/solterm/orrery/terminal"
)

// VizConfig sizes the visualization at mount.
type VizConfig struct {
	StarCount    int
	StarInner    float64
	StarOuter    float64
	StarSeed     uint64
	FPS          int
	PixelDensity int
}

// Visualization is the mounted portal: scene graph, render loop driver,
// viewport manager, and the lifecycle registry that tears them all down.
type Visualization struct {
	Scene    *scene.Scene
	Driver   *Driver
	Viewport *Viewport
	Renderer *render.Renderer

	lifecycle *Lifecycle
}

// Mount builds the scene and starts the render loop. A nil surface means
// the container is absent: mount no-ops safely and the returned handle's
// Teardown likewise no-ops. Invalid star-field or catalog configuration is
// a programming error and fails fast instead.
func Mount(surface *terminal.Surface, cat catalog.Catalog, cfg VizConfig, tp TimeProvider) (*Visualization, error) {
	v := &Visualization{lifecycle: NewLifecycle()}

	stars, err := starfield.Generate(cfg.StarCount, cfg.StarInner, cfg.StarOuter, cfg.StarSeed)
	if err != nil {
		return nil, err
	}

	if surface == nil {
		slog.Warn("mount container absent, visualization inert")
		return v, nil
	}

	// Surface registered first so reverse-order disposal releases it only
	// after the loop has stopped and scene resources are gone.
	v.lifecycle.Register("surface", surface.Fini)

	s, err := scene.Compose(cat, stars, v.lifecycle)
	if err != nil {
		// Partial mount: release whatever was already registered
		v.lifecycle.Dispose()
		return nil, fmt.Errorf("engine: compose scene: %w", err)
	}
	v.Scene = s

	w, h := surface.Size()
	v.Renderer = render.New(surface, w, h, cfg.PixelDensity, render.WorldExtentFor(cat))
	v.lifecycle.Register("renderer", func() { v.Renderer.SetOverlay(nil) })

	v.Viewport = NewViewport(s.Camera, v.Renderer, cfg.PixelDensity)
	v.Viewport.HandleResize(w, h)

	scheduler := NewTickerScheduler(cfg.FPS)
	v.Driver = NewDriver(s, v.Renderer, scheduler, tp)
	v.lifecycle.Register("driver", v.Driver.Stop)

	v.Driver.Start()
	return v, nil
}

// Teardown releases everything mount created, exactly once, loop first and
// surface last. Safe to call repeatedly and safe on an inert mount.
func (v *Visualization) Teardown() {
	v.lifecycle.Dispose()
}

// Mounted reports whether the visualization has a live driver.
func (v *Visualization) Mounted() bool {
	return v.Driver != nil
}
