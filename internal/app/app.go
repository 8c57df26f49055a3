package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gggion/org-transclusion-blocks/internal/ctxlog"
	"github.com/gggion/org-transclusion-blocks/internal/fetch"
	"github.com/gggion/org-transclusion-blocks/internal/linktype"
	"github.com/gggion/org-transclusion-blocks/internal/manifest"
	"github.com/gggion/org-transclusion-blocks/internal/resolver"
	"github.com/gggion/org-transclusion-blocks/internal/transclude"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *linktype.Registry
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
func NewApp(outW io.Writer, cfg *Config, modules ...linktype.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := linktype.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All Go modules registered.", "count", len(modules))

	if cfg.ManifestsPath != "" {
		if err := manifest.LoadRecursively(ctx, reg, cfg.ManifestsPath); err != nil {
			// A failure to load manifests is a fatal startup error.
			panic(fmt.Errorf("failed to load link type manifests: %w", err))
		}
	}
	logger.Debug("Link type registry populated.", "types", reg.Types())

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *linktype.Registry {
	return a.registry
}

// newProcessor assembles the per-run pipeline around a document directory.
func (a *App) newProcessor(cfg *Config, baseDir string) *transclude.Processor {
	res := resolver.New(a.registry, resolver.Options{ShowWarnings: cfg.ShowWarnings})

	files := &fetch.FileFetcher{BaseDir: baseDir}
	d := fetch.NewDispatcher(files)
	d.RegisterScheme("file", files)
	httpFetcher := fetch.NewHTTPFetcher(30 * time.Second)
	d.RegisterScheme("http", httpFetcher)
	d.RegisterScheme("https", httpFetcher)
	d.RegisterScheme("id", &fetch.IDFetcher{SearchDir: baseDir})

	return transclude.New(res, d, transclude.Options{
		ShowWarnings: cfg.ShowWarnings,
		NoDecorate:   cfg.NoDecorate,
	})
}
