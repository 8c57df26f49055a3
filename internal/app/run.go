package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gggion/org-transclusion-blocks/internal/ctxlog"
	"github.com/gggion/org-transclusion-blocks/internal/fsutil"
	"github.com/gggion/org-transclusion-blocks/internal/orgdoc"
)

// Run executes the main application logic based on the provided
// configuration: every org document under the configured path is resolved,
// fetched, and spliced, then written back when the config says so.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	docPaths, err := fsutil.FindFilesByExtension(cfg.DocPath, ".org")
	if err != nil {
		return fmt.Errorf("failed to locate documents: %w", err)
	}
	if len(docPaths) == 0 {
		a.logger.Warn("No .org documents found in path.", "path", cfg.DocPath)
		return nil
	}
	a.logger.Debug("Found documents to process.", "files", docPaths)

	var resolved, skipped, failed int
	for _, path := range docPaths {
		r, err := a.processDocument(ctx, cfg, path)
		if err != nil {
			return err
		}
		resolved += r.Resolved
		skipped += r.Skipped
		failed += r.Failed
	}

	a.logger.Info("Processing finished.",
		"documents", len(docPaths),
		"blocks_resolved", resolved,
		"blocks_skipped", skipped,
		"blocks_failed", failed,
	)
	if failed > 0 {
		return fmt.Errorf("%d block(s) failed to resolve", failed)
	}
	return nil
}

func (a *App) processDocument(ctx context.Context, cfg *Config, path string) (blockTally, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return blockTally{}, fmt.Errorf("failed to read document %s: %w", path, err)
	}

	doc, err := orgdoc.ParseDocument(path, string(raw))
	if err != nil {
		return blockTally{}, fmt.Errorf("failed to parse document: %w", err)
	}

	proc := a.newProcessor(cfg, filepath.Dir(path))
	res, err := proc.Process(ctx, doc)
	if err != nil {
		return blockTally{}, fmt.Errorf("failed to process document %s: %w", path, err)
	}

	for _, w := range res.Warnings {
		a.logger.Warn("Resolution warning.", "doc", path, "message", w.Message)
	}

	if cfg.Write && res.Resolved > 0 {
		if err := os.WriteFile(path, []byte(doc.Text()), 0o644); err != nil {
			return blockTally{}, fmt.Errorf("failed to write document %s: %w", path, err)
		}
		a.logger.Debug("Document written back.", "file", path)
	}
	return blockTally{Resolved: res.Resolved, Skipped: res.Skipped, Failed: res.Failed}, nil
}

type blockTally struct {
	Resolved, Skipped, Failed int
}
