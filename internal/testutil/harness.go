// Package testutil provides the shared harness used by integration-style
// tests: temp-dir fixture layout, an app run wrapper, and stock test link
// types.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gggion/org-transclusion-blocks/internal/app"
	"github.com/gggion/org-transclusion-blocks/internal/linktype"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App

	// Root is the fixture directory; documents live under docs/ and
	// manifests under modules/.
	Root string
}

// RunIntegrationTest provides a standardized harness for running
// integration tests using a default background context.
func RunIntegrationTest(t *testing.T, files map[string]string, cfg app.Config, modules ...linktype.Module) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, cfg, modules...)
}

// RunIntegrationTestWithContext lays the fixture files out under a temp
// root, builds an app from the config, and runs it. The test provides
// relative paths (e.g. "docs/main.org", "modules/file.hcl"), which
// naturally creates the subdirectory structure within the root.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, cfg app.Config, modules ...linktype.Module) *HarnessResult {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "modules"), 0o755))

	for name, content := range files {
		filePath := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	if cfg.DocPath == "" {
		cfg.DocPath = filepath.Join(root, "docs")
	} else {
		cfg.DocPath = filepath.Join(root, cfg.DocPath)
	}
	if cfg.ManifestsPath == "" {
		cfg.ManifestsPath = filepath.Join(root, "modules")
	} else {
		cfg.ManifestsPath = filepath.Join(root, cfg.ManifestsPath)
	}

	config, err := app.NewConfig(cfg)
	require.NoError(t, err)

	testApp, logBuffer := app.SetupAppTest(t, config, modules...)
	runErr := testApp.Run(ctx, config)

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
		Root:      root,
	}
}

// ReadFixture returns the current content of one fixture file.
func ReadFixture(t *testing.T, result *HarnessResult, name string) string {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join(result.Root, name))
	require.NoError(t, err)
	return string(raw)
}
