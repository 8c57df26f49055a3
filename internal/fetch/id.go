package fetch

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gggion/org-transclusion-blocks/internal/ctxlog"
	"github.com/gggion/org-transclusion-blocks/internal/fsutil"
	"github.com/gggion/org-transclusion-blocks/internal/orgdoc"
	"github.com/gggion/org-transclusion-blocks/internal/resolver"
)

// IDFetcher resolves `id:` references by scanning the org files under
// SearchDir for a headline whose ID property matches, returning that
// headline's full subtree text.
type IDFetcher struct {
	SearchDir string
}

func (f *IDFetcher) Fetch(ctx context.Context, t Target, res *resolver.Resolution) (*Payload, error) {
	logger := ctxlog.FromContext(ctx)
	id := strings.TrimSpace(t.Path)
	if id == "" {
		return nil, fmt.Errorf("empty id reference")
	}

	paths, err := fsutil.FindFilesByExtension(f.SearchDir, ".org")
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", f.SearchDir, err)
	}

	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		doc, err := orgdoc.ParseDocument(path, string(raw))
		if err != nil {
			logger.Warn("Skipping unparsable org file during id lookup.", "file", path, "error", err)
			continue
		}
		for _, h := range doc.Headlines {
			if h.Properties["id"] != id {
				continue
			}
			content := doc.Slice(h.Extent)
			if res != nil && (res.Lines != nil || res.Thing != "") {
				content, err = narrowFile(content, Target{}, res)
				if err != nil {
					return nil, fmt.Errorf("id %s in %s: %w", id, path, err)
				}
			}
			return &Payload{Content: content, Source: path, Scheme: "id"}, nil
		}
	}
	return nil, fmt.Errorf("no headline with id %q under %s", id, f.SearchDir)
}
