package fetch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gggion/org-transclusion-blocks/internal/ctxlog"
	"github.com/gggion/org-transclusion-blocks/internal/resolver"
)

// FileFetcher retrieves content from the local filesystem. Relative paths
// resolve against BaseDir, which is normally the directory of the document
// being processed.
type FileFetcher struct {
	BaseDir string
}

func (f *FileFetcher) Fetch(ctx context.Context, t Target, res *resolver.Resolution) (*Payload, error) {
	logger := ctxlog.FromContext(ctx)

	path := t.Path
	if !filepath.IsAbs(path) && f.BaseDir != "" {
		path = filepath.Join(f.BaseDir, path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	logger.Debug("Fetched file content.", "path", path, "bytes", len(raw))

	content, err := narrowFile(string(raw), t, res)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Payload{Content: content, Source: path, Scheme: "file"}, nil
}

// narrowFile applies the search option and any ancillary directive to the
// full file content, in that order of specificity: an explicit range wins,
// then a thing lookup, then the reference's own search option.
func narrowFile(content string, t Target, res *resolver.Resolution) (string, error) {
	lines := strings.Split(content, "\n")

	if res != nil && res.Lines != nil {
		return sliceRange(lines, *res.Lines)
	}
	if res != nil && res.Thing != "" {
		return thingAt(lines, res.Thing)
	}
	if t.Search != "" {
		if n, err := strconv.Atoi(t.Search); err == nil {
			if n < 1 || n > len(lines) {
				return "", fmt.Errorf("line %d is outside the file (%d lines)", n, len(lines))
			}
			return lines[n-1], nil
		}
		for _, ln := range lines {
			if strings.Contains(ln, t.Search) {
				return ln, nil
			}
		}
		return "", fmt.Errorf("search option %q matched nothing", t.Search)
	}
	return content, nil
}

func sliceRange(lines []string, rng resolver.RangeSpec) (string, error) {
	start, end := 1, len(lines)
	if rng.HasStart {
		start = rng.Start
	}
	if rng.HasEnd {
		end = rng.End
	}
	if start < 1 {
		start = 1
	}
	if end > len(lines) {
		end = len(lines)
	}
	if start > end {
		return "", fmt.Errorf("range %s selects no lines", rng.String())
	}
	return strings.Join(lines[start-1:end], "\n"), nil
}

// thingAt extracts the contiguous non-blank region containing the first
// line that mentions the thing. It is a textual approximation of
// structure-aware extraction, good enough for definitions separated by
// blank lines.
func thingAt(lines []string, thing string) (string, error) {
	needle := thing
	if i := strings.LastIndexByte(thing, ' '); i >= 0 {
		needle = thing[i+1:]
	}
	for i, ln := range lines {
		if !strings.Contains(ln, needle) {
			continue
		}
		start := i
		for start > 0 && strings.TrimSpace(lines[start-1]) != "" {
			start--
		}
		end := i
		for end+1 < len(lines) && strings.TrimSpace(lines[end+1]) != "" {
			end++
		}
		return strings.Join(lines[start:end+1], "\n"), nil
	}
	return "", fmt.Errorf("thing %q not found", thing)
}
