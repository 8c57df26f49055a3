// Package fetch retrieves the content a resolved reference points at. Each
// scheme has its own fetcher; a dispatcher routes by scheme and memoizes the
// last successful fetch so re-processing an unchanged document does not hit
// the filesystem or network again.
package fetch

import (
	"context"
	"fmt"
	"strings"

	"github.com/gggion/org-transclusion-blocks/internal/resolver"
)

// Payload is the retrieved content for one reference.
type Payload struct {
	// Content is the retrieved text, already narrowed by any range, search,
	// or thing directive.
	Content string

	// Source identifies where the content came from (path, URL, or
	// document name).
	Source string

	// Scheme is the reference scheme that produced the payload.
	Scheme string
}

// Fetcher retrieves content for one parsed reference target.
type Fetcher interface {
	Fetch(ctx context.Context, t Target, res *resolver.Resolution) (*Payload, error)
}

// Target is the decomposed interior of a bracketed reference.
type Target struct {
	// Scheme is the part before the first colon, lowercased. Empty for
	// scheme-less references, which are treated as file paths.
	Scheme string

	// Path is the part after the scheme, up to any search option.
	Path string

	// Search is the `::` search option, empty when absent. A numeric
	// search option addresses a line; anything else is matched as text.
	Search string
}

// ParseTarget decomposes a reference. The input may be bracketed or bare.
func ParseTarget(ref string) (Target, error) {
	inner := strings.TrimSuffix(strings.TrimPrefix(ref, "[["), "]]")
	if inner == "" {
		return Target{}, fmt.Errorf("empty reference")
	}

	var t Target
	if i := strings.Index(inner, ":"); i > 0 && !strings.HasPrefix(inner, "/") && !strings.HasPrefix(inner, ".") {
		t.Scheme = strings.ToLower(inner[:i])
		t.Path = inner[i+1:]
	} else {
		t.Path = inner
	}

	// http://host/x keeps its scheme prefix in the path for the client.
	if t.Scheme == "http" || t.Scheme == "https" {
		t.Path = t.Scheme + ":" + t.Path
		return t, nil
	}

	if i := strings.Index(t.Path, "::"); i >= 0 {
		t.Search = t.Path[i+2:]
		t.Path = t.Path[:i]
	}
	return t, nil
}
