package fetch

import (
	"context"
	"fmt"
	"sync"

	"github.com/gggion/org-transclusion-blocks/internal/ctxlog"
	"github.com/gggion/org-transclusion-blocks/internal/resolver"
)

// Dispatcher routes a resolved reference to the fetcher registered for its
// scheme and memoizes successful fetches by full reference string, so
// repeated references to the same content cost one retrieval.
type Dispatcher struct {
	mu       sync.Mutex
	fetchers map[string]Fetcher
	fallback Fetcher
	cache    map[string]*Payload
}

// NewDispatcher builds a dispatcher whose scheme-less references go to the
// fallback fetcher.
func NewDispatcher(fallback Fetcher) *Dispatcher {
	return &Dispatcher{
		fetchers: map[string]Fetcher{},
		fallback: fallback,
		cache:    map[string]*Payload{},
	}
}

// RegisterScheme installs a fetcher for one scheme, replacing any previous
// registration.
func (d *Dispatcher) RegisterScheme(scheme string, f Fetcher) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fetchers[scheme] = f
}

// Fetch retrieves the content for a resolution. A nil resolution means the
// pipeline had nothing to do; the dispatcher mirrors that as (nil, nil).
func (d *Dispatcher) Fetch(ctx context.Context, res *resolver.Resolution) (*Payload, error) {
	if res == nil {
		return nil, nil
	}
	logger := ctxlog.FromContext(ctx)

	key := res.Reference()
	d.mu.Lock()
	if p, ok := d.cache[key]; ok {
		d.mu.Unlock()
		logger.Debug("Serving reference from fetch cache.", "reference", key)
		return p, nil
	}
	d.mu.Unlock()

	t, err := ParseTarget(res.Link)
	if err != nil {
		return nil, err
	}

	f := d.fallback
	if t.Scheme != "" {
		d.mu.Lock()
		registered, ok := d.fetchers[t.Scheme]
		d.mu.Unlock()
		if ok {
			f = registered
		} else if t.Scheme != "file" {
			return nil, fmt.Errorf("no fetcher registered for scheme %q", t.Scheme)
		}
	}
	if f == nil {
		return nil, fmt.Errorf("no fetcher available for reference %s", res.Link)
	}

	p, err := f.Fetch(ctx, t, res)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	d.cache[key] = p
	d.mu.Unlock()
	return p, nil
}

// InvalidateCache drops every memoized payload.
func (d *Dispatcher) InvalidateCache() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cache = map[string]*Payload{}
}
