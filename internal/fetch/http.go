package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gggion/org-transclusion-blocks/internal/ctxlog"
	"github.com/gggion/org-transclusion-blocks/internal/resolver"
)

// HTTPFetcher retrieves content over HTTP(S). The zero value is not usable;
// construct with NewHTTPFetcher so the shared client gets a pooled
// transport.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher builds a fetcher with a timeout-bounded client.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, t Target, res *resolver.Resolution) (*Payload, error) {
	logger := ctxlog.FromContext(ctx)
	url := t.Path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	logger.Debug("Received HTTP response.", "url", url, "status", resp.Status)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("GET %s: unexpected status %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	content := string(body)
	if res != nil && (res.Lines != nil || res.Thing != "") {
		content, err = narrowFile(content, Target{}, res)
		if err != nil {
			return nil, fmt.Errorf("GET %s: %w", url, err)
		}
	}
	return &Payload{Content: content, Source: url, Scheme: t.Scheme}, nil
}
