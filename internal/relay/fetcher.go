package relay

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/clipmirror/tokrelay/internal/config"
	"github.com/clipmirror/tokrelay/internal/domain"
)

// HTTPFetcher implements Fetcher using a streaming HTTP client with an
// identity override: the platform's CDN only authorizes requests carrying
// a Referer from the platform's own site and a browser-like User-Agent.
type HTTPFetcher struct {
	// streamClient has no overall timeout; media bodies can legitimately
	// take minutes to drain. Only the wait for response headers is bounded.
	streamClient *http.Client
	cfg          config.RelayConfig
}

// NewHTTPFetcher creates a new upstream media fetcher.
func NewHTTPFetcher(cfg config.RelayConfig) *HTTPFetcher {
	headerTimeout := cfg.ResponseHeaderTimeout
	if headerTimeout <= 0 {
		headerTimeout = 30 * time.Second
	}

	return &HTTPFetcher{
		streamClient: &http.Client{
			Transport: &http.Transport{
				ResponseHeaderTimeout: headerTimeout,
			},
		},
		cfg: cfg,
	}
}

// Open implements Fetcher.
func (f *HTTPFetcher) Open(ctx context.Context, mediaURL, callerRange string) (*UpstreamResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create upstream request: %w", err)
	}

	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Referer", f.cfg.Referer)
	req.Header.Set("Accept", "video/mp4,video/*;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	if callerRange != "" {
		req.Header.Set("Range", callerRange)
	}

	resp, err := f.streamClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamFetch, err)
	}

	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: upstream status %d", domain.ErrURLExpired, resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: unexpected upstream status %d", domain.ErrUpstreamFetch, resp.StatusCode)
	}

	if resp.Body == nil || resp.Body == http.NoBody {
		if resp.Body != nil {
			resp.Body.Close()
		}
		return nil, fmt.Errorf("%w: upstream response has no body", domain.ErrUpstreamFetch)
	}

	return &UpstreamResponse{
		StatusCode:    resp.StatusCode,
		ContentType:   resp.Header.Get("Content-Type"),
		ContentLength: resp.ContentLength,
		ContentRange:  resp.Header.Get("Content-Range"),
		AcceptsRanges: resp.Header.Get("Accept-Ranges"),
		Body:          resp.Body,
	}, nil
}
