package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/clipmirror/tokrelay/internal/config"
	"github.com/clipmirror/tokrelay/internal/domain"
)

// TikwmClient resolves share URLs through a tikwm-style lookup API, which
// accepts any TikTok share link (vt/vm short links included) and returns
// the post metadata with unauthenticated play URLs.
type TikwmClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewTikwmClient creates a resolver backed by the configured lookup API.
func NewTikwmClient(cfg config.ResolverConfig) *TikwmClient {
	return &TikwmClient{
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// lookupResponse is the envelope the lookup API wraps every answer in.
// code 0 means success; anything else carries a human-readable msg.
type lookupResponse struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// postData is the subset of the post record the gateway classifies on.
// HD play URL is preferred, then the clean SD one, then the watermarked
// fallback.
type postData struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	HDPlay string   `json:"hdplay"`
	Play   string   `json:"play"`
	WMPlay string   `json:"wmplay"`
	Images []string `json:"images"`
}

// Resolve implements Resolver.
func (c *TikwmClient) Resolve(ctx context.Context, shareURL string) (*domain.ResolvedMedia, error) {
	endpoint := fmt.Sprintf("%s/api/?url=%s&hd=1", c.baseURL, url.QueryEscape(shareURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create lookup request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrResolveFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: lookup API status %d", domain.ErrResolveFailed, resp.StatusCode)
	}

	var envelope lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: decode lookup response: %v", domain.ErrResolveFailed, err)
	}
	if envelope.Code != 0 {
		return nil, fmt.Errorf("%w: lookup API: %s", domain.ErrResolveFailed, envelope.Msg)
	}

	var post postData
	if err := json.Unmarshal(envelope.Data, &post); err != nil {
		return nil, fmt.Errorf("%w: decode post data: %v", domain.ErrResolveFailed, err)
	}

	media := &domain.ResolvedMedia{
		Raw: envelope.Data,
	}

	if len(post.Images) > 0 {
		media.ContentType = domain.ContentImageGallery
		media.ImageURLs = post.Images
	} else {
		media.ContentType = domain.ContentVideo
		media.VideoURL = firstNonEmpty(post.HDPlay, post.Play, post.WMPlay)
	}

	// A video post without any play URL is reclassified as unknown.
	media.Normalize()

	return media, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
