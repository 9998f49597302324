package relay

import (
	"context"
	"io"
)

// Fetcher opens upstream media streams.
type Fetcher interface {
	// Open starts a GET against the direct media URL, forwarding
	// callerRange verbatim when non-empty. Caller is responsible for
	// closing the returned body.
	Open(ctx context.Context, mediaURL, callerRange string) (*UpstreamResponse, error)
}

// UpstreamResponse is the header subset and body of one upstream fetch.
// The body is a live stream, never materialized in memory.
type UpstreamResponse struct {
	// StatusCode is 200 for a full body or 206 for a partial one; Open
	// never returns any other value.
	StatusCode int

	ContentType   string
	ContentLength int64
	ContentRange  string
	AcceptsRanges string

	Body io.ReadCloser
}
