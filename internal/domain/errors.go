package domain

import "errors"

// Domain errors.
var (
	// ErrMissingURL is returned when the inbound request has no url parameter.
	ErrMissingURL = errors.New("missing url parameter")

	// ErrResolveFailed is returned when the share URL cannot be resolved
	// to usable metadata or a media URL.
	ErrResolveFailed = errors.New("could not resolve share URL")

	// ErrGalleryNotStreamable is returned when a gallery post reaches the
	// media-relay path, which can only serve a single stream.
	ErrGalleryNotStreamable = errors.New("gallery posts cannot be relayed as a stream")

	// ErrUpstreamFetch is returned when the second-leg fetch of the direct
	// media URL fails or answers with a non-success status.
	ErrUpstreamFetch = errors.New("upstream media fetch failed")

	// ErrURLExpired is returned when the direct media URL has expired or
	// its origin authorization was rejected.
	ErrURLExpired = errors.New("media URL has expired")
)
