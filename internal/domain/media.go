package domain

import "encoding/json"

// ContentType classifies what a resolved post contains. It is a tagged
// value so call sites are forced to handle all three cases explicitly
// rather than sniffing field presence.
type ContentType int

const (
	// ContentUnknown means the resolver could not determine what the post
	// holds, or claimed a video without a playable URL.
	ContentUnknown ContentType = iota

	// ContentVideo is a single video stream post.
	ContentVideo

	// ContentImageGallery is a post made of one or more images.
	ContentImageGallery
)

func (t ContentType) String() string {
	switch t {
	case ContentVideo:
		return "video"
	case ContentImageGallery:
		return "image_gallery"
	default:
		return "unknown"
	}
}

// MediaRequest is the classified form of one inbound HTTP request.
// Built once per request and never mutated.
type MediaRequest struct {
	// InputURL is the share URL to resolve. Required.
	InputURL string

	// MetadataOnly is true when the caller asked for the metadata
	// representation instead of a media relay.
	MetadataOnly bool

	// CallerRange holds the caller's raw Range header, forwarded verbatim
	// to the upstream media fetch when present.
	CallerRange string
}

// ResolvedMedia is the resolver's output for one share URL. Owned by the
// gateway for the duration of a single request.
type ResolvedMedia struct {
	ContentType ContentType

	// VideoURL is the direct, time-limited media URL. Non-empty exactly
	// when ContentType is ContentVideo.
	VideoURL string

	// ImageURLs holds the gallery image URLs when ContentType is
	// ContentImageGallery.
	ImageURLs []string

	// Raw is the platform metadata record, passed through verbatim on the
	// metadata path.
	Raw json.RawMessage
}

// Normalize enforces the video invariant: a post claiming to be a video
// without a playable URL is reclassified as unknown rather than letting
// callers guess intent from a missing field.
func (m *ResolvedMedia) Normalize() {
	if m.ContentType == ContentVideo && m.VideoURL == "" {
		m.ContentType = ContentUnknown
	}
}
