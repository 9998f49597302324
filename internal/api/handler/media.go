package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/clipmirror/tokrelay/internal/domain"
	"github.com/clipmirror/tokrelay/internal/relay"
	"github.com/clipmirror/tokrelay/internal/resolver"
)

// MediaHandler resolves share URLs and relays the post's media or serves
// its metadata.
type MediaHandler struct {
	resolver resolver.Resolver
	fetcher  relay.Fetcher
	logger   *slog.Logger
}

// NewMediaHandler creates a new media handler.
func NewMediaHandler(res resolver.Resolver, fetcher relay.Fetcher, logger *slog.Logger) *MediaHandler {
	return &MediaHandler{
		resolver: res,
		fetcher:  fetcher,
		logger:   logger,
	}
}

// MetadataResponse is the normalized record served when the resolver
// returned no raw platform metadata.
type MetadataResponse struct {
	ContentType string   `json:"content_type"`
	VideoURL    string   `json:"video_url,omitempty"`
	ImageURLs   []string `json:"image_urls,omitempty"`
}

// Relay handles GET /?url=<share-url>[&data=1].
//
// With data present the resolver's metadata is served as JSON; otherwise
// the resolved video is fetched upstream and its body relayed, preserving
// partial-content semantics end to end.
func (h *MediaHandler) Relay(w http.ResponseWriter, r *http.Request) {
	req, err := parseMediaRequest(r)
	if err != nil {
		// Validation failures never reach the resolver.
		http.Error(w, "missing url query parameter", http.StatusBadRequest)
		return
	}

	resolved, err := h.resolver.Resolve(r.Context(), req.InputURL)
	if err != nil {
		h.logger.Error("resolve failed", "input_url", req.InputURL, "error", err)
		h.writeError(w, http.StatusInternalServerError, "could not resolve share URL")
		return
	}
	resolved.Normalize()

	if req.MetadataOnly {
		h.serveMetadata(w, resolved)
		return
	}

	switch resolved.ContentType {
	case domain.ContentVideo:
		h.streamVideo(w, r, resolved.VideoURL, req.CallerRange)
	case domain.ContentImageGallery:
		h.writeError(w, http.StatusBadRequest, "post is an image gallery; request the metadata representation with data=1")
	default:
		h.logger.Error("resolved content type unknown", "input_url", req.InputURL)
		h.writeError(w, http.StatusInternalServerError, "could not resolve media for this post")
	}
}

// parseMediaRequest classifies one inbound request.
func parseMediaRequest(r *http.Request) (domain.MediaRequest, error) {
	query := r.URL.Query()

	inputURL := query.Get("url")
	if inputURL == "" {
		return domain.MediaRequest{}, domain.ErrMissingURL
	}

	// Presence of data, not its value, selects the metadata path.
	_, metadataOnly := query["data"]

	return domain.MediaRequest{
		InputURL:     inputURL,
		MetadataOnly: metadataOnly,
		CallerRange:  r.Header.Get("Range"),
	}, nil
}

// serveMetadata writes the resolver's record as JSON. The raw platform
// metadata is passed through verbatim when present.
func (h *MediaHandler) serveMetadata(w http.ResponseWriter, resolved *domain.ResolvedMedia) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if len(resolved.Raw) > 0 {
		w.Write(resolved.Raw)
		return
	}

	json.NewEncoder(w).Encode(MetadataResponse{
		ContentType: resolved.ContentType.String(),
		VideoURL:    resolved.VideoURL,
		ImageURLs:   resolved.ImageURLs,
	})
}

// streamVideo opens the direct media URL and relays its body. The caller's
// Range header is forwarded verbatim so the upstream's 200/206 answer, and
// its Content-Range, pass through unchanged.
func (h *MediaHandler) streamVideo(w http.ResponseWriter, r *http.Request, videoURL, callerRange string) {
	up, err := h.fetcher.Open(r.Context(), videoURL, callerRange)
	if err != nil {
		h.logger.Error("upstream fetch failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "upstream media fetch failed")
		return
	}
	defer up.Body.Close()

	contentType := up.ContentType
	if contentType == "" {
		contentType = "video/mp4"
	}
	w.Header().Set("Content-Type", contentType)

	// A declared length of 0 would make net/http cut off a real body, so
	// an upstream that omits Content-Length falls back to chunked relay.
	if up.ContentLength >= 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(up.ContentLength, 10))
	}

	w.Header().Set("Accept-Ranges", "bytes")
	if up.ContentRange != "" {
		w.Header().Set("Content-Range", up.ContentRange)
	}

	w.WriteHeader(up.StatusCode)

	// Relay chunk by chunk; back-pressure propagates through the writer,
	// and a caller disconnect cancels r.Context(), which aborts the
	// upstream read.
	if _, err := relayBody(w, up.Body); err != nil {
		h.logger.Debug("stream ended early", "error", err)
	}
}

// relayBody pipes upstream bytes to the caller one bounded chunk at a
// time, flushing after each write so playback starts before the upstream
// body is drained. The whole payload is never held in memory.
func relayBody(dst http.ResponseWriter, src io.Reader) (int64, error) {
	flusher, _ := dst.(http.Flusher)
	buf := make([]byte, 32*1024)

	var written int64
	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			wn, werr := dst.Write(buf[:n])
			written += int64(wn)
			if werr != nil {
				return written, werr
			}
			if flusher != nil {
				flusher.Flush()
			}
		}
		if rerr != nil {
			if rerr == io.EOF {
				return written, nil
			}
			return written, rerr
		}
	}
}

func (h *MediaHandler) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
