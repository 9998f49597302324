package handler

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/clipmirror/tokrelay/internal/domain"
	"github.com/clipmirror/tokrelay/internal/relay"
)

// testLogger returns a silent logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeResolver is a test implementation of resolver.Resolver.
type fakeResolver struct {
	media *domain.ResolvedMedia
	err   error
	calls int32
}

func (f *fakeResolver) Resolve(ctx context.Context, shareURL string) (*domain.ResolvedMedia, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.err != nil {
		return nil, f.err
	}
	m := *f.media
	return &m, nil
}

func (f *fakeResolver) callCount() int {
	return int(atomic.LoadInt32(&f.calls))
}

// fakeFetcher is a test implementation of relay.Fetcher.
type fakeFetcher struct {
	resp  *relay.UpstreamResponse
	err   error
	calls int32
}

func (f *fakeFetcher) Open(ctx context.Context, mediaURL, callerRange string) (*relay.UpstreamResponse, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func (f *fakeFetcher) callCount() int {
	return int(atomic.LoadInt32(&f.calls))
}
