package resolver

import (
	"context"

	"github.com/clipmirror/tokrelay/internal/domain"
)

// Resolver maps a share URL to the post's metadata and direct media URL.
// Implementations make no more than one platform round-trip per call and
// never stream media themselves.
type Resolver interface {
	Resolve(ctx context.Context, shareURL string) (*domain.ResolvedMedia, error)
}
