// Package account owns the signed-in user's metered state for the lifetime
// of a session and applies the entitlement gate to it atomically.
package account

import (
	"context"
	"fmt"

	"geniemetrics/internal/domain"
)

var ErrSessionNotFound = fmt.Errorf("%w: session", domain.ErrNotFound)

// Store persists sessions for at most their lifetime. Update is the only
// read-modify-write path; implementations must run fn without interleaving
// another Update of the same session.
type Store interface {
	Create(ctx context.Context, sess *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Update(ctx context.Context, id string, fn func(*domain.Session) error) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}

func cloneSession(s *domain.Session) *domain.Session {
	out := *s
	if s.Limit != nil {
		limit := *s.Limit
		out.Limit = &limit
	}
	return &out
}
