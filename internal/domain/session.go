package domain

import "time"

// Session holds the account for one signed-in browser. It lives only as long
// as ExpiresAt; nothing about the account survives it.
type Session struct {
	ID        string       `json:"id"`
	Account   Account      `json:"account"`
	Limit     *LimitSignal `json:"limit,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// Expired reports whether the session is past its lifetime at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
