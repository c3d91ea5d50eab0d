// Package credentials reads and writes provider API keys kept in the
// integration_tokens table.
package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"geniemetrics/internal/infra"
	"geniemetrics/internal/sqlinline"
)

const ProviderGemini = "gemini"

type Store struct {
	sql infra.SQLExecutor
}

func NewStore(sql infra.SQLExecutor) *Store {
	return &Store{sql: sql}
}

func (s *Store) GeminiAPIKey(ctx context.Context) (string, error) {
	return s.Token(ctx, ProviderGemini)
}

// Token returns the stored token for provider, or "" when none is stored.
func (s *Store) Token(ctx context.Context, provider string) (string, error) {
	row := s.sql.QueryRow(ctx, sqlinline.QSelectIntegrationToken, provider)
	var token string
	if err := row.Scan(&token); err != nil {
		if infra.IsNoRows(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(token), nil
}

func (s *Store) SetGeminiAPIKey(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("gemini api key is required")
	}
	return s.upsert(ctx, ProviderGemini, key, map[string]any{
		"rotated_at": time.Now().UTC().Format(time.RFC3339),
		"key_suffix": suffix(key, 4),
	})
}

// ClearGeminiAPIKey removes the stored key so the API falls back to
// GEMINI_API_KEY.
func (s *Store) ClearGeminiAPIKey(ctx context.Context) error {
	return s.Delete(ctx, ProviderGemini)
}

func (s *Store) Delete(ctx context.Context, provider string) error {
	_, err := s.sql.Exec(ctx, sqlinline.QDeleteIntegrationToken, provider)
	return err
}

// suffix returns the last n characters of key, which is all that is ever
// logged or stored in the clear.
func suffix(key string, n int) string {
	if len(key) <= n {
		return key
	}
	return key[len(key)-n:]
}

func (s *Store) upsert(ctx context.Context, provider, token string, props map[string]any) error {
	payload := props
	if payload == nil {
		payload = map[string]any{}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = s.sql.Exec(ctx, sqlinline.QUpsertIntegrationToken, provider, token, raw)
	return err
}
