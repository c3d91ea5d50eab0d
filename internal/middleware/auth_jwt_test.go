package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSignAndVerifyJWT(t *testing.T) {
	secret := "test-secret"
	claims := NewTokenClaims("session-123", "id", time.Now().Add(time.Hour))
	token, err := SignJWT(secret, claims)
	if err != nil {
		t.Fatalf("SignJWT() unexpected error: %v", err)
	}
	parsed, err := VerifyJWT(secret, token)
	if err != nil {
		t.Fatalf("VerifyJWT() unexpected error: %v", err)
	}
	if parsed.Subject != "session-123" || parsed.Locale != "id" {
		t.Fatalf("VerifyJWT() returned %+v", parsed)
	}
}

func TestVerifyJWTInvalidSignature(t *testing.T) {
	token, err := SignJWT("secret-a", NewTokenClaims("session-123", "", time.Now().Add(time.Hour)))
	if err != nil {
		t.Fatalf("SignJWT() error: %v", err)
	}
	if _, err := VerifyJWT("secret-b", token); err == nil {
		t.Fatalf("VerifyJWT() expected invalid signature error")
	}
}

func TestVerifyJWTExpired(t *testing.T) {
	token, err := SignJWT("secret", NewTokenClaims("session-123", "", time.Now().Add(-time.Hour)))
	if err != nil {
		t.Fatalf("SignJWT() error: %v", err)
	}
	if _, err := VerifyJWT("secret", token); err == nil {
		t.Fatalf("VerifyJWT() expected expiration error")
	}
}

func TestVerifyJWTWrongAudience(t *testing.T) {
	claims := NewTokenClaims("session-123", "", time.Now().Add(time.Hour))
	claims.Audience = []string{"someone-else"}
	token, err := SignJWT("secret", claims)
	if err != nil {
		t.Fatalf("SignJWT() error: %v", err)
	}
	if _, err := VerifyJWT("secret", token); err == nil {
		t.Fatalf("VerifyJWT() expected audience error")
	}
}

func TestSignJWTRequiresSecret(t *testing.T) {
	if _, err := SignJWT("", NewTokenClaims("s", "", time.Now().Add(time.Hour))); err == nil {
		t.Fatalf("SignJWT() expected error for empty secret")
	}
}

func TestAuthJWT(t *testing.T) {
	secret := "secret"
	token, err := SignJWT(secret, NewTokenClaims("session-9", "fr", time.Now().Add(time.Hour)))
	if err != nil {
		t.Fatalf("SignJWT() error: %v", err)
	}

	var gotSession, gotLocale string
	handler := AuthJWT(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSession = SessionIDFromContext(r.Context())
		gotLocale = LocaleFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "missing header", header: "", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + token, status: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer abc.def.ghi", status: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer " + token, status: http.StatusNoContent},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			if tc.status == http.StatusUnauthorized && !strings.Contains(rec.Body.String(), `"unauthorized"`) {
				t.Fatalf("expected json error body, got %s", rec.Body.String())
			}
		})
	}
	if gotSession != "session-9" || gotLocale != "fr" {
		t.Fatalf("context = (%q, %q), want (session-9, fr)", gotSession, gotLocale)
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := CORS([]string{"https://app.example"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/v1/tools/chat", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example" {
		t.Fatalf("Access-Control-Allow-Origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/tools", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unexpected Access-Control-Allow-Origin %q", got)
	}
}
