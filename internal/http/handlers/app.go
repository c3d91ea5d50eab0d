package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"geniemetrics/internal/account"
	"geniemetrics/internal/domain"
	"geniemetrics/internal/infra"
	"geniemetrics/internal/invoke"
	"geniemetrics/internal/middleware"
	"geniemetrics/internal/tools"
)

const maxBodyBytes = 32 << 20

// UsageReader serves the usage dashboard. Nil when no database is configured.
type UsageReader interface {
	Summary(ctx context.Context) ([]domain.UsageSummary, error)
}

type App struct {
	Config    *infra.Config
	Logger    zerolog.Logger
	Accounts  *account.Service
	Runner    *invoke.Runner
	Catalog   *tools.Catalog
	Usage     UsageReader
	Gemini    interface{ Configured() bool }
	Countries middleware.CountryLookup
	JWTSecret string
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]any{"error": errorBody{Code: errCode, Message: message}})
}

// fail maps a service error to a response.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, tools.ErrUnknownTool):
		a.error(w, http.StatusNotFound, "unknown_tool", err.Error())
	case errors.Is(err, invoke.ErrBusy):
		a.error(w, http.StatusConflict, "busy", "this tool is already running for your session")
	case errors.Is(err, domain.ErrInvalidInput):
		a.error(w, http.StatusBadRequest, "invalid_input", err.Error())
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrSessionExpired):
		a.error(w, http.StatusUnauthorized, "unauthorized", "session expired, please sign in again")
	case errors.Is(err, domain.ErrUnsupportedPlan):
		a.error(w, http.StatusBadRequest, "invalid_input", err.Error())
	case errors.Is(err, context.Canceled):
		// client went away
	default:
		a.Logger.Error().Err(err).Str("request_id", middleware.RequestIDFromContext(r.Context())).Str("path", r.URL.Path).Msg("request failed")
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

// decode reads a JSON body into v. An empty body leaves v untouched.
func (a *App) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return false
	}
	return true
}

func (a *App) currentSessionID(r *http.Request) string {
	return middleware.SessionIDFromContext(r.Context())
}
