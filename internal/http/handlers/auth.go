package handlers

import (
	"net/http"
	"time"

	"geniemetrics/internal/account"
	"geniemetrics/internal/domain"
	"geniemetrics/internal/middleware"
	"geniemetrics/internal/tools"
)

type limitDTO struct {
	Kind    domain.MeterKind `json:"kind"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
}

func newLimitDTO(signal *domain.LimitSignal) *limitDTO {
	if signal == nil {
		return nil
	}
	return &limitDTO{Kind: signal.Kind, Title: signal.Title(), Message: signal.Message()}
}

type meResponse struct {
	Account   domain.Account `json:"account"`
	Limit     *limitDTO      `json:"limit"`
	Busy      []tools.ID     `json:"busy"`
	Locale    string         `json:"locale"`
	Country   string         `json:"country,omitempty"`
	ExpiresAt time.Time      `json:"expires_at"`
}

type authResponse struct {
	Token string `json:"token"`
	meResponse
}

func (a *App) me(r *http.Request, sess *domain.Session) meResponse {
	busy := []tools.ID{}
	if a.Runner != nil {
		if ids := a.Runner.Busy(r.Context(), sess.ID); len(ids) > 0 {
			busy = ids
		}
	}
	return meResponse{
		Account:   sess.Account,
		Limit:     newLimitDTO(sess.Limit),
		Busy:      busy,
		Locale:    middleware.LocaleFromContext(r.Context()),
		Country:   middleware.CountryFromContext(r.Context()),
		ExpiresAt: sess.ExpiresAt,
	}
}

func (a *App) Login(w http.ResponseWriter, r *http.Request) {
	var req account.LoginRequest
	if !a.decode(w, r, &req) {
		return
	}
	sess, err := a.Accounts.Login(r.Context(), req)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.issue(w, r, http.StatusOK, sess)
}

func (a *App) Signup(w http.ResponseWriter, r *http.Request) {
	var req account.SignupRequest
	if !a.decode(w, r, &req) {
		return
	}
	sess, err := a.Accounts.Signup(r.Context(), req)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.issue(w, r, http.StatusCreated, sess)
}

func (a *App) issue(w http.ResponseWriter, r *http.Request, code int, sess *domain.Session) {
	token, err := middleware.SignJWT(a.JWTSecret, middleware.NewTokenClaims(sess.ID, middleware.LocaleFromContext(r.Context()), sess.ExpiresAt))
	if err != nil {
		a.Logger.Error().Err(err).Msg("sign jwt failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to sign token")
		return
	}
	a.json(w, code, authResponse{Token: token, meResponse: a.me(r, sess)})
}

func (a *App) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.Accounts.Logout(r.Context(), a.currentSessionID(r)); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	sess, err := a.Accounts.Session(r.Context(), a.currentSessionID(r))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, a.me(r, sess))
}

func (a *App) DismissLimit(w http.ResponseWriter, r *http.Request) {
	sess, err := a.Accounts.DismissLimit(r.Context(), a.currentSessionID(r))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, a.me(r, sess))
}

func (a *App) Checkout(w http.ResponseWriter, r *http.Request) {
	var req account.CheckoutRequest
	if !a.decode(w, r, &req) {
		return
	}
	sess, err := a.Accounts.Checkout(r.Context(), a.currentSessionID(r), req)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, a.me(r, sess))
}
