package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"geniemetrics/internal/domain"
	"geniemetrics/internal/invoke"
	"geniemetrics/internal/middleware"
	"geniemetrics/internal/tools"
)

type toolDTO struct {
	ID    tools.ID         `json:"id"`
	Name  string           `json:"name"`
	Meter domain.MeterKind `json:"meter"`
	Cost  int              `json:"cost"`
}

func (a *App) ListTools(w http.ResponseWriter, r *http.Request) {
	list := a.Catalog.List()
	out := make([]toolDTO, 0, len(list))
	for _, t := range list {
		out = append(out, toolDTO{ID: t.ID, Name: t.Name, Meter: t.Meter, Cost: t.Cost})
	}
	a.json(w, http.StatusOK, map[string]any{"tools": out})
}

type deniedResponse struct {
	Error   errorBody      `json:"error"`
	Tool    tools.ID       `json:"tool"`
	Status  invoke.Status  `json:"status"`
	Limit   *limitDTO      `json:"limit"`
	Account domain.Account `json:"account"`
}

func (a *App) InvokeTool(w http.ResponseWriter, r *http.Request) {
	id := tools.ID(chi.URLParam(r, "tool"))
	var in tools.Input
	if !a.decode(w, r, &in) {
		return
	}
	in.Locale = middleware.LocaleFromContext(r.Context())

	out, err := a.Runner.Invoke(r.Context(), a.currentSessionID(r), id, in)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if out.Status == invoke.StatusDenied {
		limit := newLimitDTO(out.Limit)
		msg := "quota exceeded"
		if limit != nil {
			msg = limit.Message
		}
		a.json(w, http.StatusForbidden, deniedResponse{
			Error:   errorBody{Code: "quota_exceeded", Message: msg},
			Tool:    out.Tool,
			Status:  out.Status,
			Limit:   limit,
			Account: out.Account,
		})
		return
	}
	a.json(w, http.StatusOK, out)
}
