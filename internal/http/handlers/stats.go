package handlers

import (
	"net/http"
)

func (a *App) UsageSummary(w http.ResponseWriter, r *http.Request) {
	if a.Usage == nil {
		a.error(w, http.StatusServiceUnavailable, "unavailable", "usage statistics need a database")
		return
	}
	rows, err := a.Usage.Summary(r.Context())
	if err != nil {
		a.Logger.Error().Err(err).Msg("usage summary failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load stats")
		return
	}
	total := map[string]int{"ok": 0, "failed": 0, "denied": 0}
	for _, row := range rows {
		total["ok"] += row.OK
		total["failed"] += row.Failed
		total["denied"] += row.Denied
	}
	a.json(w, http.StatusOK, map[string]any{
		"window": "24h",
		"tools":  rows,
		"total":  total,
	})
}
