package repo

import (
	"context"
	"encoding/json"

	"geniemetrics/internal/domain"
	"geniemetrics/internal/infra"
	"geniemetrics/internal/sqlinline"
)

// UsageRepositoryPG stores usage events in PostgreSQL.
type UsageRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewUsageRepository constructs the repository.
func NewUsageRepository(sql infra.SQLExecutor) *UsageRepositoryPG {
	return &UsageRepositoryPG{sql: sql}
}

// EnsureSchema creates the usage and token tables when missing.
func (r *UsageRepositoryPG) EnsureSchema(ctx context.Context) error {
	_, err := r.sql.Exec(ctx, sqlinline.QEnsureUsageSchema)
	return err
}

// Record inserts one usage event.
func (r *UsageRepositoryPG) Record(ctx context.Context, ev domain.UsageEvent) error {
	var props []byte
	if len(ev.Properties) > 0 {
		raw, err := json.Marshal(ev.Properties)
		if err != nil {
			return err
		}
		props = raw
	}
	_, err := r.sql.Exec(ctx, sqlinline.QInsertUsageEvent,
		ev.SessionID,
		ev.RequestID,
		ev.Tool,
		string(ev.Meter),
		ev.Cost,
		string(ev.Outcome),
		int(ev.Latency.Milliseconds()),
		props,
	)
	return err
}

// Summary returns per-tool counts for the last 24 hours.
func (r *UsageRepositoryPG) Summary(ctx context.Context) ([]domain.UsageSummary, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QUsageSummary24h)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.UsageSummary{}
	for rows.Next() {
		var s domain.UsageSummary
		if err := rows.Scan(&s.Tool, &s.OK, &s.Failed, &s.Denied, &s.UnitsSpent); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
