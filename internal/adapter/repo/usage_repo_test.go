package repo

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"geniemetrics/internal/domain"
	"geniemetrics/internal/sqlinline"
)

type stubExecutor struct {
	query string
	args  []any
	err   error
	rows  [][]any
}

func (s *stubExecutor) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	s.query = query
	s.args = args
	return pgconn.NewCommandTag("INSERT 0 1"), s.err
}

func (s *stubExecutor) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	return nil
}

func (s *stubExecutor) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	s.query = query
	if s.err != nil {
		return nil, s.err
	}
	return &stubRows{data: s.rows, idx: -1}, nil
}

type stubRows struct {
	data [][]any
	idx  int
}

func (r *stubRows) Close()                                       {}
func (r *stubRows) Err() error                                   { return nil }
func (r *stubRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *stubRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *stubRows) Values() ([]any, error)                       { return r.data[r.idx], nil }
func (r *stubRows) RawValues() [][]byte                          { return nil }
func (r *stubRows) Conn() *pgx.Conn                              { return nil }

func (r *stubRows) Next() bool {
	r.idx++
	return r.idx < len(r.data)
}

func (r *stubRows) Scan(dest ...any) error {
	row := r.data[r.idx]
	if len(dest) != len(row) {
		return errors.New("column count mismatch")
	}
	for i, d := range dest {
		switch ptr := d.(type) {
		case *string:
			*ptr = row[i].(string)
		case *int:
			*ptr = row[i].(int)
		default:
			return errors.New("unsupported dest")
		}
	}
	return nil
}

func TestUsageRecord(t *testing.T) {
	exec := &stubExecutor{}
	repo := NewUsageRepository(exec)
	err := repo.Record(context.Background(), domain.UsageEvent{
		SessionID:  "0b0f2c36-4a55-4f57-9d0e-6f4c6c7f0a11",
		RequestID:  "req-1",
		Tool:       "site_audit",
		Meter:      domain.MeterAICredit,
		Cost:       20,
		Outcome:    domain.OutcomeFailed,
		Latency:    1500 * time.Millisecond,
		Properties: map[string]any{"plan": "free"},
	})
	if err != nil {
		t.Fatalf("Record error: %v", err)
	}
	if exec.query != sqlinline.QInsertUsageEvent {
		t.Fatal("expected insert usage query")
	}
	if len(exec.args) != 8 {
		t.Fatalf("expected 8 args, got %d", len(exec.args))
	}
	if exec.args[3] != "ai_credit" || exec.args[4] != 20 || exec.args[5] != "failed" || exec.args[6] != 1500 {
		t.Fatalf("unexpected args: %v", exec.args)
	}
	var props map[string]string
	if err := json.Unmarshal(exec.args[7].([]byte), &props); err != nil {
		t.Fatalf("properties not json: %v", err)
	}
	if props["plan"] != "free" {
		t.Fatalf("expected plan property, got %v", props)
	}
}

func TestUsageRecordWithoutProperties(t *testing.T) {
	exec := &stubExecutor{}
	if err := NewUsageRepository(exec).Record(context.Background(), domain.UsageEvent{Tool: "chat"}); err != nil {
		t.Fatalf("Record error: %v", err)
	}
	if props, _ := exec.args[7].([]byte); props != nil {
		t.Fatalf("expected nil properties, got %s", props)
	}
}

func TestUsageSummary(t *testing.T) {
	exec := &stubExecutor{rows: [][]any{
		{"chat", 3, 1, 2, 8},
		{"keyword_research", 5, 0, 4, 5},
	}}
	got, err := NewUsageRepository(exec).Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary error: %v", err)
	}
	if exec.query != sqlinline.QUsageSummary24h {
		t.Fatal("expected summary query")
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	want := domain.UsageSummary{Tool: "chat", OK: 3, Failed: 1, Denied: 2, UnitsSpent: 8}
	if got[0] != want {
		t.Fatalf("expected %+v, got %+v", want, got[0])
	}
}

func TestUsageSummaryError(t *testing.T) {
	exec := &stubExecutor{err: errors.New("db down")}
	if _, err := NewUsageRepository(exec).Summary(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestEnsureSchema(t *testing.T) {
	exec := &stubExecutor{}
	if err := NewUsageRepository(exec).EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema error: %v", err)
	}
	if exec.query != sqlinline.QEnsureUsageSchema {
		t.Fatal("expected schema query")
	}
}
