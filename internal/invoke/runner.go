// Package invoke wraps every metered tool call: it validates the input,
// asks the entitlement gate, makes exactly one model call and reduces any
// failure to the tool's safe-empty result.
package invoke

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"geniemetrics/internal/account"
	"geniemetrics/internal/domain"
	"geniemetrics/internal/entitlement"
	"geniemetrics/internal/providers/genai"
	"geniemetrics/internal/tools"
)

var (
	ErrInvalidInput = domain.ErrInvalidInput
	ErrBusy         = fmt.Errorf("%w: tool invocation already in progress", domain.ErrConflict)
)

// Generator is the model boundary. *genai.Client satisfies it.
type Generator interface {
	Generate(ctx context.Context, req genai.Request) (*genai.Response, error)
}

// Consumer applies the entitlement gate to a session's account.
type Consumer interface {
	Consume(ctx context.Context, sessionID string, req domain.ConsumptionRequest) (entitlement.Decision, error)
}

// UsageRecorder receives one event per invocation.
type UsageRecorder interface {
	Record(ctx context.Context, ev domain.UsageEvent) error
}

// Status reports how an invocation ended.
type Status = domain.Outcome

const (
	StatusOK     = domain.OutcomeOK
	StatusFailed = domain.OutcomeFailed
	StatusDenied = domain.OutcomeDenied
)

// Outcome is what the caller shows. Result is the parsed value on success
// and the safe-empty value on failure; it is nil on denial.
type Outcome struct {
	Tool    tools.ID            `json:"tool"`
	Status  Status              `json:"status"`
	Result  any                 `json:"result"`
	Limit   *domain.LimitSignal `json:"limit,omitempty"`
	Account domain.Account      `json:"account"`
}

// Options configures a Runner. A nil Guard means a LocalGuard, which only
// serializes invocations within one process.
type Options struct {
	Usage     UsageRecorder
	Guard     Guard
	Logger    zerolog.Logger
	RequestID func(context.Context) string
}

type Runner struct {
	accounts  Consumer
	catalog   *tools.Catalog
	gen       Generator
	usage     UsageRecorder
	guard     Guard
	logger    zerolog.Logger
	requestID func(context.Context) string
	now       func() time.Time
}

// NewRunner wires the gate, the catalog and the model boundary together.
func NewRunner(accounts Consumer, catalog *tools.Catalog, gen Generator, opts Options) *Runner {
	requestID := opts.RequestID
	if requestID == nil {
		requestID = func(context.Context) string { return "" }
	}
	guard := opts.Guard
	if guard == nil {
		guard = NewLocalGuard()
	}
	return &Runner{
		accounts:  accounts,
		catalog:   catalog,
		gen:       gen,
		usage:     opts.Usage,
		guard:     guard,
		logger:    opts.Logger.With().Str("component", "invoke").Logger(),
		requestID: requestID,
		now:       time.Now,
	}
}

var _ Consumer = (*account.Service)(nil)

// Invoke runs one tool for one session. Errors are returned only for
// requests that never reached the gate or a failing account store; model
// failures become a failed Outcome.
func (r *Runner) Invoke(ctx context.Context, sessionID string, id tools.ID, in tools.Input) (*Outcome, error) {
	tool, err := r.catalog.Lookup(id)
	if err != nil {
		return nil, err
	}
	in, err = tool.Prepare(in)
	if err != nil {
		return nil, err
	}

	release, err := r.guard.Acquire(ctx, sessionID, id)
	if err != nil {
		return nil, err
	}
	defer release()

	start := r.now()
	decision, err := r.accounts.Consume(ctx, sessionID, tool.Consumption())
	if err != nil {
		return nil, err
	}
	if !decision.Authorized {
		r.record(ctx, sessionID, tool, StatusDenied, start)
		return &Outcome{Tool: id, Status: StatusDenied, Limit: decision.Limit, Account: decision.Account}, nil
	}

	out := &Outcome{Tool: id, Status: StatusOK, Account: decision.Account}
	result, err := r.call(ctx, tool, in)
	if err != nil {
		r.logger.Warn().
			Err(err).
			Str("session", sessionID).
			Str("tool", string(id)).
			Str("request_id", r.requestID(ctx)).
			Msg("tool call failed")
		out.Status = StatusFailed
		result = tool.Fallback(in)
	}
	out.Result = result
	r.record(ctx, sessionID, tool, out.Status, start)
	return out, nil
}

// call makes the single model request. It is detached from the caller's
// cancellation: once quota is spent the call runs to completion.
func (r *Runner) call(ctx context.Context, tool tools.Tool, in tools.Input) (result any, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: panic: %v", domain.ErrProviderFailure, p)
		}
	}()
	resp, err := r.gen.Generate(context.WithoutCancel(ctx), r.catalog.Request(tool, in))
	if err != nil {
		return nil, err
	}
	return tool.Parse(resp, in)
}

func (r *Runner) record(ctx context.Context, sessionID string, tool tools.Tool, status Status, start time.Time) {
	if r.usage == nil {
		return
	}
	ev := domain.UsageEvent{
		SessionID: sessionID,
		RequestID: r.requestID(ctx),
		Tool:      string(tool.ID),
		Meter:     tool.Meter,
		Cost:      tool.Cost,
		Outcome:   status,
		Latency:   r.now().Sub(start),
	}
	if err := r.usage.Record(context.WithoutCancel(ctx), ev); err != nil && !errors.Is(err, context.Canceled) {
		r.logger.Warn().Err(err).Str("tool", string(tool.ID)).Msg("record usage failed")
	}
}

// Busy lists the tools with an invocation in flight for the session. A
// guard failure is logged and reported as nothing busy.
func (r *Runner) Busy(ctx context.Context, sessionID string) []tools.ID {
	list := r.catalog.List()
	candidates := make([]tools.ID, 0, len(list))
	for _, t := range list {
		candidates = append(candidates, t.ID)
	}
	out, err := r.guard.Busy(ctx, sessionID, candidates)
	if err != nil {
		r.logger.Warn().Err(err).Str("session", sessionID).Msg("list busy tools failed")
		return nil
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
