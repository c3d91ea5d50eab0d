package invoke

import (
	"context"
	"sync"

	"geniemetrics/internal/tools"
)

// Guard keeps at most one invocation of a tool in flight per session.
// Acquire returns ErrBusy when the slot is taken; otherwise the returned
// release func frees it and is safe to call once.
type Guard interface {
	Acquire(ctx context.Context, sessionID string, tool tools.ID) (release func(), err error)
	Busy(ctx context.Context, sessionID string, candidates []tools.ID) ([]tools.ID, error)
}

type busyKey struct {
	session string
	tool    tools.ID
}

// LocalGuard tracks in-flight invocations in process memory. It is enough
// for a single API instance.
type LocalGuard struct {
	mu   sync.Mutex
	busy map[busyKey]struct{}
}

func NewLocalGuard() *LocalGuard {
	return &LocalGuard{busy: make(map[busyKey]struct{})}
}

func (g *LocalGuard) Acquire(_ context.Context, sessionID string, tool tools.ID) (func(), error) {
	key := busyKey{session: sessionID, tool: tool}
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.busy[key]; ok {
		return nil, ErrBusy
	}
	g.busy[key] = struct{}{}
	return func() {
		g.mu.Lock()
		delete(g.busy, key)
		g.mu.Unlock()
	}, nil
}

func (g *LocalGuard) Busy(_ context.Context, sessionID string, _ []tools.ID) ([]tools.ID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []tools.ID
	for key := range g.busy {
		if key.session == sessionID {
			out = append(out, key.tool)
		}
	}
	return out, nil
}

var _ Guard = (*LocalGuard)(nil)
