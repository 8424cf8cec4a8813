package submission

import (
	"errors"
	"sync"
)

var ErrInFlight = errors.New("submission already in progress")

// Gate allows one in-flight submit per draft.
type Gate struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewGate() *Gate {
	return &Gate{inFlight: make(map[string]struct{})}
}

// Acquire marks draftID as in flight. The returned func releases it.
func (g *Gate) Acquire(draftID string) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.inFlight[draftID]; busy {
		return nil, ErrInFlight
	}
	g.inFlight[draftID] = struct{}{}
	return func() {
		g.mu.Lock()
		delete(g.inFlight, draftID)
		g.mu.Unlock()
	}, nil
}
