package sim

import (
	"sync"

	"github.com/agorasim/agora/internal/domain"
)

// StateHolder hands the latest published snapshot to concurrent readers
// without exposing the live model. The runner publishes after each step;
// HTTP handlers read at will. Published values must be the deep copies
// Snapshot and Series return — the holder shares them with every reader
// and nothing may mutate them afterwards.
type StateHolder struct {
	mu     sync.RWMutex
	state  domain.ModelState
	series []domain.TickMetrics
}

func NewStateHolder() *StateHolder {
	return &StateHolder{}
}

// Publish replaces the held snapshot and metric series.
func (h *StateHolder) Publish(state domain.ModelState, series []domain.TickMetrics) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state = state
	h.series = series
}

// State returns the most recently published snapshot. Before the first
// Publish it returns a zero state at tick 0.
func (h *StateHolder) State() domain.ModelState {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state
}

// Series returns the most recently published metric series.
func (h *StateHolder) Series() []domain.TickMetrics {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.series
}
