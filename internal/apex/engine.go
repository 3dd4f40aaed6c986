package apex

import (
	"time"

	"github.com/felixgeelhaar/apexmind/internal/store"
	"github.com/felixgeelhaar/apexmind/internal/trait"
)

// Engine aggregates one state update per coaching turn: it appends the
// raw scores to the session ledger, recomputes every metric from the
// full ledger and persists the resulting snapshot.
type Engine struct {
	store store.Storage
}

func NewEngine(s store.Storage) *Engine {
	return &Engine{store: s}
}

// UpdateState is the only entry point that mutates the session ledger.
// It must be called at most once in flight per user identifier; the
// caller serializes turns for a user.
//
// The raw observation is written to the ledger as supplied (missing
// traits become 0); momentum and volatility come from the reloaded
// ledger while dominance, modes and the focus arc come from the raw
// scores directly. A failure while persisting the snapshot leaves the
// ledger intact and the stored snapshot stale, which is acceptable:
// the snapshot is a pure projection, recomputable on demand.
func (e *Engine) UpdateState(userID string, raw trait.Observation) (*store.ApexState, error) {
	nextIndex, err := e.store.NextSessionIndex(userID)
	if err != nil {
		return nil, err
	}

	if err := e.store.AppendSession(userID, nextIndex, raw.Vector()); err != nil {
		return nil, err
	}

	sessions, err := e.store.LoadSessions(userID)
	if err != nil {
		return nil, err
	}

	momentum := Momentum(sessions)
	state := &store.ApexState{
		UserID:         userID,
		LastSession:    nextIndex,
		Momentum:       momentum,
		Volatility:     Volatility(sessions),
		DominanceIndex: DominanceIndex(raw),
		Modes:          DetermineModes(raw, momentum),
		FocusArc:       DetermineFocusArc(raw),
		UpdatedAt:      time.Now().UTC(),
	}

	if err := e.store.SaveApexState(state); err != nil {
		return nil, err
	}
	return state, nil
}

// State returns the persisted snapshot for inspection, or nil when the
// user has no sessions yet.
func (e *Engine) State(userID string) (*store.ApexState, error) {
	return e.store.LoadApexState(userID)
}
