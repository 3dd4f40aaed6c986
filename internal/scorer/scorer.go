// Package scorer evaluates a coaching exchange and produces updated
// trait scores. The primary implementation asks an LLM for strict-JSON
// scores; a stub implementation serves tests and offline runs.
package scorer

import (
	"context"

	"github.com/felixgeelhaar/apexmind/internal/trait"
)

// Result carries the inferred scores plus optional per-trait notes the
// model may attach to explain its judgement.
type Result struct {
	Scores trait.Observation
	Notes  map[trait.Name]string
}

// Scorer infers updated trait scores from the latest exchange. Current
// scores are passed for reference; implementations must return them
// unchanged when inference fails, so a bad model turn never zeroes a
// user's profile.
type Scorer interface {
	Infer(ctx context.Context, userMessage, agentReply string, current trait.Observation) (*Result, error)
	Name() string
}
