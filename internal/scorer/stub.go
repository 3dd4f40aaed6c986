package scorer

import (
	"context"

	"github.com/felixgeelhaar/apexmind/internal/trait"
)

// StubScorer returns a fixed observation for every turn. When Fixed is
// nil it echoes the caller's current scores, like a real scorer facing
// unparseable model output.
type StubScorer struct {
	Fixed trait.Observation
	Err   error

	// Calls records every (userMessage, agentReply) pair.
	Calls [][2]string
}

func (s *StubScorer) Name() string {
	return "stub"
}

func (s *StubScorer) Infer(ctx context.Context, userMessage, agentReply string, current trait.Observation) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.Calls = append(s.Calls, [2]string{userMessage, agentReply})
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Fixed == nil {
		return &Result{Scores: fallbackScores(current)}, nil
	}
	scores := make(trait.Observation, len(s.Fixed))
	for name, v := range s.Fixed {
		scores[name] = trait.Clamp(v)
	}
	return &Result{Scores: scores}, nil
}
