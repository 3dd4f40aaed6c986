// Package coach runs the full coaching turn: retrieve knowledge, speak
// in the persona's voice, judge the exchange, and fold the verdict into
// the user's long-term profile and apex state.
package coach

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/felixgeelhaar/apexmind/internal/apex"
	"github.com/felixgeelhaar/apexmind/internal/guard"
	"github.com/felixgeelhaar/apexmind/internal/memory"
	"github.com/felixgeelhaar/apexmind/internal/observe"
	"github.com/felixgeelhaar/apexmind/internal/provider"
	"github.com/felixgeelhaar/apexmind/internal/retrieval"
	"github.com/felixgeelhaar/apexmind/internal/scorer"
	"github.com/felixgeelhaar/apexmind/internal/store"
	"github.com/felixgeelhaar/apexmind/internal/trait"
)

// DefaultSmoothingWeight is how strongly one turn's verdict pulls the
// long-term profile. Taken as supplied when overridden.
const DefaultSmoothingWeight = 0.4

// Coach orchestrates one coaching turn end to end.
type Coach struct {
	store     store.Storage
	provider  provider.Provider
	scorer    scorer.Scorer
	memory    *memory.Manager
	apex      *apex.Engine
	retriever *retrieval.Retriever
	guard     *guard.Guard
	observe   *observe.Observer
	bus       *EventBus
	persona   *Persona
	weight    float64

	// Turns for the same user serialize; different users proceed in
	// parallel.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(s store.Storage, p provider.Provider, sc scorer.Scorer, r *retrieval.Retriever, g *guard.Guard, o *observe.Observer) *Coach {
	return &Coach{
		store:     s,
		provider:  p,
		scorer:    sc,
		memory:    memory.NewManager(s),
		apex:      apex.NewEngine(s),
		retriever: r,
		guard:     g,
		observe:   o,
		bus:       NewEventBus(),
		persona:   DefaultPersona(),
		weight:    DefaultSmoothingWeight,
		locks:     make(map[string]*sync.Mutex),
	}
}

// SetPersona swaps the coaching voice.
func (c *Coach) SetPersona(p *Persona) {
	if p != nil {
		c.persona = p
	}
}

// SetWeight overrides the smoothing weight for profile updates.
func (c *Coach) SetWeight(w float64) {
	c.weight = w
}

// Events returns the bus turn lifecycle events publish on.
func (c *Coach) Events() *EventBus {
	return c.bus
}

// Result is the combined outcome of one coaching turn.
type Result struct {
	Reply    string
	Scores   trait.Vector
	Sessions int
	Progress memory.ProgressLevel
	Apex     *store.ApexState
	Passages []store.MemoryItem
	Notes    map[trait.Name]string
	Usage    provider.Usage
}

func (c *Coach) userLock(userID string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		c.locks[userID] = l
	}
	return l
}

// Engage runs one coaching turn for the user. Storage write failures
// propagate; a scorer that cannot parse its model's verdict degrades to
// the user's current scores rather than failing the turn.
func (c *Coach) Engage(ctx context.Context, userID, message string) (*Result, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("message is required")
	}

	lock := c.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	ctx, span := c.observe.StartSpan(ctx, "Engage")
	defer span.End()

	c.bus.PublishWithData(EventTurnStart, userID, map[string]interface{}{"message": message})

	profile, err := c.memory.Profile(userID)
	if err != nil {
		return nil, c.fail(userID, fmt.Errorf("failed to load profile: %w", err))
	}

	passages, err := c.retriever.Retrieve(ctx, message)
	if err != nil {
		return nil, c.fail(userID, fmt.Errorf("knowledge retrieval failed: %w", err))
	}
	if limit := c.guard.PassageCap(len(passages)); limit < len(passages) {
		passages = passages[:limit]
	}
	c.bus.PublishWithData(EventRetrievalDone, userID, map[string]interface{}{"passages": len(passages)})
	c.observe.Log().Info().Str("userID", userID).Int("passages", len(passages)).Msg("knowledge retrieved")

	prompt := c.buildPrompt(message, passages)
	if v := c.guard.CheckPrompt(prompt); v != nil {
		c.bus.PublishWithData(EventBudgetViolation, userID, map[string]interface{}{"rule": v.Rule})
		return nil, c.fail(userID, fmt.Errorf("turn rejected: %s", v.Message))
	}

	resp, err := c.provider.Chat(ctx, []provider.Message{
		{Role: "system", Content: c.persona.SystemPrompt()},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return nil, c.fail(userID, fmt.Errorf("coaching reply failed: %w", err))
	}
	reply := c.guard.TrimReply(strings.TrimSpace(resp.Content))
	if v := c.guard.CheckTokens(resp.Usage.TotalTokens); v != nil {
		c.bus.PublishWithData(EventBudgetViolation, userID, map[string]interface{}{"rule": v.Rule})
		c.observe.Log().Warn().Str("userID", userID).Int("tokens", resp.Usage.TotalTokens).Msg("turn token budget exceeded")
	}
	c.bus.PublishWithData(EventReplyReady, userID, map[string]interface{}{"chars": len(reply)})

	verdict, err := c.scorer.Infer(ctx, message, reply, profile.Scores.Observation())
	if err != nil {
		return nil, c.fail(userID, fmt.Errorf("scoring failed: %w", err))
	}

	profile, err = c.memory.UpdateScores(userID, verdict.Scores, c.weight)
	if err != nil {
		return nil, c.fail(userID, fmt.Errorf("failed to update profile: %w", err))
	}
	c.bus.PublishWithData(EventScoresUpdated, userID, map[string]interface{}{"sessions": profile.Sessions})

	// The ledger and the metrics engine see the raw per-turn verdict,
	// not the smoothed profile.
	state, err := c.apex.UpdateState(userID, verdict.Scores)
	if err != nil {
		return nil, c.fail(userID, fmt.Errorf("failed to update apex state: %w", err))
	}
	c.bus.PublishWithData(EventStateUpdated, userID, map[string]interface{}{"session": state.LastSession})

	if err := c.memory.LogInteraction(userID, message, reply, profile.Scores); err != nil {
		return nil, c.fail(userID, fmt.Errorf("failed to log interaction: %w", err))
	}

	result := &Result{
		Reply:    reply,
		Scores:   profile.Scores,
		Sessions: profile.Sessions,
		Progress: memory.EstimateProgress(profile),
		Apex:     state,
		Passages: passages,
		Notes:    verdict.Notes,
		Usage:    resp.Usage,
	}
	c.bus.PublishWithData(EventTurnComplete, userID, map[string]interface{}{"session": state.LastSession})
	c.observe.Log().Info().
		Str("userID", userID).
		Int("session", state.LastSession).
		Str("momentum", fmt.Sprintf("%.3f", state.Momentum)).
		Msg("coaching turn complete")
	return result, nil
}

func (c *Coach) fail(userID string, err error) error {
	c.bus.PublishWithData(EventTurnError, userID, map[string]interface{}{"error": err.Error()})
	c.observe.Log().Error().Str("userID", userID).Err(err).Msg("coaching turn failed")
	return err
}

func (c *Coach) buildPrompt(message string, passages []store.MemoryItem) string {
	var b strings.Builder
	if block := retrieval.FormatContext(passages); block != "" {
		b.WriteString(block)
		b.WriteString("\n")
	}
	b.WriteString("### USER QUESTION:\n")
	b.WriteString(message)
	b.WriteString("\n\n### FINAL ANSWER (psychological transformation, direct coaching):\n")
	return b.String()
}
