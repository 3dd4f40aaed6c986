package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/apexmind/internal/coach"
	"github.com/felixgeelhaar/apexmind/internal/guard"
	"github.com/felixgeelhaar/apexmind/internal/observe"
	"github.com/felixgeelhaar/apexmind/internal/provider"
	"github.com/felixgeelhaar/apexmind/internal/retrieval"
	"github.com/felixgeelhaar/apexmind/internal/scorer"
	"github.com/felixgeelhaar/apexmind/internal/store"
	"github.com/felixgeelhaar/apexmind/internal/trait"
	"github.com/felixgeelhaar/apexmind/internal/ui"
)

type Runner struct {
	Observer    *observe.Observer
	Store       store.Storage
	Provider    provider.Provider
	Scorer      scorer.Scorer
	UI          ui.UI
	Weight      float64
	PersonaPath string
}

func NewRunner(obs *observe.Observer, s store.Storage, p provider.Provider, sc scorer.Scorer, u ui.UI) *Runner {
	if u == nil {
		u = ui.SilentUI{}
	}
	return &Runner{
		Observer: obs,
		Store:    s,
		Provider: p,
		Scorer:   sc,
		UI:       u,
		Weight:   coach.DefaultSmoothingWeight,
	}
}

func (r *Runner) Run(ctx context.Context, user, message string) error {
	r.UI.UpdateStatus("Starting coaching turn...")

	retriever := retrieval.NewRetriever(r.Store, r.Provider)
	c := coach.New(r.Store, r.Provider, r.Scorer, retriever, guard.New(guard.DefaultPolicy), r.Observer)
	c.SetWeight(r.Weight)

	if r.PersonaPath != "" {
		persona, err := coach.LoadPersona(r.PersonaPath)
		if err != nil {
			r.Observer.Log().Error().Err(err).Msg("Failed to load persona")
			return err
		}
		c.SetPersona(persona)
	}

	c.Events().Subscribe(coach.EventRetrievalDone, func(e coach.Event) {
		r.UI.UpdateStatus("Generating reply...")
	})
	c.Events().Subscribe(coach.EventReplyReady, func(e coach.Event) {
		r.UI.UpdateStatus("Scoring the exchange...")
	})

	res, err := c.Engage(ctx, user, message)
	if err != nil {
		r.UI.UpdateStatus("Turn failed")
		return err
	}

	r.UI.UpdateStatus("Completed")
	r.UI.UpdateScores(res.Scores)
	r.UI.Log(res.Reply)
	fmt.Println(renderReport(res))
	return nil
}

func renderReport(res *coach.Result) string {
	var b strings.Builder

	b.WriteString("\n--- COACH RESPONSE ---\n")
	b.WriteString(res.Reply)
	b.WriteString("\n\n--- PROGRESS SNAPSHOT ---\n")
	fmt.Fprintf(&b, "Sessions: %d\n", res.Sessions)
	for _, name := range trait.Names() {
		fmt.Fprintf(&b, "  %-13s %6.1f\n", name, res.Scores.Get(name))
	}
	fmt.Fprintf(&b, "Progress: %s (avg %.1f)\n", res.Progress.Tier, res.Progress.AvgScore)

	if res.Apex != nil {
		b.WriteString("\n--- APEX STATE ---\n")
		fmt.Fprintf(&b, "Momentum:   %+.3f\n", res.Apex.Momentum)
		fmt.Fprintf(&b, "Volatility: %.3f\n", res.Apex.Volatility)
		fmt.Fprintf(&b, "Dominance:  %.3f\n", res.Apex.DominanceIndex)
		fmt.Fprintf(&b, "Modes:      %s\n", strings.Join(res.Apex.Modes, ", "))
		fmt.Fprintf(&b, "Focus Arc:  %s\n", res.Apex.FocusArc.Arc)
	}
	return b.String()
}
