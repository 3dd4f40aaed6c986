// Package memory manages the long-term user profile: goal tracking,
// exponential smoothing of trait scores and the interaction audit log.
package memory

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/apexmind/internal/store"
	"github.com/felixgeelhaar/apexmind/internal/trait"
)

// Manager is the sole mutator of user profiles. It owns no state of its
// own; every operation reads and writes through the store.
type Manager struct {
	store store.Storage
}

func NewManager(s store.Storage) *Manager {
	return &Manager{store: s}
}

// Profile loads the user's profile, creating a zero-initialized one on
// first reference.
func (m *Manager) Profile(userID string) (*store.Profile, error) {
	return m.store.LoadOrCreateProfile(userID)
}

// AddGoal appends a new goal to the user's profile and persists it.
// Goal identifiers are positional; calling twice with identical
// arguments creates two distinct goals.
func (m *Manager) AddGoal(userID, text, category string) (*store.Goal, error) {
	profile, err := m.store.LoadOrCreateProfile(userID)
	if err != nil {
		return nil, err
	}

	goal := store.Goal{
		ID:        fmt.Sprintf("goal-%d", len(profile.Goals)+1),
		Text:      text,
		Category:  category,
		CreatedAt: time.Now().UTC(),
	}
	profile.Goals = append(profile.Goals, goal)

	if err := m.store.SaveProfile(profile); err != nil {
		return nil, err
	}
	return &goal, nil
}

// UpdateScores merges a raw per-turn observation into the profile via
// exponential moving average: smoothed = (1-weight)*old + weight*raw.
// Traits absent from the observation are left unchanged. The session
// counter is incremented and the profile persisted.
//
// The weight is taken as supplied. A weight outside [0, 1] produces
// extrapolation instead of interpolation; bounding it is the caller's
// responsibility.
func (m *Manager) UpdateScores(userID string, raw trait.Observation, weight float64) (*store.Profile, error) {
	profile, err := m.store.LoadOrCreateProfile(userID)
	if err != nil {
		return nil, err
	}

	for _, n := range trait.Names() {
		rawVal, ok := raw[n]
		if !ok {
			continue
		}
		old := profile.Scores.Get(n)
		profile.Scores.Set(n, (1-weight)*old+weight*trait.Clamp(rawVal))
	}
	profile.Sessions++

	if err := m.store.SaveProfile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// ProgressLevel summarizes a profile as an average score and a tier
// label.
type ProgressLevel struct {
	AvgScore float64 `json:"avg_score"`
	Tier     string  `json:"tier"`
}

// EstimateProgress maps the profile's smoothed average onto a tier.
func EstimateProgress(profile *store.Profile) ProgressLevel {
	avg := profile.Scores.Average()

	var tier string
	switch {
	case avg < 30:
		tier = "Novice (far from potential)"
	case avg < 50:
		tier = "Developing (early grind phase)"
	case avg < 70:
		tier = "Serious Competitor"
	case avg < 85:
		tier = "High Performer"
	default:
		tier = "Elite Trajectory"
	}

	return ProgressLevel{AvgScore: avg, Tier: tier}
}

// LogInteraction appends one audit record for a coaching exchange. The
// snapshot should be the profile's smoothed scores at log time.
func (m *Manager) LogInteraction(userID, userText, agentText string, snapshot trait.Vector) error {
	return m.store.AppendInteraction(userID, &store.Interaction{
		UserText:  userText,
		AgentText: agentText,
		Scores:    snapshot,
	})
}

// RecentHistory returns up to the last limit interactions in
// chronological order, for reflection features.
func (m *Manager) RecentHistory(userID string, limit int) ([]store.Interaction, error) {
	return m.store.RecentInteractions(userID, limit)
}
