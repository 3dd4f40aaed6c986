package ui

import (
	"testing"

	"github.com/felixgeelhaar/apexmind/internal/trait"
)

func TestSilentUI(t *testing.T) {
	u := SilentUI{}
	// Should not panic
	u.UpdateStatus("test status")
	u.UpdateScores(trait.Vector{})
	u.Log("test message")
	u.Log("")
}

func TestSilentUI_ImplementsInterface(t *testing.T) {
	var _ UI = SilentUI{}
	var _ UI = &SilentUI{}
}

// MockUI implements UI interface for testing
type MockUI struct {
	StatusUpdates []string
	ScoreUpdates  []trait.Vector
	LogMessages   []string
}

func (m *MockUI) UpdateStatus(status string) {
	m.StatusUpdates = append(m.StatusUpdates, status)
}

func (m *MockUI) UpdateScores(scores trait.Vector) {
	m.ScoreUpdates = append(m.ScoreUpdates, scores)
}

func (m *MockUI) Log(msg string) {
	m.LogMessages = append(m.LogMessages, msg)
}

func TestMockUI_Records(t *testing.T) {
	u := &MockUI{}

	u.UpdateStatus("thinking")
	u.UpdateStatus("scoring")

	var v trait.Vector
	v.Set(trait.Discipline, 40)
	u.UpdateScores(v)

	u.Log("turn complete")

	if len(u.StatusUpdates) != 2 || u.StatusUpdates[1] != "scoring" {
		t.Errorf("unexpected status updates: %v", u.StatusUpdates)
	}
	if len(u.ScoreUpdates) != 1 || u.ScoreUpdates[0].Get(trait.Discipline) != 40 {
		t.Errorf("unexpected score updates: %v", u.ScoreUpdates)
	}
	if len(u.LogMessages) != 1 {
		t.Errorf("expected 1 log message, got %d", len(u.LogMessages))
	}
}

func TestMockUI_ImplementsInterface(t *testing.T) {
	var _ UI = &MockUI{}
}
