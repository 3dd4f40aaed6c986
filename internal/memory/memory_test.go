package memory

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/apexmind/internal/store"
	"github.com/felixgeelhaar/apexmind/internal/trait"
)

func newManager(t *testing.T) *Manager {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "apexmind-memory-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	s, err := store.NewSQLiteStore(filepath.Join(tmpDir, "apexmind.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return NewManager(s)
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestManager_UpdateScores(t *testing.T) {
	m := newManager(t)

	t.Run("EMAExactness", func(t *testing.T) {
		raw := trait.Observation{}
		for _, n := range trait.Names() {
			raw[n] = 40
		}
		profile, err := m.UpdateScores("kai", raw, 0.4)
		if err != nil {
			t.Fatalf("UpdateScores failed: %v", err)
		}
		for _, n := range trait.Names() {
			if got := profile.Scores.Get(n); !almostEqual(got, 16) {
				t.Errorf("Expected %s = 16 after first update, got %v", n, got)
			}
		}
		if profile.Sessions != 1 {
			t.Errorf("Expected session count 1, got %d", profile.Sessions)
		}

		// Second update against non-zero old values.
		profile, err = m.UpdateScores("kai", trait.Observation{trait.Discipline: 80}, 0.3)
		if err != nil {
			t.Fatalf("UpdateScores failed: %v", err)
		}
		want := 0.7*16 + 0.3*80
		if got := profile.Scores.Discipline; !almostEqual(got, want) {
			t.Errorf("Expected discipline %v, got %v", want, got)
		}
		if profile.Sessions != 2 {
			t.Errorf("Expected session count 2, got %d", profile.Sessions)
		}
	})

	t.Run("AbsentTraitsUnchanged", func(t *testing.T) {
		profile, err := m.UpdateScores("mika", trait.Observation{trait.Clarity: 50}, 0.5)
		if err != nil {
			t.Fatalf("UpdateScores failed: %v", err)
		}
		if !almostEqual(profile.Scores.Clarity, 25) {
			t.Errorf("Expected clarity 25, got %v", profile.Scores.Clarity)
		}
		if profile.Scores.Discipline != 0 {
			t.Errorf("Expected absent trait to stay 0, got %v", profile.Scores.Discipline)
		}

		profile, _ = m.UpdateScores("mika", trait.Observation{trait.Discipline: 60}, 0.5)
		if !almostEqual(profile.Scores.Clarity, 25) {
			t.Errorf("Expected clarity untouched at 25, got %v", profile.Scores.Clarity)
		}
	})

	t.Run("RawClampedBeforeSmoothing", func(t *testing.T) {
		profile, err := m.UpdateScores("rin", trait.Observation{trait.EgoStrength: 900}, 1.0)
		if err != nil {
			t.Fatalf("UpdateScores failed: %v", err)
		}
		if profile.Scores.EgoStrength != 100 {
			t.Errorf("Expected clamp to 100, got %v", profile.Scores.EgoStrength)
		}

		profile, _ = m.UpdateScores("rin", trait.Observation{trait.EgoStrength: -50}, 1.0)
		if profile.Scores.EgoStrength != 0 {
			t.Errorf("Expected clamp to 0, got %v", profile.Scores.EgoStrength)
		}
	})

	t.Run("Persisted", func(t *testing.T) {
		if _, err := m.UpdateScores("sol", trait.Observation{trait.Execution: 70}, 0.4); err != nil {
			t.Fatalf("UpdateScores failed: %v", err)
		}
		profile, err := m.Profile("sol")
		if err != nil {
			t.Fatalf("Profile failed: %v", err)
		}
		if !almostEqual(profile.Scores.Execution, 28) {
			t.Errorf("Expected persisted execution 28, got %v", profile.Scores.Execution)
		}
	})
}

func TestManager_AddGoal(t *testing.T) {
	m := newManager(t)

	g1, err := m.AddGoal("kai", "ship the side project", "execution")
	if err != nil {
		t.Fatalf("AddGoal failed: %v", err)
	}
	if g1.ID != "goal-1" {
		t.Errorf("Expected 'goal-1', got '%s'", g1.ID)
	}

	// Not idempotent: identical arguments create a second goal.
	g2, err := m.AddGoal("kai", "ship the side project", "execution")
	if err != nil {
		t.Fatalf("AddGoal failed: %v", err)
	}
	if g2.ID != "goal-2" {
		t.Errorf("Expected 'goal-2', got '%s'", g2.ID)
	}

	profile, _ := m.Profile("kai")
	if len(profile.Goals) != 2 {
		t.Errorf("Expected 2 goals on profile, got %d", len(profile.Goals))
	}

	// Goals survive a score update untouched.
	if _, err := m.UpdateScores("kai", trait.Observation{trait.Discipline: 50}, 0.4); err != nil {
		t.Fatalf("UpdateScores failed: %v", err)
	}
	profile, _ = m.Profile("kai")
	if len(profile.Goals) != 2 {
		t.Errorf("Expected goals untouched by smoothing, got %d", len(profile.Goals))
	}
}

func TestEstimateProgress(t *testing.T) {
	cases := []struct {
		score float64
		tier  string
	}{
		{0, "Novice (far from potential)"},
		{29.9, "Novice (far from potential)"},
		{30, "Developing (early grind phase)"},
		{50, "Serious Competitor"},
		{70, "High Performer"},
		{85, "Elite Trajectory"},
		{100, "Elite Trajectory"},
	}
	for _, c := range cases {
		profile := &store.Profile{}
		for _, n := range trait.Names() {
			profile.Scores.Set(n, c.score)
		}
		got := EstimateProgress(profile)
		if got.Tier != c.tier {
			t.Errorf("avg %v: expected tier %q, got %q", c.score, c.tier, got.Tier)
		}
		if !almostEqual(got.AvgScore, c.score) {
			t.Errorf("avg %v: expected AvgScore %v, got %v", c.score, c.score, got.AvgScore)
		}
	}
}

func TestManager_InteractionHistory(t *testing.T) {
	m := newManager(t)

	var snapshot trait.Vector
	snapshot.Set(trait.Discipline, 16)

	for _, text := range []string{"week one", "week two"} {
		if err := m.LogInteraction("kai", text, "coached reply", snapshot); err != nil {
			t.Fatalf("LogInteraction failed: %v", err)
		}
	}

	recs, err := m.RecentHistory("kai", 10)
	if err != nil {
		t.Fatalf("RecentHistory failed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(recs))
	}
	if recs[0].UserText != "week one" {
		t.Errorf("Expected oldest first, got '%s'", recs[0].UserText)
	}
	if recs[1].Scores.Discipline != 16 {
		t.Errorf("Expected snapshot discipline 16, got %v", recs[1].Scores.Discipline)
	}
}
