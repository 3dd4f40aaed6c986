package scorer

import (
	"context"
	"strings"
	"testing"

	"github.com/felixgeelhaar/apexmind/internal/provider"
	"github.com/felixgeelhaar/apexmind/internal/trait"
)

func TestParseVerdict(t *testing.T) {
	current := trait.Observation{
		trait.Discipline: 30,
		trait.Clarity:    55,
	}

	t.Run("clean JSON", func(t *testing.T) {
		raw := `{"scores":{"discipline":70,"consistency":40,"execution":60,"adaptability":50,"ego_strength":80,"clarity":65},"notes":{"discipline":"shows routine"}}`
		res := ParseVerdict(raw, current)
		if res.Scores[trait.Discipline] != 70 {
			t.Errorf("Expected discipline 70, got %v", res.Scores[trait.Discipline])
		}
		if res.Scores[trait.EgoStrength] != 80 {
			t.Errorf("Expected ego_strength 80, got %v", res.Scores[trait.EgoStrength])
		}
		if res.Notes[trait.Discipline] != "shows routine" {
			t.Errorf("Expected note carried, got %v", res.Notes)
		}
	})

	t.Run("JSON wrapped in prose", func(t *testing.T) {
		raw := "Here is my evaluation:\n```json\n{\"scores\":{\"discipline\":90}}\n```\nHope this helps."
		res := ParseVerdict(raw, current)
		if res.Scores[trait.Discipline] != 90 {
			t.Errorf("Expected extracted discipline 90, got %v", res.Scores[trait.Discipline])
		}
		// Missing traits inherit the current score.
		if res.Scores[trait.Clarity] != 55 {
			t.Errorf("Expected clarity to stay 55, got %v", res.Scores[trait.Clarity])
		}
	})

	t.Run("unparseable output keeps current scores", func(t *testing.T) {
		res := ParseVerdict("the model refused to answer", current)
		if res.Scores[trait.Discipline] != 30 || res.Scores[trait.Clarity] != 55 {
			t.Errorf("Expected current scores preserved, got %v", res.Scores)
		}
		if res.Scores[trait.Execution] != 0 {
			t.Errorf("Expected untracked trait to default to 0, got %v", res.Scores[trait.Execution])
		}
	})

	t.Run("out of range values clamped", func(t *testing.T) {
		raw := `{"scores":{"discipline":150,"consistency":-20}}`
		res := ParseVerdict(raw, current)
		if res.Scores[trait.Discipline] != 100 {
			t.Errorf("Expected discipline clamped to 100, got %v", res.Scores[trait.Discipline])
		}
		if res.Scores[trait.Consistency] != 0 {
			t.Errorf("Expected consistency clamped to 0, got %v", res.Scores[trait.Consistency])
		}
	})

	t.Run("unknown note keys dropped", func(t *testing.T) {
		raw := `{"scores":{"discipline":50},"notes":{"discipline":"ok","swagger":"nope"}}`
		res := ParseVerdict(raw, current)
		if _, ok := res.Notes[trait.Name("swagger")]; ok {
			t.Error("Expected unknown note key to be dropped")
		}
	})
}

func TestLLMScorer_Infer(t *testing.T) {
	p := provider.NewStubProvider(`{"scores":{"discipline":40,"consistency":40,"execution":40,"adaptability":40,"ego_strength":40,"clarity":40}}`)
	s := NewLLMScorer(p)

	res, err := s.Infer(context.Background(), "I train every day", "Good. Keep the streak.", nil)
	if err != nil {
		t.Fatalf("Infer failed: %v", err)
	}
	for _, name := range trait.Names() {
		if res.Scores[name] != 40 {
			t.Errorf("Expected %s to be 40, got %v", name, res.Scores[name])
		}
	}

	if len(p.ChatCalls) != 1 {
		t.Fatalf("Expected one chat call, got %d", len(p.ChatCalls))
	}
	msgs := p.ChatCalls[0]
	if msgs[0].Role != "system" || !strings.Contains(msgs[0].Content, "NUMERIC SCORES") {
		t.Error("Expected scoring system prompt in first message")
	}
	if !strings.Contains(msgs[1].Content, "I train every day") {
		t.Error("Expected user message in prompt")
	}
}

func TestLLMScorer_UnparseableReplyFallsBack(t *testing.T) {
	p := provider.NewStubProvider("I cannot judge this person.")
	s := NewLLMScorer(p)

	current := trait.Observation{trait.Discipline: 62}
	res, err := s.Infer(context.Background(), "msg", "reply", current)
	if err != nil {
		t.Fatalf("Infer failed: %v", err)
	}
	if res.Scores[trait.Discipline] != 62 {
		t.Errorf("Expected current score preserved on unparseable reply, got %v", res.Scores[trait.Discipline])
	}
}

func TestStubScorer(t *testing.T) {
	s := &StubScorer{Fixed: trait.Observation{trait.Discipline: 120}}
	res, err := s.Infer(context.Background(), "a", "b", nil)
	if err != nil {
		t.Fatalf("Infer failed: %v", err)
	}
	if res.Scores[trait.Discipline] != 100 {
		t.Errorf("Expected clamped fixed score, got %v", res.Scores[trait.Discipline])
	}
	if len(s.Calls) != 1 || s.Calls[0][0] != "a" {
		t.Errorf("Expected recorded call, got %v", s.Calls)
	}
}
