package guard

import (
	"strings"
	"testing"
)

func TestCheckPrompt(t *testing.T) {
	g := New(Policy{MaxPromptChars: 10})

	if v := g.CheckPrompt("short"); v != nil {
		t.Errorf("Expected no violation, got %v", v)
	}
	v := g.CheckPrompt("this is far too long for the budget")
	if v == nil {
		t.Fatal("Expected violation for over-budget prompt")
	}
	if v.Rule != "max_prompt_chars" || !v.Fatal {
		t.Errorf("Unexpected violation: %+v", v)
	}
}

func TestCheckPrompt_Unlimited(t *testing.T) {
	g := New(Policy{})
	if v := g.CheckPrompt(strings.Repeat("x", 100000)); v != nil {
		t.Errorf("Expected zero limit to mean unlimited, got %v", v)
	}
}

func TestCheckTokens(t *testing.T) {
	g := New(Policy{MaxTurnTokens: 100})
	if v := g.CheckTokens(99); v != nil {
		t.Errorf("Expected no violation, got %v", v)
	}
	v := g.CheckTokens(101)
	if v == nil {
		t.Fatal("Expected violation for token overrun")
	}
	if v.Fatal {
		t.Error("Token overrun is reported after the fact and should not be fatal")
	}
}

func TestPassageCap(t *testing.T) {
	g := New(Policy{MaxPassages: 3})
	if got := g.PassageCap(5); got != 3 {
		t.Errorf("Expected cap 3, got %d", got)
	}
	if got := g.PassageCap(2); got != 2 {
		t.Errorf("Expected 2 untouched, got %d", got)
	}
	if got := New(Policy{}).PassageCap(10); got != 10 {
		t.Errorf("Expected no cap with zero policy, got %d", got)
	}
}

func TestTrimReply(t *testing.T) {
	g := New(Policy{MaxReplyChars: 20})

	if got := g.TrimReply("fits fine"); got != "fits fine" {
		t.Errorf("Expected short reply untouched, got %q", got)
	}

	got := g.TrimReply("one two three four five six seven")
	if len(got) > 20 {
		t.Errorf("Expected trimmed reply within 20 chars, got %d", len(got))
	}
	if strings.HasSuffix(got, " ") {
		t.Errorf("Expected no trailing space, got %q", got)
	}
	// Cut lands on a word boundary.
	if got != "one two three four" {
		t.Errorf("Expected cut at last space, got %q", got)
	}
}
