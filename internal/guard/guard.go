// Package guard enforces per-turn budget limits so a single coaching
// exchange cannot balloon into an unbounded provider bill or an
// unreadable wall of text.
package guard

// Policy defines the limits for one coaching turn.
type Policy struct {
	MaxPromptChars int `json:"max_prompt_chars"`
	MaxReplyChars  int `json:"max_reply_chars"`
	MaxPassages    int `json:"max_passages"`
	MaxTurnTokens  int `json:"max_turn_tokens"`
}

// DefaultPolicy provides generous defaults sized for a single
// flash-class model call.
var DefaultPolicy = Policy{
	MaxPromptChars: 24000,
	MaxReplyChars:  8000,
	MaxPassages:    5,
	MaxTurnTokens:  8000,
}

// Violation represents a specific breach of policy.
type Violation struct {
	Rule    string
	Message string
	Fatal   bool
}

// Guard enforces the policy.
type Guard struct {
	policy Policy
}

func New(p Policy) *Guard {
	return &Guard{policy: p}
}

// Policy returns the guard's current policy configuration.
func (g *Guard) Policy() Policy {
	return g.policy
}

// CheckPrompt rejects prompts that exceed the character budget before
// any provider call is made.
func (g *Guard) CheckPrompt(prompt string) *Violation {
	if g.policy.MaxPromptChars > 0 && len(prompt) > g.policy.MaxPromptChars {
		return &Violation{Rule: "max_prompt_chars", Message: "prompt exceeds budget", Fatal: true}
	}
	return nil
}

// CheckTokens verifies the turn's total token usage after the call.
func (g *Guard) CheckTokens(totalTokens int) *Violation {
	if g.policy.MaxTurnTokens > 0 && totalTokens > g.policy.MaxTurnTokens {
		return &Violation{Rule: "max_turn_tokens", Message: "turn token budget exceeded", Fatal: false}
	}
	return nil
}

// PassageCap returns how many retrieved passages a turn may carry.
// Zero or negative policy values mean no cap.
func (g *Guard) PassageCap(n int) int {
	if g.policy.MaxPassages > 0 && n > g.policy.MaxPassages {
		return g.policy.MaxPassages
	}
	return n
}

// TrimReply cuts an over-long reply at the character budget. The cut
// lands on the last space inside the budget when one exists, so a word
// is never split mid-way.
func (g *Guard) TrimReply(reply string) string {
	limit := g.policy.MaxReplyChars
	if limit <= 0 || len(reply) <= limit {
		return reply
	}
	cut := limit
	for i := limit; i > limit/2; i-- {
		if reply[i-1] == ' ' || reply[i-1] == '\n' {
			cut = i - 1
			break
		}
	}
	return reply[:cut]
}
