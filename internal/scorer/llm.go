package scorer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/apexmind/internal/provider"
	"github.com/felixgeelhaar/apexmind/internal/trait"
)

const scoringSystemPrompt = `You are a strict evaluation engine for competitive mindset coaching.

Your job is to evaluate a user's current competitive mindset, based on:
- What they say (their message)
- How the coach responds
- Their existing scores (if given)

You must output NUMERIC SCORES for these traits (0-100):
- discipline
- consistency
- execution
- adaptability
- ego_strength
- clarity

0 = extremely weak / self-sabotaging
50 = average / unstable
100 = elite world-class mindset

IMPORTANT:
- Do NOT be nice. Be accurate and harsh.
- Use their wording, fears, excuses, and ambition to judge.
- If they show excuses or vagueness, lower discipline/clarity.
- If they show ambition and willingness to act, increase ego_strength and execution.
- If they show flexibility, increase adaptability.
- If they show consistent action, increase consistency.

Your output MUST be ONLY valid JSON in this shape:

{
  "scores": {
    "discipline": <number>,
    "consistency": <number>,
    "execution": <number>,
    "adaptability": <number>,
    "ego_strength": <number>,
    "clarity": <number>
  },
  "notes": {
    "discipline": "<short note>",
    "consistency": "<short note>",
    "execution": "<short note>",
    "adaptability": "<short note>",
    "ego_strength": "<short note>",
    "clarity": "<short note>"
  }
}

No extra commentary, no markdown, no text outside JSON.`

// LLMScorer asks a chat provider to judge the exchange and parses the
// strict-JSON verdict.
type LLMScorer struct {
	provider provider.Provider
}

func NewLLMScorer(p provider.Provider) *LLMScorer {
	return &LLMScorer{provider: p}
}

func (s *LLMScorer) Name() string {
	return "llm:" + s.provider.Name()
}

func (s *LLMScorer) Infer(ctx context.Context, userMessage, agentReply string, current trait.Observation) (*Result, error) {
	if current == nil {
		current = trait.Observation{}
	}

	ref, err := json.Marshal(currentForPrompt(current))
	if err != nil {
		return nil, fmt.Errorf("failed to encode current scores: %w", err)
	}

	prompt := fmt.Sprintf("### USER MESSAGE:\n%s\n\n### COACH REPLY:\n%s\n\n### CURRENT SCORES (for reference, may be empty or all zeros):\n%s",
		userMessage, agentReply, string(ref))

	resp, err := s.provider.Chat(ctx, []provider.Message{
		{Role: "system", Content: scoringSystemPrompt},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return nil, fmt.Errorf("scoring chat failed: %w", err)
	}

	return ParseVerdict(resp.Content, current), nil
}

func currentForPrompt(current trait.Observation) map[string]float64 {
	out := make(map[string]float64, len(trait.Names()))
	for _, name := range trait.Names() {
		out[string(name)] = current[name]
	}
	return out
}

type verdict struct {
	Scores map[string]json.Number `json:"scores"`
	Notes  map[string]string      `json:"notes"`
}

// ParseVerdict decodes a model's scoring output. Models wrap JSON in
// prose often enough that the outermost {...} span is extracted before
// decoding. On unparseable output the current scores come back
// unchanged; missing traits inherit their current score; every value
// is clamped to the trait range.
func ParseVerdict(raw string, current trait.Observation) *Result {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "{") {
		start := strings.Index(raw, "{")
		end := strings.LastIndex(raw, "}")
		if start != -1 && end > start {
			raw = raw[start : end+1]
		}
	}

	var v verdict
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return &Result{Scores: fallbackScores(current)}
	}

	scores := make(trait.Observation, len(trait.Names()))
	for _, name := range trait.Names() {
		val := current[name]
		if num, ok := v.Scores[string(name)]; ok {
			if parsed, err := num.Float64(); err == nil {
				val = parsed
			}
		}
		scores[name] = trait.Clamp(val)
	}

	res := &Result{Scores: scores}
	if len(v.Notes) > 0 {
		res.Notes = make(map[trait.Name]string, len(v.Notes))
		for k, note := range v.Notes {
			name := trait.Name(k)
			if name.Valid() {
				res.Notes[name] = note
			}
		}
	}
	return res
}

func fallbackScores(current trait.Observation) trait.Observation {
	out := make(trait.Observation, len(trait.Names()))
	for _, name := range trait.Names() {
		out[name] = current[name]
	}
	return out
}
