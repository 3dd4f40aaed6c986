package coach

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Persona defines the coaching voice: who the agent channels and what
// it is trying to do to the user's mindset. Personas load from YAML or
// JSON files so programs can ship their own coach definitions.
type Persona struct {
	Name       string   `json:"name" yaml:"name"`
	Influences []string `json:"influences" yaml:"influences"`
	Mission    []string `json:"mission" yaml:"mission"`
	Directive  string   `json:"directive" yaml:"directive"`
}

// DefaultPersona is the built-in mindset transformation coach.
func DefaultPersona() *Persona {
	return &Persona{
		Name: "Mindset Transformation Agent",
		Influences: []string{
			"ruthless clarity and ego sharpening",
			"cold analysis and strategy",
			"deep psychological insight",
			"strategic exploitation and advantage-building",
		},
		Mission: []string{
			"Break limiting beliefs",
			"Build elite competitive mindset",
			"Push the user to peak performance",
			"Diagnose mental weaknesses",
			"Strengthen ego, discipline, consistency, clarity, adaptability",
		},
		Directive: "Use the retrieved knowledge base context heavily in your reasoning.",
	}
}

// LoadPersona reads a persona definition from a file (JSON or YAML).
func LoadPersona(path string) (*Persona, error) {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("failed to read persona file: %w", err)
	}

	var p Persona
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal JSON persona: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal YAML persona: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported persona format: %s (use .json or .yaml)", ext)
	}

	if p.Name == "" {
		return nil, fmt.Errorf("persona file %s has no name", path)
	}
	return &p, nil
}

// SystemPrompt renders the persona into the system message that opens
// every coaching turn.
func (p *Persona) SystemPrompt() string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a %s.\n", p.Name)

	if len(p.Influences) > 0 {
		b.WriteString("\nYour personality synthesis:\n")
		for _, inf := range p.Influences {
			fmt.Fprintf(&b, "- %s\n", inf)
		}
	}
	if len(p.Mission) > 0 {
		b.WriteString("\nYour mission:\n")
		for _, m := range p.Mission {
			fmt.Fprintf(&b, "- %s\n", m)
		}
	}
	if p.Directive != "" {
		b.WriteString("\n" + p.Directive + "\n")
	}
	return b.String()
}
