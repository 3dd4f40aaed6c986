// Package trait defines the fixed six-dimension mindset model that every
// other component operates on: profile smoothing, the session ledger and
// the apex metrics all speak in terms of these six traits.
package trait

// Name identifies one of the six tracked mindset traits.
type Name string

const (
	Discipline   Name = "discipline"
	Consistency  Name = "consistency"
	Execution    Name = "execution"
	Adaptability Name = "adaptability"
	EgoStrength  Name = "ego_strength"
	Clarity      Name = "clarity"
)

// Names returns the canonical trait ordering. Consumers that iterate
// over traits (ledger columns, tie-breaking, rendering) must use this
// order, never map iteration order.
func Names() []Name {
	return []Name{Discipline, Consistency, Execution, Adaptability, EgoStrength, Clarity}
}

// Valid reports whether n is one of the six tracked traits.
func (n Name) Valid() bool {
	switch n {
	case Discipline, Consistency, Execution, Adaptability, EgoStrength, Clarity:
		return true
	}
	return false
}

// Clamp bounds a score to the [0, 100] scale.
func Clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Vector is a complete score record with exactly one value per trait.
// Profiles and ledger rows always carry a full Vector; partial external
// input is modelled as an Observation instead.
type Vector struct {
	Discipline   float64 `json:"discipline"`
	Consistency  float64 `json:"consistency"`
	Execution    float64 `json:"execution"`
	Adaptability float64 `json:"adaptability"`
	EgoStrength  float64 `json:"ego_strength"`
	Clarity      float64 `json:"clarity"`
}

// Get returns the score for a trait. Unknown names yield 0.
func (v Vector) Get(n Name) float64 {
	switch n {
	case Discipline:
		return v.Discipline
	case Consistency:
		return v.Consistency
	case Execution:
		return v.Execution
	case Adaptability:
		return v.Adaptability
	case EgoStrength:
		return v.EgoStrength
	case Clarity:
		return v.Clarity
	}
	return 0
}

// Set stores a score for a trait, clamped to [0, 100]. Unknown names
// are ignored.
func (v *Vector) Set(n Name, score float64) {
	score = Clamp(score)
	switch n {
	case Discipline:
		v.Discipline = score
	case Consistency:
		v.Consistency = score
	case Execution:
		v.Execution = score
	case Adaptability:
		v.Adaptability = score
	case EgoStrength:
		v.EgoStrength = score
	case Clarity:
		v.Clarity = score
	}
}

// Average returns the mean of all six scores.
func (v Vector) Average() float64 {
	sum := v.Discipline + v.Consistency + v.Execution + v.Adaptability + v.EgoStrength + v.Clarity
	return sum / 6.0
}

// Observation returns the vector as a full six-key observation.
func (v Vector) Observation() Observation {
	obs := make(Observation, 6)
	for _, n := range Names() {
		obs[n] = v.Get(n)
	}
	return obs
}

// Observation is a possibly-partial set of raw trait estimates, as
// produced by an external scorer for a single coaching turn. Traits may
// be missing; values are not guaranteed to be in range until Clamped.
type Observation map[Name]float64

// Clamped returns a copy with every score bounded to [0, 100] and every
// key outside the six tracked traits removed.
func (o Observation) Clamped() Observation {
	out := make(Observation, len(o))
	for n, score := range o {
		if !n.Valid() {
			continue
		}
		out[n] = Clamp(score)
	}
	return out
}

// Vector expands the observation to a full record. Missing traits are
// treated as 0, matching how ledger rows are written.
func (o Observation) Vector() Vector {
	var v Vector
	for _, n := range Names() {
		v.Set(n, o[n])
	}
	return v
}
