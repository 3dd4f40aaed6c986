// Package apex derives performance metrics from the session ledger and
// the latest raw trait scores: momentum, volatility, dominance index,
// active modes and the focus arc. All metric computations are pure;
// only the Engine touches storage.
package apex

import (
	"math"
	"sort"

	"github.com/felixgeelhaar/apexmind/internal/store"
	"github.com/felixgeelhaar/apexmind/internal/trait"
)

// momentumWindow is the number of most recent sessions considered.
const momentumWindow = 5

// momentumScale maps a ~±25 point average swing on the 0-100 scale to
// the unit range.
const momentumScale = 25.0

// dominanceWeights is the fixed trait weighting behind the dominance
// index.
var dominanceWeights = map[trait.Name]float64{
	trait.Discipline:   1.2,
	trait.Consistency:  1.3,
	trait.Execution:    1.3,
	trait.Adaptability: 1.0,
	trait.EgoStrength:  1.4,
	trait.Clarity:      1.0,
}

// arcTable maps each trait to its prescriptive focus arc.
var arcTable = map[trait.Name]string{
	trait.Discipline:   "Discipline Arc — daily structure, no escape routes.",
	trait.Consistency:  "Consistency Arc — remove zero days, build streaks.",
	trait.Execution:    "Execution Arc — more doing, less overthinking.",
	trait.Adaptability: "Adaptability Arc — embrace chaos, adjust faster.",
	trait.EgoStrength:  "Ego Ascension Arc — rebuild identity around winning.",
	trait.Clarity:      "Clarity Arc — sharpen goals, eliminate vagueness.",
}

// Momentum is the mean per-trait delta across consecutive pairs in the
// last up to five sessions, scaled to roughly [-1, 1] and clamped.
// Fewer than two sessions yield 0.
func Momentum(sessions []store.SessionRow) float64 {
	if len(sessions) < 2 {
		return 0.0
	}

	recent := sessions
	if len(recent) > momentumWindow {
		recent = recent[len(recent)-momentumWindow:]
	}

	var sum float64
	var count int
	for i := 1; i < len(recent); i++ {
		prev, curr := recent[i-1].Scores, recent[i].Scores
		for _, n := range trait.Names() {
			sum += curr.Get(n) - prev.Get(n)
			count++
		}
	}
	if count == 0 {
		return 0.0
	}

	momentum := (sum / float64(count)) / momentumScale
	return math.Max(-1.0, math.Min(1.0, momentum))
}

// Volatility is the population standard deviation of the per-session
// average score, normalized by 100 and clamped to [0, 1]. It measures
// instability of the overall average, not per-trait instability.
// Fewer than two sessions yield 0.
func Volatility(sessions []store.SessionRow) float64 {
	if len(sessions) < 2 {
		return 0.0
	}

	avgs := make([]float64, len(sessions))
	var mean float64
	for i, s := range sessions {
		avgs[i] = s.Scores.Average()
		mean += avgs[i]
	}
	mean /= float64(len(avgs))

	var variance float64
	for _, a := range avgs {
		variance += (a - mean) * (a - mean)
	}
	variance /= float64(len(avgs))

	vol := math.Sqrt(variance) / 100.0
	return math.Max(0.0, math.Min(1.0, vol))
}

// DominanceIndex is the weighted composite of the raw current scores,
// normalized to [0, 1]. Missing traits contribute 0.
func DominanceIndex(scores trait.Observation) float64 {
	var totalWeight, num float64
	for n, w := range dominanceWeights {
		totalWeight += w
		num += w * scores[n]
	}

	raw := num / (totalWeight * 100.0)
	return math.Max(0.0, math.Min(1.0, raw))
}

// DetermineModes evaluates the mode thresholds against the raw current
// scores and the momentum. All matching modes are included, in fixed
// order; when none match the sole mode is Foundational Grind Mode.
func DetermineModes(scores trait.Observation, momentum float64) []string {
	var modes []string

	if scores[trait.EgoStrength] >= 30 {
		modes = append(modes, "Ego Ascension Mode")
	}
	if scores[trait.Discipline] >= 20 && scores[trait.Consistency] >= 20 {
		modes = append(modes, "Elite Routine Mode")
	}
	if scores[trait.Clarity] >= 15 {
		modes = append(modes, "Strategic Clarity Mode")
	}
	if momentum > 0.25 {
		modes = append(modes, "Hypergrowth Mode")
	}

	if len(modes) == 0 {
		modes = append(modes, "Foundational Grind Mode")
	}
	return modes
}

// DetermineFocusArc picks the weakest trait in the raw current scores
// and maps it to its prescriptive arc. Ties break in canonical trait
// order. An empty observation yields the "No Data Yet" sentinel.
func DetermineFocusArc(scores trait.Observation) store.FocusArc {
	if len(scores) == 0 {
		return store.FocusArc{Arc: "No Data Yet"}
	}

	var weak trait.Name
	var weakScore float64
	found := false
	for _, n := range trait.Names() {
		score, ok := scores[n]
		if !ok {
			continue
		}
		if !found || score < weakScore {
			weak, weakScore, found = n, score, true
		}
	}
	if !found {
		// Only untracked names present; pick deterministically.
		names := make([]string, 0, len(scores))
		for n := range scores {
			names = append(names, string(n))
		}
		sort.Strings(names)
		weak = trait.Name(names[0])
	}

	arc, ok := arcTable[weak]
	if !ok {
		arc = "General Growth Arc"
	}
	return store.FocusArc{WeakTrait: weak, Arc: arc}
}
