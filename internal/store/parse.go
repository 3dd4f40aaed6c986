package store

import "strconv"

// ParseFloatOr decodes a stored numeric cell, substituting def when the
// cell is empty or malformed. Corruption recovery is deliberate and
// explicit here rather than scattered through the readers: a single bad
// cell never fails a whole row or a whole read.
func ParseFloatOr(cell string, def float64) float64 {
	if cell == "" {
		return def
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return def
	}
	return v
}
