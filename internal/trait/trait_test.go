package trait

import "testing"

func TestClamp(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{-50, 0},
		{-0.001, 0},
		{0, 0},
		{42.5, 42.5},
		{100, 100},
		{100.001, 100},
		{900, 100},
	}
	for _, c := range cases {
		if got := Clamp(c.in); got != c.want {
			t.Errorf("Clamp(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestVector_SetClampsScores(t *testing.T) {
	var v Vector
	v.Set(Discipline, 150)
	v.Set(Clarity, -20)
	if v.Discipline != 100 {
		t.Errorf("Expected 100 after overflow set, got %v", v.Discipline)
	}
	if v.Clarity != 0 {
		t.Errorf("Expected 0 after negative set, got %v", v.Clarity)
	}
}

func TestVector_GetSetRoundTrip(t *testing.T) {
	var v Vector
	for i, n := range Names() {
		v.Set(n, float64(10*(i+1)))
	}
	for i, n := range Names() {
		if got := v.Get(n); got != float64(10*(i+1)) {
			t.Errorf("Get(%s) = %v, want %v", n, got, float64(10*(i+1)))
		}
	}
	if v.Get("unknown_trait") != 0 {
		t.Error("Expected 0 for unknown trait name")
	}
}

func TestVector_Average(t *testing.T) {
	v := Vector{Discipline: 10, Consistency: 20, Execution: 30, Adaptability: 40, EgoStrength: 50, Clarity: 60}
	if got := v.Average(); got != 35 {
		t.Errorf("Average = %v, want 35", got)
	}
}

func TestNames_CanonicalOrder(t *testing.T) {
	want := []Name{Discipline, Consistency, Execution, Adaptability, EgoStrength, Clarity}
	got := Names()
	if len(got) != len(want) {
		t.Fatalf("Expected %d names, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestObservation_Clamped(t *testing.T) {
	obs := Observation{
		Discipline: 120,
		Clarity:    -5,
		"charisma": 50, // not a tracked trait
	}
	clamped := obs.Clamped()
	if clamped[Discipline] != 100 {
		t.Errorf("Expected 100, got %v", clamped[Discipline])
	}
	if clamped[Clarity] != 0 {
		t.Errorf("Expected 0, got %v", clamped[Clarity])
	}
	if _, ok := clamped["charisma"]; ok {
		t.Error("Expected unknown trait to be dropped")
	}
}

func TestObservation_VectorFillsMissing(t *testing.T) {
	obs := Observation{Discipline: 40}
	v := obs.Vector()
	if v.Discipline != 40 {
		t.Errorf("Expected 40, got %v", v.Discipline)
	}
	if v.EgoStrength != 0 {
		t.Errorf("Expected missing trait to default to 0, got %v", v.EgoStrength)
	}
}
