package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected float64
	}{
		{name: "both empty", a: "", b: "", expected: 1},
		{name: "left empty", a: "", b: "шевченка", expected: 0},
		{name: "right empty", a: "шевченка", b: "", expected: 0},
		{name: "identical", a: "петлюри", b: "петлюри", expected: 1},
		{name: "containment short-circuit", a: "хмельницького", b: "богдана хмельницького", expected: ContainmentScore},
		{name: "one dropped letter", a: "шевченка", b: "шевчнка", expected: 1 - 1.0/8},
		{name: "disjoint", a: "ринок", b: "озерна", expected: 1 - 6.0/6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Similarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	pairs := [][2]string{
		{"шевченка", "шевчнка"},
		{"хмельницького", "хмелницкого"},
		{"озерна", "озерная"},
		{"", "петлюри"},
	}
	for _, p := range pairs {
		assert.Equal(t, Similarity(p[0], p[1]), Similarity(p[1], p[0]))
	}
}

func TestSimilarityIdentity(t *testing.T) {
	for _, s := range []string{"", "а", "грінченка", "богдана хмельницького"} {
		assert.Equal(t, 1.0, Similarity(s, s))
	}
}

// Containment in either direction guarantees at least the containment score.
func TestSimilarityContainmentFloor(t *testing.T) {
	pairs := [][2]string{
		{"петлюри", "симона петлюри"},
		{"симона петлюри", "петлюри"},
		{"озерна", "озерна"},
	}
	for _, p := range pairs {
		assert.GreaterOrEqual(t, Similarity(p[0], p[1]), 0.9)
	}
}
