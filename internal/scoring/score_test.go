
package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlendScenarios(t *testing.T) {
	tests := []struct {
		name string
		prob float64
		ease float64
		want int
	}{
		{"high prob easy text saturates", 0.9, 80, 100},
		{"low prob ignores readability", 0.3, 95, 30},
		{"neutral readability adds nothing", 0.7, 50, 70},
		{"hard text costs points", 0.7, 45, 68},
		{"penalty capped at ten", 0.7, -300, 60},
		{"bonus capped at ten", 0.6, 500, 70},
		{"threshold is inclusive", 0.5, 75, 60},
		{"just under threshold", 0.4999, 100, 50},
		{"zero prob", 0, 100, 0},
		{"certain and hard", 1, 0, 90},
		{"certain and easy", 1, 100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Blend(tt.prob, tt.ease))
		})
	}
}

func TestBlendRoundsHalfToEven(t *testing.T) {
	// 0.625*100 = 62.5 exactly, +0 bonus
	assert.Equal(t, 62, Blend(0.625, 50))
	// 0.5*100 + (51.25-50)*0.4 = 50.5
	assert.Equal(t, 50, Blend(0.5, 51.25))
	// 0.5*100 + (53.75-50)*0.4 = 51.5
	assert.Equal(t, 52, Blend(0.5, 53.75))
}

func TestBlendBoundaryRoundThenClamp(t *testing.T) {
	// 0.95*100 + 9.8 = 104.8 rounds to 105 before clamping to 100
	assert.Equal(t, 100, Blend(0.95, 74.5))
	// 0.995*100 + 0.4 = 99.9 rounds up to 100 without exceeding it
	assert.Equal(t, 100, Blend(0.995, 51))
	// 0.5*100 - 10 = 40, never negative
	assert.Equal(t, 40, Blend(0.5, -1e9))
}

func TestBlendAlwaysInRange(t *testing.T) {
	eases := []float64{math.Inf(-1), -1e6, -50, 0, 49.99, 50, 50.01, 100, 1e6, math.Inf(1), math.NaN()}
	for p := 0.0; p <= 1.0; p += 0.01 {
		for _, e := range eases {
			got := Blend(p, e)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		}
	}
}

func TestBlendReadabilityHasNoEffectBelowThreshold(t *testing.T) {
	for p := 0.0; p < Threshold; p += 0.013 {
		want := Blend(p, 50)
		for _, e := range []float64{-1000, 0, 30, 70, 206.835, 1000} {
			assert.Equal(t, want, Blend(p, e), "p=%v ease=%v", p, e)
		}
	}
}

func TestBlendBonusBoundedAboveThreshold(t *testing.T) {
	for p := Threshold; p <= 1.0; p += 0.007 {
		base := int(math.RoundToEven(p * 100))
		for _, e := range []float64{-1000, 0, 25, 50, 75, 100, 1000} {
			diff := Blend(p, e) - base
			assert.LessOrEqual(t, diff, 10, "p=%v ease=%v", p, e)
			assert.GreaterOrEqual(t, diff, -10, "p=%v ease=%v", p, e)
		}
	}
}

func TestBonus(t *testing.T) {
	assert.Equal(t, 0.0, Bonus(50))
	assert.Equal(t, MaxBonus, Bonus(80))
	assert.Equal(t, -MaxBonus, Bonus(0))
	assert.InDelta(t, 4.0, Bonus(60), 1e-9)
	assert.Equal(t, 0.0, Bonus(math.NaN()))
}
