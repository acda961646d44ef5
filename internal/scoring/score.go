
package scoring

import "math"

const (
	// Threshold is the model probability at which content counts as high quality.
	Threshold = 0.5

	// MaxBonus bounds how far readability can move a high-quality score.
	MaxBonus = 10.0

	neutralReadingEase = 50.0
	bonusPerPoint      = 0.4
)

// Blend turns model confidence and Flesch reading ease into a 0-100 score.
//
// Readability only adjusts the score when the model already leans high
// quality; below Threshold the score is the model probability alone.
func Blend(probQuality, readingEase float64) int {
	score := probQuality * 100
	if probQuality >= Threshold {
		score += Bonus(readingEase)
	}
	// round, then clamp: base 95 with a +10 bonus saturates at 100
	return int(clamp(math.RoundToEven(score), 0, 100))
}

// Bonus is the readability adjustment applied above Threshold.
func Bonus(readingEase float64) float64 {
	if math.IsNaN(readingEase) {
		return 0
	}
	return clamp((readingEase-neutralReadingEase)*bonusPerPoint, -MaxBonus, MaxBonus)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
