// Package scoring provides the numeric helpers shared by the analyzers.
// Scores are integers in [0, 100]; rounding is half-to-even.
package scoring

import "math"

const (
	// MinScore is the lowest score any analyzer reports.
	MinScore = 0
	// MaxScore is the highest score any analyzer reports.
	MaxScore = 100
)

// Round rounds half to even.
func Round(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.RoundToEven(v))
}

// Round1 rounds to one decimal place, half to even.
func Round1(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.RoundToEven(v*10) / 10
}

// Clamp rounds v and bounds it to [MinScore, MaxScore].
func Clamp(v float64) int {
	return ClampInt(Round(v))
}

// ClampInt bounds v to [MinScore, MaxScore].
func ClampInt(v int) int {
	if v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}

// ClampFloat bounds v to [lo, hi].
func ClampFloat(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

// Percent returns part/whole*100, or 0 when whole is zero.
func Percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// Weighted sums score*weight over the pairs.
func Weighted(pairs ...WeightedScore) float64 {
	var total float64
	for _, p := range pairs {
		total += float64(p.Score) * p.Weight
	}
	return total
}

// WeightedScore is one term of a weighted sum.
type WeightedScore struct {
	Score  int
	Weight float64
}
