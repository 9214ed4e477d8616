package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierForScore(t *testing.T) {
	tests := []struct {
		score int
		want  CandidateTier
	}{
		{100, TierExcellent},
		{90, TierExcellent},
		{89, TierStrong},
		{80, TierStrong},
		{79, TierGood},
		{70, TierGood},
		{69, TierPotential},
		{60, TierPotential},
		{59, TierLimited},
		{40, TierLimited},
		{39, TierPoor},
		{0, TierPoor},
		{-5, TierPoor},
		{150, TierPoor},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TierForScore(tt.score), "score %d", tt.score)
	}
}

func TestTierRanges_ExactlyOneTierPerScore(t *testing.T) {
	for score := 0; score <= 100; score++ {
		hits := 0
		for _, r := range TierRanges {
			if score >= r.Min && score <= r.Max {
				hits++
			}
		}
		assert.Equal(t, 1, hits, "score %d", score)
	}
}
