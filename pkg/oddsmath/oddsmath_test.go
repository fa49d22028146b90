package oddsmath_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/agent-sportsbook-poc/pkg/oddsmath"
)

func TestImpliedProbability(t *testing.T) {
	tests := []struct {
		name     string
		american int
		want     float64
	}{
		{"even money +100", 100, 0.50},
		{"underdog +130", 130, 0.4348},
		{"underdog +300", 300, 0.25},
		{"favorite -110", -110, 0.5238},
		{"favorite -150", -150, 0.60},
		{"favorite -200", -200, 0.6667},
		{"zero treated as favorite branch", 0, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := oddsmath.ImpliedProbability(tt.american)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func TestProfit(t *testing.T) {
	tests := []struct {
		name     string
		stake    float64
		american int
		want     float64
	}{
		{"positive odds", 5, 170, 8.5},
		{"positive odds even", 10, 100, 10},
		{"negative odds", 10, -150, 10.0 * 100.0 / 150.0},
		{"negative odds heavy favorite", 100, -200, 50},
		{"zero stake", 0, 130, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := oddsmath.Profit(tt.stake, tt.american)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.0001)
		})
	}
}

func TestProfitZeroOdds(t *testing.T) {
	_, err := oddsmath.Profit(10, 0)
	require.ErrorIs(t, err, oddsmath.ErrZeroOdds)

	_, err = oddsmath.Payout(10, 0)
	require.ErrorIs(t, err, oddsmath.ErrZeroOdds)
}

// Exemplo ponta a ponta do fluxo de payout: stake 10 em odd -150 paga 16.67.
func TestPayoutGiantsExample(t *testing.T) {
	got, err := oddsmath.Payout(10, -150)
	require.NoError(t, err)
	assert.InDelta(t, 16.67, got, 0.01)
}

// Payout nunca fica abaixo do stake para odds válidas (lucro não negativo).
func TestPayoutNeverBelowStake(t *testing.T) {
	odds := []int{-10000, -200, -150, -110, -100, 100, 110, 150, 200, 10000}
	stakes := []float64{0, 0.5, 1, 10, 250}
	for _, o := range odds {
		for _, s := range stakes {
			got, err := oddsmath.Payout(s, o)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, got, s, "odds %d stake %f", o, s)
		}
	}
}

func TestFormatAmerican(t *testing.T) {
	assert.Equal(t, "+130", oddsmath.FormatAmerican(130))
	assert.Equal(t, "-150", oddsmath.FormatAmerican(-150))
	assert.Equal(t, "0", oddsmath.FormatAmerican(0))
}

// Sanidade: probabilidades implícitas de um par de odds reais somam mais que 1
// (vig) e a normalização devolve um valor em (0,1).
func TestImpliedProbabilityPairNormalization(t *testing.T) {
	home := oddsmath.ImpliedProbability(-150)
	away := oddsmath.ImpliedProbability(130)
	total := home + away
	assert.Greater(t, total, 1.0)

	norm := home / total
	assert.Greater(t, norm, 0.0)
	assert.Less(t, norm, 1.0)
	assert.False(t, math.IsNaN(norm))
}
