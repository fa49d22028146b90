// Package oddsmath concentra a aritmética de odds moneyline americanas:
// probabilidade implícita, lucro e payout de uma aposta.
package oddsmath

import (
	"errors"
	"fmt"
	"math"
)

// ErrZeroOdds indica odd zero, que não existe no formato americano e levaria a
// divisão por zero no ramo de favorito.
var ErrZeroOdds = errors.New("oddsmath: zero is not a valid american odds value")

// ImpliedProbability converte uma odd americana em probabilidade de vitória.
// Odd positiva (azarão): 100 / (odd + 100). Odd negativa ou zero (ramo de
// favorito): |odd| / (|odd| + 100). Total sobre o domínio — nunca falha.
func ImpliedProbability(american int) float64 {
	if american > 0 {
		return 100.0 / (float64(american) + 100.0)
	}
	abs := math.Abs(float64(american))
	return abs / (abs + 100.0)
}

// Profit calcula o lucro de uma aposta (sem incluir o stake).
// Odd positiva: stake * odd / 100. Odd negativa: stake * 100 / |odd|.
func Profit(stake float64, american int) (float64, error) {
	if american == 0 {
		return 0, ErrZeroOdds
	}
	if american > 0 {
		return stake * float64(american) / 100.0, nil
	}
	return stake * 100.0 / math.Abs(float64(american)), nil
}

// Payout retorna stake + lucro para a odd tomada.
func Payout(stake float64, american int) (float64, error) {
	profit, err := Profit(stake, american)
	if err != nil {
		return 0, err
	}
	return stake + profit, nil
}

// FormatAmerican formata a odd para exibição: "+130", "-150".
func FormatAmerican(american int) string {
	if american > 0 {
		return fmt.Sprintf("+%d", american)
	}
	return fmt.Sprintf("%d", american)
}
