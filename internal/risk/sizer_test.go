package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSizeWeightProportional(t *testing.T) {
	// composite = 500, instrument priced 150 → weight 0.3;
	// capital 10000 at 10% risk → risk amount 1000;
	// qty = round(1000 * 0.3 / 150, 3) = 2.0
	basket := []string{"AUSDT"}
	prices := map[string]float64{"AUSDT": 150}

	qty, err := Size(basket, prices, 500, 10000, 0.1)
	assert.NoError(t, err)
	assert.InDelta(t, 2.0, qty["AUSDT"], 1e-9)
}

func TestSizeNotionalMatchesRiskShare(t *testing.T) {
	// quantity * price must equal risk_amount * weight (within the 3-dp
	// rounding of quantity) for every contract.
	basket := []string{"AUSDT", "BUSDT", "CUSDT"}
	prices := map[string]float64{"AUSDT": 100, "BUSDT": 200, "CUSDT": 50}
	composite := (100.0 + 200.0 + 50.0) / 3

	capital, riskFraction := 5000.0, 0.2
	riskAmount := capital * riskFraction

	quantities, err := Size(basket, prices, composite, capital, riskFraction)
	assert.NoError(t, err)
	assert.Len(t, quantities, 3)

	for symbol, price := range prices {
		weight := price / composite
		notional := quantities[symbol] * price
		// Rounding qty to 3 decimals perturbs the notional by at most
		// price * 0.0005.
		assert.InDelta(t, riskAmount*weight, notional, price*0.0005+1e-9, symbol)
	}
}

func TestSizeSkipsMissingContracts(t *testing.T) {
	basket := []string{"AUSDT", "BUSDT"}
	prices := map[string]float64{"AUSDT": 100}

	quantities, err := Size(basket, prices, 100, 1000, 0.1)
	assert.NoError(t, err)
	assert.Len(t, quantities, 1)
	_, ok := quantities["BUSDT"]
	assert.False(t, ok)
}

func TestSizeZeroComposite(t *testing.T) {
	_, err := Size([]string{"AUSDT"}, map[string]float64{"AUSDT": 100}, 0, 1000, 0.1)
	assert.ErrorIs(t, err, ErrZeroComposite)
}

func TestSizeRoundsToThreeDecimals(t *testing.T) {
	// risk 100, weight 1/3 → qty = 100 * (1/3) / 100 = 0.333...
	quantities, err := Size([]string{"AUSDT"}, map[string]float64{"AUSDT": 100}, 300, 1000, 0.1)
	assert.NoError(t, err)
	assert.InDelta(t, 0.333, quantities["AUSDT"], 1e-9)
}
