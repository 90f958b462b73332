package risk

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrZeroComposite is returned when the composite price is zero, which
// would make every weight undefined.
var ErrZeroComposite = errors.New("composite price is zero")

// Size computes a quantity per contract, weighted by each contract's
// share of the composite price:
//
//	risk_amount = capital * riskFraction
//	weight      = price / compositePrice
//	quantity    = round(risk_amount * weight / price, 3)
//
// Contracts missing from the price map (failed fetch earlier in the
// cycle) are skipped; no order will be attempted for them. Iteration
// follows the basket order so sizing is deterministic.
func Size(basket []string, prices map[string]float64, compositePrice, capital, riskFraction float64) (map[string]float64, error) {
	if compositePrice == 0 {
		return nil, ErrZeroComposite
	}
	riskAmount := capital * riskFraction
	quantities := make(map[string]float64, len(prices))
	for _, symbol := range basket {
		price, ok := prices[symbol]
		if !ok || price == 0 {
			continue
		}
		weight := price / compositePrice
		qty := decimal.NewFromFloat(riskAmount * weight / price).Round(3)
		quantities[symbol], _ = qty.Float64()
	}
	return quantities, nil
}
