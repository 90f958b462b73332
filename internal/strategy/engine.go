package strategy

import (
	"errors"
	"math"

	"BasketTrader/internal/calculator"
	"BasketTrader/internal/model"
)

// Thresholds are the entry confirmation parameters.
type Thresholds struct {
	// PriceChange is the minimum absolute intra-candle move in percent.
	PriceChange float64
	// Volume is the minimum latest/previous volume ratio.
	Volume float64
}

// directionFromComposite picks the position side by comparing the
// basket-wide composite price against the reference contract's moving
// average. Mixing the aggregate with a single-instrument MA is a quirk
// inherited from the source behavior; keep it here, in one place, so it
// can be swapped if the strategy is ever revisited.
func directionFromComposite(compositePrice, movingAverage float64) model.Side {
	if compositePrice > movingAverage {
		return model.Buy
	}
	return model.Sell
}

// Evaluate computes the trend decision for one cycle from the reference
// series and the composite price. Insufficient history or an undefined
// volume ratio yields a non-trading outcome rather than an error: a short
// series must never abort the cycle.
func Evaluate(ref model.Series, period int, compositePrice float64, th Thresholds) model.TrendDecision {
	ma, err := calculator.SMA(ref.Closes(), period)
	if err != nil {
		return model.TrendDecision{Outcome: model.OutcomeInsufficientData}
	}

	last := ref.Last()
	priceChange, err := calculator.PriceChangePct(last.Open, last.Close)
	if err != nil {
		return model.TrendDecision{Outcome: model.OutcomeInsufficientData, MovingAverage: ma}
	}

	volumes := make([]float64, len(ref.Candles))
	for i, c := range ref.Candles {
		volumes[i] = c.Volume
	}
	volumeRatio, err := calculator.VolumeRatio(volumes)
	if err != nil {
		if errors.Is(err, calculator.ErrDivisionUndefined) {
			// Previous candle had zero volume; treat as no signal.
			return model.TrendDecision{
				Outcome:        model.OutcomeNone,
				MovingAverage:  ma,
				PriceChangePct: priceChange,
				RefVolume:      last.Volume,
			}
		}
		return model.TrendDecision{Outcome: model.OutcomeInsufficientData, MovingAverage: ma}
	}

	decision := model.TrendDecision{
		Outcome:        model.OutcomeNone,
		MovingAverage:  ma,
		PriceChangePct: priceChange,
		VolumeRatio:    volumeRatio,
		RefVolume:      last.Volume,
	}
	if math.Abs(priceChange) > th.PriceChange && volumeRatio > th.Volume {
		decision.Outcome = model.OutcomeConfirmed
		decision.Side = directionFromComposite(compositePrice, ma)
	}
	return decision
}
