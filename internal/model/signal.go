package model

// Side is the direction of a position.
type Side string

const (
	Buy  Side = "Buy"
	Sell Side = "Sell"
)

// Outcome classifies the result of a signal evaluation.
type Outcome string

const (
	// OutcomeConfirmed means both the price-change and volume-change
	// thresholds were cleared and Side is set.
	OutcomeConfirmed Outcome = "CONFIRMED"
	// OutcomeNone means the entry conditions were evaluated but not met.
	OutcomeNone Outcome = "NONE"
	// OutcomeInsufficientData means the reference series was too short to
	// evaluate (fewer candles than the MA period, or fewer than 2 for the
	// volume ratio).
	OutcomeInsufficientData Outcome = "INSUFFICIENT_DATA"
)

// CompositeSignal is the basket-wide aggregate for one cycle. It is
// recomputed every cycle and never persisted.
type CompositeSignal struct {
	// Price is the mean of the latest closes, divided by the full basket
	// size even when some contracts returned no data.
	Price float64
	// Volume is the mean of the latest volumes, same divisor rule.
	Volume float64
	// Prices maps contract -> latest close, only for contracts that
	// actually returned data.
	Prices map[string]float64
}

// TrendDecision is the output of the signal evaluator.
type TrendDecision struct {
	Outcome        Outcome
	Side           Side // set only when Outcome is CONFIRMED
	MovingAverage  float64
	PriceChangePct float64
	VolumeRatio    float64
	// RefVolume is the reference contract's latest volume, snapshotted
	// into every trade record written this cycle.
	RefVolume float64
}
