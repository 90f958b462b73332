package calculator

import "errors"

// ErrInsufficientData is returned when a series is too short for the
// requested calculation.
var ErrInsufficientData = errors.New("not enough data")

// ErrDivisionUndefined is returned when a ratio has a zero or missing
// denominator.
var ErrDivisionUndefined = errors.New("division undefined")

// SMA computes the simple moving average of the last `period` prices.
func SMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, ErrInsufficientData
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// PriceChangePct returns the intra-candle move of the latest candle as a
// percentage of its open: (close - open) / open * 100.
func PriceChangePct(open, close float64) (float64, error) {
	if open == 0 {
		return 0, ErrDivisionUndefined
	}
	return (close - open) / open * 100, nil
}

// VolumeRatio returns latest volume divided by the previous candle's
// volume. Fails when fewer than two volumes exist or the previous volume
// is zero.
func VolumeRatio(volumes []float64) (float64, error) {
	if len(volumes) < 2 {
		return 0, ErrInsufficientData
	}
	prev := volumes[len(volumes)-2]
	if prev == 0 {
		return 0, ErrDivisionUndefined
	}
	return volumes[len(volumes)-1] / prev, nil
}
