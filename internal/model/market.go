package model

import "time"

// Candle represents a single OHLCV bar.
type Candle struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Series holds ordered candles (oldest first) for one contract.
// An empty series means the fetch failed or returned no usable data.
type Series struct {
	Symbol  string
	Candles []Candle
}

// Empty reports whether the series carries no candles.
func (s Series) Empty() bool { return len(s.Candles) == 0 }

// Last returns the most recent candle. Callers must check Empty first.
func (s Series) Last() Candle { return s.Candles[len(s.Candles)-1] }

// Closes extracts the close prices in chronological order.
func (s Series) Closes() []float64 {
	closes := make([]float64, len(s.Candles))
	for i, c := range s.Candles {
		closes[i] = c.Close
	}
	return closes
}
