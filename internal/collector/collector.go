package collector

import (
	"context"
	"errors"
	"log"

	"BasketTrader/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	// SeriesBySymbol overrides the generated data per symbol. A present
	// entry with no candles simulates a failed fetch.
	SeriesBySymbol map[string]model.Series
	BasePrice      float64
	Err            error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchSeries(_ context.Context, symbol string, _, limit int) (model.Series, error) {
	if m.Err != nil {
		return model.Series{Symbol: symbol}, m.Err
	}
	if s, ok := m.SeriesBySymbol[symbol]; ok {
		s.Symbol = symbol
		return s, nil
	}
	return generateMockSeries(symbol, m.BasePrice, limit), nil
}

func generateMockSeries(symbol string, basePrice float64, count int) model.Series {
	candles := make([]model.Candle, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		candles[i] = model.Candle{
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return model.Series{Symbol: symbol, Candles: candles}
}

// Collector fetches the basket's market data and aggregates it into the
// cycle's composite signal.
type Collector struct {
	Fetcher  Fetcher
	Basket   []string
	Interval int // timeframe in minutes
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, basket []string, intervalMinutes int) *Collector {
	return &Collector{Fetcher: fetcher, Basket: basket, Interval: intervalMinutes}
}

// seriesFor converts any fetch failure into an empty series plus a local
// diagnostic, so transport errors never cross the collector boundary.
func (c *Collector) seriesFor(ctx context.Context, symbol string, limit int) model.Series {
	s, err := c.Fetcher.FetchSeries(ctx, symbol, c.Interval, limit)
	if err != nil {
		log.Printf("[WARN] fetch %s: %v", symbol, err)
		return model.Series{Symbol: symbol}
	}
	return s
}

// Aggregate fetches every basket contract and combines the latest close
// and volume of each into a composite. The divisor is always the full
// basket size: contracts that returned no data depress the composite
// rather than shrinking the denominator.
func (c *Collector) Aggregate(ctx context.Context, lookback int) model.CompositeSignal {
	var sumPrice, sumVolume float64
	prices := make(map[string]float64)
	for _, symbol := range c.Basket {
		s := c.seriesFor(ctx, symbol, lookback)
		if s.Empty() {
			log.Printf("[WARN] no data for contract %s", symbol)
			continue
		}
		last := s.Last()
		prices[symbol] = last.Close
		sumPrice += last.Close
		sumVolume += last.Volume
	}
	n := float64(len(c.Basket))
	return model.CompositeSignal{
		Price:  sumPrice / n,
		Volume: sumVolume / n,
		Prices: prices,
	}
}

// ErrNoReferenceData is returned when the reference contract's series
// could not be fetched.
var ErrNoReferenceData = errors.New("no data for reference contract")

// Reference returns the series used for trend evaluation: the first
// basket contract, fetched at the moving-average lookback.
func (c *Collector) Reference(ctx context.Context, lookback int) (model.Series, error) {
	s := c.seriesFor(ctx, c.Basket[0], lookback)
	if s.Empty() {
		return s, ErrNoReferenceData
	}
	return s, nil
}
