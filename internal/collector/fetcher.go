package collector

import (
	"context"

	"BasketTrader/internal/model"
)

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	// FetchSeries returns up to `limit` candles for the symbol at the
	// given interval, ordered oldest to newest.
	FetchSeries(ctx context.Context, symbol string, intervalMinutes, limit int) (model.Series, error)
	Name() string
}
