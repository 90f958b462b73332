package venue

import (
	"context"

	"BasketTrader/internal/model"
)

// OrderRequest describes a market order with protective levels attached.
type OrderRequest struct {
	Symbol      string
	Side        model.Side
	Qty         float64
	StopLoss    float64
	TakeProfit  float64
	OrderLinkID string
}

// OrderConfirmation is the venue's acknowledgement of a placed order.
type OrderConfirmation struct {
	OrderID     string
	OrderLinkID string
}

// Venue is the order-execution boundary.
type Venue interface {
	// PlaceMarketOrder submits a market order. Any rejection or transport
	// failure is returned as an error; callers isolate it per contract.
	PlaceMarketOrder(ctx context.Context, req OrderRequest) (OrderConfirmation, error)
	// AvailableBalance returns the free balance of the given coin.
	AvailableBalance(ctx context.Context, coin string) (float64, error)
}
