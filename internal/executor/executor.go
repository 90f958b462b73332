package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"BasketTrader/internal/ledger"
	"BasketTrader/internal/model"
	"BasketTrader/internal/venue"
)

// ProtectiveLevels computes the stop-loss and take-profit prices for an
// entry. Percentages are expressed as whole percents (0.5 means 0.5%).
func ProtectiveLevels(side model.Side, entryPrice, stopLossPct, takeProfitPct float64) (stopLoss, takeProfit float64) {
	if side == model.Buy {
		return entryPrice * (1 - stopLossPct/100), entryPrice * (1 + takeProfitPct/100)
	}
	return entryPrice * (1 + stopLossPct/100), entryPrice * (1 - takeProfitPct/100)
}

// Executor submits protected market orders and records each fill intent
// in the ledger.
type Executor struct {
	Venue         venue.Venue
	Ledger        ledger.Ledger
	StopLossPct   float64
	TakeProfitPct float64

	// now is overridable in tests so record timestamps are stable.
	now func() time.Time
}

// New creates an Executor.
func New(v venue.Venue, l ledger.Ledger, stopLossPct, takeProfitPct float64) *Executor {
	return &Executor{
		Venue:         v,
		Ledger:        l,
		StopLossPct:   stopLossPct,
		TakeProfitPct: takeProfitPct,
		now:           time.Now,
	}
}

// Execute places one market order with attached stop-loss/take-profit and,
// on venue acceptance, appends the trade to the ledger. A venue rejection
// returns an error and writes nothing; the caller decides whether to keep
// processing other contracts. volumeSnapshot is the reference contract's
// latest volume at decision time.
func (e *Executor) Execute(ctx context.Context, symbol string, side model.Side, qty, entryPrice, volumeSnapshot float64) (model.TradeRecord, error) {
	stopLoss, takeProfit := ProtectiveLevels(side, entryPrice, e.StopLossPct, e.TakeProfitPct)

	_, err := e.Venue.PlaceMarketOrder(ctx, venue.OrderRequest{
		Symbol:      symbol,
		Side:        side,
		Qty:         qty,
		StopLoss:    stopLoss,
		TakeProfit:  takeProfit,
		OrderLinkID: ulid.Make().String(),
	})
	if err != nil {
		return model.TradeRecord{}, fmt.Errorf("submit order %s: %w", symbol, err)
	}

	rec := model.TradeRecord{
		Date:       e.now().Format("2006-01-02 15:04:05"),
		Contract:   symbol,
		Side:       side,
		Quantity:   qty,
		EntryPrice: entryPrice,
		StopLoss:   stopLoss,
		TakeProfit: takeProfit,
		// ExitPrice and ProfitLoss stay NULL until closing logic exists.
		Volume: volumeSnapshot,
	}
	saved, err := e.Ledger.Append(rec)
	if err != nil {
		return rec, fmt.Errorf("record trade %s: %w", symbol, err)
	}
	return saved, nil
}
