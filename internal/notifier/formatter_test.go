package notifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"BasketTrader/internal/ledger"
	"BasketTrader/internal/model"
)

func TestFormatOrder(t *testing.T) {
	msg := FormatOrder(model.TradeRecord{
		Contract:   "ADAUSDT",
		Side:       model.Buy,
		Quantity:   2.5,
		EntryPrice: 0.31,
		StopLoss:   0.30845,
		TakeProfit: 0.341,
	})
	assert.Contains(t, msg, "Order placed")
	assert.Contains(t, msg, "*Contract*: ADAUSDT")
	assert.Contains(t, msg, "*Side*: Buy")
	assert.Contains(t, msg, "*Quantity*: 2.5")
}

func TestFormatStatsEmpty(t *testing.T) {
	assert.Equal(t, "No trades recorded yet.", FormatStatsByDay(nil))
	assert.Equal(t, "No trades recorded yet.", FormatStatsByContract(nil))
}

func TestFormatStatsByDay(t *testing.T) {
	groups := []ledger.Group{{
		Key: "2026-09-01",
		Trades: []model.TradeRecord{
			{Contract: "AUSDT", Side: model.Buy, Quantity: 2},
		},
	}}
	out := FormatStatsByDay(groups)
	assert.Contains(t, out, "2026-09-01")
	assert.Contains(t, out, "AUSDT (Buy): 2")
}

func TestFormatTotals(t *testing.T) {
	out := FormatTotals(ledger.Totals{TradeCount: 5, ProfitLoss: -12.345})
	assert.Contains(t, out, "Total trades: 5")
	assert.Contains(t, out, "-12.35 USDT")
}
