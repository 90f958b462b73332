package notifier

import (
	"fmt"
	"strings"

	"BasketTrader/internal/ledger"
	"BasketTrader/internal/model"
)

// FormatOrder renders the order confirmation message sent after each
// successful submission.
func FormatOrder(rec model.TradeRecord) string {
	return fmt.Sprintf(
		"Order placed:\n"+
			"*Contract*: %s\n"+
			"*Side*: %s\n"+
			"*Quantity*: %g\n"+
			"*Entry price*: %g\n"+
			"*Stop-loss*: %g\n"+
			"*Take-profit*: %g",
		rec.Contract, rec.Side, rec.Quantity, rec.EntryPrice, rec.StopLoss, rec.TakeProfit)
}

// FormatStatsByDay renders the grouped-by-day report.
func FormatStatsByDay(groups []ledger.Group) string {
	if len(groups) == 0 {
		return "No trades recorded yet."
	}
	var b strings.Builder
	b.WriteString("Trades by day:\n")
	for _, g := range groups {
		fmt.Fprintf(&b, "📅 %s:\n", g.Key)
		for _, t := range g.Trades {
			fmt.Fprintf(&b, "  - %s (%s): %g\n", t.Contract, t.Side, t.Quantity)
		}
	}
	return b.String()
}

// FormatStatsByContract renders the grouped-by-contract report.
func FormatStatsByContract(groups []ledger.Group) string {
	if len(groups) == 0 {
		return "No trades recorded yet."
	}
	var b strings.Builder
	b.WriteString("Trades by contract:\n")
	for _, g := range groups {
		fmt.Fprintf(&b, "📊 %s:\n", g.Key)
		for _, t := range g.Trades {
			fmt.Fprintf(&b, "  - %s (%s): %g\n", t.Date, t.Side, t.Quantity)
		}
	}
	return b.String()
}

// FormatTotals renders the aggregate report.
func FormatTotals(tot ledger.Totals) string {
	return fmt.Sprintf(
		"Overall statistics:\n"+
			"*📈 Total trades: %d*\n"+
			"*💰 Total profit/loss: %.2f USDT*",
		tot.TradeCount, tot.ProfitLoss)
}
