package model

import "database/sql"

// TradeRecord is one row of the append-only trade ledger. ExitPrice and
// ProfitLoss are schema placeholders for closing logic that does not exist
// yet; nothing in the engine writes them.
type TradeRecord struct {
	ID         int64
	Date       string // "2006-01-02 15:04:05"
	Contract   string
	Side       Side
	Quantity   float64
	EntryPrice float64
	StopLoss   float64
	TakeProfit float64
	ExitPrice  sql.NullFloat64
	ProfitLoss sql.NullFloat64
	Volume     float64
}
