package ledger

import "BasketTrader/internal/model"

// Ledger is the durable append-only record of submitted trades.
type Ledger interface {
	// Append stores one trade record and returns it with the assigned id.
	Append(rec model.TradeRecord) (model.TradeRecord, error)
	// Query returns records ordered by id ascending. When filterField is
	// non-empty it applies a single equality predicate on that column;
	// only known column names are accepted.
	Query(filterField, filterValue string) ([]model.TradeRecord, error)
	Close() error
}
