package ledger

import (
	"sort"

	"BasketTrader/internal/model"
)

// Group is one bucket of the by-day or by-contract reports.
type Group struct {
	Key    string
	Trades []model.TradeRecord
}

// Totals is the aggregate report over the whole ledger.
type Totals struct {
	TradeCount int
	// ProfitLoss sums realized profit/loss, treating unset values as 0.
	ProfitLoss float64
}

// GroupByDay buckets trades by the date portion of their timestamp,
// oldest day first.
func GroupByDay(trades []model.TradeRecord) []Group {
	return groupBy(trades, func(t model.TradeRecord) string {
		if len(t.Date) >= 10 {
			return t.Date[:10]
		}
		return t.Date
	})
}

// GroupByContract buckets trades by contract symbol, sorted by symbol.
func GroupByContract(trades []model.TradeRecord) []Group {
	return groupBy(trades, func(t model.TradeRecord) string { return t.Contract })
}

// Aggregate computes the overall totals report.
func Aggregate(trades []model.TradeRecord) Totals {
	tot := Totals{TradeCount: len(trades)}
	for _, t := range trades {
		if t.ProfitLoss.Valid {
			tot.ProfitLoss += t.ProfitLoss.Float64
		}
	}
	return tot
}

func groupBy(trades []model.TradeRecord, key func(model.TradeRecord) string) []Group {
	byKey := make(map[string][]model.TradeRecord)
	for _, t := range trades {
		k := key(t)
		byKey[k] = append(byKey[k], t)
	}
	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	groups := make([]Group, 0, len(keys))
	for _, k := range keys {
		groups = append(groups, Group{Key: k, Trades: byKey[k]})
	}
	return groups
}
