package ledger

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"

	"BasketTrader/internal/model"
)

func trade(date, contract string, pl *float64) model.TradeRecord {
	rec := model.TradeRecord{Date: date, Contract: contract, Side: model.Buy, Quantity: 1}
	if pl != nil {
		rec.ProfitLoss = sql.NullFloat64{Float64: *pl, Valid: true}
	}
	return rec
}

func ptr(v float64) *float64 { return &v }

func TestGroupByDay(t *testing.T) {
	trades := []model.TradeRecord{
		trade("2026-09-01 10:00:00", "AUSDT", nil),
		trade("2026-09-02 10:00:00", "BUSDT", nil),
		trade("2026-09-01 16:00:00", "BUSDT", nil),
	}

	groups := GroupByDay(trades)
	assert.Len(t, groups, 2)
	assert.Equal(t, "2026-09-01", groups[0].Key)
	assert.Len(t, groups[0].Trades, 2)
	assert.Equal(t, "2026-09-02", groups[1].Key)
	assert.Len(t, groups[1].Trades, 1)
}

func TestGroupByContract(t *testing.T) {
	trades := []model.TradeRecord{
		trade("2026-09-01 10:00:00", "BUSDT", nil),
		trade("2026-09-01 11:00:00", "AUSDT", nil),
		trade("2026-09-02 10:00:00", "BUSDT", nil),
	}

	groups := GroupByContract(trades)
	assert.Len(t, groups, 2)
	assert.Equal(t, "AUSDT", groups[0].Key)
	assert.Equal(t, "BUSDT", groups[1].Key)
	assert.Len(t, groups[1].Trades, 2)
}

func TestAggregateTreatsNullAsZero(t *testing.T) {
	trades := []model.TradeRecord{
		trade("2026-09-01 10:00:00", "AUSDT", ptr(12.5)),
		trade("2026-09-01 11:00:00", "BUSDT", nil),
		trade("2026-09-02 10:00:00", "CUSDT", ptr(-4.5)),
	}

	tot := Aggregate(trades)
	assert.Equal(t, 3, tot.TradeCount)
	assert.InDelta(t, 8.0, tot.ProfitLoss, 1e-9)
}

func TestAggregateEmpty(t *testing.T) {
	tot := Aggregate(nil)
	assert.Zero(t, tot.TradeCount)
	assert.Zero(t, tot.ProfitLoss)
}
