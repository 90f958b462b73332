package executor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"BasketTrader/internal/model"
	"BasketTrader/internal/venue"
)

type fakeVenue struct {
	requests []venue.OrderRequest
	err      error
}

func (f *fakeVenue) PlaceMarketOrder(_ context.Context, req venue.OrderRequest) (venue.OrderConfirmation, error) {
	if f.err != nil {
		return venue.OrderConfirmation{}, f.err
	}
	f.requests = append(f.requests, req)
	return venue.OrderConfirmation{OrderID: "1", OrderLinkID: req.OrderLinkID}, nil
}

func (f *fakeVenue) AvailableBalance(context.Context, string) (float64, error) { return 0, nil }

type fakeLedger struct {
	records []model.TradeRecord
	err     error
}

func (f *fakeLedger) Append(rec model.TradeRecord) (model.TradeRecord, error) {
	if f.err != nil {
		return rec, f.err
	}
	rec.ID = int64(len(f.records) + 1)
	f.records = append(f.records, rec)
	return rec, nil
}

func (f *fakeLedger) Query(string, string) ([]model.TradeRecord, error) { return f.records, nil }
func (f *fakeLedger) Close() error                                      { return nil }

func TestProtectiveLevels(t *testing.T) {
	sl, tp := ProtectiveLevels(model.Buy, 100, 0.5, 10)
	assert.InDelta(t, 99.5, sl, 1e-9)
	assert.InDelta(t, 110, tp, 1e-9)

	sl, tp = ProtectiveLevels(model.Sell, 100, 0.5, 10)
	assert.InDelta(t, 100.5, sl, 1e-9)
	assert.InDelta(t, 90, tp, 1e-9)
}

func TestExecuteSuccess(t *testing.T) {
	v := &fakeVenue{}
	l := &fakeLedger{}
	ex := New(v, l, 0.5, 10)
	ex.now = func() time.Time { return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC) }

	rec, err := ex.Execute(context.Background(), "AUSDT", model.Buy, 2.0, 150, 1234.5)
	assert.NoError(t, err)

	// The venue saw the protective levels the ledger recorded.
	assert.Len(t, v.requests, 1)
	req := v.requests[0]
	assert.Equal(t, "AUSDT", req.Symbol)
	assert.Equal(t, model.Buy, req.Side)
	assert.InDelta(t, 2.0, req.Qty, 1e-9)
	assert.InDelta(t, 149.25, req.StopLoss, 1e-9)
	assert.InDelta(t, 165, req.TakeProfit, 1e-9)
	assert.NotEmpty(t, req.OrderLinkID)

	assert.Len(t, l.records, 1)
	assert.Equal(t, int64(1), rec.ID)
	assert.Equal(t, "2026-09-01 12:00:00", rec.Date)
	assert.InDelta(t, 1234.5, rec.Volume, 1e-9)
	assert.False(t, rec.ExitPrice.Valid)
	assert.False(t, rec.ProfitLoss.Valid)
}

func TestExecuteVenueRejectionWritesNothing(t *testing.T) {
	v := &fakeVenue{err: errors.New("insufficient margin")}
	l := &fakeLedger{}
	ex := New(v, l, 0.5, 10)

	_, err := ex.Execute(context.Background(), "AUSDT", model.Sell, 1.0, 150, 10)
	assert.ErrorContains(t, err, "insufficient margin")
	assert.Empty(t, l.records)
}

func TestExecuteLedgerFailureSurfaces(t *testing.T) {
	v := &fakeVenue{}
	l := &fakeLedger{err: errors.New("disk full")}
	ex := New(v, l, 0.5, 10)

	_, err := ex.Execute(context.Background(), "AUSDT", model.Buy, 1.0, 150, 10)
	assert.ErrorContains(t, err, "record trade")
}
