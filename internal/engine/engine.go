package engine

import (
	"context"
	"fmt"
	"log"
	"sync"

	"BasketTrader/internal/collector"
	"BasketTrader/internal/executor"
	"BasketTrader/internal/model"
	"BasketTrader/internal/notifier"
	"BasketTrader/internal/risk"
	"BasketTrader/internal/strategy"
	"BasketTrader/internal/venue"
)

// State labels the phase a cycle is in. Every cycle ends back at Idle.
type State string

const (
	StateIdle       State = "IDLE"
	StateFetching   State = "FETCHING"
	StateEvaluating State = "EVALUATING"
	StateSizing     State = "SIZING"
	StateExecuting  State = "EXECUTING"
	StateRecording  State = "RECORDING"
)

// Notifier delivers operator messages. Satisfied by
// notifier.TelegramNotifier.
type Notifier interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Params are the strategy knobs for a cycle.
type Params struct {
	MAPeriod     int
	Thresholds   strategy.Thresholds
	RiskFraction float64
	SettleCoin   string
}

// Engine runs the fetch → evaluate → size → execute → record pipeline.
type Engine struct {
	Collector *collector.Collector
	Venue     venue.Venue
	Executor  *executor.Executor
	Notifier  Notifier
	Params    Params

	mu    sync.Mutex
	state State
}

// New creates an Engine in the Idle state.
func New(col *collector.Collector, v venue.Venue, ex *executor.Executor, n Notifier, p Params) *Engine {
	if p.SettleCoin == "" {
		p.SettleCoin = "USDT"
	}
	return &Engine{
		Collector: col,
		Venue:     v,
		Executor:  ex,
		Notifier:  n,
		Params:    p,
		state:     StateIdle,
	}
}

// State returns the current cycle phase. Safe to call from outside the
// cycle goroutine.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Engine) setState(s State) {
	e.mu.Lock()
	e.state = s
	e.mu.Unlock()
	log.Printf("[INFO] cycle state: %s", s)
}

// RunCycle executes one full trading cycle. Every failure is contained:
// per-contract errors skip only that contract, and anything unclassified
// is recovered at the top so the scheduler keeps ticking.
func (e *Engine) RunCycle(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ERROR] cycle panic: %v", r)
			e.notifyf(ctx, "*An error occurred: %v*", r)
		}
		e.setState(StateIdle)
	}()

	e.setState(StateFetching)
	agg := e.Collector.Aggregate(ctx, e.Params.MAPeriod)
	if agg.Price == 0 {
		log.Println("[WARN] composite price is zero, no usable signal")
		e.notifyf(ctx, "*An error occurred: no usable market data this cycle*")
		return
	}

	ref, err := e.Collector.Reference(ctx, e.Params.MAPeriod)
	if err != nil {
		log.Printf("[WARN] reference series: %v", err)
		e.notifyf(ctx, "*An error occurred: %v*", err)
		return
	}

	e.setState(StateEvaluating)
	decision := strategy.Evaluate(ref, e.Params.MAPeriod, agg.Price, e.Params.Thresholds)
	switch decision.Outcome {
	case model.OutcomeInsufficientData:
		log.Printf("[WARN] insufficient history for %s (period %d)", ref.Symbol, e.Params.MAPeriod)
		e.notifyf(ctx, "Not enough history to evaluate a signal.")
		return
	case model.OutcomeNone:
		e.notifyf(ctx, "Entry conditions not met.")
		return
	}

	e.notifyf(ctx, "*Entry conditions for %s position met!*", decision.Side)

	balance, err := e.Venue.AvailableBalance(ctx, e.Params.SettleCoin)
	if err != nil {
		log.Printf("[ERROR] wallet balance: %v", err)
		e.notifyf(ctx, "*An error occurred: %v*", err)
		return
	}

	e.setState(StateSizing)
	quantities, err := risk.Size(e.Collector.Basket, agg.Prices, agg.Price, balance, e.Params.RiskFraction)
	if err != nil {
		log.Printf("[ERROR] sizing: %v", err)
		e.notifyf(ctx, "*An error occurred: %v*", err)
		return
	}

	e.setState(StateExecuting)
	for _, symbol := range e.Collector.Basket {
		qty, ok := quantities[symbol]
		if !ok {
			// Fetch failed earlier; no order for this contract.
			continue
		}
		rec, err := e.Executor.Execute(ctx, symbol, decision.Side, qty, agg.Prices[symbol], decision.RefVolume)
		if err != nil {
			log.Printf("[ERROR] execute %s: %v", symbol, err)
			e.notifyf(ctx, "*Order failed: %v*", err)
			continue
		}
		e.setState(StateRecording)
		e.notifyf(ctx, "%s", notifier.FormatOrder(rec))
		e.setState(StateExecuting)
	}
}

func (e *Engine) notifyf(ctx context.Context, format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	if err := e.Notifier.SendWithRetry(ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
