package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"BasketTrader/internal/engine"
	"BasketTrader/internal/ledger"
	"BasketTrader/internal/notifier"
)

// Scheduler triggers trading cycles on a fixed cadence and serves operator
// commands. Cycles never overlap: every trigger — a cron tick or a manual
// RunCycleNow — passes through the same try-lock, and a trigger that fires
// while a cycle is still running is skipped, not queued, so the engine
// never acts on candles that were fetched for a previous tick.
type Scheduler struct {
	Cron   *cron.Cron
	Engine *engine.Engine
	Ledger ledger.Ledger
	Ctx    context.Context

	cycleMu sync.Mutex
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, eng *engine.Engine, led ledger.Ledger) *Scheduler {
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
		),
		Engine: eng,
		Ledger: led,
		Ctx:    ctx,
	}
}

// Register adds the trading cycle under the given cron spec.
func (s *Scheduler) Register(cycleCron string) error {
	if _, err := s.Cron.AddFunc(cycleCron, s.runCycle); err != nil {
		return fmt.Errorf("register cycle task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunCycleNow executes one cycle immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunCycleNow() {
	s.runCycle()
}

func (s *Scheduler) runCycle() {
	if !s.cycleMu.TryLock() {
		log.Println("[INFO] cycle still running, skipping trigger")
		return
	}
	defer s.cycleMu.Unlock()

	log.Println("[INFO] running trading cycle")
	s.Engine.RunCycle(s.Ctx)
}

// HandleCommand processes an operator command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/start":
		return "Hi! I am a trading bot. Commands:\n• /daily — trades by day\n• /contracts — trades by contract\n• /totals — overall statistics"
	case "/daily":
		trades, err := s.Ledger.Query("", "")
		if err != nil {
			return fmt.Sprintf("Failed to read the ledger: %v", err)
		}
		return notifier.FormatStatsByDay(ledger.GroupByDay(trades))
	case "/contracts":
		trades, err := s.Ledger.Query("", "")
		if err != nil {
			return fmt.Sprintf("Failed to read the ledger: %v", err)
		}
		return notifier.FormatStatsByContract(ledger.GroupByContract(trades))
	case "/totals":
		trades, err := s.Ledger.Query("", "")
		if err != nil {
			return fmt.Sprintf("Failed to read the ledger: %v", err)
		}
		return notifier.FormatTotals(ledger.Aggregate(trades))
	default:
		return "Available commands:\n• /daily\n• /contracts\n• /totals"
	}
}
