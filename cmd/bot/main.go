package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"BasketTrader/internal/collector"
	"BasketTrader/internal/config"
	"BasketTrader/internal/engine"
	"BasketTrader/internal/executor"
	"BasketTrader/internal/ledger"
	"BasketTrader/internal/notifier"
	"BasketTrader/internal/scheduler"
	"BasketTrader/internal/strategy"
	"BasketTrader/internal/venue"
)

var cfgPath string

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	rootCmd := &cobra.Command{
		Use:   "bot",
		Short: "Periodic multi-asset momentum trading bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBot()
		},
	}
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigPath(), "path to config file")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Print trade statistics from the ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, _ := cmd.Flags().GetString("report")
			return runStats(report)
		},
	}
	statsCmd.Flags().String("report", "totals", "report to print: daily, contracts or totals")
	rootCmd.AddCommand(statsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func defaultConfigPath() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "configs/config.yaml"
}

func runBot() error {
	log.Println("[INFO] BasketTrader starting...")

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	// Market data fetcher and basket collector
	fetcher := collector.NewBybitFetcher(cfg.Bybit.BaseURL, cfg.Proxy)
	log.Printf("[INFO] data source: %s", fetcher.Name())
	col := collector.NewCollector(fetcher, cfg.Trading.Contracts, cfg.Trading.TimeframeMinutes)

	// Order venue
	bybit := venue.NewBybitClient(cfg.Bybit.BaseURL, cfg.Bybit.APIKey, cfg.Bybit.APISecret, cfg.Proxy)

	// Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.AdminID, cfg.Proxy)

	// Trade ledger
	led, err := ledger.NewSQLiteLedger(cfg.Database.SQLitePath)
	if err != nil {
		return fmt.Errorf("init ledger: %w", err)
	}
	defer led.Close()

	ex := executor.New(bybit, led, cfg.Trading.StopLossPercent, cfg.Trading.TakeProfitPercent)

	eng := engine.New(col, bybit, ex, tn, engine.Params{
		MAPeriod: cfg.Trading.MAPeriod,
		Thresholds: strategy.Thresholds{
			PriceChange: cfg.Trading.PriceChangeThreshold,
			Volume:      cfg.Trading.VolumeThreshold,
		},
		RiskFraction: cfg.Trading.RiskFraction,
	})

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, eng, led)
	if err := sched.Register(cfg.Schedule.CycleCron); err != nil {
		return fmt.Errorf("register cron tasks: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	if cfg.RunOnStart {
		log.Println("[INFO] run_on_start enabled, executing one cycle now")
		go sched.RunCycleNow()
	}

	log.Println("[INFO] BasketTrader is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] BasketTrader stopped")
	return nil
}

func runStats(report string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	led, err := ledger.NewSQLiteLedger(cfg.Database.SQLitePath)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer led.Close()

	trades, err := led.Query("", "")
	if err != nil {
		return fmt.Errorf("query ledger: %w", err)
	}

	switch report {
	case "daily":
		fmt.Println(notifier.FormatStatsByDay(ledger.GroupByDay(trades)))
	case "contracts":
		fmt.Println(notifier.FormatStatsByContract(ledger.GroupByContract(trades)))
	case "totals":
		fmt.Println(notifier.FormatTotals(ledger.Aggregate(trades)))
	default:
		return fmt.Errorf("unknown report %q (want daily, contracts or totals)", report)
	}
	return nil
}
