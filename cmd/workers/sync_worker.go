package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"tradelink/trade-portal/trade-portal-backend/internal/config"
	"tradelink/trade-portal/trade-portal-backend/internal/trades"
)

// SyncWorker reconciles the local trade cache against the remote record
// service on a schedule. The remote copy wins except where a local edit
// is strictly newer, so a cache that drifted while the portal was down
// converges without losing unsynced changes.
type SyncWorker struct {
	repo   trades.Repository
	remote trades.RemoteStore
	logger *zap.Logger
}

// NewSyncWorker creates a new sync worker
func NewSyncWorker(repo trades.Repository, remote trades.RemoteStore, logger *zap.Logger) *SyncWorker {
	return &SyncWorker{repo: repo, remote: remote, logger: logger}
}

// Run performs one reconciliation pass.
func (w *SyncWorker) Run(ctx context.Context) {
	startTime := time.Now()

	remote, err := w.remote.FetchTrades(ctx)
	if err != nil {
		w.logger.Error("Failed to fetch remote trades", zap.Error(err))
		return
	}

	local, err := w.repo.ListTrades(ctx)
	if err != nil {
		w.logger.Error("Failed to list cached trades", zap.Error(err))
		return
	}

	merged := trades.MergeTrades(remote, local, trades.SeedTrades())

	var saved, failed int
	for i := range merged {
		if err := w.repo.SaveTrade(ctx, &merged[i]); err != nil {
			w.logger.Error("Failed to cache trade",
				zap.String("trade_id", merged[i].ID),
				zap.Error(err))
			failed++
			continue
		}
		saved++
	}

	w.logger.Info("Trade cache reconciled",
		zap.Int("remote", len(remote)),
		zap.Int("local", len(local)),
		zap.Int("saved", saved),
		zap.Int("failed", failed),
		zap.Duration("duration", time.Since(startTime)))
}

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Connect to database
	db, err := sqlx.Connect("postgres", cfg.Database.GetDatabaseURL())
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}
	logger.Info("Connected to database")

	repo := trades.NewRepository(db)
	remote := trades.NewRemoteStore(cfg.RemoteStore.BaseURL, cfg.RemoteStore.APIKey, cfg.RemoteStore.Timeout)
	worker := NewSyncWorker(repo, remote, logger)

	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Sync.Schedule, func() { worker.Run(ctx) }); err != nil {
		logger.Fatal("Invalid sync schedule", zap.String("schedule", cfg.Sync.Schedule), zap.Error(err))
	}

	// First pass immediately, then on the schedule.
	worker.Run(ctx)
	scheduler.Start()
	logger.Info("Sync worker started", zap.String("schedule", cfg.Sync.Schedule))

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	logger.Info("Shutdown signal received")

	cancel()
	<-scheduler.Stop().Done()
	logger.Info("Sync worker stopped")
}
