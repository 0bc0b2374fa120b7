// CashLens server entrypoint. Wires configuration, databases, services,
// background jobs and the HTTP server together.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/veldt-labs/cashlens/internal/config"
	"github.com/veldt-labs/cashlens/internal/database"
	"github.com/veldt-labs/cashlens/internal/jobs"
	"github.com/veldt-labs/cashlens/internal/modules/auth"
	authhandlers "github.com/veldt-labs/cashlens/internal/modules/auth/handlers"
	"github.com/veldt-labs/cashlens/internal/modules/dashboard"
	dashboardhandlers "github.com/veldt-labs/cashlens/internal/modules/dashboard/handlers"
	"github.com/veldt-labs/cashlens/internal/modules/records"
	recordshandlers "github.com/veldt-labs/cashlens/internal/modules/records/handlers"
	simulationhandlers "github.com/veldt-labs/cashlens/internal/modules/simulation/handlers"
	"github.com/veldt-labs/cashlens/internal/modules/transactions"
	transactionshandlers "github.com/veldt-labs/cashlens/internal/modules/transactions/handlers"
	"github.com/veldt-labs/cashlens/internal/scheduler"
	"github.com/veldt-labs/cashlens/internal/server"
	"github.com/veldt-labs/cashlens/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger is not configured yet
		panic("failed to load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().
		Str("data_dir", cfg.DataDir).
		Int("port", cfg.Port).
		Bool("dev_mode", cfg.DevMode).
		Msg("Starting CashLens")

	// Databases
	financeDB, err := database.New(database.Config{
		Path:    cfg.FinanceDBPath(),
		Profile: database.ProfileStandard,
		Name:    "finance",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open finance database")
	}
	defer financeDB.Close()

	cacheDB, err := database.New(database.Config{
		Path:    cfg.CacheDBPath(),
		Profile: database.ProfileCache,
		Name:    "cache",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open cache database")
	}
	defer cacheDB.Close()

	for _, db := range []*database.DB{financeDB, cacheDB} {
		if err := db.Migrate(); err != nil {
			log.Fatal().Err(err).Str("db", db.Name()).Msg("Failed to migrate database")
		}
	}

	// Repositories
	userRepo := auth.NewRepository(financeDB.Conn(), log)
	recordRepo := records.NewRepository(financeDB.Conn(), log)
	transactionRepo := transactions.NewRepository(financeDB.Conn(), log)

	// Services
	authService := auth.NewService(userRepo, cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour, log)
	recordService := records.NewService(recordRepo, log)
	transactionService := transactions.NewService(transactionRepo, log)
	dashboardCache := dashboard.NewCache(cacheDB.Conn(), dashboard.DefaultTTL, log)
	dashboardService := dashboard.NewService(recordRepo, userRepo, dashboardCache, log)

	// Background jobs
	sched := scheduler.New(log)
	if err := sched.AddJob("@daily", jobs.NewMetricsRefreshJob(recordRepo, log)); err != nil {
		log.Fatal().Err(err).Msg("Failed to register metrics refresh job")
	}
	if err := sched.AddJob("@every 5m", jobs.NewCacheSweepJob(dashboardCache, log)); err != nil {
		log.Fatal().Err(err).Msg("Failed to register cache sweep job")
	}
	sched.Start()
	defer sched.Stop()

	// HTTP server
	srv := server.New(server.Config{
		Log:                 log,
		FinanceDB:           financeDB,
		CacheDB:             cacheDB,
		Port:                cfg.Port,
		DevMode:             cfg.DevMode,
		AuthService:         authService,
		Scheduler:           sched,
		AuthHandler:         authhandlers.NewHandler(authService, log),
		RecordsHandler:      recordshandlers.NewHandler(recordService, dashboardService, log),
		TransactionsHandler: transactionshandlers.NewHandler(transactionService, log),
		DashboardHandler:    dashboardhandlers.NewHandler(dashboardService, log),
		SimulationHandler:   simulationhandlers.NewHandler(recordRepo, log),
	})

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Error().Err(err).Msg("HTTP server failed")
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}

	log.Info().Msg("CashLens stopped")
}
