package main

import (
	"context"
	"time"

	"github.com/jpillora/overseer"
	"github.com/jpillora/overseer/fetcher"
	"github.com/shopspring/decimal"

	"github.com/rahulgarg55/casino-games-backend/internal/app"
	"github.com/rahulgarg55/casino-games-backend/internal/config"
	"github.com/rahulgarg55/casino-games-backend/internal/infrastructure/cache"
	"github.com/rahulgarg55/casino-games-backend/internal/infrastructure/db"
	"github.com/rahulgarg55/casino-games-backend/pkg/graceful"
	"github.com/rahulgarg55/casino-games-backend/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	debug := config.GetAppEnv() == "development"

	overseer.Run(overseer.Config{
		Program:       program,
		Address:       ":" + config.GetAppPort(),
		Fetcher:       &fetcher.File{Path: config.GetAppBinFile(), Interval: 5},
		Debug:         debug,
		RestartSignal: graceful.RestartSignal,
	})
}

func program(state overseer.State) {
	// Setup context with cancellation for graceful shutdown
	// This will be triggered by OS signal or overseer restarts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel() // prevent potential leak

	graceful.SetupGracefulShutdown(cancel, shutdownTimeout+5*time.Second)

	cfg := config.Load()

	// Logging
	logger.Setup(cfg.App.LogLevel, cfg.App.LogFormat, cfg.App.Name)
	logger.InitLogFile(cfg.App.LogFilePath)

	// amounts go out as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	// DB Write
	dbWriteConn, err := db.ConnectDBWrite(cfg.DB)
	if err != nil {
		errorDetails := err.Error()
		logger.WriteLogToFile("failed", "db.ConnectDBWrite", map[string]any{
			"db_name": cfg.DB.DBWrite.Name,
			"db_host": cfg.DB.DBWrite.Host,
		}, &errorDetails)
		logger.Fatal("❌ Failed to connect database write: " + errorDetails)
	}
	logger.Infof("✅ Connected to database write: %s", cfg.DB.DBWrite.Name)

	if cfg.DB.AutoMigrate {
		if err := db.Migrate(dbWriteConn); err != nil {
			errorDetails := err.Error()
			logger.WriteLogToFile("failed", "db.Migrate", map[string]any{"db_name": cfg.DB.DBWrite.Name}, &errorDetails)
			logger.Fatal("❌ Failed to migrate database: " + errorDetails)
		}
		logger.Info("✅ Database schema migrated")
	}

	// DB Read
	dbReadConn, err := db.ConnectDBRead(cfg.DB)
	if err != nil {
		errorDetails := err.Error()
		logger.WriteLogToFile("failed", "db.ConnectDBRead", map[string]any{
			"db_name": cfg.DB.DBRead.Name,
			"db_host": cfg.DB.DBRead.Host,
		}, &errorDetails)
		logger.Fatal("❌ Failed to connect database read: " + errorDetails)
	}
	logger.WriteLogToFile("success", "db.ConnectDBRead", map[string]any{
		"db_name": cfg.DB.DBRead.Name,
		"db_host": cfg.DB.DBRead.Host,
	}, nil)
	logger.Infof("✅ Connected to database read: %s", cfg.DB.DBRead.Name)

	// Cache
	rdb, err := cache.ConnectRedis(ctx, *cfg.Redis, cfg.App.Name)
	if err != nil {
		errorDetails := err.Error()
		logger.WriteLogToFile("failed", "cache.ConnectRedis", map[string]any{"redis_host": cfg.Redis.Host}, &errorDetails)
		logger.Fatal("❌ Failed to connect cache redis : " + errorDetails)
	}
	logger.WriteLogToFile("success", "cache.ConnectRedis", map[string]any{"redis_host": cfg.Redis.Host}, nil)
	logger.Infof("✅ Connected to cache redis")

	// Start App
	application := app.NewApp(cfg, dbWriteConn, dbReadConn, rdb)
	application.StartBackground(ctx)
	go application.Start(state.Listener)

	// Block until terminated
	<-ctx.Done()

	// Graceful shutdown
	logger.Info("🛑 Shutting down gracefully...")
	application.Shutdown(shutdownTimeout)
	db.CloseDBWrite()
	db.CloseDBRead()
	_ = rdb.Close()
	logger.Info("✅ Cleanup done. Exiting.")
}
