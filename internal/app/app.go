package app

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/rahulgarg55/casino-games-backend/internal/app/factory"
	"github.com/rahulgarg55/casino-games-backend/internal/app/routes"
	"github.com/rahulgarg55/casino-games-backend/internal/config"
	"github.com/rahulgarg55/casino-games-backend/internal/metrics"
	"github.com/rahulgarg55/casino-games-backend/internal/worker"
	"github.com/rahulgarg55/casino-games-backend/pkg/logger"
	"github.com/rahulgarg55/casino-games-backend/pkg/response"
)

type App struct {
	Fiber     *fiber.App
	Config    *config.Config
	Container *factory.Container

	workers sync.WaitGroup
}

func NewApp(cfg *config.Config, dbWrite *gorm.DB, dbRead *gorm.DB, rdb redis.UniversalClient) *App {
	// Build the application factory
	container := factory.Build(cfg, dbWrite, dbRead, rdb)
	return NewAppWithContainer(cfg, container)
}

func NewAppWithContainer(cfg *config.Config, container *factory.Container) *App {
	fiberApp := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: errorHandler,
	})

	fiberApp.Use(recover.New())
	fiberApp.Use(cors.New())
	fiberApp.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${status} ${method} ${path} ${latency}\n",
	}))
	fiberApp.Use(metrics.Middleware())

	// Register routes
	routes.NewRoutes(fiberApp, container, cfg)

	return &App{Fiber: fiberApp, Config: cfg, Container: container}
}

// errorHandler keeps fiber's own errors (404, 405, body too large) in the response envelope.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if fe, ok := err.(*fiber.Error); ok {
		code = fe.Code
	}
	return response.WriteError(c, code, err.Error(), err.Error())
}

// StartBackground launches the ledger stream consumers and the cron scheduler.
func (a *App) StartBackground(ctx context.Context) {
	workerCfg := a.Config.Worker
	for i := 0; i < workerCfg.WorkerCount; i++ {
		name := worker.ConsumerName(workerCfg.Instance, i)
		a.workers.Add(1)
		go func() {
			defer a.workers.Done()
			a.Container.LedgerWorker.Run(ctx, name)
		}()
	}
	logger.Infof("✅ %d ledger stream workers started", workerCfg.WorkerCount)

	if err := a.Container.Scheduler.Start(); err != nil {
		logger.Errorf("❌ Failed to start scheduler: %v", err)
	}
}

func (a *App) Start(listener net.Listener) {
	configApp := a.Config.App

	logger.Infof("✅ %s server started on port: %s", configApp.Name, configApp.Port)

	if err := a.Fiber.Listener(listener); err != nil {
		errDetail := err.Error()
		logger.WriteLogToFile("failed", "app.Start", map[string]any{
			"app_name": configApp.Name,
			"app_port": configApp.Port,
		}, &errDetail)
		logger.Fatal("❌ Failed to start server: " + err.Error())
	}
}

// Shutdown drains HTTP requests, then waits for the scheduler and workers.
func (a *App) Shutdown(timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := a.Fiber.ShutdownWithContext(ctx); err != nil {
		logger.Warnf("⚠️ HTTP shutdown: %v", err)
	}
	a.Container.Scheduler.Stop(ctx)

	done := make(chan struct{})
	go func() {
		a.workers.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		logger.Warn("⚠️ Ledger workers did not stop in time")
	}
}
