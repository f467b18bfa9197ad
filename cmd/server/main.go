package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zenvory/storefront-service/internal/application/cartstore"
	"github.com/zenvory/storefront-service/internal/config"
	"github.com/zenvory/storefront-service/internal/infrastructure/http/server"
	"github.com/zenvory/storefront-service/internal/infrastructure/monitoring"
	"github.com/zenvory/storefront-service/internal/infrastructure/persistence/memory"
	"github.com/zenvory/storefront-service/internal/infrastructure/persistence/postgres"
	"github.com/zenvory/storefront-service/internal/infrastructure/persistence/redis"
	"github.com/zenvory/storefront-service/internal/infrastructure/scheduler"
	"github.com/zenvory/storefront-service/internal/pkg/logger"
	"github.com/zenvory/storefront-service/internal/pkg/notifier"
)

func main() {
	configPath := flag.String("config", "config.json", "Path to configuration file")
	flag.Parse()

	log := logger.NewLogger()
	log.Info("Starting Storefront Service")

	cfg, configErr := config.LoadConfig(*configPath)
	if configErr != nil {
		log.Fatal("Failed to load configuration", "error", configErr)
	}

	db, dbErr := postgres.NewConnection(cfg.Database)
	if dbErr != nil {
		log.Fatal("Failed to connect to database", "error", dbErr)
	}
	defer db.Close()

	if migrationErr := postgres.RunMigrations(cfg.Database); migrationErr != nil {
		log.Fatal("Failed to run migrations", "error", migrationErr)
	}

	events := notifier.NewBus[notifier.Event]()
	changes := notifier.NewBus[notifier.KeyChange]()

	serverCtx, serverStopCtx := context.WithCancel(context.Background())
	defer serverStopCtx()

	deps := server.Dependencies{
		DB:      db.GetDB(),
		Events:  events,
		Changes: changes,
	}

	// Redis is optional: without it the cart lives in process memory and
	// cross-process change announcements are off.
	if cfg.Redis.Host != "" {
		redisConn, err := redis.NewConnection(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", "error", err)
		}
		defer redisConn.Close()

		kv := redis.NewKVStore(redisConn, log)
		kv.WatchChanges(serverCtx, changes)

		deps.RedisClient = redisConn.GetClient()
		deps.KV = kv
	} else {
		log.Warn("Redis not configured, using in-memory cart storage")
		deps.KV = memory.NewKVStore()
	}

	dbMetricsCollector := monitoring.NewDBMetricsCollector(db.GetDB())
	dbMetricsCollector.StartCollecting(serverCtx, 30*time.Second)

	janitorStore := cartstore.New(deps.KV, cfg.Storefront.CartKey, events, changes, log)
	cartJanitor := scheduler.NewCartJanitor(janitorStore, log, cfg.Storefront.JanitorInterval())

	httpServer := server.NewServer(cfg, deps, log)

	go cartJanitor.Start(serverCtx)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigChan
		shutdownCtx, cancel := context.WithTimeout(serverCtx, 30*time.Second)
		defer cancel()

		log.Info("Shutting down server...")
		cartJanitor.Stop()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown error", "error", err)
		}

		serverStopCtx()
	}()

	log.Info("Server starting", "address", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port))
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("Server failed", "error", err)
	}

	<-serverCtx.Done()
	log.Info("Server stopped")
}
