package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/zenvory/storefront-service/internal/application/cartstore"
	"github.com/zenvory/storefront-service/internal/application/commands"
	"github.com/zenvory/storefront-service/internal/application/ports"
	"github.com/zenvory/storefront-service/internal/application/use_cases"
	"github.com/zenvory/storefront-service/internal/config"
	"github.com/zenvory/storefront-service/internal/infrastructure/http/handlers"
	"github.com/zenvory/storefront-service/internal/infrastructure/persistence/postgres"
	"github.com/zenvory/storefront-service/internal/pkg/clock"
	"github.com/zenvory/storefront-service/internal/pkg/generator"
	"github.com/zenvory/storefront-service/internal/pkg/logger"
	"github.com/zenvory/storefront-service/internal/pkg/normalizer"
	"github.com/zenvory/storefront-service/internal/pkg/notifier"
)

type Server struct {
	server               *http.Server
	logger               *logger.Logger
	healthHandler        *handlers.HealthHandler
	cartHandler          *handlers.CartHandler
	catalogHandler       *handlers.CatalogHandler
	adminHandler         *handlers.AdminHandler
	notificationsHandler *handlers.NotificationsHandler
}

type Dependencies struct {
	DB          *sql.DB
	RedisClient *goredis.Client
	KV          ports.KeyValueStore
	Events      *notifier.Bus[notifier.Event]
	Changes     *notifier.Bus[notifier.KeyChange]
}

func NewServer(cfg *config.Config, deps Dependencies, log *logger.Logger) *Server {
	conn := postgres.NewConnectionFromDB(deps.DB)
	productRepo := postgres.NewProductRepository(conn)
	categoryRepo := postgres.NewCategoryRepository(conn)

	store := cartstore.New(deps.KV, cfg.Storefront.CartKey, deps.Events, deps.Changes, log)
	norm := normalizer.New(cfg.Storefront.Origin, cfg.Storefront.PlaceholderImage)

	addToCart := commands.NewAddToCartHandler(productRepo, store, norm, log)
	cartView := use_cases.NewCartViewUseCase(store, log)

	toasts := notifier.NewToastQueue(deps.Events, cfg.Storefront.ToastTTL(), clock.NewRealClock())

	cartHandler := handlers.NewCartHandler(addToCart, cartView, store, log)
	catalogHandler := handlers.NewCatalogHandler(productRepo, categoryRepo, log)
	adminHandler := handlers.NewAdminHandler(productRepo, categoryRepo, generator.NewProductGenerator(), log)
	notificationsHandler := handlers.NewNotificationsHandler(deps.Events, deps.Changes, toasts, log)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.RedisClient, log)

	server := &http.Server{
		Addr:        fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		ReadTimeout: 10 * time.Second,
		// No WriteTimeout: the notifications endpoint holds its
		// connection open for the lifetime of the client.
		IdleTimeout: 120 * time.Second,
	}

	return &Server{
		server:               server,
		logger:               log,
		healthHandler:        healthHandler,
		cartHandler:          cartHandler,
		catalogHandler:       catalogHandler,
		adminHandler:         adminHandler,
		notificationsHandler: notificationsHandler,
	}
}

func (s *Server) ListenAndServe() error {
	s.server.Handler = s.setupRoutes()

	s.logger.Info("Starting HTTP server", "address", s.server.Addr)

	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
