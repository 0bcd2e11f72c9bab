package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ticket-sales/internal/core/auth"
	"ticket-sales/internal/core/cache"
	"ticket-sales/internal/core/config"
	"ticket-sales/internal/core/database"
	"ticket-sales/internal/core/logger"
	"ticket-sales/internal/core/server"
	banneradapters "ticket-sales/internal/features/banners/adapters"
	bannerhandler "ticket-sales/internal/features/banners/handler"
	bannerservice "ticket-sales/internal/features/banners/service"
	categoryadapters "ticket-sales/internal/features/categories/adapters"
	categoryhandler "ticket-sales/internal/features/categories/handler"
	categoryservice "ticket-sales/internal/features/categories/service"
	customeradapters "ticket-sales/internal/features/customers/adapters"
	customerhandler "ticket-sales/internal/features/customers/handler"
	customerservice "ticket-sales/internal/features/customers/service"
	eventadapters "ticket-sales/internal/features/events/adapters"
	eventhandler "ticket-sales/internal/features/events/handler"
	eventservice "ticket-sales/internal/features/events/service"
	orderadapters "ticket-sales/internal/features/orders/adapters"
	orderhandler "ticket-sales/internal/features/orders/handler"
	orderservice "ticket-sales/internal/features/orders/service"
	sessionadapters "ticket-sales/internal/features/sessions/adapters"
	sessionhandler "ticket-sales/internal/features/sessions/handler"
	sessionservice "ticket-sales/internal/features/sessions/service"
	ticketadapters "ticket-sales/internal/features/tickets/adapters"
	tickethandler "ticket-sales/internal/features/tickets/handler"
	ticketservice "ticket-sales/internal/features/tickets/service"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// @title Ticket Sales API
// @version 1.0
// @description Ticket sales backend: customers, events, orders, tickets and ranked promotional banners.
// @contact.name API Support
// @license.name MIT
// @host localhost:8000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	configDir := pflag.String("config-dir", ".", "directory containing the .env file")
	pflag.Parse()

	cfg, err := config.Load(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(cfg.Database.DSN()); err != nil {
			l.Fatal("Failed to apply migrations", zap.Error(err))
		}
		l.Info("Database migrations applied")
	}

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		l.Fatal("Failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()
	tx := database.NewTransactor(pool, cfg.Database.TxMaxRetries)

	// Cache
	bannerCache := newCache(ctx, cfg.Redis)
	defer bannerCache.Close()

	// Customers & sessions
	issuer := auth.NewIssuer(cfg.Auth)
	customerSvc := customerservice.NewCustomerService(
		customeradapters.NewPostgresCustomerRepository(pool),
		auth.NewPasswordHasher(bcrypt.DefaultCost),
	)
	sessionSvc := sessionservice.NewSessionService(sessionadapters.NewCustomerAccounts(customerSvc), issuer)
	requireAuth := auth.RequireAuth(issuer, customerSvc)

	// Banners
	bannerSvc := bannerservice.NewBannerService(
		banneradapters.NewPostgresBannerRepository(pool),
		banneradapters.NewPostgresUnitOfWork(tx),
		banneradapters.NewRedisListCache(bannerCache, cfg.Redis.BannerCacheTTL),
	)

	// Catalogue & sales
	categorySvc := categoryservice.NewCategoryService(categoryadapters.NewPostgresCategoryRepository(pool))
	eventSvc := eventservice.NewEventService(eventadapters.NewPostgresEventRepository(pool))
	orderSvc := orderservice.NewOrderService(orderadapters.NewPostgresOrderRepository(pool))
	ticketSvc := ticketservice.NewTicketService(ticketadapters.NewPostgresTicketRepository(pool))

	srv := server.New(cfg)

	// Register Routes
	srv.Mount(sessionhandler.NewSessionHandler(sessionSvc).Routes(), nil)
	srv.Mount(bannerhandler.NewBannerHandler(bannerSvc).Routes(), nil)
	srv.Mount(categoryhandler.NewCategoryHandler(categorySvc).Routes(), nil)
	srv.Mount(eventhandler.NewEventHandler(eventSvc).Routes(), nil)
	srv.Mount(customerhandler.NewCustomerHandler(customerSvc).Routes(), requireAuth)
	srv.Mount(orderhandler.NewOrderHandler(orderSvc).Routes(), requireAuth)
	srv.Mount(tickethandler.NewTicketHandler(ticketSvc).Routes(), requireAuth)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			l.Fatal("Server failed to start", zap.Error(err))
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			l.Error("Graceful shutdown failed", zap.Error(err))
		}
	}
	l.Info("Application stopped")
}

// newCache connects to redis, falling back to no caching when it is not configured or unreachable.
func newCache(ctx context.Context, cfg config.RedisConfig) cache.Cache {
	l := logger.Get()
	if cfg.URL == "" {
		l.Info("REDIS_URL not set, banner list cache disabled")
		return cache.Nop{}
	}

	adapter, err := cache.NewRedisAdapter(cfg.URL, cache.WithKeyPrefix(cfg.KeyPrefix))
	if err != nil {
		l.Warn("Invalid REDIS_URL, banner list cache disabled", zap.Error(err))
		return cache.Nop{}
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := adapter.Ping(pingCtx); err != nil {
		l.Warn("Redis unreachable, banner list cache disabled", zap.Error(err))
		_ = adapter.Close()
		return cache.Nop{}
	}

	l.Info("Redis connection verified")
	return adapter
}
