package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/grmlab/services-exchange/internal/api/http"
	"github.com/grmlab/services-exchange/internal/api/http/handlers"
	"github.com/grmlab/services-exchange/internal/cache"
	"github.com/grmlab/services-exchange/internal/config"
	"github.com/grmlab/services-exchange/internal/observability"
	"github.com/grmlab/services-exchange/internal/persistence"
	"github.com/grmlab/services-exchange/internal/repository"
	"github.com/grmlab/services-exchange/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	offerRepo := repository.NewOfferRepository(pool)

	countCache := cache.NewCountCache(redis.Client, cfg.Redis.CountCacheTTL())

	userService := service.NewUserService(service.UserDependencies{
		UserRepo:   userRepo,
		CountCache: countCache,
	})
	orderService := service.NewOrderService(service.OrderDependencies{
		OrderRepo:  orderRepo,
		UserRepo:   userRepo,
		CountCache: countCache,
	})
	offerService := service.NewOfferService(service.OfferDependencies{
		OfferRepo:  offerRepo,
		OrderRepo:  orderRepo,
		UserRepo:   userRepo,
		CountCache: countCache,
	})

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App, pg, redis),
		Users:  handlers.NewUsersHandler(userService),
		Orders: handlers.NewOrdersHandler(orderService),
		Offers: handlers.NewOffersHandler(offerService),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
