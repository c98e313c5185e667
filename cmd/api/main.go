package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/foodfetch/storefront-backend/api/controllers"
	"github.com/foodfetch/storefront-backend/api/routes"
	"github.com/foodfetch/storefront-backend/internal/cart"
	checkoutsvc "github.com/foodfetch/storefront-backend/internal/checkout"
	"github.com/foodfetch/storefront-backend/internal/menu"
	"github.com/foodfetch/storefront-backend/internal/notify"
	"github.com/foodfetch/storefront-backend/internal/orders"
	"github.com/foodfetch/storefront-backend/internal/restaurants"
	"github.com/foodfetch/storefront-backend/pkg/config"
	"github.com/foodfetch/storefront-backend/pkg/db"
	"github.com/foodfetch/storefront-backend/pkg/gateway"
	"github.com/foodfetch/storefront-backend/pkg/instance"
	"github.com/foodfetch/storefront-backend/pkg/kv"
	"github.com/foodfetch/storefront-backend/pkg/logger"
	"github.com/foodfetch/storefront-backend/pkg/metrics"
	"github.com/foodfetch/storefront-backend/pkg/pubsub"
	"github.com/foodfetch/storefront-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront-api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx := context.Background()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	cartMetrics := metrics.NewCartMetrics(registry)

	pingers := map[string]controllers.Pinger{}

	var slot kv.Slot
	switch cfg.Cart.Backend() {
	case config.CartBackendMemory:
		slot = kv.NewMemorySlot()
	case config.CartBackendFile:
		fileSlot, err := kv.NewFileSlot(cfg.Cart.FileDir)
		if err != nil {
			logg.Error(ctx, "failed to open file slot", err)
			os.Exit(1)
		}
		slot = fileSlot
	case config.CartBackendRedis:
		redisClient, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		pingers["redis"] = redisClient
		redisSlot, err := kv.NewRedisSlot(redisClient)
		if err != nil {
			logg.Error(ctx, "failed to build redis slot", err)
			os.Exit(1)
		}
		slot = redisSlot
	case config.CartBackendDB:
		dbClient, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap database", err)
			os.Exit(1)
		}
		defer dbClient.Close()
		pingers["db"] = dbClient
		gormSlot, err := kv.NewGormSlot(dbClient.DB())
		if err != nil {
			logg.Error(ctx, "failed to build db slot", err)
			os.Exit(1)
		}
		slot = gormSlot
	}

	notifiers := notify.Fanout{notify.NewLogNotifier(logg)}
	if cfg.PubSub.Enabled() {
		psClient, err := pubsub.NewClient(ctx, cfg.PubSub, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap pubsub", err)
			os.Exit(1)
		}
		defer psClient.Close()
		publisher := psClient.Publisher(cfg.PubSub.NotificationTopic)
		notifiers = append(notifiers, notify.NewPubSubNotifier(publisher, logg, cartMetrics))
	}

	cartStore, err := cart.NewStore(ctx, slot, cfg.Cart.StorageKey, notifiers, logg, cartMetrics)
	if err != nil {
		logg.Error(ctx, "failed to build cart store", err)
		os.Exit(1)
	}

	gatewayClient, err := gateway.NewClient(cfg.Gateway, logg)
	if err != nil {
		logg.Error(ctx, "failed to build gateway client", err)
		os.Exit(1)
	}

	ordersClient := orders.NewClient(gatewayClient)
	checkoutService, err := checkoutsvc.NewService(cfg.Checkout, cartStore, ordersClient, logg)
	if err != nil {
		logg.Error(ctx, "failed to build checkout service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":          cfg.App.Env,
		"addr":         addr,
		"instance":     instance.GetID(),
		"cart_backend": cfg.Cart.Backend(),
	})
	logg.Info(ctx, "starting storefront api")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:      cfg,
			Logger:      logg,
			Pingers:     pingers,
			Registry:    registry,
			CartStore:   cartStore,
			Checkout:    checkoutService,
			Restaurants: restaurants.NewClient(gatewayClient),
			Menu:        menu.NewClient(gatewayClient),
			Orders:      ordersClient,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "storefront api stopped unexpectedly", err)
		os.Exit(1)
	}
}
