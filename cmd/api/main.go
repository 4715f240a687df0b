package main

import (
	"context"
	"log"
	"time"

	"funnel-storefront/internal/core/cache"
	"funnel-storefront/internal/core/config"
	"funnel-storefront/internal/core/logger"
	"funnel-storefront/internal/core/server"
	checkoutadapter "funnel-storefront/internal/features/checkout/adapters"
	checkouthandler "funnel-storefront/internal/features/checkout/handler"
	checkoutservice "funnel-storefront/internal/features/checkout/service"
	funneladapter "funnel-storefront/internal/features/funnel/adapters"
	funnelhandler "funnel-storefront/internal/features/funnel/handler"
	funnelservice "funnel-storefront/internal/features/funnel/service"
	orderhandler "funnel-storefront/internal/features/orders/handler"
	orderservice "funnel-storefront/internal/features/orders/service"

	"go.uber.org/zap"
)

// @title Funnel Storefront API
// @version 1.0
// @description Selection-state engine and order gateway for multi-theme product funnels.
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
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

	// Initialize Redis and run Health Check
	redisCache, err := cache.NewRedisAdapter(cfg.Redis.URL)
	if err != nil {
		l.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisCache.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisCache.Ping(pingCtx); err != nil {
		l.Fatal("Redis Health Check Failed", zap.Error(err))
	}
	l.Info("Redis connection verified")

	// Initialize Funnel Service & Handler
	funnelAdapter := funneladapter.NewFunnelAPIAdapter(cfg.FunnelAPI)
	funnelRepo := funneladapter.NewRedisFunnelRepository(redisCache,
		time.Duration(cfg.FunnelAPI.CacheTTLSeconds)*time.Second)
	funnelSvc := funnelservice.NewFunnelService(funnelAdapter, funnelRepo)
	funnelHdl := funnelhandler.NewFunnelHandler(funnelSvc, cfg.DefaultLang)

	// Initialize Checkout Service & Handler
	sessionRepo := checkoutadapter.NewRedisSessionRepository(redisCache,
		time.Duration(cfg.Checkout.SessionTTLSeconds)*time.Second)
	checkoutSvc := checkoutservice.NewCheckoutService(sessionRepo, funnelSvc)
	checkoutHdl := checkouthandler.NewCheckoutHandler(checkoutSvc, cfg.DefaultLang)

	// Initialize Order Service & Handler
	orderSvc := orderservice.NewOrderService(sessionRepo, funnelSvc, funnelAdapter)
	orderHdl := orderhandler.NewOrderHandler(orderSvc)

	srv := server.New(cfg)

	// Register Routes
	srv.App.Get("/api/funnel/:id", funnelHdl.GetFunnel)

	srv.App.Post("/api/sessions", checkoutHdl.CreateSession)
	srv.App.Get("/api/sessions/:id", checkoutHdl.GetSession)
	srv.App.Put("/api/sessions/:id/quantity", checkoutHdl.SelectQuantity)
	srv.App.Put("/api/sessions/:id/panels/:index/option", checkoutHdl.SelectPanelOption)
	srv.App.Put("/api/sessions/:id/fields/:field", checkoutHdl.UpdateField)
	srv.App.Put("/api/sessions/:id/payment", checkoutHdl.SelectPayment)
	srv.App.Put("/api/sessions/:id/delivery", checkoutHdl.SelectDelivery)
	srv.App.Put("/api/sessions/:id/product-option", checkoutHdl.SelectProductOption)
	srv.App.Put("/api/sessions/:id/product-qty", checkoutHdl.SetProductQty)
	srv.App.Get("/api/sessions/:id/summary", checkoutHdl.GetSummary)

	srv.App.Post("/api/sessions/:id/submit", orderHdl.Submit)
	srv.App.Post("/api/sessions/:id/confirm", orderHdl.Confirm)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
