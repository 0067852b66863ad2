// File: masarra/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"masarra/config"
	"masarra/cron"
	"masarra/database"
	orderRepo "masarra/database/repository/order"
	"masarra/handlers"
	"masarra/middleware"
	"masarra/routes"
	"masarra/services/availability"
	"masarra/services/cart"
	"masarra/services/checkout"
	"masarra/services/gateway"
	"masarra/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	ordersRepo := orderRepo.NewMongoOrderRepo()

	// services.
	upstreamClient := gateway.NewClient()

	cartPersister := cart.NewRedisPersister(utils.GetCartStoreClient())
	cartService := cart.NewDefaultCartService(cartPersister, availability.DisplayLocation())

	availabilityService := availability.NewDefaultAvailabilityService(upstreamClient)

	idemGuard := checkout.NewRedisIdempotencyGuard(utils.GetIdemClient())
	checkoutService := checkout.NewDefaultCheckoutService(
		cartService,
		availabilityService,
		upstreamClient,
		ordersRepo,
		idemGuard,
	)

	// handlers.
	h := routes.Handlers{
		Cart:         handlers.NewCartHandler(cartService),
		CartEvents:   handlers.NewCartEventsHandler(cartService),
		Availability: handlers.NewAvailabilityHandler(availabilityService),
		Checkout:     handlers.NewCheckoutHandler(checkoutService),
		Orders:       handlers.NewOrderHandler(ordersRepo),
	}
	routes.RegisterRoutes(router, h)

	// Background workers and monitors.
	cron.InitCartSweeper(cartService)
	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCartStoreClient(), utils.GetIdemClient()},
		database.MongoClient,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
