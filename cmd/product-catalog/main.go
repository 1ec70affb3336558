package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/stockroom/product-catalog/docs"
	"github.com/stockroom/product-catalog/internal/api/handlers"
	"github.com/stockroom/product-catalog/internal/api/middleware"
	"github.com/stockroom/product-catalog/internal/config"
	"github.com/stockroom/product-catalog/internal/health"
	"github.com/stockroom/product-catalog/internal/metrics"
	repository "github.com/stockroom/product-catalog/internal/repositories"
	service "github.com/stockroom/product-catalog/internal/services"
	"github.com/stockroom/product-catalog/internal/telemetry"
)

//	@title			Product Catalog API
//	@version		1.0
//	@description	CRUD and inventory dashboard API for the product catalog.
//	@BasePath		/api/v1

func main() {
	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing (no-op unless enabled)
	shutdownTelemetry, err := telemetry.Setup(context.Background(), &cfg.Telemetry)
	if err != nil {
		slog.Error("Error setting up telemetry", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("Error closing database connection", slog.String("error", err.Error()))
		}
	}()

	// Redis setup (rate limiting)
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("Error setting up health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	productService := service.NewProductService(repos.Product, &cfg.Catalog)
	productHandler := handlers.NewProductHandler(productService)
	dashboardService := service.NewDashboardService(productService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	limiter := middleware.NewRateLimiter(redisClient, &cfg.RateLimit)

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router; mutating routes go through the rate limiter
	routerMux := http.NewServeMux()
	routerMux.Handle("POST /api/v1/products", limiter.Limit(productHandler.CreateProduct()))
	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/search", productHandler.SearchProducts())
	routerMux.HandleFunc("GET /api/v1/products/stats", productHandler.GetStats())
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	routerMux.Handle("PUT /api/v1/products/{id}", limiter.Limit(productHandler.UpdateProduct()))
	routerMux.Handle("DELETE /api/v1/products/{id}", limiter.Limit(productHandler.DeleteProduct()))
	routerMux.HandleFunc("GET /api/v1/dashboard", dashboardHandler.GetDashboard())
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

	if cfg.Telemetry.Enabled {
		handler = otelhttp.NewHandler(handler, "product-catalog")
	}

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("Server is starting", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("Shutdown signal received. Preparing to stop the server")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown encountered an issue", slog.String("error", err.Error()))
	}

	if err := shutdownTelemetry(shutdownCtx); err != nil {
		slog.Error("Telemetry shutdown encountered an issue", slog.String("error", err.Error()))
	}

	if err := redisClient.Close(); err != nil {
		slog.Error("Error closing redis connection", slog.String("error", err.Error()))
	}

	slog.Info("Server shut down gracefully")
}
