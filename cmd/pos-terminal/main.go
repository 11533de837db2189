package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aaravmahajanofficial/pos-terminal/internal/api/handlers"
	"github.com/aaravmahajanofficial/pos-terminal/internal/api/middleware"
	"github.com/aaravmahajanofficial/pos-terminal/internal/cache"
	"github.com/aaravmahajanofficial/pos-terminal/internal/config"
	"github.com/aaravmahajanofficial/pos-terminal/internal/health"
	"github.com/aaravmahajanofficial/pos-terminal/internal/metrics"
	repository "github.com/aaravmahajanofficial/pos-terminal/internal/repositories"
	service "github.com/aaravmahajanofficial/pos-terminal/internal/services"
	"github.com/aaravmahajanofficial/pos-terminal/internal/telemetry"
	"github.com/aaravmahajanofficial/pos-terminal/pkg/sendgrid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const version = "1.0.0"

func main() {

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.MustLoad()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, err := telemetry.InitTracer(ctx, cfg.Telemetry, cfg.Env)
	if err != nil {
		slog.Error("❌ Error initializing tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos, err := repository.New(ctx, cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	redisClient, err := repository.NewRedisClient(ctx, cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}

		if err := redisClient.Close(); err != nil {
			slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := tp.Shutdown(shutdownCtx); err != nil {
			slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
		}
	}()

	redisCache := cache.NewRedisCache(redisClient, &cfg.Cache)
	sessions := repository.NewSessionRepo(redisClient)
	rateLimit := repository.NewRateLimitRepo(redisClient, cfg.RateConfig)

	var receipts service.ReceiptService
	if cfg.SendGrid.APIKey != "" {
		emailService := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
		receipts = service.NewReceiptService(emailService, cfg.SendGrid.FromName)
	} else {
		slog.Warn("SendGrid is not configured, receipts will not be emailed")
	}

	catalogService := service.NewCatalogService(repos.Products, redisCache, cfg.Cache.CatalogTTL)
	customerService := service.NewCustomerService(repos.Customers, redisCache)
	terminalService := service.NewTerminalService(catalogService, customerService, repos.Sales, sessions, receipts, cfg.Checkout)
	go terminalService.RunEvictor(ctx, cfg.Security.TokenTTL)
	userService := service.NewUserService(repos.Users, sessions, rateLimit, []byte(cfg.Security.JWTKey), cfg.Security.TokenTTL, terminalService.Release)

	terminalHandler := handlers.NewTerminalHandler(terminalService)
	productHandler := handlers.NewProductHandler(catalogService)
	userHandler := handlers.NewUserHandler(userService)
	authMiddleware := middleware.NewAuthMiddleware([]byte(cfg.Security.JWTKey), sessions)

	healthHandler, err := health.NewHealthHandler(cfg.Telemetry.ServiceName, version, &health.Endpoints{
		DB:          repos.DB,
		RedisClient: redisClient,
	})
	if err != nil {
		slog.Error("❌ Error creating health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", version))

	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/users/login", userHandler.Login())
	routerMux.HandleFunc("POST /api/v1/users/logout", authMiddleware.Authenticate(userHandler.Logout()))
	routerMux.HandleFunc("GET /api/v1/products/{sku}", authMiddleware.Authenticate(productHandler.GetProduct()))
	routerMux.HandleFunc("GET /api/v1/terminal", authMiddleware.Authenticate(terminalHandler.GetTerminal()))
	routerMux.HandleFunc("DELETE /api/v1/terminal", authMiddleware.Authenticate(terminalHandler.ClearTerminal()))
	routerMux.HandleFunc("PATCH /api/v1/terminal/fields", authMiddleware.Authenticate(terminalHandler.UpdateFields()))
	routerMux.HandleFunc("POST /api/v1/terminal/lines", authMiddleware.Authenticate(terminalHandler.AddLine()))
	routerMux.HandleFunc("DELETE /api/v1/terminal/lines/{sku}", authMiddleware.Authenticate(terminalHandler.RemoveLine()))
	routerMux.HandleFunc("POST /api/v1/terminal/customer", authMiddleware.Authenticate(terminalHandler.SelectCustomer()))
	routerMux.HandleFunc("POST /api/v1/terminal/checkout", authMiddleware.Authenticate(terminalHandler.Checkout()))
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// metrics reads r.Pattern, so it must see the request the mux matched
	var handler http.Handler = metrics.Middleware(routerMux)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, cfg.Telemetry.ServiceName)

	server := http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Checkout.SubmitTimeout+5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

}
