package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aaravmahajanofficial/inventory-service/internal/api/handlers"
	"github.com/aaravmahajanofficial/inventory-service/internal/api/middleware"
	"github.com/aaravmahajanofficial/inventory-service/internal/config"
	"github.com/aaravmahajanofficial/inventory-service/internal/health"
	"github.com/aaravmahajanofficial/inventory-service/internal/metrics"
	"github.com/aaravmahajanofficial/inventory-service/internal/models"
	repository "github.com/aaravmahajanofficial/inventory-service/internal/repositories"
	"github.com/aaravmahajanofficial/inventory-service/internal/resilience"
	service "github.com/aaravmahajanofficial/inventory-service/internal/services"
	"github.com/aaravmahajanofficial/inventory-service/internal/telemetry"
	"github.com/aaravmahajanofficial/inventory-service/pkg/kafka"
	"github.com/aaravmahajanofficial/inventory-service/pkg/sendgrid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	shutdownTracing, err := telemetry.SetupTracing(context.Background(), cfg.Otel)
	if err != nil {
		slog.Error("❌ Error setting up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer redisClient.Close()

	mailer, channel, closeMailer := newMailer(cfg)
	defer closeMailer()

	notificationService := service.NewNotificationService(repos.Notification, mailer, channel)
	itemService := service.NewItemService(repos.Item, repos.Category, notificationService, cfg.Notifier)
	itemHandler := handlers.NewItemHandler(itemService)

	authMiddleware := middleware.NewAuthMiddleware([]byte(cfg.Security.JWTKey))
	requireStaff := middleware.RequireRole(models.RoleAdmin, models.RoleEmployee)
	rateLimiter := middleware.NewRateLimiter(repository.NewRateLimitRepo(redisClient, cfg.RateConfig))

	// authenticated, staff only, rate limited
	write := func(h http.HandlerFunc) http.HandlerFunc {
		return authMiddleware.Authenticate(requireStaff(rateLimiter.Limit(h)))
	}

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error creating health handler", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", telemetry.ServiceVersion))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/v1/items", authMiddleware.Authenticate(itemHandler.ListItems()))
	routerMux.HandleFunc("GET /api/v1/items/units", authMiddleware.Authenticate(itemHandler.Units()))
	routerMux.HandleFunc("GET /api/v1/items/{id}", authMiddleware.Authenticate(itemHandler.GetItem()))
	routerMux.HandleFunc("POST /api/v1/items", write(itemHandler.CreateItem()))
	routerMux.HandleFunc("PUT /api/v1/items/{id}", write(itemHandler.UpdateItem()))
	routerMux.HandleFunc("DELETE /api/v1/items/{id}", write(itemHandler.DeleteItem()))
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, cfg.Otel.ServiceName)

	// Setup http server
	server := http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	// notifications already dispatched get the notifier timeout to finish
	drainCtx, drainCancel := context.WithTimeout(context.Background(), cfg.Notifier.Timeout)
	defer drainCancel()

	if err := itemService.Close(drainCtx); err != nil {
		slog.Warn("⚠️ Pending notifications dropped", slog.String("error", err.Error()))
	}

	tracingCtx, tracingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer tracingCancel()

	if err := shutdownTracing(tracingCtx); err != nil {
		slog.Error("⚠️ Tracer shutdown encountered an issue", slog.String("error", err.Error()))
	}

}

// newMailer picks the notification transport and wraps it in a circuit breaker.
func newMailer(cfg *config.Config) (service.Mailer, models.NotificationChannel, func()) {

	switch cfg.Notifier.Driver {
	case "kafka":
		publisher := kafka.NewPublisher(cfg.Notifier.KafkaBrokers, cfg.Notifier.KafkaTopic)
		closeFn := func() {
			if err := publisher.Close(); err != nil {
				slog.Error("⚠️ Error closing kafka writer", slog.String("error", err.Error()))
			}
		}
		slog.Info("Notifications go to kafka", slog.String("topic", cfg.Notifier.KafkaTopic))
		return resilience.NewBreakerSender("kafka", publisher, cfg.Notifier), models.ChannelKafka, closeFn

	default:
		emailService := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
		slog.Info("Notifications go to sendgrid", slog.String("from", cfg.SendGrid.FromEmail))
		return resilience.NewBreakerSender("sendgrid", emailService, cfg.Notifier), models.ChannelEmail, func() {}
	}
}
