package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/azaconnect/maintenance-api/internal/domains/notifications/adapters/alerts"
	notificationsmemory "github.com/azaconnect/maintenance-api/internal/domains/notifications/adapters/memory"
	notificationspostgres "github.com/azaconnect/maintenance-api/internal/domains/notifications/adapters/persistence/postgres"
	notificationsapp "github.com/azaconnect/maintenance-api/internal/domains/notifications/application"
	notificationsports "github.com/azaconnect/maintenance-api/internal/domains/notifications/ports"
	procurementmemory "github.com/azaconnect/maintenance-api/internal/domains/procurement/adapters/memory"
	procurementpostgres "github.com/azaconnect/maintenance-api/internal/domains/procurement/adapters/persistence/postgres"
	procurementports "github.com/azaconnect/maintenance-api/internal/domains/procurement/ports"
	orderactivities "github.com/azaconnect/maintenance-api/internal/durable/temporal/activities/orders"
	orderworkflows "github.com/azaconnect/maintenance-api/internal/durable/temporal/workflows/orders"
	platformobservability "github.com/azaconnect/maintenance-api/internal/platform/observability"
	platformpostgres "github.com/azaconnect/maintenance-api/internal/platform/postgres"
)

func main() {
	ctx := context.Background()
	const serviceName = "maintenance-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	orderRepo, notificationRepo, cleanupRepo := buildRepositories(ctx, logger)
	defer cleanupRepo()
	notificationService := notificationsapp.NewService(
		notificationRepo,
		notificationsapp.WithLogger(logger),
	)
	notifier := alerts.NewOrderAlerts(
		notificationService,
		envOrDefault("ALERT_RECIPIENT", "purchasing"),
		splitList(os.Getenv("ALERT_EMAILS")),
	)
	orderActivities := orderactivities.NewActivities(orderRepo, notifier)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderNotificationTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderPlacedWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderPlacedWorkflowName})
	w.RegisterActivityWithOptions(orderActivities.NotifyOrderPlaced, activity.RegisterOptions{Name: orderactivities.NotifyOrderPlacedActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderNotificationTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func buildRepositories(ctx context.Context, logger *slog.Logger) (procurementports.Repository, notificationsports.Repository, func()) {
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	if db == nil {
		return procurementmemory.NewRepository(), notificationsmemory.NewRepository(), cleanup
	}
	logger.Info("worker repositories configured with postgres")
	return procurementpostgres.NewRepository(db), notificationspostgres.NewRepository(db), cleanup
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
