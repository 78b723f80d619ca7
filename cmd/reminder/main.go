package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/azaconnect/maintenance-api/internal/domains/maintenance/adapters/persistence/postgres"
	maintenanceapp "github.com/azaconnect/maintenance-api/internal/domains/maintenance/application"
	"github.com/azaconnect/maintenance-api/internal/domains/notifications/adapters/alerts"
	notificationspostgres "github.com/azaconnect/maintenance-api/internal/domains/notifications/adapters/persistence/postgres"
	notificationsapp "github.com/azaconnect/maintenance-api/internal/domains/notifications/application"
	userspostgres "github.com/azaconnect/maintenance-api/internal/domains/users/adapters/persistence/postgres"
	platformpostgres "github.com/azaconnect/maintenance-api/internal/platform/postgres"
)

// reminder is a one-shot sweep meant for a cron slot: it raises notifications
// for preventive schedules that are due and purges expired user sessions.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot run reminder sweep")
	}

	notificationService := notificationsapp.NewService(
		notificationspostgres.NewRepository(db),
		notificationsapp.WithLogger(logger),
	)
	recipient := os.Getenv("ALERT_RECIPIENT")
	if recipient == "" {
		recipient = "maintenance"
	}
	maintenanceService := maintenanceapp.NewService(
		postgres.NewRequestRepository(db),
		postgres.NewScheduleRepository(db),
		maintenanceapp.WithNotifier(alerts.NewMaintenanceAlerts(notificationService, recipient, nil)),
	)
	due, err := maintenanceService.DueSchedules(ctx, time.Now())
	if err != nil {
		log.Fatalf("failed to sweep due schedules: %v", err)
	}
	log.Printf("due schedule sweep completed: %d schedules notified", len(due))

	store := userspostgres.NewSessionStore(db, userspostgres.DefaultSessionTTL)
	if err := store.PurgeExpired(ctx); err != nil {
		log.Fatalf("failed to purge sessions: %v", err)
	}
	log.Printf("session purge completed")
}
