package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	maintenanceserver "github.com/azaconnect/maintenance-api/go"

	assetsmemory "github.com/azaconnect/maintenance-api/internal/domains/assets/adapters/memory"
	assetspostgres "github.com/azaconnect/maintenance-api/internal/domains/assets/adapters/persistence/postgres"
	assetsapp "github.com/azaconnect/maintenance-api/internal/domains/assets/application"
	assetsports "github.com/azaconnect/maintenance-api/internal/domains/assets/ports"
	inventorymemory "github.com/azaconnect/maintenance-api/internal/domains/inventory/adapters/memory"
	inventorypostgres "github.com/azaconnect/maintenance-api/internal/domains/inventory/adapters/persistence/postgres"
	inventoryapp "github.com/azaconnect/maintenance-api/internal/domains/inventory/application"
	inventoryports "github.com/azaconnect/maintenance-api/internal/domains/inventory/ports"
	maintenancememory "github.com/azaconnect/maintenance-api/internal/domains/maintenance/adapters/memory"
	maintenancepostgres "github.com/azaconnect/maintenance-api/internal/domains/maintenance/adapters/persistence/postgres"
	maintenanceapp "github.com/azaconnect/maintenance-api/internal/domains/maintenance/application"
	maintenanceports "github.com/azaconnect/maintenance-api/internal/domains/maintenance/ports"
	"github.com/azaconnect/maintenance-api/internal/domains/notifications/adapters/alerts"
	"github.com/azaconnect/maintenance-api/internal/domains/notifications/adapters/mail"
	notificationsmemory "github.com/azaconnect/maintenance-api/internal/domains/notifications/adapters/memory"
	notificationspostgres "github.com/azaconnect/maintenance-api/internal/domains/notifications/adapters/persistence/postgres"
	notificationsapp "github.com/azaconnect/maintenance-api/internal/domains/notifications/application"
	notificationsports "github.com/azaconnect/maintenance-api/internal/domains/notifications/ports"
	procurementmemory "github.com/azaconnect/maintenance-api/internal/domains/procurement/adapters/memory"
	procurementobs "github.com/azaconnect/maintenance-api/internal/domains/procurement/adapters/observability"
	procurementpostgres "github.com/azaconnect/maintenance-api/internal/domains/procurement/adapters/persistence/postgres"
	procurementworkflows "github.com/azaconnect/maintenance-api/internal/domains/procurement/adapters/workflows"
	procurementapp "github.com/azaconnect/maintenance-api/internal/domains/procurement/application"
	procurementports "github.com/azaconnect/maintenance-api/internal/domains/procurement/ports"
	usersmemory "github.com/azaconnect/maintenance-api/internal/domains/users/adapters/memory"
	userspostgres "github.com/azaconnect/maintenance-api/internal/domains/users/adapters/persistence/postgres"
	usersapp "github.com/azaconnect/maintenance-api/internal/domains/users/application"
	usersports "github.com/azaconnect/maintenance-api/internal/domains/users/ports"
	"github.com/azaconnect/maintenance-api/internal/platform/migrations"
	platformobservability "github.com/azaconnect/maintenance-api/internal/platform/observability"
	platformpostgres "github.com/azaconnect/maintenance-api/internal/platform/postgres"
)

// Run boots the maintenance HTTP API with observability, repositories,
// notifications, and durable workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "maintenance-api"
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanupDB()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}
	repos := buildRepositories(db, logger)

	var mailer notificationsports.Mailer = notificationsports.NoopMailer
	if cfg.MailEnabled() {
		mailer = mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
		logger.Info("smtp mailer enabled", slog.String("host", cfg.SMTPHost))
	}
	notificationService := notificationsapp.NewService(
		repos.notifications,
		notificationsapp.WithMailer(mailer),
		notificationsapp.WithLogger(logger),
	)
	orderAlerts := alerts.NewOrderAlerts(notificationService, cfg.AlertRecipient, cfg.AlertEmails)

	var orderNotifier procurementports.Notifier = procurementworkflows.NewInlineOrderNotifications(orderAlerts)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal unavailable, delivering order alerts inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orderNotifier = procurementworkflows.NewTemporalOrderNotifications(temporalClient)
		logger.Info("Temporal order notifications enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	coreProcurement := procurementapp.NewService(repos.procurement, procurementapp.WithNotifier(orderNotifier))
	procurementService := procurementobs.New(
		coreProcurement,
		procurementobs.WithLogger(logger),
		procurementobs.WithTracer(instruments.Tracer("internal.procurement.application")),
		procurementobs.WithMeter(instruments.Meter("internal.procurement.application")),
	)
	userService := usersapp.NewService(repos.users, repos.sessions)
	assetService := assetsapp.NewService(repos.assets, repos.sectors)
	maintenanceService := maintenanceapp.NewService(
		repos.requests,
		repos.schedules,
		maintenanceapp.WithNotifier(alerts.NewMaintenanceAlerts(notificationService, cfg.AlertRecipient, cfg.AlertEmails)),
	)
	inventoryService := inventoryapp.NewService(repos.needles)

	handlers := maintenanceserver.ApiHandleFunctions{
		ProcurementAPI:  maintenanceserver.NewProcurementAPI(procurementService),
		UserAPI:         maintenanceserver.NewUserAPI(userService),
		AssetAPI:        maintenanceserver.NewAssetAPI(assetService),
		MaintenanceAPI:  maintenanceserver.NewMaintenanceAPI(maintenanceService),
		InventoryAPI:    maintenanceserver.NewInventoryAPI(inventoryService),
		NotificationAPI: maintenanceserver.NewNotificationAPI(notificationService),
	}

	router := maintenanceserver.NewRouter(handlers)
	router.Use(otelgin.Middleware(serviceName))
	addr := ":" + cfg.Port
	logger.Info("maintenance API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("maintenance API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// repositories bundles the persistence ports for every bounded context so the
// postgres/memory decision is made once.
type repositories struct {
	procurement   procurementports.Repository
	users         usersports.Repository
	sessions      usersports.SessionStore
	assets        assetsports.Repository
	sectors       assetsports.SectorRepository
	requests      maintenanceports.RequestRepository
	schedules     maintenanceports.ScheduleRepository
	needles       inventoryports.Repository
	notifications notificationsports.Repository
}

func buildRepositories(db *gorm.DB, logger *slog.Logger) repositories {
	if db == nil {
		return repositories{
			procurement:   procurementmemory.NewRepository(),
			users:         usersmemory.NewRepository(),
			sessions:      usersmemory.NewSessionStore(),
			assets:        assetsmemory.NewRepository(),
			sectors:       assetsmemory.NewSectorRepository(),
			requests:      maintenancememory.NewRequestRepository(),
			schedules:     maintenancememory.NewScheduleRepository(),
			needles:       inventorymemory.NewRepository(),
			notifications: notificationsmemory.NewRepository(),
		}
	}
	logger.Info("repositories configured with postgres")
	return repositories{
		procurement:   procurementpostgres.NewRepository(db),
		users:         userspostgres.NewRepository(db),
		sessions:      userspostgres.NewSessionStore(db, userspostgres.DefaultSessionTTL),
		assets:        assetspostgres.NewRepository(db),
		sectors:       assetspostgres.NewSectorRepository(db),
		requests:      maintenancepostgres.NewRequestRepository(db),
		schedules:     maintenancepostgres.NewScheduleRepository(db),
		needles:       inventorypostgres.NewRepository(db),
		notifications: notificationspostgres.NewRepository(db),
	}
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(instruments.Logger),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}
