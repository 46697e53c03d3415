package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/hbhotel/facilities-service/internal/api/http"
	"github.com/hbhotel/facilities-service/internal/api/http/handlers"
	"github.com/hbhotel/facilities-service/internal/auth"
	"github.com/hbhotel/facilities-service/internal/config"
	"github.com/hbhotel/facilities-service/internal/events"
	"github.com/hbhotel/facilities-service/internal/observability"
	"github.com/hbhotel/facilities-service/internal/persistence"
	"github.com/hbhotel/facilities-service/internal/repository"
	"github.com/hbhotel/facilities-service/internal/service"
	"github.com/hbhotel/facilities-service/internal/worker"
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

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	pool := pg.PoolHandle()
	workerRepo := repository.NewWorkerRepository(pool)
	incidentRepo := repository.NewIncidentRepository(pool)
	maintenanceRepo := repository.NewMaintenanceRepository(pool)
	calendarRepo := repository.NewCalendarRepository(pool)
	partRepo := repository.NewPartRepository(pool)
	areaRepo := repository.NewAreaRepository(pool)
	typeRepo := repository.NewTypeRepository(pool)
	equipmentRepo := repository.NewEquipmentRepository(pool)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authService := service.NewAuthService(workerRepo, tokens)
	workerService := service.NewWorkerService(workerRepo)

	incidentService := service.NewIncidentService(service.IncidentDependencies{
		IncidentRepo: incidentRepo,
		Dispatcher:   dispatcher,
	})
	assignmentService := service.NewAssignmentService(service.AssignmentDependencies{
		IncidentRepo: incidentRepo,
		WorkerRepo:   workerRepo,
		Dispatcher:   dispatcher,
	})
	calendarService := service.NewCalendarService(service.CalendarDependencies{
		CalendarRepo:  calendarRepo,
		TicketRepo:    maintenanceRepo,
		EquipmentRepo: equipmentRepo,
		Dispatcher:    dispatcher,
		Logger:        logger,
	})
	maintenanceService := service.NewMaintenanceService(service.MaintenanceDependencies{
		TicketRepo:    maintenanceRepo,
		PartRepo:      partRepo,
		EquipmentRepo: equipmentRepo,
		WorkerRepo:    workerRepo,
		Calendar:      calendarService,
		Renderer:      service.NewLoggingWorkOrderRenderer(logger),
		Dispatcher:    dispatcher,
		Logger:        logger,
	})
	historyService := service.NewHistoryService(service.HistoryDependencies{
		IncidentRepo: incidentRepo,
		TicketRepo:   maintenanceRepo,
	})
	referenceService := service.NewReferenceService(service.ReferenceDependencies{
		AreaRepo:      areaRepo,
		TypeRepo:      typeRepo,
		EquipmentRepo: equipmentRepo,
		Cache:         redis.Client,
		CacheTTL:      cfg.Redis.RefCacheTTL(),
		Logger:        logger,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewMiddleware(tokens, workerRepo)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Incidents:      handlers.NewIncidentsHandler(incidentService, assignmentService),
		Maintenance:    handlers.NewMaintenanceHandler(maintenanceService),
		Calendar:       handlers.NewCalendarHandler(calendarService),
		Reference:      handlers.NewReferenceHandler(referenceService),
		Reports:        handlers.NewReportsHandler(historyService),
		Workers:        handlers.NewWorkersHandler(workerService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()
	logger.Info("listening", zap.String("addr", cfg.App.Addr()))

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
