package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/drivedesk-api/internal/config"
	"github.com/noah-isme/drivedesk-api/internal/database"
	"github.com/noah-isme/drivedesk-api/internal/handler"
	"github.com/noah-isme/drivedesk-api/internal/middleware"
	"github.com/noah-isme/drivedesk-api/internal/repository"
	"github.com/noah-isme/drivedesk-api/internal/router"
	"github.com/noah-isme/drivedesk-api/internal/service"
	cloud "github.com/noah-isme/drivedesk-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Str("service", cfg.AppName).Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL, cfg.IsProduction())
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL, cfg.AppName)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	} else {
		logger.Warn().Msg("redis not configured; dashboard cache and cross-node notifications disabled")
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = database.ConnectNATS(cfg.NATSURL, cfg.AppName)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Drain()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	studentRepo := repository.NewStudentRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	examRepo := repository.NewExamRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	peopleRepo := repository.NewPeopleRepository(db)
	fleetRepo := repository.NewFleetRepository(db)

	activityService := service.NewActivityService(repository.NewActivityLogRepository(db), logger)
	priceService := service.NewLicensePriceService(repository.NewLicensePriceRepository(db), validate, activityService, logger)
	notificationService := service.NewNotificationService(repository.NewNotificationRepository(db), redisClient, cfg.RealtimeChannel, natsConn, validate, logger)
	archivalPolicy := service.NewArchivalPolicy(studentRepo, examRepo, paymentRepo, priceService, notificationService, activityService, cfg.Currency, logger)

	studentService := service.NewStudentService(studentRepo, lessonRepo, examRepo, priceService, validate, activityService, logger)
	lessonService := service.NewLessonService(lessonRepo, studentRepo, peopleRepo, fleetRepo, validate, logger)
	examService := service.NewExamService(examRepo, studentRepo, archivalPolicy, validate, activityService, logger)
	paymentService := service.NewPaymentService(paymentRepo, studentRepo, archivalPolicy, validate, activityService, logger)
	peopleService := service.NewPeopleService(peopleRepo, validate, activityService, logger)
	fleetService := service.NewFleetService(fleetRepo, validate, activityService, logger)
	attendanceService := service.NewAttendanceService(repository.NewAttendanceRepository(db), studentRepo, validate, logger)
	chargeService := service.NewChargeService(repository.NewChargeRepository(db), validate, activityService, logger)
	userRepo := repository.NewUserRepository(db)
	officeService := service.NewOfficeService(repository.NewOfficeRepository(db), userRepo, validate, activityService, logger)
	dashboardService := service.NewDashboardService(repository.NewDashboardRepository(db), redisClient, cfg.DashboardCacheTTL, logger)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL, validate, logger)
	seedService := service.NewSeedService(repository.NewSeedRepository(db), cfg.SeedEnabled, cfg.SeedToken, logger)

	var uploadHandler *handler.UploadHandler
	uploader, err := cloud.New(cloud.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("uploads disabled")
	} else {
		uploadService := service.NewUploadService(uploader, repository.NewUploadRepository(db), cfg.UploadMaxSizeMB, logger)
		uploadHandler = handler.NewUploadHandler(uploadService, logger)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	notificationService.Start(ctx)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    (cfg.UploadMaxSizeMB + 1) * 1024 * 1024,
	})

	middleware.Register(app, middleware.Config{Logger: &logger, AllowOrigins: cfg.CORSAllowOrigins})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:         handler.NewAuthHandler(authService, logger),
		StudentHandler:      handler.NewStudentHandler(studentService, logger),
		TrainingHandler:     handler.NewTrainingHandler(lessonService, examService, paymentService, logger),
		LicensePriceHandler: handler.NewLicensePriceHandler(priceService, logger),
		NotificationHandler: handler.NewNotificationHandler(notificationService, logger, 30*time.Second),
		PeopleHandler:       handler.NewPeopleHandler(peopleService, logger),
		FleetHandler:        handler.NewFleetHandler(fleetService, logger),
		OperationsHandler:   handler.NewOperationsHandler(attendanceService, chargeService, logger),
		SchoolHandler:       handler.NewSchoolHandler(officeService, dashboardService, activityService, logger),
		AdminHandler:        handler.NewAdminHandler(officeService, dashboardService, logger),
		UploadHandler:       uploadHandler,
		SeedHandler:         handler.NewSeedHandler(seedService, logger),
		JWTMiddleware:       middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app, cancel)
}

func waitForShutdown(app *fiber.App, stopBackground context.CancelFunc) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()
	stopBackground()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
