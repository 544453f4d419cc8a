package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"carehome/internal/config"
	"carehome/internal/database"
	"carehome/internal/middleware"
	"carehome/internal/modules/auth"
	"carehome/internal/modules/booking"
	"carehome/internal/modules/caregiver"
	"carehome/internal/modules/emergency"
	"carehome/internal/modules/notification"
	"carehome/internal/modules/vitals"
	jwtsvc "carehome/internal/pkg/jwt"
	"carehome/internal/pkg/logger"
	"carehome/internal/pkg/mailer"
	"carehome/internal/repository"
)

func main() {
	cfg := config.Load()
	if cfg.JWT.Secret == "" {
		log.Fatal("JWT_SECRET is empty")
	}

	zlog, err := logger.New(cfg.Server.GinMode)
	if err != nil {
		log.Fatal(err)
	}
	defer zlog.Sync()

	gin.SetMode(cfg.Server.GinMode)

	db, err := database.Connect(cfg.Server.DatabaseURL)
	if err != nil {
		zlog.Fatal("database connect failed", zap.Error(err))
	}
	if err := repository.Migrate(db); err != nil {
		zlog.Fatal("migration failed", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db)
	caregiverRepo := repository.NewCaregiverRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	vitalRepo := repository.NewVitalRepository(db)

	j := jwtsvc.New(cfg.JWT.Secret, cfg.JWT.TTL)

	var mail mailer.Mailer
	if cfg.SMTP.Configured() {
		mail = mailer.NewSMTP(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From, zlog)
		zlog.Info("smtp mailer enabled", zap.String("host", cfg.SMTP.Host))
	} else {
		mail = mailer.NewConsole(zlog)
		zlog.Info("smtp not configured, using console mailer")
	}

	hub := notification.NewHub()
	defer hub.Close()

	notificationService := notification.NewService(
		notificationRepo, userRepo, mail, hub, zlog,
		cfg.App.FrontendURL, cfg.SMTP.Timeout,
	)
	notificationHandler := notification.NewHandler(notificationService, hub, zlog)

	authService := auth.NewService(userRepo, caregiverRepo, j)
	authHandler := auth.NewHandler(authService)

	bookingService := booking.NewService(bookingRepo, caregiverRepo, notificationService)
	bookingHandler := booking.NewHandler(bookingService)

	caregiverService := caregiver.NewService(caregiverRepo)
	caregiverHandler := caregiver.NewHandler(caregiverService)

	emergencyService := emergency.NewService(
		userRepo, caregiverRepo, bookingService, bookingRepo, notificationService, zlog,
	)
	emergencyHandler := emergency.NewHandler(emergencyService)

	vitalsService := vitals.NewService(vitalRepo)
	vitalsHandler := vitals.NewHandler(vitalsService)

	r := gin.Default()
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			caregiverHandler.RegisterRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			emergencyHandler.RegisterRoutes(protected, middleware.StaffOnly())
			notificationHandler.RegisterRoutes(protected)
			vitalsHandler.RegisterRoutes(protected)
		}
	}

	ws := r.Group("/")
	ws.Use(middleware.Auth(j))
	notificationHandler.RegisterStreamRoutes(ws)

	zlog.Info("server starting", zap.String("port", cfg.Server.Port))
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
