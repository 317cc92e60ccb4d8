package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	config "github.com/anjiri1684/tutor_cards/configs"
	"github.com/anjiri1684/tutor_cards/database"
	"github.com/anjiri1684/tutor_cards/events"
	"github.com/anjiri1684/tutor_cards/handlers"
	"github.com/anjiri1684/tutor_cards/logger"
	"github.com/anjiri1684/tutor_cards/media"
	"github.com/anjiri1684/tutor_cards/notifications"
	"github.com/anjiri1684/tutor_cards/payments"
	"github.com/anjiri1684/tutor_cards/routes"
	"github.com/anjiri1684/tutor_cards/services"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.Environment)

	if cfg.JWTSecret == "" {
		logger.Log.Fatal("🔥 JWT_SECRET is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	store, err := database.Open(ctx, cfg)
	cancel()
	if err != nil {
		logger.Log.WithError(err).Fatal("🔥 Failed to open store")
	}

	uploader, err := newUploader(cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("🔥 Failed to set up media storage")
	}

	provider, err := payments.NewProvider(cfg.PaymentProvider, payments.PayPalConfig{
		APIBaseURL:   cfg.PayPalAPIBaseURL,
		ClientID:     cfg.PayPalClientID,
		ClientSecret: cfg.PayPalClientSecret,
	})
	if err != nil {
		logger.Log.WithError(err).Fatal("🔥 Failed to set up payments")
	}

	producer := events.NewProducer(cfg.KafkaBroker, cfg.KafkaTopic, cfg.KafkaUsername, cfg.KafkaPassword)
	mailer := notifications.NewBrevoService(cfg.BrevoAPIKey, cfg.EmailSender, cfg.EmailSenderName)

	ledger := services.NewNotificationService(store, producer, mailer)
	h := &handlers.Handler{
		Cards:         services.NewCardService(store),
		Teachers:      services.NewTeacherService(store),
		Students:      services.NewStudentService(store),
		Notifications: ledger,
		Materials:     services.NewTrialMaterialService(store),
		Enrollments: services.NewEnrollmentService(store, store, provider, ledger, services.Price{
			Amount:   cfg.CoursePrice,
			Currency: cfg.CourseCurrency,
		}),
		Uploader:      uploader,
		PublicBaseURL: cfg.PublicBaseURL,
	}

	app := fiber.New(fiber.Config{
		Prefork:       false,
		AppName:       "Tutor Cards",
		CaseSensitive: true,
		StrictRouting: true,
		BodyLimit:     media.MaxUploadSize + 1024*1024,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			logger.Log.Errorf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.CORSOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Welcome to Tutor Cards API",
		})
	})

	routes.Setup(app, h, cfg.JWTSecret, cfg.UploadDir)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logger.Log.Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Log.WithError(err).Error("Server shutdown failed")
		}
	}()

	logger.Log.Infof("✅ Server is running on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Log.WithError(err).Error("🔥 Server stopped")
	}

	if err := producer.Close(); err != nil {
		logger.Log.WithError(err).Warn("Failed to close Kafka producer")
	}
	closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer closeCancel()
	if err := store.Close(closeCtx); err != nil {
		logger.Log.WithError(err).Warn("Failed to close store")
	}
}

func newUploader(cfg *config.AppConfig) (media.Uploader, error) {
	switch cfg.MediaDriver {
	case "cloudinary":
		return media.NewCloudinaryUploader(cfg.CloudinaryURL, cfg.CloudinaryFolder)
	default:
		return media.NewLocalUploader(cfg.UploadDir), nil
	}
}
