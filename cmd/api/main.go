package main

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"

	"github.com/maariam000/DevCamper/internal/config"
	"github.com/maariam000/DevCamper/internal/db"
	"github.com/maariam000/DevCamper/internal/geocoder"
	"github.com/maariam000/DevCamper/internal/handlers"
	"github.com/maariam000/DevCamper/internal/mailer"
	"github.com/maariam000/DevCamper/internal/middleware"
	"github.com/maariam000/DevCamper/internal/router"
	"github.com/maariam000/DevCamper/internal/services"
	"github.com/maariam000/DevCamper/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}

	database, err := db.Connect(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logrus.Fatalf("MongoDB connection failed: %v", err)
	}
	logrus.Info("Connected to MongoDB")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.EnsureIndexes(ctx, database); err != nil {
		logrus.Fatalf("index bootstrap failed: %v", err)
	}
	cancel()

	var photos storage.PhotoStore
	switch cfg.StorageBackend {
	case "minio":
		photos, err = storage.NewMinioStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			logrus.Fatalf("MinIO connection failed: %v", err)
		}
		logrus.Info("Connected to MinIO")
	default:
		photos, err = storage.NewDiskStore(cfg.FileUploadPath)
		if err != nil {
			logrus.Fatalf("upload directory: %v", err)
		}
	}

	geo := geocoder.New(cfg.GeocoderURL, cfg.GeocoderKey)
	mail := mailer.New(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.FromEmail)

	authSvc := services.NewAuthService(database, cfg.JWTSecret, cfg.JWTExpire, cfg.ResetTokenExpire, mail)
	bootcampSvc := services.NewBootcampService(database, geo, photos, cfg.MaxFileSize)
	courseSvc := services.NewCourseService(database)
	reviewSvc := services.NewReviewService(database)
	userSvc := services.NewUserService(database)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(middleware.RequestID())
	app.Use(logger.New())
	app.Use(cors.New())

	router.Setup(app, router.Deps{
		DB:        database,
		JWTSecret: cfg.JWTSecret,
		Auth:      handlers.NewAuthHandler(authSvc),
		Bootcamps: handlers.NewBootcampHandler(bootcampSvc),
		Courses:   handlers.NewCourseHandler(courseSvc),
		Reviews:   handlers.NewReviewHandler(reviewSvc),
		Users:     handlers.NewUserHandler(userSvc),
	})

	logrus.Fatal(app.Listen(":" + cfg.Port))
}
