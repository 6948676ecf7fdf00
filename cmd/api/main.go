package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/rs/zerolog"

	"lightbnb_backend/internal/controller"
	"lightbnb_backend/internal/middleware"
	"lightbnb_backend/internal/model"
	"lightbnb_backend/internal/repository"
	"lightbnb_backend/pkg/config"
	"lightbnb_backend/pkg/cron"
	"lightbnb_backend/pkg/database"
	"lightbnb_backend/pkg/logger"
	"lightbnb_backend/pkg/seed"
	"lightbnb_backend/pkg/utils/cloudflare"
	"lightbnb_backend/pkg/utils/jwt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("Could not load config")
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	db, err := database.Open(cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not connect to database")
	}

	err = database.MigrateDatabase(db, log,
		&model.User{},
		&model.Property{},
		&model.Reservation{},
		&model.PropertyReview{},
	)
	if err != nil {
		log.Warn().Err(err).Msg("Migration warning")
	}

	if cfg.Server.Seed {
		if err := seed.Seed(db, log); err != nil {
			log.Fatal().Err(err).Msg("Could not seed demo data")
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("Could not get database instance")
	}
	scheduler, err := cron.Start(cfg.Jobs.PoolStatsSchedule, cron.NewPoolStatsJob(sqlDB, log))
	if err != nil {
		log.Fatal().Err(err).Msg("Could not start cron")
	}
	defer scheduler.Stop()

	var photos controller.PhotoStore
	if cfg.Storage.Enabled() {
		client, err := cloudflare.NewS3Client(context.Background(), cfg.Storage)
		if err != nil {
			log.Fatal().Err(err).Msg("Could not initialize R2 client")
		}
		photos = cloudflare.NewPhotoStore(client, cfg.Storage.BucketName, cfg.Storage.PublicURL)
	} else {
		log.Warn().Msg("R2 storage is not configured, photo uploads are disabled")
	}

	issuer := jwt.NewIssuer(cfg.JWT.Secret, cfg.JWT.TTL)
	users := repository.NewUserRepository(db)
	properties := repository.NewPropertyRepository(db)
	reservations := repository.NewReservationRepository(db)

	app := controller.NewApp()
	app.Use(fiberlogger.New())
	app.Use(cors.New())

	controller.SetupRoutes(app, controller.Controllers{
		Auth:         controller.NewAuthController(users, issuer, log),
		Properties:   controller.NewPropertyController(properties, log),
		Reservations: controller.NewReservationController(reservations, properties, log),
		Uploads:      controller.NewUploadController(photos, cfg.Storage.MaxFileSize, log),
	}, middleware.AuthMiddleware(issuer))

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info().Msg("Shutting down")
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("Shutdown failed")
		}
	}()

	log.Info().Str("port", cfg.Server.Port).Msg("Server is running")
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}

	if err := sqlDB.Close(); err != nil {
		log.Error().Err(err).Msg("Could not close database")
	}
}
