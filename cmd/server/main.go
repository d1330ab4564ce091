package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitstudio/coach-app/internal/api"
	"fitstudio/coach-app/internal/config"
	"fitstudio/coach-app/internal/repository/mongo"
	"fitstudio/coach-app/internal/service"
	"fitstudio/coach-app/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.WithError(err).Fatal("could not load config")
	}
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		log.SetLevel(level)
	}
	if cfg.Log.JSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	log.Info("configuration loaded")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database, log)
	if err != nil {
		log.WithError(err).Fatal("could not connect to MongoDB")
	}
	defer func() {
		log.Info("disconnecting MongoDB")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.WithError(err).Error("failed to disconnect MongoDB")
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureProgramIndexes(ctx, appDB.Collection("program_templates"))
		mongo.EnsureDietTemplateIndexes(ctx, appDB.Collection("diet_templates"))
		mongo.EnsurePatternIndexes(ctx, appDB.Collection("client_patterns"))
		mongo.EnsureWorkoutSessionIndexes(ctx, appDB.Collection("workout_sessions"))
		mongo.EnsureDietLogIndexes(ctx, appDB.Collection("diet_logs"))
		mongo.EnsureWeightLogIndexes(ctx, appDB.Collection("weight_logs"))
		log.Info("index creation completed")
	}()

	// --- Initialize Storage ---
	fileStorage, err := storage.NewS3Storage(cfg.S3, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize S3 storage")
	}

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	programRepo := mongo.NewMongoProgramRepository(appDB)
	dietTemplateRepo := mongo.NewMongoDietTemplateRepository(appDB)
	patternRepo := mongo.NewMongoPatternRepository(appDB)
	sessionRepo := mongo.NewMongoWorkoutSessionRepository(appDB)
	dietLogRepo := mongo.NewMongoDietLogRepository(appDB)
	weightLogRepo := mongo.NewMongoWeightLogRepository(appDB)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, patternRepo, cfg.JWT.Secret, cfg.JWT.Expiration, log)
	trainerService := service.NewTrainerService(userRepo, patternRepo, log)
	programService := service.NewProgramService(programRepo, dietTemplateRepo)
	patternService := service.NewPatternService(userRepo, patternRepo, programRepo, dietTemplateRepo, log)
	insightsService := service.NewInsightsService(userRepo, patternRepo, programRepo, sessionRepo, dietLogRepo, weightLogRepo)
	logService := service.NewLogService(sessionRepo, dietLogRepo, weightLogRepo, patternRepo, fileStorage, log)

	// --- Initialize Gin Engine ---
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	api.SetupRoutes(router,
		authService, trainerService, programService,
		patternService, insightsService, logService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.WithField("address", cfg.Server.Address).Info("server starting")

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("listen and serve error")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server exiting")
}
