package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/divyanshus2404/Unimarket/internal/adapter/httpapi"
	natsAdapter "github.com/divyanshus2404/Unimarket/internal/adapter/messaging/nats"
	mongoRepo "github.com/divyanshus2404/Unimarket/internal/adapter/repository/mongodb"
	redisRepo "github.com/divyanshus2404/Unimarket/internal/adapter/repository/redis"
	s3Storage "github.com/divyanshus2404/Unimarket/internal/adapter/storage/s3"
	"github.com/divyanshus2404/Unimarket/internal/config"
	"github.com/divyanshus2404/Unimarket/internal/mailer"
	"github.com/divyanshus2404/Unimarket/internal/platform/logger"
	"github.com/divyanshus2404/Unimarket/internal/platform/metrics"
	"github.com/divyanshus2404/Unimarket/internal/platform/tracer"
	"github.com/divyanshus2404/Unimarket/internal/usecase"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

func main() {
	// Load .env file (optional, for local development)
	if err := godotenv.Load(); err != nil {
		fmt.Printf("INFO: .env file not found or error loading: %v. Relying on OS environment variables.\n", err)
	}

	appLogger := logger.NewLogger()
	appLogger.Info("Application starting...")

	cfg, err := config.LoadConfig(appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load configuration", zap.Error(err))
	}
	appLogger.Info("Configuration loaded successfully",
		zap.String("http_port", cfg.HTTPPort),
		zap.Bool("mongo_uri_set", cfg.MongoURI != ""),
		zap.String("nats_url", cfg.NATSURL),
		zap.String("prometheus_port", cfg.PrometheusMetricsPort),
	)

	// OpenTelemetry tracer
	var tp *sdktrace.TracerProvider
	if cfg.OTLPEndpoint != "" {
		tp = tracer.InitTracer(cfg.ServiceName, cfg.OTLPEndpoint, appLogger)
		defer func() {
			ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancelShutdown()
			if err := tp.Shutdown(ctxShutdown); err != nil {
				appLogger.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
		appLogger.Info("OpenTelemetry Tracer initialized.")
	} else {
		appLogger.Info("OpenTelemetry Tracer not initialized (OTEL_EXPORTER_OTLP_ENDPOINT not set).")
	}

	// MongoDB
	mongoClient, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		appLogger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			appLogger.Error("Error disconnecting from MongoDB", zap.Error(err))
		}
	}()
	ctxPingMongo, cancelPingMongo := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelPingMongo()
	if err := mongoClient.Ping(ctxPingMongo, nil); err != nil {
		appLogger.Fatal("Failed to ping MongoDB", zap.Error(err))
	}
	appLogger.Info("Successfully connected and pinged MongoDB.")
	db := mongoClient.Database(cfg.MongoDatabase)

	// Redis
	redisClient, err := redisRepo.NewClient(context.Background(), redisRepo.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			appLogger.Error("Error closing Redis client", zap.Error(err))
		}
	}()
	appLogger.Info("Successfully connected to Redis.")

	// NATS
	natsPublisher, err := natsAdapter.NewPublisher(cfg.NATSURL, appLogger, cfg.ServiceName)
	if err != nil {
		appLogger.Fatal("Failed to initialize NATS publisher", zap.Error(err))
	}
	defer natsPublisher.Close()

	// Repositories
	productRepo, err := mongoRepo.NewProductRepository(db, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize ProductRepository", zap.Error(err))
	}
	reviewRepo, err := mongoRepo.NewReviewRepository(db, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize ReviewRepository", zap.Error(err))
	}
	userRepo, err := mongoRepo.NewUserRepository(db, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize UserRepository", zap.Error(err))
	}
	favoriteRepo, err := mongoRepo.NewFavoriteRepository(db, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize FavoriteRepository", zap.Error(err))
	}
	cartRepo := redisRepo.NewCartRepository(redisClient)
	productCache := redisRepo.NewProductCache(redisClient)

	// Photo storage; the service runs without it when S3 is not configured.
	var photoStorage usecase.Storage = usecase.DisabledStorage{}
	if cfg.S3Endpoint != "" {
		storage, err := s3Storage.NewStorage(context.Background(), s3Storage.Config{
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			UseSSL:    cfg.S3UseSSL,
		}, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize S3 storage", zap.Error(err))
		}
		photoStorage = storage
	} else {
		appLogger.Warn("S3_ENDPOINT not set; photo uploads will fail")
	}

	// Mailer
	var sellerMailer usecase.Mailer
	if cfg.SMTPHost != "" && cfg.SMTPEmail != "" {
		sellerMailer = mailer.NewSMTPMailer(mailer.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Email:    cfg.SMTPEmail,
			Password: cfg.SMTPPassword,
		})
		appLogger.Info("SMTP mailer initialized.")
	} else {
		sellerMailer = mailer.Noop{}
		appLogger.Info("SMTP not configured; seller emails disabled.")
	}

	// Usecases
	productUC := usecase.NewProductUsecase(productRepo, userRepo, natsPublisher, sellerMailer, appLogger)
	reviewUC := usecase.NewReviewUsecase(reviewRepo, productRepo, userRepo, natsPublisher, sellerMailer, appLogger)
	userUC := usecase.NewUserUsecase(userRepo, cfg.JWTSecret, cfg.TokenTTL, appLogger)
	favoriteUC := usecase.NewFavoriteUsecase(favoriteRepo, productRepo, appLogger)
	photoUC := usecase.NewPhotoUsecase(productRepo, photoStorage, appLogger)
	cartUC := usecase.NewCartUsecase(cartRepo, productCache, productRepo, appLogger, usecase.CartUsecaseConfig{
		CartTTL:         cfg.CartTTL,
		ProductCacheTTL: cfg.ProductCacheTTL,
	})

	// Metrics
	metricsManager := metrics.NewMetricsManager(cfg.ServiceName)
	if cfg.PrometheusMetricsPort != "" {
		go func() {
			appLogger.Info("Starting Prometheus metrics server", zap.String("port", cfg.PrometheusMetricsPort))
			if err := metrics.StartMetricsServer(cfg.PrometheusMetricsPort, appLogger, metricsManager.Registry); err != nil && !errors.Is(err, http.ErrServerClosed) {
				appLogger.Error("Prometheus metrics server failed", zap.Error(err))
			}
		}()
	}

	// HTTP server
	router := httpapi.NewRouter(httpapi.Handlers{
		Products: httpapi.NewProductHandler(productUC, photoUC, metricsManager, appLogger),
		Cart:     httpapi.NewCartHandler(cartUC, metricsManager, appLogger),
		Reviews:  httpapi.NewReviewHandler(reviewUC, metricsManager, appLogger),
		Users:    httpapi.NewUserHandler(userUC, favoriteUC, appLogger),
	}, cfg.JWTSecret, appLogger, metricsManager)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Starting HTTP server", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	appLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server shutdown error", zap.Error(err))
	}
	appLogger.Info("Application shutting down...")
}
