package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"romlerk-backend-go/internal/api"
	"romlerk-backend-go/internal/config"
	"romlerk-backend-go/internal/core"
	"romlerk-backend-go/internal/db"
	"romlerk-backend-go/internal/firebase"
	"romlerk-backend-go/internal/metrics"
	"romlerk-backend-go/internal/middleware"
	"romlerk-backend-go/internal/payway"
	"romlerk-backend-go/internal/storage"
	"romlerk-backend-go/pkg/database"
)

func newLogger() (*zap.Logger, error) {
	if os.Getenv("GIN_MODE") == "release" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func newObjectStore(ctx context.Context, cfg *config.Config, clients *firebase.Clients) (storage.ObjectStore, error) {
	if cfg.ObjectStore == config.ObjectStoreMinIO {
		return storage.NewMinIOStore(ctx, storage.MinIOConfig{
			Endpoint:  cfg.MinIOEndpoint,
			AccessKey: cfg.MinIOAccessKey,
			SecretKey: cfg.MinIOSecretKey,
			Bucket:    cfg.MinIOBucket,
			UseSSL:    cfg.MinIOUseSSL,
		})
	}
	return storage.NewFirebaseStore(clients.Bucket, cfg.FirebaseStorageBucket)
}

func main() {
	// In production, environment variables are set directly.
	if os.Getenv("GIN_MODE") != "release" {
		_ = godotenv.Load()
	}

	logger, err := newLogger()
	if err != nil {
		panic("failed to initialize zap logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx := context.Background()
	clients, err := firebase.NewClients(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize Firebase", zap.Error(err))
	}
	defer func() {
		if err := clients.Close(); err != nil {
			logger.Error("Failed to close Firebase clients", zap.Error(err))
		}
	}()

	store, err := database.NewFirestoreStore(clients.Firestore)
	if err != nil {
		logger.Fatal("Failed to create document store", zap.Error(err))
	}
	objects, err := newObjectStore(ctx, cfg, clients)
	if err != nil {
		logger.Fatal("Failed to create object store", zap.Error(err), zap.String("backend", cfg.ObjectStore))
	}

	userRepo, err := db.NewUserRepository(store)
	if err != nil {
		logger.Fatal("Failed to create user repository", zap.Error(err))
	}
	profileRepo, err := db.NewProfileRepository(store)
	if err != nil {
		logger.Fatal("Failed to create profile repository", zap.Error(err))
	}
	documentRepo, err := db.NewDocumentRepository(store)
	if err != nil {
		logger.Fatal("Failed to create document repository", zap.Error(err))
	}
	paymentRepo, err := db.NewPaymentRepository(store)
	if err != nil {
		logger.Fatal("Failed to create payment repository", zap.Error(err))
	}
	owners, err := db.NewOwnerResolver(store)
	if err != nil {
		logger.Fatal("Failed to create owner resolver", zap.Error(err))
	}

	gateway, err := payway.NewClient(cfg.PayWayEndpoint, nil, logger)
	if err != nil {
		logger.Fatal("Failed to create PayWay client", zap.Error(err))
	}
	verifier, err := middleware.NewFirebaseVerifier(clients.Auth)
	if err != nil {
		logger.Fatal("Failed to create token verifier", zap.Error(err))
	}

	services := api.Services{
		Users:     core.NewUserService(userRepo, logger),
		Profiles:  core.NewProfileService(profileRepo, logger),
		Documents: core.NewDocumentService(documentRepo, logger),
		Uploads:   core.NewUploadService(objects, logger),
		Payments: core.NewPaymentService(gateway, paymentRepo, core.PaymentConfig{
			MerchantID:  cfg.PayWayMerchantID,
			APIKey:      cfg.PayWayAPIKey,
			CallbackURL: cfg.PayWayCallbackURL,
		}, logger),
		Callbacks: core.NewCallbackService(paymentRepo, owners, cfg.BaseURL, logger),
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	if cfg.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.CORSMiddleware(cfg.ClientURL))
	router.Use(middleware.Metrics())

	api.SetupRoutes(router, services, middleware.NewAuthMiddleware(verifier, logger), api.RouterOptions{
		MaxBodyBytes:   cfg.MaxBodyBytes,
		MetricsHandler: promhttp.Handler(),
	}, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.Port), zap.String("mode", gin.Mode()),
			zap.String("object_store", cfg.ObjectStore), zap.String("firestore_db", cfg.FirestoreDatabaseID))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to run server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited")
}
