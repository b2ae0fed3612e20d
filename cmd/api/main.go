package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	handlerHttp "github.com/mikiasgoitom/TakeTravel/internal/handler/http"
	redisclient "github.com/mikiasgoitom/TakeTravel/internal/infrastructure/cache"
	"github.com/mikiasgoitom/TakeTravel/internal/infrastructure/config"
	database "github.com/mikiasgoitom/TakeTravel/internal/infrastructure/database"
	"github.com/mikiasgoitom/TakeTravel/internal/infrastructure/external_services"
	"github.com/mikiasgoitom/TakeTravel/internal/infrastructure/jwt"
	"github.com/mikiasgoitom/TakeTravel/internal/infrastructure/logger"
	"github.com/mikiasgoitom/TakeTravel/internal/infrastructure/metrics"
	passwordservice "github.com/mikiasgoitom/TakeTravel/internal/infrastructure/password_service"
	randomgenerator "github.com/mikiasgoitom/TakeTravel/internal/infrastructure/random_generator"
	"github.com/mikiasgoitom/TakeTravel/internal/infrastructure/repository/mongodb"
	"github.com/mikiasgoitom/TakeTravel/internal/infrastructure/scheduler"
	"github.com/mikiasgoitom/TakeTravel/internal/infrastructure/store"
	"github.com/mikiasgoitom/TakeTravel/internal/infrastructure/uuidgen"
	"github.com/mikiasgoitom/TakeTravel/internal/infrastructure/validator"
	"github.com/mikiasgoitom/TakeTravel/internal/usecase"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	appLogger := logger.New(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Establish MongoDB connection
	mongoClient, err := database.NewMongoDBClient(ctx, cfg.MongoDB.URI, cfg.MongoDB.Database)
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			appLogger.Warnf("mongo disconnect: %v", err)
		}
	}()
	if err := mongoClient.EnsureIndexes(ctx); err != nil {
		appLogger.Fatalf("Failed to create indexes: %v", err)
	}

	// Register custom validators
	validator.RegisterCustomValidators()

	// Dependency Injection: Repositories
	userRepo := mongodb.NewMongoUserRepository(mongoClient.Collection(database.UsersCollection))
	tokenRepo := mongodb.NewTokenRepository(mongoClient.Collection(database.TokensCollection))
	packageRepo := mongodb.NewPackageRepository(mongoClient.Collection(database.PackagesCollection))
	bookingRepo := mongodb.NewBookingRepository(mongoClient.DB)
	contactRepo := mongodb.NewContactRepository(mongoClient.Collection(database.ContactsCollection))

	// Dependency Injection: Services
	hasher := passwordservice.NewHasher()
	jwtService := jwt.NewJWTService(jwt.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Expiry))
	mailService := external_services.NewEmailService(cfg.Email.Host, cfg.Email.Port, cfg.Email.Username, cfg.Email.Password, cfg.Email.From)
	if !mailService.Configured() {
		appLogger.Warnf("SMTP is not configured; emails will fail to send")
	}
	randomGenerator := randomgenerator.NewRandomGenerator()
	appValidator := validator.NewValidator()
	uuidGenerator := uuidgen.NewGenerator()
	appMetrics := metrics.New()

	// Dependency Injection: Usecases
	emailUsecase := usecase.NewEmailVerificationUseCase(tokenRepo, userRepo, mailService, hasher, randomGenerator, uuidGenerator, cfg, appLogger)
	userUsecase := usecase.NewUserUsecase(userRepo, tokenRepo, emailUsecase, hasher, jwtService, mailService, appLogger, cfg, appValidator, uuidGenerator, randomGenerator)
	userUsecase.SetMetrics(appMetrics)
	guideUsecase := usecase.NewGuideUsecase(userRepo, appLogger)
	packageUsecase := usecase.NewPackageUsecase(packageRepo, appValidator, uuidGenerator, appLogger)
	bookingUsecase := usecase.NewBookingUsecase(bookingRepo, packageRepo, userRepo, uuidGenerator, appLogger)
	bookingUsecase.SetMetrics(appMetrics)
	contactUsecase := usecase.NewContactUsecase(contactRepo, appValidator, uuidGenerator, appLogger)

	healthChecks := map[string]handlerHttp.HealthCheck{"mongodb": mongoClient.Ping}

	// Optional Dependency Injection: Redis cache
	if cfg.Redis.URL != "" {
		rdb, err := redisclient.NewRedisFromURL(ctx, cfg.Redis.URL)
		if err != nil {
			appLogger.Warnf("Redis unavailable, serving the catalog uncached: %v", err)
		} else {
			defer redisclient.Close(rdb)
			packageUsecase.SetPackageCache(store.NewPackageCacheStore(rdb, cfg.Redis.CatalogTTL))
			healthChecks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		}
	}

	if cfg.HasAdminSeed() {
		if _, err := userUsecase.SeedAdmin(ctx, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			appLogger.Fatalf("Failed to seed admin: %v", err)
		}
	}

	go scheduler.NewReconciler(bookingUsecase, appMetrics, appLogger, cfg.Booking.ReconcileInterval).Run(ctx)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger())

	// Setup API routes
	appRouter := handlerHttp.NewRouter(handlerHttp.Dependencies{
		UserUsecase:    userUsecase,
		EmailUsecase:   emailUsecase,
		GuideUsecase:   guideUsecase,
		PackageUsecase: packageUsecase,
		BookingUsecase: bookingUsecase,
		ContactUsecase: contactUsecase,
		Logger:         appLogger,
		Metrics:        appMetrics,
		HealthChecks:   healthChecks,
	}, handlerHttp.Options{
		BaseURL:     cfg.App.BaseURL,
		Development: cfg.IsDevelopment(),
		Cookie:      handlerHttp.CookieConfig{Secure: cfg.Cookie.Secure, Domain: cfg.Cookie.Domain},
		Google: handlerHttp.GoogleOAuthConfig{
			ClientID:     cfg.OAuth.GoogleClientID,
			ClientSecret: cfg.OAuth.GoogleClientSecret,
		},
		AllowedOrigins:        cfg.CORS.AllowedOrigins,
		RequestsPerSecond:     cfg.RateLimit.RequestsPerSecond,
		AuthRequestsPerSecond: cfg.RateLimit.AuthRequestsPerSecond,
	})
	appRouter.SetupRoutes(router)

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start the server
	go func() {
		appLogger.Infof("Server running on %s (%s)", srv.Addr, cfg.App.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	appLogger.Infof("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Errorf("graceful shutdown: %v", err)
	}
}
