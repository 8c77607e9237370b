package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	integrationapp "github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/application/integration"
	orderapp "github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/application/order"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/integration"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/infrastructure/auth"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/infrastructure/cache"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/infrastructure/config"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/infrastructure/ecommerce"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/infrastructure/logger"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/infrastructure/persistence"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/infrastructure/scheduler"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/infrastructure/telemetry"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/interfaces/http/handler"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/interfaces/http/middleware"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/SneakersFlash/SneakersFlash2.0-Admin/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			SneakersFlash Admin API
//	@version		2.0
//	@description	Admin backend for SneakersFlash: order fulfillment and Ginee marketplace sync.

//	@contact.name	SneakersFlash Engineering
//	@contact.url	https://github.com/SneakersFlash/SneakersFlash2.0-Admin

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()

	// Telemetry: traces, metrics, and the zap -> OTLP log bridge
	tel := cfg.Telemetry
	providers, err := telemetry.Setup(ctx, telemetry.Settings{
		Endpoint:        tel.CollectorEndpoint,
		Insecure:        tel.Insecure,
		ServiceName:     tel.ServiceName,
		ServiceVersion:  cfg.App.Version,
		SamplingRatio:   tel.SamplingRatio,
		Traces:          tel.Enabled,
		Metrics:         tel.Enabled && tel.MetricsEnabled,
		MetricsInterval: tel.MetricsInterval,
		Logs:            tel.Enabled && tel.LogsEnabled,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	log = providers.BridgeLogger(log, logger.ParseLevel(cfg.Log.Level))
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting SneakersFlash admin",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", cfg.App.Version),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Database.LogLevel),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))
	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBName:          cfg.Database.DBName,
	}, log)

	db, err := persistence.NewDatabase(&cfg.Database,
		persistence.WithLogger(gormLog),
		persistence.WithHook(func(g *gorm.DB) error { return dbTracing.RegisterOtelGorm(g) }),
	)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected successfully")

	orderRepo := persistence.NewGormOrderRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	linkRepo := persistence.NewGormMarketplaceLinkRepository(db.DB)
	syncLogRepo := persistence.NewGormSyncLogRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Sync-all lease
	leaseFactory := cache.NewLeaseStoreFactory(cfg.Redis, cache.WithLogger(log))
	leases, err := leaseFactory.CreateStore(cfg.Marketplace.LeaseBackend, persistence.NewGormLeaseStore(db.DB))
	if err != nil {
		log.Fatal("Failed to initialize lease store", zap.Error(err))
	}

	// Redis client shared by revocation checks and the health endpoint
	var redisClient *redis.Client
	if store, ok := leases.(*cache.RedisLeaseStore); ok {
		redisClient = store.GetClient()
	} else if cfg.JWT.CheckRevocation {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	gateway := newMarketplaceGateway(cfg.Marketplace, log)

	syncMetrics, err := telemetry.NewSyncMetrics(providers.Meter("sneakersflash/sync"), log)
	if err != nil {
		log.Fatal("Failed to initialize sync metrics", zap.Error(err))
	}

	orchestrator := integrationapp.NewSyncOrchestrator(
		gateway, productRepo, linkRepo, syncLogRepo, orderRepo, leases, txScope,
		integrationapp.SyncConfig{
			DryRunOnly: cfg.Marketplace.DryRunOnly,
			Workers:    cfg.Marketplace.SyncAllWorkers,
			PageSize:   cfg.Marketplace.SyncAllPageSize,
			LeaseTTL:   cfg.Marketplace.LeaseTTL,
			ClaimTTL:   cfg.Marketplace.ClaimTTL,
		},
		integrationapp.WithMetrics(syncMetrics),
		integrationapp.WithLogger(log),
	)
	syncLogService := integrationapp.NewSyncLogService(syncLogRepo)

	orderService := orderapp.NewOrderService(orderRepo, log)
	orderService.SetOrderPusher(orchestrator, cfg.Marketplace.PushOrderOnTransition)
	orderService.SetMetrics(syncMetrics)

	var syncScheduler *scheduler.SyncAllScheduler
	if cfg.Marketplace.SyncAllInterval > 0 {
		schedCfg := scheduler.DefaultSyncAllSchedulerConfig()
		schedCfg.Interval = cfg.Marketplace.SyncAllInterval
		schedCfg.DryRun = cfg.Marketplace.DryRunOnly
		syncScheduler, err = scheduler.NewSyncAllScheduler(schedCfg, orchestrator, log.Named("sync-scheduler"))
		if err != nil {
			log.Fatal("Failed to create sync-all scheduler", zap.Error(err))
		}
		if err := syncScheduler.Start(ctx); err != nil {
			log.Fatal("Failed to start sync-all scheduler", zap.Error(err))
		}
		log.Info("Sync-all scheduler started", zap.Duration("interval", schedCfg.Interval))
	}

	// HTTP
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Order matters: request id first so every later layer can log it, and
	// tracing before the logger so log lines carry the trace id.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     providers.TracingEnabled(),
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.HTTPMetrics(providers))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	jwtConfig := middleware.DefaultJWTConfig(auth.NewJWTService(cfg.JWT))
	jwtConfig.Logger = log
	if cfg.JWT.CheckRevocation && redisClient != nil {
		jwtConfig.Revocations = auth.NewRedisTokenBlacklistWithClient(redisClient, "")
	}
	jwtAuth := middleware.JWTAuthMiddlewareWithConfig(jwtConfig)

	healthChecks := map[string]handler.HealthCheck{"database": db.Ping}
	if redisClient != nil {
		healthChecks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}
	healthHandler := handler.NewHealthHandler(cfg.App.Name, cfg.App.Version, healthChecks)
	engine.GET("/health", healthHandler.Health)

	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:     cfg.Swagger.Enabled,
			RequireAuth: cfg.Swagger.RequireAuth,
			AllowedIPs:  cfg.Swagger.AllowedIPs,
		}, jwtAuth),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	orderHandler := handler.NewOrderHandler(orderService)
	marketplaceHandler := handler.NewMarketplaceHandler(orchestrator, syncLogService)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(jwtAuth, middleware.TracingAttributeInjector())
	r.Register(
		router.OrderRoutes(orderHandler),
		router.MarketplaceRoutes(marketplaceHandler),
		router.ProductRoutes(marketplaceHandler),
	)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if syncScheduler != nil {
		if err := syncScheduler.Stop(shutdownCtx); err != nil {
			log.Error("Error stopping sync-all scheduler", zap.Error(err))
		}
	}
	// A running sync-all releases its lease when it finishes; wait so the
	// next instance does not have to wait out the TTL.
	if err := orchestrator.Wait(shutdownCtx); err != nil {
		log.Warn("Sync-all still running at shutdown; lease will expire", zap.Error(err))
	}

	if closer, ok := leases.(interface{ Close() error }); ok {
		_ = closer.Close()
	} else if redisClient != nil {
		_ = redisClient.Close()
	}
	if err := db.Close(); err != nil {
		log.Error("Error closing database", zap.Error(err))
	}

	if err := providers.Shutdown(shutdownCtx); err != nil {
		log.Warn("Telemetry shutdown failed", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// newMarketplaceGateway returns the Ginee adapter, or a gateway that refuses
// every call when credentials are missing so the admin API still serves
// orders and logs.
func newMarketplaceGateway(cfg config.MarketplaceConfig, log *zap.Logger) integration.MarketplaceGateway {
	if !cfg.IsConfigured() {
		log.Warn("Marketplace credentials not configured; sync endpoints will fail",
			zap.String("provider", cfg.Provider))
		return ecommerce.NewUnconfiguredGateway(cfg.Provider)
	}

	gineeCfg := ecommerce.NewGineeConfig(cfg.AccessKey, cfg.SecretKey)
	gineeCfg.APIBaseURL = cfg.BaseURL
	gineeCfg.Country = cfg.Country
	gineeCfg.Timeout = cfg.Timeout

	adapter, err := ecommerce.NewGineeAdapter(gineeCfg)
	if err != nil {
		log.Fatal("Invalid marketplace configuration", zap.Error(err))
	}
	return adapter.WithHTTPClient(&http.Client{
		Timeout:   gineeCfg.Timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	})
}
