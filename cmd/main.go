package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"github.com/hibiken/asynq"

	"salonstock/internal/caching"
	"salonstock/internal/config"
	"salonstock/internal/handlers"
	"salonstock/internal/jobs"
	"salonstock/internal/jobs/background"
	"salonstock/internal/middleware"
	"salonstock/internal/repositories"
	"salonstock/internal/services"
	"salonstock/internal/upstream"
	"salonstock/pkg/database"
)

const version = "1.0.0"

func main() {
	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Upstream integration configuration
	configPath := os.Getenv("UPSTREAM_CONFIG")
	if configPath == "" {
		configPath = "upstream.toml"
	}
	cfg, err := config.LoadUpstreamConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load upstream config %s: %v", configPath, err)
	}
	if cfg.Upstream.APIEndpoint == "" {
		log.Fatal("upstream.api_endpoint is required in the config file")
	}

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		log.Printf("WARNING: Using generated JWT secret: %s", jwtSecret)
	}

	// Redis configuration; environment overrides the config file
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = cfg.Queuing.RedisAddr
	}
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	if redisPassword == "" {
		redisPassword = cfg.Queuing.RedisPassword
	}
	redisDB := cfg.Queuing.RedisDB
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin" // Default for development
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin" // Default for development
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	minioSvc, err := services.NewMinioService(minioEndpoint, minioAccessKey, minioSecretKey, useSSL)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO service: %v", err)
	}

	// Create repositories
	limitsRepo := repositories.NewStockLimitRepo(pool)
	alertsRepo := repositories.NewStockAlertRepo(pool)

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Create upstream client and services
	upstreamClient := upstream.NewClient(cfg)

	dashboardSvc := services.NewDashboardService(upstreamClient, cacheSvc, limitsRepo, cfg.Sync)
	limitsSvc := services.NewStockLimitService(limitsRepo, cacheSvc)
	alertSvc := jobs.NewLowStockAlertService(dashboardSvc, alertsRepo, cacheSvc)

	// Report queue
	redisOpt := asynq.RedisClientOpt{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       redisDB,
	}

	asynqClient := asynq.NewClient(redisOpt)
	defer asynqClient.Close()

	reportGen := jobs.NewReportGenerator(dashboardSvc, minioSvc, cacheSvc, asynqClient, os.Getenv("REPORTS_BUCKET"))

	concurrency := cfg.Queuing.Concurrency
	if concurrency <= 0 {
		concurrency = 5
	}
	queues := map[string]int{"reports": 5, "default": 1}
	if len(cfg.Queuing.QueuePriorities) > 0 {
		queues = cfg.Queuing.QueuePriorities
	}

	asynqServer := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: concurrency,
		Queues:      queues,
	})
	mux := asynq.NewServeMux()
	mux.HandleFunc(jobs.TypeReportGenerate, reportGen.ReportGenerateHandler)

	go func() {
		if err := asynqServer.Run(mux); err != nil {
			log.Fatalf("Failed to run task queue server: %v", err)
		}
	}()
	defer asynqServer.Shutdown()

	// Background scheduler
	scheduler := background.NewJobScheduler(dashboardSvc, alertSvc, limitsRepo, cfg.Sync)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start job scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Create handlers
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc, version)
	dashboardHandlers := handlers.NewDashboardHandlers(dashboardSvc, cfg.Sync)
	limitHandlers := handlers.NewLimitHandlers(limitsSvc)
	reportHandlers := handlers.NewReportHandlers(reportGen, cfg.Sync)
	jobHandlers := handlers.NewJobHandlers(alertSvc, scheduler)

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Version middleware
	versionMiddleware := middleware.NewVersionMiddleware()
	e.Use(versionMiddleware.APIVersionResolver())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)
	e.GET("/metrics", healthHandlers.GetMetrics)

	// API routes
	v1 := e.Group("/v1")
	v1.Use(versionMiddleware.VersionHeader("v1"))

	// Protected routes (require JWT)
	protected := v1.Group("")
	protected.Use(echojwt.WithConfig(middleware.JWTConfig(jwtSecret)))

	// Dashboard routes
	protected.GET("/dashboard", dashboardHandlers.GetDashboard)
	protected.POST("/dashboard/refresh", dashboardHandlers.RefreshDashboard)

	// Stock limit routes
	protected.GET("/limits", limitHandlers.ListLimits)
	protected.POST("/limits", limitHandlers.CreateLimit)
	protected.GET("/limits/:id", limitHandlers.GetLimit)
	protected.PUT("/limits/:id", limitHandlers.UpdateLimit)
	protected.DELETE("/limits/:id", limitHandlers.DeleteLimit)

	// Alert routes
	protected.GET("/alerts", jobHandlers.GetStockAlerts)
	protected.POST("/alerts/check", jobHandlers.TriggerLowStockCheck)

	// Report routes
	protected.POST("/reports", reportHandlers.CreateReport)
	protected.GET("/reports/:id", reportHandlers.GetReport)

	// Job status
	protected.GET("/jobs/status", jobHandlers.GetJobStatus)

	// Start server
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("Salonstock server v%s starting on port %d", version, port)

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
