// Package main provides the main entry point for the Deskquote pricing engine
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"deskquote/app/handlers"
	"deskquote/app/middleware"
	"deskquote/app/router"
	"deskquote/app/services"
	businessflow "deskquote/business_flow"
	"deskquote/config"
	"deskquote/models"
	"deskquote/repository"

	"github.com/redis/go-redis/v9"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Application represents the main application structure
type Application struct {
	router    router.Router
	config    *config.ProductionConfig
	stopFuncs []func()
}

func main() {
	log.Println("Starting Deskquote application...")

	// Load production configuration
	cfg, err := config.LoadProductionConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg.Logging)

	// Initialize application
	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	// Setup routes
	app.router.SetupRoutes()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		address := cfg.GetServerAddress()
		if err := app.router.Start(address); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	log.Println("Shutting down gracefully...")

	// Stop background workers
	for _, fn := range app.stopFuncs {
		fn()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.router.GetApp().ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// setupLogging routes the standard logger to a rotating file when configured
func setupLogging(cfg config.LoggingConfig) {
	if cfg.Output != "file" {
		return
	}

	rotator := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}
	log.SetOutput(io.MultiWriter(os.Stdout, rotator))
}

// initializeDatabase initializes the database connection with connection pooling
func initializeDatabase(cfg config.DatabaseConfig, dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pooling
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := db.AutoMigrate(&models.ScenarioVersion{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	log.Printf("Database connection established with %d max open connections, %d max idle connections",
		cfg.MaxOpenConns, cfg.MaxIdleConns)

	return db, nil
}

// initializeCache initializes the Redis client and verifies connectivity
func initializeCache(cfg config.CacheConfig) (*redis.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opt.DB = cfg.RedisDB

	rc := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Printf("Redis connection established to %s (db=%d)", cfg.RedisURL, cfg.RedisDB)
	return rc, nil
}

// startCacheHealthMonitor starts a background goroutine that periodically pings Redis
// to detect connectivity issues. The returned cancel function stops the monitor.
func startCacheHealthMonitor(parent context.Context, client *redis.Client, interval time.Duration) func() {
	monitorCtx, cancel := context.WithCancel(parent)
	if interval <= 0 {
		interval = 30 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-monitorCtx.Done():
				return
			case <-ticker.C:
				ctx, c := context.WithTimeout(context.Background(), 3*time.Second)
				if err := client.Ping(ctx).Err(); err != nil {
					log.Printf("Redis healthcheck failed: %v", err)
				}
				c()
			}
		}
	}()
	return cancel
}

// initializeVersionRepository selects the version log backend from config
func initializeVersionRepository(cfg *config.ProductionConfig, rc *redis.Client) (repository.ScenarioVersionRepository, []func(), error) {
	var stopFuncs []func()

	switch cfg.VersionStore.Backend {
	case "postgres":
		db, err := initializeDatabase(cfg.Database, cfg.GetDatabaseDSN())
		if err != nil {
			return nil, nil, err
		}
		return repository.NewScenarioVersionRepository(db), stopFuncs, nil
	case "redis":
		if rc == nil {
			return nil, nil, fmt.Errorf("redis version store requires an enabled cache")
		}
		return repository.NewRedisVersionRepository(rc, cfg.Cache.RedisPrefix+"versions"), stopFuncs, nil
	case "memory":
		log.Println("Using in-memory version store; versions will not survive restarts")
		return repository.NewMemoryVersionRepository(), stopFuncs, nil
	default:
		return nil, nil, fmt.Errorf("unknown version store backend %q", cfg.VersionStore.Backend)
	}
}

// loadProjectSnapshot reads the active project assembly from PROJECT_FILE,
// falling back to a default desk contract when no file is configured.
func loadProjectSnapshot() (models.ProjectSnapshot, error) {
	path := os.Getenv("PROJECT_FILE")
	if path == "" {
		return defaultProjectSnapshot(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return models.ProjectSnapshot{}, fmt.Errorf("failed to read project file %s: %w", path, err)
	}

	var project models.ProjectSnapshot
	if err := json.Unmarshal(data, &project); err != nil {
		return models.ProjectSnapshot{}, fmt.Errorf("failed to parse project file %s: %w", path, err)
	}

	log.Printf("Loaded project %q from %s", project.Name, path)
	return project, nil
}

func defaultProjectSnapshot() models.ProjectSnapshot {
	return models.ProjectSnapshot{
		Name: "Service Desk Contract",
		Demand: models.DemandProfile{
			UserCount:                100,
			IncidentsPerUserPerMonth: 1.5,
			AverageHandleMinutes:     10,
			OccupancyRatePct:         80,
			Tier1SharePct:            80,
		},
		Capacity: models.DefaultTierCapacity(),
		Coverage: models.CoverageBusinessHours,
		Team: models.TeamComposition{
			Positions: []models.TeamPosition{
				{PositionID: "n1-analyst", Headcount: 2, WeeklyHours: models.WeeklyHoursFull},
				{PositionID: "n2-analyst", Headcount: 1, WeeklyHours: models.WeeklyHoursFull},
			},
		},
		Rates: models.PositionRates{
			"n1-analyst": {PositionID: "n1-analyst", MonthlyRate48: 3200, MonthlyRate36: 2500},
			"n2-analyst": {PositionID: "n2-analyst", MonthlyRate48: 4800, MonthlyRate36: 3700},
		},
		Taxes: models.TaxConfig{
			Components: []models.TaxComponent{
				{Name: "ISS", RatePct: 5},
				{Name: "PIS/COFINS", RatePct: 9.25},
			},
		},
		Margin:         models.MarginPolicy{Kind: models.MarginPercentageOnCost, Value: 20},
		ContractMonths: 12,
		StartDate:      time.Now().UTC(),
	}
}

// initializeApplication initializes the main application components
func initializeApplication(cfg *config.ProductionConfig) (*Application, error) {
	var stopFuncs []func()

	rc, err := initializeCache(cfg.Cache)
	if err != nil {
		return nil, err
	}
	if rc != nil {
		cancel := startCacheHealthMonitor(context.Background(), rc, cfg.Cache.DefaultTTL)
		stopFuncs = append(stopFuncs, cancel)
	}

	versionRepo, repoStops, err := initializeVersionRepository(cfg, rc)
	if err != nil {
		return nil, err
	}
	stopFuncs = append(stopFuncs, repoStops...)

	project, err := loadProjectSnapshot()
	if err != nil {
		return nil, err
	}

	// Initialize token service
	tokenService, err := services.NewTokenService(cfg.JWT.AccessTokenTTL, cfg.JWT.Issuer, cfg.JWT.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	log.Printf("Token service initialized with issuer: %s", cfg.JWT.Issuer)

	// Initialize flows
	staffingFlow := businessflow.NewStaffingFlow(models.TierCapacity{
		Tier1CapacityPerAgent: cfg.Pricing.Tier1CapacityPerAgent,
		Tier2CapacityPerAgent: cfg.Pricing.Tier2CapacityPerAgent,
	})
	scheduleFlow := businessflow.NewScheduleFlow()
	costFlow := businessflow.NewCostFlow()
	scenarioFlow := businessflow.NewScenarioFlow(project)
	versionFlow := businessflow.NewVersionFlow(versionRepo, cfg.VersionStore.DefaultKeepLast)

	// Initialize handlers
	h := router.Handlers{
		Auth:     handlers.NewAuthHandler(tokenService),
		Staffing: handlers.NewStaffingHandler(staffingFlow),
		Schedule: handlers.NewScheduleHandler(scheduleFlow),
		Cost:     handlers.NewCostHandler(costFlow),
		Scenario: handlers.NewScenarioHandler(scenarioFlow),
		Version:  handlers.NewVersionHandler(scenarioFlow, versionFlow),
	}

	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewFiberRouter(h, authMiddleware, cfg.Security.AllowedOrigins, cfg.Metrics.Enabled)

	return &Application{
		router:    r,
		config:    cfg,
		stopFuncs: stopFuncs,
	}, nil
}
