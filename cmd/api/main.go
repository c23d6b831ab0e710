package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	adminUseCase "gift-economy/internal/domain/usecase/admin"
	authUseCase "gift-economy/internal/domain/usecase/auth"
	catalogUseCase "gift-economy/internal/domain/usecase/catalog"
	ledgerUseCase "gift-economy/internal/domain/usecase/ledger"
	purchaseUseCase "gift-economy/internal/domain/usecase/purchase"
	rewardUseCase "gift-economy/internal/domain/usecase/reward"

	"gift-economy/internal/infrastructure/adapter/api/handler"
	"gift-economy/internal/infrastructure/adapter/api/routes"
	"gift-economy/internal/infrastructure/adapter/database"
	"gift-economy/internal/infrastructure/adapter/database/migration"
	"gift-economy/internal/infrastructure/adapter/hasher"
	"gift-economy/internal/infrastructure/adapter/logger"
	"gift-economy/internal/infrastructure/adapter/repository"
	timeProvider "gift-economy/internal/infrastructure/adapter/time"
	"gift-economy/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate essential configuration
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create logger
	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)
	defer appLogger.Flush()

	// Setup database configuration
	dbConfig := &database.Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            database.ParsePort(cfg.Database.Port),
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		QueryTimeout:    cfg.Database.QueryTimeout,
		LogLevel:        cfg.Logger.Level,
		RetryAttempts:   cfg.Database.RetryAttempts,
		RetryDelay:      int(cfg.Database.RetryDelay / time.Second),
	}

	// Initialize time provider
	tp := timeProvider.NewRealTimeProvider()

	// Connect to the database
	dbManager := database.NewManager(dbConfig, appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer dbManager.Close()

	// Run migrations
	if err := dbManager.MigrationManager().MigrateAll(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Initialize repositories
	accountRepo := repository.NewAccountRepository(dbManager.DB(), tp, appLogger)
	giftRepo := repository.NewGiftRepository(dbManager.DB(), tp, appLogger)

	// Unit of work (transaction manager)
	uow := dbManager.CreateUnitOfWork()

	// Password hasher
	passwordHasher := hasher.NewBcryptHasherWithCost(cfg.Economy.BcryptCost)

	// Initialize use cases
	ledgerImpl := ledgerUseCase.NewLedger(uow, appLogger)
	authService := authUseCase.NewService(accountRepo, passwordHasher, tp, appLogger, cfg.Economy.StartingBalance)
	catalogService := catalogUseCase.NewService(giftRepo, appLogger)
	purchaser := purchaseUseCase.NewCoordinator(uow, ledgerImpl, tp, appLogger)
	rewarder := rewardUseCase.NewCoordinator(uow, ledgerImpl, tp, appLogger, cfg.Economy.DailyReward)
	adminGate := adminUseCase.NewGate(accountRepo, appLogger)
	adminService := adminUseCase.NewService(adminGate, accountRepo, catalogService, ledgerImpl, appLogger)

	// Seed the catalog on an empty database
	if err := migration.CreateDefaultGifts(context.Background(), catalogService); err != nil {
		appLogger.Error("Failed to create default gifts", map[string]any{
			"error": err.Error(),
		})
	}

	// Initialize API handlers
	retryConfig := database.DefaultRetryConfig()
	authHandler := handler.NewAuthHandler(authService, appLogger)
	giftHandler := handler.NewGiftHandler(catalogService, purchaser, retryConfig, appLogger)
	rewardHandler := handler.NewRewardHandler(rewarder, retryConfig, appLogger)
	adminHandler := handler.NewAdminHandler(adminService, appLogger)

	// Initialize Gin router
	router := gin.New()

	// Setup middlewares
	routes.SetupMiddlewares(router, appLogger, cfg.Server.CORSOrigins)

	// Setup routes
	routes.SetupRoutes(router, authHandler, giftHandler, rewardHandler, adminHandler)

	// Create HTTP server with configurable timeout values
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port": cfg.Server.Port,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	// Create a deadline to wait for
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Shutdown the server
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	// Validate server configuration
	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}

	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}

	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}

	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	// Validate database configuration
	if cfg.Database.Host == "" {
		if cfg.Environment == config.Production && os.Getenv("GE_DB_HOST") == "" {
			missingConfigs = append(missingConfigs, "database.host (or GE_DB_HOST environment variable)")
		} else if cfg.Environment != config.Production {
			missingConfigs = append(missingConfigs, "database.host")
		}
	}

	if cfg.Database.Port == "" {
		if cfg.Environment == config.Production && os.Getenv("GE_DB_PORT") == "" {
			missingConfigs = append(missingConfigs, "database.port (or GE_DB_PORT environment variable)")
		} else if cfg.Environment != config.Production {
			missingConfigs = append(missingConfigs, "database.port")
		}
	}

	if cfg.Database.Username == "" {
		if cfg.Environment == config.Production && os.Getenv("GE_DB_USERNAME") == "" {
			missingConfigs = append(missingConfigs, "database.username (or GE_DB_USERNAME environment variable)")
		} else if cfg.Environment != config.Production {
			missingConfigs = append(missingConfigs, "database.username")
		}
	}

	if cfg.Database.Password == "" {
		if cfg.Environment == config.Production && os.Getenv("GE_DB_PASSWORD") == "" {
			missingConfigs = append(missingConfigs, "database.password (or GE_DB_PASSWORD environment variable)")
		} else if cfg.Environment != config.Production {
			missingConfigs = append(missingConfigs, "database.password")
		}
	}

	if cfg.Database.Database == "" {
		if cfg.Environment == config.Production && os.Getenv("GE_DB_NAME") == "" {
			missingConfigs = append(missingConfigs, "database.database (or GE_DB_NAME environment variable)")
		} else if cfg.Environment != config.Production {
			missingConfigs = append(missingConfigs, "database.database")
		}
	}

	if cfg.Database.QueryTimeout == 0 {
		missingConfigs = append(missingConfigs, "database.queryTimeout")
	}

	// Validate economy configuration
	if cfg.Economy.StartingBalance < 0 {
		return fmt.Errorf("economy.startingBalance must not be negative: %d", cfg.Economy.StartingBalance)
	}

	if cfg.Economy.DailyReward < 0 {
		return fmt.Errorf("economy.dailyReward must not be negative: %d", cfg.Economy.DailyReward)
	}

	// Environment should be set with a valid value
	if cfg.Environment == "" {
		missingConfigs = append(missingConfigs, "environment")
	} else if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	// Logger configuration
	if cfg.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}

	// Return error with list of missing configurations
	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	// If we're in production, do additional validation for sensitive settings
	if cfg.Environment == config.Production {
		var warnings []string

		// Check database security settings
		sslMode := strings.ToLower(cfg.Database.SSLMode)
		if sslMode != "require" && sslMode != "verify-ca" && sslMode != "verify-full" {
			warnings = append(warnings, "database.sslMode should be set to 'require', 'verify-ca', or 'verify-full' in production")
		}

		// Check timeout settings
		if cfg.Server.ReadTimeout < 5*time.Second {
			warnings = append(warnings, "server.readTimeout is too low for production")
		}

		if cfg.Server.WriteTimeout < 5*time.Second {
			warnings = append(warnings, "server.writeTimeout is too low for production")
		}

		if len(warnings) > 0 {
			log.Printf("Warning: potential security issues in production configuration: %v", warnings)
		}
	}

	return nil
}
