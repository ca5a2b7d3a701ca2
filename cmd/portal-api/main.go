package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tradelink/trade-portal/trade-portal-backend/internal/auth"
	"tradelink/trade-portal/trade-portal-backend/internal/config"
	"tradelink/trade-portal/trade-portal-backend/internal/ledger"
	"tradelink/trade-portal/trade-portal-backend/internal/notifications"
	"tradelink/trade-portal/trade-portal-backend/internal/notifications/websocket"
	"tradelink/trade-portal/trade-portal-backend/internal/parties"
	"tradelink/trade-portal/trade-portal-backend/internal/proposals"
	"tradelink/trade-portal/trade-portal-backend/internal/trades"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Connect to database
	dbURL := cfg.Database.GetDatabaseURL()
	logger.Info("Connecting to database", zap.String("host", cfg.Database.Host), zap.String("db", cfg.Database.DBName))
	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// The ledger rides on gorm over the same database.
	gormDB, err := gorm.Open(gormpg.Open(dbURL), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to open gorm connection", zap.Error(err))
	}
	if err := ledger.Migrate(gormDB); err != nil {
		logger.Fatal("Failed to migrate ledger schema", zap.Error(err))
	}

	// Ledger Module
	ledgerRepo := ledger.NewRepository(gormDB)
	ledgerService := ledger.NewService(ledgerRepo, logger)
	ledgerHandler := ledger.NewHandler(ledgerService)

	// Parties Module
	partiesRepo := parties.NewRepository(db)
	partiesService := parties.NewService(partiesRepo)
	partiesHandler := parties.NewHandler(partiesService)

	// Notifications Module
	wsManager := websocket.NewManager()
	defer wsManager.Close()
	notifier := notifications.NewService(wsManager, logger)
	notificationsHandler := notifications.NewHandler(wsManager)

	// Trades Module
	tradesRepo := trades.NewRepository(db)
	remoteStore := trades.NewRemoteStore(cfg.RemoteStore.BaseURL, cfg.RemoteStore.APIKey, cfg.RemoteStore.Timeout)
	tradesService := trades.NewService(tradesRepo, remoteStore, ledgerService, notifier, partiesService, logger)
	tradesHandler := trades.NewHandler(tradesService)

	// Proposals Module
	proposalsRepo := proposals.NewRepository(db)
	proposalsService := proposals.NewService(proposalsRepo, tradesService, logger)
	proposalsHandler := proposals.NewHandler(proposalsService)

	// Auth Module
	authService := auth.NewService(db, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authHandler := auth.NewHandler(authService)

	// Setup Router
	gin.SetMode(gin.DebugMode)
	router := gin.Default()

	// CORS Middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-User-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Register Routes
	api := router.Group("/api/v1")
	api.Use(auth.Middleware(cfg.Auth.JWTSecret))
	{
		auth.RegisterRoutes(api, authHandler)
		tradesHandler.RegisterRoutes(api)
		proposalsHandler.RegisterRoutes(api)
		ledgerHandler.RegisterRoutes(api)
		partiesHandler.RegisterRoutes(api)
		notificationsHandler.RegisterRoutes(api)
	}

	// Health Check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
		})
	})

	// Start Server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen: %s\n", zap.Error(err))
		}
	}()

	logger.Info("Server started", zap.Int("port", cfg.Server.Port))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown:", zap.Error(err))
	}

	logger.Info("Server exiting")
}
