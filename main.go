package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Prince-singh-1619/ticket-booking/internal/handler"
	"github.com/Prince-singh-1619/ticket-booking/internal/repository"
	"github.com/Prince-singh-1619/ticket-booking/internal/service"
	"github.com/Prince-singh-1619/ticket-booking/internal/worker"
	"github.com/Prince-singh-1619/ticket-booking/migrations"
	"github.com/Prince-singh-1619/ticket-booking/pkg/config"
	"github.com/Prince-singh-1619/ticket-booking/pkg/database"
	"github.com/Prince-singh-1619/ticket-booking/pkg/logger"
	pkgredis "github.com/Prince-singh-1619/ticket-booking/pkg/redis"
	"github.com/Prince-singh-1619/ticket-booking/pkg/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	level := "info"
	if cfg.App.Debug {
		level = "debug"
	}
	logCfg := &logger.Config{
		Level:       level,
		ServiceName: cfg.App.Name,
		Development: cfg.IsDevelopment(),
	}
	if err := logger.Init(logCfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	appLog := logger.Get()
	appLog.Info("Starting Ticket Booking Service...")

	ctx := context.Background()

	// Initialize tracing
	if _, err := telemetry.Init(ctx, &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    cfg.OTel.ServiceName,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
	}); err != nil {
		appLog.Fatal(fmt.Sprintf("Telemetry init failed: %v", err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = telemetry.Shutdown(shutdownCtx)
	}()

	// Initialize database connection
	dbCfg := &database.PostgresConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
		ConnectTimeout:  5 * time.Second,
		MaxRetries:      3,
		RetryInterval:   time.Second,
		EnableTracing:   cfg.OTel.Enabled,
	}
	db, err := database.NewPostgres(ctx, dbCfg)
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Database connection failed: %v", err))
	}
	defer db.Close()
	appLog.Info(fmt.Sprintf("Database connected (pool: min=%d, max=%d)", dbCfg.MinConns, dbCfg.MaxConns))

	// Apply schema migrations
	if err := migrations.Apply(ctx, db.Pool()); err != nil {
		appLog.Fatal(fmt.Sprintf("Migrations failed: %v", err))
	}
	appLog.Info("Migrations applied")

	// Initialize repositories
	showRepo := repository.NewPostgresShowRepository(db.Pool())
	bookingRepo := repository.NewPostgresBookingRepository(db.Pool())

	// Seed the catalog in development environments
	if cfg.App.SeedShows {
		seeded, err := migrations.SeedShows(ctx, db.Pool())
		if err != nil {
			appLog.Warn(fmt.Sprintf("Seeding shows failed: %v", err))
		} else if seeded > 0 {
			appLog.Info(fmt.Sprintf("Seeded %d shows", seeded))
		}
	}

	// Initialize Redis availability cache (optional)
	var redisClient *pkgredis.Client
	var cache repository.AvailabilityCache
	if cfg.Redis.Enabled {
		redisCfg := &pkgredis.Config{
			Host:          cfg.Redis.Host,
			Port:          cfg.Redis.Port,
			Password:      cfg.Redis.Password,
			DB:            cfg.Redis.DB,
			PoolSize:      cfg.Redis.PoolSize,
			MinIdleConns:  cfg.Redis.MinIdleConns,
			DialTimeout:   cfg.Redis.DialTimeout,
			ReadTimeout:   cfg.Redis.ReadTimeout,
			WriteTimeout:  cfg.Redis.WriteTimeout,
			MaxRetries:    3,
			RetryInterval: time.Second,
		}
		redisClient, err = pkgredis.NewClient(ctx, redisCfg)
		if err != nil {
			appLog.Warn(fmt.Sprintf("Redis connection failed, availability cache disabled: %v", err))
		} else {
			defer redisClient.Close()
			cache = repository.NewRedisAvailabilityCache(redisClient, cfg.Booking.CacheTTL)
			appLog.Info("Redis availability cache enabled")
		}
	}

	// Initialize Kafka event publisher (optional)
	var eventPublisher service.EventPublisher = service.NewNoOpEventPublisher()
	if cfg.Kafka.Enabled {
		publisher, err := service.NewKafkaEventPublisher(ctx, &service.EventPublisherConfig{
			Brokers:     cfg.Kafka.Brokers,
			Topic:       cfg.Kafka.Topic,
			ServiceName: cfg.App.Name,
			ClientID:    cfg.Kafka.ClientID,
		})
		if err != nil {
			appLog.Warn(fmt.Sprintf("Kafka connection failed, using no-op publisher: %v", err))
		} else {
			eventPublisher = publisher
			appLog.Info("Kafka event publisher connected")
		}
	}
	defer eventPublisher.Close()

	// Initialize services
	showService := service.NewShowService(showRepo, cache)
	bookingService := service.NewBookingService(bookingRepo, cache, eventPublisher, &service.BookingServiceConfig{
		MaxSeatsPerRequest: cfg.Booking.MaxSeatsPerRequest,
	})

	// Start the expiry sweeper
	expiryWorker := worker.NewExpiryWorker(bookingRepo, eventPublisher, &worker.ExpiryWorkerConfig{
		SweepInterval: cfg.Booking.SweepInterval,
		GraceWindow:   cfg.Booking.GraceWindow,
	})
	expiryWorker.Start(ctx)

	// Initialize handlers
	showHandler := handler.NewShowHandler(showService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	adminHandler := handler.NewAdminHandler(expiryWorker)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	// Setup Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	// Health check endpoints
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// Metrics endpoint for monitoring
	router.GET("/metrics", func(c *gin.Context) {
		stats := db.Stats()
		c.JSON(http.StatusOK, gin.H{
			"db_pool": gin.H{
				"total_conns":    stats.TotalConns(),
				"acquired_conns": stats.AcquiredConns(),
				"idle_conns":     stats.IdleConns(),
				"max_conns":      stats.MaxConns(),
			},
			"expiry_worker": expiryWorker.GetStats(),
		})
	})

	// API routes
	api := router.Group("/api")
	{
		api.POST("/shows", showHandler.CreateShow)
		api.GET("/shows", showHandler.ListShows)
		api.GET("/shows/:id", showHandler.GetShowDetail)

		api.POST("/book", bookingHandler.BookSeats)
		api.DELETE("/bookings/:bookingId", bookingHandler.CancelBooking)
		api.GET("/bookings/user/:userName", bookingHandler.GetUserBookings)

		admin := api.Group("/admin")
		{
			admin.POST("/expire-bookings", adminHandler.ExpireBookings)
			admin.GET("/worker-stats", adminHandler.WorkerStats)
		}
	}

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 2 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Start server in goroutine
	go func() {
		appLog.Info(fmt.Sprintf("Ticket Booking Service listening on %s", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal(fmt.Sprintf("Failed to start server: %v", err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error(fmt.Sprintf("Server forced to shutdown: %v", err))
	}

	expiryWorker.Stop()
	appLog.Info("Server exited gracefully")
}
