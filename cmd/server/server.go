package server

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
	"github.com/glebarez/sqlite"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/axellelanca/newsboard/cmd"
	"github.com/axellelanca/newsboard/internal/api"
	"github.com/axellelanca/newsboard/internal/cache"
	"github.com/axellelanca/newsboard/internal/config"
	"github.com/axellelanca/newsboard/internal/logger"
	"github.com/axellelanca/newsboard/internal/models"
	"github.com/axellelanca/newsboard/internal/monitor"
	"github.com/axellelanca/newsboard/internal/repository"
	"github.com/axellelanca/newsboard/internal/services"
	"github.com/axellelanca/newsboard/internal/workers"
)

// RunServerCmd represents the 'run-server' Cobra command.
// It is the entry point for launching the application server.
var RunServerCmd = &cobra.Command{
	Use:   "run-server",
	Short: "Launches the news API server and its background processes.",
	Long: `This command initializes the database, configures the APIs,
starts the asynchronous audit workers and the duplicate-view cleanup monitor,
then launches the HTTP server.`,
	Run: func(cobraCmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		zlog, err := logger.New(cfg.Server.Environment)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer zlog.Sync()

		db, err := gorm.Open(sqlite.Open(cfg.Database.Name), &gorm.Config{})
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}

		if err := db.AutoMigrate(
			&models.News{}, &models.NewsImage{}, &models.Event{},
			&models.Comment{}, &models.Admin{},
			&models.AboutSection{}, &models.Statistic{}, &models.Solution{},
			&models.TeamMember{}, &models.Partner{}, &models.Link{},
		); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}

		// Initialize the repositories
		eventRepo := repository.NewEventRepository(db)
		newsRepo := repository.NewNewsRepository(db)
		commentRepo := repository.NewCommentRepository(db)
		contentRepo := repository.NewContentRepository(db)
		adminRepo := repository.NewAdminRepository(db)

		zlog.Info("Repositories initialized")

		// Audit entries flow through a buffered channel to worker goroutines
		// so admin requests never wait on the audit write.
		auditEntries := make(chan models.AuditEntry, cfg.Audit.BufferSize)
		workers.StartAuditWorkers(cfg.Audit.WorkerCount, auditEntries, eventRepo, zlog)
		zlog.Info("Audit workers started",
			zap.Int("buffer_size", cfg.Audit.BufferSize),
			zap.Int("worker_count", cfg.Audit.WorkerCount))

		// View dedup gate: in-memory short-term cache in front of the DB check.
		debounce := time.Duration(cfg.Tracking.DebounceSeconds) * time.Second
		seenViews := cache.NewViewCache(debounce)
		defer seenViews.Close()

		// Initialize the business services
		svc := api.Services{
			News:      services.NewNewsService(newsRepo, zlog),
			Comments:  services.NewCommentService(commentRepo, newsRepo, zlog),
			Stats:     services.NewStatsService(eventRepo, newsRepo, adminRepo, zlog),
			Analytics: services.NewAnalyticsService(eventRepo, zlog),
			Audit:     services.NewAuditService(eventRepo, newsRepo, adminRepo, auditEntries, zlog),
			Content:   services.NewContentService(contentRepo, zlog),
			Views:     services.NewViewTracker(eventRepo, seenViews, debounce, zlog),
			Log:       zlog,
		}
		zlog.Info("Business services initialized")

		// Periodic duplicate-view sweep. An interval of 0 disables it.
		if cfg.Cleanup.IntervalMinutes > 0 {
			cleanupInterval := time.Duration(cfg.Cleanup.IntervalMinutes) * time.Minute
			cleanupSvc := services.NewCleanupService(eventRepo, debounce, zlog)
			cleanupMonitor := monitor.NewCleanupMonitor(cleanupSvc, cleanupInterval, zlog)
			go cleanupMonitor.Start()
			zlog.Info("Cleanup monitor started", zap.Duration("interval", cleanupInterval))
		}

		if cfg.Server.Environment == "production" {
			gin.SetMode(gin.ReleaseMode)
		}
		router := gin.Default()
		api.SetupRoutes(router, svc, cfg.Server.CORSOrigins)
		zlog.Info("API routes configured")

		serverAddr := fmt.Sprintf(":%d", cfg.Server.Port)
		srv := &http.Server{
			Addr:    serverAddr,
			Handler: router,
		}

		// Start the Gin server in a goroutine so it doesn't block.
		go func() {
			zlog.Info("Starting server", zap.String("addr", serverAddr))
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("Failed to start server: %v", err)
			}
		}()

		// Graceful shutdown on SIGINT/SIGTERM.
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		zlog.Info("Shutdown signal received, stopping server")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			zlog.Error("Forced shutdown", zap.Error(err))
		}

		// Give the audit workers a moment to drain the channel.
		close(auditEntries)
		time.Sleep(1 * time.Second)

		zlog.Info("Server stopped cleanly")
	},
}

func init() {
	cmd.RootCmd.AddCommand(RunServerCmd)
}
