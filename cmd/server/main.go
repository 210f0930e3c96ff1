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

	"stock-news-digest/internal/config"
	"stock-news-digest/internal/delivery/consumer"
	delivery "stock-news-digest/internal/delivery/http"
	"stock-news-digest/internal/repository"
	"stock-news-digest/internal/service"
	"stock-news-digest/pkg/logger"
	"stock-news-digest/pkg/postgres"
	"stock-news-digest/pkg/redis"
	"stock-news-digest/pkg/scraper"
	"stock-news-digest/pkg/telegram"

	"google.golang.org/genai"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the news digest service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting News Digest Service", logger.Field("name", cfg.App.Name))

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Initialize Redis
	redisCfg := redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}
	redisClient, err := redis.NewClient(redisCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
	}
	defer redisClient.Close()

	// Initialize repositories
	companyRepo := repository.NewCompanyRepository(db.DB)
	articleRepo := repository.NewArticleRepository(db.DB)
	dailyRepo := repository.NewDailySummaryRepository(db.DB)
	weeklyRepo := repository.NewWeeklySummaryRepository(db.DB)

	// Initialize news provider
	var newsRepo repository.NewsRepository
	switch cfg.News.Provider {
	case "newsapi":
		newsRepo = repository.NewNewsAPIRepository(cfg, appLogger)
	case "google_rss":
		newsRepo = repository.NewGoogleRSSRepository(appLogger)
	default:
		appLogger.Fatal("Invalid news provider specified in config", logger.StringField("provider", cfg.News.Provider))
	}

	// Initialize AI provider
	var aiRepo repository.AIRepository
	switch cfg.AI.Provider {
	case "gemini":
		genAiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey: cfg.Gemini.APIKey,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini AI client", logger.ErrorField(err))
		}
		repo, err := repository.NewGeminiAIRepository(cfg, appLogger, genAiClient)
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini AI repository", logger.ErrorField(err))
		}
		aiRepo = repo
	case "openai":
		aiRepo = repository.NewOpenAIRepository(cfg, appLogger)
	default:
		appLogger.Fatal("Invalid AI provider specified in config", logger.StringField("provider", cfg.AI.Provider))
	}

	// Initialize Telegram notifier
	var notifier telegram.Notifier = telegram.NopNotifier{}
	if cfg.Telegram.Enabled {
		notifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
	}

	// Initialize services
	articleScraper := scraper.NewReadabilityScraper(cfg.Scraper.Timeout)
	acquisitionSvc := service.NewAcquisitionService(companyRepo, articleRepo, newsRepo, articleScraper, appLogger, cfg)
	summarizerSvc := service.NewSummarizerService(articleRepo, aiRepo, appLogger, cfg.Digest.BatchSize)
	dailyRollupSvc := service.NewDailyRollupService(articleRepo, dailyRepo, appLogger)
	weeklyRollupSvc := service.NewWeeklyRollupService(dailyRepo, weeklyRepo, notifier, appLogger)
	schedulerSvc := service.NewSchedulerService(companyRepo, redisClient.Client, appLogger, cfg)

	// Start the scheduler
	go func() {
		if err := schedulerSvc.Start(ctx); err != nil {
			appLogger.Error("Scheduler stopped with error", logger.ErrorField(err))
		}
	}()

	// Initialize and start the Redis consumer
	digestConsumer := consumer.NewDigestConsumer(cfg, redisClient.Client, acquisitionSvc, summarizerSvc, dailyRollupSvc, weeklyRollupSvc, appLogger)
	digestConsumer.Start(ctx)

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	// Initialize handlers and routes
	apiV1 := e.Group("/api/v1")

	companyHandler := delivery.NewCompanyHandler(companyRepo, appLogger)
	companiesGroup := apiV1.Group("/companies")
	companyHandler.RegisterRoutes(companiesGroup)

	digestHandler := delivery.NewDigestHandler(acquisitionSvc, summarizerSvc, dailyRollupSvc, weeklyRollupSvc, appLogger)
	newsGroup := apiV1.Group("/news")
	digestHandler.RegisterNewsRoutes(newsGroup)
	digestsGroup := apiV1.Group("/digests")
	digestHandler.RegisterDigestRoutes(digestsGroup)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")
	digestConsumer.Stop()

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

func main() {
	rootCmd := &cobra.Command{Use: "news-digest"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing news-digest CLI: %s\n", err)
		os.Exit(1)
	}
}
