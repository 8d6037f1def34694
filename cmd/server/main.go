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
	"github.com/joho/godotenv"

	"psmestate/internal/config"
	handlers "psmestate/internal/handlers/shared"
	"psmestate/internal/repositories/mongodb"
	"psmestate/internal/services"
	"psmestate/internal/utils"
	"psmestate/pkg/ai"
	"psmestate/pkg/automation"
	"psmestate/pkg/cache"
	"psmestate/pkg/database"
	"psmestate/pkg/klaviyo"
	"psmestate/pkg/logger"
	"psmestate/pkg/mailer"
	"psmestate/pkg/maps"
	"psmestate/pkg/search"
	"psmestate/pkg/storage"
	"psmestate/pkg/websocket"
	"psmestate/routes"
)

func main() {
	// .env is optional; real deployments use environment variables.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logFormat := "text"
	if config.IsProduction() {
		logFormat = "json"
	}
	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: logFormat,
		Output: "stdout",
		Colors: config.IsDevelopment(),
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// MongoDB is required; the process is useless without it.
	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		appLogger.Fatalf("Failed to run migrations: %v", err)
	}

	// Redis is optional: rate limiting and view de-dup degrade to in-process
	// fallbacks without it.
	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		appLogger.WithError(err).Warn("Redis unavailable, using in-process fallbacks")
		redisCache = nil
	} else {
		defer redisCache.Close()
	}

	// External providers.
	mapsProvider, err := maps.NewGoogleMapsProvider(cfg.Maps.GoogleMaps.APIKey)
	if err != nil {
		appLogger.Fatalf("Failed to initialize maps provider: %v", err)
	}

	storageProvider, err := newStorageProvider(cfg)
	if err != nil {
		appLogger.Fatalf("Failed to initialize storage: %v", err)
	}

	indexingClient, err := search.NewIndexingClient(context.Background(),
		[]byte(cfg.Search.IndexingCredentialsJSON), cfg.App.SiteURL)
	if err != nil {
		appLogger.Fatalf("Failed to initialize search indexing: %v", err)
	}

	aiProviders := []ai.Provider{
		ai.NewOpenAIClient(cfg.AI.OpenAI.APIKey, cfg.AI.OpenAI.Model),
		ai.NewPerplexityClient(cfg.AI.Perplexity.APIKey, cfg.AI.Perplexity.Model),
	}

	klaviyoClient := klaviyo.NewClient(cfg.Klaviyo.APIKey, cfg.Klaviyo.NewsletterListID)
	dispatcher := automation.NewGitHubDispatcher(
		cfg.Automation.GitHubToken,
		cfg.Automation.RepoOwner,
		cfg.Automation.RepoName,
		cfg.Automation.WorkflowFile,
		cfg.Automation.WorkflowRef,
	)
	mail := mailer.NewMailer(
		cfg.SMTP.Host, cfg.SMTP.Port,
		cfg.SMTP.Username, cfg.SMTP.Password,
		cfg.SMTP.FromEmail, cfg.SMTP.FromName,
	)

	wsHandler := websocket.NewHandler()

	// Repositories.
	propertyRepo := mongodb.NewPropertyRepository(db.Database, redisCache)
	bookingRepo := mongodb.NewBookingRepository(db.Database)
	blogRepo := mongodb.NewBlogRepository(db.Database, redisCache)
	poiRepo := mongodb.NewPOIRepository(db.Database)
	tm30Repo := mongodb.NewTM30Repository(db.Database)
	agentRepo := mongodb.NewAgentDecisionRepository(db.Database)
	subscriberRepo := mongodb.NewSubscriberRepository(db.Database)
	alertRepo := mongodb.NewPriceAlertRepository(db.Database)
	visitRepo := mongodb.NewUTMVisitRepository(db.Database)
	inquiryRepo := mongodb.NewInquiryRepository(db.Database)
	inviteRepo := mongodb.NewInviteRepository(db.Database)
	userRepo := mongodb.NewUserRepository(db.Database)

	// Services. Marketing comes first so the property service can notify it.
	marketingService := services.NewMarketingService(
		subscriberRepo, alertRepo, visitRepo, inquiryRepo,
		klaviyoClient, mail, cfg.SMTP.AdminTo, wsHandler, appLogger,
	)
	propertyService := services.NewPropertyService(
		propertyRepo, redisCache, cfg.Security.ViewDedupTTL, marketingService, appLogger,
	)
	bookingService := services.NewBookingService(
		bookingRepo, propertyRepo, nil, wsHandler, mail, cfg.SMTP.AdminTo, appLogger,
	)
	blogService := services.NewBlogService(
		blogRepo, redisCache, cfg.Security.ViewDedupTTL, indexingClient, appLogger,
	)
	poiService := services.NewPOIService(poiRepo, propertyRepo, mapsProvider, appLogger)
	tm30Service := services.NewTM30Service(tm30Repo, bookingRepo, dispatcher, wsHandler, appLogger)
	agentService := services.NewAgentService(agentRepo, blogRepo, propertyRepo, aiProviders, wsHandler, appLogger)
	authService := services.NewAuthService(
		userRepo, inviteRepo, mail,
		cfg.Security.JWTSecret, cfg.Security.InviteTTL, cfg.App.SiteURL, appLogger,
	)

	// Handlers and router.
	h := &routes.Handlers{
		Auth:      handlers.NewAuthHandler(authService),
		Property:  handlers.NewPropertyHandler(propertyService),
		Booking:   handlers.NewBookingHandler(bookingService, marketingService),
		Blog:      handlers.NewBlogHandler(blogService),
		POI:       handlers.NewPOIHandler(poiService),
		TM30:      handlers.NewTM30Handler(tm30Service, cfg.Automation.CallbackSecret),
		Agent:     handlers.NewAgentHandler(agentService),
		Marketing: handlers.NewMarketingHandler(marketingService),
		Dashboard: handlers.NewDashboardHandler(propertyService, bookingService, agentService),
		Upload:    handlers.NewUploadHandler(storageProvider),
		WebSocket: wsHandler,
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	if len(cfg.Security.TrustedProxies) > 0 {
		if err := router.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
			appLogger.Fatalf("Invalid trusted proxies: %v", err)
		}
	}

	routes.Setup(router, cfg, redisCache, appLogger, h)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLogger.Infof("%s listening on port %d", utils.AppName, cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Errorf("Forced shutdown: %v", err)
	}
}

func newStorageProvider(cfg *config.Config) (storage.Provider, error) {
	if cfg.Storage.Provider == "s3" {
		return storage.NewAWSS3Storage(cfg.Storage.AWS.Region, cfg.Storage.AWS.Bucket, cfg.Storage.AWS.CDNDomain)
	}
	return storage.NewLocalStorage(cfg.Storage.Local.BasePath, cfg.Storage.Local.BaseURL)
}
