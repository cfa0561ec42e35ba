package internal

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scroll-feed/pkg/cache"
	"scroll-feed/pkg/config"
	"scroll-feed/pkg/database"
	"scroll-feed/pkg/jwt"
	"scroll-feed/pkg/logger"
	"scroll-feed/pkg/metrics"
	"scroll-feed/pkg/middleware"
	"scroll-feed/pkg/queue"
	"scroll-feed/pkg/s3"
	feedHTTP "scroll-feed/services/feed/internal/controller/http"
	feedcache "scroll-feed/services/feed/internal/repo/cache"
	"scroll-feed/services/feed/internal/repo/persistent"
	"scroll-feed/services/feed/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "scroll-feed/services/feed/docs" // Swagger docs
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	s3Client    *s3.Client
	queueClient *queue.Client
	jwtService  *jwt.Service
	metrics     *metrics.Collector
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.NewWithLevel(cfg.LogLevel).With(logger.Fields{"service": "feed"})

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		// Feeds work without redis: no follow cache, no rate limit
		log.Error("Failed to connect to redis: %v (continuing without cache)", err)
		redisClient = nil
	}

	var s3Client *s3.Client
	if cfg.AWSAccessKeyID != "" {
		s3Client, err = s3.NewClient(cfg)
		if err != nil {
			log.Error("Failed to create S3 client: %v (media URLs disabled)", err)
			s3Client = nil
		}
	}

	var queueClient *queue.Client
	if cfg.RabbitMQHost != "" {
		queueClient, err = queue.NewRabbitMQClient(cfg, log)
		if err != nil {
			log.Error("Failed to connect to RabbitMQ: %v (continuing without queue)", err)
			queueClient = nil
		}
	}

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		s3Client:    s3Client,
		queueClient: queueClient,
		jwtService:  jwt.NewService(cfg.JWTSecret),
		metrics:     metrics.NewCollector("feed-service"),
	}, nil
}

// NewFeedUseCase assembles the feed engine on top of the app's connections.
// cmd/dropctl reuses the same wiring for the drop publisher.
func (a *App) NewFeedUseCase() (usecase.FeedUseCase, *usecase.DropPublisher) {
	posts := persistent.NewPostRepository(a.db)

	var follows persistent.FollowRepository = persistent.NewFollowRepository(a.db)
	if a.redisClient != nil {
		follows = feedcache.NewFollowCache(follows, a.redisClient, a.cfg.FollowCacheTTL, a.log)
	}

	var events usecase.EventPublisher
	if a.queueClient != nil {
		events = a.queueClient
	}
	drops := usecase.NewDropPublisher(posts, events, a.metrics, a.log)

	opts := []usecase.Option{
		usecase.WithDropPublisher(drops),
		usecase.WithMetrics(a.metrics),
	}
	if a.s3Client != nil {
		opts = append(opts, usecase.WithMediaSigner(a.s3Client, a.cfg.MediaURLTTL))
	}

	repos := usecase.Repositories{
		Posts:     posts,
		Reposts:   persistent.NewRepostRepository(a.db),
		Follows:   follows,
		Audiences: persistent.NewAudienceRepository(a.db),
		Viewers:   persistent.NewViewerRepository(a.db),
		Saved:     persistent.NewSavedRepository(a.db),
	}
	return usecase.NewFeedUseCase(repos, a.cfg.Feed, a.log, opts...), drops
}

func (a *App) Router(feedUseCase usecase.FeedUseCase) *gin.Engine {
	feedHandler := feedHTTP.NewFeedHandler(feedUseCase, a.log)

	r := gin.Default()
	r.Use(a.metrics.Middleware())

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", a.metrics.Handler())

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Discovery and profile feeds are open to anonymous viewers, so auth is
	// optional here and enforced per mode by the use case.
	api := r.Group("/api/v1")
	api.Use(middleware.OptionalAuthMiddleware(a.jwtService))
	if a.redisClient != nil {
		api.Use(middleware.RateLimitMiddleware(a.redisClient, 200, time.Minute)) // 200 requests per minute
	}

	{
		api.GET("/feed", feedHandler.GetFeed)
		api.GET("/users/:id/posts", feedHandler.GetUserPosts)
		api.GET("/posts/:id", feedHandler.GetPost)
		// Eligibility is per caller: a valid token is required.
		api.GET("/posts/:id/repost-eligibility", middleware.AuthMiddleware(a.jwtService), feedHandler.GetRepostEligibility)
	}

	return r
}

func (a *App) Run() error {
	feedUseCase, _ := a.NewFeedUseCase()

	// Create HTTP server
	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: a.Router(feedUseCase),
	}

	// Start server in a goroutine
	go func() {
		a.log.Info("Feed service starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Logger() *logger.Logger {
	return a.log
}

func (a *App) Wait() {
	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down feed service...")
}

func (a *App) Shutdown() error {
	// The context is used to inform the server it has 5 seconds to finish
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var shutdownErr error
	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(ctx); err != nil {
			a.log.Error("Server forced to shutdown: %v", err)
			shutdownErr = err
		}
	}

	if a.queueClient != nil {
		if err := a.queueClient.Close(); err != nil {
			a.log.Error("Error closing RabbitMQ: %v", err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	a.log.Info("Feed service exited")
	return shutdownErr
}
