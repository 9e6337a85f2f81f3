package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sortmyai/sortmyai-backend/internal/config"
	"github.com/sortmyai/sortmyai-backend/internal/handler"
	"github.com/sortmyai/sortmyai-backend/internal/middleware"
	"github.com/sortmyai/sortmyai-backend/internal/migration"
	"github.com/sortmyai/sortmyai-backend/internal/repository"
	"github.com/sortmyai/sortmyai-backend/internal/routes"
	"github.com/sortmyai/sortmyai-backend/internal/service"
	"github.com/sortmyai/sortmyai-backend/internal/ws"
	pkgcache "github.com/sortmyai/sortmyai-backend/pkg/cache"
	pkges "github.com/sortmyai/sortmyai-backend/pkg/elasticsearch"
	"github.com/sortmyai/sortmyai-backend/pkg/jwt"
	pkglogger "github.com/sortmyai/sortmyai-backend/pkg/logger"
	pkgredis "github.com/sortmyai/sortmyai-backend/pkg/redis"
	pkgstorage "github.com/sortmyai/sortmyai-backend/pkg/storage"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv()

	pkglogger.Init()
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)
	pkglogger.Info("APP_ENV=%s, loaded env files: %v", env, dotenvFiles)

	configPath := getConfigPath()
	pkglogger.Info("Loading config from: %s", configPath)
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.LogResolved()

	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	pkglogger.Info("Connected to MySQL")
	if err := migration.Run(db); err != nil {
		pkglogger.Info("Migration warning: %v", err)
	}

	redisClient, err := pkgredis.NewClient(
		cfg.Redis.Host,
		cfg.Redis.Port,
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Redis.PoolSize,
	)
	if err != nil {
		pkglogger.Info("Warning: Failed to connect to Redis: %v (continuing without Redis)", err)
		redisClient = nil
	} else {
		pkglogger.Info("Connected to Redis")
	}

	var cacheService pkgcache.Service
	if redisClient != nil {
		cacheService = pkgcache.NewService(redisClient)
		pkglogger.Info("Cache service initialized")
	}

	var esClient *pkges.Client
	if cfg.Elasticsearch.Enabled && len(cfg.Elasticsearch.Addresses) > 0 {
		var esErr error
		esClient, esErr = pkges.NewClient(cfg.Elasticsearch.Addresses, cfg.Elasticsearch.Username, cfg.Elasticsearch.Password)
		if esErr != nil {
			pkglogger.Info("Warning: Elasticsearch connection failed: %v (continuing without ES)", esErr)
			esClient = nil
		} else {
			pkglogger.Info("Connected to Elasticsearch")
		}
	}

	var s3Client *pkgstorage.S3Client
	if cfg.Storage.Enabled && cfg.Storage.Bucket != "" {
		var s3Err error
		s3Client, s3Err = pkgstorage.NewS3Client(pkgstorage.S3Config{
			Endpoint:        cfg.Storage.Endpoint,
			Region:          cfg.Storage.Region,
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
			Bucket:          cfg.Storage.Bucket,
			CDNURL:          cfg.Storage.CDNURL,
			BasePath:        cfg.Storage.BasePath,
			ForcePathStyle:  cfg.Storage.ForcePathStyle,
		})
		if s3Err != nil {
			pkglogger.Info("Warning: S3 storage init failed: %v (continuing without S3)", s3Err)
			s3Client = nil
		} else {
			pkglogger.Info("Connected to S3 storage")
		}
	}

	// WebSocket Hub
	wsHub := ws.NewHub(redisClient)
	go wsHub.Run()
	defer wsHub.Stop()

	// JWT Manager
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiresIn,
		cfg.JWT.RefreshIn,
	)

	// Repositories
	creatorRepo := repository.NewCreatorRepository(db)
	followRepo := repository.NewFollowRepository(db)
	convRepo := repository.NewConversationRepository(db)
	msgRepo := repository.NewMessageRepository(db)
	toolRepo := repository.NewToolRepository(db)
	portfolioRepo := repository.NewPortfolioRepository(db)
	xpRepo := repository.NewXPRepository(db)

	// Services
	gamificationSvc := service.NewGamificationService(xpRepo, creatorRepo)
	notifierSvc := service.NewNotifierService(convRepo, msgRepo, wsHub)
	authSvc := service.NewAuthService(creatorRepo, jwtManager, gamificationSvc, cacheService)
	followSvc := service.NewFollowService(followRepo, creatorRepo, gamificationSvc, cacheService)
	creatorSvc := service.NewCreatorService(creatorRepo, followSvc, cacheService)
	conversationSvc := service.NewConversationService(convRepo, msgRepo, creatorRepo, notifierSvc, cacheService)
	toolSvc := service.NewToolService(toolRepo, gamificationSvc, esClient, cacheService)
	portfolioSvc := service.NewPortfolioService(portfolioRepo, toolRepo, gamificationSvc, s3Client)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	creatorHandler := handler.NewCreatorHandler(creatorSvc, followSvc)
	followHandler := handler.NewFollowHandler(followSvc)
	conversationHandler := handler.NewConversationHandler(conversationSvc)
	notificationHandler := handler.NewNotificationHandler(notifierSvc)
	toolHandler := handler.NewToolHandler(toolSvc)
	portfolioHandler := handler.NewPortfolioHandler(portfolioSvc, creatorSvc)
	gamificationHandler := handler.NewGamificationHandler(gamificationSvc)
	wsHandler := handler.NewWSHandler(wsHub, cfg.CORS.AllowOrigins)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowOrigins:     splitOrigins(cfg.CORS.AllowOrigins),
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Remaining"},
		MaxAge:           86400,
	}
	router.Use(cors.New(corsConfig))

	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.InputSanitizer())
	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())

	if redisClient != nil && !cfg.IsDevelopment() {
		router.Use(middleware.RateLimit(redisClient, middleware.DefaultRateLimitConfig()))
	}

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "sortmyai-backend",
			"time":    time.Now().Unix(),
		})
	})

	routes.Setup(
		router,
		authHandler,
		creatorHandler,
		followHandler,
		conversationHandler,
		notificationHandler,
		toolHandler,
		portfolioHandler,
		gamificationHandler,
		wsHandler,
		jwtManager,
	)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	pkglogger.Info("Starting server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func initDB(cfg *config.Config) (*gorm.DB, error) {
	logMode := gormlogger.Warn
	if cfg.IsDevelopment() {
		logMode = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	return db, nil
}

func splitOrigins(origins string) []string {
	if origins == "" {
		return []string{"http://localhost:3000"}
	}
	parts := strings.Split(origins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
