package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"artifact-tracker-backend/internal/config"
	infraCache "artifact-tracker-backend/internal/infrastructure/cache"
	"artifact-tracker-backend/internal/infrastructure/database"
	"artifact-tracker-backend/internal/infrastructure/queue"
	"artifact-tracker-backend/pkg/cache"
	"artifact-tracker-backend/pkg/jwt"

	// Artifact domain
	artifactHandler "artifact-tracker-backend/internal/domains/artifact/handler"
	artifactRepo "artifact-tracker-backend/internal/domains/artifact/repository"
	artifactService "artifact-tracker-backend/internal/domains/artifact/service"

	// Like domain
	likeHandler "artifact-tracker-backend/internal/domains/like/handler"
	likeRepo "artifact-tracker-backend/internal/domains/like/repository"
	likeService "artifact-tracker-backend/internal/domains/like/service"

	// Session
	sessionHandler "artifact-tracker-backend/internal/domains/session/handler"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds the dependency graph shared by cmd/api and cmd/worker
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================

	Config      *config.Config
	DB          *database.PostgresDB
	Cache       cache.Cache
	RedisCache  *infraCache.RedisCache // nil when Redis is unreachable
	JWTManager  *jwt.Manager
	QueueClient *queue.Client

	// ========================================
	// REPOSITORY LAYER
	// ========================================

	ArtifactRepo artifactRepo.RepositoryInterface
	LikeRepo     likeRepo.RepositoryInterface

	// ========================================
	// SERVICE LAYER
	// ========================================

	ArtifactService artifactService.ServiceInterface
	LikeService     likeService.ServiceInterface

	// ========================================
	// HANDLER LAYER
	// ========================================

	ArtifactHandler *artifactHandler.ArtifactHandler
	LikeHandler     *likeHandler.LikeHandler
	SessionHandler  *sessionHandler.SessionHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer builds the graph in dependency order:
// config → infrastructure → repositories → services → handlers
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	log.Println("📋 Loading configuration...")

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	log.Println("🗄️  Connecting to PostgreSQL...")

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.HealthCheck(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	c.DB = db
	log.Println("✅ Database connected")

	// ========================================
	// STEP 3: INITIALIZE CACHE + QUEUE
	// ========================================
	log.Println("🔴 Connecting to Redis...")

	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		// Redis failure is not critical: reads fall through to PostgreSQL
		log.Printf("⚠️  Redis connection failed (non-critical): %v", err)
		_ = redisCache.Close()
		c.Cache = cache.NoopCache{}
	} else {
		log.Println("✅ Redis connected")
		c.RedisCache = redisCache
		c.Cache = redisCache
	}

	c.QueueClient = queue.NewClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.TTL())

	// ========================================
	// STEP 4-6: REPOSITORIES, SERVICES, HANDLERS
	// ========================================
	log.Println("📦 Initializing repositories...")
	c.initRepositories()

	log.Println("⚙️  Initializing services...")
	c.initServices()

	log.Println("🎯 Initializing handlers...")
	c.initHandlers()

	log.Println("🎉 DI Container initialized successfully")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.ArtifactRepo = artifactRepo.NewPostgresRepository(pool, c.Cache)
	c.LikeRepo = likeRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.ArtifactService = artifactService.NewArtifactService(c.ArtifactRepo)

	// The like service only adjusts and recounts the artifact counter
	c.LikeService = likeService.NewLikeService(
		c.LikeRepo,
		c.ArtifactRepo,
		c.QueueClient,
	)
}

func (c *Container) initHandlers() {
	c.ArtifactHandler = artifactHandler.NewArtifactHandler(c.ArtifactService)
	c.LikeHandler = likeHandler.NewLikeHandler(c.LikeService)
	c.SessionHandler = sessionHandler.NewSessionHandler(c.JWTManager, c.Config.Session)
}

// ========================================
// HELPER METHODS
// ========================================

// Cleanup releases connections on shutdown
func (c *Container) Cleanup() {
	log.Println("🧹 Cleaning up container resources...")

	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			log.Printf("⚠️  Failed to close queue client: %v", err)
		}
	}

	if c.DB != nil {
		c.DB.Close()
		log.Println("✅ Database connections closed")
	}

	if c.RedisCache != nil {
		if err := c.RedisCache.Close(); err != nil {
			log.Printf("⚠️  Failed to close Redis: %v", err)
		} else {
			log.Println("✅ Redis connections closed")
		}
	}

	log.Println("✅ Container cleanup completed")
}
