// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"log"
	"time"

	"agora/internal/cache"
	"agora/internal/config"
	"agora/internal/database"
	"agora/internal/ghdocs"
	"agora/internal/middleware"
	"agora/internal/models"
	"agora/internal/observability"
	"agora/internal/repository"
	"agora/internal/search"
	"agora/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	categoryRepo repository.CategoryRepository
	threadRepo   repository.ThreadRepository
	postRepo     repository.PostRepository
	reactionRepo repository.ReactionRepository
	tagRepo      repository.TagRepository
	statsRepo    repository.StatsRepository

	syncer *search.Syncer
	merger *search.Merger
	docs   *ghdocs.Client

	categoryService *service.CategoryService
	threadService   *service.ThreadService
	postService     *service.PostService
	statsService    *service.StatsService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}

	redisClient := cache.Connect(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, redisClient), nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis itself.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	prom := observability.InitMetrics("agora-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		categoryRepo:   repository.NewCategoryRepository(db),
		threadRepo:     repository.NewThreadRepository(db),
		postRepo:       repository.NewPostRepository(db),
		reactionRepo:   repository.NewReactionRepository(db),
		tagRepo:        repository.NewTagRepository(db),
		statsRepo:      repository.NewStatsRepository(db),
		syncer:         search.NewSyncer(),
		merger:         search.NewMerger(db),
	}

	if cfg.GitHubDocsRepo != "" {
		server.docs = ghdocs.NewClient(cfg.GitHubDocsRepo, cfg.GitHubDocsBranch, redisClient)
	}

	server.categoryService = service.NewCategoryService(db, server.categoryRepo, server.syncer)
	server.threadService = service.NewThreadService(db, server.threadRepo, server.tagRepo, server.syncer)
	server.postService = service.NewPostService(db, server.postRepo, server.threadRepo, server.reactionRepo, server.syncer)
	server.statsService = service.NewStatsService(server.statsRepo, redisClient)

	return server
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate the request ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		MaxAge:       86400, // 24 hours
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	app.Get("/", s.RootDescriptor)
	api.Get("/health", s.HealthCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Category routes
	categories := api.Group("/categories")
	categories.Get("/", s.GetCategories)
	categories.Post("/", s.CreateCategory)
	categories.Get("/:id/threads", s.GetCategoryThreads)
	categories.Get("/:id", s.GetCategory)
	categories.Put("/:id", s.UpdateCategory)
	categories.Delete("/:id", s.DeleteCategory)

	// Thread routes
	threads := api.Group("/threads")
	threads.Get("/", s.GetThreads)
	threads.Post("/", middleware.RateLimit(
		s.redis, 10, time.Minute, "create_thread"), s.CreateThread)
	threads.Get("/:id/posts", s.GetThreadPosts)
	threads.Post("/:id/tags", s.AddThreadTags)
	threads.Delete("/:id/tags/:name", s.RemoveThreadTag)
	threads.Get("/:id", s.GetThread)
	threads.Put("/:id", s.UpdateThread)
	threads.Delete("/:id", s.DeleteThread)

	// Post routes
	posts := api.Group("/posts")
	posts.Post("/", middleware.RateLimit(
		s.redis, 30, time.Minute, "create_post"), s.CreatePost)
	posts.Get("/:id/reactions", s.GetPostReactions)
	posts.Post("/:id/reactions", s.CreateReaction)
	posts.Delete("/:id/reactions/:kind", s.DeleteReaction)
	posts.Get("/:id", s.GetPost)
	posts.Put("/:id", s.UpdatePost)
	posts.Delete("/:id", s.DeletePost)

	// Tag routes
	api.Get("/tags", s.GetTags)
	api.Get("/tags/:name/threads", s.GetTagThreads)

	// Search
	api.Get("/search", middleware.RateLimit(
		s.redis, 30, time.Minute, "search"), s.Search)

	// Stats
	api.Get("/stats", s.GetStats)
	api.Get("/stats/trending", s.GetTrending)

	// Docs proxy; registered only when a docs repo is configured
	if s.docs != nil {
		docs := api.Group("/docs")
		docs.Get("/manifest", s.GetDocsManifest)
		docs.Get("/services", s.ListDocServices)
		docs.Get("/services/:service", s.GetServiceDocs)
		docs.Get("/services/:service/:filename", s.GetDoc)
		docs.Get("/search", s.SearchDocs)
		docs.Get("/verify", s.VerifyDocsToken)
	}
}

// RootDescriptor describes the API for anyone poking the bare root URL.
func (s *Server) RootDescriptor(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"name":    "Agora Forum API",
		"version": "1.0.0",
		"docs":    "/api/health",
	})
}

// HealthCheck reports readiness of the database and cache.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if err := database.Ping(ctx, s.db); err != nil {
		dbStatus = "unhealthy"
	}

	// The cache is optional; the service stays healthy without it.
	redisStatus := "disabled"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overall := "healthy"
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Agora Forum API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			middleware.Logger.Error("unhandled error", "error", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if err := database.Close(s.db); err != nil {
		log.Printf("error closing sql DB: %v", err)
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			log.Printf("error closing redis: %v", err)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
