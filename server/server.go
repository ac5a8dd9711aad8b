// Package server contains the HTTP handlers for the job board API.
package server

import (
	"fmt"
	"time"

	"risuwork/config"
	"risuwork/database"
	"risuwork/middleware"
	"risuwork/password"
	"risuwork/repository"
	"risuwork/session"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Page sizes, one constant per listing endpoint.
const (
	jobSearchPageSize       = 50
	applicationListPageSize = 20
	jobListPageSize         = 50
)

// Server holds all dependencies and provides handlers
type Server struct {
	config          *config.Config
	db              *gorm.DB
	redis           *redis.Client
	sessions        session.Store
	hasher          password.Hasher
	userRepo        repository.UserRepository
	companyRepo     repository.CompanyRepository
	jobRepo         repository.JobRepository
	applicationRepo repository.ApplicationRepository
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	var redisClient *redis.Client
	var sessions session.Store = session.NewMemoryStore()
	if cfg.RedisURL != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisURL})
		sessions = session.NewRedisStore(redisClient)
	}

	return &Server{
		config:          cfg,
		db:              db,
		redis:           redisClient,
		sessions:        sessions,
		hasher:          password.ForScheme(cfg.PasswordScheme),
		userRepo:        repository.NewUserRepository(db),
		companyRepo:     repository.NewCompanyRepository(db),
		jobRepo:         repository.NewJobRepository(db),
		applicationRepo: repository.NewApplicationRepository(db),
	}, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Request ID for tracing
	app.Use(requestid.New())

	app.Use(recover.New())

	// Structured Logging middleware
	app.Use(middleware.StructuredLogger())

	// Prometheus metrics at /metrics
	prom := fiberprometheus.New("risuwork")
	prom.RegisterAt(app, "/metrics")
	app.Use(prom.Middleware)

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
		MaxAge:           86400,
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Get("/healthz", s.HealthCheck)

	// Benchmarker hooks
	api.Post("/initialize", s.Initialize)
	api.Post("/finalize", s.Finalize)

	// Job-seeker side
	cs := api.Group("/cs")
	cs.Post("/signup", middleware.RateLimit(s.redis, 5, 10*time.Minute, "signup"), s.CSSignup)
	cs.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.CSLogin)
	cs.Post("/logout", s.CSLogout)
	cs.Get("/job_search", s.SearchJobs)
	cs.Post("/application", s.ApplyJob)
	cs.Get("/applications", s.ListApplications)

	// Employer side
	cl := api.Group("/cl")
	cl.Post("/company", s.CreateCompany)
	cl.Post("/signup", middleware.RateLimit(s.redis, 5, 10*time.Minute, "signup"), s.CLSignup)
	cl.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.CLLogin)
	cl.Post("/logout", s.CLLogout)
	cl.Post("/job", s.CreateJob)
	cl.Patch("/job/:jobid", s.UpdateJob)
	cl.Post("/job/:jobid/archive", s.ArchiveJob)
	cl.Get("/job/:jobid", s.GetJob)
	cl.Get("/jobs", s.ListJobs)
}

// HealthCheck handles GET /api/healthz
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
