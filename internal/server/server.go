package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/campus-pulse/backend/internal/config"
	"github.com/campus-pulse/backend/internal/database"
	"github.com/campus-pulse/backend/internal/handlers"
	"github.com/campus-pulse/backend/internal/middleware"
)

// Auth endpoints allow 10 attempts per 15 minutes per IP.
const (
	authRateWindow = 15 * time.Minute
	authRateMax    = 10
)

type Server struct {
	cfg     *config.Config
	db      *database.Service
	handler *handlers.Handler
}

// New wires the router and returns a configured http.Server.
func New(cfg *config.Config, db *database.Service) *http.Server {
	s := &Server{
		cfg:     cfg,
		db:      db,
		handler: handlers.NewHandler(db.DB(), cfg.JWTSecret),
	}

	return &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// RegisterRoutes sets up all application routes.
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.Default()

	// The allow-list comes from config and is enforced exactly; no
	// wildcard fallback.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.db.Health())
	})

	authLimiter := middleware.NewIPRateLimiter(rate.Every(authRateWindow/authRateMax), authRateMax)
	r.POST("/register", middleware.RateLimit(authLimiter), s.handler.Auth.Register)
	r.POST("/login", middleware.RateLimit(authLimiter), s.handler.Auth.Login)

	// Public reads
	r.GET("/pings", s.handler.Ping.List)
	r.GET("/pings/:id/comments", s.handler.Comment.List)

	// Protected routes (authentication required)
	protected := r.Group("")
	protected.Use(middleware.RequireAuth(s.cfg.JWTSecret))
	{
		protected.POST("/pings", s.handler.Ping.Create)
		protected.PUT("/pings/:id", s.handler.Ping.Update)
		protected.DELETE("/pings/:id", s.handler.Ping.Delete)
		protected.POST("/pings/:id/vote", s.handler.Ping.Vote)

		protected.POST("/pings/:id/comments", s.handler.Comment.Create)
		protected.PUT("/comments/:id", s.handler.Comment.Update)
		protected.DELETE("/comments/:id", s.handler.Comment.Delete)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})

	return r
}
