// Package server exposes the engine over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	daleel "github.com/HOUSSAM16ai/my-ai-project-sub004"
	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/config"
	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/server/handlers"
)

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// Server represents the HTTP server
type Server struct {
	config *config.Config
	router *gin.Engine
	engine daleel.Daleel
	server *http.Server
}

// New creates a new server instance
func New(cfg *config.Config, engine daleel.Daleel) *Server {
	return &Server{
		config: cfg,
		engine: engine,
	}
}

// Setup sets up the server routes and middleware
func (s *Server) Setup() {
	// Set gin mode
	gin.SetMode(s.config.Server.Mode)

	// Create router
	s.router = gin.New()

	// Add middleware
	s.router.Use(gin.Logger())
	s.router.Use(gin.Recovery())
	s.router.Use(corsMiddleware())
	s.router.Use(requestIDMiddleware())

	// Setup routes
	s.setupRoutes()

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}
}

// setupRoutes sets up all the routes
func (s *Server) setupRoutes() {
	// Create handlers
	healthHandler := handlers.NewHealthHandler(s.engine)
	searchHandler := handlers.NewSearchHandler(s.engine)
	ingestHandler := handlers.NewIngestHandler(s.engine)

	// Health endpoints
	s.router.GET("/health", healthHandler.HealthCheck)
	s.router.GET("/ready", healthHandler.ReadinessCheck)
	s.router.GET("/live", healthHandler.LivenessCheck) // Kubernetes liveness probe

	// API v1 routes
	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/search", searchHandler.Search)

		ingest := v1.Group("/ingest")
		{
			ingest.POST("/documents", ingestHandler.AddDocuments)
			ingest.DELETE("/documents/:id", ingestHandler.DeleteDocument)
		}
	}
}

// Router returns the underlying gin engine, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the server
func (s *Server) Start() error {
	fmt.Printf("Starting server on %s\n", s.server.Addr)
	return s.server.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	fmt.Println("Stopping server...")
	return s.server.Shutdown(ctx)
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// requestIDMiddleware assigns each request a correlation ID, honoring one
// supplied by the caller.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Header(RequestIDHeader, id)
		c.Set("request_id", id)
		c.Next()
	}
}
