package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gartstein/jobboard/internal/jobboard/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server wraps the HTTP server serving the job board API.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	endpoint   string
}

// NewServer builds the router and constructs a Server on the given port.
func NewServer(port int, handler *JobHandler, jwtSecret string, logger *zap.Logger) *Server {
	endpoint := fmt.Sprintf(":%d", port)
	return &Server{
		httpServer: &http.Server{
			Addr:    endpoint,
			Handler: NewRouter(handler, jwtSecret),
		},
		logger:   logger,
		endpoint: endpoint,
	}
}

// NewRouter registers the API routes. Mutation routes sit behind the auth
// middleware; browsing and sign-in are public.
func NewRouter(h *JobHandler, jwtSecret string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	router.Use(cors.New(config))

	api := router.Group("/api/v1")
	{
		api.POST("/auth/signup", h.SignUp)
		api.POST("/auth/signin", h.SignIn)
		api.POST("/auth/signout", h.SignOut)

		api.GET("/jobs", h.ListJobs)
		api.GET("/jobs/:id", h.GetJob)
		api.GET("/companies", h.ListCompanies)

		protected := api.Group("")
		protected.Use(auth.RequireAuth(jwtSecret))
		{
			protected.GET("/auth/me", h.Me)
			protected.POST("/jobs", h.CreateJob)
			protected.PATCH("/jobs/:id", h.UpdateJob)
			protected.DELETE("/jobs/:id", h.DeleteJob)
			protected.POST("/jobs/:id/status", h.ToggleStatus)
		}
	}
	return router
}

// Start runs the HTTP server, returning on the first error.
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", zap.String("endpoint", s.endpoint))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP serve error: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() {
	s.logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	s.logger.Info("Server stopped")
}
