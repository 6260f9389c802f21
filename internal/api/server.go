package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/alejorodriguez96/OpenAI-Gitlab-PR-Review/internal/config"
	"github.com/alejorodriguez96/OpenAI-Gitlab-PR-Review/pkg/models"
)

// Reviewer runs the fetch → build → review → post chain for one event.
type Reviewer interface {
	ReviewMergeRequest(ctx context.Context, projectID, mrIID int) (*models.ReviewResult, error)
	ReviewPush(ctx context.Context, projectID int, sha string) (*models.ReviewResult, error)
}

// Server represents the API server
type Server struct {
	echo    *echo.Echo
	cfg     *config.Config
	reviews Reviewer
}

// NewServer creates a new API server
func NewServer(cfg *config.Config, reviews Reviewer) *Server {
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	server := &Server{
		echo:    e,
		cfg:     cfg,
		reviews: reviews,
	}

	// Setup routes
	server.setupRoutes()

	return server
}

// setupRoutes configures all endpoints
func (s *Server) setupRoutes() {
	s.echo.GET("/", s.RootHandler)
	s.echo.GET("/health", s.HealthHandler)
	s.echo.POST("/webhook", s.WebhookHandler)
}

// Start begins the API server
func (s *Server) Start() error {
	// Start server in a goroutine
	go func() {
		if err := s.echo.Start(fmt.Sprintf(":%d", s.cfg.Port)); err != nil && err != http.ErrServerClosed {
			s.echo.Logger.Fatal("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.echo.Shutdown(ctx)
}

const rootPage = `<h1>Revisor de Código con IA</h1>
<p>Esta aplicación revisa automáticamente cambios de código en GitLab usando un modelo de lenguaje.</p>
<p><a href="/health">Health Check</a></p>
<p>Webhook endpoint: <code>POST /webhook</code></p>
`

// RootHandler serves the static informational page.
func (s *Server) RootHandler(c echo.Context) error {
	return c.HTML(http.StatusOK, rootPage)
}
