// Package http exposes the Taskify API over HTTP/JSON using gin.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskify-app/taskify/internal/logging"
	"github.com/taskify-app/taskify/internal/server/models"
)

// UserService is the subset of the user service consumed by the HTTP layer.
type UserService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// TaskService is the ownership-enforced task facade consumed by the HTTP
// layer. Implementations must scope every operation to the given user ID.
type TaskService interface {
	Create(ctx context.Context, userID, title, description, priority string) (*models.Task, error)
	List(ctx context.Context, userID string) ([]*models.Task, error)
	Update(ctx context.Context, userID, taskID string, patch models.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, userID, taskID string) error
}

// HTTPServer serves the public REST API.
type HTTPServer struct {
	address   string
	logger    logging.Logger
	users     UserService
	tasks     TaskService
	jwtSecret []byte
}

// NewHTTPServer constructs an HTTPServer bound to the given services.
func NewHTTPServer(a string, l logging.Logger, us UserService, ts TaskService, secretKey string) (*HTTPServer, error) {
	return &HTTPServer{
		address:   a,
		logger:    l.With("module", "http_server"),
		users:     us,
		tasks:     ts,
		jwtSecret: []byte(secretKey),
	}, nil
}

// Router assembles the gin engine with all routes. One canonical route per
// operation.
func (s *HTTPServer) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	auth := r.Group("/auth")
	{
		auth.POST("/register", s.register)
		auth.POST("/login", s.login)
		auth.GET("/me", s.authRequired(), s.me)
	}

	tasks := r.Group("/tasks", s.authRequired())
	{
		tasks.GET("", s.listTasks)
		tasks.POST("", s.createTask)
		tasks.PUT("/:id", s.updateTask)
		tasks.DELETE("/:id", s.deleteTask)
	}

	return r
}

// Run starts the HTTP server and shuts it down gracefully when ctx is
// cancelled.
func (s *HTTPServer) Run(ctx context.Context) error {
	gin.SetMode(gin.ReleaseMode)

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
