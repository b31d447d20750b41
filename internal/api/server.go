package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wizqo2024/wizqo-sub002/internal/planner"
	"github.com/wizqo2024/wizqo-sub002/internal/validator"
	"github.com/wizqo2024/wizqo-sub002/shared/logging"
	"github.com/wizqo2024/wizqo-sub002/shared/monitoring"
	"github.com/wizqo2024/wizqo-sub002/shared/storage"
)

// Deps are the services the HTTP layer is wired to.
type Deps struct {
	Validator      *validator.Validator
	Planner        *planner.Generator
	Plans          storage.PlanRepository
	Progress       storage.ProgressRepository
	Monitor        *monitoring.Monitor
	Metrics        *monitoring.Metrics
	Logger         *logging.Logger
	JWTSecret      string
	AllowedOrigins []string
}

type Server struct {
	deps Deps
	log  *logging.Logger
}

func NewServer(deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = logging.Nop()
	}
	if deps.Monitor == nil {
		deps.Monitor = monitoring.NewMonitor(deps.Logger)
	}
	return &Server{deps: deps, log: deps.Logger}
}

// Router builds the gin engine with every route and middleware.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(requestID(), recovery(s.log), requestLogger(s.log))
	if s.deps.Metrics != nil {
		r.Use(recordMetrics(s.deps.Metrics))
	}
	r.Use(corsMiddleware(s.deps.AllowedOrigins))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found", "code": "not_found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed", "code": "method_not_allowed"})
	})

	r.GET("/metrics", monitoring.MetricsHandler())

	api := r.Group("/api")
	api.GET("/health", monitoring.HealthHandler(s.deps.Monitor))
	api.POST("/validate-hobby", s.validateHobby)
	api.POST("/generate-plan", s.generatePlan)

	user := api.Group("", requireAuth(s.deps.JWTSecret, s.log))
	user.POST("/hobby-plans", s.savePlan)
	user.GET("/hobby-plans/:userId", s.listPlans)
	user.GET("/hobby-plans/:userId/:planId", s.getPlan)
	user.DELETE("/hobby-plans/:userId/:planId", s.deletePlan)
	user.POST("/user-progress", s.saveProgress)
	user.GET("/user-progress/:userId", s.listProgress)
	user.GET("/user-progress/:userId/:planId", s.getProgress)

	return r
}

// ListenAndServe runs the HTTP server until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
