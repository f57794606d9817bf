package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danmuck/modhost/internal/auth"
	"github.com/danmuck/modhost/internal/config"
	"github.com/danmuck/modhost/internal/modular"
	"github.com/danmuck/modhost/internal/observability"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	version         = "0.1.0"
	shutdownTimeout = 5 * time.Second
)

// Server hosts one application's modules over HTTP.
type Server struct {
	ID       string
	Addr     string
	Appeared time.Time
	Registry *modular.Registry

	router *gin.Engine
	admin  auth.Validator
}

// Appear builds the router and middleware stack. Routes are added by
// RegisterRoutes.
func Appear(cfg config.HostConfig, registry *modular.Registry) *Server {
	observability.RegisterMetrics()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestID())
	r.Use(observability.RequestLogger(observability.InitLogger(cfg.Name)))
	r.Use(observability.RequestMetricsMiddleware(cfg.Name))
	r.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(cfg.CorsOrigins),
		AllowMethods: []string{"GET", "HEAD"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	var admin auth.Validator
	if cfg.AdminToken != "" {
		admin = auth.StaticToken{Token: cfg.AdminToken}
	}

	return &Server{
		ID:       cfg.Name,
		Addr:     cfg.Addr,
		Appeared: time.Now(),
		Registry: registry,
		router:   r,
		admin:    admin,
	}
}

func (s *Server) HTTPRouter() *gin.Engine {
	return s.router
}

// Run registers routes and serves on Addr until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.RegisterRoutes()
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	log.Info().Str("host", s.ID).Str("addr", s.Addr).Msg("modhost serving")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	log.Info().Str("host", s.ID).Msg("modhost shutting down")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"uptime":  time.Since(s.Appeared).String(),
		"service": s.ID,
		"version": version,
	})
}

// ready reports whether the application package can be loaded.
func (s *Server) ready(c *gin.Context) {
	app, err := s.Registry.Application()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"ready":   false,
			"service": s.ID,
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ready":       true,
		"uptime":      time.Since(s.Appeared).String(),
		"service":     s.ID,
		"application": app.Name,
		"version":     version,
	})
}

func normalizeOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"http://localhost:3000"}
	}
	return origins
}
