// Package httpapi exposes the authentication operations as a JSON-over-HTTP
// API and maps service sentinel errors to status codes.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mlevshin/authgate/internal/logging"
	"github.com/mlevshin/authgate/internal/server/models"
)

// authSvc is the slice of AuthService the transport needs.
type authSvc interface {
	Login(ctx context.Context, email, password string) (*models.TokenPair, error)
	LoginByClient(ctx context.Context, clientID, clientSecret string) (*models.ClientToken, error)
	RefreshToken(ctx context.Context, code string) (*models.TokenPair, error)
	Revoke(ctx context.Context, code string) error
}

// userSvc is the slice of UserService the transport needs.
type userSvc interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
}

type Server struct {
	address string
	auth    authSvc
	users   userSvc
	logger  logging.Logger
}

func NewServer(address string, l logging.Logger, auth authSvc, users userSvc) *Server {
	return &Server{
		address: address,
		auth:    auth,
		users:   users,
		logger:  l.With("module", "http_server"),
	}
}

func (s *Server) router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", s.health)

	v1 := r.Group("/api/v1")
	v1.POST("/auth/login", s.login)
	v1.POST("/auth/client-login", s.loginByClient)
	v1.POST("/auth/refresh", s.refresh)
	v1.POST("/auth/revoke", s.revoke)
	v1.POST("/users", s.register)

	return r
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
