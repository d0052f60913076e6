// Package server initializes and runs the authentication server. It wires
// configuration, database, repositories, services and the HTTP endpoint, and
// handles graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/mlevshin/authgate/internal/logging"
	"github.com/mlevshin/authgate/internal/server/auth"
	"github.com/mlevshin/authgate/internal/server/clients"
	"github.com/mlevshin/authgate/internal/server/config"
	"github.com/mlevshin/authgate/internal/server/httpapi"
	"github.com/mlevshin/authgate/internal/server/models"
	"github.com/mlevshin/authgate/internal/server/repositories/repomanager"
	"github.com/mlevshin/authgate/internal/server/services"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	authService *services.AuthService
	userService *services.UserService
}

func NewApp(c *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	clientList := make([]models.Client, 0, len(c.Clients))
	for _, cc := range c.Clients {
		clientList = append(clientList, models.Client{ID: cc.ID, Secret: cc.Secret})
	}
	registry := clients.NewRegistry(clientList)

	verifier := auth.NewBcryptVerifier(c.BcryptCost)
	minter := auth.NewMinter([]byte(c.SecretKey), c.AccessTokenValidityDuration, c.RefreshTokenValidityDuration)

	as := services.NewAuthService(db, rm, registry, verifier, minter)
	us := services.NewUserService(db, rm, verifier)

	return &App{config: c, logger: logger, db: db, authService: as, userService: us}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewServer(app.config.EndpointAddrHTTP, app.logger, app.authService, app.userService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
