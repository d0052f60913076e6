package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/mlevshin/authgate/internal/client/api"
	"github.com/mlevshin/authgate/internal/client/config"
)

// apiClient is the surface of api.Client the commands need. Tests substitute
// a stub.
type apiClient interface {
	Register(ctx context.Context, email, password string) (*api.User, error)
	Login(ctx context.Context, email, password string) (*api.TokenPair, error)
	LoginByClient(ctx context.Context, clientID, clientSecret string) (*api.ClientToken, error)
	Refresh(ctx context.Context, refreshToken string) (*api.TokenPair, error)
	Revoke(ctx context.Context, refreshToken string) error
}

type App struct {
	config *config.Config
	api    apiClient
	reader *bufio.Reader

	userName     string
	refreshToken string
}

func NewApp(c *config.Config) (*App, error) {
	client := api.NewClient(c.ServerEndpointAddr, c.RequestTimeout)
	return &App{config: c, api: client, reader: bufio.NewReader(os.Stdin)}, nil
}

func (a *App) isLoggedIn() bool {
	return a.refreshToken != ""
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}
