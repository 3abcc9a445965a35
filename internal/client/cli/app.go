// Package cli implements the interactive terminal frontend of the
// replaycoach client: a REPL dispatching to the application services.
package cli

import (
	"bufio"
	"context"
	"os"

	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/replaycoach/internal/client/api"
	"github.com/dmitrijs2005/replaycoach/internal/client/config"
	"github.com/dmitrijs2005/replaycoach/internal/client/services"
	"github.com/dmitrijs2005/replaycoach/internal/client/session"
	"github.com/dmitrijs2005/replaycoach/internal/client/upload"
	"github.com/dmitrijs2005/replaycoach/internal/logging"
)

type App struct {
	config *config.Config
	log    logging.Logger

	store        session.Store
	auth         services.AuthService
	matches      services.MatchService
	coaches      services.CoachService
	subscription services.SubscriptionService
	uploader     *upload.Workflow

	reader *bufio.Reader
}

// NewApp wires the session store, API client, and services from config and
// restores a previously persisted session token.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.NewTextLogger(os.Stderr, c.LogLevel)

	store, err := session.Open(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error opening session store", "error", err.Error())
		return nil, err
	}

	apiClient := api.New(c.ServerBaseURL, c.RequestTimeout, log)

	auth := services.NewAuthService(apiClient, store, log)
	if err := auth.Restore(ctx); err != nil {
		log.Warn(ctx, "could not restore session", "error", err.Error())
	}

	return &App{
		config:       c,
		log:          log,
		store:        store,
		auth:         auth,
		matches:      services.NewMatchService(apiClient, log),
		coaches:      services.NewCoachService(apiClient, log),
		subscription: services.NewSubscriptionService(apiClient, log),
		uploader:     upload.New(apiClient),
		reader:       bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.auth.IsAuthenticated(context.Background())
}

// Run starts the REPL and blocks until the user exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	defer a.store.Close()
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

// status renders the prompt suffix: the cached account email when logged in.
func (a *App) status() string {
	ctx := context.Background()
	if !a.auth.IsAuthenticated(ctx) {
		return "guest"
	}
	if u, err := a.auth.CurrentUser(ctx); err == nil && u != nil {
		return u.Email
	}
	return "logged in"
}
