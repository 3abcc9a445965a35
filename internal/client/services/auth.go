// Package services contains the application services of the replaycoach
// client: thin orchestration between the API gateway, the session store,
// and the per-resource state kept for the views.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/replaycoach/internal/client/api"
	"github.com/dmitrijs2005/replaycoach/internal/client/models"
	"github.com/dmitrijs2005/replaycoach/internal/client/resource"
	"github.com/dmitrijs2005/replaycoach/internal/client/session"
	"github.com/dmitrijs2005/replaycoach/internal/logging"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register / Login: call the backend, persist the returned token (and
//     user when present), and install the token on the API client.
//   - Logout: clear the persisted session and the client token. Local only;
//     no server call exists for it.
//   - Restore: re-install a previously persisted token at startup.
//
// All methods honor context cancellation.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Logout(ctx context.Context) error
	Restore(ctx context.Context) error
	IsAuthenticated(ctx context.Context) bool
	CurrentUser(ctx context.Context) (*models.User, error)
	Err() string
}

type authService struct {
	client api.Client
	store  session.Store
	log    logging.Logger
	state  resource.Remote[models.AuthResponse]
}

// NewAuthService constructs an AuthService bound to the given API client
// and session store.
func NewAuthService(client api.Client, store session.Store, log logging.Logger) AuthService {
	return &authService{client: client, store: store, log: log}
}

func (a *authService) Register(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	return a.authenticate(ctx, "/api/auth/register", email, password, "Registration failed")
}

func (a *authService) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	return a.authenticate(ctx, "/api/auth/login", email, password, "Login failed")
}

func (a *authService) authenticate(ctx context.Context, path, email, password, fallback string) (*models.AuthResponse, error) {
	return a.state.Run(ctx, func(ctx context.Context) (*models.AuthResponse, error) {
		var out models.AuthResponse
		if err := a.client.Post(ctx, path, models.Credentials{Email: email, Password: password}, &out); err != nil {
			return nil, err
		}
		if err := a.store.SaveAuth(ctx, out.AccessToken, out.User); err != nil {
			return nil, fmt.Errorf("persist session: %w", err)
		}
		a.client.SetToken(out.AccessToken)
		a.log.Info(ctx, "authenticated", "email", email)
		return &out, nil
	}, func(err error) string {
		return api.ErrorMessage(err, fallback)
	})
}

// Logout clears the persisted token and cached user; the token is opaque
// and there is nothing to revoke server-side.
func (a *authService) Logout(ctx context.Context) error {
	if err := a.store.ClearAuth(ctx); err != nil {
		return err
	}
	a.client.SetToken("")
	a.log.Info(ctx, "logged out")
	return nil
}

// Restore installs the persisted token, if any, on the API client. Called
// once at startup; an expired token is only discovered when a request
// carrying it later fails.
func (a *authService) Restore(ctx context.Context) error {
	tok, err := a.store.Token(ctx)
	if err != nil {
		return err
	}
	if tok != "" {
		a.client.SetToken(tok)
	}
	return nil
}

func (a *authService) IsAuthenticated(ctx context.Context) bool {
	return a.store.IsAuthenticated(ctx)
}

func (a *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	return a.store.User(ctx)
}

func (a *authService) Err() string {
	return a.state.Err()
}
