package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/replaycoach/internal/client/api"
	"github.com/dmitrijs2005/replaycoach/internal/client/models"
	"github.com/dmitrijs2005/replaycoach/internal/client/resource"
	"github.com/dmitrijs2005/replaycoach/internal/logging"
)

// MatchService serves the results view: match listing, analysis fetch, and
// hero re-selection.
//
// The currently displayed match is single-flight guarded: while a fetch or
// a hero selection is outstanding, further Get/SelectHero calls return
// common.ErrRequestInFlight. A failed selection leaves the previously held
// match untouched.
type MatchService interface {
	List(ctx context.Context) ([]models.Match, error)
	Get(ctx context.Context, matchID string) (*models.Match, error)
	SelectHero(ctx context.Context, matchID, heroName string) (*models.Match, error)
	Current() *models.Match
	// NeedsHeroSelection reports whether the results view must enter the
	// hero-disambiguation sub-state for the held match.
	NeedsHeroSelection() bool
	Err() string
	ClearError()
}

type matchService struct {
	client api.Client
	log    logging.Logger

	matches resource.Remote[[]models.Match]
	current resource.Remote[models.Match]
}

// NewMatchService constructs a MatchService over the given API client.
func NewMatchService(client api.Client, log logging.Logger) MatchService {
	return &matchService{client: client, log: log}
}

func (m *matchService) List(ctx context.Context) ([]models.Match, error) {
	out, err := m.matches.Run(ctx, func(ctx context.Context) (*[]models.Match, error) {
		var list []models.Match
		if err := m.client.Get(ctx, "/api/matches", nil, &list); err != nil {
			return nil, err
		}
		return &list, nil
	}, func(err error) string {
		return api.ErrorMessage(err, "Failed to fetch matches")
	})
	if err != nil {
		return nil, err
	}
	return *out, nil
}

func (m *matchService) Get(ctx context.Context, matchID string) (*models.Match, error) {
	return m.current.Run(ctx, func(ctx context.Context) (*models.Match, error) {
		var match models.Match
		path := fmt.Sprintf("/api/matches/%s", matchID)
		if err := m.client.Get(ctx, path, nil, &match); err != nil {
			return nil, err
		}
		return &match, nil
	}, func(err error) string {
		return api.ErrorMessage(err, "Failed to fetch analysis")
	})
}

// SelectHero posts the chosen hero and replaces the held match with the
// server response; the backend re-scopes metrics and advice to the new
// perspective. Last response wins across concurrent clients.
func (m *matchService) SelectHero(ctx context.Context, matchID, heroName string) (*models.Match, error) {
	match, err := m.current.Run(ctx, func(ctx context.Context) (*models.Match, error) {
		var out models.Match
		path := fmt.Sprintf("/api/matches/%s/select-hero", matchID)
		if err := m.client.Post(ctx, path, models.SelectHeroRequest{SelectedHeroName: heroName}, &out); err != nil {
			return nil, err
		}
		return &out, nil
	}, func(err error) string {
		return api.ErrorMessage(err, "Failed to select hero")
	})
	if err != nil {
		return nil, err
	}
	m.log.Info(ctx, "hero selected", "match_id", matchID, "hero", heroName)
	return match, nil
}

func (m *matchService) Current() *models.Match {
	return m.current.Get()
}

func (m *matchService) NeedsHeroSelection() bool {
	match := m.current.Get()
	return match != nil && !match.HeroSelected()
}

func (m *matchService) Err() string {
	return m.current.Err()
}

func (m *matchService) ClearError() {
	m.current.ClearError()
	m.matches.ClearError()
}
