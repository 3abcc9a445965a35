package services

import (
	"context"

	"github.com/dmitrijs2005/replaycoach/internal/client/api"
	"github.com/dmitrijs2005/replaycoach/internal/client/models"
	"github.com/dmitrijs2005/replaycoach/internal/client/resource"
	"github.com/dmitrijs2005/replaycoach/internal/logging"
)

// SubscriptionService covers account billing state. Payment itself happens
// on the provider-hosted checkout page; the client only obtains the URL.
type SubscriptionService interface {
	Get(ctx context.Context) (*models.Subscription, error)
	// BillingHistory returns the invoice lines; the data is optional and
	// fetch failures yield an empty history rather than an error.
	BillingHistory(ctx context.Context) []models.BillingItem
	Checkout(ctx context.Context, priceID string) (string, error)
	Cancel(ctx context.Context) (*models.Subscription, error)
	Resume(ctx context.Context) (*models.Subscription, error)
	Current() *models.Subscription
	Err() string
}

type subscriptionService struct {
	client api.Client
	log    logging.Logger

	sub resource.Remote[models.Subscription]
}

// NewSubscriptionService constructs a SubscriptionService over the given
// API client.
func NewSubscriptionService(client api.Client, log logging.Logger) SubscriptionService {
	return &subscriptionService{client: client, log: log}
}

func (s *subscriptionService) Get(ctx context.Context) (*models.Subscription, error) {
	return s.sub.Run(ctx, func(ctx context.Context) (*models.Subscription, error) {
		var out models.Subscription
		if err := s.client.Get(ctx, "/api/subscription", nil, &out); err != nil {
			return nil, err
		}
		return &out, nil
	}, func(err error) string {
		return api.ErrorMessage(err, "Failed to fetch subscription")
	})
}

func (s *subscriptionService) BillingHistory(ctx context.Context) []models.BillingItem {
	var out []models.BillingItem
	if err := s.client.Get(ctx, "/api/subscription/billing-history", nil, &out); err != nil {
		s.log.Warn(ctx, "billing history unavailable", "error", err.Error())
		return nil
	}
	return out
}

func (s *subscriptionService) Checkout(ctx context.Context, priceID string) (string, error) {
	var out models.CheckoutResponse
	body := map[string]string{"price_id": priceID}
	if err := s.client.Post(ctx, "/api/subscription/checkout", body, &out); err != nil {
		return "", err
	}
	return out.CheckoutURL, nil
}

// Cancel flags the subscription for cancellation and re-fetches its state.
func (s *subscriptionService) Cancel(ctx context.Context) (*models.Subscription, error) {
	if err := s.client.Post(ctx, "/api/subscription/cancel", nil, nil); err != nil {
		return nil, err
	}
	s.log.Info(ctx, "subscription cancelled")
	return s.Get(ctx)
}

// Resume undoes a pending cancellation and re-fetches the state.
func (s *subscriptionService) Resume(ctx context.Context) (*models.Subscription, error) {
	if err := s.client.Post(ctx, "/api/subscription/resume", nil, nil); err != nil {
		return nil, err
	}
	s.log.Info(ctx, "subscription resumed")
	return s.Get(ctx)
}

func (s *subscriptionService) Current() *models.Subscription {
	return s.sub.Get()
}

func (s *subscriptionService) Err() string {
	return s.sub.Err()
}
