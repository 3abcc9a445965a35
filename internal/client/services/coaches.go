package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/replaycoach/internal/client/api"
	"github.com/dmitrijs2005/replaycoach/internal/client/models"
	"github.com/dmitrijs2005/replaycoach/internal/client/resource"
	"github.com/dmitrijs2005/replaycoach/internal/common"
	"github.com/dmitrijs2005/replaycoach/internal/logging"
)

// CoachFilters narrows the marketplace listing. Zero values mean "no
// filter" and are omitted from the query string.
type CoachFilters struct {
	Specialization string
	MinRating      float64
	MaxRate        float64
	Available      *bool
}

// Query renders the filters as URL query parameters, including only the
// fields that were set.
func (f CoachFilters) Query() url.Values {
	q := url.Values{}
	if f.Specialization != "" {
		q.Set("specialization", f.Specialization)
	}
	if f.MinRating > 0 {
		q.Set("min_rating", strconv.FormatFloat(f.MinRating, 'f', -1, 64))
	}
	if f.MaxRate > 0 {
		q.Set("max_rate", strconv.FormatFloat(f.MaxRate, 'f', -1, 64))
	}
	if f.Available != nil {
		q.Set("available", strconv.FormatBool(*f.Available))
	}
	return q
}

// CoachService covers the marketplace: listing with filters, availability
// lookup, booking, and reviews.
type CoachService interface {
	List(ctx context.Context, filters CoachFilters) ([]models.Coach, error)
	Availability(ctx context.Context, coachID, date string) ([]models.TimeSlot, error)
	Book(ctx context.Context, req models.BookingRequest) (*models.Booking, error)
	Review(ctx context.Context, req models.ReviewRequest) (*models.Review, error)
	Err() string
}

type coachService struct {
	client api.Client
	log    logging.Logger

	coaches resource.Remote[[]models.Coach]
}

// NewCoachService constructs a CoachService over the given API client.
func NewCoachService(client api.Client, log logging.Logger) CoachService {
	return &coachService{client: client, log: log}
}

func (c *coachService) List(ctx context.Context, filters CoachFilters) ([]models.Coach, error) {
	out, err := c.coaches.Run(ctx, func(ctx context.Context) (*[]models.Coach, error) {
		var list []models.Coach
		if err := c.client.Get(ctx, "/api/coaches", filters.Query(), &list); err != nil {
			return nil, err
		}
		return &list, nil
	}, func(err error) string {
		return api.ErrorMessage(err, "Failed to fetch coaches")
	})
	if err != nil {
		return nil, err
	}
	return *out, nil
}

func (c *coachService) Availability(ctx context.Context, coachID, date string) ([]models.TimeSlot, error) {
	q := url.Values{}
	if date != "" {
		q.Set("date", date)
	}
	var out models.AvailabilityResponse
	path := fmt.Sprintf("/api/coaches/%s/availability", coachID)
	if err := c.client.Get(ctx, path, q, &out); err != nil {
		return nil, err
	}
	return out.Slots, nil
}

// Book submits a booking. An idempotency key is attached so a re-submitted
// request after an ambiguous failure cannot double-book the slot.
func (c *coachService) Book(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	body := struct {
		models.BookingRequest
		IdempotencyKey string `json:"idempotency_key"`
	}{BookingRequest: req, IdempotencyKey: uuid.NewString()}

	var out models.Booking
	if err := c.client.Post(ctx, "/api/bookings", body, &out); err != nil {
		return nil, err
	}
	c.log.Info(ctx, "booking created", "coach_id", req.CoachID, "date", req.Date, "time", req.Time)
	return &out, nil
}

func (c *coachService) Review(ctx context.Context, req models.ReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, common.ErrInvalidRating
	}
	var out models.Review
	if err := c.client.Post(ctx, "/api/reviews", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *coachService) Err() string {
	return c.coaches.Err()
}
