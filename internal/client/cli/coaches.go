package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/replaycoach/internal/client/models"
	"github.com/dmitrijs2005/replaycoach/internal/client/services"
	"github.com/dmitrijs2005/replaycoach/internal/common"
)

// parseCoachFilters reads key=value arguments into CoachFilters.
// Unrecognized keys and unparsable values are ignored.
func parseCoachFilters(args []string) services.CoachFilters {
	var f services.CoachFilters
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			continue
		}
		switch key {
		case "spec", "specialization":
			f.Specialization = value
		case "minrating":
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				f.MinRating = v
			}
		case "maxrate":
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				f.MaxRate = v
			}
		case "available":
			if v, err := strconv.ParseBool(value); err == nil {
				f.Available = &v
			}
		}
	}
	return f
}

// Coaches lists the marketplace, optionally filtered.
func (a *App) Coaches(ctx context.Context, args []string) error {
	list, err := a.coaches.List(ctx, parseCoachFilters(args))
	if err != nil {
		printlnFn(a.coaches.Err())
		return err
	}
	if len(list) == 0 {
		printlnFn("No coaches match the given filters")
		return nil
	}
	for _, c := range list {
		status := "unavailable"
		if c.Available {
			status = "available"
		}
		printlnFn(fmt.Sprintf("%s  %-20s  %.1f★ (%d reviews)  $%.0f/hr  %-11s  %s",
			c.ID, c.Name, c.Rating, c.ReviewsCount, c.HourlyRate, status,
			strings.Join(c.Specialization, ", ")))
	}
	return nil
}

// Slots shows a coach's bookable time slots for a date (YYYY-MM-DD).
func (a *App) Slots(ctx context.Context, args []string) error {
	if len(args) != 2 {
		printlnFn("usage: slots <coach_id> <date>")
		return nil
	}
	slots, err := a.coaches.Availability(ctx, args[0], args[1])
	if err != nil {
		printlnFn("Failed to fetch availability")
		return err
	}
	if len(slots) == 0 {
		printlnFn("No slots on", args[1])
		return nil
	}
	for _, s := range slots {
		mark := " "
		if s.Available {
			mark = "*"
		}
		printlnFn(fmt.Sprintf("%s %s", mark, s.Time))
	}
	return nil
}

// Book creates a booking: book <coach_id> <date> <time> <minutes>.
func (a *App) Book(ctx context.Context, args []string) error {
	if len(args) != 4 {
		printlnFn("usage: book <coach_id> <date> <time> <minutes>")
		return nil
	}
	minutes, err := strconv.Atoi(args[3])
	if err != nil || minutes <= 0 {
		printlnFn("Invalid duration:", args[3])
		return nil
	}

	booking, err := a.coaches.Book(ctx, models.BookingRequest{
		CoachID:  args[0],
		Date:     args[1],
		Time:     args[2],
		Duration: minutes,
	})
	if err != nil {
		printlnFn(bookingErrMessage(err))
		return err
	}
	printlnFn(fmt.Sprintf("Booked session %s on %s at %s (%d min)", booking.ID, booking.Date, booking.Time, booking.Duration))
	return nil
}

// Review publishes a coach review: review <coach_id> <rating> [comment...].
func (a *App) Review(ctx context.Context, args []string) error {
	if len(args) < 2 {
		printlnFn("usage: review <coach_id> <rating 1-5> [comment]")
		return nil
	}
	rating, err := strconv.Atoi(args[1])
	if err != nil {
		printlnFn("Please select a rating")
		return nil
	}

	_, err = a.coaches.Review(ctx, models.ReviewRequest{
		CoachID: args[0],
		Rating:  rating,
		Comment: strings.Join(args[2:], " "),
	})
	if err != nil {
		if errors.Is(err, common.ErrInvalidRating) {
			printlnFn("Please select a rating between 1 and 5")
			return err
		}
		printlnFn(bookingErrMessage(err))
		return err
	}
	printlnFn("Review submitted")
	return nil
}

func bookingErrMessage(err error) string {
	if errors.Is(err, common.ErrServerUnavailable) {
		return "Server unavailable, please try again"
	}
	return err.Error()
}
