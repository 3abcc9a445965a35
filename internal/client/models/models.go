// Package models defines the wire-level data model exchanged with the
// replaycoach backend. The client holds no authoritative state: every type
// here mirrors a JSON shape owned by the server.
package models

import "strings"

// User is the account object cached alongside the session token.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// Credentials is the request body for both register and login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        *User  `json:"user,omitempty"`
}

// UploadResponse acknowledges an accepted replay upload.
type UploadResponse struct {
	MatchID string `json:"match_id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Advice priority levels, descending significance.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Advice is a single piece of generated feedback tied to a match.
// Priority values other than high/medium/low are treated as low.
type Advice struct {
	Type        string `json:"type,omitempty"`
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// PlayerSlot is one entry of the match roster.
type PlayerSlot struct {
	PlayerID        int    `json:"player_id"`
	HeroName        string `json:"hero_name"`
	HeroDisplayName string `json:"hero_display_name,omitempty"`
	Team            string `json:"team,omitempty"`
	Position        string `json:"position,omitempty"`
}

// Match is the server-side analysis record for one uploaded replay.
// Metrics keys are not enumerable client-side (gpm, xpm, kills, ...).
type Match struct {
	MatchID          string             `json:"match_id"`
	Filename         string             `json:"filename,omitempty"`
	Status           string             `json:"status,omitempty"`
	Hero             string             `json:"hero,omitempty"`
	SelectedHeroName *string            `json:"selected_hero_name"`
	Duration         int                `json:"duration"`
	Result           string             `json:"result,omitempty"`
	Metrics          map[string]float64 `json:"metrics"`
	Advice           []Advice           `json:"advice"`
	Players          []PlayerSlot       `json:"players,omitempty"`
	CreatedAt        string             `json:"created_at,omitempty"`
}

// HeroSelected reports whether the match already carries a chosen hero
// perspective. A nil or empty selected_hero_name means the results view
// must enter hero disambiguation.
func (m *Match) HeroSelected() bool {
	return m.SelectedHeroName != nil && *m.SelectedHeroName != ""
}

// CandidateHeroes returns all distinct hero identifiers observed across the
// match-level hero field and the roster, deduplicated and order-preserving
// by first occurrence. This is the defensive merge of the two hero-name
// sources; it is the canonical reconciliation rule for disambiguation.
func (m *Match) CandidateHeroes() []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	add(m.Hero)
	for _, p := range m.Players {
		add(p.HeroName)
	}
	return out
}

// SelectHeroRequest is the body for POST /api/matches/{id}/select-hero.
type SelectHeroRequest struct {
	SelectedHeroName string `json:"selected_hero_name"`
}

// Coach is a marketplace listing.
type Coach struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	AvatarURL      string   `json:"avatar_url,omitempty"`
	Specialization []string `json:"specialization"`
	Rating         float64  `json:"rating"`
	ReviewsCount   int      `json:"reviews_count"`
	HourlyRate     float64  `json:"hourly_rate"`
	Bio            string   `json:"bio,omitempty"`
	Available      bool     `json:"available"`
}

// TimeSlot is one bookable slot of a coach's day.
type TimeSlot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// AvailabilityResponse wraps GET /api/coaches/{id}/availability.
type AvailabilityResponse struct {
	Slots []TimeSlot `json:"slots"`
}

// BookingRequest is the body for POST /api/bookings. Duration is minutes.
type BookingRequest struct {
	CoachID  string `json:"coach_id"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Duration int    `json:"duration"`
}

// Booking is a confirmed coaching session.
type Booking struct {
	ID       string  `json:"id"`
	CoachID  string  `json:"coach_id"`
	Date     string  `json:"date"`
	Time     string  `json:"time"`
	Duration int     `json:"duration"`
	Amount   float64 `json:"amount,omitempty"`
	Status   string  `json:"status,omitempty"`
}

// ReviewRequest is the body for POST /api/reviews.
type ReviewRequest struct {
	CoachID   string `json:"coach_id"`
	BookingID string `json:"booking_id,omitempty"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
}

// Review is a published coach review.
type Review struct {
	ID        string `json:"id"`
	CoachID   string `json:"coach_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Subscription describes the account's billing plan state.
type Subscription struct {
	Status            string `json:"status"`
	Plan              string `json:"plan,omitempty"`
	CurrentPeriodEnd  string `json:"current_period_end,omitempty"`
	CancelAtPeriodEnd bool   `json:"cancel_at_period_end,omitempty"`
}

// Active reports whether the subscription grants access right now.
func (s *Subscription) Active() bool {
	return s != nil && (s.Status == "active" || s.Status == "trialing")
}

// BillingItem is one line of the billing history.
type BillingItem struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
	Status string  `json:"status"`
}

// CheckoutResponse carries the provider-hosted payment page URL.
type CheckoutResponse struct {
	CheckoutURL string `json:"checkout_url"`
}
