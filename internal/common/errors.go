// Package common defines shared constants and sentinel errors used across
// the replaycoach client layers. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Validation errors, raised before any network call.
	ErrNotReplayFile = errors.New("not a .dem replay file")
	ErrReplayTooLarge = errors.New("replay file exceeds 200 MiB")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// Workflow / flow control errors.
	ErrRequestInFlight = errors.New("request already in flight")
	ErrNoFileSelected  = errors.New("no file selected")

	// Auth errors.
	ErrNotAuthenticated = errors.New("not authenticated")

	// Transport-level failure with no server response.
	ErrServerUnavailable = errors.New("server unavailable")
)
