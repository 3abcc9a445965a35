// Package resource provides Remote[T], a guarded {data, loading, error}
// triple around a remote fetch. The services all use it instead of keeping
// four divergent copies of the same loading/error bookkeeping, and it is
// also the single place enforcing "one request in flight at a time".
package resource

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/replaycoach/internal/common"
)

// Remote holds the last fetched value of a remote resource together with
// its loading flag and last error message. The zero value is ready to use.
type Remote[T any] struct {
	mu      sync.Mutex
	data    *T
	loading bool
	errMsg  string
}

// Run executes fetch unless a call is already outstanding, in which case it
// returns common.ErrRequestInFlight without touching any state. On success
// the held value is replaced; on failure the previous value is kept
// untouched and msg(err) is recorded as the error message.
func (r *Remote[T]) Run(ctx context.Context, fetch func(ctx context.Context) (*T, error), msg func(err error) string) (*T, error) {
	r.mu.Lock()
	if r.loading {
		r.mu.Unlock()
		return nil, common.ErrRequestInFlight
	}
	r.loading = true
	r.errMsg = ""
	r.mu.Unlock()

	data, err := fetch(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading = false
	if err != nil {
		r.errMsg = msg(err)
		return nil, err
	}
	r.data = data
	return data, nil
}

// Get returns the currently held value, which may be nil before the first
// successful fetch or after Reset.
func (r *Remote[T]) Get() *T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data
}

// Loading reports whether a fetch is outstanding.
func (r *Remote[T]) Loading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loading
}

// Err returns the last recorded error message, empty when the last fetch
// succeeded (or none ran yet).
func (r *Remote[T]) Err() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.errMsg
}

// ClearError drops the recorded error message.
func (r *Remote[T]) ClearError() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errMsg = ""
}

// Reset drops the held value and error, e.g. when navigating away.
func (r *Remote[T]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = nil
	r.errMsg = ""
}
