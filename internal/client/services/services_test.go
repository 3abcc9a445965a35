package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/replaycoach/internal/client/session"
	"github.com/dmitrijs2005/replaycoach/internal/logging"
)

// ---- shared test helpers ----

func testLogger() logging.Logger {
	return logging.NewTextLogger(io.Discard, "error")
}

func setupStore(t *testing.T) session.Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE session (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return session.NewWithDB(db)
}

// decodeInto copies a fixture value into the out pointer the way the real
// client would decode a JSON body.
func decodeInto(t *testing.T, fixture any, out any) {
	t.Helper()
	b, err := json.Marshal(fixture)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, out))
}

// fakeAPI implements api.Client with per-verb hooks and records the last
// request of each kind.
type fakeAPI struct {
	mu sync.Mutex

	getFn  func(path string, query url.Values, out any) error
	postFn func(path string, body any, out any) error

	token string

	lastGetPath  string
	lastGetQuery url.Values
	lastPostPath string
	lastPostBody any
	postCalls    int
}

func (f *fakeAPI) Get(ctx context.Context, path string, query url.Values, out any) error {
	f.mu.Lock()
	f.lastGetPath = path
	f.lastGetQuery = query
	fn := f.getFn
	f.mu.Unlock()
	if fn != nil {
		return fn(path, query, out)
	}
	return nil
}

func (f *fakeAPI) Post(ctx context.Context, path string, body any, out any) error {
	f.mu.Lock()
	f.lastPostPath = path
	f.lastPostBody = body
	f.postCalls++
	fn := f.postFn
	f.mu.Unlock()
	if fn != nil {
		return fn(path, body, out)
	}
	return nil
}

func (f *fakeAPI) UploadFile(ctx context.Context, path, field, filename string, r io.Reader, size int64, onProgress func(int), out any) error {
	return nil
}

func (f *fakeAPI) SetToken(token string) {
	f.mu.Lock()
	f.token = token
	f.mu.Unlock()
}

func (f *fakeAPI) currentToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}
