package upload

import (
	"context"
	"encoding/json"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/replaycoach/internal/client/api"
	"github.com/dmitrijs2005/replaycoach/internal/client/models"
	"github.com/dmitrijs2005/replaycoach/internal/common"
)

// fakeAPI implements api.Client for workflow tests.
type fakeAPI struct {
	mu          sync.Mutex
	uploadCalls int

	uploadFn func(ctx context.Context, r io.Reader, onProgress func(int), out any) error
}

func (f *fakeAPI) Get(ctx context.Context, path string, query url.Values, out any) error {
	return nil
}

func (f *fakeAPI) Post(ctx context.Context, path string, body any, out any) error {
	return nil
}

func (f *fakeAPI) UploadFile(ctx context.Context, path, field, filename string, r io.Reader, size int64, onProgress func(int), out any) error {
	f.mu.Lock()
	f.uploadCalls++
	f.mu.Unlock()
	if f.uploadFn != nil {
		return f.uploadFn(ctx, r, onProgress, out)
	}
	return nil
}

func (f *fakeAPI) SetToken(token string) {}

func (f *fakeAPI) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.uploadCalls
}

func writeReplay(t *testing.T, name string, size int64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(size))
	require.NoError(t, f.Close())
	return path
}

func acceptUpload(matchID string) func(ctx context.Context, r io.Reader, onProgress func(int), out any) error {
	return func(ctx context.Context, r io.Reader, onProgress func(int), out any) error {
		if _, err := io.Copy(io.Discard, r); err != nil {
			return err
		}
		if onProgress != nil {
			onProgress(100)
		}
		b, _ := json.Marshal(models.UploadResponse{MatchID: matchID, Status: "processing", Message: "accepted"})
		return json.Unmarshal(b, out)
	}
}

func TestValidateFile(t *testing.T) {
	assert.NoError(t, ValidateFile("game.dem", 1024))
	assert.NoError(t, ValidateFile("GAME.DEM", MaxReplaySize))
	assert.ErrorIs(t, ValidateFile("game.txt", 1024), common.ErrNotReplayFile)
	assert.ErrorIs(t, ValidateFile("game", 1024), common.ErrNotReplayFile)
	assert.ErrorIs(t, ValidateFile("game.dem", MaxReplaySize+1), common.ErrReplayTooLarge)
}

func TestSelect_RejectsWrongExtension_NoRequestIssued(t *testing.T) {
	client := &fakeAPI{}
	w := New(client)

	path := writeReplay(t, "notes.txt", 128)
	_, err := w.Select(path)

	assert.ErrorIs(t, err, common.ErrNotReplayFile)
	assert.Equal(t, Idle, w.State())
	assert.Equal(t, 0, client.calls(), "rejected selection must not hit the network")
}

func TestSelect_RejectsOversizedFile(t *testing.T) {
	client := &fakeAPI{}
	w := New(client)

	// sparse file: cheap to create, still stats over the limit
	path := writeReplay(t, "huge.dem", MaxReplaySize+1)
	_, err := w.Select(path)

	assert.ErrorIs(t, err, common.ErrReplayTooLarge)
	assert.Equal(t, Idle, w.State())
	assert.Equal(t, 0, client.calls())
}

func TestSelect_ValidFileEntersFileSelected(t *testing.T) {
	w := New(&fakeAPI{})

	path := writeReplay(t, "game.dem", 2048)
	file, err := w.Select(path)

	require.NoError(t, err)
	assert.Equal(t, FileSelected, w.State())
	assert.Equal(t, "game.dem", file.Name)
	assert.Equal(t, int64(2048), file.Size)
}

func TestUpload_HappyPath(t *testing.T) {
	client := &fakeAPI{uploadFn: acceptUpload("m77")}
	w := New(client)

	_, err := w.Select(writeReplay(t, "game.dem", 4096))
	require.NoError(t, err)

	resp, err := w.Upload(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "m77", resp.MatchID)
	assert.Equal(t, Completed, w.State())
	assert.Equal(t, "m77", w.MatchID())
	assert.Equal(t, 100, w.Progress())
	assert.Empty(t, w.Err())
}

func TestUpload_WithoutSelection(t *testing.T) {
	w := New(&fakeAPI{})
	_, err := w.Upload(context.Background())
	assert.ErrorIs(t, err, common.ErrNoFileSelected)
}

func TestUpload_SecondCallWhileInFlightRejected(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	client := &fakeAPI{uploadFn: func(ctx context.Context, r io.Reader, onProgress func(int), out any) error {
		close(started)
		<-release
		b, _ := json.Marshal(models.UploadResponse{MatchID: "m1"})
		return json.Unmarshal(b, out)
	}}
	w := New(client)

	_, err := w.Select(writeReplay(t, "game.dem", 1024))
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = w.Upload(context.Background())
	}()

	<-started
	assert.Equal(t, Uploading, w.State())

	_, err = w.Upload(context.Background())
	assert.ErrorIs(t, err, common.ErrRequestInFlight)

	_, err = w.Select(writeReplay(t, "other.dem", 1024))
	assert.ErrorIs(t, err, common.ErrRequestInFlight, "re-selection is blocked during upload")

	close(release)
	wg.Wait()

	assert.Equal(t, Completed, w.State())
	assert.Equal(t, 1, client.calls())
}

func TestUpload_ServerErrorMovesToFailed(t *testing.T) {
	client := &fakeAPI{uploadFn: func(ctx context.Context, r io.Reader, onProgress func(int), out any) error {
		return &api.APIError{StatusCode: 422, Detail: "Invalid replay file"}
	}}
	w := New(client)

	_, err := w.Select(writeReplay(t, "game.dem", 1024))
	require.NoError(t, err)

	_, err = w.Upload(context.Background())
	require.Error(t, err)

	assert.Equal(t, Failed, w.State())
	assert.Equal(t, "Invalid replay file", w.Err(), "server detail surfaced verbatim")
	assert.Empty(t, w.MatchID())
}

func TestUpload_TransportErrorUsesFallbackMessage(t *testing.T) {
	client := &fakeAPI{uploadFn: func(ctx context.Context, r io.Reader, onProgress func(int), out any) error {
		return common.ErrServerUnavailable
	}}
	w := New(client)

	_, err := w.Select(writeReplay(t, "game.dem", 1024))
	require.NoError(t, err)

	_, err = w.Upload(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Failed to upload replay", w.Err())
}

func TestUpload_RetryAfterFailure(t *testing.T) {
	attempts := 0
	client := &fakeAPI{}
	client.uploadFn = func(ctx context.Context, r io.Reader, onProgress func(int), out any) error {
		attempts++
		if attempts == 1 {
			return &api.APIError{StatusCode: 500, Detail: "boom"}
		}
		return acceptUpload("m2")(ctx, r, onProgress, out)
	}
	w := New(client)

	path := writeReplay(t, "game.dem", 1024)
	_, err := w.Select(path)
	require.NoError(t, err)
	_, err = w.Upload(context.Background())
	require.Error(t, err)
	assert.Equal(t, Failed, w.State())

	// retry requires re-selecting, which also clears the attempt's error
	_, err = w.Select(path)
	require.NoError(t, err)
	assert.Empty(t, w.Err())

	resp, err := w.Upload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "m2", resp.MatchID)
	assert.Equal(t, Completed, w.State())
}

func TestNotifyProgress_ObserverSeesMonotonicUpdates(t *testing.T) {
	client := &fakeAPI{uploadFn: func(ctx context.Context, r io.Reader, onProgress func(int), out any) error {
		onProgress(10)
		onProgress(40)
		onProgress(40)
		onProgress(100)
		b, _ := json.Marshal(models.UploadResponse{MatchID: "m1"})
		return json.Unmarshal(b, out)
	}}
	w := New(client)

	var seen []int
	w.NotifyProgress(func(pct int) { seen = append(seen, pct) })

	_, err := w.Select(writeReplay(t, "game.dem", 1024))
	require.NoError(t, err)
	_, err = w.Upload(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int{10, 40, 40, 100}, seen)
	for i := 1; i < len(seen); i++ {
		assert.GreaterOrEqual(t, seen[i], seen[i-1])
	}
}

func TestReset_ReturnsToIdle(t *testing.T) {
	w := New(&fakeAPI{})
	_, err := w.Select(writeReplay(t, "game.dem", 1024))
	require.NoError(t, err)

	w.Reset()
	assert.Equal(t, Idle, w.State())
	assert.Nil(t, w.File())
	assert.Empty(t, w.Err())
}
