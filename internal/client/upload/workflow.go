// Package upload drives the replay submission workflow: file selection with
// client-side validation, the multipart upload with progress, and the
// hand-off to the results view. State transitions follow
//
//	Idle → FileSelected → Uploading → Completed | Failed
//
// with Failed returning to FileSelected/Idle only through Select or Reset.
package upload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dmitrijs2005/replaycoach/internal/client/api"
	"github.com/dmitrijs2005/replaycoach/internal/client/models"
	"github.com/dmitrijs2005/replaycoach/internal/common"
)

// MaxReplaySize is the largest accepted replay: 200 MiB.
const MaxReplaySize = 200 * 1024 * 1024

const replayExt = ".dem"

// State enumerates the workflow states.
type State int

const (
	Idle State = iota
	FileSelected
	Uploading
	Completed
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case FileSelected:
		return "file selected"
	case Uploading:
		return "uploading"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// ReplayFile describes the currently selected artifact. It exists only in
// memory between selection and upload completion.
type ReplayFile struct {
	Path string
	Name string
	Size int64
}

// Workflow is a single upload attempt driver. One upload may be in flight
// at a time; a second Upload call while Uploading is rejected.
type Workflow struct {
	client api.Client

	mu       sync.Mutex
	state    State
	file     *ReplayFile
	progress int
	matchID  string
	errMsg   string
	observer func(pct int)
}

// New returns a Workflow in the Idle state.
func New(client api.Client) *Workflow {
	return &Workflow{client: client}
}

// ValidateFile applies the selection rules without touching workflow state:
// the extension must be .dem and the size at most MaxReplaySize.
func ValidateFile(name string, size int64) error {
	if !strings.HasSuffix(strings.ToLower(name), replayExt) {
		return common.ErrNotReplayFile
	}
	if size > MaxReplaySize {
		return common.ErrReplayTooLarge
	}
	return nil
}

// Select validates the file at path and moves the workflow to FileSelected.
// A rejected file leaves the workflow in Idle and never issues a request.
func (w *Workflow) Select(path string) (*ReplayFile, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state == Uploading {
		return nil, common.ErrRequestInFlight
	}

	info, err := os.Stat(path)
	if err != nil {
		w.toIdle()
		return nil, fmt.Errorf("stat replay: %w", err)
	}
	if info.IsDir() {
		w.toIdle()
		return nil, common.ErrNotReplayFile
	}
	if err := ValidateFile(info.Name(), info.Size()); err != nil {
		w.toIdle()
		return nil, err
	}

	w.file = &ReplayFile{Path: path, Name: filepath.Base(path), Size: info.Size()}
	w.state = FileSelected
	w.progress = 0
	w.matchID = ""
	w.errMsg = ""
	return w.file, nil
}

func (w *Workflow) toIdle() {
	w.state = Idle
	w.file = nil
	w.progress = 0
}

// Upload submits the selected file. Only valid from FileSelected; while the
// request is in flight the state is Uploading and further Upload or Select
// calls are rejected. On acceptance the returned match ID addresses the
// results view; on failure the workflow is Failed and the message follows
// the usual detail-or-fallback rule.
func (w *Workflow) Upload(ctx context.Context) (*models.UploadResponse, error) {
	w.mu.Lock()
	if w.state == Uploading {
		w.mu.Unlock()
		return nil, common.ErrRequestInFlight
	}
	if w.state != FileSelected || w.file == nil {
		w.mu.Unlock()
		return nil, common.ErrNoFileSelected
	}
	file := w.file
	w.state = Uploading
	w.progress = 0
	w.errMsg = ""
	w.mu.Unlock()

	f, err := os.Open(file.Path)
	if err != nil {
		w.fail("Failed to open replay file")
		return nil, fmt.Errorf("open replay: %w", err)
	}
	defer f.Close()

	var out models.UploadResponse
	err = w.client.UploadFile(ctx, "/api/matches/upload", "file", file.Name, f, file.Size, w.setProgress, &out)
	if err != nil {
		w.fail(api.ErrorMessage(err, "Failed to upload replay"))
		return nil, err
	}

	w.mu.Lock()
	w.state = Completed
	w.progress = 100
	w.matchID = out.MatchID
	w.mu.Unlock()
	return &out, nil
}

// NotifyProgress registers fn to observe progress updates during Upload,
// e.g. for a terminal progress line. fn is called outside the workflow lock.
func (w *Workflow) NotifyProgress(fn func(pct int)) {
	w.mu.Lock()
	w.observer = fn
	w.mu.Unlock()
}

func (w *Workflow) setProgress(pct int) {
	w.mu.Lock()
	if pct > w.progress {
		w.progress = pct
	}
	pct = w.progress
	fn := w.observer
	w.mu.Unlock()
	if fn != nil {
		fn(pct)
	}
}

func (w *Workflow) fail(msg string) {
	w.mu.Lock()
	w.state = Failed
	w.errMsg = msg
	w.mu.Unlock()
}

// Reset abandons the current attempt and returns to Idle. Any previously
// fetched analysis elsewhere is unaffected; the error belongs to the
// attempt only.
func (w *Workflow) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.toIdle()
	w.matchID = ""
	w.errMsg = ""
}

// State returns the current workflow state.
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// File returns the currently selected file, nil in Idle.
func (w *Workflow) File() *ReplayFile {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file
}

// Progress returns the upload percentage, 0–100, non-decreasing within one
// attempt.
func (w *Workflow) Progress() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.progress
}

// MatchID returns the server-assigned match identifier after Completed.
func (w *Workflow) MatchID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.matchID
}

// Err returns the message of the last failed attempt, empty otherwise.
func (w *Workflow) Err() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.errMsg
}
