package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/replaycoach/internal/common"
)

// Upload runs the replay submission workflow: validate the file at the
// given path, confirm, upload with a progress line, and fall through to the
// results view for the accepted match.
func (a *App) Upload(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("usage: upload <path-to-replay.dem>")
		return nil
	}

	file, err := a.uploader.Select(args[0])
	if err != nil {
		switch {
		case errors.Is(err, common.ErrNotReplayFile):
			printlnFn("Please upload a .dem file")
		case errors.Is(err, common.ErrReplayTooLarge):
			printlnFn("File size must be less than 200MB")
		case errors.Is(err, common.ErrRequestInFlight):
			printlnFn("An upload is already in progress")
		default:
			printlnFn("error:", err.Error())
		}
		return err
	}

	printlnFn(fmt.Sprintf("Selected %s (%.2f MB)", file.Name, float64(file.Size)/1024/1024))
	ok, err := Confirm(a.reader, "Upload for analysis?", os.Stdout)
	if err != nil {
		return err
	}
	if !ok {
		a.uploader.Reset()
		printlnFn("Upload cancelled")
		return nil
	}

	a.uploader.NotifyProgress(func(pct int) {
		fmt.Fprintf(os.Stdout, "\rUploading... %3d%%", pct)
		if pct >= 100 {
			fmt.Fprintln(os.Stdout)
		}
	})

	resp, err := a.uploader.Upload(ctx)
	if err != nil {
		if errors.Is(err, common.ErrRequestInFlight) {
			printlnFn("An upload is already in progress")
			return err
		}
		printlnFn(a.uploader.Err())
		return err
	}

	if resp.Message != "" {
		printlnFn(resp.Message)
	}
	printlnFn("Match accepted:", resp.MatchID)

	return a.Results(ctx, []string{resp.MatchID})
}
