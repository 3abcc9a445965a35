package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/replaycoach/internal/client/display"
)

// Matches lists the account's uploaded replays and their analysis status.
func (a *App) Matches(ctx context.Context) error {
	list, err := a.matches.List(ctx)
	if err != nil {
		printlnFn(a.matches.Err())
		return err
	}
	if len(list) == 0 {
		printlnFn("No matches yet; use 'upload <path>' to analyze a replay")
		return nil
	}
	for _, m := range list {
		hero := display.MetricPlaceholder
		if m.HeroSelected() {
			hero = display.HeroDisplayName(*m.SelectedHeroName)
		}
		printlnFn(fmt.Sprintf("%s  %-10s  %-20s  %s", m.MatchID, m.Status, hero, m.Filename))
	}
	return nil
}
