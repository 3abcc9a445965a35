package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/dmitrijs2005/replaycoach/internal/client/display"
	"github.com/dmitrijs2005/replaycoach/internal/client/models"
	"github.com/dmitrijs2005/replaycoach/internal/common"
)

// metricOrder lists the metrics rendered first, in display order;
// everything else in the map would come from newer backend versions and is
// reachable via the raw metrics the services hold.
var metricOrder = []string{"kills", "deaths", "assists", "gpm", "xpm", "last_hits", "denies"}

var metricLabels = map[string]string{
	"kills":     "Kills",
	"deaths":    "Deaths",
	"assists":   "Assists",
	"gpm":       "GPM",
	"xpm":       "XPM",
	"last_hits": "Last Hits",
	"denies":    "Denies",
}

// Results fetches and renders the analysis for one match. When the match
// has no selected hero yet, the view enters hero disambiguation.
func (a *App) Results(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("usage: results <match_id>")
		return nil
	}

	match, err := a.matches.Get(ctx, args[0])
	if err != nil {
		if errors.Is(err, common.ErrRequestInFlight) {
			printlnFn("A request is already in progress")
			return err
		}
		printlnFn(a.matches.Err())
		return err
	}

	if !match.HeroSelected() {
		return a.disambiguate(ctx, match)
	}

	a.renderMatch(match)
	return nil
}

// SelectHero re-opens the hero selector for the currently displayed match.
// The current selection stays visible until the server responds.
func (a *App) SelectHero(ctx context.Context) error {
	match := a.matches.Current()
	if match == nil {
		printlnFn("No analysis loaded; run 'results <match_id>' first")
		return nil
	}
	if match.HeroSelected() {
		printlnFn("Current hero:", display.HeroDisplayName(*match.SelectedHeroName))
	}
	return a.disambiguate(ctx, match)
}

// disambiguate shows the candidate heroes of the match and submits the
// user's pick. A failed selection leaves the displayed match untouched.
func (a *App) disambiguate(ctx context.Context, match *models.Match) error {
	heroes := match.CandidateHeroes()
	if len(heroes) == 0 {
		printlnFn("No hero candidates in this match yet; try again later")
		return nil
	}

	printlnFn("Which hero did you play?")
	for i, h := range heroes {
		printlnFn(fmt.Sprintf("  %d) %s", i+1, display.HeroDisplayName(h)))
	}

	answer, err := GetSimpleText(a.reader, "Enter number (empty to skip)", os.Stdout)
	if err != nil {
		return err
	}
	if answer == "" {
		return nil
	}
	idx, err := strconv.Atoi(answer)
	if err != nil || idx < 1 || idx > len(heroes) {
		printlnFn("Invalid choice")
		return nil
	}

	printlnFn("Updating analysis...")
	updated, err := a.matches.SelectHero(ctx, match.MatchID, heroes[idx-1])
	if err != nil {
		if errors.Is(err, common.ErrRequestInFlight) {
			printlnFn("A hero selection is already in progress")
			return err
		}
		printlnFn(a.matches.Err())
		return err
	}

	a.renderMatch(updated)
	return nil
}

func (a *App) renderMatch(m *models.Match) {
	hero := m.Hero
	if m.HeroSelected() {
		hero = *m.SelectedHeroName
	}

	printlnFn("=== Match Analysis ===")
	printlnFn("Hero:    ", display.HeroDisplayName(hero))
	printlnFn("Result:  ", display.FormatResult(m.Result))
	printlnFn("Duration:", display.FormatDuration(m.Duration))

	printlnFn("--- Metrics ---")
	for _, key := range metricOrder {
		printlnFn(fmt.Sprintf("%-12s %s", metricLabels[key], display.FormatMetric(m.Metrics, key)))
	}

	printlnFn("--- Performance ---")
	for _, dim := range display.RadarScores(m.Metrics) {
		printlnFn(fmt.Sprintf("%-12s %3d/100", dim.Subject, dim.Score))
	}

	if len(m.Advice) > 0 {
		printlnFn("--- Advice ---")
		for _, adv := range display.SortAdvice(m.Advice) {
			printlnFn(fmt.Sprintf("[%s] %s", display.NormalizedPriority(adv.Priority), adv.Title))
			if adv.Description != "" {
				printlnFn("   ", adv.Description)
			}
			if adv.Category != "" {
				printlnFn("    Category:", adv.Category)
			}
		}
	}
}
