// Package display holds the presentation-tier formatting rules: pure
// functions mapping already-fetched data to printable values. No I/O.
package display

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dmitrijs2005/replaycoach/internal/client/models"
)

const heroPrefix = "npc_dota_hero_"

// UnknownHero is rendered for empty or unusable hero identifiers.
const UnknownHero = "Unknown Hero"

// MetricPlaceholder is rendered for absent metric values.
const MetricPlaceholder = "-"

var numberPrinter = message.NewPrinter(language.English)

// priorityRank maps advice priorities to sort ranks; anything unrecognized
// ranks as low.
func priorityRank(priority string) int {
	switch priority {
	case models.PriorityHigh:
		return 0
	case models.PriorityMedium:
		return 1
	default:
		return 2
	}
}

// SortAdvice returns advice ordered high → medium → low, ties keeping the
// original server order. The input slice is not modified.
func SortAdvice(advice []models.Advice) []models.Advice {
	out := make([]models.Advice, len(advice))
	copy(out, advice)
	sort.SliceStable(out, func(i, j int) bool {
		return priorityRank(out[i].Priority) < priorityRank(out[j].Priority)
	})
	return out
}

// NormalizedPriority collapses unrecognized priority values to low for
// display, so badges never show free-form text.
func NormalizedPriority(priority string) string {
	switch priority {
	case models.PriorityHigh, models.PriorityMedium, models.PriorityLow:
		return priority
	default:
		return models.PriorityLow
	}
}

// FormatMetric renders one metric value: a dash when the key is absent,
// otherwise the number with locale thousands separators. Whole numbers
// render without a fractional part.
func FormatMetric(metrics map[string]float64, key string) string {
	v, ok := metrics[key]
	if !ok {
		return MetricPlaceholder
	}
	if v == math.Trunc(v) {
		return numberPrinter.Sprintf("%d", int64(v))
	}
	return numberPrinter.Sprintf("%.1f", v)
}

// NormalizeScore maps a raw metric value onto the 0–100 radar scale:
// min(100, round(value/max*100)). A missing value normalizes to 0.
// Values below zero are passed through unclamped; they are not expected
// from real inputs.
func NormalizeScore(value *float64, max float64) int {
	if value == nil || max <= 0 {
		return 0
	}
	score := int(math.Round(*value / max * 100))
	if score > 100 {
		return 100
	}
	return score
}

// RadarDimension is one axis of the performance radar.
type RadarDimension struct {
	Subject string
	Score   int
}

// RadarScores computes the five radar axes from the metrics map, using the
// fixed per-dimension maxima of the results view. Survival inverts deaths:
// fewer deaths score higher.
func RadarScores(metrics map[string]float64) []RadarDimension {
	lookup := func(key string) *float64 {
		if v, ok := metrics[key]; ok {
			return &v
		}
		return nil
	}
	deaths := 0.0
	if v, ok := metrics["deaths"]; ok {
		deaths = v
	}
	survival := 10 - deaths

	return []RadarDimension{
		{Subject: "Farming", Score: NormalizeScore(lookup("gpm"), 800)},
		{Subject: "Fighting", Score: NormalizeScore(lookup("kills"), 15)},
		{Subject: "Survival", Score: NormalizeScore(&survival, 10)},
		{Subject: "Support", Score: NormalizeScore(lookup("assists"), 20)},
		{Subject: "Objective", Score: NormalizeScore(lookup("last_hits"), 400)},
	}
}

// HeroDisplayName turns an internal hero identifier into a readable label:
// the npc_dota_hero_ prefix is stripped and underscores become spaces.
// Empty identifiers render as UnknownHero.
func HeroDisplayName(id string) string {
	name := strings.TrimPrefix(strings.TrimSpace(id), heroPrefix)
	name = strings.ReplaceAll(name, "_", " ")
	if name == "" {
		return UnknownHero
	}
	return name
}

// FormatDuration renders a duration in seconds as M:SS.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// FormatResult renders the match outcome banner text.
func FormatResult(result string) string {
	switch result {
	case "win":
		return "VICTORY"
	case "loss":
		return "DEFEAT"
	default:
		return MetricPlaceholder
	}
}
