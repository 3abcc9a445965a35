package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestMatch_HeroSelected(t *testing.T) {
	m := &Match{}
	assert.False(t, m.HeroSelected(), "nil selected_hero_name")

	m.SelectedHeroName = strPtr("")
	assert.False(t, m.HeroSelected(), "empty selected_hero_name")

	m.SelectedHeroName = strPtr("npc_dota_hero_axe")
	assert.True(t, m.HeroSelected())
}

func TestMatch_HeroSelected_FromJSON(t *testing.T) {
	var withNull Match
	require.NoError(t, json.Unmarshal([]byte(`{"match_id":"m1","selected_hero_name":null}`), &withNull))
	assert.False(t, withNull.HeroSelected())

	var withHero Match
	require.NoError(t, json.Unmarshal([]byte(`{"match_id":"m1","selected_hero_name":"npc_dota_hero_axe"}`), &withHero))
	assert.True(t, withHero.HeroSelected())
}

func TestMatch_CandidateHeroes_MergesAndDeduplicates(t *testing.T) {
	m := &Match{
		Hero: "npc_dota_hero_axe",
		Players: []PlayerSlot{
			{PlayerID: 0, HeroName: "npc_dota_hero_axe"},
			{PlayerID: 1, HeroName: "npc_dota_hero_lina"},
			{PlayerID: 2, HeroName: "npc_dota_hero_lina"},
			{PlayerID: 3, HeroName: " "},
			{PlayerID: 4, HeroName: "npc_dota_hero_shadow_shaman"},
		},
	}

	got := m.CandidateHeroes()

	assert.Equal(t, []string{
		"npc_dota_hero_axe",
		"npc_dota_hero_lina",
		"npc_dota_hero_shadow_shaman",
	}, got, "deduplicated, order of first occurrence, blanks dropped")
}

func TestMatch_CandidateHeroes_RosterOnly(t *testing.T) {
	m := &Match{
		Players: []PlayerSlot{
			{HeroName: "npc_dota_hero_lina"},
			{HeroName: "npc_dota_hero_axe"},
		},
	}
	assert.Equal(t, []string{"npc_dota_hero_lina", "npc_dota_hero_axe"}, m.CandidateHeroes())
}

func TestMatch_CandidateHeroes_Empty(t *testing.T) {
	m := &Match{}
	assert.Empty(t, m.CandidateHeroes())
}

func TestSubscription_Active(t *testing.T) {
	assert.True(t, (&Subscription{Status: "active"}).Active())
	assert.True(t, (&Subscription{Status: "trialing"}).Active())
	assert.False(t, (&Subscription{Status: "canceled"}).Active())
	var nilSub *Subscription
	assert.False(t, nilSub.Active())
}

func TestMatch_MetricsDecode(t *testing.T) {
	body := `{
		"match_id": "m42",
		"duration": 2499,
		"result": "win",
		"selected_hero_name": "npc_dota_hero_axe",
		"metrics": {"gpm": 512, "xpm": 601.5, "kills": 9},
		"advice": [{"category": "farming", "title": "t", "description": "d", "priority": "high"}]
	}`

	var m Match
	require.NoError(t, json.Unmarshal([]byte(body), &m))

	assert.Equal(t, "m42", m.MatchID)
	assert.Equal(t, 512.0, m.Metrics["gpm"])
	assert.Equal(t, 601.5, m.Metrics["xpm"])
	require.Len(t, m.Advice, 1)
	assert.Equal(t, "high", m.Advice[0].Priority)
}
