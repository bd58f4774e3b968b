package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/progression-api/internal/engine"
	"github.com/KirkDiggler/progression-api/internal/entities/progression"
	"github.com/KirkDiggler/progression-api/internal/errors"
)

func ids(achievements []*progression.Achievement) []string {
	out := make([]string, len(achievements))
	for i, a := range achievements {
		out[i] = a.ID
	}
	return out
}

func sampleAchievements() []*progression.Achievement {
	march1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	march15 := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	return []*progression.Achievement{
		{ID: "early-bird", Title: "Early Bird", Description: "Join in the first month", Game: "",
			Rarity: progression.RarityLegendary, XP: 500, Progress: 100, UnlockedAt: &march1},
		{ID: "social-butterfly", Title: "Social Butterfly", Description: "Add 10 friends",
			Rarity: progression.RarityRare, XP: 300, Progress: 70},
		{ID: "game-master", Title: "Game Master", Description: "Play 5 different games with friends", Game: "Valorant",
			Rarity: progression.RarityEpic, XP: 400, Progress: 40},
		{ID: "team-player", Title: "Team Player", Description: "Join 3 gaming sessions in one day", Game: "Valorant",
			Rarity: progression.RarityCommon, XP: 200, Progress: 100, UnlockedAt: &march15},
		{ID: "night-owl", Title: "Night Owl", Description: "Play for 3 hours after midnight",
			Rarity: progression.RarityRare, XP: 300, Progress: 90},
	}
}

func TestSortByRarityDescending(t *testing.T) {
	e, err := engine.New(nil)
	require.NoError(t, err)

	list := []*progression.Achievement{
		{ID: "1", Rarity: progression.RarityRare},
		{ID: "2", Rarity: progression.RarityLegendary},
		{ID: "3", Rarity: progression.RarityCommon},
		{ID: "4", Rarity: progression.RarityEpic},
	}

	sorted, err := e.Sort(list, engine.SortByRarity)
	require.NoError(t, err)

	got := make([]progression.Rarity, len(sorted))
	for i, a := range sorted {
		got[i] = a.Rarity
	}
	assert.Equal(t, []progression.Rarity{
		progression.RarityLegendary,
		progression.RarityEpic,
		progression.RarityRare,
		progression.RarityCommon,
	}, got)
	assert.Equal(t, "1", list[0].ID, "input must not be reordered")
}

func TestSort(t *testing.T) {
	e, err := engine.New(nil)
	require.NoError(t, err)

	testCases := []struct {
		by   engine.SortBy
		want []string
	}{
		{by: "", want: []string{"early-bird", "team-player", "night-owl", "social-butterfly", "game-master"}},
		{by: engine.SortByXP, want: []string{"early-bird", "game-master", "night-owl", "social-butterfly", "team-player"}},
		{by: engine.SortByRarity, want: []string{"early-bird", "game-master", "night-owl", "social-butterfly", "team-player"}},
		{by: engine.SortByUnlockedAt, want: []string{"team-player", "early-bird", "game-master", "night-owl", "social-butterfly"}},
	}

	for _, tc := range testCases {
		t.Run(string(tc.by), func(t *testing.T) {
			sorted, err := e.Sort(sampleAchievements(), tc.by)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ids(sorted))
		})
	}

	_, err = e.Sort(sampleAchievements(), "title")
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestFilter(t *testing.T) {
	e, err := engine.New(nil)
	require.NoError(t, err)

	testCases := []struct {
		name string
		opts engine.FilterOptions
		want []string
	}{
		{name: "zero options", opts: engine.FilterOptions{},
			want: []string{"early-bird", "social-butterfly", "game-master", "team-player", "night-owl"}},
		{name: "completed", opts: engine.FilterOptions{Status: engine.StatusCompleted},
			want: []string{"early-bird", "team-player"}},
		{name: "in progress", opts: engine.FilterOptions{Status: engine.StatusInProgress},
			want: []string{"social-butterfly", "game-master", "night-owl"}},
		{name: "rarity", opts: engine.FilterOptions{Rarity: progression.RarityRare},
			want: []string{"social-butterfly", "night-owl"}},
		{name: "game is case insensitive", opts: engine.FilterOptions{Game: "valorant"},
			want: []string{"game-master", "team-player"}},
		{name: "query hits description", opts: engine.FilterOptions{Query: "FRIENDS"},
			want: []string{"social-butterfly", "game-master"}},
		{name: "combined", opts: engine.FilterOptions{Status: engine.StatusCompleted, Game: "Valorant"},
			want: []string{"team-player"}},
		{name: "no match", opts: engine.FilterOptions{Query: "speedrun"},
			want: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := e.Filter(sampleAchievements(), tc.opts)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ids(got))
		})
	}

	_, err = e.Filter(sampleAchievements(), engine.FilterOptions{Status: "archived"})
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = e.Filter(sampleAchievements(), engine.FilterOptions{Rarity: "mythic"})
	assert.True(t, errors.IsInvalidArgument(err))
}
