package testutils

import (
	"time"

	"github.com/KirkDiggler/progression-api/internal/entities/progression"
)

// TestPlayerID owns every fixture achievement
const TestPlayerID = "player_test_001"

// FixtureNow is the reference "now" for the fixture unlock dates
var FixtureNow = time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

// CreateTestAchievements returns the five dashboard achievements: two unlocked
// (Legendary 500 XP on Mar 1, Common 200 XP on Mar 15) and three in progress.
func CreateTestAchievements(playerID string) []*progression.Achievement {
	march1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	march15 := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	return []*progression.Achievement{
		NewAchievement("ach_early_bird").
			WithPlayer(playerID).
			WithTitle("Early Bird", "Join DashFriends in its first month").
			WithRarity(progression.RarityLegendary).
			WithXP(500).
			Unlocked(march1).
			Build(),
		NewAchievement("ach_social_butterfly").
			WithPlayer(playerID).
			WithTitle("Social Butterfly", "Add 10 friends to your network").
			WithRarity(progression.RarityRare).
			WithXP(300).
			WithProgress(70).
			Build(),
		NewAchievement("ach_game_master").
			WithPlayer(playerID).
			WithTitle("Game Master", "Play 5 different games with friends").
			WithRarity(progression.RarityEpic).
			WithXP(400).
			WithProgress(40).
			Build(),
		NewAchievement("ach_team_player").
			WithPlayer(playerID).
			WithTitle("Team Player", "Join 3 gaming sessions in one day").
			WithGame("Valorant").
			WithRarity(progression.RarityCommon).
			WithXP(200).
			Unlocked(march15).
			Build(),
		NewAchievement("ach_night_owl").
			WithPlayer(playerID).
			WithTitle("Night Owl", "Play games for 3 hours after midnight").
			WithRarity(progression.RarityRare).
			WithXP(300).
			WithProgress(90).
			Build(),
	}
}
