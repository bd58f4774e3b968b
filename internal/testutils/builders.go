package testutils

import (
	"time"

	"github.com/KirkDiggler/progression-api/internal/entities/progression"
)

// AchievementBuilder builds achievements for tests
type AchievementBuilder struct {
	a progression.Achievement
}

// NewAchievement starts a locked common achievement with the given ID
func NewAchievement(id string) *AchievementBuilder {
	return &AchievementBuilder{a: progression.Achievement{
		ID:       id,
		PlayerID: TestPlayerID,
		Title:    id,
		Rarity:   progression.RarityCommon,
		XP:       100,
	}}
}

// WithPlayer sets the owner
func (b *AchievementBuilder) WithPlayer(playerID string) *AchievementBuilder {
	b.a.PlayerID = playerID
	return b
}

// WithTitle sets the display text
func (b *AchievementBuilder) WithTitle(title, description string) *AchievementBuilder {
	b.a.Title = title
	b.a.Description = description
	return b
}

// WithGame sets the game
func (b *AchievementBuilder) WithGame(game string) *AchievementBuilder {
	b.a.Game = game
	return b
}

// WithRarity sets the rarity
func (b *AchievementBuilder) WithRarity(r progression.Rarity) *AchievementBuilder {
	b.a.Rarity = r
	return b
}

// WithXP sets the XP reward
func (b *AchievementBuilder) WithXP(xp int64) *AchievementBuilder {
	b.a.XP = xp
	return b
}

// WithProgress sets progress without touching UnlockedAt
func (b *AchievementBuilder) WithProgress(progress int32) *AchievementBuilder {
	b.a.Progress = progress
	return b
}

// Unlocked completes the achievement at the given time
func (b *AchievementBuilder) Unlocked(at time.Time) *AchievementBuilder {
	b.a.Progress = progression.ProgressComplete
	b.a.UnlockedAt = &at
	return b
}

// Build returns a copy of the built achievement
func (b *AchievementBuilder) Build() *progression.Achievement {
	a := b.a
	if a.UnlockedAt != nil {
		at := *a.UnlockedAt
		a.UnlockedAt = &at
	}
	return &a
}
