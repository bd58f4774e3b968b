// Package engine implements the progression rules: levels from lifetime XP, rarity ranking,
// and statistics over achievement collections. Every method is a pure function of its inputs
// and the engine's configuration, so one Engine may be shared across goroutines.
package engine

import (
	"time"

	"github.com/KirkDiggler/progression-api/internal/entities/progression"
)

// Engine provides progression calculations
type Engine interface {
	// Leveling
	ComputeLevel(totalXP int64) (*progression.LevelInfo, error)
	XPForLevel(level int32) int64
	TotalXPForLevel(level int32, currentXP int64) (int64, error)

	// Achievement collections
	Aggregate(achievements []*progression.Achievement) (*progression.AchievementStats, error)
	StreakCount(achievements []*progression.Achievement, windowStart, now time.Time) (int, error)
	RarityRank(rarity progression.Rarity) (int, error)

	// List views
	Filter(achievements []*progression.Achievement, opts FilterOptions) ([]*progression.Achievement, error)
	Sort(achievements []*progression.Achievement, by SortBy) ([]*progression.Achievement, error)
}
