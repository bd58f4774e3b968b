package progression

import (
	"time"

	"github.com/KirkDiggler/progression-api/internal/engine"
	entities "github.com/KirkDiggler/progression-api/internal/entities/progression"
)

// RegisterPlayerInput defines the request for creating a player
type RegisterPlayerInput struct {
	Username string
}

// RegisterPlayerOutput defines the response for creating a player
type RegisterPlayerOutput struct {
	Player *entities.Player
}

// ComputeLevelInput defines the request for a stateless level lookup
type ComputeLevelInput struct {
	TotalXP int64
}

// ComputeLevelOutput defines the response for a stateless level lookup
type ComputeLevelOutput struct {
	Level *entities.LevelInfo
}

// GetPlayerProgressInput defines the request for a player's dashboard summary
type GetPlayerProgressInput struct {
	PlayerID string
}

// GetPlayerProgressOutput defines the response for a player's dashboard summary
type GetPlayerProgressOutput struct {
	Player *entities.Player
	Level  *entities.LevelInfo
	Stats  *entities.AchievementStats
}

// ListAchievementsInput defines the request for a filtered, sorted achievement list
type ListAchievementsInput struct {
	PlayerID string
	Filter   engine.FilterOptions
	SortBy   engine.SortBy
}

// ListAchievementsOutput defines the response for a filtered, sorted achievement list.
// Stats cover the whole collection, not just the filtered view.
type ListAchievementsOutput struct {
	Achievements []*entities.Achievement
	Stats        *entities.AchievementStats
}

// RecordAchievementInput defines the request for adding a locked achievement to a player
type RecordAchievementInput struct {
	PlayerID    string
	Title       string
	Description string
	Game        string
	Rarity      entities.Rarity
	XP          int64
}

// RecordAchievementOutput defines the response for adding an achievement
type RecordAchievementOutput struct {
	Achievement *entities.Achievement
}

// UpdateAchievementProgressInput defines the request for moving an achievement's progress
type UpdateAchievementProgressInput struct {
	PlayerID      string
	AchievementID string
	Progress      int32
}

// UpdateAchievementProgressOutput defines the response for a progress update
type UpdateAchievementProgressOutput struct {
	Achievement *entities.Achievement
	// Unlocked is true only for the update that completed the achievement
	Unlocked   bool
	LifetimeXP int64
	Level      *entities.LevelInfo
	LeveledUp  bool
}

// GetRecentUnlocksInput defines the request for a trailing-window unlock count
type GetRecentUnlocksInput struct {
	PlayerID string
	// Window defaults to DefaultStreakWindow when zero
	Window time.Duration
}

// GetRecentUnlocksOutput defines the response for a trailing-window unlock count
type GetRecentUnlocksOutput struct {
	Count       int
	WindowStart time.Time
	Now         time.Time
}
