// Package progression holds the achievement and player data model
package progression

import (
	"time"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/progression-api/internal/errors"
)

const (
	// ProgressComplete is the progress value at which an achievement is unlocked
	ProgressComplete int32 = 100

	// EntityTypeAchievement is the core.Entity type for achievements
	EntityTypeAchievement = "achievement"
)

// Achievement is a single trackable goal owned by a player.
// UnlockedAt is set exactly when Progress reaches ProgressComplete.
type Achievement struct {
	ID          string     `json:"id"`
	PlayerID    string     `json:"player_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Game        string     `json:"game,omitempty"`
	Rarity      Rarity     `json:"rarity"`
	XP          int64      `json:"xp"`
	Progress    int32      `json:"progress"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
}

// GetID implements core.Entity
func (a *Achievement) GetID() string {
	return a.ID
}

// GetType implements core.Entity
func (a *Achievement) GetType() string {
	return EntityTypeAchievement
}

// IsUnlocked reports whether progress is complete. Progress is the source of truth;
// UnlockedAt alone never unlocks an achievement.
func (a *Achievement) IsUnlocked() bool {
	return a.Progress == ProgressComplete
}

// HasInconsistentUnlock reports an UnlockedAt timestamp on an achievement that is not complete
func (a *Achievement) HasInconsistentUnlock() bool {
	return a.UnlockedAt != nil && !a.IsUnlocked()
}

// Validate checks the fields the progression engine relies on
func (a *Achievement) Validate() error {
	if a == nil {
		return errors.InvalidArgument("achievement cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("id", a.ID, vb)
	errors.ValidateNonNegative("xp", a.XP, vb)
	errors.ValidateRange("progress", int64(a.Progress), 0, int64(ProgressComplete), vb)
	if !a.Rarity.IsValid() {
		vb.Fieldf("rarity", "unknown rarity %q", string(a.Rarity))
	}

	return vb.Build()
}

var _ core.Entity = (*Achievement)(nil)
