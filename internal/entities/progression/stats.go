package progression

// LevelInfo is derived from a lifetime XP total and never stored
type LevelInfo struct {
	Level       int32   `json:"level"`
	CurrentXP   int64   `json:"current_xp"`
	NextLevelXP int64   `json:"next_level_xp"`
	Progress    float64 `json:"progress"` // percent, may exceed 100 at the level cap
}

// AchievementStats summarizes a collection of achievements
type AchievementStats struct {
	TotalCount     int     `json:"total_count"`
	UnlockedCount  int     `json:"unlocked_count"`
	TotalXPEarned  int64   `json:"total_xp_earned"`
	CompletionRate float64 `json:"completion_rate"` // percent; 0 for an empty collection
}
