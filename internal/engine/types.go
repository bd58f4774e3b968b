package engine

import (
	"github.com/KirkDiggler/progression-api/internal/entities/progression"
)

// Status narrows a list to completed or in-progress achievements
type Status string

// Filter statuses
const (
	StatusAll        Status = "all"
	StatusCompleted  Status = "completed"
	StatusInProgress Status = "in_progress"
)

// SortBy selects the descending sort key for achievement lists
type SortBy string

// Sort keys
const (
	SortByProgress   SortBy = "progress"
	SortByXP         SortBy = "xp"
	SortByRarity     SortBy = "rarity"
	SortByUnlockedAt SortBy = "unlocked_at"
)

// FilterOptions combines list predicates; zero values match everything
type FilterOptions struct {
	Status Status
	Rarity progression.Rarity
	Game   string
	// Query is matched case-insensitively against title and description
	Query string
}
