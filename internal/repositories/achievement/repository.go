// Package achievement provides storage for a player's achievement collection
package achievement

//go:generate mockgen -destination=mock/mock_repository.go -package=achievementmock github.com/KirkDiggler/progression-api/internal/repositories/achievement Repository

import (
	"context"

	"github.com/KirkDiggler/progression-api/internal/entities/progression"
)

// UpsertInput contains the achievement to create or replace
type UpsertInput struct {
	Achievement *progression.Achievement
}

// UpsertOutput contains the stored achievement
type UpsertOutput struct {
	Achievement *progression.Achievement
}

// GetInput identifies one achievement
type GetInput struct {
	PlayerID      string
	AchievementID string
}

// GetOutput contains the retrieved achievement
type GetOutput struct {
	Achievement *progression.Achievement
}

// UpdateInput identifies an achievement and the change to apply to its stored state
type UpdateInput struct {
	PlayerID      string
	AchievementID string
	// Apply mutates the current document and reports whether to write it back. It may run
	// more than once when the document changes concurrently; only the last run is stored.
	Apply func(a *progression.Achievement) (bool, error)
}

// UpdateOutput contains the achievement as stored after the update
type UpdateOutput struct {
	Achievement *progression.Achievement
	// Written is false when Apply declined the write
	Written bool
}

// ListByPlayerInput identifies a player's collection
type ListByPlayerInput struct {
	PlayerID string
}

// ListByPlayerOutput contains the collection ordered by achievement ID
type ListByPlayerOutput struct {
	Achievements []*progression.Achievement
}

// DeleteInput identifies one achievement
type DeleteInput struct {
	PlayerID      string
	AchievementID string
}

// DeleteOutput is empty; deletion either succeeds or errors
type DeleteOutput struct{}

// Repository defines storage operations for achievements
type Repository interface {
	// Upsert creates or replaces an achievement in its player's collection
	Upsert(ctx context.Context, input UpsertInput) (*UpsertOutput, error)

	// Get retrieves one achievement
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update applies a read-modify-write change atomically against concurrent writers
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// ListByPlayer returns every achievement a player owns
	ListByPlayer(ctx context.Context, input ListByPlayerInput) (*ListByPlayerOutput, error)

	// Delete removes an achievement from its player's collection
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}
