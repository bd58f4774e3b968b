// Package player provides storage for players and their lifetime XP
package player

//go:generate mockgen -destination=mock/mock_repository.go -package=playermock github.com/KirkDiggler/progression-api/internal/repositories/player Repository

import (
	"context"

	"github.com/KirkDiggler/progression-api/internal/entities/progression"
)

// CreateInput contains parameters for creating a player
type CreateInput struct {
	Player *progression.Player
}

// CreateOutput contains the stored player
type CreateOutput struct {
	Player *progression.Player
}

// GetInput contains parameters for retrieving a player
type GetInput struct {
	ID string
}

// GetOutput contains the retrieved player
type GetOutput struct {
	Player *progression.Player
}

// AddXPInput credits XP to a player's lifetime total
type AddXPInput struct {
	ID string
	XP int64
}

// AddXPOutput contains the lifetime total after the credit
type AddXPOutput struct {
	LifetimeXP int64
}

// DeleteInput contains parameters for deleting a player
type DeleteInput struct {
	ID string
}

// DeleteOutput is empty; deletion either succeeds or errors
type DeleteOutput struct{}

// Repository defines storage operations for players
type Repository interface {
	// Create stores a new player; usernames are unique
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a player by ID
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// AddXP atomically increments the lifetime XP total
	AddXP(ctx context.Context, input AddXPInput) (*AddXPOutput, error)

	// Delete removes a player and its username reservation
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}
