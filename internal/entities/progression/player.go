package progression

import (
	"time"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// EntityTypePlayer is the core.Entity type for players
const EntityTypePlayer = "player"

// Player owns a lifetime XP total from which level information is derived
type Player struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	LifetimeXP int64     `json:"lifetime_xp"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// GetID implements core.Entity
func (p *Player) GetID() string {
	return p.ID
}

// GetType implements core.Entity
func (p *Player) GetType() string {
	return EntityTypePlayer
}

var _ core.Entity = (*Player)(nil)
