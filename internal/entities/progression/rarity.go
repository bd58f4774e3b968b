package progression

import (
	"strings"

	"github.com/KirkDiggler/progression-api/internal/errors"
)

// Rarity is the scarcity tier of an achievement
type Rarity string

// Rarities in ascending order of scarcity
const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// AllRarities returns every rarity from most common to scarcest
func AllRarities() []Rarity {
	return []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary}
}

// ParseRarity accepts "Legendary", "legendary", " EPIC " and so on.
func ParseRarity(s string) (Rarity, error) {
	r := Rarity(strings.ToLower(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", errors.InvalidArgumentf("unknown rarity %q", s)
	}
	return r, nil
}

// IsValid reports whether r is one of the four known tiers
func (r Rarity) IsValid() bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	default:
		return false
	}
}

// DisplayName returns the capitalized label, e.g. "Legendary"
func (r Rarity) DisplayName() string {
	switch r {
	case RarityCommon:
		return "Common"
	case RarityRare:
		return "Rare"
	case RarityEpic:
		return "Epic"
	case RarityLegendary:
		return "Legendary"
	default:
		return string(r)
	}
}
