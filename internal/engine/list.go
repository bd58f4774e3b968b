package engine

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/KirkDiggler/progression-api/internal/entities/progression"
	"github.com/KirkDiggler/progression-api/internal/errors"
)

// Filter returns the achievements matching every set option, in input order
func (e *engine) Filter(
	achievements []*progression.Achievement,
	opts FilterOptions,
) ([]*progression.Achievement, error) {
	switch opts.Status {
	case "", StatusAll, StatusCompleted, StatusInProgress:
	default:
		return nil, errors.InvalidArgumentf("unknown status filter %q", string(opts.Status))
	}
	if opts.Rarity != "" && !opts.Rarity.IsValid() {
		return nil, errors.InvalidArgumentf("unknown rarity filter %q", string(opts.Rarity))
	}
	if err := validateAll(achievements); err != nil {
		return nil, err
	}

	query := strings.ToLower(strings.TrimSpace(opts.Query))
	game := strings.TrimSpace(opts.Game)

	out := make([]*progression.Achievement, 0, len(achievements))
	for _, a := range achievements {
		switch opts.Status {
		case StatusCompleted:
			if !a.IsUnlocked() {
				continue
			}
		case StatusInProgress:
			if a.IsUnlocked() {
				continue
			}
		}
		if opts.Rarity != "" && a.Rarity != opts.Rarity {
			continue
		}
		if game != "" && !strings.EqualFold(a.Game, game) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(a.Title), query) &&
			!strings.Contains(strings.ToLower(a.Description), query) {
			continue
		}
		out = append(out, a)
	}

	return out, nil
}

// Sort returns a new slice ordered descending by the key, ties broken by ID ascending.
// Achievements without an unlock time sort last under SortByUnlockedAt.
func (e *engine) Sort(achievements []*progression.Achievement, by SortBy) ([]*progression.Achievement, error) {
	if by == "" {
		by = SortByProgress
	}

	var key func(a, b *progression.Achievement) int
	switch by {
	case SortByProgress:
		key = func(a, b *progression.Achievement) int { return cmp.Compare(b.Progress, a.Progress) }
	case SortByXP:
		key = func(a, b *progression.Achievement) int { return cmp.Compare(b.XP, a.XP) }
	case SortByRarity:
		key = func(a, b *progression.Achievement) int {
			ra, _ := e.RarityRank(a.Rarity)
			rb, _ := e.RarityRank(b.Rarity)
			return cmp.Compare(rb, ra)
		}
	case SortByUnlockedAt:
		key = compareUnlockedAtDesc
	default:
		return nil, errors.InvalidArgumentf("unknown sort key %q", string(by))
	}

	if err := validateAll(achievements); err != nil {
		return nil, err
	}

	out := slices.Clone(achievements)
	slices.SortStableFunc(out, func(a, b *progression.Achievement) int {
		if c := key(a, b); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	return out, nil
}

func compareUnlockedAtDesc(a, b *progression.Achievement) int {
	ua, ub := unlockedAt(a), unlockedAt(b)
	switch {
	case ua == nil && ub == nil:
		return 0
	case ua == nil:
		return 1
	case ub == nil:
		return -1
	default:
		return ub.Compare(*ua)
	}
}

// unlockedAt ignores timestamps on achievements that are not complete
func unlockedAt(a *progression.Achievement) *time.Time {
	if !a.IsUnlocked() {
		return nil
	}
	return a.UnlockedAt
}
