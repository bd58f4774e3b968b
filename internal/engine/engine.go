package engine

import (
	"log/slog"
	"math"
	"time"

	"github.com/KirkDiggler/progression-api/internal/entities/progression"
	"github.com/KirkDiggler/progression-api/internal/errors"
)

// Defaults for the leveling curve
const (
	DefaultBaseXP       int64   = 1000
	DefaultXPMultiplier float64 = 1.5
	DefaultMaxLevel     int32   = 100
)

// Config holds the leveling curve. Zero values are replaced by the defaults.
type Config struct {
	// XP required to complete level 1
	BaseXP int64
	// Growth factor applied per level
	XPMultiplier float64
	// Hard cap on the computed level
	MaxLevel int32
	// Receives data-quality warnings; slog.Default() when nil
	Logger *slog.Logger
}

func (cfg *Config) applyDefaults() {
	if cfg.BaseXP == 0 {
		cfg.BaseXP = DefaultBaseXP
	}
	if cfg.XPMultiplier == 0 {
		cfg.XPMultiplier = DefaultXPMultiplier
	}
	if cfg.MaxLevel == 0 {
		cfg.MaxLevel = DefaultMaxLevel
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
}

// Validate ensures the curve is usable
func (cfg *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if cfg.BaseXP <= 0 {
		vb.Fieldf("BaseXP", "must be positive, got %d", cfg.BaseXP)
	}
	if math.IsNaN(cfg.XPMultiplier) || math.IsInf(cfg.XPMultiplier, 0) || cfg.XPMultiplier < 1 {
		vb.Fieldf("XPMultiplier", "must be a finite value >= 1, got %v", cfg.XPMultiplier)
	}
	if cfg.MaxLevel < 1 {
		vb.Fieldf("MaxLevel", "must be at least 1, got %d", cfg.MaxLevel)
	}

	return vb.Build()
}

type engine struct {
	baseXP       int64
	xpMultiplier float64
	maxLevel     int32
	logger       *slog.Logger
}

// New creates an engine. A nil config uses the default curve (1000 XP, x1.5, cap 100).
func New(cfg *Config) (Engine, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	resolved := *cfg
	resolved.applyDefaults()

	if err := resolved.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid engine config")
	}

	return &engine{
		baseXP:       resolved.BaseXP,
		xpMultiplier: resolved.XPMultiplier,
		maxLevel:     resolved.MaxLevel,
		logger:       resolved.Logger,
	}, nil
}

// XPForLevel returns floor(BaseXP * XPMultiplier^(level-1)), saturating at math.MaxInt64.
// Levels below 1 are treated as level 1.
func (e *engine) XPForLevel(level int32) int64 {
	if level < 1 {
		level = 1
	}

	needed := math.Floor(float64(e.baseXP) * math.Pow(e.xpMultiplier, float64(level-1)))
	if needed >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(needed)
}

// ComputeLevel walks the threshold schedule from level 1, spending XP until the next
// threshold cannot be paid or the cap is reached. XP beyond the cap stays in CurrentXP,
// so Progress can exceed 100 at MaxLevel.
func (e *engine) ComputeLevel(totalXP int64) (*progression.LevelInfo, error) {
	if totalXP < 0 {
		return nil, errors.InvalidArgumentf("total XP must not be negative, got %d", totalXP)
	}

	level := int32(1)
	remaining := totalXP
	needed := e.XPForLevel(level)
	for remaining >= needed && level < e.maxLevel {
		remaining -= needed
		level++
		needed = e.XPForLevel(level)
	}

	return &progression.LevelInfo{
		Level:       level,
		CurrentXP:   remaining,
		NextLevelXP: needed,
		Progress:    float64(remaining) / float64(needed) * 100,
	}, nil
}

// TotalXPForLevel is the inverse of ComputeLevel: the lifetime XP of a player at level
// with currentXP into it.
func (e *engine) TotalXPForLevel(level int32, currentXP int64) (int64, error) {
	if level < 1 || level > e.maxLevel {
		return 0, errors.InvalidArgumentf("level must be between 1 and %d, got %d", e.maxLevel, level)
	}
	if currentXP < 0 {
		return 0, errors.InvalidArgumentf("current XP must not be negative, got %d", currentXP)
	}

	total := currentXP
	for l := int32(1); l < level; l++ {
		needed := e.XPForLevel(l)
		if total > math.MaxInt64-needed {
			return 0, errors.Newf(errors.CodeOutOfRange, "lifetime XP for level %d overflows int64", level)
		}
		total += needed
	}

	return total, nil
}

// RarityRank maps common..legendary to 1..4
func (e *engine) RarityRank(rarity progression.Rarity) (int, error) {
	switch rarity {
	case progression.RarityCommon:
		return 1, nil
	case progression.RarityRare:
		return 2, nil
	case progression.RarityEpic:
		return 3, nil
	case progression.RarityLegendary:
		return 4, nil
	default:
		return 0, errors.InvalidArgumentf("unknown rarity %q", string(rarity))
	}
}

// Aggregate counts unlocked achievements and the XP they award. Progress decides unlock
// status; a stray UnlockedAt on an incomplete achievement is logged and ignored.
func (e *engine) Aggregate(achievements []*progression.Achievement) (*progression.AchievementStats, error) {
	if err := validateAll(achievements); err != nil {
		return nil, err
	}

	stats := &progression.AchievementStats{TotalCount: len(achievements)}
	for _, a := range achievements {
		e.warnInconsistent(a)
		if !a.IsUnlocked() {
			continue
		}
		stats.UnlockedCount++
		stats.TotalXPEarned += a.XP
	}

	if stats.TotalCount > 0 {
		stats.CompletionRate = float64(stats.UnlockedCount) / float64(stats.TotalCount) * 100
	}

	return stats, nil
}

// StreakCount counts achievements unlocked within the closed window [windowStart, now]
func (e *engine) StreakCount(achievements []*progression.Achievement, windowStart, now time.Time) (int, error) {
	if windowStart.After(now) {
		return 0, errors.InvalidArgumentf("window start %s is after now %s",
			windowStart.Format(time.RFC3339), now.Format(time.RFC3339))
	}
	if err := validateAll(achievements); err != nil {
		return 0, err
	}

	count := 0
	for _, a := range achievements {
		e.warnInconsistent(a)
		if !a.IsUnlocked() || a.UnlockedAt == nil {
			continue
		}
		if a.UnlockedAt.Before(windowStart) || a.UnlockedAt.After(now) {
			continue
		}
		count++
	}

	return count, nil
}

func (e *engine) warnInconsistent(a *progression.Achievement) {
	switch {
	case a.HasInconsistentUnlock():
		e.logger.Warn("Ignoring unlock timestamp on incomplete achievement",
			"achievement_id", a.ID,
			"player_id", a.PlayerID,
			"progress", a.Progress,
			"unlocked_at", a.UnlockedAt,
		)
	case a.IsUnlocked() && a.UnlockedAt == nil:
		e.logger.Warn("Completed achievement has no unlock timestamp",
			"achievement_id", a.ID,
			"player_id", a.PlayerID,
		)
	}
}

func validateAll(achievements []*progression.Achievement) error {
	for i, a := range achievements {
		if err := a.Validate(); err != nil {
			return errors.Wrapf(err, "invalid achievement at index %d", i)
		}
	}
	return nil
}
