// Package progression implements the player progression use cases on top of the engine
// and the player/achievement repositories
package progression

//go:generate mockgen -destination=mock/mock_service.go -package=progressionmock github.com/KirkDiggler/progression-api/internal/orchestrators/progression Service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/KirkDiggler/progression-api/internal/engine"
	entities "github.com/KirkDiggler/progression-api/internal/entities/progression"
	"github.com/KirkDiggler/progression-api/internal/errors"
	"github.com/KirkDiggler/progression-api/internal/pkg/clock"
	"github.com/KirkDiggler/progression-api/internal/pkg/idgen"
	"github.com/KirkDiggler/progression-api/internal/repositories/achievement"
	"github.com/KirkDiggler/progression-api/internal/repositories/player"
)

const (
	// DefaultStreakWindow backs the "unlocked in the last 7 days" counter
	DefaultStreakWindow = 7 * 24 * time.Hour

	errPlayerIDRequired      = "player ID is required"
	errAchievementIDRequired = "achievement ID is required"
)

// Service defines the progression use cases
type Service interface {
	RegisterPlayer(ctx context.Context, input *RegisterPlayerInput) (*RegisterPlayerOutput, error)
	ComputeLevel(ctx context.Context, input *ComputeLevelInput) (*ComputeLevelOutput, error)
	GetPlayerProgress(ctx context.Context, input *GetPlayerProgressInput) (*GetPlayerProgressOutput, error)

	ListAchievements(ctx context.Context, input *ListAchievementsInput) (*ListAchievementsOutput, error)
	RecordAchievement(ctx context.Context, input *RecordAchievementInput) (*RecordAchievementOutput, error)
	UpdateAchievementProgress(
		ctx context.Context,
		input *UpdateAchievementProgressInput,
	) (*UpdateAchievementProgressOutput, error)
	GetRecentUnlocks(ctx context.Context, input *GetRecentUnlocksInput) (*GetRecentUnlocksOutput, error)
}

// Config holds the dependencies for the progression orchestrator
type Config struct {
	Engine                 engine.Engine
	PlayerRepo             player.Repository
	AchievementRepo        achievement.Repository
	Clock                  clock.Clock
	PlayerIDGenerator      idgen.Generator
	AchievementIDGenerator idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.PlayerRepo == nil {
		vb.RequiredField("PlayerRepo")
	}
	if c.AchievementRepo == nil {
		vb.RequiredField("AchievementRepo")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.PlayerIDGenerator == nil {
		vb.RequiredField("PlayerIDGenerator")
	}
	if c.AchievementIDGenerator == nil {
		vb.RequiredField("AchievementIDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	engine          engine.Engine
	playerRepo      player.Repository
	achievementRepo achievement.Repository
	clock           clock.Clock
	playerIDs       idgen.Generator
	achievementIDs  idgen.Generator
}

// NewOrchestrator creates a new progression orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		engine:          cfg.Engine,
		playerRepo:      cfg.PlayerRepo,
		achievementRepo: cfg.AchievementRepo,
		clock:           cfg.Clock,
		playerIDs:       cfg.PlayerIDGenerator,
		achievementIDs:  cfg.AchievementIDGenerator,
	}, nil
}

// RegisterPlayer creates a player with zero lifetime XP
func (o *orchestrator) RegisterPlayer(ctx context.Context, input *RegisterPlayerInput) (*RegisterPlayerOutput, error) {
	if input == nil || strings.TrimSpace(input.Username) == "" {
		return nil, errors.InvalidArgument("username is required")
	}

	out, err := o.playerRepo.Create(ctx, player.CreateInput{
		Player: &entities.Player{
			ID:       o.playerIDs.Generate(),
			Username: strings.TrimSpace(input.Username),
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create player")
	}

	slog.Info("Player registered",
		"player_id", out.Player.ID,
		"username", out.Player.Username,
	)

	return &RegisterPlayerOutput{Player: out.Player}, nil
}

// ComputeLevel exposes the engine's level calculation for an arbitrary XP total
func (o *orchestrator) ComputeLevel(_ context.Context, input *ComputeLevelInput) (*ComputeLevelOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	level, err := o.engine.ComputeLevel(input.TotalXP)
	if err != nil {
		return nil, err
	}

	return &ComputeLevelOutput{Level: level}, nil
}

// GetPlayerProgress returns level information and achievement statistics for a player
func (o *orchestrator) GetPlayerProgress(
	ctx context.Context,
	input *GetPlayerProgressInput,
) (*GetPlayerProgressOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDRequired)
	}

	playerOut, err := o.playerRepo.Get(ctx, player.GetInput{ID: input.PlayerID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get player")
	}

	level, err := o.engine.ComputeLevel(playerOut.Player.LifetimeXP)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to compute level for player %s", input.PlayerID)
	}

	listOut, err := o.achievementRepo.ListByPlayer(ctx, achievement.ListByPlayerInput{PlayerID: input.PlayerID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list achievements")
	}

	stats, err := o.engine.Aggregate(listOut.Achievements)
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate achievements")
	}

	return &GetPlayerProgressOutput{
		Player: playerOut.Player,
		Level:  level,
		Stats:  stats,
	}, nil
}

// ListAchievements filters and sorts a player's collection
func (o *orchestrator) ListAchievements(
	ctx context.Context,
	input *ListAchievementsInput,
) (*ListAchievementsOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDRequired)
	}

	listOut, err := o.achievementRepo.ListByPlayer(ctx, achievement.ListByPlayerInput{PlayerID: input.PlayerID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list achievements")
	}

	stats, err := o.engine.Aggregate(listOut.Achievements)
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate achievements")
	}

	filtered, err := o.engine.Filter(listOut.Achievements, input.Filter)
	if err != nil {
		return nil, err
	}

	sorted, err := o.engine.Sort(filtered, input.SortBy)
	if err != nil {
		return nil, err
	}

	return &ListAchievementsOutput{
		Achievements: sorted,
		Stats:        stats,
	}, nil
}

// RecordAchievement adds a new locked achievement to a player's collection
func (o *orchestrator) RecordAchievement(
	ctx context.Context,
	input *RecordAchievementInput,
) (*RecordAchievementOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDRequired)
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("title", input.Title, vb)
	errors.ValidateNonNegative("xp", input.XP, vb)
	if !input.Rarity.IsValid() {
		vb.Fieldf("rarity", "unknown rarity %q", string(input.Rarity))
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	if _, err := o.playerRepo.Get(ctx, player.GetInput{ID: input.PlayerID}); err != nil {
		return nil, errors.Wrap(err, "failed to get player")
	}

	a := &entities.Achievement{
		ID:          o.achievementIDs.Generate(),
		PlayerID:    input.PlayerID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Game:        input.Game,
		Rarity:      input.Rarity,
		XP:          input.XP,
	}

	out, err := o.achievementRepo.Upsert(ctx, achievement.UpsertInput{Achievement: a})
	if err != nil {
		return nil, errors.Wrap(err, "failed to store achievement")
	}

	slog.Info("Achievement recorded",
		"player_id", input.PlayerID,
		"achievement_id", a.ID,
		"rarity", a.Rarity,
		"xp", a.XP,
	)

	return &RecordAchievementOutput{Achievement: out.Achievement}, nil
}

// UpdateAchievementProgress sets progress on an achievement. Reaching 100 stamps UnlockedAt
// and credits the XP reward exactly once; unlocked achievements cannot move backwards.
func (o *orchestrator) UpdateAchievementProgress(
	ctx context.Context,
	input *UpdateAchievementProgressInput,
) (*UpdateAchievementProgressOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDRequired)
	}
	if input.AchievementID == "" {
		return nil, errors.InvalidArgument(errAchievementIDRequired)
	}
	if input.Progress < 0 || input.Progress > entities.ProgressComplete {
		return nil, errors.InvalidArgumentf("progress must be between 0 and %d, got %d",
			entities.ProgressComplete, input.Progress)
	}

	playerOut, err := o.playerRepo.Get(ctx, player.GetInput{ID: input.PlayerID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get player")
	}

	levelBefore, err := o.engine.ComputeLevel(playerOut.Player.LifetimeXP)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compute level")
	}

	// Apply reruns when another writer touches the document; only the committed run counts.
	var unlocked bool
	updateOut, err := o.achievementRepo.Update(ctx, achievement.UpdateInput{
		PlayerID:      input.PlayerID,
		AchievementID: input.AchievementID,
		Apply: func(a *entities.Achievement) (bool, error) {
			write, justUnlocked, err := o.applyProgress(a, input.Progress)
			unlocked = justUnlocked
			return write, err
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update achievement")
	}
	a := updateOut.Achievement

	output := &UpdateAchievementProgressOutput{
		Achievement: a,
		Unlocked:    unlocked,
		LifetimeXP:  playerOut.Player.LifetimeXP,
		Level:       levelBefore,
	}
	if !unlocked {
		return output, nil
	}

	xpOut, err := o.playerRepo.AddXP(ctx, player.AddXPInput{ID: input.PlayerID, XP: a.XP})
	if err != nil {
		slog.Error("Achievement unlocked but XP credit failed",
			"player_id", input.PlayerID,
			"achievement_id", a.ID,
			"xp", a.XP,
			"error", err,
		)
		return nil, errors.Wrap(err, "failed to credit achievement XP")
	}

	levelAfter, err := o.engine.ComputeLevel(xpOut.LifetimeXP)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compute level")
	}

	output.LifetimeXP = xpOut.LifetimeXP
	output.Level = levelAfter
	output.LeveledUp = levelAfter.Level > levelBefore.Level

	slog.Info("Achievement unlocked",
		"player_id", input.PlayerID,
		"achievement_id", a.ID,
		"xp", a.XP,
		"lifetime_xp", xpOut.LifetimeXP,
		"level", levelAfter.Level,
		"leveled_up", output.LeveledUp,
	)

	return output, nil
}

// applyProgress moves a stored achievement to the requested progress and reports whether to
// write it and whether this change unlocked it. Unlocked achievements accept only a repeat of
// 100, which leaves them untouched.
func (o *orchestrator) applyProgress(a *entities.Achievement, progress int32) (write, unlocked bool, err error) {
	if a.IsUnlocked() {
		if progress < entities.ProgressComplete {
			return false, false, errors.FailedPreconditionf("achievement %s is already unlocked", a.ID).
				WithMeta("achievement_id", a.ID)
		}
		return false, false, nil
	}

	if a.UnlockedAt != nil {
		slog.Warn("Clearing unlock timestamp on incomplete achievement",
			"player_id", a.PlayerID,
			"achievement_id", a.ID,
			"progress", a.Progress,
		)
		a.UnlockedAt = nil
	}

	a.Progress = progress
	if !a.IsUnlocked() {
		return true, false, nil
	}

	now := o.clock.Now()
	a.UnlockedAt = &now
	return true, true, nil
}

// GetRecentUnlocks counts achievements unlocked in [now-window, now]
func (o *orchestrator) GetRecentUnlocks(
	ctx context.Context,
	input *GetRecentUnlocksInput,
) (*GetRecentUnlocksOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDRequired)
	}
	if input.Window < 0 {
		return nil, errors.InvalidArgumentf("window must not be negative, got %s", input.Window)
	}

	window := input.Window
	if window == 0 {
		window = DefaultStreakWindow
	}

	listOut, err := o.achievementRepo.ListByPlayer(ctx, achievement.ListByPlayerInput{PlayerID: input.PlayerID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list achievements")
	}

	now := o.clock.Now()
	windowStart := now.Add(-window)
	count, err := o.engine.StreakCount(listOut.Achievements, windowStart, now)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count recent unlocks")
	}

	return &GetRecentUnlocksOutput{
		Count:       count,
		WindowStart: windowStart,
		Now:         now,
	}, nil
}
