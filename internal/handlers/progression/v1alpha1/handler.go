// Package v1alpha1 serves the progression gRPC service
package v1alpha1

import (
	"context"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/progression-api/internal/engine"
	entities "github.com/KirkDiggler/progression-api/internal/entities/progression"
	"github.com/KirkDiggler/progression-api/internal/errors"
	"github.com/KirkDiggler/progression-api/internal/orchestrators/progression"
)

const day = 24 * time.Hour

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	ProgressionService progression.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil || c.ProgressionService == nil {
		return errors.InvalidArgument("progression service is required")
	}
	return nil
}

// Handler implements ProgressionServiceServer on top of the progression orchestrator
type Handler struct {
	service progression.Service
}

var _ ProgressionServiceServer = (*Handler)(nil)

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{service: cfg.ProgressionService}, nil
}

// ComputeLevel returns level information for an XP total
func (h *Handler) ComputeLevel(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	totalXP, err := intField(req, fieldTotalXP)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.service.ComputeLevel(ctx, &progression.ComputeLevelInput{TotalXP: totalXP})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return toStruct(map[string]any{"level": levelToMap(out.Level)})
}

// GetPlayerProgress returns a player's level and achievement stats
func (h *Handler) GetPlayerProgress(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	playerID, err := requiredString(req, fieldPlayerID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.service.GetPlayerProgress(ctx, &progression.GetPlayerProgressInput{PlayerID: playerID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return toStruct(map[string]any{
		"player": playerToMap(out.Player),
		"level":  levelToMap(out.Level),
		"stats":  statsToMap(out.Stats),
	})
}

// ListAchievements returns a filtered, sorted view of a player's achievements
func (h *Handler) ListAchievements(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	playerID, err := requiredString(req, fieldPlayerID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	input := &progression.ListAchievementsInput{PlayerID: playerID}
	if input.Filter, input.SortBy, err = listOptions(req); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.service.ListAchievements(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return toStruct(map[string]any{
		"achievements": achievementsToList(out.Achievements),
		"stats":        statsToMap(out.Stats),
	})
}

func listOptions(req *structpb.Struct) (engine.FilterOptions, engine.SortBy, error) {
	var opts engine.FilterOptions

	status, err := stringField(req, fieldStatus)
	if err != nil {
		return opts, "", err
	}
	opts.Status = engine.Status(status)

	rarity, err := stringField(req, fieldRarity)
	if err != nil {
		return opts, "", err
	}
	if rarity != "" {
		if opts.Rarity, err = entities.ParseRarity(rarity); err != nil {
			return opts, "", err
		}
	}

	if opts.Game, err = stringField(req, fieldGame); err != nil {
		return opts, "", err
	}
	if opts.Query, err = stringField(req, fieldQuery); err != nil {
		return opts, "", err
	}

	sortBy, err := stringField(req, fieldSortBy)
	if err != nil {
		return opts, "", err
	}

	return opts, engine.SortBy(sortBy), nil
}

// UpdateAchievementProgress moves an achievement's progress and reports any unlock
func (h *Handler) UpdateAchievementProgress(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	playerID, err := requiredString(req, fieldPlayerID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	achievementID, err := requiredString(req, fieldAchievementID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	progress, err := intField(req, fieldProgress)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if progress < 0 || progress > int64(entities.ProgressComplete) {
		return nil, errors.ToGRPCError(errors.InvalidArgumentf("progress must be between 0 and %d",
			entities.ProgressComplete))
	}

	out, err := h.service.UpdateAchievementProgress(ctx, &progression.UpdateAchievementProgressInput{
		PlayerID:      playerID,
		AchievementID: achievementID,
		Progress:      int32(progress),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return toStruct(map[string]any{
		"achievement": achievementToMap(out.Achievement),
		"unlocked":    out.Unlocked,
		"lifetime_xp": out.LifetimeXP,
		"level":       levelToMap(out.Level),
		"leveled_up":  out.LeveledUp,
	})
}

// GetRecentUnlocks counts unlocks in a trailing window of whole days (default 7)
func (h *Handler) GetRecentUnlocks(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	playerID, err := requiredString(req, fieldPlayerID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	days, err := intField(req, fieldWindowDays)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if days < 0 || days > maxWindowDays {
		return nil, errors.ToGRPCError(errors.InvalidArgumentf("window_days must be between 0 and %d",
			maxWindowDays))
	}

	out, err := h.service.GetRecentUnlocks(ctx, &progression.GetRecentUnlocksInput{
		PlayerID: playerID,
		Window:   time.Duration(days) * day,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return toStruct(map[string]any{
		"count":        out.Count,
		"window_start": formatTime(out.WindowStart),
		"now":          formatTime(out.Now),
	})
}

// maxWindowDays keeps the window within time.Duration range
const maxWindowDays = 36500

// RegisterPlayer creates a player
func (h *Handler) RegisterPlayer(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	username, err := requiredString(req, fieldUsername)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.service.RegisterPlayer(ctx, &progression.RegisterPlayerInput{Username: username})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return toStruct(map[string]any{"player": playerToMap(out.Player)})
}

// RecordAchievement adds a locked achievement to a player's collection
func (h *Handler) RecordAchievement(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	playerID, err := requiredString(req, fieldPlayerID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	input := &progression.RecordAchievementInput{PlayerID: playerID}
	if input.Title, err = stringField(req, fieldTitle); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if input.Description, err = stringField(req, fieldDescription); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if input.Game, err = stringField(req, fieldGame); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if input.XP, err = intField(req, fieldXP); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	rarity, err := stringField(req, fieldRarity)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if input.Rarity, err = entities.ParseRarity(rarity); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.service.RecordAchievement(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return toStruct(map[string]any{"achievement": achievementToMap(out.Achievement)})
}

func requiredString(req *structpb.Struct, name string) (string, error) {
	v, err := stringField(req, name)
	if err != nil {
		return "", err
	}
	if v == "" {
		return "", errors.InvalidArgumentf("%s is required", name)
	}
	return v, nil
}
