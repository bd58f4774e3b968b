package v1alpha1

import (
	"math"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	entities "github.com/KirkDiggler/progression-api/internal/entities/progression"
	"github.com/KirkDiggler/progression-api/internal/errors"
)

// Request field names
const (
	fieldPlayerID      = "player_id"
	fieldAchievementID = "achievement_id"
	fieldUsername      = "username"
	fieldTotalXP       = "total_xp"
	fieldProgress      = "progress"
	fieldStatus        = "status"
	fieldRarity        = "rarity"
	fieldGame          = "game"
	fieldQuery         = "query"
	fieldSortBy        = "sort_by"
	fieldWindowDays    = "window_days"
	fieldTitle         = "title"
	fieldDescription   = "description"
	fieldXP            = "xp"
)

// maxExactInteger is the largest integer a protobuf number value carries without loss
const maxExactInteger = 1 << 53

func stringField(req *structpb.Struct, name string) (string, error) {
	v, ok := req.GetFields()[name]
	if !ok {
		return "", nil
	}
	switch v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return v.GetStringValue(), nil
	case *structpb.Value_NullValue:
		return "", nil
	default:
		return "", errors.InvalidArgumentf("%s must be a string", name)
	}
}

// intField reads an integral number. Missing and null fields read as zero.
func intField(req *structpb.Struct, name string) (int64, error) {
	v, ok := req.GetFields()[name]
	if !ok {
		return 0, nil
	}
	switch v.GetKind().(type) {
	case *structpb.Value_NumberValue:
	case *structpb.Value_NullValue:
		return 0, nil
	default:
		return 0, errors.InvalidArgumentf("%s must be a number", name)
	}

	n := v.GetNumberValue()
	if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) {
		return 0, errors.InvalidArgumentf("%s must be an integer", name)
	}
	if n > maxExactInteger || n < -maxExactInteger {
		return 0, errors.InvalidArgumentf("%s is out of range", name)
	}
	return int64(n), nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func levelToMap(l *entities.LevelInfo) map[string]any {
	if l == nil {
		return nil
	}
	return map[string]any{
		"level":         l.Level,
		"current_xp":    l.CurrentXP,
		"next_level_xp": l.NextLevelXP,
		"progress":      l.Progress,
	}
}

func statsToMap(s *entities.AchievementStats) map[string]any {
	if s == nil {
		return nil
	}
	return map[string]any{
		"total_count":     s.TotalCount,
		"unlocked_count":  s.UnlockedCount,
		"total_xp_earned": s.TotalXPEarned,
		"completion_rate": s.CompletionRate,
	}
}

func playerToMap(p *entities.Player) map[string]any {
	if p == nil {
		return nil
	}
	return map[string]any{
		"id":          p.ID,
		"username":    p.Username,
		"lifetime_xp": p.LifetimeXP,
		"created_at":  formatTime(p.CreatedAt),
		"updated_at":  formatTime(p.UpdatedAt),
	}
}

func achievementToMap(a *entities.Achievement) map[string]any {
	if a == nil {
		return nil
	}
	m := map[string]any{
		"id":             a.ID,
		"player_id":      a.PlayerID,
		"title":          a.Title,
		"description":    a.Description,
		"game":           a.Game,
		"rarity":         string(a.Rarity),
		"rarity_display": a.Rarity.DisplayName(),
		"xp":             a.XP,
		"progress":       a.Progress,
		"unlocked":       a.IsUnlocked(),
		"unlocked_at":    nil,
	}
	if a.UnlockedAt != nil && a.IsUnlocked() {
		m["unlocked_at"] = formatTime(*a.UnlockedAt)
	}
	return m
}

func achievementsToList(achievements []*entities.Achievement) []any {
	list := make([]any, 0, len(achievements))
	for _, a := range achievements {
		list = append(list, achievementToMap(a))
	}
	return list
}

// toStruct converts a response document, mapping conversion failures to Internal
func toStruct(m map[string]any) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, errors.ToGRPCError(errors.Wrap(err, "failed to encode response"))
	}
	return s, nil
}
