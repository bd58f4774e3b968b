package client

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/progression-api/internal/handlers/progression/v1alpha1"
)

var (
	// List flags
	statusFilter string
	rarityFilter string
	gameFilter   string
	queryFilter  string
	sortBy       string

	// Record flags
	description string
	game        string
	rarity      string
	xp          int64

	// Unlock flags
	windowDays int64
)

var achievementsCmd = &cobra.Command{
	Use:   "achievements [player-id]",
	Short: "List a player's achievements",
	Long: `List achievements with optional filters. Examples:

  achievements player_123 --status in_progress --sort progress
  achievements player_123 --rarity legendary
  achievements player_123 --query night --sort xp`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return invoke("list achievements", map[string]any{
			"player_id": args[0],
			"status":    statusFilter,
			"rarity":    rarityFilter,
			"game":      gameFilter,
			"query":     queryFilter,
			"sort_by":   sortBy,
		}, clientMethod(v1alpha1.ProgressionServiceClient.ListAchievements))
	},
}

var recordCmd = &cobra.Command{
	Use:   "record [player-id] [title]",
	Short: "Add a locked achievement to a player's collection",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		return invoke("record achievement", map[string]any{
			"player_id":   args[0],
			"title":       args[1],
			"description": description,
			"game":        game,
			"rarity":      rarity,
			"xp":          xp,
		}, clientMethod(v1alpha1.ProgressionServiceClient.RecordAchievement))
	},
}

var updateProgressCmd = &cobra.Command{
	Use:   "update-progress [player-id] [achievement-id] [progress]",
	Short: "Set an achievement's progress; 100 unlocks it and credits its XP",
	Args:  cobra.ExactArgs(3),
	RunE: func(_ *cobra.Command, args []string) error {
		progress, err := strconv.ParseInt(args[2], 10, 32)
		if err != nil {
			return fmt.Errorf("progress must be an integer: %w", err)
		}

		return invoke("update achievement progress", map[string]any{
			"player_id":      args[0],
			"achievement_id": args[1],
			"progress":       progress,
		}, clientMethod(v1alpha1.ProgressionServiceClient.UpdateAchievementProgress))
	},
}

var unlocksCmd = &cobra.Command{
	Use:   "unlocks [player-id]",
	Short: "Count achievements unlocked in the trailing window",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return invoke("get recent unlocks", map[string]any{
			"player_id":   args[0],
			"window_days": windowDays,
		}, clientMethod(v1alpha1.ProgressionServiceClient.GetRecentUnlocks))
	},
}

func init() {
	achievementsCmd.Flags().StringVar(&statusFilter, "status", "", "Filter by status: all, completed, in_progress")
	achievementsCmd.Flags().StringVar(&rarityFilter, "rarity", "", "Filter by rarity: common, rare, epic, legendary")
	achievementsCmd.Flags().StringVar(&gameFilter, "game", "", "Filter by game")
	achievementsCmd.Flags().StringVar(&queryFilter, "query", "", "Case-insensitive search on title and description")
	achievementsCmd.Flags().StringVar(&sortBy, "sort", "progress", "Sort by: progress, xp, rarity, unlocked_at")

	recordCmd.Flags().StringVar(&description, "description", "", "Achievement description")
	recordCmd.Flags().StringVar(&game, "game", "", "Game the achievement belongs to")
	recordCmd.Flags().StringVar(&rarity, "rarity", "common", "Rarity: common, rare, epic, legendary")
	recordCmd.Flags().Int64Var(&xp, "xp", 100, "XP reward on unlock")

	unlocksCmd.Flags().Int64Var(&windowDays, "days", 7, "Trailing window in days")
}
