package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/progression-api/internal/handlers/progression/v1alpha1"
)

var computeLevelCmd = &cobra.Command{
	Use:   "compute-level [total-xp]",
	Short: "Compute level, XP into level, and progress for an XP total",
	Long: `Compute level information for a lifetime XP total. Examples:

  compute-level 0
  compute-level 2500`,
	Args: cobra.ExactArgs(1),
	RunE: computeLevel,
}

var progressCmd = &cobra.Command{
	Use:   "progress [player-id]",
	Short: "Show a player's level and achievement stats",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return invoke("get player progress", map[string]any{"player_id": args[0]}, clientMethod(
			v1alpha1.ProgressionServiceClient.GetPlayerProgress))
	},
}

var registerCmd = &cobra.Command{
	Use:   "register [username]",
	Short: "Register a new player",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return invoke("register player", map[string]any{"username": args[0]}, clientMethod(
			v1alpha1.ProgressionServiceClient.RegisterPlayer))
	},
}

func computeLevel(_ *cobra.Command, args []string) error {
	totalXP, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("total-xp must be an integer: %w", err)
	}

	return invoke("compute level", map[string]any{"total_xp": totalXP}, clientMethod(
		v1alpha1.ProgressionServiceClient.ComputeLevel))
}

type clientRPC func(
	c v1alpha1.ProgressionServiceClient,
	ctx context.Context,
	req *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error)

// clientMethod adapts a client method expression to the invoke callback
func clientMethod(rpc clientRPC) call {
	return func(ctx context.Context, c v1alpha1.ProgressionServiceClient, req *structpb.Struct) (*structpb.Struct, error) {
		return rpc(c, ctx, req)
	}
}
