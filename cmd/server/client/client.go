// Package client provides commands that exercise a running Progression API server
package client

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/progression-api/internal/handlers/progression/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Client commands for the Progression API",
	Long:  `Client commands call a running Progression API server and print the JSON response.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	ClientCmd.AddCommand(computeLevelCmd)
	ClientCmd.AddCommand(registerCmd)
	ClientCmd.AddCommand(progressCmd)

	// Achievement commands
	ClientCmd.AddCommand(achievementsCmd)
	ClientCmd.AddCommand(recordCmd)
	ClientCmd.AddCommand(updateProgressCmd)
	ClientCmd.AddCommand(unlocksCmd)
}

// createClient dials the server and returns a client with its cleanup
func createClient() (v1alpha1.ProgressionServiceClient, func(), error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	return v1alpha1.NewProgressionServiceClient(conn), cleanup, nil
}

type call func(ctx context.Context, c v1alpha1.ProgressionServiceClient, req *structpb.Struct) (*structpb.Struct, error)

// invoke builds the request document, runs one RPC, and prints the response
func invoke(name string, fields map[string]any, fn call) error {
	req, err := structpb.NewStruct(fields)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	client, cleanup, err := createClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := fn(ctx, client, req)
	if err != nil {
		return fmt.Errorf("%s failed: %w", name, err)
	}

	out, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to format response: %w", err)
	}
	fmt.Println(string(out))

	return nil
}
