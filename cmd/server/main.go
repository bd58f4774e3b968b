// Package main is the entry point for the progression gRPC server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/progression-api/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "progression-api",
	Short: "Progression API gRPC Server",
	Long: `Progression API computes player levels from lifetime XP and tracks achievement
collections: rarity, completion stats, and recent unlock streaks.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
