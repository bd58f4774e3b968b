// Command fix-corrupted-data scans stored achievements for records the progression
// engine would reject or flag, and optionally repairs them.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/progression-api/internal/entities/progression"
)

const (
	achievementPrefix  = "achievement:"
	achievementPattern = achievementPrefix + "*"
	// achievement_index:player:{player_id} sets sit outside achievementPattern
	playerIndexPrefix = "achievement_index:player:"
)

// scanReport lists problem keys found by scanAchievements
type scanReport struct {
	Checked int
	// Corrupted documents do not decode or fail validation; the repair deletes them
	Corrupted []string
	// Stale documents carry unlocked_at on an incomplete achievement; the repair clears it
	Stale []string
}

func (r *scanReport) empty() bool {
	return len(r.Corrupted) == 0 && len(r.Stale) == 0
}

func main() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	fmt.Println("Connected to Redis:", redisURL)
	fmt.Println("Scanning achievement documents...")

	report, err := scanAchievements(ctx, client, os.Stdout)
	if err != nil {
		log.Fatal("Error during scan:", err)
	}

	fmt.Printf("\nChecked %d documents: %d corrupted, %d with stale unlock timestamps\n",
		report.Checked, len(report.Corrupted), len(report.Stale))

	if report.empty() {
		fmt.Println("No problems found!")
		return
	}

	fmt.Print("\nDelete corrupted documents and clear stale timestamps? (yes/no): ")
	var response string
	_, _ = fmt.Scanln(&response) // nolint:errcheck // empty input means no

	if response != "yes" {
		fmt.Println("Aborted - no changes made")
		return
	}

	if err := repair(ctx, client, report, os.Stdout); err != nil {
		log.Fatal("Repair failed:", err)
	}
	fmt.Println("\nCleanup complete!")
}

// scanAchievements checks every achievement document
func scanAchievements(ctx context.Context, client redis.UniversalClient, out io.Writer) (*scanReport, error) {
	report := &scanReport{}
	iter := client.Scan(ctx, 0, achievementPattern, 0).Iterator()

	for iter.Next(ctx) {
		key := iter.Val()
		report.Checked++

		data, err := client.Get(ctx, key).Result()
		if err != nil {
			_, _ = fmt.Fprintf(out, "Error reading %s: %v\n", key, err)
			continue
		}

		var a progression.Achievement
		if err := json.Unmarshal([]byte(data), &a); err != nil {
			_, _ = fmt.Fprintf(out, "✗ Corrupted JSON in %s\n", key)
			report.Corrupted = append(report.Corrupted, key)
			continue
		}
		if err := a.Validate(); err != nil {
			_, _ = fmt.Fprintf(out, "✗ Invalid achievement in %s: %v\n", key, err)
			report.Corrupted = append(report.Corrupted, key)
			continue
		}
		if a.HasInconsistentUnlock() {
			_, _ = fmt.Fprintf(out, "✗ Stale unlocked_at in %s (progress %d)\n", key, a.Progress)
			report.Stale = append(report.Stale, key)
		}
	}

	if err := iter.Err(); err != nil {
		return nil, err
	}
	return report, nil
}

// splitKey returns the player and achievement IDs of achievement:{player_id}:{achievement_id}
func splitKey(key string) (playerID, achievementID string, ok bool) {
	rest, found := strings.CutPrefix(key, achievementPrefix)
	if !found {
		return "", "", false
	}
	playerID, achievementID, found = strings.Cut(rest, ":")
	if !found || playerID == "" || achievementID == "" {
		return "", "", false
	}
	return playerID, achievementID, true
}

// repair deletes corrupted documents along with their index entries and rewrites
// stale ones without unlocked_at
func repair(ctx context.Context, client redis.UniversalClient, report *scanReport, out io.Writer) error {
	for _, key := range report.Corrupted {
		pipe := client.TxPipeline()
		pipe.Del(ctx, key)
		if playerID, achievementID, ok := splitKey(key); ok {
			pipe.SRem(ctx, playerIndexPrefix+playerID, achievementID)
		} else {
			_, _ = fmt.Fprintf(out, "Unrecognized key %s, no index entry removed\n", key)
		}
		if _, err := pipe.Exec(ctx); err != nil {
			return fmt.Errorf("failed to delete %s: %w", key, err)
		}
		_, _ = fmt.Fprintf(out, "Deleted %s\n", key)
	}

	for _, key := range report.Stale {
		data, err := client.Get(ctx, key).Bytes()
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", key, err)
		}

		var a progression.Achievement
		if err := json.Unmarshal(data, &a); err != nil {
			return fmt.Errorf("failed to decode %s: %w", key, err)
		}
		a.UnlockedAt = nil

		fixed, err := json.Marshal(&a)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", key, err)
		}
		if err := client.Set(ctx, key, fixed, redis.KeepTTL).Err(); err != nil {
			return fmt.Errorf("failed to write %s: %w", key, err)
		}
		_, _ = fmt.Fprintf(out, "Cleared unlocked_at on %s\n", key)
	}

	return nil
}
