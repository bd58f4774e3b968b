package achievement

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/progression-api/internal/entities/progression"
	"github.com/KirkDiggler/progression-api/internal/errors"
	redisclient "github.com/KirkDiggler/progression-api/internal/redis"
)

const (
	// achievement:{player_id}:{achievement_id} holds the JSON document
	achievementKeyPrefix = "achievement:"
	// achievement_index:player:{player_id} is the set of achievement IDs
	playerIndexPrefix = "achievement_index:player:"

	// maxUpdateAttempts bounds optimistic-lock retries in Update
	maxUpdateAttempts = 5

	errAchievementNil     = "achievement cannot be nil"
	errPlayerIDEmpty      = "player ID cannot be empty"
	errAchievementIDEmpty = "achievement ID cannot be empty"
)

// RedisConfig contains configuration for the Redis achievement repository
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
}

// NewRedis creates a Redis-backed achievement repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{client: cfg.Client}, nil
}

var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Upsert(ctx context.Context, input UpsertInput) (*UpsertOutput, error) {
	if input.Achievement == nil {
		return nil, errors.InvalidArgument(errAchievementNil)
	}
	if input.Achievement.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}
	if err := input.Achievement.Validate(); err != nil {
		return nil, err
	}

	data, err := json.Marshal(input.Achievement)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal achievement")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, buildKey(input.Achievement.PlayerID, input.Achievement.ID), data, 0)
	pipe.SAdd(ctx, playerIndexPrefix+input.Achievement.PlayerID, input.Achievement.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to store achievement")
	}

	return &UpsertOutput{Achievement: input.Achievement}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}
	if input.AchievementID == "" {
		return nil, errors.InvalidArgument(errAchievementIDEmpty)
	}

	raw, err := r.client.Get(ctx, buildKey(input.PlayerID, input.AchievementID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("achievement %s not found", input.AchievementID).
				WithMeta("player_id", input.PlayerID).
				WithMeta("achievement_id", input.AchievementID)
		}
		return nil, errors.Wrap(err, "failed to get achievement")
	}

	var a progression.Achievement
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal achievement")
	}

	return &GetOutput{Achievement: &a}, nil
}

// Update runs Apply against the stored document under WATCH and writes the result in
// MULTI/EXEC, so a concurrent write makes the transaction retry against fresh data.
func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}
	if input.AchievementID == "" {
		return nil, errors.InvalidArgument(errAchievementIDEmpty)
	}
	if input.Apply == nil {
		return nil, errors.InvalidArgument("apply function cannot be nil")
	}

	key := buildKey(input.PlayerID, input.AchievementID)

	for attempt := 1; attempt <= maxUpdateAttempts; attempt++ {
		var output *UpdateOutput
		err := r.client.Watch(ctx, func(tx *redis.Tx) error {
			raw, err := tx.Get(ctx, key).Result()
			if err != nil {
				if err == redis.Nil {
					return errors.NotFoundf("achievement %s not found", input.AchievementID).
						WithMeta("player_id", input.PlayerID).
						WithMeta("achievement_id", input.AchievementID)
				}
				return errors.Wrap(err, "failed to get achievement")
			}

			var a progression.Achievement
			if err := json.Unmarshal([]byte(raw), &a); err != nil {
				return errors.Wrap(err, "failed to unmarshal achievement")
			}

			write, err := input.Apply(&a)
			if err != nil {
				return err
			}
			output = &UpdateOutput{Achievement: &a, Written: write}
			if !write {
				return nil
			}

			if err := a.Validate(); err != nil {
				return err
			}
			data, err := json.Marshal(&a)
			if err != nil {
				return errors.Wrap(err, "failed to marshal achievement")
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, data, 0)
				return nil
			})
			return err
		}, key)

		if err == redis.TxFailedErr {
			slog.Debug("Achievement changed during update, retrying",
				"player_id", input.PlayerID,
				"achievement_id", input.AchievementID,
				"attempt", attempt,
			)
			continue
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to update achievement")
		}
		return output, nil
	}

	return nil, errors.Abortedf("achievement %s kept changing during update", input.AchievementID).
		WithMeta("achievement_id", input.AchievementID)
}

func (r *redisRepository) ListByPlayer(ctx context.Context, input ListByPlayerInput) (*ListByPlayerOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	ids, err := r.client.SMembers(ctx, playerIndexPrefix+input.PlayerID).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list achievement IDs")
	}
	if len(ids) == 0 {
		return &ListByPlayerOutput{Achievements: []*progression.Achievement{}}, nil
	}
	sort.Strings(ids)

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = buildKey(input.PlayerID, id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load achievements")
	}

	achievements := make([]*progression.Achievement, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			slog.Warn("Achievement index references a missing document",
				"player_id", input.PlayerID,
				"achievement_id", ids[i],
			)
			continue
		}

		var a progression.Achievement
		if err := json.Unmarshal([]byte(raw), &a); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal achievement %s", ids[i])
		}
		achievements = append(achievements, &a)
	}

	return &ListByPlayerOutput{Achievements: achievements}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}
	if input.AchievementID == "" {
		return nil, errors.InvalidArgument(errAchievementIDEmpty)
	}

	pipe := r.client.TxPipeline()
	del := pipe.Del(ctx, buildKey(input.PlayerID, input.AchievementID))
	pipe.SRem(ctx, playerIndexPrefix+input.PlayerID, input.AchievementID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to delete achievement")
	}
	if del.Val() == 0 {
		return nil, errors.NotFoundf("achievement %s not found", input.AchievementID)
	}

	return &DeleteOutput{}, nil
}

func buildKey(playerID, achievementID string) string {
	return fmt.Sprintf("%s%s:%s", achievementKeyPrefix, playerID, achievementID)
}
