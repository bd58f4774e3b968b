package player

import (
	"context"
	"strconv"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/progression-api/internal/entities/progression"
	"github.com/KirkDiggler/progression-api/internal/errors"
	"github.com/KirkDiggler/progression-api/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/progression-api/internal/redis"
)

const (
	// player:{id} is a hash of the fields below
	playerKeyPrefix = "player:"
	// player:username:{username} -> id
	usernameKeyPrefix = "player:username:"

	fieldID         = "id"
	fieldUsername   = "username"
	fieldLifetimeXP = "lifetime_xp"
	fieldCreatedAt  = "created_at"
	fieldUpdatedAt  = "updated_at"

	errPlayerNil     = "player cannot be nil"
	errPlayerIDEmpty = "player ID cannot be empty"
	errUsernameEmpty = "username cannot be empty"
)

// RedisConfig contains configuration for the Redis player repository
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
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
	clock  clock.Clock
}

// NewRedis creates a Redis-backed player repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Player == nil {
		return nil, errors.InvalidArgument(errPlayerNil)
	}
	if input.Player.ID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}
	if input.Player.Username == "" {
		return nil, errors.InvalidArgument(errUsernameEmpty)
	}
	if input.Player.LifetimeXP < 0 {
		return nil, errors.InvalidArgumentf("lifetime XP must not be negative, got %d", input.Player.LifetimeXP)
	}

	key := playerKeyPrefix + input.Player.ID
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to check player existence")
	}
	if exists > 0 {
		return nil, errors.AlreadyExistsf("player with ID %s already exists", input.Player.ID)
	}

	reserved, err := r.client.SetNX(ctx, usernameKeyPrefix+input.Player.Username, input.Player.ID, 0).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to reserve username")
	}
	if !reserved {
		return nil, errors.AlreadyExistsf("username %s is taken", input.Player.Username)
	}

	now := r.clock.Now()
	stored := *input.Player
	stored.CreatedAt = now
	stored.UpdatedAt = now

	err = r.client.HSet(ctx, key,
		fieldID, stored.ID,
		fieldUsername, stored.Username,
		fieldLifetimeXP, stored.LifetimeXP,
		fieldCreatedAt, now.Format(time.RFC3339Nano),
		fieldUpdatedAt, now.Format(time.RFC3339Nano),
	).Err()
	if err != nil {
		_ = r.client.Del(ctx, usernameKeyPrefix+stored.Username).Err()
		return nil, errors.Wrap(err, "failed to create player")
	}

	return &CreateOutput{Player: &stored}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	fields, err := r.client.HGetAll(ctx, playerKeyPrefix+input.ID).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get player")
	}
	if len(fields) == 0 {
		return nil, errors.NotFoundf("player with ID %s not found", input.ID).WithMeta("player_id", input.ID)
	}

	p, err := decodePlayer(fields)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode player %s", input.ID)
	}

	return &GetOutput{Player: p}, nil
}

func (r *redisRepository) AddXP(ctx context.Context, input AddXPInput) (*AddXPOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}
	if input.XP < 0 {
		return nil, errors.InvalidArgumentf("XP credit must not be negative, got %d", input.XP)
	}

	key := playerKeyPrefix + input.ID
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to check player existence")
	}
	if exists == 0 {
		return nil, errors.NotFoundf("player with ID %s not found", input.ID).WithMeta("player_id", input.ID)
	}

	pipe := r.client.TxPipeline()
	incr := pipe.HIncrBy(ctx, key, fieldLifetimeXP, input.XP)
	pipe.HSet(ctx, key, fieldUpdatedAt, r.clock.Now().Format(time.RFC3339Nano))
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to credit XP")
	}

	return &AddXPOutput{LifetimeXP: incr.Val()}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	key := playerKeyPrefix + input.ID
	username, err := r.client.HGet(ctx, key, fieldUsername).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("player with ID %s not found", input.ID)
		}
		return nil, errors.Wrap(err, "failed to get player")
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.Del(ctx, usernameKeyPrefix+username)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to delete player")
	}

	return &DeleteOutput{}, nil
}

func decodePlayer(fields map[string]string) (*progression.Player, error) {
	xp, err := strconv.ParseInt(fields[fieldLifetimeXP], 10, 64)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "invalid lifetime_xp")
	}
	createdAt, err := time.Parse(time.RFC3339Nano, fields[fieldCreatedAt])
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "invalid created_at")
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, fields[fieldUpdatedAt])
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "invalid updated_at")
	}

	return &progression.Player{
		ID:         fields[fieldID],
		Username:   fields[fieldUsername],
		LifetimeXP: xp,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}, nil
}
