package player_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/progression-api/internal/entities/progression"
	"github.com/KirkDiggler/progression-api/internal/errors"
	"github.com/KirkDiggler/progression-api/internal/pkg/clock"
	"github.com/KirkDiggler/progression-api/internal/repositories/player"
	"github.com/KirkDiggler/progression-api/internal/testutils"
)

type RedisPlayerTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	cleanup func()
	clock   *clock.Fixed
	repo    player.Repository
	ctx     context.Context
}

func TestRedisPlayerSuite(t *testing.T) {
	suite.Run(t, new(RedisPlayerTestSuite))
}

func (s *RedisPlayerTestSuite) SetupTest() {
	client, mr, cleanup := testutils.CreateTestRedisClient(s.T())
	s.mr = mr
	s.cleanup = cleanup
	s.clock = &clock.Fixed{At: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	s.ctx = context.Background()

	repo, err := player.NewRedis(&player.RedisConfig{Client: client, Clock: s.clock})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisPlayerTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisPlayerTestSuite) create(id, username string) *progression.Player {
	out, err := s.repo.Create(s.ctx, player.CreateInput{
		Player: &progression.Player{ID: id, Username: username},
	})
	s.Require().NoError(err)
	return out.Player
}

func (s *RedisPlayerTestSuite) TestNewRedis() {
	_, err := player.NewRedis(nil)
	s.ErrorContains(err, "config cannot be nil")

	_, err = player.NewRedis(&player.RedisConfig{})
	s.ErrorContains(err, "client cannot be nil")
}

func (s *RedisPlayerTestSuite) TestCreateAndGet() {
	created := s.create("player_1", "ProGamer123")
	s.Equal(s.clock.At, created.CreatedAt)

	s.Equal("player_1", s.mr.HGet("player:player_1", "username"))
	got, err := s.mr.Get("player:username:ProGamer123")
	s.Require().NoError(err)
	s.Equal("player_1", got)

	out, err := s.repo.Get(s.ctx, player.GetInput{ID: "player_1"})
	s.Require().NoError(err)
	s.Equal(created, out.Player)
}

func (s *RedisPlayerTestSuite) TestCreateValidation() {
	testCases := []struct {
		name   string
		player *progression.Player
		errMsg string
	}{
		{name: "nil player", player: nil, errMsg: "player cannot be nil"},
		{name: "empty id", player: &progression.Player{Username: "x"}, errMsg: "player ID cannot be empty"},
		{name: "empty username", player: &progression.Player{ID: "p"}, errMsg: "username cannot be empty"},
		{name: "negative xp", player: &progression.Player{ID: "p", Username: "x", LifetimeXP: -1}, errMsg: "must not be negative"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.repo.Create(s.ctx, player.CreateInput{Player: tc.player})
			s.True(errors.IsInvalidArgument(err))
			s.ErrorContains(err, tc.errMsg)
		})
	}
}

func (s *RedisPlayerTestSuite) TestCreateConflicts() {
	s.create("player_1", "Alex")

	_, err := s.repo.Create(s.ctx, player.CreateInput{
		Player: &progression.Player{ID: "player_1", Username: "Other"},
	})
	s.True(errors.IsAlreadyExists(err))

	_, err = s.repo.Create(s.ctx, player.CreateInput{
		Player: &progression.Player{ID: "player_2", Username: "Alex"},
	})
	s.True(errors.IsAlreadyExists(err))
	s.False(s.mr.Exists("player:player_2"))
}

func (s *RedisPlayerTestSuite) TestGetNotFound() {
	_, err := s.repo.Get(s.ctx, player.GetInput{ID: "ghost"})
	s.True(errors.IsNotFound(err))
	s.Equal("ghost", errors.GetMeta(err)["player_id"])

	_, err = s.repo.Get(s.ctx, player.GetInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisPlayerTestSuite) TestAddXP() {
	s.create("player_1", "Sarah")
	s.clock.At = s.clock.At.Add(time.Hour)

	out, err := s.repo.AddXP(s.ctx, player.AddXPInput{ID: "player_1", XP: 500})
	s.Require().NoError(err)
	s.Equal(int64(500), out.LifetimeXP)

	out, err = s.repo.AddXP(s.ctx, player.AddXPInput{ID: "player_1", XP: 200})
	s.Require().NoError(err)
	s.Equal(int64(700), out.LifetimeXP)

	got, err := s.repo.Get(s.ctx, player.GetInput{ID: "player_1"})
	s.Require().NoError(err)
	s.Equal(int64(700), got.Player.LifetimeXP)
	s.Equal(s.clock.At, got.Player.UpdatedAt)

	_, err = s.repo.AddXP(s.ctx, player.AddXPInput{ID: "player_1", XP: -5})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.AddXP(s.ctx, player.AddXPInput{ID: "ghost", XP: 5})
	s.True(errors.IsNotFound(err))
	s.False(s.mr.Exists("player:ghost"))
}

func (s *RedisPlayerTestSuite) TestDelete() {
	s.create("player_1", "Mike")

	_, err := s.repo.Delete(s.ctx, player.DeleteInput{ID: "player_1"})
	s.Require().NoError(err)
	s.False(s.mr.Exists("player:player_1"))
	s.False(s.mr.Exists("player:username:Mike"))

	_, err = s.repo.Delete(s.ctx, player.DeleteInput{ID: "player_1"})
	s.True(errors.IsNotFound(err))
}
