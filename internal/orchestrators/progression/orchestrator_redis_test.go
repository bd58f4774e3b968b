package progression_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/progression-api/internal/engine"
	entities "github.com/KirkDiggler/progression-api/internal/entities/progression"
	"github.com/KirkDiggler/progression-api/internal/errors"
	"github.com/KirkDiggler/progression-api/internal/orchestrators/progression"
	"github.com/KirkDiggler/progression-api/internal/pkg/clock"
	"github.com/KirkDiggler/progression-api/internal/pkg/idgen"
	"github.com/KirkDiggler/progression-api/internal/repositories/achievement"
	"github.com/KirkDiggler/progression-api/internal/repositories/player"
	"github.com/KirkDiggler/progression-api/internal/testutils"
)

// RedisOrchestratorTestSuite runs the orchestrator against real repositories on miniredis
type RedisOrchestratorTestSuite struct {
	suite.Suite
	cleanup      func()
	orchestrator progression.Service
	ctx          context.Context
}

func TestRedisOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(RedisOrchestratorTestSuite))
}

func (s *RedisOrchestratorTestSuite) SetupTest() {
	client, _, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup
	s.ctx = context.Background()

	c := &clock.Fixed{At: testutils.FixtureNow}

	playerRepo, err := player.NewRedis(&player.RedisConfig{Client: client, Clock: c})
	s.Require().NoError(err)
	achievementRepo, err := achievement.NewRedis(&achievement.RedisConfig{Client: client})
	s.Require().NoError(err)

	e, err := engine.New(nil)
	s.Require().NoError(err)

	o, err := progression.NewOrchestrator(&progression.Config{
		Engine:                 e,
		PlayerRepo:             playerRepo,
		AchievementRepo:        achievementRepo,
		Clock:                  c,
		PlayerIDGenerator:      idgen.NewSequential("player"),
		AchievementIDGenerator: idgen.NewSequential("ach"),
	})
	s.Require().NoError(err)
	s.orchestrator = o
}

func (s *RedisOrchestratorTestSuite) TearDownTest() {
	s.cleanup()
}

// nearlyDone registers a player holding one 500 XP achievement at 90%
func (s *RedisOrchestratorTestSuite) nearlyDone() (playerID, achievementID string) {
	reg, err := s.orchestrator.RegisterPlayer(s.ctx, &progression.RegisterPlayerInput{Username: "ProGamer123"})
	s.Require().NoError(err)

	rec, err := s.orchestrator.RecordAchievement(s.ctx, &progression.RecordAchievementInput{
		PlayerID: reg.Player.ID,
		Title:    "Marathon",
		Game:     "Cosmic Raiders",
		Rarity:   entities.RarityEpic,
		XP:       500,
	})
	s.Require().NoError(err)

	_, err = s.orchestrator.UpdateAchievementProgress(s.ctx, &progression.UpdateAchievementProgressInput{
		PlayerID:      reg.Player.ID,
		AchievementID: rec.Achievement.ID,
		Progress:      90,
	})
	s.Require().NoError(err)

	return reg.Player.ID, rec.Achievement.ID
}

func (s *RedisOrchestratorTestSuite) lifetimeXP(playerID string) int64 {
	out, err := s.orchestrator.GetPlayerProgress(s.ctx, &progression.GetPlayerProgressInput{PlayerID: playerID})
	s.Require().NoError(err)
	return out.Player.LifetimeXP
}

func (s *RedisOrchestratorTestSuite) TestConcurrentCompletionCreditsOnce() {
	playerID, achievementID := s.nearlyDone()

	const callers = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		unlocks  int
		failures []error
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := s.orchestrator.UpdateAchievementProgress(s.ctx, &progression.UpdateAchievementProgressInput{
				PlayerID:      playerID,
				AchievementID: achievementID,
				Progress:      100,
			})

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, err)
				return
			}
			if out.Unlocked {
				unlocks++
			}
		}()
	}
	wg.Wait()

	s.Empty(failures)
	s.Equal(1, unlocks)
	s.Equal(int64(500), s.lifetimeXP(playerID))
}

func (s *RedisOrchestratorTestSuite) TestLateLowerProgressCannotRelock() {
	playerID, achievementID := s.nearlyDone()

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i, progress := range []int32{100, 40} {
		wg.Add(1)
		go func(i int, progress int32) {
			defer wg.Done()
			_, results[i] = s.orchestrator.UpdateAchievementProgress(s.ctx, &progression.UpdateAchievementProgressInput{
				PlayerID:      playerID,
				AchievementID: achievementID,
				Progress:      progress,
			})
		}(i, progress)
	}
	wg.Wait()

	// completion always succeeds; the 40 either lands first or is rejected
	s.Require().NoError(results[0])
	if results[1] != nil {
		s.True(errors.IsFailedPrecondition(results[1]))
	}

	_, err := s.orchestrator.UpdateAchievementProgress(s.ctx, &progression.UpdateAchievementProgressInput{
		PlayerID:      playerID,
		AchievementID: achievementID,
		Progress:      40,
	})
	s.True(errors.IsFailedPrecondition(err))

	list, err := s.orchestrator.ListAchievements(s.ctx, &progression.ListAchievementsInput{PlayerID: playerID})
	s.Require().NoError(err)
	s.Require().Len(list.Achievements, 1)
	s.Equal(entities.ProgressComplete, list.Achievements[0].Progress)
	s.NotNil(list.Achievements[0].UnlockedAt)
	s.Equal(int64(500), s.lifetimeXP(playerID))
}
