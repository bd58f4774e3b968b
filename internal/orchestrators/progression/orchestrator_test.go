package progression_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/progression-api/internal/engine"
	entities "github.com/KirkDiggler/progression-api/internal/entities/progression"
	"github.com/KirkDiggler/progression-api/internal/errors"
	"github.com/KirkDiggler/progression-api/internal/orchestrators/progression"
	clockmock "github.com/KirkDiggler/progression-api/internal/pkg/clock/mock"
	"github.com/KirkDiggler/progression-api/internal/pkg/idgen"
	"github.com/KirkDiggler/progression-api/internal/repositories/achievement"
	achievementmock "github.com/KirkDiggler/progression-api/internal/repositories/achievement/mock"
	"github.com/KirkDiggler/progression-api/internal/repositories/player"
	playermock "github.com/KirkDiggler/progression-api/internal/repositories/player/mock"
	"github.com/KirkDiggler/progression-api/internal/testutils"
)

const testPlayerID = testutils.TestPlayerID

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	mockPlayers     *playermock.MockRepository
	mockAchievement *achievementmock.MockRepository
	mockClock       *clockmock.MockClock
	orchestrator    progression.Service
	ctx             context.Context
	now             time.Time
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockPlayers = playermock.NewMockRepository(s.ctrl)
	s.mockAchievement = achievementmock.NewMockRepository(s.ctrl)
	s.mockClock = clockmock.NewMockClock(s.ctrl)
	s.ctx = context.Background()
	s.now = testutils.FixtureNow

	e, err := engine.New(nil)
	s.Require().NoError(err)

	o, err := progression.NewOrchestrator(&progression.Config{
		Engine:                 e,
		PlayerRepo:             s.mockPlayers,
		AchievementRepo:        s.mockAchievement,
		Clock:                  s.mockClock,
		PlayerIDGenerator:      idgen.NewSequential("player"),
		AchievementIDGenerator: idgen.NewSequential("ach"),
	})
	s.Require().NoError(err)
	s.orchestrator = o
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) expectPlayer(lifetimeXP int64) {
	s.mockPlayers.EXPECT().
		Get(s.ctx, player.GetInput{ID: testPlayerID}).
		Return(&player.GetOutput{Player: &entities.Player{
			ID:         testPlayerID,
			Username:   "ProGamer123",
			LifetimeXP: lifetimeXP,
		}}, nil)
}

func (s *OrchestratorTestSuite) expectList(achievements []*entities.Achievement) {
	s.mockAchievement.EXPECT().
		ListByPlayer(s.ctx, achievement.ListByPlayerInput{PlayerID: testPlayerID}).
		Return(&achievement.ListByPlayerOutput{Achievements: achievements}, nil)
}

// expectUpdate runs the orchestrator's Apply against stored the way the repository does
func (s *OrchestratorTestSuite) expectUpdate(stored *entities.Achievement) *gomock.Call {
	return s.mockAchievement.EXPECT().
		Update(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input achievement.UpdateInput) (*achievement.UpdateOutput, error) {
			s.Equal(testPlayerID, input.PlayerID)
			s.Equal(stored.ID, input.AchievementID)

			write, err := input.Apply(stored)
			if err != nil {
				return nil, err
			}
			return &achievement.UpdateOutput{Achievement: stored, Written: write}, nil
		})
}

func (s *OrchestratorTestSuite) TestNewOrchestratorValidation() {
	_, err := progression.NewOrchestrator(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = progression.NewOrchestrator(&progression.Config{})
	s.Require().Error(err)
	for _, field := range []string{"Engine", "PlayerRepo", "AchievementRepo", "Clock", "PlayerIDGenerator"} {
		s.Contains(err.Error(), field)
	}
}

func (s *OrchestratorTestSuite) TestRegisterPlayer() {
	s.Run("creates player with generated id", func() {
		s.mockPlayers.EXPECT().
			Create(s.ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, input player.CreateInput) (*player.CreateOutput, error) {
				s.Equal("player_1", input.Player.ID)
				s.Equal("Alex", input.Player.Username)
				s.Zero(input.Player.LifetimeXP)
				return &player.CreateOutput{Player: input.Player}, nil
			})

		out, err := s.orchestrator.RegisterPlayer(s.ctx, &progression.RegisterPlayerInput{Username: "  Alex "})
		s.Require().NoError(err)
		s.Equal("player_1", out.Player.ID)
	})

	s.Run("username required", func() {
		_, err := s.orchestrator.RegisterPlayer(s.ctx, &progression.RegisterPlayerInput{Username: " "})
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("username conflict passes through", func() {
		s.mockPlayers.EXPECT().
			Create(s.ctx, gomock.Any()).
			Return(nil, errors.AlreadyExists("username Alex is taken"))

		_, err := s.orchestrator.RegisterPlayer(s.ctx, &progression.RegisterPlayerInput{Username: "Alex"})
		s.True(errors.IsAlreadyExists(err))
	})
}

func (s *OrchestratorTestSuite) TestComputeLevel() {
	out, err := s.orchestrator.ComputeLevel(s.ctx, &progression.ComputeLevelInput{TotalXP: 1000})
	s.Require().NoError(err)
	s.Equal(int32(2), out.Level.Level)
	s.Equal(int64(1500), out.Level.NextLevelXP)

	_, err = s.orchestrator.ComputeLevel(s.ctx, &progression.ComputeLevelInput{TotalXP: -1})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestGetPlayerProgress() {
	s.expectPlayer(2500)
	s.expectList(testutils.CreateTestAchievements(testPlayerID))

	out, err := s.orchestrator.GetPlayerProgress(s.ctx, &progression.GetPlayerProgressInput{PlayerID: testPlayerID})
	s.Require().NoError(err)

	s.Equal(int32(3), out.Level.Level)
	s.Equal(int64(0), out.Level.CurrentXP)
	s.Equal(int64(2250), out.Level.NextLevelXP)

	s.Equal(5, out.Stats.TotalCount)
	s.Equal(2, out.Stats.UnlockedCount)
	s.Equal(int64(700), out.Stats.TotalXPEarned)
	s.InDelta(40.0, out.Stats.CompletionRate, 1e-9)
}

func (s *OrchestratorTestSuite) TestGetPlayerProgressNotFound() {
	s.mockPlayers.EXPECT().
		Get(s.ctx, player.GetInput{ID: "ghost"}).
		Return(nil, errors.NotFound("player with ID ghost not found"))

	_, err := s.orchestrator.GetPlayerProgress(s.ctx, &progression.GetPlayerProgressInput{PlayerID: "ghost"})
	s.True(errors.IsNotFound(err))

	_, err = s.orchestrator.GetPlayerProgress(s.ctx, &progression.GetPlayerProgressInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestListAchievements() {
	s.expectList(testutils.CreateTestAchievements(testPlayerID))

	out, err := s.orchestrator.ListAchievements(s.ctx, &progression.ListAchievementsInput{
		PlayerID: testPlayerID,
		Filter:   engine.FilterOptions{Status: engine.StatusInProgress},
		SortBy:   engine.SortByProgress,
	})
	s.Require().NoError(err)

	ids := make([]string, len(out.Achievements))
	for i, a := range out.Achievements {
		ids[i] = a.ID
	}
	s.Equal([]string{"ach_night_owl", "ach_social_butterfly", "ach_game_master"}, ids)
	s.Equal(5, out.Stats.TotalCount)
}

func (s *OrchestratorTestSuite) TestListAchievementsBadSort() {
	s.expectList(testutils.CreateTestAchievements(testPlayerID))

	_, err := s.orchestrator.ListAchievements(s.ctx, &progression.ListAchievementsInput{
		PlayerID: testPlayerID,
		SortBy:   "alphabetical",
	})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestRecordAchievement() {
	s.expectPlayer(0)
	s.mockAchievement.EXPECT().
		Upsert(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input achievement.UpsertInput) (*achievement.UpsertOutput, error) {
			a := input.Achievement
			s.Equal("ach_1", a.ID)
			s.Equal(testPlayerID, a.PlayerID)
			s.Equal(entities.RarityEpic, a.Rarity)
			s.Equal(int32(0), a.Progress)
			s.Nil(a.UnlockedAt)
			return &achievement.UpsertOutput{Achievement: a}, nil
		})

	out, err := s.orchestrator.RecordAchievement(s.ctx, &progression.RecordAchievementInput{
		PlayerID: testPlayerID,
		Title:    "Clutch King",
		Game:     "Valorant",
		Rarity:   entities.RarityEpic,
		XP:       400,
	})
	s.Require().NoError(err)
	s.Equal("Clutch King", out.Achievement.Title)
}

func (s *OrchestratorTestSuite) TestRecordAchievementValidation() {
	_, err := s.orchestrator.RecordAchievement(s.ctx, &progression.RecordAchievementInput{
		PlayerID: testPlayerID,
		Rarity:   "mythic",
		XP:       -1,
	})
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "title")
	s.Contains(err.Error(), "rarity")
	s.Contains(err.Error(), "xp")
}

func (s *OrchestratorTestSuite) TestUpdateProgressUnlocksAndCreditsXP() {
	a := testutils.NewAchievement("ach_night_owl").WithXP(300).WithProgress(90).Build()

	s.expectPlayer(900)
	s.mockClock.EXPECT().Now().Return(s.now)
	s.expectUpdate(a)
	s.mockPlayers.EXPECT().
		AddXP(s.ctx, player.AddXPInput{ID: testPlayerID, XP: 300}).
		Return(&player.AddXPOutput{LifetimeXP: 1200}, nil)

	out, err := s.orchestrator.UpdateAchievementProgress(s.ctx, &progression.UpdateAchievementProgressInput{
		PlayerID:      testPlayerID,
		AchievementID: "ach_night_owl",
		Progress:      100,
	})
	s.Require().NoError(err)
	s.True(out.Unlocked)
	s.True(out.LeveledUp)
	s.Equal(int32(100), out.Achievement.Progress)
	s.Require().NotNil(out.Achievement.UnlockedAt)
	s.Equal(s.now, *out.Achievement.UnlockedAt)
	s.Equal(int64(1200), out.LifetimeXP)
	s.Equal(int32(2), out.Level.Level)
	s.Equal(int64(200), out.Level.CurrentXP)
}

func (s *OrchestratorTestSuite) TestUpdateProgressPartial() {
	a := testutils.NewAchievement("ach_social").WithProgress(70).Build()

	s.expectPlayer(100)
	s.expectUpdate(a)

	out, err := s.orchestrator.UpdateAchievementProgress(s.ctx, &progression.UpdateAchievementProgressInput{
		PlayerID:      testPlayerID,
		AchievementID: "ach_social",
		Progress:      80,
	})
	s.Require().NoError(err)
	s.False(out.Unlocked)
	s.False(out.LeveledUp)
	s.Equal(int32(80), out.Achievement.Progress)
	s.Equal(int64(100), out.LifetimeXP)
}

func (s *OrchestratorTestSuite) TestUpdateProgressClearsStaleUnlock() {
	a := testutils.NewAchievement("ach_stale").WithProgress(40).Build()
	stale := s.now.Add(-time.Hour)
	a.UnlockedAt = &stale

	s.expectPlayer(0)
	s.expectUpdate(a)

	out, err := s.orchestrator.UpdateAchievementProgress(s.ctx, &progression.UpdateAchievementProgressInput{
		PlayerID:      testPlayerID,
		AchievementID: "ach_stale",
		Progress:      50,
	})
	s.Require().NoError(err)
	s.Nil(out.Achievement.UnlockedAt)
	s.Equal(int32(50), out.Achievement.Progress)
}

func (s *OrchestratorTestSuite) TestUpdateProgressOnUnlockedAchievement() {
	s.Run("repeating completion is a no-op", func() {
		a := testutils.NewAchievement("ach_done").Unlocked(s.now).Build()
		s.expectPlayer(500)
		s.expectUpdate(a)

		out, err := s.orchestrator.UpdateAchievementProgress(s.ctx, &progression.UpdateAchievementProgressInput{
			PlayerID:      testPlayerID,
			AchievementID: "ach_done",
			Progress:      100,
		})
		s.Require().NoError(err)
		s.False(out.Unlocked)
		s.Equal(int64(500), out.LifetimeXP)
	})

	s.Run("moving backwards is rejected", func() {
		a := testutils.NewAchievement("ach_done").Unlocked(s.now).Build()
		s.expectPlayer(500)
		s.expectUpdate(a)

		_, err := s.orchestrator.UpdateAchievementProgress(s.ctx, &progression.UpdateAchievementProgressInput{
			PlayerID:      testPlayerID,
			AchievementID: "ach_done",
			Progress:      20,
		})
		s.True(errors.IsFailedPrecondition(err))
		s.Equal(int32(100), a.Progress)
	})
}

func (s *OrchestratorTestSuite) TestUpdateProgressReportsOnlyCommittedRun() {
	// the first Apply run sees a locked document, the retry sees it already unlocked
	locked := testutils.NewAchievement("ach_race").WithXP(500).WithProgress(90).Build()
	unlocked := testutils.NewAchievement("ach_race").WithXP(500).Unlocked(s.now).Build()

	s.expectPlayer(0)
	s.mockClock.EXPECT().Now().Return(s.now)
	s.mockAchievement.EXPECT().
		Update(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input achievement.UpdateInput) (*achievement.UpdateOutput, error) {
			_, err := input.Apply(locked)
			s.Require().NoError(err)

			write, err := input.Apply(unlocked)
			if err != nil {
				return nil, err
			}
			return &achievement.UpdateOutput{Achievement: unlocked, Written: write}, nil
		})

	out, err := s.orchestrator.UpdateAchievementProgress(s.ctx, &progression.UpdateAchievementProgressInput{
		PlayerID:      testPlayerID,
		AchievementID: "ach_race",
		Progress:      100,
	})
	s.Require().NoError(err)
	s.False(out.Unlocked)
	s.Equal(int64(0), out.LifetimeXP)
}

func (s *OrchestratorTestSuite) TestUpdateProgressValidation() {
	testCases := []struct {
		name  string
		input *progression.UpdateAchievementProgressInput
	}{
		{name: "nil input", input: nil},
		{name: "missing player", input: &progression.UpdateAchievementProgressInput{AchievementID: "a"}},
		{name: "missing achievement", input: &progression.UpdateAchievementProgressInput{PlayerID: "p"}},
		{name: "progress above 100", input: &progression.UpdateAchievementProgressInput{PlayerID: "p", AchievementID: "a", Progress: 101}},
		{name: "negative progress", input: &progression.UpdateAchievementProgressInput{PlayerID: "p", AchievementID: "a", Progress: -1}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.orchestrator.UpdateAchievementProgress(s.ctx, tc.input)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *OrchestratorTestSuite) TestUpdateProgressCreditFailure() {
	a := testutils.NewAchievement("ach_1").WithProgress(99).Build()

	s.expectPlayer(0)
	s.mockClock.EXPECT().Now().Return(s.now)
	s.expectUpdate(a)
	s.mockPlayers.EXPECT().
		AddXP(s.ctx, gomock.Any()).
		Return(nil, errors.Internal("redis unavailable"))

	_, err := s.orchestrator.UpdateAchievementProgress(s.ctx, &progression.UpdateAchievementProgressInput{
		PlayerID:      testPlayerID,
		AchievementID: "ach_1",
		Progress:      100,
	})
	s.True(errors.IsInternal(err))
}

func (s *OrchestratorTestSuite) TestGetRecentUnlocks() {
	s.Run("default window of seven days", func() {
		s.expectList(testutils.CreateTestAchievements(testPlayerID))
		s.mockClock.EXPECT().Now().Return(s.now)

		out, err := s.orchestrator.GetRecentUnlocks(s.ctx, &progression.GetRecentUnlocksInput{PlayerID: testPlayerID})
		s.Require().NoError(err)
		// only Team Player (Mar 15) falls within Mar 13 12:00 .. Mar 20 12:00
		s.Equal(1, out.Count)
		s.Equal(s.now.Add(-progression.DefaultStreakWindow), out.WindowStart)
	})

	s.Run("wider window", func() {
		s.expectList(testutils.CreateTestAchievements(testPlayerID))
		s.mockClock.EXPECT().Now().Return(s.now)

		out, err := s.orchestrator.GetRecentUnlocks(s.ctx, &progression.GetRecentUnlocksInput{
			PlayerID: testPlayerID,
			Window:   30 * 24 * time.Hour,
		})
		s.Require().NoError(err)
		s.Equal(2, out.Count)
	})

	s.Run("negative window", func() {
		_, err := s.orchestrator.GetRecentUnlocks(s.ctx, &progression.GetRecentUnlocksInput{
			PlayerID: testPlayerID,
			Window:   -time.Hour,
		})
		s.True(errors.IsInvalidArgument(err))
	})
}
