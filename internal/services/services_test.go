package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	apperrors "github.com/focuslearner/backend/internal/errors"
	"github.com/focuslearner/backend/internal/generator"
	"github.com/focuslearner/backend/internal/grading"
	"github.com/focuslearner/backend/internal/models"
	"github.com/focuslearner/backend/internal/services"
	"github.com/focuslearner/backend/internal/testutil"
	"github.com/focuslearner/backend/internal/testutil/mocks"
)

const testTimeout = 2 * time.Second

type LoopServiceSuite struct {
	suite.Suite
	provider *mocks.MockProvider
	svc      services.LoopService
	taxID    int64
}

func (s *LoopServiceSuite) SetupTest() {
	database := testutil.NewTestDB(s.T())
	s.provider = new(mocks.MockProvider)
	s.svc = services.NewLoopService(database, s.provider, testTimeout)

	entry, err := database.FindTaxonomyEntry(context.Background(), "Math/Calculus", "Limits")
	s.Require().NoError(err)
	s.Require().NotNil(entry)
	s.taxID = entry.ID
}

func (s *LoopServiceSuite) TestGetStateLazyCreate() {
	ctx := context.Background()

	state, err := s.svc.GetState(ctx, 1, s.taxID)
	s.Require().NoError(err)
	s.Equal(models.StageUnderstand, state.Stage)
	s.Equal(0, state.Attempts)

	again, err := s.svc.GetState(ctx, 1, s.taxID)
	s.Require().NoError(err)
	s.Equal(state.ID, again.ID)
}

func (s *LoopServiceSuite) TestGetStateUnknownTaxonomy() {
	_, err := s.svc.GetState(context.Background(), 1, 999999)
	s.Require().Error(err)
	appErr, ok := err.(*apperrors.AppError)
	s.Require().True(ok)
	s.Equal(apperrors.ErrCodeNotFound, appErr.Code)
}

func (s *LoopServiceSuite) TestFullJourneyWithRecovery() {
	ctx := context.Background()

	// UNDERSTAND -> APPLY
	res, err := s.svc.Advance(ctx, 1, s.taxID, true, 100, nil)
	s.Require().NoError(err)
	s.Equal(models.StageApply, res.State.Stage)
	s.Equal("Lecture complete! Time to apply what you learned.", res.Feedback)

	// Mastery gate: correct but below threshold drops to REMEDIATE.
	s.provider.On("AnalyzeMisconception", mock.Anything, mock.Anything, "41", "42", "Math/Calculus").
		Return(generator.Misconception{Analysis: "Off-by-one in the limit bound.", RemediationFocus: "limit laws"}, nil)

	res, err = s.svc.Advance(ctx, 1, s.taxID, true, 50, &services.AttemptContext{
		Question: "q", LearnerAnswer: "41", ExpectedAnswer: "42", Subject: "Math/Calculus",
	})
	s.Require().NoError(err)
	s.False(res.Success)
	s.Equal(models.StageRemediate, res.State.Stage)
	s.Equal(1, res.State.Attempts)
	s.Contains(res.Feedback, "Score 50% is below mastery threshold (80%).")
	s.Contains(res.Feedback, "Off-by-one in the limit bound.")
	s.Require().NotNil(res.State.LastFeedback)
	s.Equal("limit laws", res.State.LastFeedback.RemediationFocus)

	// Remediation completion returns to APPLY, analysis kept for review.
	state, ok, err := s.svc.CompleteRemediation(ctx, 1, s.taxID)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(models.StageApply, state.Stage)

	// Passing the gate masters the topic and clears the stored feedback.
	res, err = s.svc.Advance(ctx, 1, s.taxID, true, 90, nil)
	s.Require().NoError(err)
	s.True(res.Success)
	s.Equal(models.StageMastered, res.State.Stage)
	s.Equal(2, res.State.Attempts)
	s.Equal("Topic Mastered! You're ready for the next concept.", res.Feedback)
	s.Nil(res.State.LastFeedback)

	s.provider.AssertExpectations(s.T())
}

func (s *LoopServiceSuite) TestDirectRemediationRecovery() {
	ctx := context.Background()

	_, err := s.svc.Advance(ctx, 1, s.taxID, true, 100, nil)
	s.Require().NoError(err)

	s.provider.On("AnalyzeMisconception", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(generator.Misconception{Analysis: "a", RemediationFocus: "b"}, nil)
	_, err = s.svc.Advance(ctx, 1, s.taxID, false, 0, &services.AttemptContext{Subject: "Math/Calculus"})
	s.Require().NoError(err)

	// Succeeding straight out of REMEDIATE is a recovery.
	res, err := s.svc.Advance(ctx, 1, s.taxID, true, 100, nil)
	s.Require().NoError(err)
	s.Equal(models.StageMastered, res.State.Stage)
	s.Equal("Great recovery! Topic Mastered.", res.Feedback)
}

func (s *LoopServiceSuite) TestMisconceptionFallsBackToStatic() {
	ctx := context.Background()

	_, err := s.svc.Advance(ctx, 1, s.taxID, true, 100, nil)
	s.Require().NoError(err)

	s.provider.On("AnalyzeMisconception", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(generator.Misconception{}, context.DeadlineExceeded)

	res, err := s.svc.Advance(ctx, 1, s.taxID, false, 0, &services.AttemptContext{
		Question: "q", LearnerAnswer: "a", ExpectedAnswer: "b", Subject: "Math/Calculus",
	})
	s.Require().NoError(err)
	s.Equal(models.StageRemediate, res.State.Stage)
	s.Require().NotNil(res.State.LastFeedback)
	s.NotEmpty(res.State.LastFeedback.Analysis)
}

func (s *LoopServiceSuite) TestCompleteRemediationOutsideRemediate() {
	ctx := context.Background()

	state, ok, err := s.svc.CompleteRemediation(ctx, 1, s.taxID)
	s.Require().NoError(err)
	s.False(ok)
	s.Equal(models.StageUnderstand, state.Stage)
}

func TestLoopServiceSuite(t *testing.T) {
	suite.Run(t, new(LoopServiceSuite))
}

type ActivityServiceSuite struct {
	suite.Suite
	svc  services.ActivityService
	loop services.LoopService
}

func (s *ActivityServiceSuite) SetupTest() {
	database := testutil.NewTestDB(s.T())
	provider := generator.NewStatic()
	s.loop = services.NewLoopService(database, provider, testTimeout)
	s.svc = services.NewActivityService(database, provider, s.loop, testTimeout)
}

func (s *ActivityServiceSuite) TestCreateActivityStripsSecret() {
	ctx := context.Background()

	created, err := s.svc.CreateActivity(ctx, 1, "Science/Chemistry", "General", grading.TypeLab)
	s.Require().NoError(err)
	s.NotEmpty(created.ChallengeID)
	s.Equal(grading.TypeLab, created.Type)
	s.NotContains(created.Payload, "correct_answer")
	s.NotContains(created.Payload, "answer")
	s.NotContains(created.Payload, "solution")
	s.Contains(created.Payload, "question")
}

func (s *ActivityServiceSuite) TestCreateActivityValidation() {
	_, err := s.svc.CreateActivity(context.Background(), 1, "", "General", grading.TypeLab)
	s.Require().Error(err)
	appErr, ok := err.(*apperrors.AppError)
	s.Require().True(ok)
	s.Equal(apperrors.ErrCodeValidation, appErr.Code)
}

func (s *ActivityServiceSuite) TestSubmitLabEndToEnd() {
	ctx := context.Background()

	// Seeded taxonomy topic, so the submission drives the loop too.
	created, err := s.svc.CreateActivity(ctx, 1, "Science/Chemistry", "General", grading.TypeLab)
	s.Require().NoError(err)

	resp, err := s.svc.SubmitActivity(ctx, 1, created.ChallengeID, "neutralization", 0)
	s.Require().NoError(err)
	s.True(resp.Correct)
	s.InDelta(1.0, resp.Score, 0.001)
	s.Equal(80, resp.XPEarned)
	s.InDelta(12.0, resp.Proficiency.Proficiency, 0.001) // 15 * 0.8
	s.Equal(80, resp.Progress.TotalXP)
	s.Require().NotNil(resp.Loop)
	s.Equal(models.StageApply, resp.Loop.State.Stage)
	s.Equal("Lecture complete! Time to apply what you learned.", resp.Feedback)
}

func (s *ActivityServiceSuite) TestSubmitWrongAnswerRemediates() {
	ctx := context.Background()

	created, err := s.svc.CreateActivity(ctx, 1, "Science/Chemistry", "General", grading.TypeLab)
	s.Require().NoError(err)

	// Move the loop past UNDERSTAND so failure has a modeled transition.
	resp, err := s.svc.SubmitActivity(ctx, 1, created.ChallengeID, "Neutralization", 0)
	s.Require().NoError(err)
	s.Equal(models.StageApply, resp.Loop.State.Stage)

	second, err := s.svc.CreateActivity(ctx, 1, "Science/Chemistry", "General", grading.TypeLab)
	s.Require().NoError(err)
	resp, err = s.svc.SubmitActivity(ctx, 1, second.ChallengeID, "Explosion", 2)
	s.Require().NoError(err)
	s.False(resp.Correct)
	s.Equal(0, resp.XPEarned)
	s.Require().NotNil(resp.Loop)
	s.Equal(models.StageRemediate, resp.Loop.State.Stage)
	s.Require().NotNil(resp.Loop.State.LastFeedback)
}

func (s *ActivityServiceSuite) TestSubmitUnknownChallenge() {
	_, err := s.svc.SubmitActivity(context.Background(), 1, "ghost", "x", 0)
	s.Require().Error(err)
	appErr, ok := err.(*apperrors.AppError)
	s.Require().True(ok)
	s.Equal(apperrors.ErrCodeNotFound, appErr.Code)
}

func (s *ActivityServiceSuite) TestSubmitOtherUsersChallenge() {
	ctx := context.Background()

	created, err := s.svc.CreateActivity(ctx, 1, "Science/Chemistry", "General", grading.TypeLab)
	s.Require().NoError(err)

	_, err = s.svc.SubmitActivity(ctx, 2, created.ChallengeID, "Neutralization", 0)
	s.Require().Error(err)
	appErr, ok := err.(*apperrors.AppError)
	s.Require().True(ok)
	s.Equal(apperrors.ErrCodeNotFound, appErr.Code)
}

func (s *ActivityServiceSuite) TestUnlinkedTopicSkipsLoop() {
	ctx := context.Background()

	created, err := s.svc.CreateActivity(ctx, 1, "Arts/History", "Obscure Topic", grading.TypeGeneric)
	s.Require().NoError(err)

	resp, err := s.svc.SubmitActivity(ctx, 1, created.ChallengeID, "grammar", 0)
	s.Require().NoError(err)
	s.True(resp.Correct)
	s.Nil(resp.Loop)
}

func (s *ActivityServiceSuite) TestHistory() {
	ctx := context.Background()

	created, err := s.svc.CreateActivity(ctx, 1, "Science/Chemistry", "General", grading.TypeLab)
	s.Require().NoError(err)
	_, err = s.svc.SubmitActivity(ctx, 1, created.ChallengeID, "Neutralization", 1)
	s.Require().NoError(err)

	results, err := s.svc.History(ctx, models.ActivityFilter{UserID: 1})
	s.Require().NoError(err)
	s.Require().Len(results, 1)
	s.Equal(created.ChallengeID, results[0].ChallengeID)
	s.Equal(1, results[0].FocusViolations)
}

func TestActivityServiceSuite(t *testing.T) {
	suite.Run(t, new(ActivityServiceSuite))
}

type ReadServicesSuite struct {
	suite.Suite
	activity  services.ActivityService
	mastery   services.MasteryService
	health    services.HealthService
	taxonomy  services.TaxonomyService
	progress  services.ProgressService
	challenge string
}

func (s *ReadServicesSuite) SetupTest() {
	database := testutil.NewTestDB(s.T())
	provider := generator.NewStatic()
	loopSvc := services.NewLoopService(database, provider, testTimeout)
	s.activity = services.NewActivityService(database, provider, loopSvc, testTimeout)
	s.mastery = services.NewMasteryService(database)
	s.health = services.NewHealthService(database)
	s.taxonomy = services.NewTaxonomyService(database)
	s.progress = services.NewProgressService(database)

	created, err := s.activity.CreateActivity(context.Background(), 1, "Science/Chemistry", "General", grading.TypeLab)
	s.Require().NoError(err)
	s.challenge = created.ChallengeID
}

func (s *ReadServicesSuite) TestMasteryNotStartedFallback() {
	record, err := s.mastery.Get(context.Background(), 1, "Science/Chemistry", "General")
	s.Require().NoError(err)
	s.Equal(models.MasteryNotStarted, record.State)
	s.Zero(record.Proficiency)
	s.Zero(record.TotalAttempts)
}

func (s *ReadServicesSuite) TestMasteryAfterSubmission() {
	ctx := context.Background()
	_, err := s.activity.SubmitActivity(ctx, 1, s.challenge, "Neutralization", 0)
	s.Require().NoError(err)

	record, err := s.mastery.Get(ctx, 1, "Science/Chemistry", "General")
	s.Require().NoError(err)
	s.Equal(1, record.TotalAttempts)
	s.InDelta(12.0, record.Proficiency, 0.001)

	list, err := s.mastery.List(ctx, 1, "Science/Chemistry")
	s.Require().NoError(err)
	s.Len(list, 1)
}

func (s *ReadServicesSuite) TestHealthFreshUser() {
	summary, err := s.health.Summary(context.Background(), 42)
	s.Require().NoError(err)
	s.InDelta(45.0, summary.OverallHealth, 0.001)
	s.InDelta(0.0, summary.Metrics.Consistency, 0.001)
	s.InDelta(100.0, summary.Metrics.Focus, 0.001)
	s.InDelta(80.0, summary.Metrics.Resilience, 0.001)
	s.InDelta(0.0, summary.Metrics.Stability, 0.001)
}

func (s *ReadServicesSuite) TestTaxonomyReads() {
	ctx := context.Background()

	entries, err := s.taxonomy.List(ctx)
	s.Require().NoError(err)
	s.NotEmpty(entries)

	entry, err := s.taxonomy.Get(ctx, entries[0].ID)
	s.Require().NoError(err)
	s.Equal(entries[0].Subject, entry.Subject)

	_, err = s.taxonomy.Get(ctx, 999999)
	s.Require().Error(err)
}

func (s *ReadServicesSuite) TestProgressAndLeaderboard() {
	ctx := context.Background()
	_, err := s.activity.SubmitActivity(ctx, 1, s.challenge, "Neutralization", 0)
	s.Require().NoError(err)

	progress, err := s.progress.List(ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(progress, 1)
	s.Equal(80, progress[0].TotalXP)

	board, err := s.progress.Leaderboard(ctx, "", 10)
	s.Require().NoError(err)
	s.Require().Len(board, 1)
	s.Equal(int64(1), board[0].UserID)
}

func TestReadServicesSuite(t *testing.T) {
	suite.Run(t, new(ReadServicesSuite))
}
