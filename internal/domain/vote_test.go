package domain

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/questclash/backend/internal/domain/badge"
	"github.com/questclash/backend/internal/domain/ledger"
	"github.com/questclash/backend/internal/domain/statistic"
	"github.com/questclash/backend/internal/entity"
	"github.com/questclash/backend/internal/model"
	"github.com/questclash/backend/internal/repository"
	"github.com/questclash/backend/pkg/errorx"
	"github.com/questclash/backend/pkg/testutil"
	"github.com/questclash/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestVoteDomain(t *testing.T) *voteDomain {
	userRepo := repository.NewUserRepository()
	transactionRepo := repository.NewTransactionRepository()
	badgeRepo := repository.NewBadgeRepository()
	badgeDetailRepo := repository.NewBadgeDetailRepository()

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return &voteDomain{
		submissionRepo:  repository.NewSubmissionRepository(),
		voteRepo:        repository.NewVoteRepository(),
		questRepo:       repository.NewQuestRepository(),
		participantRepo: repository.NewParticipantRepository(),
		rewardRepo:      repository.NewRewardRepository(),
		ledger:          ledger.New(userRepo, transactionRepo, node),
		badgeManager:    badge.NewManager(badgeRepo, badgeDetailRepo),
		leaderboard:     statistic.New(transactionRepo, &testutil.MockRedisClient{}),
	}
}

// submitPendingEvidence sets up a quest, a submitter who already submitted,
// and returns the pending submission.
func submitPendingEvidence(
	t *testing.T, ctx context.Context, domain *voteDomain, questInit *entity.Quest,
) (entity.Quest, entity.User, entity.Submission) {
	quest, err := testutil.SampleQuest(ctx, questInit)
	require.NoError(t, err)

	submitter, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	_, err = testutil.SampleParticipant(ctx, &entity.QuestParticipant{
		QuestID: quest.ID,
		UserID:  submitter.ID,
		Status:  entity.ParticipantSubmitted,
	})
	require.NoError(t, err)

	submission, err := testutil.SampleSubmission(ctx, &entity.Submission{
		QuestID: quest.ID,
		UserID:  submitter.ID,
	})
	require.NoError(t, err)

	return quest, submitter, submission
}

func Test_voteDomain_Vote_ApproveThreshold(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newTestVoteDomain(t)

	quest, submitter, submission := submitPendingEvidence(t, ctx, domain, &entity.Quest{
		XPReward:   100,
		UsdcReward: sql.NullFloat64{Valid: true, Float64: 2.5},
	})

	threshold := xcontext.Configs(ctx).Quest.ApproveThreshold
	for i := 0; i < threshold; i++ {
		voter, err := testutil.SampleUser(ctx, nil)
		require.NoError(t, err)

		resp, err := domain.Vote(
			xcontext.WithRequestUserID(ctx, voter.ID),
			&model.VoteRequest{SubmissionID: submission.ID, Approve: true})
		require.NoError(t, err)
		require.Equal(t, i+1, resp.VotesFor)

		if i < threshold-1 {
			require.Equal(t, string(entity.SubmissionPending), resp.Status)
		} else {
			require.Equal(t, string(entity.SubmissionApproved), resp.Status)
		}
	}

	// The approval paid out the xp reward and stored a pending usdc reward.
	userRepo := repository.NewUserRepository()
	reloaded, err := userRepo.GetByID(ctx, submitter.ID)
	require.NoError(t, err)
	require.Equal(t, int64(100), reloaded.XP)

	participant, err := domain.participantRepo.Get(ctx, quest.ID, submitter.ID)
	require.NoError(t, err)
	require.Equal(t, entity.ParticipantCompleted, participant.Status)

	rewards, err := domain.rewardRepo.GetPendingByUserID(ctx, submitter.ID)
	require.NoError(t, err)
	require.Len(t, rewards, 1)
	require.Equal(t, entity.RewardUsdc, rewards[0].Type)
	require.Equal(t, 2.5, rewards[0].Amount)

	// Votes after finalization are refused.
	lateVoter, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	_, err = domain.Vote(
		xcontext.WithRequestUserID(ctx, lateVoter.ID),
		&model.VoteRequest{SubmissionID: submission.ID, Approve: true})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.SubmissionClosed, errx.Code)
}

func Test_voteDomain_Vote_RejectThreshold(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newTestVoteDomain(t)

	quest, submitter, submission := submitPendingEvidence(t, ctx, domain, nil)

	threshold := xcontext.Configs(ctx).Quest.RejectThreshold
	for i := 0; i < threshold; i++ {
		voter, err := testutil.SampleUser(ctx, nil)
		require.NoError(t, err)

		resp, err := domain.Vote(
			xcontext.WithRequestUserID(ctx, voter.ID),
			&model.VoteRequest{SubmissionID: submission.ID, Approve: false})
		require.NoError(t, err)

		if i == threshold-1 {
			require.Equal(t, string(entity.SubmissionRejected), resp.Status)
		}
	}

	participant, err := domain.participantRepo.Get(ctx, quest.ID, submitter.ID)
	require.NoError(t, err)
	require.Equal(t, entity.ParticipantFailed, participant.Status)

	// A rejected submission earns nothing.
	userRepo := repository.NewUserRepository()
	reloaded, err := userRepo.GetByID(ctx, submitter.ID)
	require.NoError(t, err)
	require.Zero(t, reloaded.XP)
}

func Test_voteDomain_Vote_OwnSubmission(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newTestVoteDomain(t)

	_, submitter, submission := submitPendingEvidence(t, ctx, domain, nil)

	_, err := domain.Vote(
		xcontext.WithRequestUserID(ctx, submitter.ID),
		&model.VoteRequest{SubmissionID: submission.ID, Approve: true})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)
}

func Test_voteDomain_Vote_Twice(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newTestVoteDomain(t)

	_, _, submission := submitPendingEvidence(t, ctx, domain, nil)

	voter, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	ctx = xcontext.WithRequestUserID(ctx, voter.ID)
	_, err = domain.Vote(ctx, &model.VoteRequest{SubmissionID: submission.ID, Approve: true})
	require.NoError(t, err)

	// The composite vote key refuses a second vote, even with the other
	// direction.
	_, err = domain.Vote(ctx, &model.VoteRequest{SubmissionID: submission.ID, Approve: false})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyExists, errx.Code)

	reloaded, err := domain.submissionRepo.GetByID(ctx, submission.ID)
	require.NoError(t, err)
	require.Equal(t, 1, reloaded.VotesFor)
	require.Equal(t, 0, reloaded.VotesAgainst)
}

func Test_voteDomain_Vote_AfterDeadline(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newTestVoteDomain(t)

	quest, err := testutil.SampleQuest(ctx, nil)
	require.NoError(t, err)

	submitter, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	submission, err := testutil.SampleSubmission(ctx, &entity.Submission{
		QuestID:    quest.ID,
		UserID:     submitter.ID,
		DeadlineAt: time.Now().Add(-time.Minute),
	})
	require.NoError(t, err)

	voter, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	_, err = domain.Vote(
		xcontext.WithRequestUserID(ctx, voter.ID),
		&model.VoteRequest{SubmissionID: submission.ID, Approve: true})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.SubmissionClosed, errx.Code)
}

// staleSubmissionRepo serves a cached snapshot of one submission so a
// finalization committed after the snapshot is only visible to the
// conditional counter update.
type staleSubmissionRepo struct {
	repository.SubmissionRepository
	stale entity.Submission
}

func (r *staleSubmissionRepo) GetByID(context.Context, string) (*entity.Submission, error) {
	snapshot := r.stale
	return &snapshot, nil
}

func Test_voteDomain_Vote_FinalizedInBetween(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newTestVoteDomain(t)

	_, _, submission := submitPendingEvidence(t, ctx, domain, nil)

	// Another finalizer closes the submission right after the voter read it.
	err := domain.submissionRepo.UpdateStatusIfPending(ctx, submission.ID, entity.SubmissionApproved)
	require.NoError(t, err)
	domain.submissionRepo = &staleSubmissionRepo{
		SubmissionRepository: repository.NewSubmissionRepository(),
		stale:                submission,
	}

	voter, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	_, err = domain.Vote(
		xcontext.WithRequestUserID(ctx, voter.ID),
		&model.VoteRequest{SubmissionID: submission.ID, Approve: true})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.SubmissionClosed, errx.Code)

	// The vote row rolled back together with the failed counter update.
	_, err = domain.voteRepo.Get(ctx, submission.ID, voter.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
