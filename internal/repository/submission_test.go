package repository_test

import (
	"testing"
	"time"

	"github.com/questclash/backend/internal/entity"
	"github.com/questclash/backend/internal/repository"
	"github.com/questclash/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_submissionRepository_IncreaseVote(t *testing.T) {
	ctx := testutil.MockContext()
	submissionRepo := repository.NewSubmissionRepository()

	quest, err := testutil.SampleQuest(ctx, nil)
	require.NoError(t, err)

	submitter, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	submission, err := testutil.SampleSubmission(ctx, &entity.Submission{
		QuestID: quest.ID,
		UserID:  submitter.ID,
	})
	require.NoError(t, err)

	require.NoError(t, submissionRepo.IncreaseVote(ctx, submission.ID, true))
	require.NoError(t, submissionRepo.IncreaseVote(ctx, submission.ID, true))
	require.NoError(t, submissionRepo.IncreaseVote(ctx, submission.ID, false))

	reloaded, err := submissionRepo.GetByID(ctx, submission.ID)
	require.NoError(t, err)
	require.Equal(t, 2, reloaded.VotesFor)
	require.Equal(t, 1, reloaded.VotesAgainst)
}

func Test_submissionRepository_UpdateStatusIfPending_SingleWinner(t *testing.T) {
	ctx := testutil.MockContext()
	submissionRepo := repository.NewSubmissionRepository()

	quest, err := testutil.SampleQuest(ctx, nil)
	require.NoError(t, err)

	submitter, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	submission, err := testutil.SampleSubmission(ctx, &entity.Submission{
		QuestID: quest.ID,
		UserID:  submitter.ID,
	})
	require.NoError(t, err)

	require.NoError(t, submissionRepo.UpdateStatusIfPending(
		ctx, submission.ID, entity.SubmissionApproved))

	// The second finalizer loses, the submission stays approved.
	err = submissionRepo.UpdateStatusIfPending(ctx, submission.ID, entity.SubmissionRejected)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Votes stop counting after finalization.
	err = submissionRepo.IncreaseVote(ctx, submission.ID, true)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	reloaded, err := submissionRepo.GetByID(ctx, submission.ID)
	require.NoError(t, err)
	require.Equal(t, entity.SubmissionApproved, reloaded.Status)
	require.Equal(t, 0, reloaded.VotesFor)
}

func Test_submissionRepository_GetExpired(t *testing.T) {
	ctx := testutil.MockContext()
	submissionRepo := repository.NewSubmissionRepository()

	quest, err := testutil.SampleQuest(ctx, nil)
	require.NoError(t, err)

	expiredUser, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	freshUser, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	expired, err := testutil.SampleSubmission(ctx, &entity.Submission{
		QuestID:    quest.ID,
		UserID:     expiredUser.ID,
		DeadlineAt: time.Now().Add(-time.Minute),
	})
	require.NoError(t, err)

	_, err = testutil.SampleSubmission(ctx, &entity.Submission{
		QuestID: quest.ID,
		UserID:  freshUser.ID,
	})
	require.NoError(t, err)

	records, err := submissionRepo.GetExpired(ctx, time.Now())
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, expired.ID, records[0].ID)
}
