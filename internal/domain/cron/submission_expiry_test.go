package cron

import (
	"database/sql"
	"testing"
	"time"

	"github.com/questclash/backend/internal/entity"
	"github.com/questclash/backend/internal/repository"
	"github.com/questclash/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_SubmissionExpiryCronJob(t *testing.T) {
	ctx := testutil.MockContext()
	submissionRepo := repository.NewSubmissionRepository()
	participantRepo := repository.NewParticipantRepository()

	quest, err := testutil.SampleQuest(ctx, nil)
	require.NoError(t, err)

	expiredUser, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	freshUser, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	for _, userID := range []string{expiredUser.ID, freshUser.ID} {
		_, err = testutil.SampleParticipant(ctx, &entity.QuestParticipant{
			QuestID: quest.ID,
			UserID:  userID,
			Status:  entity.ParticipantSubmitted,
		})
		require.NoError(t, err)
	}

	expired, err := testutil.SampleSubmission(ctx, &entity.Submission{
		QuestID:    quest.ID,
		UserID:     expiredUser.ID,
		DeadlineAt: time.Now().Add(-time.Minute),
	})
	require.NoError(t, err)

	fresh, err := testutil.SampleSubmission(ctx, &entity.Submission{
		QuestID: quest.ID,
		UserID:  freshUser.ID,
	})
	require.NoError(t, err)

	NewSubmissionExpiryCronJob(submissionRepo, participantRepo).Do(ctx)

	// The expired submission is rejected and its participant failed.
	reloaded, err := submissionRepo.GetByID(ctx, expired.ID)
	require.NoError(t, err)
	require.Equal(t, entity.SubmissionRejected, reloaded.Status)

	participant, err := participantRepo.Get(ctx, quest.ID, expiredUser.ID)
	require.NoError(t, err)
	require.Equal(t, entity.ParticipantFailed, participant.Status)

	// The one still inside its voting window is untouched.
	reloaded, err = submissionRepo.GetByID(ctx, fresh.ID)
	require.NoError(t, err)
	require.Equal(t, entity.SubmissionPending, reloaded.Status)
}

func Test_QuestCompletionCronJob(t *testing.T) {
	ctx := testutil.MockContext()
	questRepo := repository.NewQuestRepository()

	expired, err := testutil.SampleQuest(ctx, &entity.Quest{
		EndedAt: sql.NullTime{Valid: true, Time: time.Now().Add(-time.Hour)},
	})
	require.NoError(t, err)

	open, err := testutil.SampleQuest(ctx, nil)
	require.NoError(t, err)

	NewQuestCompletionCronJob(questRepo).Do(ctx)

	reloaded, err := questRepo.GetByID(ctx, expired.ID)
	require.NoError(t, err)
	require.Equal(t, entity.QuestCompleted, reloaded.Status)

	reloaded, err = questRepo.GetByID(ctx, open.ID)
	require.NoError(t, err)
	require.Equal(t, entity.QuestActive, reloaded.Status)
}
