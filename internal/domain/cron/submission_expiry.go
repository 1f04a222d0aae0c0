package cron

import (
	"context"
	"time"

	"github.com/questclash/backend/internal/entity"
	"github.com/questclash/backend/internal/repository"
	"github.com/questclash/backend/pkg/xcontext"
)

// SubmissionExpiryCronJob rejects pending submissions whose voting
// window has closed without reaching any decision threshold.
type SubmissionExpiryCronJob struct {
	submissionRepo  repository.SubmissionRepository
	participantRepo repository.ParticipantRepository
}

func NewSubmissionExpiryCronJob(
	submissionRepo repository.SubmissionRepository,
	participantRepo repository.ParticipantRepository,
) *SubmissionExpiryCronJob {
	return &SubmissionExpiryCronJob{
		submissionRepo:  submissionRepo,
		participantRepo: participantRepo,
	}
}

func (job *SubmissionExpiryCronJob) Do(ctx context.Context) {
	submissions, err := job.submissionRepo.GetExpired(ctx, time.Now())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get expired submissions: %v", err)
		return
	}

	for _, s := range submissions {
		err := job.submissionRepo.UpdateStatusIfPending(ctx, s.ID, entity.SubmissionRejected)
		if err != nil {
			// Another finalizer got there first.
			continue
		}

		err = job.participantRepo.UpdateStatus(
			ctx, s.QuestID, s.UserID, entity.ParticipantSubmitted, entity.ParticipantFailed)
		if err != nil {
			xcontext.Logger(ctx).Warnf(
				"Cannot fail participant of submission %s: %v", s.ID, err)
		}
	}
}

func (job *SubmissionExpiryCronJob) RunNow() bool {
	return true
}

func (job *SubmissionExpiryCronJob) Next() time.Time {
	return time.Now().Add(time.Minute)
}
