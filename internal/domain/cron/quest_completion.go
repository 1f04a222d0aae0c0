package cron

import (
	"context"
	"time"

	"github.com/questclash/backend/internal/entity"
	"github.com/questclash/backend/internal/repository"
	"github.com/questclash/backend/pkg/xcontext"
)

// QuestCompletionCronJob moves active quests past their end time to the
// completed status so they stop accepting joins and submissions.
type QuestCompletionCronJob struct {
	questRepo repository.QuestRepository
}

func NewQuestCompletionCronJob(questRepo repository.QuestRepository) *QuestCompletionCronJob {
	return &QuestCompletionCronJob{questRepo: questRepo}
}

func (job *QuestCompletionCronJob) Do(ctx context.Context) {
	quests, err := job.questRepo.GetExpired(ctx, time.Now())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get expired quests: %v", err)
		return
	}

	for _, q := range quests {
		err := job.questRepo.UpdateStatus(ctx, q.ID, entity.QuestActive, entity.QuestCompleted)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot complete quest %s: %v", q.ID, err)
		}
	}
}

func (job *QuestCompletionCronJob) RunNow() bool {
	return true
}

func (job *QuestCompletionCronJob) Next() time.Time {
	return time.Now().Add(time.Minute)
}
