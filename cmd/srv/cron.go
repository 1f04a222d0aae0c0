package main

import (
	"github.com/questclash/backend/internal/domain/cron"
	"github.com/questclash/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(*cli.Context) error {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadRepos()

	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Register(cron.NewSubmissionExpiryCronJob(s.submissionRepo, s.participantRepo))
	cronJobManager.Register(cron.NewQuestCompletionCronJob(s.questRepo))
	cronJobManager.Start(s.ctx)

	return nil
}
