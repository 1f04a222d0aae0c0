package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/questclash/backend/internal/domain/badge"
	"github.com/questclash/backend/internal/domain/ledger"
	"github.com/questclash/backend/internal/domain/statistic"
	"github.com/questclash/backend/internal/entity"
	"github.com/questclash/backend/internal/model"
	"github.com/questclash/backend/internal/repository"
	"github.com/questclash/backend/pkg/errorx"
	"github.com/questclash/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type VoteDomain interface {
	GetPendingSubmissions(context.Context, *model.GetPendingSubmissionsRequest) (*model.GetPendingSubmissionsResponse, error)
	Vote(context.Context, *model.VoteRequest) (*model.VoteResponse, error)
}

type voteDomain struct {
	submissionRepo  repository.SubmissionRepository
	voteRepo        repository.VoteRepository
	questRepo       repository.QuestRepository
	participantRepo repository.ParticipantRepository
	rewardRepo      repository.RewardRepository
	ledger          *ledger.Ledger
	badgeManager    *badge.Manager
	leaderboard     statistic.Leaderboard
}

func NewVoteDomain(
	submissionRepo repository.SubmissionRepository,
	voteRepo repository.VoteRepository,
	questRepo repository.QuestRepository,
	participantRepo repository.ParticipantRepository,
	rewardRepo repository.RewardRepository,
	ledger *ledger.Ledger,
	badgeManager *badge.Manager,
	leaderboard statistic.Leaderboard,
) VoteDomain {
	return &voteDomain{
		submissionRepo:  submissionRepo,
		voteRepo:        voteRepo,
		questRepo:       questRepo,
		participantRepo: participantRepo,
		rewardRepo:      rewardRepo,
		ledger:          ledger,
		badgeManager:    badgeManager,
		leaderboard:     leaderboard,
	}
}

func (d *voteDomain) GetPendingSubmissions(
	ctx context.Context, req *model.GetPendingSubmissionsRequest,
) (*model.GetPendingSubmissionsResponse, error) {
	if req.Limit == 0 {
		req.Limit = 50
	}

	if req.Limit < 0 || req.Limit > 100 {
		return nil, errorx.New(errorx.BadRequest, "Limit must be between 1 and 100")
	}

	submissions, err := d.submissionRepo.GetPendingList(
		ctx, xcontext.RequestUserID(ctx), req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get pending submissions: %v", err)
		return nil, errorx.Unknown
	}

	now := time.Now()
	clientSubmissions := []model.Submission{}
	for i := range submissions {
		clientSubmissions = append(clientSubmissions, model.ConvertSubmission(&submissions[i], now))
	}

	return &model.GetPendingSubmissionsResponse{Submissions: clientSubmissions}, nil
}

func (d *voteDomain) Vote(
	ctx context.Context, req *model.VoteRequest,
) (*model.VoteResponse, error) {
	submission, err := d.submissionRepo.GetByID(ctx, req.SubmissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found submission")
		}

		xcontext.Logger(ctx).Errorf("Cannot get submission: %v", err)
		return nil, errorx.Unknown
	}

	voterID := xcontext.RequestUserID(ctx)
	if submission.UserID == voterID {
		return nil, errorx.New(errorx.PermissionDenied, "Not allow voting on your own submission")
	}

	if submission.Status != entity.SubmissionPending {
		return nil, errorx.New(errorx.SubmissionClosed, "This submission is already finalized")
	}

	if time.Now().After(submission.DeadlineAt) {
		return nil, errorx.New(errorx.SubmissionClosed, "The voting window has closed")
	}

	// The vote row and the counter move together. A racing finalizer
	// closing the submission between the pending check and the increment
	// rolls the vote back.
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	err = d.voteRepo.Create(ctx, &entity.Vote{
		SubmissionID: submission.ID,
		VoterID:      voterID,
		Approve:      req.Approve,
	})
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot create vote: %v", err)
		return nil, errorx.New(errorx.AlreadyExists, "You have already voted on this submission")
	}

	if err := d.submissionRepo.IncreaseVote(ctx, submission.ID, req.Approve); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.SubmissionClosed, "This submission is already finalized")
		}

		xcontext.Logger(ctx).Errorf("Cannot increase vote counter: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithCommitDBTransaction(ctx)

	submission, err = d.submissionRepo.GetByID(ctx, submission.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot reload submission: %v", err)
		return nil, errorx.Unknown
	}

	// Approval is checked before rejection when both thresholds are met.
	questCfg := xcontext.Configs(ctx).Quest
	if submission.Status == entity.SubmissionPending {
		switch {
		case submission.VotesFor >= questCfg.ApproveThreshold:
			if err := d.approve(ctx, submission); err != nil {
				return nil, err
			}

			submission.Status = entity.SubmissionApproved
		case submission.VotesAgainst >= questCfg.RejectThreshold:
			if err := d.reject(ctx, submission); err != nil {
				return nil, err
			}

			submission.Status = entity.SubmissionRejected
		}
	}

	err = d.badgeManager.
		WithBadges(badge.CommunityHelperBadgeName).
		ScanAndGive(ctx, voterID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot scan helper badge: %v", err)
	}

	return &model.VoteResponse{
		Status:       string(submission.Status),
		VotesFor:     submission.VotesFor,
		VotesAgainst: submission.VotesAgainst,
	}, nil
}

// approve finalizes a submission and pays out. The conditional status
// update makes sure racing finalizers pay at most once.
func (d *voteDomain) approve(ctx context.Context, submission *entity.Submission) error {
	quest, err := d.questRepo.GetByID(ctx, submission.QuestID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get quest of submission: %v", err)
		return errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	err = d.submissionRepo.UpdateStatusIfPending(ctx, submission.ID, entity.SubmissionApproved)
	if err != nil {
		// Another voter finalized first, nothing left to do.
		return nil
	}

	err = d.participantRepo.UpdateStatus(
		ctx, submission.QuestID, submission.UserID,
		entity.ParticipantSubmitted, entity.ParticipantCompleted)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot complete participant: %v", err)
		return errorx.Unknown
	}

	err = d.ledger.AddXP(
		ctx, submission.UserID, quest.XPReward,
		entity.TxQuestReward, quest.ID, "Completed "+quest.Title)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot credit xp reward: %v", err)
		return errorx.Unknown
	}

	if quest.UsdcReward.Valid && quest.UsdcReward.Float64 > 0 {
		err = d.rewardRepo.Create(ctx, &entity.Reward{
			Base:    entity.Base{ID: uuid.NewString()},
			UserID:  submission.UserID,
			QuestID: quest.ID,
			Type:    entity.RewardUsdc,
			Amount:  quest.UsdcReward.Float64,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create usdc reward: %v", err)
			return errorx.Unknown
		}
	}

	ctx = xcontext.WithCommitDBTransaction(ctx)

	err = d.leaderboard.ChangeLeaderboard(ctx, quest.XPReward, time.Now(), submission.UserID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot update leaderboard: %v", err)
	}

	err = d.badgeManager.
		WithBadges(badge.QuestWarriorBadgeName).
		ScanAndGive(ctx, submission.UserID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot scan warrior badge: %v", err)
	}

	return nil
}

func (d *voteDomain) reject(ctx context.Context, submission *entity.Submission) error {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	err := d.submissionRepo.UpdateStatusIfPending(ctx, submission.ID, entity.SubmissionRejected)
	if err != nil {
		return nil
	}

	err = d.participantRepo.UpdateStatus(
		ctx, submission.QuestID, submission.UserID,
		entity.ParticipantSubmitted, entity.ParticipantFailed)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot fail participant: %v", err)
		return errorx.Unknown
	}

	ctx = xcontext.WithCommitDBTransaction(ctx)
	return nil
}
