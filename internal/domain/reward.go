package domain

import (
	"context"
	"errors"
	"time"

	"github.com/questclash/backend/internal/domain/ledger"
	"github.com/questclash/backend/internal/entity"
	"github.com/questclash/backend/internal/model"
	"github.com/questclash/backend/internal/repository"
	"github.com/questclash/backend/pkg/errorx"
	"github.com/questclash/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type RewardDomain interface {
	GetPending(context.Context, *model.GetPendingRewardsRequest) (*model.GetPendingRewardsResponse, error)
	Claim(context.Context, *model.ClaimRewardRequest) (*model.ClaimRewardResponse, error)
	GetHistory(context.Context, *model.GetRewardHistoryRequest) (*model.GetRewardHistoryResponse, error)
}

type rewardDomain struct {
	rewardRepo repository.RewardRepository
	ledger     *ledger.Ledger
}

func NewRewardDomain(
	rewardRepo repository.RewardRepository,
	ledger *ledger.Ledger,
) RewardDomain {
	return &rewardDomain{rewardRepo: rewardRepo, ledger: ledger}
}

func (d *rewardDomain) GetPending(
	ctx context.Context, req *model.GetPendingRewardsRequest,
) (*model.GetPendingRewardsResponse, error) {
	rewards, err := d.rewardRepo.GetPendingByUserID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get pending rewards: %v", err)
		return nil, errorx.Unknown
	}

	clientRewards := []model.Reward{}
	for i := range rewards {
		clientRewards = append(clientRewards, model.ConvertReward(&rewards[i]))
	}

	return &model.GetPendingRewardsResponse{Rewards: clientRewards}, nil
}

func (d *rewardDomain) Claim(
	ctx context.Context, req *model.ClaimRewardRequest,
) (*model.ClaimRewardResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	reward, err := d.rewardRepo.GetByID(ctx, req.RewardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found reward")
		}

		xcontext.Logger(ctx).Errorf("Cannot get reward: %v", err)
		return nil, errorx.Unknown
	}

	if reward.UserID != userID {
		return nil, errorx.New(errorx.PermissionDenied, "This reward belongs to another user")
	}

	now := time.Now()

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	// The conditional claim fails the second time, so a double claim never
	// pays out twice.
	if err := d.rewardRepo.Claim(ctx, reward.ID, userID, now); err != nil {
		if errors.Is(err, repository.ErrAlreadyClaimed) {
			return nil, errorx.New(errorx.AlreadyExists, "This reward is already claimed")
		}

		xcontext.Logger(ctx).Errorf("Cannot claim reward: %v", err)
		return nil, errorx.Unknown
	}

	switch reward.Type {
	case entity.RewardUsdc:
		if err := d.ledger.AddUsdc(ctx, userID, reward.Amount); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot credit usdc balance: %v", err)
			return nil, errorx.Unknown
		}
	case entity.RewardXP:
		err := d.ledger.AddXP(
			ctx, userID, int64(reward.Amount),
			entity.TxQuestReward, reward.QuestID, "Claimed reward")
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot credit xp: %v", err)
			return nil, errorx.Unknown
		}
	default:
		xcontext.Logger(ctx).Errorf("Unknown reward type %s", reward.Type)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithCommitDBTransaction(ctx)

	reward.ClaimedAt.Valid = true
	reward.ClaimedAt.Time = now
	return &model.ClaimRewardResponse{Reward: model.ConvertReward(reward)}, nil
}

func (d *rewardDomain) GetHistory(
	ctx context.Context, req *model.GetRewardHistoryRequest,
) (*model.GetRewardHistoryResponse, error) {
	if req.Limit == 0 {
		req.Limit = 50
	}

	if req.Limit < 0 || req.Limit > 100 {
		return nil, errorx.New(errorx.BadRequest, "Limit must be between 1 and 100")
	}

	rewards, err := d.rewardRepo.GetClaimedByUserID(
		ctx, xcontext.RequestUserID(ctx), req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get claimed rewards: %v", err)
		return nil, errorx.Unknown
	}

	clientRewards := []model.Reward{}
	for i := range rewards {
		clientRewards = append(clientRewards, model.ConvertReward(&rewards[i]))
	}

	return &model.GetRewardHistoryResponse{Rewards: clientRewards}, nil
}
