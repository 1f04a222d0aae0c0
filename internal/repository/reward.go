package repository

import (
	"context"
	"errors"
	"time"

	"github.com/questclash/backend/internal/entity"
	"github.com/questclash/backend/pkg/xcontext"
)

// ErrAlreadyClaimed is returned when a claim finds the reward paid out.
var ErrAlreadyClaimed = errors.New("reward already claimed")

type RewardRepository interface {
	Create(ctx context.Context, data *entity.Reward) error
	GetByID(ctx context.Context, id string) (*entity.Reward, error)
	GetPendingByUserID(ctx context.Context, userID string) ([]entity.Reward, error)
	GetClaimedByUserID(ctx context.Context, userID string, offset, limit int) ([]entity.Reward, error)
	Claim(ctx context.Context, id, userID string, now time.Time) error
}

type rewardRepository struct{}

func NewRewardRepository() *rewardRepository {
	return &rewardRepository{}
}

func (r *rewardRepository) Create(ctx context.Context, data *entity.Reward) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *rewardRepository) GetByID(ctx context.Context, id string) (*entity.Reward, error) {
	var record entity.Reward
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *rewardRepository) GetPendingByUserID(ctx context.Context, userID string) ([]entity.Reward, error) {
	var records []entity.Reward
	err := xcontext.DB(ctx).
		Where("user_id=? AND claimed_at IS NULL", userID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *rewardRepository) GetClaimedByUserID(
	ctx context.Context, userID string, offset, limit int,
) ([]entity.Reward, error) {
	var records []entity.Reward
	err := xcontext.DB(ctx).
		Where("user_id=? AND claimed_at IS NOT NULL", userID).
		Order("claimed_at DESC").
		Offset(offset).Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

// Claim marks the reward paid. The claimed_at guard makes a double claim
// affect no row, so the payout happens at most once.
func (r *rewardRepository) Claim(ctx context.Context, id, userID string, now time.Time) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Reward{}).
		Where("id=? AND user_id=? AND claimed_at IS NULL", id, userID).
		Update("claimed_at", now)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return ErrAlreadyClaimed
	}

	return nil
}
