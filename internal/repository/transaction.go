package repository

import (
	"context"
	"time"

	"github.com/questclash/backend/internal/entity"
	"github.com/questclash/backend/pkg/xcontext"
)

type TransactionRepository interface {
	Create(ctx context.Context, data *entity.XPTransaction) error
	GetListByUserID(ctx context.Context, userID string, offset, limit int) ([]entity.XPTransaction, error)
	SumEarnedSince(ctx context.Context, start, end time.Time) ([]entity.UserStatistic, error)
	SumEarnedByUserSince(ctx context.Context, userID string, since time.Time) (int64, error)
	DeleteByUserID(ctx context.Context, userID string) error
}

type transactionRepository struct{}

func NewTransactionRepository() *transactionRepository {
	return &transactionRepository{}
}

func (r *transactionRepository) Create(ctx context.Context, data *entity.XPTransaction) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *transactionRepository) GetListByUserID(
	ctx context.Context, userID string, offset, limit int,
) ([]entity.XPTransaction, error) {
	var records []entity.XPTransaction
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

// SumEarnedSince aggregates completion rewards per user from the ledger.
// The leaderboard uses it to rebuild a missing period.
func (r *transactionRepository) SumEarnedSince(ctx context.Context, start, end time.Time) ([]entity.UserStatistic, error) {
	var records []entity.UserStatistic
	err := xcontext.DB(ctx).
		Model(&entity.XPTransaction{}).
		Select("user_id, SUM(amount) as xp").
		Where("type=? AND created_at >= ? AND created_at < ?", entity.TxQuestReward, start, end).
		Group("user_id").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *transactionRepository) SumEarnedByUserSince(
	ctx context.Context, userID string, since time.Time,
) (int64, error) {
	var sum any
	err := xcontext.DB(ctx).
		Model(&entity.XPTransaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id=? AND type=? AND created_at >= ?", userID, entity.TxQuestReward, since).
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}

	switch v := sum.(type) {
	case int64:
		return v, nil
	case float64:
		return int64(v), nil
	default:
		return 0, nil
	}
}

func (r *transactionRepository) DeleteByUserID(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).Delete(&entity.XPTransaction{}, "user_id=?", userID).Error
}
