package repository

import (
	"context"
	"errors"
	"time"

	"github.com/questclash/backend/internal/entity"
	"github.com/questclash/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// ErrInsufficientBalance is returned when a conditional balance update
// would take the balance below zero.
var ErrInsufficientBalance = errors.New("insufficient balance")

type UserRepository interface {
	Create(ctx context.Context, data *entity.User) error
	UpdateByID(ctx context.Context, id string, data *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByName(ctx context.Context, name string) (*entity.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.User, error)
	GetByWalletAddress(ctx context.Context, address string) (*entity.User, error)
	GetListOrderByXP(ctx context.Context, offset, limit int) ([]entity.User, error)
	Count(ctx context.Context) (int64, error)
	CountByGreaterXP(ctx context.Context, xp int64) (int64, error)
	AddXP(ctx context.Context, id string, delta int64) error
	AddRewardPoints(ctx context.Context, id string, delta int64) error
	AddUsdcBalance(ctx context.Context, id string, amount float64) error
	UpdateStreak(ctx context.Context, id string, streak int, lastLoginAt time.Time) error
	Delete(ctx context.Context, id string) error
}

type userRepository struct{}

func NewUserRepository() *userRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, data *entity.User) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *userRepository) UpdateByID(ctx context.Context, id string, data *entity.User) error {
	updateMap := map[string]any{}
	if data.Name != "" {
		updateMap["name"] = data.Name
	}

	if data.AvatarURL != "" {
		updateMap["avatar_url"] = data.AvatarURL
	}

	if len(updateMap) == 0 {
		return nil
	}

	return xcontext.DB(ctx).Model(&entity.User{}).Where("id=?", id).Updates(updateMap).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) GetByName(ctx context.Context, name string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Where("name=?", name).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var records []entity.User
	if err := xcontext.DB(ctx).Where("id IN (?)", ids).Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *userRepository) GetByWalletAddress(ctx context.Context, address string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Where("wallet_address=?", address).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) GetListOrderByXP(ctx context.Context, offset, limit int) ([]entity.User, error) {
	var records []entity.User
	err := xcontext.DB(ctx).
		Order("xp DESC").
		Offset(offset).Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := xcontext.DB(ctx).Model(&entity.User{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *userRepository) CountByGreaterXP(ctx context.Context, xp int64) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.User{}).Where("xp > ?", xp).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// AddXP adds delta to the user experience in a single statement. The guard
// keeps the value from going negative under concurrent debits.
func (r *userRepository) AddXP(ctx context.Context, id string, delta int64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=? AND xp + ? >= 0", id, delta).
		Update("xp", gorm.Expr("xp + ?", delta))

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return ErrInsufficientBalance
	}

	return nil
}

func (r *userRepository) AddRewardPoints(ctx context.Context, id string, delta int64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=? AND reward_points + ? >= 0", id, delta).
		Update("reward_points", gorm.Expr("reward_points + ?", delta))

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return ErrInsufficientBalance
	}

	return nil
}

func (r *userRepository) AddUsdcBalance(ctx context.Context, id string, amount float64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=? AND usdc_balance + ? >= 0", id, amount).
		Update("usdc_balance", gorm.Expr("usdc_balance + ?", amount))

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return ErrInsufficientBalance
	}

	return nil
}

func (r *userRepository) UpdateStreak(ctx context.Context, id string, streak int, lastLoginAt time.Time) error {
	return xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=?", id).
		Updates(map[string]any{
			"streak":        streak,
			"last_login_at": lastLoginAt,
		}).Error
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.User{}, "id=?", id).Error
}
