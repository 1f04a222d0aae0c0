package repository

import (
	"context"

	"github.com/questclash/backend/internal/entity"
	"github.com/questclash/backend/pkg/xcontext"
)

type BadgeDetailRepository interface {
	Create(ctx context.Context, badgeDetail *entity.BadgeDetail) error
	GetLatest(ctx context.Context, userID, badgeName string) (*entity.BadgeDetail, error)
	GetAll(ctx context.Context, userID string) ([]entity.BadgeDetail, error)
	UpdateNotification(ctx context.Context, userID string) error
}

type badgeDetailRepository struct{}

func NewBadgeDetailRepository() *badgeDetailRepository {
	return &badgeDetailRepository{}
}

func (r *badgeDetailRepository) Create(ctx context.Context, badgeDetail *entity.BadgeDetail) error {
	return xcontext.DB(ctx).Create(badgeDetail).Error
}

func (r *badgeDetailRepository) GetLatest(ctx context.Context, userID, badgeName string) (*entity.BadgeDetail, error) {
	result := &entity.BadgeDetail{}
	err := xcontext.DB(ctx).Model(&entity.BadgeDetail{}).
		Joins("join badges on badges.id=badge_details.badge_id").
		Where("badge_details.user_id=? AND badges.name=?", userID, badgeName).
		Order("badges.level DESC").
		Take(result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *badgeDetailRepository) GetAll(ctx context.Context, userID string) ([]entity.BadgeDetail, error) {
	result := []entity.BadgeDetail{}
	if err := xcontext.DB(ctx).Where("user_id=?", userID).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *badgeDetailRepository) UpdateNotification(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).
		Model(&entity.BadgeDetail{}).
		Where("user_id=?", userID).
		Update("was_notified", true).Error
}
