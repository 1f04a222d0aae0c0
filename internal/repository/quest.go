package repository

import (
	"context"
	"errors"
	"time"

	"github.com/questclash/backend/internal/entity"
	"github.com/questclash/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// ErrQuestFull is returned when the conditional participant increment
// finds the quest already at capacity.
var ErrQuestFull = errors.New("quest is full")

type SearchQuestFilter struct {
	IDs        []string
	Category   entity.QuestCategoryType
	Difficulty entity.QuestDifficultyType
	Tier       entity.UserTierType
	Statuses   []entity.QuestStatusType
	Offset     int
	Limit      int
}

type QuestRepository interface {
	Create(ctx context.Context, data *entity.Quest) error
	GetByID(ctx context.Context, id string) (*entity.Quest, error)
	GetList(ctx context.Context, filter SearchQuestFilter) ([]entity.Quest, error)
	GetListByCreator(ctx context.Context, creatorID string) ([]entity.Quest, error)
	Update(ctx context.Context, id string, data *entity.Quest) error
	UpdateStatus(ctx context.Context, id string, from, to entity.QuestStatusType) error
	IncreaseParticipants(ctx context.Context, id string) error
	DecreaseParticipants(ctx context.Context, id string) error
	DeleteByCreator(ctx context.Context, id, creatorID string) error
	GetExpired(ctx context.Context, now time.Time) ([]entity.Quest, error)
	CountByCreator(ctx context.Context, creatorID string) (int64, error)
}

type questRepository struct{}

func NewQuestRepository() *questRepository {
	return &questRepository{}
}

func (r *questRepository) Create(ctx context.Context, data *entity.Quest) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *questRepository) GetByID(ctx context.Context, id string) (*entity.Quest, error) {
	var record entity.Quest
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *questRepository) GetList(ctx context.Context, filter SearchQuestFilter) ([]entity.Quest, error) {
	tx := xcontext.DB(ctx).Model(&entity.Quest{})

	if filter.IDs != nil {
		tx = tx.Where("id IN (?)", filter.IDs)
	}

	if filter.Category != "" {
		tx = tx.Where("category=?", filter.Category)
	}

	if filter.Difficulty != "" {
		tx = tx.Where("difficulty=?", filter.Difficulty)
	}

	if filter.Tier != "" {
		tx = tx.Where("tier=?", filter.Tier)
	}

	if len(filter.Statuses) > 0 {
		tx = tx.Where("status IN (?)", filter.Statuses)
	}

	if filter.Limit > 0 {
		tx = tx.Offset(filter.Offset).Limit(filter.Limit)
	}

	var records []entity.Quest
	if err := tx.Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *questRepository) GetListByCreator(ctx context.Context, creatorID string) ([]entity.Quest, error) {
	var records []entity.Quest
	err := xcontext.DB(ctx).
		Where("created_by=?", creatorID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *questRepository) Update(ctx context.Context, id string, data *entity.Quest) error {
	updateMap := map[string]any{}
	if data.Title != "" {
		updateMap["title"] = data.Title
	}

	if data.Description != "" {
		updateMap["description"] = data.Description
	}

	if data.Requirements != nil {
		updateMap["requirements"] = data.Requirements
	}

	if data.ImageURL != "" {
		updateMap["image_url"] = data.ImageURL
	}

	if data.EndedAt.Valid {
		updateMap["ended_at"] = data.EndedAt
	}

	if len(updateMap) == 0 {
		return nil
	}

	return xcontext.DB(ctx).Model(&entity.Quest{}).Where("id=?", id).Updates(updateMap).Error
}

func (r *questRepository) UpdateStatus(ctx context.Context, id string, from, to entity.QuestStatusType) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Quest{}).
		Where("id=? AND status=?", id, from).
		Update("status", to)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// IncreaseParticipants bumps the participant counter only while the quest
// is active and below capacity, so two concurrent joins cannot both take
// the last slot.
func (r *questRepository) IncreaseParticipants(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Quest{}).
		Where("id=? AND status=?", id, entity.QuestActive).
		Where("max_participants IS NULL OR participants < max_participants").
		Update("participants", gorm.Expr("participants+1"))

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return ErrQuestFull
	}

	return nil
}

func (r *questRepository) DecreaseParticipants(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Quest{}).
		Where("id=? AND participants > 0", id).
		Update("participants", gorm.Expr("participants-1"))

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// DeleteByCreator removes a quest, but only for its creator and only while
// nobody has joined yet.
func (r *questRepository) DeleteByCreator(ctx context.Context, id, creatorID string) error {
	tx := xcontext.DB(ctx).
		Where("id=? AND created_by=? AND participants=0", id, creatorID).
		Delete(&entity.Quest{})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *questRepository) GetExpired(ctx context.Context, now time.Time) ([]entity.Quest, error) {
	var records []entity.Quest
	err := xcontext.DB(ctx).
		Where("status=? AND ended_at IS NOT NULL AND ended_at <= ?", entity.QuestActive, now).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *questRepository) CountByCreator(ctx context.Context, creatorID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Quest{}).
		Where("created_by=?", creatorID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
