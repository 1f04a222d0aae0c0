package repository

import (
	"context"

	"github.com/questclash/backend/internal/entity"
	"github.com/questclash/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ParticipantRepository interface {
	Create(ctx context.Context, data *entity.QuestParticipant) error
	Get(ctx context.Context, questID, userID string) (*entity.QuestParticipant, error)
	GetListByUserID(ctx context.Context, userID string) ([]entity.QuestParticipant, error)
	GetListByQuestID(ctx context.Context, questID string) ([]entity.QuestParticipant, error)
	UpdateStatus(ctx context.Context, questID, userID string, from, to entity.ParticipantStatusType) error
	MarkSubmitted(ctx context.Context, questID, userID string) error
	CountByUserID(ctx context.Context, userID string, status entity.ParticipantStatusType) (int64, error)
	DeleteByUserID(ctx context.Context, userID string) error
}

type participantRepository struct{}

func NewParticipantRepository() *participantRepository {
	return &participantRepository{}
}

func (r *participantRepository) Create(ctx context.Context, data *entity.QuestParticipant) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *participantRepository) Get(ctx context.Context, questID, userID string) (*entity.QuestParticipant, error) {
	var record entity.QuestParticipant
	err := xcontext.DB(ctx).
		Where("quest_id=? AND user_id=?", questID, userID).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *participantRepository) GetListByUserID(ctx context.Context, userID string) ([]entity.QuestParticipant, error) {
	var records []entity.QuestParticipant
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *participantRepository) GetListByQuestID(ctx context.Context, questID string) ([]entity.QuestParticipant, error) {
	var records []entity.QuestParticipant
	err := xcontext.DB(ctx).
		Where("quest_id=?", questID).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

// UpdateStatus only moves a participant along an allowed transition. A
// stale transition affects no row.
func (r *participantRepository) UpdateStatus(
	ctx context.Context, questID, userID string, from, to entity.ParticipantStatusType,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.QuestParticipant{}).
		Where("quest_id=? AND user_id=? AND status=?", questID, userID, from).
		Update("status", to)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *participantRepository) MarkSubmitted(ctx context.Context, questID, userID string) error {
	tx := xcontext.DB(ctx).
		Model(&entity.QuestParticipant{}).
		Where("quest_id=? AND user_id=? AND status=?", questID, userID, entity.ParticipantJoined).
		Updates(map[string]any{
			"status":             entity.ParticipantSubmitted,
			"evidence_submitted": true,
		})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *participantRepository) CountByUserID(
	ctx context.Context, userID string, status entity.ParticipantStatusType,
) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.QuestParticipant{}).
		Where("user_id=? AND status=?", userID, status).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *participantRepository) DeleteByUserID(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).Delete(&entity.QuestParticipant{}, "user_id=?", userID).Error
}
