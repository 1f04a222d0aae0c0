package repository

import (
	"context"
	"time"

	"github.com/questclash/backend/internal/entity"
	"github.com/questclash/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type SubmissionRepository interface {
	Create(ctx context.Context, data *entity.Submission) error
	GetByID(ctx context.Context, id string) (*entity.Submission, error)
	Get(ctx context.Context, questID, userID string) (*entity.Submission, error)
	GetPendingList(ctx context.Context, excludeUserID string, offset, limit int) ([]entity.Submission, error)
	IncreaseVote(ctx context.Context, id string, approve bool) error
	UpdateStatusIfPending(ctx context.Context, id string, to entity.SubmissionStatusType) error
	GetExpired(ctx context.Context, now time.Time) ([]entity.Submission, error)
}

type submissionRepository struct{}

func NewSubmissionRepository() *submissionRepository {
	return &submissionRepository{}
}

func (r *submissionRepository) Create(ctx context.Context, data *entity.Submission) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *submissionRepository) GetByID(ctx context.Context, id string) (*entity.Submission, error) {
	var record entity.Submission
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *submissionRepository) Get(ctx context.Context, questID, userID string) (*entity.Submission, error) {
	var record entity.Submission
	err := xcontext.DB(ctx).
		Where("quest_id=? AND user_id=?", questID, userID).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// GetPendingList returns the voting feed. A voter never sees their own
// submissions.
func (r *submissionRepository) GetPendingList(
	ctx context.Context, excludeUserID string, offset, limit int,
) ([]entity.Submission, error) {
	tx := xcontext.DB(ctx).
		Where("status=?", entity.SubmissionPending).
		Order("deadline_at ASC").
		Offset(offset).Limit(limit)

	if excludeUserID != "" {
		tx = tx.Where("user_id != ?", excludeUserID)
	}

	var records []entity.Submission
	if err := tx.Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

// IncreaseVote bumps one of the vote counters while the submission is
// still pending. Votes arriving after finalization affect no row.
func (r *submissionRepository) IncreaseVote(ctx context.Context, id string, approve bool) error {
	column := "votes_against"
	if approve {
		column = "votes_for"
	}

	tx := xcontext.DB(ctx).
		Model(&entity.Submission{}).
		Where("id=? AND status=?", id, entity.SubmissionPending).
		Update(column, gorm.Expr(column+"+1"))

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// UpdateStatusIfPending finalizes a submission. With two racing
// finalizers, only the first one affects a row.
func (r *submissionRepository) UpdateStatusIfPending(
	ctx context.Context, id string, to entity.SubmissionStatusType,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Submission{}).
		Where("id=? AND status=?", id, entity.SubmissionPending).
		Update("status", to)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *submissionRepository) GetExpired(ctx context.Context, now time.Time) ([]entity.Submission, error) {
	var records []entity.Submission
	err := xcontext.DB(ctx).
		Where("status=? AND deadline_at <= ?", entity.SubmissionPending, now).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}
