package repository

import (
	"context"

	"github.com/questclash/backend/internal/entity"
	"github.com/questclash/backend/pkg/xcontext"
)

type VoteRepository interface {
	Create(ctx context.Context, data *entity.Vote) error
	Get(ctx context.Context, submissionID, voterID string) (*entity.Vote, error)
	CountByVoterID(ctx context.Context, voterID string) (int64, error)
}

type voteRepository struct{}

func NewVoteRepository() *voteRepository {
	return &voteRepository{}
}

func (r *voteRepository) Create(ctx context.Context, data *entity.Vote) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *voteRepository) Get(ctx context.Context, submissionID, voterID string) (*entity.Vote, error) {
	var record entity.Vote
	err := xcontext.DB(ctx).
		Where("submission_id=? AND voter_id=?", submissionID, voterID).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *voteRepository) CountByVoterID(ctx context.Context, voterID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Vote{}).
		Where("voter_id=?", voterID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
