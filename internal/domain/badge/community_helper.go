package badge

import (
	"context"

	"github.com/questclash/backend/internal/entity"
	"github.com/questclash/backend/internal/repository"
	"github.com/questclash/backend/pkg/errorx"
	"github.com/questclash/backend/pkg/xcontext"
)

const CommunityHelperBadgeName = "community_helper"

// communityHelperBadgeScanner scans badge level based on the number of
// votes the user cast on peer submissions.
type communityHelperBadgeScanner struct {
	badgeRepo repository.BadgeRepository
	voteRepo  repository.VoteRepository
}

func NewCommunityHelperBadgeScanner(
	badgeRepo repository.BadgeRepository,
	voteRepo repository.VoteRepository,
) *communityHelperBadgeScanner {
	return &communityHelperBadgeScanner{
		badgeRepo: badgeRepo,
		voteRepo:  voteRepo,
	}
}

func (*communityHelperBadgeScanner) Name() string {
	return CommunityHelperBadgeName
}

func (s *communityHelperBadgeScanner) Scan(ctx context.Context, userID string) ([]entity.Badge, error) {
	votes, err := s.voteRepo.CountByVoterID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count votes: %v", err)
		return nil, errorx.Unknown
	}

	suitableBadges, err := s.badgeRepo.GetLessThanValue(ctx, s.Name(), votes)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the suitable badge of %s: %v", s.Name(), err)
		return nil, errorx.Unknown
	}

	return suitableBadges, nil
}
