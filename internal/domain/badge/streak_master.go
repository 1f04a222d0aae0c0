package badge

import (
	"context"

	"github.com/questclash/backend/internal/entity"
	"github.com/questclash/backend/internal/repository"
	"github.com/questclash/backend/pkg/errorx"
	"github.com/questclash/backend/pkg/xcontext"
)

const StreakMasterBadgeName = "streak_master"

// streakMasterBadgeScanner scans badge level based on the login streak.
type streakMasterBadgeScanner struct {
	badgeRepo repository.BadgeRepository
	userRepo  repository.UserRepository
}

func NewStreakMasterBadgeScanner(
	badgeRepo repository.BadgeRepository,
	userRepo repository.UserRepository,
) *streakMasterBadgeScanner {
	return &streakMasterBadgeScanner{
		badgeRepo: badgeRepo,
		userRepo:  userRepo,
	}
}

func (*streakMasterBadgeScanner) Name() string {
	return StreakMasterBadgeName
}

func (s *streakMasterBadgeScanner) Scan(ctx context.Context, userID string) ([]entity.Badge, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	suitableBadges, err := s.badgeRepo.GetLessThanValue(ctx, s.Name(), int64(user.Streak))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the suitable badge of %s: %v", s.Name(), err)
		return nil, errorx.Unknown
	}

	return suitableBadges, nil
}
