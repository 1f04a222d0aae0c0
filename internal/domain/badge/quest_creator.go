package badge

import (
	"context"

	"github.com/questclash/backend/internal/entity"
	"github.com/questclash/backend/internal/repository"
	"github.com/questclash/backend/pkg/errorx"
	"github.com/questclash/backend/pkg/xcontext"
)

const QuestCreatorBadgeName = "quest_creator"

// questCreatorBadgeScanner scans badge level based on the number of quests
// the user published.
type questCreatorBadgeScanner struct {
	badgeRepo repository.BadgeRepository
	questRepo repository.QuestRepository
}

func NewQuestCreatorBadgeScanner(
	badgeRepo repository.BadgeRepository,
	questRepo repository.QuestRepository,
) *questCreatorBadgeScanner {
	return &questCreatorBadgeScanner{
		badgeRepo: badgeRepo,
		questRepo: questRepo,
	}
}

func (*questCreatorBadgeScanner) Name() string {
	return QuestCreatorBadgeName
}

func (s *questCreatorBadgeScanner) Scan(ctx context.Context, userID string) ([]entity.Badge, error) {
	created, err := s.questRepo.CountByCreator(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count created quests: %v", err)
		return nil, errorx.Unknown
	}

	suitableBadges, err := s.badgeRepo.GetLessThanValue(ctx, s.Name(), created)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the suitable badge of %s: %v", s.Name(), err)
		return nil, errorx.Unknown
	}

	return suitableBadges, nil
}
