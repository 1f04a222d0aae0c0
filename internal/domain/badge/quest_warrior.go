package badge

import (
	"context"

	"github.com/questclash/backend/internal/entity"
	"github.com/questclash/backend/internal/repository"
	"github.com/questclash/backend/pkg/errorx"
	"github.com/questclash/backend/pkg/xcontext"
)

const QuestWarriorBadgeName = "quest_warrior"

// questWarriorBadgeScanner scans badge level based on the number of quests
// the user completed.
type questWarriorBadgeScanner struct {
	badgeRepo       repository.BadgeRepository
	participantRepo repository.ParticipantRepository
}

func NewQuestWarriorBadgeScanner(
	badgeRepo repository.BadgeRepository,
	participantRepo repository.ParticipantRepository,
) *questWarriorBadgeScanner {
	return &questWarriorBadgeScanner{
		badgeRepo:       badgeRepo,
		participantRepo: participantRepo,
	}
}

func (*questWarriorBadgeScanner) Name() string {
	return QuestWarriorBadgeName
}

func (s *questWarriorBadgeScanner) Scan(ctx context.Context, userID string) ([]entity.Badge, error) {
	completed, err := s.participantRepo.CountByUserID(ctx, userID, entity.ParticipantCompleted)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count completed quests: %v", err)
		return nil, errorx.Unknown
	}

	suitableBadges, err := s.badgeRepo.GetLessThanValue(ctx, s.Name(), completed)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the suitable badge of %s: %v", s.Name(), err)
		return nil, errorx.Unknown
	}

	return suitableBadges, nil
}
