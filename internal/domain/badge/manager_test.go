package badge

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/questclash/backend/internal/entity"
	"github.com/questclash/backend/internal/repository"
	"github.com/questclash/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_Manager_ScanAndGive(t *testing.T) {
	ctx := testutil.MockContext()
	badgeRepo := repository.NewBadgeRepository()
	badgeDetailRepo := repository.NewBadgeDetailRepository()

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	for level, value := range map[int]int64{1: 1, 2: 5, 3: 25} {
		err := badgeRepo.Create(ctx, &entity.Badge{
			Base:  entity.Base{ID: uuid.NewString()},
			Name:  QuestWarriorBadgeName,
			Level: level,
			Value: value,
		})
		require.NoError(t, err)
	}

	completed := int64(0)
	scanner := &testutil.MockBadgeScanner{
		NameValue: QuestWarriorBadgeName,
		ScanFunc: func(ctx context.Context, userID string) ([]entity.Badge, error) {
			return badgeRepo.GetLessThanValue(ctx, QuestWarriorBadgeName, completed)
		},
	}

	manager := NewManager(badgeRepo, badgeDetailRepo, scanner)

	// No completed quest yet, nothing to give.
	require.NoError(t, manager.WithBadges(QuestWarriorBadgeName).ScanAndGive(ctx, user.ID))

	details, err := badgeDetailRepo.GetAll(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, details)

	// Five completed quests reach level 2, both levels are granted at once.
	completed = 5
	require.NoError(t, manager.WithBadges(QuestWarriorBadgeName).ScanAndGive(ctx, user.ID))

	details, err = badgeDetailRepo.GetAll(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, details, 2)

	// Scanning again gives nothing new below the latest level.
	require.NoError(t, manager.WithBadges(QuestWarriorBadgeName).ScanAndGive(ctx, user.ID))

	details, err = badgeDetailRepo.GetAll(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, details, 2)
}
