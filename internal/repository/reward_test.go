package repository_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/questclash/backend/internal/entity"
	"github.com/questclash/backend/internal/repository"
	"github.com/questclash/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_rewardRepository_Claim_AtMostOnce(t *testing.T) {
	ctx := testutil.MockContext()
	rewardRepo := repository.NewRewardRepository()

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	quest, err := testutil.SampleQuest(ctx, nil)
	require.NoError(t, err)

	reward := &entity.Reward{
		Base:    entity.Base{ID: uuid.NewString()},
		UserID:  user.ID,
		QuestID: quest.ID,
		Type:    entity.RewardUsdc,
		Amount:  2.5,
	}
	require.NoError(t, rewardRepo.Create(ctx, reward))

	pending, err := rewardRepo.GetPendingByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	require.NoError(t, rewardRepo.Claim(ctx, reward.ID, user.ID, time.Now()))

	// The second claim finds claimed_at set and affects no row.
	err = rewardRepo.Claim(ctx, reward.ID, user.ID, time.Now())
	require.ErrorIs(t, err, repository.ErrAlreadyClaimed)

	pending, err = rewardRepo.GetPendingByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, pending)

	claimed, err := rewardRepo.GetClaimedByUserID(ctx, user.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, claimed, 1)
}

func Test_rewardRepository_Claim_OnlyOwner(t *testing.T) {
	ctx := testutil.MockContext()
	rewardRepo := repository.NewRewardRepository()

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	quest, err := testutil.SampleQuest(ctx, nil)
	require.NoError(t, err)

	reward := &entity.Reward{
		Base:    entity.Base{ID: uuid.NewString()},
		UserID:  user.ID,
		QuestID: quest.ID,
		Type:    entity.RewardUsdc,
		Amount:  1,
	}
	require.NoError(t, rewardRepo.Create(ctx, reward))

	err = rewardRepo.Claim(ctx, reward.ID, "someone-else", time.Now())
	require.ErrorIs(t, err, repository.ErrAlreadyClaimed)
}
