package domain

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/questclash/backend/internal/domain/ledger"
	"github.com/questclash/backend/internal/entity"
	"github.com/questclash/backend/internal/model"
	"github.com/questclash/backend/internal/repository"
	"github.com/questclash/backend/pkg/errorx"
	"github.com/questclash/backend/pkg/testutil"
	"github.com/questclash/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestRewardDomain(t *testing.T) *rewardDomain {
	userRepo := repository.NewUserRepository()
	transactionRepo := repository.NewTransactionRepository()

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return &rewardDomain{
		rewardRepo: repository.NewRewardRepository(),
		ledger:     ledger.New(userRepo, transactionRepo, node),
	}
}

func Test_rewardDomain_Claim(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newTestRewardDomain(t)

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
	require.NoError(t, domain.rewardRepo.Create(ctx, reward))

	ctx = xcontext.WithRequestUserID(ctx, user.ID)
	resp, err := domain.Claim(ctx, &model.ClaimRewardRequest{RewardID: reward.ID})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Reward.ClaimedAt)

	userRepo := repository.NewUserRepository()
	reloaded, err := userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, 2.5, reloaded.UsdcBalance)

	// The second claim pays out nothing.
	_, err = domain.Claim(ctx, &model.ClaimRewardRequest{RewardID: reward.ID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyExists, errx.Code)

	reloaded, err = userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, 2.5, reloaded.UsdcBalance)
}

func Test_rewardDomain_Claim_AnotherUser(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newTestRewardDomain(t)

	owner, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	thief, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	quest, err := testutil.SampleQuest(ctx, nil)
	require.NoError(t, err)

	reward := &entity.Reward{
		Base:    entity.Base{ID: uuid.NewString()},
		UserID:  owner.ID,
		QuestID: quest.ID,
		Type:    entity.RewardUsdc,
		Amount:  1,
	}
	require.NoError(t, domain.rewardRepo.Create(ctx, reward))

	_, err = domain.Claim(
		xcontext.WithRequestUserID(ctx, thief.ID),
		&model.ClaimRewardRequest{RewardID: reward.ID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)
}

func Test_rewardDomain_GetHistory(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newTestRewardDomain(t)

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	quest, err := testutil.SampleQuest(ctx, nil)
	require.NoError(t, err)

	reward := &entity.Reward{
		Base:    entity.Base{ID: uuid.NewString()},
		UserID:  user.ID,
		QuestID: quest.ID,
		Type:    entity.RewardUsdc,
		Amount:  3,
	}
	require.NoError(t, domain.rewardRepo.Create(ctx, reward))

	ctx = xcontext.WithRequestUserID(ctx, user.ID)
	_, err = domain.Claim(ctx, &model.ClaimRewardRequest{RewardID: reward.ID})
	require.NoError(t, err)

	history, err := domain.GetHistory(ctx, &model.GetRewardHistoryRequest{})
	require.NoError(t, err)
	require.Len(t, history.Rewards, 1)
	require.Equal(t, reward.ID, history.Rewards[0].ID)

	pending, err := domain.GetPending(ctx, &model.GetPendingRewardsRequest{})
	require.NoError(t, err)
	require.Empty(t, pending.Rewards)
}
