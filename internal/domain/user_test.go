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

func newTestUserDomain(t *testing.T) *userDomain {
	userRepo := repository.NewUserRepository()
	transactionRepo := repository.NewTransactionRepository()

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return &userDomain{
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		badgeRepo:       repository.NewBadgeRepository(),
		badgeDetailRepo: repository.NewBadgeDetailRepository(),
		ledger:          ledger.New(userRepo, transactionRepo, node),
		storage:         &testutil.MockStorage{},
	}
}

func Test_userDomain_GetMe(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newTestUserDomain(t)

	user, err := testutil.SampleUser(ctx, &entity.User{XP: 2500, RewardPoints: 100})
	require.NoError(t, err)

	resp, err := domain.GetMe(xcontext.WithRequestUserID(ctx, user.ID), &model.GetMeRequest{})
	require.NoError(t, err)
	require.Equal(t, user.ID, resp.ID)
	require.Equal(t, 3, resp.Level)
	require.Equal(t, int64(500), resp.XPToNextLevel)
	require.Equal(t, string(entity.TierBronze), resp.Tier)
	require.Equal(t, int64(1), resp.Rank)
}

func Test_userDomain_UpdateUser_TakenName(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newTestUserDomain(t)

	_, err := testutil.SampleUser(ctx, &entity.User{Name: "alice"})
	require.NoError(t, err)

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	ctx = xcontext.WithRequestUserID(ctx, user.ID)
	_, err = domain.UpdateUser(ctx, &model.UpdateUserRequest{Name: "alice"})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyExists, errx.Code)

	_, err = domain.UpdateUser(ctx, &model.UpdateUserRequest{Name: "bob"})
	require.NoError(t, err)

	reloaded, err := domain.userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "bob", reloaded.Name)
}

func Test_userDomain_GetMyBadges_NotifiesOnce(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newTestUserDomain(t)

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	b := &entity.Badge{
		Base:  entity.Base{ID: uuid.NewString()},
		Name:  "quest_warrior",
		Level: 1,
		Value: 1,
	}
	require.NoError(t, domain.badgeRepo.Create(ctx, b))
	require.NoError(t, domain.badgeDetailRepo.Create(ctx, &entity.BadgeDetail{
		UserID:  user.ID,
		BadgeID: b.ID,
	}))

	ctx = xcontext.WithRequestUserID(ctx, user.ID)
	resp, err := domain.GetMyBadges(ctx, &model.GetMyBadgesRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Badges, 1)
	require.Equal(t, b.ID, resp.Badges[0].ID)

	details, err := domain.badgeDetailRepo.GetAll(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, details, 1)
	require.True(t, details[0].WasNotified)
}

func Test_userDomain_GetTransactions(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newTestUserDomain(t)

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	err = domain.ledger.AddRewardPoints(
		ctx, user.ID, 500, entity.TxSignupBonus, "", "Welcome bonus")
	require.NoError(t, err)

	ctx = xcontext.WithRequestUserID(ctx, user.ID)
	resp, err := domain.GetTransactions(ctx, &model.GetTransactionsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Transactions, 1)
	require.Equal(t, string(entity.TxSignupBonus), resp.Transactions[0].Type)
	require.Equal(t, int64(500), resp.Transactions[0].Amount)
}
