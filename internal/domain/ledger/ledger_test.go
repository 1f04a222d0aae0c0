package ledger

import (
	"database/sql"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/questclash/backend/internal/entity"
	"github.com/questclash/backend/internal/repository"
	"github.com/questclash/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestLedger(t *testing.T) (*Ledger, repository.UserRepository) {
	userRepo := repository.NewUserRepository()
	transactionRepo := repository.NewTransactionRepository()

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(userRepo, transactionRepo, node), userRepo
}

func Test_Ledger_AddXP_RecordsTransaction(t *testing.T) {
	ctx := testutil.MockContext()
	l, userRepo := newTestLedger(t)

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	quest, err := testutil.SampleQuest(ctx, nil)
	require.NoError(t, err)

	err = l.AddXP(ctx, user.ID, 100, entity.TxQuestReward, quest.ID, "Completed "+quest.Title)
	require.NoError(t, err)

	reloaded, err := userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, int64(100), reloaded.XP)

	transactionRepo := repository.NewTransactionRepository()
	txs, err := transactionRepo.GetListByUserID(ctx, user.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	require.Equal(t, entity.TxQuestReward, txs[0].Type)
	require.Equal(t, int64(100), txs[0].Amount)
	require.Equal(t, quest.ID, txs[0].QuestID.String)
}

func Test_Ledger_AddRewardPoints_FailedDebitRecordsNothing(t *testing.T) {
	ctx := testutil.MockContext()
	l, _ := newTestLedger(t)

	user, err := testutil.SampleUser(ctx, &entity.User{RewardPoints: 10})
	require.NoError(t, err)

	err = l.AddRewardPoints(ctx, user.ID, -50, entity.TxQuestJoinFee, "", "Joined quest")
	require.ErrorIs(t, err, repository.ErrInsufficientBalance)

	transactionRepo := repository.NewTransactionRepository()
	txs, err := transactionRepo.GetListByUserID(ctx, user.ID, 0, 10)
	require.NoError(t, err)
	require.Empty(t, txs)
}

func Test_Ledger_TouchLogin_Streak(t *testing.T) {
	ctx := testutil.MockContext()
	l, userRepo := newTestLedger(t)

	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	// The first login starts the streak at one.
	require.NoError(t, l.TouchLogin(ctx, &user))

	reloaded, err := userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, 1, reloaded.Streak)

	// A second login on the same day changes nothing.
	require.NoError(t, l.TouchLogin(ctx, reloaded))

	reloaded, err = userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, 1, reloaded.Streak)

	// A login on the next calendar day extends the streak.
	reloaded.Streak = 5
	reloaded.LastLoginAt = sql.NullTime{Valid: true, Time: time.Now().AddDate(0, 0, -1)}
	require.NoError(t, l.TouchLogin(ctx, reloaded))

	reloaded2, err := userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, 6, reloaded2.Streak)

	// A gap of more than one day resets the streak.
	reloaded2.LastLoginAt = sql.NullTime{Valid: true, Time: time.Now().AddDate(0, 0, -3)}
	require.NoError(t, l.TouchLogin(ctx, reloaded2))

	reloaded2, err = userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, 1, reloaded2.Streak)
}

func Test_Ledger_Rank(t *testing.T) {
	ctx := testutil.MockContext()
	l, _ := newTestLedger(t)

	_, err := testutil.SampleUser(ctx, &entity.User{XP: 300})
	require.NoError(t, err)
	_, err = testutil.SampleUser(ctx, &entity.User{XP: 200})
	require.NoError(t, err)
	_, err = testutil.SampleUser(ctx, &entity.User{XP: 200})
	require.NoError(t, err)

	rank, err := l.Rank(ctx, 300)
	require.NoError(t, err)
	require.Equal(t, int64(1), rank)

	// Users on equal experience share a rank.
	rank, err = l.Rank(ctx, 200)
	require.NoError(t, err)
	require.Equal(t, int64(2), rank)

	rank, err = l.Rank(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, int64(4), rank)
}
