package ledger

import (
	"context"
	"database/sql"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/questclash/backend/internal/entity"
	"github.com/questclash/backend/internal/repository"
	"github.com/questclash/backend/pkg/dateutil"
	"github.com/questclash/backend/pkg/xcontext"
)

// Ledger is the single entry point for balance mutations. Every change
// goes through a guarded atomic update on the user row and leaves a record
// in the append-only transaction table.
type Ledger struct {
	userRepo        repository.UserRepository
	transactionRepo repository.TransactionRepository
	idGenerator     *snowflake.Node
}

func New(
	userRepo repository.UserRepository,
	transactionRepo repository.TransactionRepository,
	idGenerator *snowflake.Node,
) *Ledger {
	return &Ledger{
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		idGenerator:     idGenerator,
	}
}

// AddXP credits or debits experience. A debit below zero fails with
// repository.ErrInsufficientBalance and records nothing.
func (l *Ledger) AddXP(
	ctx context.Context, userID string, amount int64,
	txType entity.TransactionType, questID, description string,
) error {
	if err := l.userRepo.AddXP(ctx, userID, amount); err != nil {
		return err
	}

	l.record(ctx, userID, amount, txType, questID, description)
	return nil
}

// AddRewardPoints credits or debits spendable points with the same
// guarantees as AddXP.
func (l *Ledger) AddRewardPoints(
	ctx context.Context, userID string, amount int64,
	txType entity.TransactionType, questID, description string,
) error {
	if err := l.userRepo.AddRewardPoints(ctx, userID, amount); err != nil {
		return err
	}

	l.record(ctx, userID, amount, txType, questID, description)
	return nil
}

func (l *Ledger) AddUsdc(ctx context.Context, userID string, amount float64) error {
	return l.userRepo.AddUsdcBalance(ctx, userID, amount)
}

// record appends a ledger row. The balance update already committed its
// intent, so a failed record is logged rather than unwinding the caller.
// Inside a transaction the row still rolls back with everything else.
func (l *Ledger) record(
	ctx context.Context, userID string, amount int64,
	txType entity.TransactionType, questID, description string,
) {
	tx := &entity.XPTransaction{
		SnowFlakeBase: entity.SnowFlakeBase{ID: l.idGenerator.Generate().Int64()},
		UserID:        userID,
		Type:          txType,
		Amount:        amount,
		Description:   description,
		CreatedAt:     time.Now(),
	}

	if questID != "" {
		tx.QuestID = sql.NullString{Valid: true, String: questID}
	}

	if err := l.transactionRepo.Create(ctx, tx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot record %s transaction of user %s: %v", txType, userID, err)
	}
}

// TouchLogin maintains the daily login streak. Logging in on the calendar
// day after the previous login extends the streak, a longer gap resets it,
// a second login on the same day changes nothing.
func (l *Ledger) TouchLogin(ctx context.Context, user *entity.User) error {
	now := time.Now()
	streak := 1
	if user.LastLoginAt.Valid {
		switch days := dateutil.DaysBetween(user.LastLoginAt.Time, now); {
		case days == 0:
			return nil
		case days == 1:
			streak = user.Streak + 1
		}
	}

	return l.userRepo.UpdateStreak(ctx, user.ID, streak, now)
}

// Rank is one plus the number of users holding strictly more experience.
// Users on equal experience share a rank.
func (l *Ledger) Rank(ctx context.Context, xp int64) (int64, error) {
	count, err := l.userRepo.CountByGreaterXP(ctx, xp)
	if err != nil {
		return 0, err
	}

	return count + 1, nil
}
