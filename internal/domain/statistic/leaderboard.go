package statistic

import (
	"context"
	"time"

	"github.com/questclash/backend/internal/entity"
	"github.com/questclash/backend/internal/repository"
	"github.com/questclash/backend/pkg/errorx"
	"github.com/questclash/backend/pkg/xcontext"
	"github.com/questclash/backend/pkg/xredis"
	"github.com/redis/go-redis/v9"
)

type Leaderboard interface {
	GetLeaderBoard(
		ctx context.Context,
		period entity.LeaderBoardPeriodType,
		offset, limit int,
	) ([]entity.UserStatistic, error)

	GetRank(
		ctx context.Context,
		userID string,
		period entity.LeaderBoardPeriodType,
	) (uint64, error)

	ChangeLeaderboard(
		ctx context.Context,
		value int64,
		earnedAt time.Time,
		userID string,
	) error
}

type leaderboard struct {
	transactionRepo repository.TransactionRepository
	redisClient     xredis.Client
}

func New(
	transactionRepo repository.TransactionRepository,
	redisClient xredis.Client,
) *leaderboard {
	return &leaderboard{
		transactionRepo: transactionRepo,
		redisClient:     redisClient,
	}
}

func (l *leaderboard) GetLeaderBoard(
	ctx context.Context,
	period entity.LeaderBoardPeriodType,
	offset, limit int,
) ([]entity.UserStatistic, error) {
	key := redisKeyLeaderBoard(period)
	ok, err := l.redisClient.Exist(ctx, key)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call exist redis: %v", err)
		return nil, errorx.Unknown
	}

	if !ok {
		if err := l.loadLeaderboardFromDB(ctx, period); err != nil {
			return nil, err
		}
	}

	results, err := l.redisClient.ZRevRangeWithScores(ctx, key, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get revrange redis: %v", err)
		return nil, errorx.Unknown
	}

	statistics := []entity.UserStatistic{}
	for _, z := range results {
		statistics = append(statistics, entity.UserStatistic{
			UserID: z.Member.(string),
			XP:     int64(z.Score),
		})
	}

	return statistics, nil
}

func (l *leaderboard) GetRank(
	ctx context.Context,
	userID string,
	period entity.LeaderBoardPeriodType,
) (uint64, error) {
	key := redisKeyLeaderBoard(period)
	ok, err := l.redisClient.Exist(ctx, key)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call exist redis: %v", err)
		return 0, errorx.Unknown
	}

	if !ok {
		if err := l.loadLeaderboardFromDB(ctx, period); err != nil {
			return 0, err
		}
	}

	rank, err := l.redisClient.ZRevRank(ctx, key, userID)
	if err != nil {
		// The user is not on the board for this period yet.
		return 0, nil
	}

	return rank + 1, nil
}

func (l *leaderboard) ChangeLeaderboard(
	ctx context.Context,
	value int64,
	earnedAt time.Time,
	userID string,
) error {
	weekPeriod, err := ToPeriodWithTime("week", earnedAt)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Invalid period: %v", err)
		return errorx.Unknown
	}

	if err := l.changeLeaderboard(ctx, value, userID, weekPeriod); err != nil {
		return err
	}

	monthPeriod, err := ToPeriodWithTime("month", earnedAt)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Invalid period: %v", err)
		return errorx.Unknown
	}

	if err := l.changeLeaderboard(ctx, value, userID, monthPeriod); err != nil {
		return err
	}

	return nil
}

func (l *leaderboard) changeLeaderboard(
	ctx context.Context,
	value int64,
	userID string,
	period entity.LeaderBoardPeriodType,
) error {
	key := redisKeyLeaderBoard(period)
	ok, err := l.redisClient.Exist(ctx, key)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call exist redis: %v", err)
		return errorx.Unknown
	}

	// If the key didn't exist in redis, the next read will backfill the
	// complete period from the ledger, so no need to update now.
	if !ok {
		return nil
	}

	if err := l.redisClient.ZIncrBy(ctx, key, value, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call ZIncrBy redis: %v", err)
	}

	return nil
}

func (l *leaderboard) loadLeaderboardFromDB(
	ctx context.Context, period entity.LeaderBoardPeriodType,
) error {
	statistics, err := l.transactionRepo.SumEarnedSince(ctx, period.Start(), period.End())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load statistic from database: %v", err)
		return errorx.Unknown
	}

	key := redisKeyLeaderBoard(period)
	for _, s := range statistics {
		err := l.redisClient.ZAdd(ctx, key, redis.Z{Member: s.UserID, Score: float64(s.XP)})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot zadd redis: %v", err)
			return errorx.Unknown
		}
	}

	return nil
}
