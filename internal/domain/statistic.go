package domain

import (
	"context"

	"github.com/questclash/backend/internal/domain/statistic"
	"github.com/questclash/backend/internal/model"
	"github.com/questclash/backend/internal/repository"
	"github.com/questclash/backend/pkg/errorx"
	"github.com/questclash/backend/pkg/xcontext"
)

type StatisticDomain interface {
	GetLeaderBoard(context.Context, *model.GetLeaderBoardRequest) (*model.GetLeaderBoardResponse, error)
}

type statisticDomain struct {
	userRepo    repository.UserRepository
	leaderboard statistic.Leaderboard
}

func NewStatisticDomain(
	userRepo repository.UserRepository,
	leaderboard statistic.Leaderboard,
) StatisticDomain {
	return &statisticDomain{
		userRepo:    userRepo,
		leaderboard: leaderboard,
	}
}

func (d *statisticDomain) GetLeaderBoard(
	ctx context.Context, req *model.GetLeaderBoardRequest,
) (*model.GetLeaderBoardResponse, error) {
	if req.Limit == 0 {
		req.Limit = 50
	}

	if req.Limit < 0 || req.Limit > 100 {
		return nil, errorx.New(errorx.BadRequest, "Limit must be between 1 and 100")
	}

	if req.Period == "" || req.Period == "alltime" {
		return d.allTimeLeaderBoard(ctx, req.Offset, req.Limit)
	}

	period, err := statistic.ToPeriod(req.Period)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Invalid period: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid period %s", req.Period)
	}

	rows, err := d.leaderboard.GetLeaderBoard(ctx, period, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	entries := []model.LeaderBoardEntry{}
	for i, row := range rows {
		user, err := d.userRepo.GetByID(ctx, row.UserID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get user %s: %v", row.UserID, err)
			return nil, errorx.Unknown
		}

		entries = append(entries, model.LeaderBoardEntry{
			Rank: int64(req.Offset + i + 1),
			User: model.ConvertUser(user, false, 0),
			XP:   row.XP,
		})
	}

	resp := &model.GetLeaderBoardResponse{LeaderBoard: entries}
	if userID := xcontext.RequestUserID(ctx); userID != "" {
		rank, err := d.leaderboard.GetRank(ctx, userID, period)
		if err != nil {
			return nil, err
		}

		resp.MyRank = int64(rank)
	}

	return resp, nil
}

func (d *statisticDomain) allTimeLeaderBoard(
	ctx context.Context, offset, limit int,
) (*model.GetLeaderBoardResponse, error) {
	users, err := d.userRepo.GetListOrderByXP(ctx, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users ordered by xp: %v", err)
		return nil, errorx.Unknown
	}

	entries := []model.LeaderBoardEntry{}
	for i := range users {
		entries = append(entries, model.LeaderBoardEntry{
			Rank: int64(offset + i + 1),
			User: model.ConvertUser(&users[i], false, 0),
			XP:   users[i].XP,
		})
	}

	resp := &model.GetLeaderBoardResponse{LeaderBoard: entries}
	if userID := xcontext.RequestUserID(ctx); userID != "" {
		user, err := d.userRepo.GetByID(ctx, userID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get user %s: %v", userID, err)
			return nil, errorx.Unknown
		}

		higher, err := d.userRepo.CountByGreaterXP(ctx, user.XP)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count higher ranked users: %v", err)
			return nil, errorx.Unknown
		}

		resp.MyRank = higher + 1
	}

	return resp, nil
}
