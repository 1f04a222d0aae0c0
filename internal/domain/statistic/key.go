package statistic

import (
	"fmt"

	"github.com/questclash/backend/internal/entity"
)

func redisKeyLeaderBoard(period entity.LeaderBoardPeriodType) string {
	return fmt.Sprintf("leaderboard:xp:%s", period.Period())
}
