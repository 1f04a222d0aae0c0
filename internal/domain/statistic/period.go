package statistic

import (
	"fmt"
	"time"

	"github.com/questclash/backend/internal/entity"
)

func ToPeriodWithTime(periodString string, current time.Time) (entity.LeaderBoardPeriodType, error) {
	switch periodString {
	case "week":
		return entity.NewLeaderBoardPeriodWeek(current), nil
	case "month":
		return entity.NewLeaderBoardPeriodMonth(current), nil
	}

	return nil, fmt.Errorf("invalid period, expected week or month, but got %s", periodString)
}

func ToPeriod(periodString string) (entity.LeaderBoardPeriodType, error) {
	return ToPeriodWithTime(periodString, time.Now())
}
