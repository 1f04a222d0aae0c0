package entity

import (
	"database/sql"

	"github.com/questclash/backend/pkg/enum"
)

type RewardType string

var (
	RewardXP   = enum.New(RewardType("xp"))
	RewardUsdc = enum.New(RewardType("usdc"))
)

type Reward struct {
	Base

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	QuestID string
	Quest   Quest `gorm:"foreignKey:QuestID"`

	Type   RewardType
	Amount float64

	// ClaimedAt is null while the reward is pending. Claiming sets it with
	// a conditional update, so a reward pays out at most once.
	ClaimedAt sql.NullTime
}
