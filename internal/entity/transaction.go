package entity

import (
	"database/sql"
	"time"

	"github.com/questclash/backend/pkg/enum"
)

type TransactionType string

var (
	TxSignupBonus         = enum.New(TransactionType("signup_bonus"))
	TxQuestCreationFee    = enum.New(TransactionType("quest_creation_fee"))
	TxQuestJoinFee        = enum.New(TransactionType("quest_join_fee"))
	TxQuestReward         = enum.New(TransactionType("quest_completion_reward"))
	TxQuestCreationRefund = enum.New(TransactionType("quest_creation_refund"))
	TxAdminGrant          = enum.New(TransactionType("admin_grant"))
)

// XPTransaction is the append-only ledger of every balance mutation. Rows
// are never updated or deleted, so the snowflake id doubles as insertion
// order.
type XPTransaction struct {
	SnowFlakeBase

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	QuestID sql.NullString
	Quest   Quest `gorm:"foreignKey:QuestID"`

	Type TransactionType

	// Amount is signed, fees are negative and rewards positive.
	Amount      int64
	Description string

	CreatedAt time.Time
}
