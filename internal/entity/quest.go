package entity

import (
	"database/sql"

	"github.com/questclash/backend/pkg/enum"
)

type QuestStatusType string

var (
	QuestActive            = enum.New(QuestStatusType("active"))
	QuestCompleted         = enum.New(QuestStatusType("completed"))
	QuestPendingValidation = enum.New(QuestStatusType("pending_validation"))
)

type QuestCategoryType string

var (
	CategoryFitness       = enum.New(QuestCategoryType("fitness"))
	CategoryLearning      = enum.New(QuestCategoryType("learning"))
	CategorySocial        = enum.New(QuestCategoryType("social"))
	CategoryCreative      = enum.New(QuestCategoryType("creative"))
	CategoryWellness      = enum.New(QuestCategoryType("wellness"))
	CategoryEnvironmental = enum.New(QuestCategoryType("environmental"))
	CategoryTechnology    = enum.New(QuestCategoryType("technology"))
	CategoryEconomic      = enum.New(QuestCategoryType("economic"))
	CategoryCultural      = enum.New(QuestCategoryType("cultural"))
)

type QuestDifficultyType string

var (
	DifficultyEasy    = enum.New(QuestDifficultyType("easy"))
	DifficultyMedium  = enum.New(QuestDifficultyType("medium"))
	DifficultyHard    = enum.New(QuestDifficultyType("hard"))
	DifficultyExtreme = enum.New(QuestDifficultyType("extreme"))
)

type VerificationMethodType string

var (
	VerificationPhoto     = enum.New(VerificationMethodType("photo"))
	VerificationVideo     = enum.New(VerificationMethodType("video"))
	VerificationGPS       = enum.New(VerificationMethodType("gps"))
	VerificationCommunity = enum.New(VerificationMethodType("community"))
)

type Quest struct {
	Base

	CreatedBy string
	Creator   User `gorm:"foreignKey:CreatedBy"`

	Title              string
	Description        string `gorm:"type:longtext"`
	Category           QuestCategoryType
	Difficulty         QuestDifficultyType
	Tier               UserTierType
	Duration           string
	Requirements       Array[string]
	VerificationMethod VerificationMethodType
	ImageURL           string

	XPReward      int64 `gorm:"column:xp_reward"`
	UsdcReward    sql.NullFloat64
	VoucherReward sql.NullString

	// CreatorCost was debited from the creator's reward points when the
	// quest was published. JoinCost is debited from each participant.
	CreatorCost int64
	JoinCost    int64

	Status          QuestStatusType
	Participants    int64
	MaxParticipants sql.NullInt64

	StartedAt sql.NullTime
	EndedAt   sql.NullTime
}
