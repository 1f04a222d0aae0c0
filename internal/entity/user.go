package entity

import (
	"database/sql"

	"github.com/questclash/backend/pkg/enum"
)

const (
	SuperAdminRole = "SUPER_ADMIN"
	AdminRole      = "ADMIN"
	UserRole       = "USER"
)

type UserTierType string

var (
	TierBronze   = enum.New(UserTierType("bronze"))
	TierSilver   = enum.New(UserTierType("silver"))
	TierGold     = enum.New(UserTierType("gold"))
	TierPlatinum = enum.New(UserTierType("platinum"))
)

// XPPerLevel is the amount of experience needed to advance one level.
const XPPerLevel = 1000

type User struct {
	Base

	WalletAddress sql.NullString `gorm:"unique"`
	Name          string         `gorm:"unique"`
	Role          string         `gorm:"default:USER"`
	AvatarURL     string

	XP           int64 `gorm:"column:xp"`
	RewardPoints int64
	UsdcBalance  float64
	Streak       int
	LastLoginAt  sql.NullTime
}

// Level, XPToNextLevel, and Tier are derived from the stored experience.
// They are never written to the database, so they cannot drift from it.

func Level(xp int64) int {
	return int(xp/XPPerLevel) + 1
}

func XPToNextLevel(xp int64) int64 {
	return int64(Level(xp))*XPPerLevel - xp
}

func Tier(xp int64) UserTierType {
	switch level := Level(xp); {
	case level >= 15:
		return TierPlatinum
	case level >= 10:
		return TierGold
	case level >= 6:
		return TierSilver
	default:
		return TierBronze
	}
}
