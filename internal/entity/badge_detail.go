package entity

import "time"

type BadgeDetail struct {
	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	BadgeID string `gorm:"primaryKey"`
	Badge   Badge  `gorm:"foreignKey:BadgeID"`

	WasNotified bool
	CreatedAt   time.Time
}
