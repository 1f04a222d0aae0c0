package entity

import (
	"context"
	"time"

	"github.com/questclash/backend/pkg/xcontext"
)

type Migration struct {
	Version   string `gorm:"primaryKey"`
	CreatedAt time.Time
}

// MigrateTable creates or updates every table at the latest schema. Tests
// and the versioned migrators use it.
func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&Quest{},
		&QuestParticipant{},
		&Submission{},
		&Vote{},
		&XPTransaction{},
		&Reward{},
		&Badge{},
		&BadgeDetail{},
		&RefreshToken{},
		&Migration{},
	)
}
