package migration

import (
	"context"
	"time"

	"github.com/questclash/backend/internal/entity"
	"github.com/questclash/backend/pkg/xcontext"
)

type migrator func(context.Context) error

// Migrators maps a version to its migrator, so a single version can also
// be applied by hand through the migrate subcommand.
var Migrators = map[string]migrator{
	"0000": migrate0000,
	"0001": migrate0001,
}

// versions is the order migrations are applied in.
var versions = []string{"0000", "0001"}

// Migrate applies every migration that has not been recorded yet.
func Migrate(ctx context.Context) error {
	if err := xcontext.DB(ctx).AutoMigrate(&entity.Migration{}); err != nil {
		return err
	}

	for _, version := range versions {
		var count int64
		err := xcontext.DB(ctx).
			Model(&entity.Migration{}).
			Where("version=?", version).
			Count(&count).Error
		if err != nil {
			return err
		}

		if count > 0 {
			continue
		}

		xcontext.Logger(ctx).Infof("Applying migration %s", version)
		if err := Migrators[version](ctx); err != nil {
			return err
		}

		err = xcontext.DB(ctx).Create(&entity.Migration{
			Version:   version,
			CreatedAt: time.Now(),
		}).Error
		if err != nil {
			return err
		}
	}

	return nil
}
