package migration

import (
	"context"

	"github.com/questclash/backend/internal/entity"
)

// migrate0000 creates the database with the latest schema.
func migrate0000(ctx context.Context) error {
	return entity.MigrateTable(ctx)
}
