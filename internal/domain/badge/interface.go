package badge

import (
	"context"

	"github.com/questclash/backend/internal/entity"
)

type BadgeScanner interface {
	// Name returns the name of badge.
	Name() string

	// Scan returns every level of this badge the user currently qualifies
	// for. The manager only awards levels above the one already held.
	Scan(ctx context.Context, userID string) ([]entity.Badge, error)
}
