package testutil

import (
	"context"

	"github.com/questclash/backend/internal/entity"
)

type MockBadgeScanner struct {
	NameValue string
	ScanFunc  func(ctx context.Context, userID string) ([]entity.Badge, error)
}

func (m *MockBadgeScanner) Name() string {
	return m.NameValue
}

func (m *MockBadgeScanner) Scan(ctx context.Context, userID string) ([]entity.Badge, error) {
	if m.ScanFunc != nil {
		return m.ScanFunc(ctx, userID)
	}

	return nil, nil
}
