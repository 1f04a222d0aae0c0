package migration

import (
	"context"

	"github.com/google/uuid"
	"github.com/questclash/backend/internal/domain/badge"
	"github.com/questclash/backend/internal/entity"
	"github.com/questclash/backend/internal/repository"
)

// migrate0001 seeds the badge catalog. The upsert keeps it idempotent.
func migrate0001(ctx context.Context) error {
	badgeRepo := repository.NewBadgeRepository()

	catalog := []struct {
		name        string
		description string
		values      []int64
	}{
		{badge.QuestWarriorBadgeName, "Complete quests", []int64{1, 5, 25}},
		{badge.QuestCreatorBadgeName, "Publish quests", []int64{1, 5, 25}},
		{badge.StreakMasterBadgeName, "Keep a daily login streak", []int64{3, 7, 30}},
		{badge.CommunityHelperBadgeName, "Vote on peer submissions", []int64{10, 50, 250}},
	}

	for _, b := range catalog {
		for level, value := range b.values {
			err := badgeRepo.Create(ctx, &entity.Badge{
				Base:        entity.Base{ID: uuid.NewString()},
				Name:        b.name,
				Level:       level + 1,
				Value:       value,
				Description: b.description,
			})
			if err != nil {
				return err
			}
		}
	}

	return nil
}
