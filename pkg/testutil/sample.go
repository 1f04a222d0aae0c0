package testutil

import (
	"context"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/questclash/backend/internal/entity"
	"github.com/questclash/backend/internal/repository"
)

// SampleUser creates a new user in database with many fields are randomized.
// The sample user can be overwritten by non-zero fields of init.
//
// This function returns the sample user.
func SampleUser(ctx context.Context, init *entity.User) (entity.User, error) {
	userRepo := repository.NewUserRepository()

	sample := &entity.User{
		Base: entity.Base{ID: uuid.NewString()},
		Name: uuid.NewString(),
		Role: entity.UserRole,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := userRepo.Create(ctx, sample); err != nil {
		return *sample, err
	}
	return *sample, nil
}

// SampleQuest creates a new quest in database. If init does not give a
// creator, a sample user is created to own the quest.
func SampleQuest(ctx context.Context, init *entity.Quest) (entity.Quest, error) {
	questRepo := repository.NewQuestRepository()

	sample := &entity.Quest{
		Base:               entity.Base{ID: uuid.NewString()},
		Title:              uuid.NewString(),
		Description:        "Run 5km every morning",
		Category:           entity.CategoryFitness,
		Difficulty:         entity.DifficultyEasy,
		Tier:               entity.TierBronze,
		Duration:           "7 days",
		VerificationMethod: entity.VerificationCommunity,
		XPReward:           100,
		CreatorCost:        50,
		JoinCost:           5,
		Status:             entity.QuestActive,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if sample.CreatedBy == "" {
		creator, err := SampleUser(ctx, nil)
		if err != nil {
			return *sample, err
		}
		sample.CreatedBy = creator.ID
	}

	if err := questRepo.Create(ctx, sample); err != nil {
		return *sample, err
	}
	return *sample, nil
}

// SampleParticipant joins the given user to the given quest.
func SampleParticipant(
	ctx context.Context, init *entity.QuestParticipant,
) (entity.QuestParticipant, error) {
	participantRepo := repository.NewParticipantRepository()

	sample := &entity.QuestParticipant{
		Status: entity.ParticipantJoined,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := participantRepo.Create(ctx, sample); err != nil {
		return *sample, err
	}
	return *sample, nil
}

// SampleSubmission creates a pending submission whose voting window
// closes one hour from now unless init says otherwise.
func SampleSubmission(ctx context.Context, init *entity.Submission) (entity.Submission, error) {
	submissionRepo := repository.NewSubmissionRepository()

	sample := &entity.Submission{
		Base:       entity.Base{ID: uuid.NewString()},
		Evidence:   "https://evidence.example.com/" + uuid.NewString(),
		Status:     entity.SubmissionPending,
		DeadlineAt: time.Now().Add(time.Hour),
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := submissionRepo.Create(ctx, sample); err != nil {
		return *sample, err
	}
	return *sample, nil
}

func overwriteFields[T any](origin *T, overwrite T) {
	originValue := reflect.ValueOf(origin).Elem()
	overwriteValue := reflect.ValueOf(overwrite)

	for i := 0; i < overwriteValue.NumField(); i++ {
		overwriteField := overwriteValue.Field(i)
		if !overwriteField.IsZero() {
			originValue.Field(i).Set(overwriteField)
		}
	}
}
