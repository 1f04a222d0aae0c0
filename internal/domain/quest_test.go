package domain

import (
	"database/sql"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/questclash/backend/internal/domain/badge"
	"github.com/questclash/backend/internal/domain/ledger"
	"github.com/questclash/backend/internal/domain/search"
	"github.com/questclash/backend/internal/entity"
	"github.com/questclash/backend/internal/model"
	"github.com/questclash/backend/internal/repository"
	"github.com/questclash/backend/pkg/errorx"
	"github.com/questclash/backend/pkg/testutil"
	"github.com/questclash/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestQuestDomain(t *testing.T, searcher search.Searcher) *questDomain {
	userRepo := repository.NewUserRepository()
	transactionRepo := repository.NewTransactionRepository()
	badgeRepo := repository.NewBadgeRepository()
	badgeDetailRepo := repository.NewBadgeDetailRepository()

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	if searcher == nil {
		searcher = &testutil.MockSearcher{}
	}

	return &questDomain{
		questRepo:       repository.NewQuestRepository(),
		participantRepo: repository.NewParticipantRepository(),
		submissionRepo:  repository.NewSubmissionRepository(),
		userRepo:        userRepo,
		ledger:          ledger.New(userRepo, transactionRepo, node),
		badgeManager:    badge.NewManager(badgeRepo, badgeDetailRepo),
		searcher:        searcher,
	}
}

func Test_questDomain_Create(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newTestQuestDomain(t, nil)

	creator, err := testutil.SampleUser(ctx, &entity.User{RewardPoints: 200})
	require.NoError(t, err)

	// The publish fee is half of the creator's balance, not a function of
	// the xp reward: 200 points can fund a 1000 xp quest.
	ctx = xcontext.WithRequestUserID(ctx, creator.ID)
	resp, err := domain.Create(ctx, &model.CreateQuestRequest{
		Title:              "Morning run",
		Description:        "Run 5km every morning for a week",
		Category:           "fitness",
		Difficulty:         "medium",
		Tier:               "bronze",
		Duration:           "7 days",
		VerificationMethod: "community",
		XPReward:           1000,
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.ID)

	quest, err := domain.questRepo.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	require.Equal(t, int64(100), quest.CreatorCost)
	require.Equal(t, int64(10), quest.JoinCost)
	require.Equal(t, entity.QuestActive, quest.Status)

	reloaded, err := domain.userRepo.GetByID(ctx, creator.ID)
	require.NoError(t, err)
	require.Equal(t, int64(100), reloaded.RewardPoints)
}

func Test_questDomain_Create_InsufficientFunds(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newTestQuestDomain(t, nil)

	creator, err := testutil.SampleUser(ctx, &entity.User{RewardPoints: 0})
	require.NoError(t, err)

	ctx = xcontext.WithRequestUserID(ctx, creator.ID)
	_, err = domain.Create(ctx, &model.CreateQuestRequest{
		Title:              "Too expensive",
		Category:           "fitness",
		Difficulty:         "medium",
		Tier:               "bronze",
		VerificationMethod: "community",
		XPReward:           100,
	})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.InsufficientFunds, errx.Code)

	// The transaction rolled back, no quest row was left behind.
	count, err := domain.questRepo.CountByCreator(ctx, creator.ID)
	require.NoError(t, err)
	require.Zero(t, count)
}

func Test_questDomain_Create_TinyBalance(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newTestQuestDomain(t, nil)

	// A single point yields a publish fee of zero, which is not allowed.
	creator, err := testutil.SampleUser(ctx, &entity.User{RewardPoints: 1})
	require.NoError(t, err)

	ctx = xcontext.WithRequestUserID(ctx, creator.ID)
	_, err = domain.Create(ctx, &model.CreateQuestRequest{
		Title:              "Free quest",
		Category:           "fitness",
		Difficulty:         "easy",
		Tier:               "bronze",
		VerificationMethod: "community",
		XPReward:           100,
	})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.InsufficientFunds, errx.Code)
}

func Test_questDomain_Join(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newTestQuestDomain(t, nil)

	quest, err := testutil.SampleQuest(ctx, &entity.Quest{JoinCost: 5})
	require.NoError(t, err)

	user, err := testutil.SampleUser(ctx, &entity.User{RewardPoints: 100})
	require.NoError(t, err)

	ctx = xcontext.WithRequestUserID(ctx, user.ID)
	_, err = domain.Join(ctx, &model.JoinQuestRequest{QuestID: quest.ID})
	require.NoError(t, err)

	reloadedUser, err := domain.userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, int64(95), reloadedUser.RewardPoints)

	reloadedQuest, err := domain.questRepo.GetByID(ctx, quest.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), reloadedQuest.Participants)

	// The second join conflicts on the participant key and rolls back the
	// second fee.
	_, err = domain.Join(ctx, &model.JoinQuestRequest{QuestID: quest.ID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyExists, errx.Code)

	reloadedUser, err = domain.userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, int64(95), reloadedUser.RewardPoints)

	reloadedQuest, err = domain.questRepo.GetByID(ctx, quest.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), reloadedQuest.Participants)
}

func Test_questDomain_Join_CreatorNotAllowed(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newTestQuestDomain(t, nil)

	creator, err := testutil.SampleUser(ctx, &entity.User{RewardPoints: 100})
	require.NoError(t, err)

	quest, err := testutil.SampleQuest(ctx, &entity.Quest{CreatedBy: creator.ID})
	require.NoError(t, err)

	ctx = xcontext.WithRequestUserID(ctx, creator.ID)
	_, err = domain.Join(ctx, &model.JoinQuestRequest{QuestID: quest.ID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)
}

func Test_questDomain_Join_FullQuest(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newTestQuestDomain(t, nil)

	quest, err := testutil.SampleQuest(ctx, &entity.Quest{
		JoinCost:        1,
		MaxParticipants: sql.NullInt64{Valid: true, Int64: 1},
	})
	require.NoError(t, err)

	first, err := testutil.SampleUser(ctx, &entity.User{RewardPoints: 100})
	require.NoError(t, err)

	second, err := testutil.SampleUser(ctx, &entity.User{RewardPoints: 100})
	require.NoError(t, err)

	_, err = domain.Join(
		xcontext.WithRequestUserID(ctx, first.ID),
		&model.JoinQuestRequest{QuestID: quest.ID})
	require.NoError(t, err)

	// The quest is at capacity, the join fee of the second user rolls back.
	_, err = domain.Join(
		xcontext.WithRequestUserID(ctx, second.ID),
		&model.JoinQuestRequest{QuestID: quest.ID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.QuestFull, errx.Code)

	reloaded, err := domain.userRepo.GetByID(ctx, second.ID)
	require.NoError(t, err)
	require.Equal(t, int64(100), reloaded.RewardPoints)
}

func Test_questDomain_SubmitEvidence(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newTestQuestDomain(t, nil)

	quest, err := testutil.SampleQuest(ctx, nil)
	require.NoError(t, err)

	user, err := testutil.SampleUser(ctx, &entity.User{RewardPoints: 100})
	require.NoError(t, err)

	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	// Evidence from a non participant is denied.
	_, err = domain.SubmitEvidence(ctx, &model.SubmitEvidenceRequest{
		QuestID:  quest.ID,
		Evidence: "https://evidence.example.com/run",
	})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)

	_, err = domain.Join(ctx, &model.JoinQuestRequest{QuestID: quest.ID})
	require.NoError(t, err)

	resp, err := domain.SubmitEvidence(ctx, &model.SubmitEvidenceRequest{
		QuestID:  quest.ID,
		Evidence: "https://evidence.example.com/run",
	})
	require.NoError(t, err)

	submission, err := domain.submissionRepo.GetByID(ctx, resp.SubmissionID)
	require.NoError(t, err)
	require.Equal(t, entity.SubmissionPending, submission.Status)

	participant, err := domain.participantRepo.Get(ctx, quest.ID, user.ID)
	require.NoError(t, err)
	require.Equal(t, entity.ParticipantSubmitted, participant.Status)
	require.True(t, participant.EvidenceSubmitted)

	// One submission per quest per user.
	_, err = domain.SubmitEvidence(ctx, &model.SubmitEvidenceRequest{
		QuestID:  quest.ID,
		Evidence: "https://evidence.example.com/run-again",
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyExists, errx.Code)
}

func Test_questDomain_Delete_RefundsCreationFee(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newTestQuestDomain(t, nil)

	creator, err := testutil.SampleUser(ctx, &entity.User{RewardPoints: 500})
	require.NoError(t, err)

	ctx = xcontext.WithRequestUserID(ctx, creator.ID)
	resp, err := domain.Create(ctx, &model.CreateQuestRequest{
		Title:              "Short lived",
		Category:           "learning",
		Difficulty:         "easy",
		Tier:               "bronze",
		VerificationMethod: "community",
		XPReward:           100,
	})
	require.NoError(t, err)

	_, err = domain.Delete(ctx, &model.DeleteQuestRequest{ID: resp.ID})
	require.NoError(t, err)

	_, err = domain.questRepo.GetByID(ctx, resp.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	reloaded, err := domain.userRepo.GetByID(ctx, creator.ID)
	require.NoError(t, err)
	require.Equal(t, int64(500), reloaded.RewardPoints)
}

func Test_questDomain_Delete_WithParticipants(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newTestQuestDomain(t, nil)

	creator, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	quest, err := testutil.SampleQuest(ctx, &entity.Quest{CreatedBy: creator.ID})
	require.NoError(t, err)

	user, err := testutil.SampleUser(ctx, &entity.User{RewardPoints: 100})
	require.NoError(t, err)

	_, err = domain.Join(
		xcontext.WithRequestUserID(ctx, user.ID),
		&model.JoinQuestRequest{QuestID: quest.ID})
	require.NoError(t, err)

	_, err = domain.Delete(
		xcontext.WithRequestUserID(ctx, creator.ID),
		&model.DeleteQuestRequest{ID: quest.ID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unavailable, errx.Code)
}

func Test_questDomain_GetList_WithSearch(t *testing.T) {
	ctx := testutil.MockContext()

	first, err := testutil.SampleQuest(ctx, nil)
	require.NoError(t, err)

	_, err = testutil.SampleQuest(ctx, nil)
	require.NoError(t, err)

	searcher := &testutil.MockSearcher{
		SearchFunc: func(document, query string, offset, limit int) ([]string, error) {
			require.Equal(t, search.QuestDoc, document)
			require.Equal(t, "morning", query)
			return []string{first.ID}, nil
		},
	}

	domain := newTestQuestDomain(t, searcher)
	resp, err := domain.GetList(ctx, &model.GetQuestsRequest{Q: "morning"})
	require.NoError(t, err)
	require.Len(t, resp.Quests, 1)
	require.Equal(t, first.ID, resp.Quests[0].ID)
}

func Test_questDomain_GetQuestParticipants(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newTestQuestDomain(t, nil)

	creator, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	quest, err := testutil.SampleQuest(ctx, &entity.Quest{CreatedBy: creator.ID})
	require.NoError(t, err)

	member, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	_, err = testutil.SampleParticipant(ctx, &entity.QuestParticipant{
		QuestID: quest.ID,
		UserID:  member.ID,
	})
	require.NoError(t, err)

	resp, err := domain.GetQuestParticipants(
		xcontext.WithRequestUserID(ctx, creator.ID),
		&model.GetQuestParticipantsRequest{QuestID: quest.ID})
	require.NoError(t, err)
	require.Len(t, resp.Participants, 1)
	require.Equal(t, member.ID, resp.Participants[0].UserID)

	// Only the creator can list participants.
	_, err = domain.GetQuestParticipants(
		xcontext.WithRequestUserID(ctx, member.ID),
		&model.GetQuestParticipantsRequest{QuestID: quest.ID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)
}
