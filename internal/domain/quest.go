package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/math"
	"github.com/questclash/backend/internal/domain/badge"
	"github.com/questclash/backend/internal/domain/ledger"
	"github.com/questclash/backend/internal/domain/search"
	"github.com/questclash/backend/internal/entity"
	"github.com/questclash/backend/internal/model"
	"github.com/questclash/backend/internal/repository"
	"github.com/questclash/backend/pkg/enum"
	"github.com/questclash/backend/pkg/errorx"
	"github.com/questclash/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type QuestDomain interface {
	Create(context.Context, *model.CreateQuestRequest) (*model.CreateQuestResponse, error)
	Get(context.Context, *model.GetQuestRequest) (*model.GetQuestResponse, error)
	GetList(context.Context, *model.GetQuestsRequest) (*model.GetQuestsResponse, error)
	Update(context.Context, *model.UpdateQuestRequest) (*model.UpdateQuestResponse, error)
	Delete(context.Context, *model.DeleteQuestRequest) (*model.DeleteQuestResponse, error)
	Join(context.Context, *model.JoinQuestRequest) (*model.JoinQuestResponse, error)
	SubmitEvidence(context.Context, *model.SubmitEvidenceRequest) (*model.SubmitEvidenceResponse, error)
	GetMyQuests(context.Context, *model.GetMyQuestsRequest) (*model.GetMyQuestsResponse, error)
	GetParticipation(context.Context, *model.GetParticipationRequest) (*model.GetParticipationResponse, error)
	GetQuestParticipants(context.Context, *model.GetQuestParticipantsRequest) (*model.GetQuestParticipantsResponse, error)
}

type questDomain struct {
	questRepo       repository.QuestRepository
	participantRepo repository.ParticipantRepository
	userRepo        repository.UserRepository
	ledger          *ledger.Ledger
	badgeManager    *badge.Manager
	searcher        search.Searcher
	submissionRepo  repository.SubmissionRepository
}

func NewQuestDomain(
	questRepo repository.QuestRepository,
	participantRepo repository.ParticipantRepository,
	submissionRepo repository.SubmissionRepository,
	userRepo repository.UserRepository,
	ledger *ledger.Ledger,
	badgeManager *badge.Manager,
	searcher search.Searcher,
) QuestDomain {
	return &questDomain{
		questRepo:       questRepo,
		participantRepo: participantRepo,
		submissionRepo:  submissionRepo,
		userRepo:        userRepo,
		ledger:          ledger,
		badgeManager:    badgeManager,
		searcher:        searcher,
	}
}

// CreatorCost is half of the creator's current point balance at publish
// time. A creator whose balance yields no cost cannot publish.
func CreatorCost(rewardPoints int64) int64 {
	return rewardPoints / 2
}

// JoinCost is a tenth of the creator cost, at least one point.
func JoinCost(creatorCost int64) int64 {
	return math.MaxInt64(1, creatorCost/10)
}

func (d *questDomain) Create(
	ctx context.Context, req *model.CreateQuestRequest,
) (*model.CreateQuestResponse, error) {
	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty title")
	}

	category, err := enum.ToEnum[entity.QuestCategoryType](req.Category)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Invalid category: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid category %s", req.Category)
	}

	difficulty, err := enum.ToEnum[entity.QuestDifficultyType](req.Difficulty)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Invalid difficulty: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid difficulty %s", req.Difficulty)
	}

	tier, err := enum.ToEnum[entity.UserTierType](req.Tier)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Invalid tier: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid tier %s", req.Tier)
	}

	verification, err := enum.ToEnum[entity.VerificationMethodType](req.VerificationMethod)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Invalid verification method: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid verification method %s", req.VerificationMethod)
	}

	if req.XPReward <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Require a positive xp reward")
	}

	if req.MaxParticipants != nil && *req.MaxParticipants <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Require a positive max participants")
	}

	quest := &entity.Quest{
		Base:               entity.Base{ID: uuid.NewString()},
		CreatedBy:          xcontext.RequestUserID(ctx),
		Title:              req.Title,
		Description:        req.Description,
		Category:           category,
		Difficulty:         difficulty,
		Tier:               tier,
		Duration:           req.Duration,
		Requirements:       req.Requirements,
		VerificationMethod: verification,
		ImageURL:           req.ImageURL,
		XPReward:           req.XPReward,
		VoucherReward:      sql.NullString{Valid: req.VoucherReward != "", String: req.VoucherReward},
		Status:             entity.QuestActive,
		StartedAt:          sql.NullTime{Valid: true, Time: time.Now()},
	}

	if req.UsdcReward != nil {
		if *req.UsdcReward < 0 {
			return nil, errorx.New(errorx.BadRequest, "Not allow a negative usdc reward")
		}

		quest.UsdcReward = sql.NullFloat64{Valid: true, Float64: *req.UsdcReward}
	}

	if req.MaxParticipants != nil {
		quest.MaxParticipants = sql.NullInt64{Valid: true, Int64: *req.MaxParticipants}
	}

	if req.EndedAt != "" {
		endedAt, err := time.Parse(model.DefaultTimeLayout, req.EndedAt)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid ended at")
		}

		if endedAt.Before(time.Now()) {
			return nil, errorx.New(errorx.BadRequest, "The ended at must be in the future")
		}

		quest.EndedAt = sql.NullTime{Valid: true, Time: endedAt}
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	creator, err := d.userRepo.GetByID(ctx, quest.CreatedBy)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get creator: %v", err)
		return nil, errorx.Unknown
	}

	creatorCost := CreatorCost(creator.RewardPoints)
	if creatorCost <= 0 {
		return nil, errorx.New(errorx.InsufficientFunds,
			"You have no points to publish a quest")
	}

	quest.CreatorCost = creatorCost
	quest.JoinCost = JoinCost(creatorCost)

	err = d.ledger.AddRewardPoints(
		ctx, quest.CreatedBy, -creatorCost,
		entity.TxQuestCreationFee, quest.ID, "Published "+quest.Title)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientBalance) {
			return nil, errorx.New(errorx.InsufficientFunds,
				"You need %d points to publish this quest", creatorCost)
		}

		xcontext.Logger(ctx).Errorf("Cannot charge creation fee: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.questRepo.Create(ctx, quest); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create quest: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithCommitDBTransaction(ctx)

	err = d.searcher.Index(search.QuestDoc, quest.ID, search.QuestData{
		Title:       quest.Title,
		Description: quest.Description,
	})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot index quest %s: %v", quest.ID, err)
	}

	err = d.badgeManager.
		WithBadges(badge.QuestCreatorBadgeName).
		ScanAndGive(ctx, quest.CreatedBy)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot scan creator badge: %v", err)
	}

	return &model.CreateQuestResponse{ID: quest.ID}, nil
}

func (d *questDomain) Get(
	ctx context.Context, req *model.GetQuestRequest,
) (*model.GetQuestResponse, error) {
	quest, err := d.questRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found quest")
		}

		xcontext.Logger(ctx).Errorf("Cannot get quest: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetQuestResponse(model.ConvertQuest(quest))
	return &resp, nil
}

func (d *questDomain) GetList(
	ctx context.Context, req *model.GetQuestsRequest,
) (*model.GetQuestsResponse, error) {
	if req.Limit == 0 {
		req.Limit = 50
	}

	if req.Limit < 0 || req.Limit > 100 {
		return nil, errorx.New(errorx.BadRequest, "Limit must be between 1 and 100")
	}

	filter := repository.SearchQuestFilter{
		Statuses: []entity.QuestStatusType{entity.QuestActive},
		Offset:   req.Offset,
		Limit:    req.Limit,
	}

	if req.Category != "" {
		category, err := enum.ToEnum[entity.QuestCategoryType](req.Category)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid category %s", req.Category)
		}

		filter.Category = category
	}

	if req.Difficulty != "" {
		difficulty, err := enum.ToEnum[entity.QuestDifficultyType](req.Difficulty)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid difficulty %s", req.Difficulty)
		}

		filter.Difficulty = difficulty
	}

	if req.Tier != "" {
		tier, err := enum.ToEnum[entity.UserTierType](req.Tier)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid tier %s", req.Tier)
		}

		filter.Tier = tier
	}

	if req.Q != "" {
		ids, err := d.searcher.Search(search.QuestDoc, req.Q, req.Offset, req.Limit)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot search quests: %v", err)
			return nil, errorx.Unknown
		}

		if len(ids) == 0 {
			return &model.GetQuestsResponse{Quests: []model.Quest{}}, nil
		}

		filter.IDs = ids
		filter.Offset = 0
	}

	quests, err := d.questRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get quests: %v", err)
		return nil, errorx.Unknown
	}

	clientQuests := []model.Quest{}
	for i := range quests {
		clientQuests = append(clientQuests, model.ConvertQuest(&quests[i]))
	}

	return &model.GetQuestsResponse{Quests: clientQuests}, nil
}

func (d *questDomain) Update(
	ctx context.Context, req *model.UpdateQuestRequest,
) (*model.UpdateQuestResponse, error) {
	quest, err := d.questRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found quest")
		}

		xcontext.Logger(ctx).Errorf("Cannot get quest: %v", err)
		return nil, errorx.Unknown
	}

	if quest.CreatedBy != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the creator can update this quest")
	}

	update := &entity.Quest{
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
		ImageURL:     req.ImageURL,
	}

	if req.EndedAt != "" {
		endedAt, err := time.Parse(model.DefaultTimeLayout, req.EndedAt)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid ended at")
		}

		update.EndedAt = sql.NullTime{Valid: true, Time: endedAt}
	}

	if err := d.questRepo.Update(ctx, req.ID, update); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update quest: %v", err)
		return nil, errorx.Unknown
	}

	if req.Title != "" || req.Description != "" {
		title, description := quest.Title, quest.Description
		if req.Title != "" {
			title = req.Title
		}

		if req.Description != "" {
			description = req.Description
		}

		err = d.searcher.Index(search.QuestDoc, quest.ID, search.QuestData{
			Title:       title,
			Description: description,
		})
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot reindex quest %s: %v", quest.ID, err)
		}
	}

	return &model.UpdateQuestResponse{}, nil
}

func (d *questDomain) Delete(
	ctx context.Context, req *model.DeleteQuestRequest,
) (*model.DeleteQuestResponse, error) {
	quest, err := d.questRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found quest")
		}

		xcontext.Logger(ctx).Errorf("Cannot get quest: %v", err)
		return nil, errorx.Unknown
	}

	userID := xcontext.RequestUserID(ctx)
	if quest.CreatedBy != userID {
		return nil, errorx.New(errorx.PermissionDenied, "Only the creator can delete this quest")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	// The conditional delete fails once anybody has joined.
	if err := d.questRepo.DeleteByCreator(ctx, quest.ID, userID); err != nil {
		return nil, errorx.New(errorx.Unavailable, "Cannot delete a quest with participants")
	}

	err = d.ledger.AddRewardPoints(
		ctx, userID, quest.CreatorCost,
		entity.TxQuestCreationRefund, quest.ID, "Unpublished "+quest.Title)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot refund creation fee: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithCommitDBTransaction(ctx)

	if err := d.searcher.Delete(search.QuestDoc, quest.ID); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot remove quest %s from index: %v", quest.ID, err)
	}

	return &model.DeleteQuestResponse{}, nil
}

func (d *questDomain) Join(
	ctx context.Context, req *model.JoinQuestRequest,
) (*model.JoinQuestResponse, error) {
	quest, err := d.questRepo.GetByID(ctx, req.QuestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found quest")
		}

		xcontext.Logger(ctx).Errorf("Cannot get quest: %v", err)
		return nil, errorx.Unknown
	}

	userID := xcontext.RequestUserID(ctx)
	if quest.CreatedBy == userID {
		return nil, errorx.New(errorx.PermissionDenied, "Not allow the creator to join")
	}

	if quest.Status != entity.QuestActive {
		return nil, errorx.New(errorx.Unavailable, "This quest is not active")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	err = d.ledger.AddRewardPoints(
		ctx, userID, -quest.JoinCost,
		entity.TxQuestJoinFee, quest.ID, "Joined "+quest.Title)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientBalance) {
			return nil, errorx.New(errorx.InsufficientFunds,
				"You need %d points to join this quest", quest.JoinCost)
		}

		xcontext.Logger(ctx).Errorf("Cannot charge join fee: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.questRepo.IncreaseParticipants(ctx, quest.ID); err != nil {
		if errors.Is(err, repository.ErrQuestFull) {
			return nil, errorx.New(errorx.QuestFull, "This quest is full")
		}

		xcontext.Logger(ctx).Errorf("Cannot increase participants: %v", err)
		return nil, errorx.Unknown
	}

	err = d.participantRepo.Create(ctx, &entity.QuestParticipant{
		QuestID: quest.ID,
		UserID:  userID,
		Status:  entity.ParticipantJoined,
	})
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot create participant: %v", err)
		return nil, errorx.New(errorx.AlreadyExists, "You have already joined this quest")
	}

	ctx = xcontext.WithCommitDBTransaction(ctx)

	return &model.JoinQuestResponse{}, nil
}

func (d *questDomain) SubmitEvidence(
	ctx context.Context, req *model.SubmitEvidenceRequest,
) (*model.SubmitEvidenceResponse, error) {
	if req.Evidence == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty evidence")
	}

	quest, err := d.questRepo.GetByID(ctx, req.QuestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found quest")
		}

		xcontext.Logger(ctx).Errorf("Cannot get quest: %v", err)
		return nil, errorx.Unknown
	}

	if quest.Status != entity.QuestActive {
		return nil, errorx.New(errorx.Unavailable, "This quest is not active")
	}

	userID := xcontext.RequestUserID(ctx)
	participant, err := d.participantRepo.Get(ctx, quest.ID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.PermissionDenied, "You have not joined this quest")
		}

		xcontext.Logger(ctx).Errorf("Cannot get participant: %v", err)
		return nil, errorx.Unknown
	}

	if participant.Status != entity.ParticipantJoined {
		return nil, errorx.New(errorx.AlreadyExists, "You have already submitted evidence")
	}

	submission := &entity.Submission{
		Base:       entity.Base{ID: uuid.NewString()},
		QuestID:    quest.ID,
		UserID:     userID,
		Evidence:   req.Evidence,
		Status:     entity.SubmissionPending,
		DeadlineAt: time.Now().Add(xcontext.Configs(ctx).Quest.VotingWindow),
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.submissionRepo.Create(ctx, submission); err != nil {
		xcontext.Logger(ctx).Debugf("Cannot create submission: %v", err)
		return nil, errorx.New(errorx.AlreadyExists, "You have already submitted evidence")
	}

	if err := d.participantRepo.MarkSubmitted(ctx, quest.ID, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot mark participant as submitted: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithCommitDBTransaction(ctx)

	return &model.SubmitEvidenceResponse{SubmissionID: submission.ID}, nil
}

func (d *questDomain) GetMyQuests(
	ctx context.Context, req *model.GetMyQuestsRequest,
) (*model.GetMyQuestsResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	created, err := d.questRepo.GetListByCreator(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get created quests: %v", err)
		return nil, errorx.Unknown
	}

	joined, err := d.participantRepo.GetListByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get joined quests: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetMyQuestsResponse{Created: []model.Quest{}, Joined: []model.Participation{}}
	for i := range created {
		resp.Created = append(resp.Created, model.ConvertQuest(&created[i]))
	}

	for i := range joined {
		resp.Joined = append(resp.Joined, model.ConvertParticipation(&joined[i]))
	}

	return resp, nil
}

func (d *questDomain) GetParticipation(
	ctx context.Context, req *model.GetParticipationRequest,
) (*model.GetParticipationResponse, error) {
	participant, err := d.participantRepo.Get(ctx, req.QuestID, xcontext.RequestUserID(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "You have not joined this quest")
		}

		xcontext.Logger(ctx).Errorf("Cannot get participant: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetParticipationResponse(model.ConvertParticipation(participant))
	return &resp, nil
}

// GetQuestParticipants lists everyone who joined a quest. Only the quest
// creator can see the list.
func (d *questDomain) GetQuestParticipants(
	ctx context.Context, req *model.GetQuestParticipantsRequest,
) (*model.GetQuestParticipantsResponse, error) {
	quest, err := d.questRepo.GetByID(ctx, req.QuestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found quest")
		}

		xcontext.Logger(ctx).Errorf("Cannot get quest: %v", err)
		return nil, errorx.Unknown
	}

	if quest.CreatedBy != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the creator can list participants")
	}

	participants, err := d.participantRepo.GetListByQuestID(ctx, quest.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get participants: %v", err)
		return nil, errorx.Unknown
	}

	clientParticipants := []model.Participation{}
	for i := range participants {
		clientParticipants = append(clientParticipants, model.ConvertParticipation(&participants[i]))
	}

	return &model.GetQuestParticipantsResponse{Participants: clientParticipants}, nil
}
