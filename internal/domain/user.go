package domain

import (
	"context"
	"errors"

	"github.com/questclash/backend/internal/common"
	"github.com/questclash/backend/internal/domain/ledger"
	"github.com/questclash/backend/internal/entity"
	"github.com/questclash/backend/internal/model"
	"github.com/questclash/backend/internal/repository"
	"github.com/questclash/backend/pkg/errorx"
	"github.com/questclash/backend/pkg/storage"
	"github.com/questclash/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserDomain interface {
	GetMe(context.Context, *model.GetMeRequest) (*model.GetMeResponse, error)
	GetUser(context.Context, *model.GetUserRequest) (*model.GetUserResponse, error)
	UpdateUser(context.Context, *model.UpdateUserRequest) (*model.UpdateUserResponse, error)
	GetMyBadges(context.Context, *model.GetMyBadgesRequest) (*model.GetMyBadgesResponse, error)
	GetTransactions(context.Context, *model.GetTransactionsRequest) (*model.GetTransactionsResponse, error)
	UploadImage(context.Context, *model.UploadImageRequest) (*model.UploadImageResponse, error)
}

type userDomain struct {
	userRepo        repository.UserRepository
	transactionRepo repository.TransactionRepository
	badgeRepo       repository.BadgeRepository
	badgeDetailRepo repository.BadgeDetailRepository
	ledger          *ledger.Ledger
	storage         storage.Storage
}

func NewUserDomain(
	userRepo repository.UserRepository,
	transactionRepo repository.TransactionRepository,
	badgeRepo repository.BadgeRepository,
	badgeDetailRepo repository.BadgeDetailRepository,
	ledger *ledger.Ledger,
	storage storage.Storage,
) UserDomain {
	return &userDomain{
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		badgeRepo:       badgeRepo,
		badgeDetailRepo: badgeDetailRepo,
		ledger:          ledger,
		storage:         storage,
	}
}

func (d *userDomain) GetMe(
	ctx context.Context, req *model.GetMeRequest,
) (*model.GetMeResponse, error) {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	rank, err := d.ledger.Rank(ctx, user.XP)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get rank of user: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetMeResponse(model.ConvertUser(user, true, rank))
	return &resp, nil
}

func (d *userDomain) GetUser(
	ctx context.Context, req *model.GetUserRequest,
) (*model.GetUserResponse, error) {
	user, err := d.userRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	rank, err := d.ledger.Rank(ctx, user.XP)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get rank of user: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetUserResponse(model.ConvertUser(user, false, rank))
	return &resp, nil
}

func (d *userDomain) UpdateUser(
	ctx context.Context, req *model.UpdateUserRequest,
) (*model.UpdateUserResponse, error) {
	if req.Name != "" {
		_, err := d.userRepo.GetByName(ctx, req.Name)
		if err == nil {
			return nil, errorx.New(errorx.AlreadyExists, "This username is already taken")
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get user by name: %v", err)
			return nil, errorx.Unknown
		}
	}

	err := d.userRepo.UpdateByID(ctx, xcontext.RequestUserID(ctx), &entity.User{
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateUserResponse{}, nil
}

func (d *userDomain) GetMyBadges(
	ctx context.Context, req *model.GetMyBadgesRequest,
) (*model.GetMyBadgesResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	details, err := d.badgeDetailRepo.GetAll(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get badge details: %v", err)
		return nil, errorx.Unknown
	}

	badges := []model.Badge{}
	for i := range details {
		b, err := d.badgeRepo.GetByID(ctx, details[i].BadgeID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get badge %s: %v", details[i].BadgeID, err)
			return nil, errorx.Unknown
		}

		badges = append(badges, model.ConvertBadge(b, &details[i]))
	}

	if err := d.badgeDetailRepo.UpdateNotification(ctx, userID); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot update badge notification: %v", err)
	}

	return &model.GetMyBadgesResponse{Badges: badges}, nil
}

func (d *userDomain) GetTransactions(
	ctx context.Context, req *model.GetTransactionsRequest,
) (*model.GetTransactionsResponse, error) {
	if req.Limit == 0 {
		req.Limit = 50
	}

	if req.Limit < 0 || req.Limit > 100 {
		return nil, errorx.New(errorx.BadRequest, "Limit must be between 1 and 100")
	}

	transactions, err := d.transactionRepo.GetListByUserID(
		ctx, xcontext.RequestUserID(ctx), req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get transactions: %v", err)
		return nil, errorx.Unknown
	}

	clientTxs := []model.Transaction{}
	for i := range transactions {
		clientTxs = append(clientTxs, model.ConvertTransaction(&transactions[i]))
	}

	return &model.GetTransactionsResponse{Transactions: clientTxs}, nil
}

func (d *userDomain) UploadImage(
	ctx context.Context, req *model.UploadImageRequest,
) (*model.UploadImageResponse, error) {
	uresps, err := common.ProcessImage(ctx, d.storage, "image")
	if err != nil {
		return nil, err
	}

	return &model.UploadImageResponse{URL: uresps[0].Url}, nil
}
