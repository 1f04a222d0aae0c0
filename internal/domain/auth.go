package domain

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/questclash/backend/internal/domain/badge"
	"github.com/questclash/backend/internal/domain/ledger"
	"github.com/questclash/backend/internal/entity"
	"github.com/questclash/backend/internal/model"
	"github.com/questclash/backend/internal/repository"
	"github.com/questclash/backend/pkg/crypto"
	"github.com/questclash/backend/pkg/errorx"
	"github.com/questclash/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type AuthDomain interface {
	WalletLogin(context.Context, *model.WalletLoginRequest) (*model.WalletLoginResponse, error)
	WalletVerify(context.Context, *model.WalletVerifyRequest) (*model.WalletVerifyResponse, error)
	Refresh(context.Context, *model.RefreshTokenRequest) (*model.RefreshTokenResponse, error)
}

type authDomain struct {
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	ledger           *ledger.Ledger
	badgeManager     *badge.Manager
}

func NewAuthDomain(
	userRepo repository.UserRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	ledger *ledger.Ledger,
	badgeManager *badge.Manager,
) AuthDomain {
	return &authDomain{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		ledger:           ledger,
		badgeManager:     badgeManager,
	}
}

func (d *authDomain) WalletLogin(
	ctx context.Context, req *model.WalletLoginRequest,
) (*model.WalletLoginResponse, error) {
	nonce, err := crypto.GenerateRandomString()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate random string: %v", err)
		return nil, errorx.Unknown
	}

	return &model.WalletLoginResponse{Address: req.Address, Nonce: nonce}, nil
}

func (d *authDomain) WalletVerify(
	ctx context.Context, req *model.WalletVerifyRequest,
) (*model.WalletVerifyResponse, error) {
	if err := d.verifyWalletAnswer(ctx, req.Signature, req.SessionNonce, req.SessionAddress); err != nil {
		return nil, err
	}

	user, err := d.userRepo.GetByWalletAddress(ctx, req.SessionAddress)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get user by wallet address: %v", err)
			return nil, errorx.Unknown
		}

		user = &entity.User{
			Base:          entity.Base{ID: uuid.NewString()},
			WalletAddress: sql.NullString{Valid: true, String: req.SessionAddress},
			Name:          req.SessionAddress,
			Role:          entity.UserRole,
		}

		if err := d.createUser(ctx, user); err != nil {
			return nil, err
		}
	}

	if err := d.ledger.TouchLogin(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update login streak: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.badgeManager.
		WithBadges(badge.StreakMasterBadgeName).
		ScanAndGive(ctx, user.ID); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot scan streak badge: %v", err)
	}

	refreshToken, err := d.generateRefreshToken(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate refresh token: %v", err)
		return nil, errorx.Unknown
	}

	accessToken, err := xcontext.TokenEngine(ctx).Generate(
		xcontext.Configs(ctx).Auth.AccessToken.Expiration,
		model.AccessToken{
			ID:      user.ID,
			Name:    user.Name,
			Address: user.WalletAddress.String,
		})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	user, err = d.userRepo.GetByID(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot reload user: %v", err)
		return nil, errorx.Unknown
	}

	rank, err := d.ledger.Rank(ctx, user.XP)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get rank of user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.WalletVerifyResponse{
		User:         model.ConvertUser(user, true, rank),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (d *authDomain) Refresh(
	ctx context.Context, req *model.RefreshTokenRequest,
) (*model.RefreshTokenResponse, error) {
	// Verify the refresh token from client.
	refreshToken := model.RefreshToken{}
	err := xcontext.TokenEngine(ctx).Verify(req.RefreshToken, &refreshToken)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Failed to verify refresh token: %v", err)
		return nil, errorx.Unknown
	}

	// Load the storage refresh token from database.
	hashedFamily := crypto.SHA256([]byte(refreshToken.Family))
	storageToken, err := d.refreshTokenRepo.Get(ctx, hashedFamily)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get refresh token family %s: %v", refreshToken.Family, err)
		return nil, errorx.Unknown
	}

	// Check the expiration of storage refresh token.
	if storageToken.Expiration.Before(time.Now()) {
		return nil, errorx.New(errorx.TokenExpired, "Your refresh token is expired")
	}

	// Check if refresh token is stolen or invalid.
	// NOTE: DO NOT create transaction here. The delete and rotate query is independent.
	if refreshToken.Counter != storageToken.Counter {
		err = d.refreshTokenRepo.Delete(ctx, hashedFamily)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot delete refresh token: %v", err)
			return nil, errorx.Unknown
		}

		return nil, errorx.New(errorx.StolenDectected,
			"Your refresh token will be revoked because it is detected as stolen")
	}

	// Rotate the refresh token by increasing counter by 1.
	err = d.refreshTokenRepo.Rotate(ctx, hashedFamily)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot rotate the refresh token: %v", err)
		return nil, errorx.Unknown
	}

	// Everything is ok, generate refresh token and access token.
	newRefreshToken, err := xcontext.TokenEngine(ctx).Generate(
		xcontext.Configs(ctx).Auth.RefreshToken.Expiration,
		model.RefreshToken{
			Family:  refreshToken.Family,
			Counter: refreshToken.Counter + 1,
		})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate refresh token: %v", err)
		return nil, errorx.Unknown
	}

	user, err := d.userRepo.GetByID(ctx, storageToken.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	newAccessToken, err := xcontext.TokenEngine(ctx).Generate(
		xcontext.Configs(ctx).Auth.AccessToken.Expiration,
		model.AccessToken{
			ID:      user.ID,
			Name:    user.Name,
			Address: user.WalletAddress.String,
		})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RefreshTokenResponse{
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

func (d *authDomain) createUser(ctx context.Context, user *entity.User) error {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.userRepo.Create(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return errorx.Unknown
	}

	signupBonus := xcontext.Configs(ctx).Quest.SignupBonus
	if signupBonus > 0 {
		err := d.ledger.AddRewardPoints(
			ctx, user.ID, signupBonus, entity.TxSignupBonus, "", "Welcome bonus")
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot grant signup bonus: %v", err)
			return errorx.Unknown
		}
	}

	ctx = xcontext.WithCommitDBTransaction(ctx)
	return nil
}

func (d *authDomain) generateRefreshToken(ctx context.Context, userID string) (string, error) {
	refreshTokenFamily, err := crypto.GenerateRandomString()
	if err != nil {
		return "", err
	}

	refreshToken, err := xcontext.TokenEngine(ctx).Generate(
		xcontext.Configs(ctx).Auth.RefreshToken.Expiration,
		model.RefreshToken{
			Family:  refreshTokenFamily,
			Counter: 0,
		})
	if err != nil {
		return "", err
	}

	err = d.refreshTokenRepo.Create(ctx, &entity.RefreshToken{
		UserID:     userID,
		Family:     crypto.SHA256([]byte(refreshTokenFamily)),
		Counter:    0,
		Expiration: time.Now().Add(xcontext.Configs(ctx).Auth.RefreshToken.Expiration),
	})
	if err != nil {
		return "", err
	}

	return refreshToken, nil
}

func (d *authDomain) verifyWalletAnswer(ctx context.Context, hexSignature, sessionNonce, sessionAddress string) error {
	if sessionNonce == "" || sessionAddress == "" {
		return errorx.New(errorx.Unauthenticated, "Please call the login API before verifying")
	}

	hash := accounts.TextHash([]byte(sessionNonce))
	signature, err := hexutil.Decode(hexSignature)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot decode signature: %v", err)
		return errorx.New(errorx.BadRequest, "Invalid signature")
	}

	if len(signature) != ethcrypto.SignatureLength {
		return errorx.New(errorx.BadRequest, "Invalid signature")
	}

	if signature[ethcrypto.RecoveryIDOffset] == 27 || signature[ethcrypto.RecoveryIDOffset] == 28 {
		signature[ethcrypto.RecoveryIDOffset] -= 27 // Transform yellow paper V from 27/28 to 0/1
	}

	recovered, err := ethcrypto.SigToPub(hash, signature)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot recover signature to address: %v", err)
		return errorx.Unknown
	}

	recoveredAddr := ethcrypto.PubkeyToAddress(*recovered)
	if !bytes.Equal(recoveredAddr.Bytes(), ethcommon.HexToAddress(sessionAddress).Bytes()) {
		return errorx.New(errorx.BadRequest, "Mismatched address")
	}

	return nil
}
