package main

import (
	"database/sql"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/questclash/backend/internal/domain"
	"github.com/questclash/backend/internal/domain/ledger"
	"github.com/questclash/backend/internal/entity"
	"github.com/questclash/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) loadLedger() {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}

	s.ledger = ledger.New(s.userRepo, s.transactionRepo, node)
}

func (s *srv) startSeed(*cli.Context) error {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadRepos()
	s.loadLedger()

	users := []*entity.User{
		{
			Base:          entity.Base{ID: uuid.NewString()},
			WalletAddress: sql.NullString{Valid: true, String: "0x71C7656EC7ab88b098defB751B7401B5f6d8976F"},
			Name:          "alice",
			Role:          entity.UserRole,
		},
		{
			Base:          entity.Base{ID: uuid.NewString()},
			WalletAddress: sql.NullString{Valid: true, String: "0x2546BcD3c84621e976D8185a91A922aE77ECEc30"},
			Name:          "bob",
			Role:          entity.UserRole,
		},
		{
			Base:          entity.Base{ID: uuid.NewString()},
			WalletAddress: sql.NullString{Valid: true, String: "0xbDA5747bFD65F08deb54cb465eB87D40e51B197E"},
			Name:          "carol",
			Role:          entity.AdminRole,
		},
	}

	for _, u := range users {
		if err := s.userRepo.Create(s.ctx, u); err != nil {
			return err
		}

		err := s.ledger.AddRewardPoints(
			s.ctx, u.ID, xcontext.Configs(s.ctx).Quest.SignupBonus,
			entity.TxSignupBonus, "", "Welcome bonus")
		if err != nil {
			return err
		}
	}

	quests := []*entity.Quest{
		{
			Title:              "Run 5km this week",
			Description:        "Track a single 5km run and upload the screenshot.",
			Category:           entity.CategoryFitness,
			Difficulty:         entity.DifficultyMedium,
			Tier:               entity.TierBronze,
			Duration:           "7 days",
			VerificationMethod: entity.VerificationPhoto,
			XPReward:           200,
		},
		{
			Title:              "Teach someone a new skill",
			Description:        "Record a short clip of your lesson.",
			Category:           entity.CategoryLearning,
			Difficulty:         entity.DifficultyEasy,
			Tier:               entity.TierBronze,
			Duration:           "3 days",
			VerificationMethod: entity.VerificationVideo,
			XPReward:           300,
		},
	}

	for i, q := range quests {
		q.Base = entity.Base{ID: uuid.NewString()}
		q.CreatedBy = users[i%len(users)].ID
		q.CreatorCost = domain.CreatorCost(users[i%len(users)].RewardPoints)
		q.JoinCost = domain.JoinCost(q.CreatorCost)
		q.Status = entity.QuestActive

		if err := s.questRepo.Create(s.ctx, q); err != nil {
			return err
		}
	}

	fmt.Printf("seeded %d users and %d quests\n", len(users), len(quests))
	return nil
}

func (s *srv) startAssignPoints(cctx *cli.Context) error {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.loadRepos()
	s.loadLedger()

	userID := cctx.String("user")
	amount := cctx.Int64("amount")

	err := s.ledger.AddRewardPoints(
		s.ctx, userID, amount, entity.TxAdminGrant, "", "Granted by admin")
	if err != nil {
		return err
	}

	fmt.Printf("granted %d points to %s\n", amount, userID)
	return nil
}

func (s *srv) startClearUser(cctx *cli.Context) error {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.loadRepos()

	userID := cctx.String("user")

	ctx := xcontext.WithDBTransaction(s.ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := s.participantRepo.DeleteByUserID(ctx, userID); err != nil {
		return err
	}

	if err := s.transactionRepo.DeleteByUserID(ctx, userID); err != nil {
		return err
	}

	if err := s.refreshTokenRepo.DeleteByUserID(ctx, userID); err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	xcontext.WithCommitDBTransaction(ctx)

	fmt.Printf("removed user %s\n", userID)
	return nil
}

func (s *srv) startStats(*cli.Context) error {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.loadRepos()

	userCount, err := s.userRepo.Count(s.ctx)
	if err != nil {
		return err
	}

	fmt.Printf("users: %d\n", userCount)
	return nil
}
