package main

import (
	"context"
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/questclash/backend/internal/domain"
	"github.com/questclash/backend/internal/domain/badge"
	"github.com/questclash/backend/internal/domain/ledger"
	"github.com/questclash/backend/internal/domain/search"
	"github.com/questclash/backend/internal/domain/statistic"
	"github.com/questclash/backend/internal/repository"
	"github.com/questclash/backend/migration"
	"github.com/questclash/backend/pkg/authenticator"
	"github.com/questclash/backend/pkg/logger"
	"github.com/questclash/backend/pkg/router"
	"github.com/questclash/backend/pkg/session"
	"github.com/questclash/backend/pkg/storage"
	"github.com/questclash/backend/pkg/xcontext"
	"github.com/questclash/backend/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type srv struct {
	ctx context.Context
	app *cli.App

	userRepo         repository.UserRepository
	questRepo        repository.QuestRepository
	participantRepo  repository.ParticipantRepository
	submissionRepo   repository.SubmissionRepository
	voteRepo         repository.VoteRepository
	transactionRepo  repository.TransactionRepository
	rewardRepo       repository.RewardRepository
	badgeRepo        repository.BadgeRepository
	badgeDetailRepo  repository.BadgeDetailRepository
	refreshTokenRepo repository.RefreshTokenRepository

	ledger       *ledger.Ledger
	badgeManager *badge.Manager
	leaderboard  statistic.Leaderboard
	searcher     search.Searcher

	authDomain      domain.AuthDomain
	userDomain      domain.UserDomain
	questDomain     domain.QuestDomain
	voteDomain      domain.VoteDomain
	rewardDomain    domain.RewardDomain
	statisticDomain domain.StatisticDomain

	redisClient xredis.Client
	storage     storage.Storage
	router      *router.Router
	server      *http.Server
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if xcontext.Configs(s.ctx).Env == "local" {
		level = logger.DEBUG
	}

	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(level))
}

func (s *srv) newDatabase() *gorm.DB {
	cfg := xcontext.Configs(s.ctx).Database
	db, err := gorm.Open(mysql.Open(cfg.ConnectionString()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		panic(err)
	}

	return db
}

func (s *srv) migrateDB() {
	if err := migration.Migrate(s.ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadAuthenticators() {
	cfg := xcontext.Configs(s.ctx)
	s.ctx = xcontext.WithTokenEngine(s.ctx, authenticator.NewTokenEngine(cfg.Auth.TokenSecret))
	s.ctx = xcontext.WithSessionStore(s.ctx,
		session.NewCookieStore(cfg.Session.Name, []byte(cfg.Session.Secret)))
}

func (s *srv) loadRedisClient() {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadStorage() {
	s.storage = storage.NewS3Storage(xcontext.Configs(s.ctx).Storage)
}

func (s *srv) loadSearcher() {
	s.searcher = search.NewBleveIndex(s.ctx)
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.questRepo = repository.NewQuestRepository()
	s.participantRepo = repository.NewParticipantRepository()
	s.submissionRepo = repository.NewSubmissionRepository()
	s.voteRepo = repository.NewVoteRepository()
	s.transactionRepo = repository.NewTransactionRepository()
	s.rewardRepo = repository.NewRewardRepository()
	s.badgeRepo = repository.NewBadgeRepository()
	s.badgeDetailRepo = repository.NewBadgeDetailRepository()
	s.refreshTokenRepo = repository.NewRefreshTokenRepository()
}

func (s *srv) loadBadgeManager() {
	s.badgeManager = badge.NewManager(
		s.badgeRepo,
		s.badgeDetailRepo,
		badge.NewQuestWarriorBadgeScanner(s.badgeRepo, s.participantRepo),
		badge.NewQuestCreatorBadgeScanner(s.badgeRepo, s.questRepo),
		badge.NewStreakMasterBadgeScanner(s.badgeRepo, s.userRepo),
		badge.NewCommunityHelperBadgeScanner(s.badgeRepo, s.voteRepo),
	)
}

func (s *srv) loadDomains() {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}

	s.ledger = ledger.New(s.userRepo, s.transactionRepo, node)
	s.leaderboard = statistic.New(s.transactionRepo, s.redisClient)

	s.authDomain = domain.NewAuthDomain(s.userRepo, s.refreshTokenRepo, s.ledger, s.badgeManager)
	s.userDomain = domain.NewUserDomain(
		s.userRepo, s.transactionRepo, s.badgeRepo, s.badgeDetailRepo, s.ledger, s.storage)
	s.questDomain = domain.NewQuestDomain(
		s.questRepo, s.participantRepo, s.submissionRepo, s.userRepo,
		s.ledger, s.badgeManager, s.searcher)
	s.voteDomain = domain.NewVoteDomain(
		s.submissionRepo, s.voteRepo, s.questRepo, s.participantRepo,
		s.rewardRepo, s.ledger, s.badgeManager, s.leaderboard)
	s.rewardDomain = domain.NewRewardDomain(s.rewardRepo, s.ledger)
	s.statisticDomain = domain.NewStatisticDomain(s.userRepo, s.leaderboard)
}

func (s *srv) loadConfig() {
	s.ctx = xcontext.WithConfigs(context.Background(), loadConfigs())
}
