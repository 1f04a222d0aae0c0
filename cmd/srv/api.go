package main

import (
	"context"
	"log"
	"net/http"

	"github.com/questclash/backend/internal/middleware"
	"github.com/questclash/backend/pkg/router"
	"github.com/questclash/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadAuthenticators()
	s.loadRedisClient()
	s.loadStorage()
	s.loadSearcher()
	defer s.searcher.Close()
	s.loadRepos()
	s.loadBadgeManager()
	s.loadDomains()
	s.loadRouter()

	cfg := xcontext.Configs(s.ctx)
	s.server = &http.Server{
		Addr:    cfg.ApiServer.Address(),
		Handler: s.router.Handler(),
	}

	log.Printf("Starting server on port: %s\n", cfg.ApiServer.Port)
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}
	log.Printf("server stop")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)
	s.router.AddCloser(middleware.Logger())
	s.router.Before(middleware.AllowCORS())
	s.router.Before(middleware.WithAuthentication())

	// Auth API. The login response drops the challenge into the session,
	// verify consumes it.
	authRouter := s.router.Branch()
	{
		router.GET(authRouter, "/wallet/login", s.authDomain.WalletLogin)
		router.GET(authRouter, "/wallet/verify", s.authDomain.WalletVerify)
		router.POST(authRouter, "/refresh", s.authDomain.Refresh)
	}

	// These following APIs need authentication.
	authedRouter := s.router.Branch()
	authedRouter.Before(middleware.MustAuthenticate())
	{
		// User API
		router.GET(authedRouter, "/getMe", s.userDomain.GetMe)
		router.POST(authedRouter, "/updateUser", s.userDomain.UpdateUser)
		router.GET(authedRouter, "/getMyBadges", s.userDomain.GetMyBadges)
		router.GET(authedRouter, "/getTransactions", s.userDomain.GetTransactions)
		router.POST(authedRouter, "/uploadImage", s.userDomain.UploadImage)

		// Quest API
		router.POST(authedRouter, "/createQuest", s.questDomain.Create)
		router.POST(authedRouter, "/updateQuest", s.questDomain.Update)
		router.POST(authedRouter, "/deleteQuest", s.questDomain.Delete)
		router.POST(authedRouter, "/joinQuest", s.questDomain.Join)
		router.POST(authedRouter, "/submitEvidence", s.questDomain.SubmitEvidence)
		router.GET(authedRouter, "/getMyQuests", s.questDomain.GetMyQuests)
		router.GET(authedRouter, "/getParticipation", s.questDomain.GetParticipation)
		router.GET(authedRouter, "/getQuestParticipants", s.questDomain.GetQuestParticipants)

		// Vote API
		router.GET(authedRouter, "/getPendingSubmissions", s.voteDomain.GetPendingSubmissions)
		router.POST(authedRouter, "/vote", s.voteDomain.Vote)

		// Reward API
		router.GET(authedRouter, "/getPendingRewards", s.rewardDomain.GetPending)
		router.POST(authedRouter, "/claimReward", s.rewardDomain.Claim)
		router.GET(authedRouter, "/getRewardHistory", s.rewardDomain.GetHistory)
	}

	// Public API.
	router.GET(s.router, "/", homeHandle)
	router.GET(s.router, "/getQuest", s.questDomain.Get)
	router.GET(s.router, "/getQuests", s.questDomain.GetList)
	router.GET(s.router, "/getUser", s.userDomain.GetUser)
	router.GET(s.router, "/getLeaderBoard", s.statisticDomain.GetLeaderBoard)
}

type homeRequest struct{}

type homeResponse struct {
	Status string `json:"status"`
}

func homeHandle(context.Context, *homeRequest) (*homeResponse, error) {
	return &homeResponse{Status: "ok"}, nil
}
