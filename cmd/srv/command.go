package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "QuestClash"
	app.Usage = ""
	app.Before = func(*cli.Context) error {
		s.loadConfig()
		s.loadLogger()
		return nil
	}
	app.Commands = []*cli.Command{
		{
			Action:      server.startApi,
			Name:        "api",
			Usage:       "Start the api service",
			Category:    "Api",
			Description: `Used to start the main service that includes all apis.`,
		},
		{
			Action:      server.startCron,
			Name:        "cron",
			Usage:       "Start the cron service",
			Category:    "Worker",
			Description: `Used to start the worker that finalizes expired submissions and completes ended quests.`,
		},
		{
			Action:   server.startMigrate,
			Name:     "migrate",
			Usage:    "Apply a single database migration",
			Category: "Database",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "version", Usage: "migration version to apply", Required: true},
			},
		},
		{
			Action:      server.startSeed,
			Name:        "seed",
			Usage:       "Seed demo users, quests, and badges",
			Category:    "Admin",
			Description: `Used to fill a development database with demo data.`,
		},
		{
			Action:   server.startAssignPoints,
			Name:     "assign-points",
			Usage:    "Grant reward points to a user",
			Category: "Admin",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "user", Usage: "user id", Required: true},
				&cli.Int64Flag{Name: "amount", Usage: "points to grant", Required: true},
			},
		},
		{
			Action:   server.startClearUser,
			Name:     "clear-user",
			Usage:    "Remove a user and everything it owns",
			Category: "Admin",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "user", Usage: "user id", Required: true},
			},
		},
		{
			Action:   server.startStats,
			Name:     "stats",
			Usage:    "Print platform counters",
			Category: "Admin",
		},
	}

	s.app = app
}
