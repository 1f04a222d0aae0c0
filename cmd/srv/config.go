package main

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/questclash/backend/config"
)

func loadConfigs() config.Configs {
	return config.Configs{
		Env: getEnv("ENV", "local"),
		ApiServer: config.ServerConfigs{
			Host:      getEnv("HOST", "localhost"),
			Port:      getEnv("PORT", "8080"),
			AllowCORS: strings.Split(getEnv("ALLOW_CORS", "*"), ","),
		},
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			Database: getEnv("MYSQL_DATABASE", "questclash"),
			User:     getEnv("MYSQL_USER", "root"),
			Password: getEnv("MYSQL_PASSWORD", "mysql"),
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDRESS", "localhost:6379"),
		},
		Auth: config.AuthConfigs{
			TokenSecret: getEnv("TOKEN_SECRET", "token_secret"),
			AccessToken: config.TokenConfigs{
				Name:       "questclash_token",
				Expiration: getDuration("ACCESS_TOKEN_DURATION", time.Hour),
			},
			RefreshToken: config.TokenConfigs{
				Name:       "questclash_refresh_token",
				Expiration: getDuration("REFRESH_TOKEN_DURATION", 30*24*time.Hour),
			},
		},
		Session: config.SessionConfigs{
			Secret: getEnv("AUTH_SESSION_SECRET", "secret"),
			Name:   "auth_session",
		},
		Storage: config.S3Configs{
			Region:         getEnv("STORAGE_REGION", "auto"),
			Endpoint:       getEnv("STORAGE_ENDPOINT", "http://localhost:9000"),
			PublicEndpoint: getEnv("STORAGE_PUBLIC_ENDPOINT", "http://localhost:9000"),
			AccessKey:      getEnv("STORAGE_ACCESS_KEY", "access_key"),
			SecretKey:      getEnv("STORAGE_SECRET_KEY", "secret_key"),
			Bucket:         getEnv("STORAGE_BUCKET", "questclash"),
			SSLDisabled:    getEnv("STORAGE_SSL_DISABLE", "true") == "true",
		},
		File: config.FileConfigs{
			MaxMemory: getInt64("MAX_MEMORY_MULTIPART_FORM", 2<<20),
			MaxSize:   getInt64("MAX_FILE_SIZE", 2<<20),

			AvatarCropHeight: 512,
			AvatarCropWidth:  512,
		},
		Quest: config.QuestConfigs{
			SignupBonus:      getInt64("QUEST_SIGNUP_BONUS", 500),
			ApproveThreshold: int(getInt64("QUEST_APPROVE_THRESHOLD", 5)),
			RejectThreshold:  int(getInt64("QUEST_REJECT_THRESHOLD", 3)),
			VotingWindow:     getDuration("QUEST_VOTING_WINDOW", 5*time.Minute),
		},
		Search: config.SearchConfigs{
			IndexDir: getEnv("SEARCH_INDEX_DIR", "searchindex"),
		},
	}
}

func getEnv(key, def string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return def
}

func getInt64(key string, def int64) int64 {
	value, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil {
		return def
	}

	return value
}

func getDuration(key string, def time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return def
	}

	return value
}
