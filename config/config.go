package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	ApiServer ServerConfigs
	Database  DatabaseConfigs
	Redis     RedisConfigs
	Auth      AuthConfigs
	Session   SessionConfigs
	Storage   S3Configs
	File      FileConfigs
	Quest     QuestConfigs
	Search    SearchConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host      string
	Port      string
	AllowCORS []string
}

func (s ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type RedisConfigs struct {
	Addr string
}

type AuthConfigs struct {
	TokenSecret  string
	AccessToken  TokenConfigs
	RefreshToken TokenConfigs
}

type TokenConfigs struct {
	Name       string
	Expiration time.Duration
}

type SessionConfigs struct {
	Secret string
	Name   string
}

type S3Configs struct {
	Region         string
	Endpoint       string
	PublicEndpoint string
	AccessKey      string
	SecretKey      string
	Bucket         string
	SSLDisabled    bool
}

type FileConfigs struct {
	MaxMemory int64
	MaxSize   int64
	// AvatarCropHeight and AvatarCropWidth is the size of the original
	// avatar. Smaller variants are derived from it.
	AvatarCropHeight uint
	AvatarCropWidth  uint
}

type QuestConfigs struct {
	// SignupBonus is the reward points granted to a user on the first
	// wallet verification.
	SignupBonus int64

	// ApproveThreshold and RejectThreshold are the vote counts at which a
	// pending submission is finalized. Approval is checked first.
	ApproveThreshold int
	RejectThreshold  int

	// VotingWindow is how long a submission accepts votes before the
	// expiry job rejects it.
	VotingWindow time.Duration
}

type SearchConfigs struct {
	IndexDir string
}
