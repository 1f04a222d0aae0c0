package model

type AccessToken struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

type RefreshToken struct {
	Family  string
	Counter uint64
}

type User struct {
	ID            string `json:"id"`
	WalletAddress string `json:"wallet_address,omitempty"`
	Name          string `json:"name"`
	Role          string `json:"role,omitempty"`
	AvatarURL     string `json:"avatar_url"`

	XP            int64   `json:"xp"`
	Level         int     `json:"level"`
	XPToNextLevel int64   `json:"xp_to_next_level"`
	Tier          string  `json:"tier"`
	RewardPoints  int64   `json:"reward_points"`
	UsdcBalance   float64 `json:"usdc_balance"`
	Streak        int     `json:"streak"`
	Rank          int64   `json:"rank,omitempty"`
}

type Quest struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Category           string   `json:"category"`
	Difficulty         string   `json:"difficulty"`
	Tier               string   `json:"tier"`
	Duration           string   `json:"duration"`
	Requirements       []string `json:"requirements"`
	VerificationMethod string   `json:"verification_method"`
	ImageURL           string   `json:"image_url"`

	XPReward      int64    `json:"xp_reward"`
	UsdcReward    *float64 `json:"usdc_reward,omitempty"`
	VoucherReward string   `json:"voucher_reward,omitempty"`
	CreatorCost   int64    `json:"creator_cost"`
	JoinCost      int64    `json:"join_cost"`

	Status          string `json:"status"`
	Participants    int64  `json:"participants"`
	MaxParticipants *int64 `json:"max_participants,omitempty"`
	CreatedBy       string `json:"created_by"`

	CreatedAt string `json:"created_at"`
	StartedAt string `json:"started_at,omitempty"`
	EndedAt   string `json:"ended_at,omitempty"`
}

type Participation struct {
	QuestID           string `json:"quest_id"`
	UserID            string `json:"user_id"`
	Status            string `json:"status"`
	EvidenceSubmitted bool   `json:"evidence_submitted"`
	JoinedAt          string `json:"joined_at"`
}

type Submission struct {
	ID           string `json:"id"`
	QuestID      string `json:"quest_id"`
	UserID       string `json:"user_id"`
	Evidence     string `json:"evidence"`
	VotesFor     int    `json:"votes_for"`
	VotesAgainst int    `json:"votes_against"`
	Status       string `json:"status"`

	// TimeRemaining is the number of seconds until the voting window
	// closes, zero once it has.
	TimeRemaining int64 `json:"time_remaining"`
}

type Transaction struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Amount      int64  `json:"amount"`
	QuestID     string `json:"quest_id,omitempty"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

type Reward struct {
	ID        string  `json:"id"`
	QuestID   string  `json:"quest_id"`
	Type      string  `json:"type"`
	Amount    float64 `json:"amount"`
	ClaimedAt string  `json:"claimed_at,omitempty"`
}

type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Level       int    `json:"level"`
	Description string `json:"description"`
	IconURL     string `json:"icon_url"`
	EarnedAt    string `json:"earned_at,omitempty"`
}

type LeaderBoardEntry struct {
	Rank int64 `json:"rank"`
	User User  `json:"user"`
	XP   int64 `json:"xp"`
}
