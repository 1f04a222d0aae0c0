package model

type CreateQuestRequest struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Category           string   `json:"category"`
	Difficulty         string   `json:"difficulty"`
	Tier               string   `json:"tier"`
	Duration           string   `json:"duration"`
	Requirements       []string `json:"requirements"`
	VerificationMethod string   `json:"verification_method"`
	ImageURL           string   `json:"image_url"`

	XPReward        int64    `json:"xp_reward"`
	UsdcReward      *float64 `json:"usdc_reward"`
	VoucherReward   string   `json:"voucher_reward"`
	MaxParticipants *int64   `json:"max_participants"`
	EndedAt         string   `json:"ended_at"`
}

type CreateQuestResponse struct {
	ID string `json:"id"`
}

type GetQuestRequest struct {
	ID string `json:"id"`
}

type GetQuestResponse Quest

type GetQuestsRequest struct {
	Q          string `json:"q"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
	Tier       string `json:"tier"`
	Offset     int    `json:"offset"`
	Limit      int    `json:"limit"`
}

type GetQuestsResponse struct {
	Quests []Quest `json:"quests"`
}

type UpdateQuestRequest struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	ImageURL     string   `json:"image_url"`
	EndedAt      string   `json:"ended_at"`
}

type UpdateQuestResponse struct{}

type DeleteQuestRequest struct {
	ID string `json:"id"`
}

type DeleteQuestResponse struct{}

type JoinQuestRequest struct {
	QuestID string `json:"quest_id"`
}

type JoinQuestResponse struct{}

type SubmitEvidenceRequest struct {
	QuestID  string `json:"quest_id"`
	Evidence string `json:"evidence"`
}

type SubmitEvidenceResponse struct {
	SubmissionID string `json:"submission_id"`
}

type GetMyQuestsRequest struct{}

type GetMyQuestsResponse struct {
	Created []Quest         `json:"created"`
	Joined  []Participation `json:"joined"`
}

type GetParticipationRequest struct {
	QuestID string `json:"quest_id"`
}

type GetParticipationResponse Participation

type GetQuestParticipantsRequest struct {
	QuestID string `json:"quest_id"`
}

type GetQuestParticipantsResponse struct {
	Participants []Participation `json:"participants"`
}
