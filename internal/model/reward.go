package model

type GetPendingRewardsRequest struct{}

type GetPendingRewardsResponse struct {
	Rewards []Reward `json:"rewards"`
}

type ClaimRewardRequest struct {
	RewardID string `json:"reward_id"`
}

type ClaimRewardResponse struct {
	Reward Reward `json:"reward"`
}

type GetRewardHistoryRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetRewardHistoryResponse struct {
	Rewards []Reward `json:"rewards"`
}
