package model

type GetPendingSubmissionsRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetPendingSubmissionsResponse struct {
	Submissions []Submission `json:"submissions"`
}

type VoteRequest struct {
	SubmissionID string `json:"submission_id"`
	Approve      bool   `json:"approve"`
}

type VoteResponse struct {
	Status       string `json:"status"`
	VotesFor     int    `json:"votes_for"`
	VotesAgainst int    `json:"votes_against"`
}
