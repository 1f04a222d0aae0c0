package model

type GetLeaderBoardRequest struct {
	Period string `json:"period"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetLeaderBoardResponse struct {
	LeaderBoard []LeaderBoardEntry `json:"leaderboard"`

	// MyRank is only filled for authenticated requests. Zero means the
	// caller is not on the board for this period.
	MyRank int64 `json:"my_rank,omitempty"`
}
