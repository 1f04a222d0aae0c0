package model

type GetMeRequest struct{}

type GetMeResponse User

type GetUserRequest struct {
	ID string `json:"id"`
}

type GetUserResponse User

type UpdateUserRequest struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

type UpdateUserResponse struct{}

type GetMyBadgesRequest struct{}

type GetMyBadgesResponse struct {
	Badges []Badge `json:"badges"`
}

type GetTransactionsRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetTransactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
}

type UploadImageRequest struct{}

type UploadImageResponse struct {
	URL string `json:"url"`
}
