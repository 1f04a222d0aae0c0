package model

// Wallet Login
type WalletLoginRequest struct {
	Address string `json:"address"`
}

type WalletLoginResponse struct {
	Address string `json:"address" session:"address"`
	Nonce   string `json:"nonce" session:"nonce"`
}

// Wallet Verify
type WalletVerifyRequest struct {
	Signature string `json:"signature"`

	SessionNonce   string `json:"-" session:"nonce,delete"`
	SessionAddress string `json:"-" session:"address,delete"`
}

type WalletVerifyResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Refresh Token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
