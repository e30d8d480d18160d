package dto

// LoginRequest is the password-grant-shaped login form. The username
// field carries the account email; the name is kept for protocol
// compatibility.
type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// TokenResponse is the issued bearer token descriptor.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
