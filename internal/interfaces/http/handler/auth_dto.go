package handler

import "time"

// LoginRequest represents the request body for admin login
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=100" example:"admin"`
	Password string `json:"password" binding:"required,max=128" example:"s3cret-pass"`
}

// TokenResponse represents the issued access token
type TokenResponse struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType" example:"Bearer"`
	ExpiresAt   time.Time `json:"expiresAt"`
	ExpiresIn   int64     `json:"expiresIn" example:"43200"`
}

// CurrentUserResponse describes the caller of an authenticated request
type CurrentUserResponse struct {
	Username  string    `json:"username" example:"admin"`
	Role      string    `json:"role" example:"admin"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// LoginResponse is the documented envelope of a successful login
type LoginResponse = APIResponse[TokenResponse]

// CurrentUserEnvelope is the documented envelope of GET /auth/me
type CurrentUserEnvelope = APIResponse[CurrentUserResponse]
