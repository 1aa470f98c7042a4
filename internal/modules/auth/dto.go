package auth

import "time"

type RegisterRequest struct {
	Username string  `json:"username" binding:"required,username"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8,max=72"`
	FullName *string `json:"full_name" binding:"omitempty,max=255"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ClientInfo describes where a session was opened from.
type ClientInfo struct {
	UserAgent string
	IP        string
}

// TokenResponse is the JSON body of register, login and refresh. The refresh
// token itself only travels in the cookie.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type SessionResponse struct {
	ID         int64     `json:"id"`
	DeviceInfo *string   `json:"device_info"`
	IPAddress  *string   `json:"ip_address"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}
