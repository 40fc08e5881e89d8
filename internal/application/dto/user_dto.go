package dto

import "time"

// RegisterRequest creates a user account. Role defaults to "user".
type RegisterRequest struct {
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Address  string `json:"address"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginRequest exchanges credentials for a token.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the account view, without credentials.
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	Address   string    `json:"address"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenResponse carries the signed JWT.
type TokenResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
