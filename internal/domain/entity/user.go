package entity

import "time"

// Roles understood by the access gate.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is an account of the catalog API.
type User struct {
	ID           int64
	Name         string
	Surname      string
	Address      string
	Email        string // unique
	PasswordHash string // bcrypt
	Role         string // RoleAdmin | RoleUser
	CreatedAt    time.Time
}
