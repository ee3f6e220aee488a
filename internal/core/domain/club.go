package domain

import (
	"errors"
	"time"
)

var ErrClubNotFound = errors.New("club not found")
var ErrClubExists = errors.New("club already exists")
var ErrInvalidCredentials = errors.New("invalid email or password")

// Club is the tenant identity: every authenticated session belongs to exactly
// one club, and all managed records are scoped to it.
type Club struct {
	ID           string    `json:"-"`
	ClubID       string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Description  string    `json:"description"`
	Color        string    `json:"color"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
}
