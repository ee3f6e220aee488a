package ports

import (
	"context"

	"github.com/campusops/api/internal/core/domain"
)

// ClubRepository defines persistence for club accounts.
type ClubRepository interface {
	// FindByEmail performs a case-insensitive lookup.
	FindByEmail(ctx context.Context, email string) (*domain.Club, error)
	FindByClubID(ctx context.Context, clubID string) (*domain.Club, error)
	Create(ctx context.Context, club *domain.Club) (*domain.Club, error)
	List(ctx context.Context) ([]*domain.Club, error)
}

// SignupInput carries the fields of a club registration.
type SignupInput struct {
	ClubName    string
	ClubID      string
	Email       string
	Password    string
	Description string
	Color       string
}

// AuthService implements club login and registration.
type AuthService interface {
	// Login verifies credentials and returns a signed session token.
	Login(ctx context.Context, email, password string) (string, *domain.Club, error)
	Signup(ctx context.Context, in SignupInput) (*domain.Club, error)
	ListClubs(ctx context.Context) ([]*domain.Club, error)
}
