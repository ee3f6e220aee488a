package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusops/api/internal/core/domain"
	"github.com/campusops/api/internal/core/ports"
)

// AuthService implements club login and registration.
type AuthService struct {
	repo      ports.ClubRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(repo ports.ClubRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Login verifies credentials against the stored bcrypt hash and returns a
// signed session token. A missing club and a wrong password are reported with
// the same error so the response does not reveal which half failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Club, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	club, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrClubNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(club.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(club)
	if err != nil {
		return "", nil, err
	}

	return token, club, nil
}

// Signup registers a new club. The club_id and email must both be unused.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.Club, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.ClubName == "" || in.ClubID == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if in.Color == "" {
		in.Color = "#3498db"
	}

	if _, err := s.repo.FindByClubID(ctx, in.ClubID); err == nil {
		return nil, domain.ErrClubExists
	} else if !errors.Is(err, domain.ErrClubNotFound) {
		return nil, err
	}
	if _, err := s.repo.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrClubExists
	} else if !errors.Is(err, domain.ErrClubNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	club := &domain.Club{
		ClubID:       in.ClubID,
		Name:         in.ClubName,
		Email:        in.Email,
		Description:  in.Description,
		Color:        in.Color,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	return s.repo.Create(ctx, club)
}

// ListClubs returns the public club directory.
func (s *AuthService) ListClubs(ctx context.Context) ([]*domain.Club, error) {
	return s.repo.List(ctx)
}

func (s *AuthService) generateToken(club *domain.Club) (string, error) {
	claims := jwt.MapClaims{
		"club_id":   club.ClubID,
		"club_name": club.Name,
		"email":     club.Email,
		"exp":       time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// demoClub pairs a seed account with its plaintext demo password.
type demoClub struct {
	club     domain.Club
	password string
}

var demoClubs = []demoClub{
	{club: domain.Club{ClubID: "tech_club", Name: "Tech Club", Email: "tech@example.com", Description: "Innovation and Technology", Color: "#3498db"}, password: "tech123"},
	{club: domain.Club{ClubID: "cultural_club", Name: "Cultural Club", Email: "cultural@example.com", Description: "Arts and Culture", Color: "#e74c3c"}, password: "culture123"},
	{club: domain.Club{ClubID: "sports_club", Name: "Sports Club", Email: "sports@example.com", Description: "Athletics and Wellness", Color: "#2ecc71"}, password: "sports123"},
	{club: domain.Club{ClubID: "robotics_club", Name: "Robotics Club", Email: "robotics@example.com", Description: "Robotics and Automation", Color: "#9b59b6"}, password: "robo123"},
}

// EnsureDemoClubs seeds the demo accounts on first start so a fresh install
// is immediately usable. Existing accounts are left untouched.
func (s *AuthService) EnsureDemoClubs(ctx context.Context) error {
	for _, d := range demoClubs {
		if _, err := s.repo.FindByClubID(ctx, d.club.ClubID); err == nil {
			continue
		} else if !errors.Is(err, domain.ErrClubNotFound) {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(d.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		club := d.club
		club.PasswordHash = string(hash)
		club.CreatedAt = time.Now().UTC()
		if _, err := s.repo.Create(ctx, &club); err != nil && !errors.Is(err, domain.ErrClubExists) {
			return err
		}
	}
	return nil
}
