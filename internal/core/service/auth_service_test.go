package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusops/api/internal/core/domain"
	"github.com/campusops/api/internal/core/ports"
)

type memClubRepo struct {
	clubs map[string]*domain.Club // keyed by club_id
}

func newMemClubRepo() *memClubRepo {
	return &memClubRepo{clubs: map[string]*domain.Club{}}
}

func (r *memClubRepo) FindByEmail(ctx context.Context, email string) (*domain.Club, error) {
	for _, c := range r.clubs {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, domain.ErrClubNotFound
}

func (r *memClubRepo) FindByClubID(ctx context.Context, clubID string) (*domain.Club, error) {
	if c, ok := r.clubs[clubID]; ok {
		return c, nil
	}
	return nil, domain.ErrClubNotFound
}

func (r *memClubRepo) Create(ctx context.Context, club *domain.Club) (*domain.Club, error) {
	if _, ok := r.clubs[club.ClubID]; ok {
		return nil, domain.ErrClubExists
	}
	stored := *club
	stored.ID = "id_" + club.ClubID
	r.clubs[club.ClubID] = &stored
	return &stored, nil
}

func (r *memClubRepo) List(ctx context.Context) ([]*domain.Club, error) {
	out := make([]*domain.Club, 0, len(r.clubs))
	for _, c := range r.clubs {
		out = append(out, c)
	}
	return out, nil
}

func seedClub(t *testing.T, repo *memClubRepo, clubID, email, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	repo.clubs[clubID] = &domain.Club{
		ClubID:       clubID,
		Name:         "Tech Club",
		Email:        email,
		PasswordHash: string(hash),
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newMemClubRepo()
	seedClub(t, repo, "tech_club", "tech@example.com", "tech123")
	svc := NewAuthService(repo, "secret", time.Hour)

	token, club, err := svc.Login(context.Background(), "Tech@Example.com", "tech123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if club.ClubID != "tech_club" {
		t.Fatalf("unexpected club: %+v", club)
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(tk *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !tkn.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims["club_id"] != "tech_club" || claims["club_name"] != "Tech Club" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if _, ok := claims["exp"]; !ok {
		t.Fatalf("token missing expiry")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newMemClubRepo()
	seedClub(t, repo, "tech_club", "tech@example.com", "tech123")
	svc := NewAuthService(repo, "secret", time.Hour)

	_, _, err := svc.Login(context.Background(), "tech@example.com", "nope")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmailSameError(t *testing.T) {
	repo := newMemClubRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "pw")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email must look like bad credentials, got %v", err)
	}
}

func TestAuthService_Signup_Success(t *testing.T) {
	repo := newMemClubRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	club, err := svc.Signup(context.Background(), ports.SignupInput{
		ClubName: "Chess Club",
		ClubID:   "chess_club",
		Email:    "Chess@Example.com",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if club.Email != "chess@example.com" {
		t.Fatalf("email not lowercased: %q", club.Email)
	}
	if club.Color != "#3498db" {
		t.Fatalf("expected default color, got %q", club.Color)
	}
	if club.PasswordHash == "secret1" || club.PasswordHash == "" {
		t.Fatalf("password stored unhashed")
	}
}

func TestAuthService_Signup_DuplicateClubID(t *testing.T) {
	repo := newMemClubRepo()
	seedClub(t, repo, "tech_club", "tech@example.com", "tech123")
	svc := NewAuthService(repo, "secret", time.Hour)

	_, err := svc.Signup(context.Background(), ports.SignupInput{
		ClubName: "Other Tech",
		ClubID:   "tech_club",
		Email:    "other@example.com",
		Password: "secret1",
	})
	if !errors.Is(err, domain.ErrClubExists) {
		t.Fatalf("expected ErrClubExists, got %v", err)
	}
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	repo := newMemClubRepo()
	seedClub(t, repo, "tech_club", "tech@example.com", "tech123")
	svc := NewAuthService(repo, "secret", time.Hour)

	_, err := svc.Signup(context.Background(), ports.SignupInput{
		ClubName: "Other Tech",
		ClubID:   "other_club",
		Email:    "tech@example.com",
		Password: "secret1",
	})
	if !errors.Is(err, domain.ErrClubExists) {
		t.Fatalf("expected ErrClubExists, got %v", err)
	}
}

func TestAuthService_EnsureDemoClubs(t *testing.T) {
	repo := newMemClubRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	if err := svc.EnsureDemoClubs(context.Background()); err != nil {
		t.Fatalf("seeding failed: %v", err)
	}
	if len(repo.clubs) != 4 {
		t.Fatalf("expected 4 demo clubs, got %d", len(repo.clubs))
	}
	tech, ok := repo.clubs["tech_club"]
	if !ok || tech.Name != "Tech Club" {
		t.Fatalf("tech_club not seeded: %+v", tech)
	}

	// Second run must not duplicate or overwrite.
	tech.Description = "edited"
	if err := svc.EnsureDemoClubs(context.Background()); err != nil {
		t.Fatalf("re-seeding failed: %v", err)
	}
	if repo.clubs["tech_club"].Description != "edited" {
		t.Fatalf("existing club was overwritten")
	}
}
