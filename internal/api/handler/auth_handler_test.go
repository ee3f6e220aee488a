package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/campusops/api/internal/core/domain"
	"github.com/campusops/api/internal/core/ports"
)

type stubAuthService struct {
	loginFn  func(ctx context.Context, email, password string) (string, *domain.Club, error)
	signupFn func(ctx context.Context, in ports.SignupInput) (*domain.Club, error)
	listFn   func(ctx context.Context) ([]*domain.Club, error)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.Club, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.Club, error) {
	return s.signupFn(ctx, in)
}

func (s *stubAuthService) ListClubs(ctx context.Context) ([]*domain.Club, error) {
	return s.listFn(ctx)
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.Club, error) {
			if email != "tech@example.com" || password != "tech123" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "token123", &domain.Club{
				ClubID: "tech_club",
				Name:   "Tech Club",
				Email:  "tech@example.com",
				Color:  "#3498db",
			}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/login",
		`{"email":"tech@example.com","password":"tech123"}`)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Token string `json:"token"`
			Club  struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"club"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Success {
		t.Fatalf("expected success")
	}
	if resp.Data.Token != "token123" {
		t.Fatalf("expected token, got %q", resp.Data.Token)
	}
	if resp.Data.Club.ID != "tech_club" || resp.Data.Club.Name != "Tech Club" {
		t.Fatalf("unexpected club payload: %+v", resp.Data.Club)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.Club, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/api/auth/login",
		`{"email":"tech@example.com","password":"bad"}`)

	err := handler.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.Club, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/api/auth/login", `{"email":"tech@example.com"}`)

	err := handler.Login(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, in ports.SignupInput) (*domain.Club, error) {
			if in.ClubID != "chess_club" || in.ClubName != "Chess Club" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Club{ClubID: in.ClubID, Name: in.ClubName, Email: in.Email, Color: "#3498db"}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/signup",
		`{"club_name":"Chess Club","club_id":"chess_club","email":"chess@example.com","password":"secret1"}`)

	if err := handler.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	club, ok := resp["club"].(map[string]any)
	if !ok || club["id"] != "chess_club" {
		t.Fatalf("unexpected club payload: %+v", resp)
	}
}

func TestAuthHandler_Signup_ClubExists(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, in ports.SignupInput) (*domain.Club, error) {
			return nil, domain.ErrClubExists
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/api/auth/signup",
		`{"club_name":"Tech Club","club_id":"tech_club","email":"tech@example.com","password":"secret1"}`)

	err := handler.Signup(c)
	if !errors.Is(err, domain.ErrClubExists) {
		t.Fatalf("expected ErrClubExists, got %v", err)
	}
}

func TestAuthHandler_ListClubs(t *testing.T) {
	stub := &stubAuthService{
		listFn: func(ctx context.Context) ([]*domain.Club, error) {
			return []*domain.Club{
				{ClubID: "tech_club", Name: "Tech Club"},
				{ClubID: "sports_club", Name: "Sports Club"},
			}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/api/auth/clubs", "")

	if err := handler.ListClubs(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Success bool `json:"success"`
		Clubs   []struct {
			ID string `json:"id"`
		} `json:"clubs"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Clubs) != 2 || resp.Clubs[0].ID != "tech_club" {
		t.Fatalf("unexpected clubs payload: %+v", resp.Clubs)
	}
}
