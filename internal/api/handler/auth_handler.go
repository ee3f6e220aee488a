package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusops/api/internal/core/domain"
	"github.com/campusops/api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type signupRequest struct {
	ClubName    string `json:"club_name" validate:"required"`
	ClubID      string `json:"club_id" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// clubPayload is the public view of a club account.
type clubPayload struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Email       string `json:"email"`
}

type loginData struct {
	Token string      `json:"token"`
	Club  clubPayload `json:"club"`
}

type loginResponse struct {
	Success bool      `json:"success"`
	Data    loginData `json:"data"`
}

type signupResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Club    clubPayload `json:"club"`
}

type clubListResponse struct {
	Success bool          `json:"success"`
	Clubs   []clubPayload `json:"clubs"`
}

func toClubPayload(club *domain.Club) clubPayload {
	return clubPayload{
		ID:          club.ClubID,
		Name:        club.Name,
		Description: club.Description,
		Color:       club.Color,
		Email:       club.Email,
	}
}

// Login authenticates a club and returns a session token.
//
// @Summary      Club login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, club, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		Success: true,
		Data:    loginData{Token: token, Club: toClubPayload(club)},
	})
}

// Signup registers a new club account.
//
// @Summary      Register a new club
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Club registration details"
// @Success      201   {object}  signupResponse
// @Failure      400   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Router       /api/auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	club, err := h.authService.Signup(c.Request().Context(), ports.SignupInput{
		ClubName:    req.ClubName,
		ClubID:      req.ClubID,
		Email:       req.Email,
		Password:    req.Password,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, signupResponse{
		Success: true,
		Message: "club registered successfully",
		Club:    toClubPayload(club),
	})
}

// ListClubs returns the public club directory shown on the login screen.
//
// @Summary      List registered clubs
// @Tags         auth
// @Produce      json
// @Success      200  {object}  clubListResponse
// @Router       /api/auth/clubs [get]
func (h *AuthHandler) ListClubs(c echo.Context) error {
	clubs, err := h.authService.ListClubs(c.Request().Context())
	if err != nil {
		return err
	}

	payload := make([]clubPayload, 0, len(clubs))
	for _, club := range clubs {
		payload = append(payload, toClubPayload(club))
	}
	return c.JSON(http.StatusOK, clubListResponse{Success: true, Clubs: payload})
}
