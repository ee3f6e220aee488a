package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campusops/api/internal/core/ports"
)

// BudgetHandler serves the AI budget suggester.
type BudgetHandler struct {
	service ports.BudgetService
}

func NewBudgetHandler(service ports.BudgetService) *BudgetHandler {
	return &BudgetHandler{service: service}
}

type budgetSuggestRequest struct {
	EventType    string   `json:"event_type" validate:"required"`
	Attendees    int      `json:"attendees" validate:"required,gt=0"`
	Duration     float64  `json:"duration"`
	VenueType    string   `json:"venue_type"`
	Requirements []string `json:"additional_requirements"`
}

// Suggest generates a budget recommendation for an event.
//
// @Summary      Suggest an event budget
// @Tags         budget
// @Accept       json
// @Produce      json
// @Param        body  body      budgetSuggestRequest  true  "Event parameters"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  map[string]any
// @Failure      503   {object}  map[string]any
// @Security     BearerAuth
// @Router       /api/budget/suggest [post]
func (h *BudgetHandler) Suggest(c echo.Context) error {
	clubID, err := ctxClubID(c)
	if err != nil {
		return err
	}

	var req budgetSuggestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start := time.Now()
	suggestion, err := h.service.Suggest(c.Request().Context(), ports.BudgetSuggestInput{
		ClubID:       clubID,
		EventType:    req.EventType,
		Attendees:    req.Attendees,
		Duration:     req.Duration,
		VenueType:    req.VenueType,
		Requirements: req.Requirements,
	})
	observeAI("budget", start, err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":      true,
		"id":           suggestion.ID,
		"suggestion":   suggestion.Suggestion,
		"total_budget": suggestion.TotalBudget,
	})
}

// History lists the club's recent budget suggestions.
//
// @Summary      Budget suggestion history
// @Tags         budget
// @Produce      json
// @Param        limit  query  int  false  "Maximum records to return"
// @Success      200  {object}  map[string]any
// @Security     BearerAuth
// @Router       /api/budget/history [get]
func (h *BudgetHandler) History(c echo.Context) error {
	clubID, err := ctxClubID(c)
	if err != nil {
		return err
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	suggestions, err := h.service.History(c.Request().Context(), clubID, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":     true,
		"count":       len(suggestions),
		"suggestions": suggestions,
	})
}
