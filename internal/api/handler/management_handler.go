package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusops/api/internal/api/metrics"
	"github.com/campusops/api/internal/core/ports"
	"github.com/campusops/api/internal/core/schema"
)

// ManagementHandler serves the tab-generic CRUD endpoints. Response keys are
// dynamic ("events", "members", ...) to match the dashboard contract, so the
// payloads are built as maps rather than fixed structs.
type ManagementHandler struct {
	service ports.ManagementService
}

func NewManagementHandler(service ports.ManagementService) *ManagementHandler {
	return &ManagementHandler{service: service}
}

// List returns all of the club's records for one tab.
//
// @Summary      List records for a tab
// @Tags         management
// @Produce      json
// @Param        tab  path  string  true  "Tab name"  Enums(events, members, budget, reports)
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Security     BearerAuth
// @Router       /api/management/{tab} [get]
func (h *ManagementHandler) List(c echo.Context) error {
	clubID, err := ctxClubID(c)
	if err != nil {
		return err
	}
	tab := c.Param("tab")

	result, err := h.service.List(c.Request().Context(), clubID, tab)
	if err != nil {
		return err
	}
	metrics.EntityOperationsTotal.WithLabelValues(tab, "list").Inc()

	resp := map[string]any{
		"success":  true,
		"count":    len(result.Items),
		result.Tab: result.Items,
	}
	if result.Summary != nil {
		resp["summary"] = map[string]any{
			"total_income":  result.Summary.TotalIncome,
			"total_expense": result.Summary.TotalExpense,
			"balance":       result.Summary.Balance,
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// Create adds a record to one tab.
//
// @Summary      Create a record
// @Tags         management
// @Accept       json
// @Produce      json
// @Param        tab   path  string          true  "Tab name"
// @Param        body  body  map[string]any  true  "Record fields"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      409  {object}  map[string]any
// @Security     BearerAuth
// @Router       /api/management/{tab} [post]
func (h *ManagementHandler) Create(c echo.Context) error {
	clubID, err := ctxClubID(c)
	if err != nil {
		return err
	}
	tab := c.Param("tab")

	var fields map[string]any
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	record, err := h.service.Create(c.Request().Context(), clubID, tab, fields)
	if err != nil {
		return err
	}
	metrics.EntityOperationsTotal.WithLabelValues(tab, "create").Inc()

	singular := singularFor(tab)
	return c.JSON(http.StatusCreated, map[string]any{
		"success": true,
		"message": singular + " created successfully",
		singular:  record,
	})
}

// Update applies a partial update to one record.
//
// @Summary      Update a record
// @Tags         management
// @Accept       json
// @Produce      json
// @Param        tab   path  string          true  "Tab name"
// @Param        id    path  string          true  "Record id"
// @Param        body  body  map[string]any  true  "Fields to update"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Security     BearerAuth
// @Router       /api/management/{tab}/{id} [put]
func (h *ManagementHandler) Update(c echo.Context) error {
	clubID, err := ctxClubID(c)
	if err != nil {
		return err
	}
	tab := c.Param("tab")

	var fields map[string]any
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	record, err := h.service.Update(c.Request().Context(), clubID, tab, c.Param("id"), fields)
	if err != nil {
		return err
	}
	metrics.EntityOperationsTotal.WithLabelValues(tab, "update").Inc()

	singular := singularFor(tab)
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": singular + " updated successfully",
		singular:  record,
	})
}

// Delete removes one record.
//
// @Summary      Delete a record
// @Tags         management
// @Produce      json
// @Param        tab  path  string  true  "Tab name"
// @Param        id   path  string  true  "Record id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Security     BearerAuth
// @Router       /api/management/{tab}/{id} [delete]
func (h *ManagementHandler) Delete(c echo.Context) error {
	clubID, err := ctxClubID(c)
	if err != nil {
		return err
	}
	tab := c.Param("tab")

	if err := h.service.Delete(c.Request().Context(), clubID, tab, c.Param("id")); err != nil {
		return err
	}
	metrics.EntityOperationsTotal.WithLabelValues(tab, "delete").Inc()

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": singularFor(tab) + " deleted successfully",
	})
}

// Stats returns the dashboard counters.
//
// @Summary      Dashboard statistics
// @Tags         management
// @Produce      json
// @Success      200  {object}  map[string]any
// @Security     BearerAuth
// @Router       /api/management/stats [get]
func (h *ManagementHandler) Stats(c echo.Context) error {
	clubID, err := ctxClubID(c)
	if err != nil {
		return err
	}

	stats, err := h.service.Stats(c.Request().Context(), clubID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"stats": map[string]any{
			"events":  stats.Events,
			"members": stats.Members,
			"budget":  stats.Budget,
			"reports": stats.Reports,
		},
	})
}

func singularFor(tab string) string {
	if sc, ok := schema.Lookup(tab); ok {
		return sc.Singular
	}
	return "record"
}
