package handler

import (
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campusops/api/internal/core/ports"
)

// FeedbackHandler serves the feedback CSV analyzer.
type FeedbackHandler struct {
	service ports.FeedbackService
}

func NewFeedbackHandler(service ports.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

// Analyze runs sentiment analysis over an uploaded feedback CSV.
//
// @Summary      Analyze feedback CSV
// @Tags         feedback
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "CSV file with a feedback column"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      503  {object}  map[string]any
// @Security     BearerAuth
// @Router       /api/feedback/analyze [post]
func (h *FeedbackHandler) Analyze(c echo.Context) error {
	clubID, err := ctxClubID(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "no file uploaded")
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".csv") {
		return echo.NewHTTPError(http.StatusBadRequest, "Please select a valid CSV file")
	}

	f, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not read uploaded file")
	}
	defer f.Close()

	start := time.Now()
	result, err := h.service.Analyze(c.Request().Context(), clubID, fh.Filename, f)
	observeAI("feedback", start, err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"data":    result.Analysis,
		"metadata": map[string]any{
			"total_feedback": result.TotalFeedback,
			"analyzed":       result.Analyzed,
			"filename":       fh.Filename,
		},
	})
}
