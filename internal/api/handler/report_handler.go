package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campusops/api/internal/api/metrics"
	"github.com/campusops/api/internal/core/ports"
)

// ReportHandler serves the event report generator.
type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Generate produces an event plan, summary, or report from a description.
//
// @Summary      Generate an event document
// @Tags         events
// @Accept       multipart/form-data
// @Produce      json
// @Param        event_description  formData  string  true   "Event description"
// @Param        document_type      formData  string  false  "event_plan, summary, or report"
// @Param        format             formData  string  false  "json or docx"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      503  {object}  map[string]any
// @Security     BearerAuth
// @Router       /api/events/generate [post]
func (h *ReportHandler) Generate(c echo.Context) error {
	clubID, err := ctxClubID(c)
	if err != nil {
		return err
	}

	in := ports.ReportInput{
		ClubID:       clubID,
		Description:  c.FormValue("event_description"),
		DocumentType: c.FormValue("document_type"),
		Format:       c.FormValue("format"),
	}
	if form, err := c.MultipartForm(); err == nil && form != nil {
		in.ImageCount = len(form.File["images"])
	}

	start := time.Now()
	result, err := h.service.Generate(c.Request().Context(), in)
	observeAI("report", start, err)
	if err != nil {
		return err
	}

	if result.Document != nil {
		metrics.DocumentsGeneratedTotal.WithLabelValues("report").Inc()
		c.Response().Header().Set(echo.HeaderContentDisposition,
			`attachment; filename="`+result.Filename+`"`)
		return c.Blob(http.StatusOK,
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			result.Document)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"data":    result.Data,
		"metadata": map[string]any{
			"document_type":   in.DocumentType,
			"images_uploaded": in.ImageCount,
			"generated_at":    time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// History lists the club's recent report generations.
//
// @Summary      Report generation history
// @Tags         events
// @Produce      json
// @Param        limit  query  int  false  "Maximum records to return"
// @Success      200  {object}  map[string]any
// @Security     BearerAuth
// @Router       /api/events/list [get]
func (h *ReportHandler) History(c echo.Context) error {
	clubID, err := ctxClubID(c)
	if err != nil {
		return err
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	records, err := h.service.History(c.Request().Context(), clubID, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"count":   len(records),
		"reports": records,
	})
}

// observeAI records the shared AI request metrics.
func observeAI(feature string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.AIRequestsTotal.WithLabelValues(feature, outcome).Inc()
	metrics.AIRequestDuration.WithLabelValues(feature).Observe(time.Since(start).Seconds())
}
