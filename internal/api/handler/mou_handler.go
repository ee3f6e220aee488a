package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campusops/api/internal/api/metrics"
	"github.com/campusops/api/internal/core/ports"
)

// MOUHandler serves the memorandum of understanding generator.
type MOUHandler struct {
	service ports.MOUService
}

func NewMOUHandler(service ports.MOUService) *MOUHandler {
	return &MOUHandler{service: service}
}

type mouGenerateRequest struct {
	Party1Name    string `json:"party1_name" validate:"required"`
	Party1Address string `json:"party1_address"`
	Party2Name    string `json:"party2_name" validate:"required"`
	Party2Address string `json:"party2_address"`
	Purpose       string `json:"purpose" validate:"required"`
	EventName     string `json:"event_name"`
	Duration      string `json:"duration"`
	Terms         string `json:"terms"`
}

// Generate drafts and stores a memorandum of understanding.
//
// @Summary      Generate an MOU
// @Tags         mou
// @Accept       json
// @Produce      json
// @Param        body  body      mouGenerateRequest  true  "Agreement parameters"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  map[string]any
// @Failure      503   {object}  map[string]any
// @Security     BearerAuth
// @Router       /api/mou/generate [post]
func (h *MOUHandler) Generate(c echo.Context) error {
	clubID, err := ctxClubID(c)
	if err != nil {
		return err
	}

	var req mouGenerateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start := time.Now()
	result, err := h.service.Generate(c.Request().Context(), ports.MOUInput{
		ClubID:        clubID,
		Party1Name:    req.Party1Name,
		Party1Address: req.Party1Address,
		Party2Name:    req.Party2Name,
		Party2Address: req.Party2Address,
		Purpose:       req.Purpose,
		EventName:     req.EventName,
		Duration:      req.Duration,
		Terms:         req.Terms,
	})
	observeAI("mou", start, err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":       true,
		"id":            result.MOU.ID,
		"content":       result.MOU.Content,
		"content_html":  result.ContentHTML,
		"download_path": "/api/mou/download/" + result.MOU.ID,
		"filename":      result.Filename,
	})
}

// Download rebuilds the DOCX rendition of a stored memorandum.
//
// @Summary      Download an MOU as DOCX
// @Tags         mou
// @Produce      application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Param        id  path  string  true  "Memorandum id"
// @Success      200  {file}    binary
// @Failure      404  {object}  map[string]any
// @Security     BearerAuth
// @Router       /api/mou/download/{id} [get]
func (h *MOUHandler) Download(c echo.Context) error {
	clubID, err := ctxClubID(c)
	if err != nil {
		return err
	}

	filename, document, err := h.service.Download(c.Request().Context(), clubID, c.Param("id"))
	if err != nil {
		return err
	}
	metrics.DocumentsGeneratedTotal.WithLabelValues("mou").Inc()

	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		document)
}

// History lists the club's memoranda without their content.
//
// @Summary      MOU history
// @Tags         mou
// @Produce      json
// @Param        limit  query  int  false  "Maximum records to return"
// @Success      200  {object}  map[string]any
// @Security     BearerAuth
// @Router       /api/mou/history [get]
func (h *MOUHandler) History(c echo.Context) error {
	clubID, err := ctxClubID(c)
	if err != nil {
		return err
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	mous, err := h.service.History(c.Request().Context(), clubID, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"count":   len(mous),
		"mous":    mous,
	})
}

// Get returns one stored memorandum with its full content.
//
// @Summary      Fetch an MOU
// @Tags         mou
// @Produce      json
// @Param        id  path  string  true  "Memorandum id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Security     BearerAuth
// @Router       /api/mou/{id} [get]
func (h *MOUHandler) Get(c echo.Context) error {
	clubID, err := ctxClubID(c)
	if err != nil {
		return err
	}

	mou, err := h.service.Get(c.Request().Context(), clubID, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"mou":     mou,
	})
}
