package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campusops/api/internal/core/ports"
)

// ImageHandler serves the image caption and text extraction endpoints.
type ImageHandler struct {
	service ports.ImageService
}

func NewImageHandler(service ports.ImageService) *ImageHandler {
	return &ImageHandler{service: service}
}

// Caption generates captions for the uploaded images.
//
// @Summary      Caption images
// @Tags         image
// @Accept       multipart/form-data
// @Produce      json
// @Param        images   formData  file    true   "Images to caption"
// @Param        context  formData  string  false  "Optional scene context"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      503  {object}  map[string]any
// @Security     BearerAuth
// @Router       /api/image/caption [post]
func (h *ImageHandler) Caption(c echo.Context) error {
	if _, err := ctxClubID(c); err != nil {
		return err
	}

	images, err := readImages(c)
	if err != nil {
		return err
	}

	start := time.Now()
	results, err := h.service.Caption(c.Request().Context(), images, c.FormValue("context"))
	observeAI("caption", start, err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"count":   len(results),
		"results": results,
	})
}

// ExtractText extracts visible text from the uploaded images.
//
// @Summary      Extract text from images
// @Tags         image
// @Accept       multipart/form-data
// @Produce      json
// @Param        images  formData  file  true  "Images to scan"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      503  {object}  map[string]any
// @Security     BearerAuth
// @Router       /api/image/ocr [post]
func (h *ImageHandler) ExtractText(c echo.Context) error {
	if _, err := ctxClubID(c); err != nil {
		return err
	}

	images, err := readImages(c)
	if err != nil {
		return err
	}

	start := time.Now()
	results, err := h.service.ExtractText(c.Request().Context(), images)
	observeAI("ocr", start, err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"count":   len(results),
		"results": results,
	})
}

// readImages loads the images[] multipart field into memory.
func readImages(c echo.Context) ([]ports.ImageInput, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "no images uploaded")
	}
	files := form.File["images"]
	if len(files) == 0 {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "no images uploaded")
	}

	images := make([]ports.ImageInput, 0, len(files))
	for _, fh := range files {
		data, err := readFile(fh)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "could not read "+fh.Filename)
		}
		images = append(images, ports.ImageInput{Name: fh.Filename, Data: data})
	}
	return images, nil
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
