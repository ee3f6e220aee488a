package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxClubID extracts the club identity injected by the Auth middleware and
// fast-fails before any service call: an empty club_id means the JWT is
// structurally valid but carries no usable identity, so the request is
// rejected with 401 rather than silently scoping to nothing.
func ctxClubID(c echo.Context) (string, error) {
	clubID, _ := c.Get("club_id").(string)
	if clubID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return clubID, nil
}
