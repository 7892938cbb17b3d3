package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/freightline/shipment-tracker/internal/api/middleware"
)

// ctxUserID extracts the authenticated subject id injected by the Auth
// middleware. Its presence proves the middleware ran; a missing id on a
// protected route means the route is miswired, so fail closed with 401.
func ctxUserID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.CtxUserID).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}
