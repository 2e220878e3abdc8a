package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// All endpoints answer with the {success, ...} envelope the client's polling
// script expects. Store errors are logged with full detail server-side and
// surfaced as a generic message only.

func respond(c echo.Context, status int, payload echo.Map) error {
	payload["success"] = true
	return c.JSON(status, payload)
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{"success": false, "message": message})
}

func failStore(c echo.Context, err error) error {
	c.Logger().Error(err)
	return fail(c, http.StatusInternalServerError, "Something went wrong")
}
