package handlers

import (
	"github.com/labstack/echo/v4"
)

// jsonSuccess writes the {success, data} envelope every route uses.
func jsonSuccess(c echo.Context, status int, data any) error {
	return c.JSON(status, map[string]any{
		"success": true,
		"data":    data,
	})
}

// jsonError writes the {success:false, error} envelope.
func jsonError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]any{
		"success": false,
		"error":   message,
	})
}
