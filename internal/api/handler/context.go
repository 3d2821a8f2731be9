package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// bindRequest fills req from path and query parameters and validates it.
// Binding failures are reported as 400, validation failures as 422.
func bindRequest(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request parameters")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return nil
}
