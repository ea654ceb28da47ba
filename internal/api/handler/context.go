package handler

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// bearerToken extracts the raw bearer token from the Authorization header.
// It returns "" when the header is missing so the service can report the
// token as absent; a header that is not in Bearer form is passed through
// as-is and fails verification downstream.
func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return header
}
