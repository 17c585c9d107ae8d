// app/echoServer/httpx/httpx.go
package httpx

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"musicrental/util/apperr"
)

const dateLayout = "2006-01-02"

// Error writes the boundary response for a service failure. Typed errors
// keep their message and status class; anything untyped is logged and
// hidden behind a generic 500.
func Error(c echo.Context, log *slog.Logger, op string, err error) error {
	if apperr.CodeOf(err) == "" {
		log.Error(op, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(apperr.HTTPStatus(err), echo.Map{"message": err.Error()})
}

// ID parses a positive int64 path parameter.
func ID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.InvalidArgument("invalid %s", name)
	}
	return id, nil
}

// QueryID parses a positive int64 query parameter.
func QueryID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.QueryParam(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.InvalidArgument("invalid %s", name)
	}
	return id, nil
}

// Date parses an ISO calendar date (2006-01-02).
func Date(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, apperr.InvalidArgument("invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}
