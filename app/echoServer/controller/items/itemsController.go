package items

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"musicrental/app/echoServer/httpx"
	"musicrental/app/echoServer/jwtx"
	cs "musicrental/service/catalog"
)

type Controller struct {
	Svc cs.Service
	Log *slog.Logger
}

// GET /v1/items
func (h *Controller) List(c echo.Context) error {
	out, err := h.Svc.List(c.Request().Context())
	if err != nil {
		return httpx.Error(c, h.Log, "item list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

// GET /v1/items/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := httpx.ID(c, "id")
	if err != nil {
		return httpx.Error(c, h.Log, "item detail", err)
	}
	it, err := h.Svc.Detail(c.Request().Context(), id)
	if err != nil {
		return httpx.Error(c, h.Log, "item detail", err)
	}
	return c.JSON(http.StatusOK, it)
}

// GET /v1/items/my
func (h *Controller) MyItems(c echo.Context) error {
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	out, err := h.Svc.ByOwner(c.Request().Context(), uid)
	if err != nil {
		return httpx.Error(c, h.Log, "item my", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}
