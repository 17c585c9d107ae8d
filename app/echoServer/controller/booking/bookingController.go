package booking

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"musicrental/app/echoServer/httpx"
	"musicrental/app/echoServer/jwtx"
	"musicrental/model"
	bs "musicrental/service/booking"
)

type Controller struct {
	Svc bs.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/bookings
func (h *Controller) Create(c echo.Context) error {
	var req CreateBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	start, err := httpx.Date(req.StartDate)
	if err != nil {
		return httpx.Error(c, h.Log, "booking create", err)
	}
	end, err := httpx.Date(req.EndDate)
	if err != nil {
		return httpx.Error(c, h.Log, "booking create", err)
	}
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	b, err := h.Svc.Create(c.Request().Context(), req.ItemID, uid, start, end)
	if err != nil {
		return httpx.Error(c, h.Log, "booking create", err)
	}
	return c.JSON(http.StatusCreated, b)
}

// GET /v1/bookings
func (h *Controller) List(c echo.Context) error {
	out, err := h.Svc.List(c.Request().Context())
	if err != nil {
		return httpx.Error(c, h.Log, "booking list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

// GET /v1/bookings/my
func (h *Controller) MyBookings(c echo.Context) error {
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	out, err := h.Svc.ListByRenter(c.Request().Context(), uid)
	if err != nil {
		return httpx.Error(c, h.Log, "booking my", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

// GET /v1/bookings/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := httpx.ID(c, "id")
	if err != nil {
		return httpx.Error(c, h.Log, "booking detail", err)
	}
	b, err := h.Svc.ByID(c.Request().Context(), id)
	if err != nil {
		return httpx.Error(c, h.Log, "booking detail", err)
	}
	return c.JSON(http.StatusOK, b)
}

// PUT /v1/bookings/:id/approve
func (h *Controller) Approve(c echo.Context) error {
	return h.decide(c, "booking approve", h.Svc.Approve)
}

// PUT /v1/bookings/:id/reject
func (h *Controller) Reject(c echo.Context) error {
	return h.decide(c, "booking reject", h.Svc.Reject)
}

type decision func(ctx context.Context, bookingID, ownerID int64) (*model.Booking, error)

func (h *Controller) decide(c echo.Context, op string, fn decision) error {
	id, err := httpx.ID(c, "id")
	if err != nil {
		return httpx.Error(c, h.Log, op, err)
	}
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	b, err := fn(c.Request().Context(), id, uid)
	if err != nil {
		return httpx.Error(c, h.Log, op, err)
	}
	return c.JSON(http.StatusOK, b)
}
