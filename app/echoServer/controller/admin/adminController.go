package admin

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"musicrental/app/echoServer/httpx"
	"musicrental/model"
	as "musicrental/service/admin"
)

type Controller struct {
	Svc as.Service
	Log *slog.Logger
}

// GET /v1/admin/bookings?status=&renter_id=
func (h *Controller) Bookings(c echo.Context) error {
	ctx := c.Request().Context()

	if raw := c.QueryParam("renter_id"); raw != "" {
		id, err := httpx.QueryID(c, "renter_id")
		if err != nil {
			return httpx.Error(c, h.Log, "admin bookings", err)
		}
		out, err := h.Svc.BookingsByRenter(ctx, id)
		if err != nil {
			return httpx.Error(c, h.Log, "admin bookings", err)
		}
		return c.JSON(http.StatusOK, echo.Map{"data": out})
	}

	if raw := c.QueryParam("status"); raw != "" {
		out, err := h.Svc.BookingsByStatus(ctx, model.BookingStatus(raw))
		if err != nil {
			return httpx.Error(c, h.Log, "admin bookings", err)
		}
		return c.JSON(http.StatusOK, echo.Map{"data": out})
	}

	out, err := h.Svc.AllBookings(ctx)
	if err != nil {
		return httpx.Error(c, h.Log, "admin bookings", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

// POST /v1/admin/bookings/:id/cancel
func (h *Controller) CancelBooking(c echo.Context) error {
	id, err := httpx.ID(c, "id")
	if err != nil {
		return httpx.Error(c, h.Log, "admin cancel", err)
	}
	b, err := h.Svc.CancelBooking(c.Request().Context(), id)
	if err != nil {
		return httpx.Error(c, h.Log, "admin cancel", err)
	}
	return c.JSON(http.StatusOK, b)
}

// GET /v1/admin/statistics
func (h *Controller) Statistics(c echo.Context) error {
	stats, err := h.Svc.BookingStatistics(c.Request().Context())
	if err != nil {
		return httpx.Error(c, h.Log, "admin statistics", err)
	}
	return c.JSON(http.StatusOK, stats)
}

// GET /v1/admin/renters/:id/activity
func (h *Controller) RenterActivity(c echo.Context) error {
	id, err := httpx.ID(c, "id")
	if err != nil {
		return httpx.Error(c, h.Log, "admin renter activity", err)
	}
	n, err := h.Svc.RenterActivity(c.Request().Context(), id)
	if err != nil {
		return httpx.Error(c, h.Log, "admin renter activity", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"renter_id": id, "booking_count": n})
}

// GET /v1/admin/owners/:id/activity
func (h *Controller) OwnerActivity(c echo.Context) error {
	id, err := httpx.ID(c, "id")
	if err != nil {
		return httpx.Error(c, h.Log, "admin owner activity", err)
	}
	n, err := h.Svc.OwnerActivity(c.Request().Context(), id)
	if err != nil {
		return httpx.Error(c, h.Log, "admin owner activity", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"owner_id": id, "booking_count": n})
}

// GET /v1/admin/owners/:id/revenue
func (h *Controller) RevenueByOwner(c echo.Context) error {
	id, err := httpx.ID(c, "id")
	if err != nil {
		return httpx.Error(c, h.Log, "admin owner revenue", err)
	}
	total, err := h.Svc.RevenueByOwner(c.Request().Context(), id)
	if err != nil {
		return httpx.Error(c, h.Log, "admin owner revenue", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"owner_id": id, "revenue": total})
}

// GET /v1/admin/revenue
func (h *Controller) TotalRevenue(c echo.Context) error {
	total, err := h.Svc.TotalRevenue(c.Request().Context())
	if err != nil {
		return httpx.Error(c, h.Log, "admin revenue", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"revenue": total})
}
