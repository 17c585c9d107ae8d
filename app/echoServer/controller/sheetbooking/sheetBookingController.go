package sheetbooking

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"musicrental/app/echoServer/httpx"
	"musicrental/app/echoServer/jwtx"
	sbs "musicrental/service/sheetbooking"
)

type Controller struct {
	Svc sbs.Service
	V   *validator.Validate
	Log *slog.Logger
}

type CreateSheetBookingReq struct {
	SheetID   int64  `json:"sheet_id" validate:"required,gt=0"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

// POST /v1/sheet-bookings
func (h *Controller) Create(c echo.Context) error {
	var req CreateSheetBookingReq
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
		return httpx.Error(c, h.Log, "sheet booking create", err)
	}
	end, err := httpx.Date(req.EndDate)
	if err != nil {
		return httpx.Error(c, h.Log, "sheet booking create", err)
	}
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	b, err := h.Svc.Create(c.Request().Context(), req.SheetID, uid, start, end)
	if err != nil {
		return httpx.Error(c, h.Log, "sheet booking create", err)
	}
	return c.JSON(http.StatusCreated, b)
}

// GET /v1/sheet-bookings/my
func (h *Controller) MyBookings(c echo.Context) error {
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	out, err := h.Svc.ListByRenter(c.Request().Context(), uid)
	if err != nil {
		return httpx.Error(c, h.Log, "sheet booking my", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

// GET /v1/sheet-bookings/sheet/:id
func (h *Controller) BySheet(c echo.Context) error {
	id, err := httpx.ID(c, "id")
	if err != nil {
		return httpx.Error(c, h.Log, "sheet booking by sheet", err)
	}
	out, err := h.Svc.ListBySheet(c.Request().Context(), id)
	if err != nil {
		return httpx.Error(c, h.Log, "sheet booking by sheet", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}
