package availability

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"musicrental/app/echoServer/httpx"
	"musicrental/model"
	as "musicrental/service/availability"
)

type Controller struct {
	Svc as.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/availability
func (h *Controller) Create(c echo.Context) error {
	var req CreateUnavailabilityReq
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
		return httpx.Error(c, h.Log, "availability create", err)
	}
	end, err := httpx.Date(req.EndDate)
	if err != nil {
		return httpx.Error(c, h.Log, "availability create", err)
	}

	a, err := h.Svc.CreateUnavailability(c.Request().Context(), req.InstrumentID, start, end, model.AvailabilityReason(req.Reason))
	if err != nil {
		return httpx.Error(c, h.Log, "availability create", err)
	}
	return c.JSON(http.StatusCreated, a)
}

// GET /v1/availability
func (h *Controller) List(c echo.Context) error {
	out, err := h.Svc.List(c.Request().Context())
	if err != nil {
		return httpx.Error(c, h.Log, "availability list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

// GET /v1/availability/instrument/:id
func (h *Controller) ListByInstrument(c echo.Context) error {
	id, err := httpx.ID(c, "id")
	if err != nil {
		return httpx.Error(c, h.Log, "availability by instrument", err)
	}
	out, err := h.Svc.ListByInstrument(c.Request().Context(), id)
	if err != nil {
		return httpx.Error(c, h.Log, "availability by instrument", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

// GET /v1/availability/check?instrument_id=&start_date=&end_date=
func (h *Controller) Check(c echo.Context) error {
	instrumentID, err := httpx.QueryID(c, "instrument_id")
	if err != nil {
		return httpx.Error(c, h.Log, "availability check", err)
	}
	start, err := httpx.Date(c.QueryParam("start_date"))
	if err != nil {
		return httpx.Error(c, h.Log, "availability check", err)
	}
	end, err := httpx.Date(c.QueryParam("end_date"))
	if err != nil {
		return httpx.Error(c, h.Log, "availability check", err)
	}

	ok, err := h.Svc.IsAvailable(c.Request().Context(), instrumentID, start, end)
	if err != nil {
		return httpx.Error(c, h.Log, "availability check", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"available": ok})
}

// DELETE /v1/availability/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := httpx.ID(c, "id")
	if err != nil {
		return httpx.Error(c, h.Log, "availability delete", err)
	}
	if err := h.Svc.DeleteUnavailability(c.Request().Context(), id); err != nil {
		return httpx.Error(c, h.Log, "availability delete", err)
	}
	return c.NoContent(http.StatusNoContent)
}
