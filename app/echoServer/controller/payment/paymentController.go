package payment

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"musicrental/app/echoServer/httpx"
	"musicrental/app/echoServer/jwtx"
	ps "musicrental/service/payment"
)

type Controller struct {
	Svc ps.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/payments
func (h *Controller) Initiate(c echo.Context) error {
	var req InitiatePaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	p, err := h.Svc.Initiate(c.Request().Context(), req.BookingID, req.Method)
	if err != nil {
		return httpx.Error(c, h.Log, "payment initiate", err)
	}
	return c.JSON(http.StatusCreated, p)
}

// POST /v1/payments/:id/process
func (h *Controller) Process(c echo.Context) error {
	id, err := httpx.ID(c, "id")
	if err != nil {
		return httpx.Error(c, h.Log, "payment process", err)
	}
	var req ProcessPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}

	p, err := h.Svc.Process(c.Request().Context(), id, ps.Request{
		Method:     req.Method,
		CardNumber: req.CardNumber,
		CardHolder: req.CardHolder,
	})
	if err != nil {
		return httpx.Error(c, h.Log, "payment process", err)
	}
	return c.JSON(http.StatusOK, p)
}

// POST /v1/payments/checkout
func (h *Controller) InitiateAndProcess(c echo.Context) error {
	var req InitiateAndProcessReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	p, err := h.Svc.InitiateAndProcess(c.Request().Context(), req.BookingID, ps.Request{
		Method:     req.Method,
		CardNumber: req.CardNumber,
		CardHolder: req.CardHolder,
	})
	if err != nil {
		return httpx.Error(c, h.Log, "payment checkout", err)
	}
	return c.JSON(http.StatusCreated, p)
}

// POST /v1/payments/:id/refund
func (h *Controller) Refund(c echo.Context) error {
	id, err := httpx.ID(c, "id")
	if err != nil {
		return httpx.Error(c, h.Log, "payment refund", err)
	}
	p, err := h.Svc.Refund(c.Request().Context(), id)
	if err != nil {
		return httpx.Error(c, h.Log, "payment refund", err)
	}
	return c.JSON(http.StatusOK, p)
}

// POST /v1/payments/:id/cancel
func (h *Controller) Cancel(c echo.Context) error {
	id, err := httpx.ID(c, "id")
	if err != nil {
		return httpx.Error(c, h.Log, "payment cancel", err)
	}
	p, err := h.Svc.Cancel(c.Request().Context(), id)
	if err != nil {
		return httpx.Error(c, h.Log, "payment cancel", err)
	}
	return c.JSON(http.StatusOK, p)
}

// GET /v1/payments/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := httpx.ID(c, "id")
	if err != nil {
		return httpx.Error(c, h.Log, "payment detail", err)
	}
	p, err := h.Svc.ByID(c.Request().Context(), id)
	if err != nil {
		return httpx.Error(c, h.Log, "payment detail", err)
	}
	return c.JSON(http.StatusOK, p)
}

// GET /v1/payments/booking/:id
func (h *Controller) ByBooking(c echo.Context) error {
	id, err := httpx.ID(c, "id")
	if err != nil {
		return httpx.Error(c, h.Log, "payment by booking", err)
	}
	p, err := h.Svc.ByBooking(c.Request().Context(), id)
	if err != nil {
		return httpx.Error(c, h.Log, "payment by booking", err)
	}
	return c.JSON(http.StatusOK, p)
}

// GET /v1/payments/booking/:id/paid
func (h *Controller) IsBookingPaid(c echo.Context) error {
	id, err := httpx.ID(c, "id")
	if err != nil {
		return httpx.Error(c, h.Log, "payment paid", err)
	}
	paid, err := h.Svc.IsBookingPaid(c.Request().Context(), id)
	if err != nil {
		return httpx.Error(c, h.Log, "payment paid", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"paid": paid})
}

// GET /v1/payments/my
func (h *Controller) MyPayments(c echo.Context) error {
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	out, err := h.Svc.ListByRenter(c.Request().Context(), uid)
	if err != nil {
		return httpx.Error(c, h.Log, "payment my", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}
