package review

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"musicrental/app/echoServer/httpx"
	"musicrental/app/echoServer/jwtx"
	rs "musicrental/service/review"
)

type Controller struct {
	Svc rs.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/reviews — renter reviews the rented item.
func (h *Controller) CreateReview(c echo.Context) error {
	req, uid, err := h.bindCreate(c)
	if err != nil {
		return err
	}
	rv, svcErr := h.Svc.CreateReview(c.Request().Context(), rs.CreateInput{
		BookingID: req.BookingID,
		Score:     req.Score,
		Comment:   req.Comment,
	}, uid)
	if svcErr != nil {
		return httpx.Error(c, h.Log, "review create", svcErr)
	}
	return c.JSON(http.StatusCreated, rv)
}

// POST /v1/renter-reviews — owner reviews the renter.
func (h *Controller) CreateRenterReview(c echo.Context) error {
	req, uid, err := h.bindCreate(c)
	if err != nil {
		return err
	}
	rv, svcErr := h.Svc.CreateRenterReview(c.Request().Context(), rs.CreateInput{
		BookingID: req.BookingID,
		Score:     req.Score,
		Comment:   req.Comment,
	}, uid)
	if svcErr != nil {
		return httpx.Error(c, h.Log, "renter review create", svcErr)
	}
	return c.JSON(http.StatusCreated, rv)
}

func (h *Controller) bindCreate(c echo.Context) (*CreateReviewReq, int64, error) {
	var req CreateReviewReq
	if err := c.Bind(&req); err != nil {
		return nil, 0, c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return nil, 0, c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return nil, 0, c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	return &req, uid, nil
}

// GET /v1/bookings/:id/can-review
func (h *Controller) CanReviewBooking(c echo.Context) error {
	id, err := httpx.ID(c, "id")
	if err != nil {
		return httpx.Error(c, h.Log, "can review", err)
	}
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"can_review": h.Svc.CanReviewBooking(c.Request().Context(), id, uid),
	})
}

// GET /v1/bookings/:id/can-review-renter
func (h *Controller) CanReviewRenter(c echo.Context) error {
	id, err := httpx.ID(c, "id")
	if err != nil {
		return httpx.Error(c, h.Log, "can review renter", err)
	}
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"can_review": h.Svc.CanReviewRenter(c.Request().Context(), id, uid),
	})
}

// GET /v1/items/:id/reviews
func (h *Controller) ReviewsByItem(c echo.Context) error {
	id, err := httpx.ID(c, "id")
	if err != nil {
		return httpx.Error(c, h.Log, "reviews by item", err)
	}
	out, err := h.Svc.ReviewsByItem(c.Request().Context(), id)
	if err != nil {
		return httpx.Error(c, h.Log, "reviews by item", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

// GET /v1/items/:id/average-score
func (h *Controller) AverageScoreByItem(c echo.Context) error {
	id, err := httpx.ID(c, "id")
	if err != nil {
		return httpx.Error(c, h.Log, "item average score", err)
	}
	avg, err := h.Svc.AverageScoreByItem(c.Request().Context(), id)
	if err != nil {
		return httpx.Error(c, h.Log, "item average score", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"average_score": avg})
}

// GET /v1/renters/:id/reviews
func (h *Controller) RenterReviewsByRenter(c echo.Context) error {
	id, err := httpx.ID(c, "id")
	if err != nil {
		return httpx.Error(c, h.Log, "reviews by renter", err)
	}
	out, err := h.Svc.RenterReviewsByRenter(c.Request().Context(), id)
	if err != nil {
		return httpx.Error(c, h.Log, "reviews by renter", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

// GET /v1/renters/:id/average-score
func (h *Controller) AverageScoreByRenter(c echo.Context) error {
	id, err := httpx.ID(c, "id")
	if err != nil {
		return httpx.Error(c, h.Log, "renter average score", err)
	}
	avg, err := h.Svc.AverageScoreByRenter(c.Request().Context(), id)
	if err != nil {
		return httpx.Error(c, h.Log, "renter average score", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"average_score": avg})
}

// GET /v1/reviews/booking/:id
func (h *Controller) ReviewByBooking(c echo.Context) error {
	id, err := httpx.ID(c, "id")
	if err != nil {
		return httpx.Error(c, h.Log, "review by booking", err)
	}
	rv, err := h.Svc.ReviewByBooking(c.Request().Context(), id)
	if err != nil {
		return httpx.Error(c, h.Log, "review by booking", err)
	}
	return c.JSON(http.StatusOK, rv)
}

// GET /v1/renter-reviews/booking/:id
func (h *Controller) RenterReviewByBooking(c echo.Context) error {
	id, err := httpx.ID(c, "id")
	if err != nil {
		return httpx.Error(c, h.Log, "renter review by booking", err)
	}
	rv, err := h.Svc.RenterReviewByBooking(c.Request().Context(), id)
	if err != nil {
		return httpx.Error(c, h.Log, "renter review by booking", err)
	}
	return c.JSON(http.StatusOK, rv)
}
