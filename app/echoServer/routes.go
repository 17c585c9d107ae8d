package echoServer

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"musicrental/app/echoServer/controller/admin"
	"musicrental/app/echoServer/controller/availability"
	"musicrental/app/echoServer/controller/booking"
	"musicrental/app/echoServer/controller/items"
	"musicrental/app/echoServer/controller/payment"
	"musicrental/app/echoServer/controller/review"
	"musicrental/app/echoServer/controller/sheetbooking"
)

type C struct {
	Items        *items.Controller
	Availability *availability.Controller
	Booking      *booking.Controller
	SheetBooking *sheetbooking.Controller
	Payment      *payment.Controller
	Review       *review.Controller
	Admin        *admin.Controller
	JWTSecret    string
}

func Register(e *echo.Echo, c C) {
	// Public
	e.GET("/healthz", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Auth
	auth := e.Group("/v1")
	auth.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(c.JWTSecret),
		TokenLookup: "header:Authorization:Bearer ",
		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
	}))

	// Catalog
	auth.GET("/items", c.Items.List)
	auth.GET("/items/my", c.Items.MyItems)
	auth.GET("/items/:id", c.Items.Detail)
	auth.GET("/items/:id/reviews", c.Review.ReviewsByItem)
	auth.GET("/items/:id/average-score", c.Review.AverageScoreByItem)

	// Availability
	auth.POST("/availability", c.Availability.Create)
	auth.GET("/availability", c.Availability.List)
	auth.GET("/availability/check", c.Availability.Check)
	auth.GET("/availability/instrument/:id", c.Availability.ListByInstrument)
	auth.DELETE("/availability/:id", c.Availability.Delete)

	// Bookings
	auth.POST("/bookings", c.Booking.Create)
	auth.GET("/bookings/my", c.Booking.MyBookings)
	auth.GET("/bookings/:id", c.Booking.Detail)
	auth.PUT("/bookings/:id/approve", c.Booking.Approve)
	auth.PUT("/bookings/:id/reject", c.Booking.Reject)
	auth.GET("/bookings/:id/can-review", c.Review.CanReviewBooking)
	auth.GET("/bookings/:id/can-review-renter", c.Review.CanReviewRenter)

	// Sheet bookings
	auth.POST("/sheet-bookings", c.SheetBooking.Create)
	auth.GET("/sheet-bookings/my", c.SheetBooking.MyBookings)
	auth.GET("/sheet-bookings/sheet/:id", c.SheetBooking.BySheet)

	// Payments
	auth.POST("/payments", c.Payment.Initiate)
	auth.POST("/payments/checkout", c.Payment.InitiateAndProcess)
	auth.GET("/payments/my", c.Payment.MyPayments)
	auth.POST("/payments/:id/process", c.Payment.Process)
	auth.POST("/payments/:id/refund", c.Payment.Refund)
	auth.POST("/payments/:id/cancel", c.Payment.Cancel)
	auth.GET("/payments/:id", c.Payment.Detail)
	auth.GET("/payments/booking/:id", c.Payment.ByBooking)
	auth.GET("/payments/booking/:id/paid", c.Payment.IsBookingPaid)

	// Reviews
	auth.POST("/reviews", c.Review.CreateReview)
	auth.POST("/renter-reviews", c.Review.CreateRenterReview)
	auth.GET("/reviews/booking/:id", c.Review.ReviewByBooking)
	auth.GET("/renter-reviews/booking/:id", c.Review.RenterReviewByBooking)
	auth.GET("/renters/:id/reviews", c.Review.RenterReviewsByRenter)
	auth.GET("/renters/:id/average-score", c.Review.AverageScoreByRenter)

	// Admin
	adm := auth.Group("/admin")
	adm.Use(RequireRole("admin"))
	adm.GET("/bookings", c.Admin.Bookings)
	adm.POST("/bookings/:id/cancel", c.Admin.CancelBooking)
	adm.GET("/statistics", c.Admin.Statistics)
	adm.GET("/renters/:id/activity", c.Admin.RenterActivity)
	adm.GET("/owners/:id/activity", c.Admin.OwnerActivity)
	adm.GET("/owners/:id/revenue", c.Admin.RevenueByOwner)
	adm.GET("/revenue", c.Admin.TotalRevenue)
}
