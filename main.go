// Package main instrument rental API.
//
// @title           Music Rental API
// @version         1.0
// @description     Peer-to-peer instrument and music sheet rental marketplace.
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"musicrental/app/echoServer"
	adminctrl "musicrental/app/echoServer/controller/admin"
	availctrl "musicrental/app/echoServer/controller/availability"
	bookingctrl "musicrental/app/echoServer/controller/booking"
	itemsctrl "musicrental/app/echoServer/controller/items"
	paymentctrl "musicrental/app/echoServer/controller/payment"
	reviewctrl "musicrental/app/echoServer/controller/review"
	sheetctrl "musicrental/app/echoServer/controller/sheetbooking"
	"musicrental/app/echoServer/validation"
	"musicrental/config"
	"musicrental/gateway"
	"musicrental/metrics"
	availrepo "musicrental/repository/availability"
	bookingrepo "musicrental/repository/booking"
	itemrepo "musicrental/repository/item"
	paymentrepo "musicrental/repository/payment"
	reviewrepo "musicrental/repository/review"
	userrepo "musicrental/repository/user"
	adminsvc "musicrental/service/admin"
	availsvc "musicrental/service/availability"
	bookingsvc "musicrental/service/booking"
	catalogsvc "musicrental/service/catalog"
	paymentsvc "musicrental/service/payment"
	reviewsvc "musicrental/service/review"
	sheetsvc "musicrental/service/sheetbooking"
	"musicrental/util/database"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	ir := itemrepo.New(db.DB)
	ur := userrepo.New(db.DB)
	avr := availrepo.New(db.DB)
	br := bookingrepo.New(db.DB)
	pr := paymentrepo.New(db.DB)
	rr := reviewrepo.New(db.DB)

	// services
	rec := metrics.New()
	cs := catalogsvc.New(ir)
	avs := availsvc.New(avr)
	bs := bookingsvc.New(db, br, ir, ur, rec)
	sbs := sheetsvc.New(bs, ir)
	ps := paymentsvc.New(db, pr, br, ir, &gateway.Simulated{})
	rvs := reviewsvc.New(db, rr, br, ir)
	ads := adminsvc.New(br, bs)

	// controllers
	v := validator.New()
	itemsC := &itemsctrl.Controller{Svc: cs, Log: log}
	availC := &availctrl.Controller{Svc: avs, V: v, Log: log}
	bookingC := &bookingctrl.Controller{Svc: bs, V: v, Log: log}
	sheetC := &sheetctrl.Controller{Svc: sbs, V: v, Log: log}
	paymentC := &paymentctrl.Controller{Svc: ps, V: v, Log: log}
	reviewC := &reviewctrl.Controller{Svc: rvs, V: v, Log: log}
	adminC := &adminctrl.Controller{Svc: ads, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	echoServer.Register(e, echoServer.C{
		Items:        itemsC,
		Availability: availC,
		Booking:      bookingC,
		SheetBooking: sheetC,
		Payment:      paymentC,
		Review:       reviewC,
		Admin:        adminC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	slog.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
