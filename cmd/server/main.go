package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/golapp/field-booking/internal/booking"
	"github.com/golapp/field-booking/internal/config"
	"github.com/golapp/field-booking/internal/database"
	"github.com/golapp/field-booking/internal/handler"
	"github.com/golapp/field-booking/internal/middleware"
	"github.com/golapp/field-booking/internal/queue"
	"github.com/golapp/field-booking/internal/repository"
	"github.com/golapp/field-booking/internal/router"
	"github.com/golapp/field-booking/internal/scheduler"
	queuepub "github.com/golapp/field-booking/internal/service"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("timezone %q: %v", cfg.Timezone, err)
	}

	store := repository.NewBookingStore(db)
	svc := booking.New(store,
		booking.WithLocation(loc),
		booking.WithGrace(cfg.PendingGrace),
		booking.WithDayHours(cfg.DayHours),
		booking.WithPublisher(queuepub.Publisher{}),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Recurring status sweep: pendiente promotion and finalization.
	go scheduler.NewSweeper(svc, cfg.SweepInterval).Run(ctx)

	// Confirmation log consumer; runs its own reconnect loop.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("queue consumer stopped: %v", err)
		}
	}()

	// Redis is optional: when unreachable, rate limiting and caching are
	// disabled and the API keeps serving.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, rate limit and cache disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(echomw.CORS())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	var cacheMW echo.MiddlewareFunc
	if rdb != nil {
		cacheMW = middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	}

	router.Register(e, router.Deps{
		Auth:         handler.NewAuthHandler(cfg, repository.NewUserRepo(db)),
		Reservations: handler.NewReservationHandler(svc, repository.NewReservationRepo(db)),
		Dashboard:    handler.NewDashboardHandler(svc),
		Loans:        handler.NewLoanHandler(svc, repository.NewLoanRepo(db)),
		Equipment:    handler.NewEquipmentHandler(repository.NewEquipmentRepo(db)),
		Fields:       handler.NewFieldHandler(repository.NewFieldRepo(db)),
		FieldTypes:   handler.NewFieldTypeHandler(repository.NewFieldTypeRepo(db)),
		Rates:        handler.NewRateHandler(repository.NewRateRepo(db)),
		Users:        handler.NewUserHandler(cfg, repository.NewUserRepo(db)),
		JWTSecret:    cfg.JWTSecret,
		Cache:        cacheMW,
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, tz=%s)", addr, cfg.Env, cfg.Timezone)

	go func() {
		if err := e.Start(addr); err != nil {
			log.Printf("server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
