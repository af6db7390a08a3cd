package main // Entry point package

import (
    "context"
    "log"
    "os/signal"
    "syscall"
    "time"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/airline-seat-reservation/internal/config"
    "github.com/iliyamo/airline-seat-reservation/internal/database"
    "github.com/iliyamo/airline-seat-reservation/internal/handler"
    "github.com/iliyamo/airline-seat-reservation/internal/middleware"
    "github.com/iliyamo/airline-seat-reservation/internal/queue"
    "github.com/iliyamo/airline-seat-reservation/internal/repository"
    "github.com/iliyamo/airline-seat-reservation/internal/router"
    "github.com/iliyamo/airline-seat-reservation/internal/service"
)

func main() {
    _ = godotenv.Load() // .env is optional; real env vars win
    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    seatRepo := repository.NewSeatRepo(db)
    flightRepo := repository.NewFlightRepo(db)
    fareRepo := repository.NewFareRepo(db)
    bookingRepo := repository.NewBookingRepo(db)
    userRepo := repository.NewUserRepo(db)

    holds := service.NewHoldService(seatRepo, cfg.HoldTTL)
    bookings := service.NewBookingService(repository.NewDB(db), seatRepo, flightRepo, fareRepo, bookingRepo, userRepo)
    sweeper := service.NewSweeper(seatRepo, cfg.SweepInterval)

    ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
    defer stop()

    go sweeper.Run(ctx)
    go func() {
        if err := queue.StartBookingConsumer(cfg.RabbitURL); err != nil {
            log.Printf("booking-consumer: %v", err)
        }
    }()

    e := echo.New()
    e.HideBanner = true

    seatHandler := handler.NewSeatHandler(holds, bookings)
    bookingHandler := handler.NewBookingHandler(bookings, cfg.RabbitURL)

    // Redis is optional; without it the limiter is a no-op.
    rdb := config.NewRedisClient()
    limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

    router.RegisterRoutes(e, seatHandler)
    router.RegisterAPI(e, seatHandler, bookingHandler, cfg.JWTSecret, limiter)

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)
    go func() {
        if err := e.Start(addr); err != nil {
            log.Printf("server: %v", err)
        }
    }()

    <-ctx.Done()
    shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()
    if err := e.Shutdown(shutdownCtx); err != nil {
        log.Printf("shutdown: %v", err)
    }
}
