package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4"
    "github.com/prometheus/client_golang/prometheus/promhttp"

    "github.com/iliyamo/airline-seat-reservation/internal/handler"
    "github.com/iliyamo/airline-seat-reservation/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance: the health check, the Prometheus metrics
// endpoint and the public flight seat map.
func RegisterRoutes(e *echo.Echo, seats *handler.SeatHandler) {
    // Health check for load balancers and monitoring systems.
    e.GET("/healthz", handler.Health)
    // Prometheus scrape endpoint.
    e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
    // Guests can browse a flight's seat map before logging in.
    e.GET("/v1/flights/:id/seats", seats.ListFlightSeats)
}

// RegisterAPI registers the authenticated reservation API under /v1.
// Every route in the group runs the JWT middleware followed by the Redis
// token-bucket rate limiter, so hold and booking traffic shares one
// budget per user across replicas.
func RegisterAPI(e *echo.Echo, seats *handler.SeatHandler, bookings *handler.BookingHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
    api := e.Group("/v1")
    api.Use(middleware.JWTAuth(jwtSecret))
    if limiter != nil {
        api.Use(limiter)
    }

    // Seat holds.
    api.POST("/seats/:id/block", seats.Block)
    api.DELETE("/seats/:id/block", seats.Unblock)
    api.POST("/flights/:id/seats/block", seats.BlockMultiple)
    api.DELETE("/flights/:id/seats/block", seats.UnblockMultiple)

    // Fare quoting.
    api.POST("/fares/calculate", bookings.CalculateFare)

    // Bookings.
    api.POST("/bookings", bookings.Create)
    api.POST("/bookings/group", bookings.CreateGroup)
    api.GET("/bookings", bookings.List)
    api.GET("/bookings/stats", bookings.Stats)
    api.GET("/bookings/reference/:reference", bookings.GetByReference)
    api.GET("/bookings/:id", bookings.Get)
    api.DELETE("/bookings/:id", bookings.Cancel)
    api.GET("/my-bookings", bookings.ListMine)
}
