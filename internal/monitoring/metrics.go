// Package monitoring exposes Prometheus metrics for the reservation core.
package monitoring

import (
    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/promauto"
)

var (
    holdOps = promauto.NewCounterVec(
        prometheus.CounterOpts{
            Name: "seat_hold_operations_total",
            Help: "Hold manager operations by outcome",
        },
        []string{"operation", "outcome"},
    )

    bookingOps = promauto.NewCounterVec(
        prometheus.CounterOpts{
            Name: "booking_operations_total",
            Help: "Booking coordinator operations by outcome",
        },
        []string{"operation", "outcome"},
    )

    sweeperRuns = promauto.NewCounterVec(
        prometheus.CounterOpts{
            Name: "sweeper_runs_total",
            Help: "Expiry sweeper runs by outcome",
        },
        []string{"outcome"},
    )

    sweeperReclaimed = promauto.NewCounter(
        prometheus.CounterOpts{
            Name: "sweeper_reclaimed_holds_total",
            Help: "Seat holds reclaimed by the expiry sweeper",
        },
    )
)

// HoldOp records one hold manager operation.
func HoldOp(operation, outcome string) {
    holdOps.WithLabelValues(operation, outcome).Inc()
}

// BookingOp records one booking coordinator operation.
func BookingOp(operation, outcome string) {
    bookingOps.WithLabelValues(operation, outcome).Inc()
}

// SweepCompleted records a successful sweep and how many holds it freed.
func SweepCompleted(reclaimed int64) {
    sweeperRuns.WithLabelValues("success").Inc()
    sweeperReclaimed.Add(float64(reclaimed))
}

// SweepFailed records a failed sweep.
func SweepFailed() {
    sweeperRuns.WithLabelValues("error").Inc()
}
