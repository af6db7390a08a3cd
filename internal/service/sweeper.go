package service

import (
    "context"
    "log"
    "time"

    "github.com/iliyamo/airline-seat-reservation/internal/monitoring"
)

// DefaultSweepInterval is how often expired holds are reclaimed.
const DefaultSweepInterval = 60 * time.Second

// Sweeper periodically returns seats whose hold expired back to
// available.  Reclamation races benignly with booking commits: the
// conditional reclaim only touches rows still blocked with a past
// expiry, so a seat booked just in time is never reverted.
type Sweeper struct {
    seats    SeatRegistry
    interval time.Duration
    now      func() time.Time
}

// NewSweeper builds a sweeper over the given seat registry.  A
// non-positive interval falls back to DefaultSweepInterval.
func NewSweeper(seats SeatRegistry, interval time.Duration) *Sweeper {
    if interval <= 0 {
        interval = DefaultSweepInterval
    }
    return &Sweeper{seats: seats, interval: interval, now: time.Now}
}

// Run sweeps on a fixed interval until ctx is cancelled.  Intended to be
// started as a goroutine at process startup.
func (s *Sweeper) Run(ctx context.Context) {
    ticker := time.NewTicker(s.interval)
    defer ticker.Stop()
    log.Printf("sweeper: reclaiming expired holds every %s", s.interval)
    for {
        select {
        case <-ctx.Done():
            log.Printf("sweeper: stopped")
            return
        case <-ticker.C:
            s.sweep(ctx)
        }
    }
}

func (s *Sweeper) sweep(ctx context.Context) {
    reclaimed, err := s.seats.ReclaimExpired(ctx, s.now().UTC())
    if err != nil {
        log.Printf("sweeper: reclaim failed: %v", err)
        monitoring.SweepFailed()
        return
    }
    if reclaimed > 0 {
        log.Printf("sweeper: reclaimed %d expired holds", reclaimed)
    }
    monitoring.SweepCompleted(reclaimed)
}
