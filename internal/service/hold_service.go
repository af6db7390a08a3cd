package service

import (
    "context"
    "errors"
    "fmt"
    "log"
    "strings"
    "time"

    "github.com/iliyamo/airline-seat-reservation/internal/model"
    "github.com/iliyamo/airline-seat-reservation/internal/monitoring"
    "github.com/iliyamo/airline-seat-reservation/internal/repository"
)

const (
    // DefaultHoldTTL is how long a hold protects a seat before the
    // sweeper may reclaim it.
    DefaultHoldTTL = 10 * time.Minute
    // MaxBulkSeats caps multi-seat operations.
    MaxBulkSeats = 10
)

// SeatRegistry is the hold manager's view of seat state.  Implemented by
// repository.SeatRepo; tests substitute an in-memory fake.
type SeatRegistry interface {
    GetByID(ctx context.Context, seatID string) (*model.Seat, error)
    GetByIDs(ctx context.Context, seatIDs []string) ([]model.Seat, error)
    Block(ctx context.Context, seatID, userID string, expiresAt time.Time) (bool, error)
    ExtendHold(ctx context.Context, seatID, userID string, expiresAt time.Time) (bool, error)
    Release(ctx context.Context, seatID, userID string) (bool, error)
    BlockBulk(ctx context.Context, seatIDs []string, userID string, expiresAt time.Time) (int64, error)
    ReleaseBulk(ctx context.Context, seatIDs []string, userID string) (int64, error)
    ReclaimExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

// HoldService is the hold manager.  Single-seat operations are one
// conditional update plus a diagnostic read on failure; multi-seat
// operations validate every seat before mutating any and verify the bulk
// affected count afterwards to detect races.
type HoldService struct {
    seats   SeatRegistry
    holdTTL time.Duration
    now     func() time.Time
}

// NewHoldService constructs a HoldService.  A non-positive ttl falls back
// to DefaultHoldTTL.
func NewHoldService(seats SeatRegistry, ttl time.Duration) *HoldService {
    if ttl <= 0 {
        ttl = DefaultHoldTTL
    }
    return &HoldService{seats: seats, holdTTL: ttl, now: time.Now}
}

// BlockSeat attempts the available→blocked transition for userID and
// returns the hold expiry.  Re-blocking a seat the user already holds is
// idempotent and extends the expiry.
func (h *HoldService) BlockSeat(ctx context.Context, seatID, userID string) (time.Time, error) {
    expiresAt := h.now().UTC().Add(h.holdTTL)
    ok, err := h.seats.Block(ctx, seatID, userID, expiresAt)
    if err != nil {
        return time.Time{}, Internalf(err, "blocking seat %s", seatID)
    }
    if ok {
        monitoring.HoldOp("block", "success")
        return expiresAt, nil
    }

    // The conditional update missed; read the seat to name the reason.
    seat, err := h.seats.GetByID(ctx, seatID)
    if err != nil {
        if errors.Is(err, repository.ErrSeatNotFound) {
            monitoring.HoldOp("block", "not_found")
            return time.Time{}, NotFoundf("seat %s not found", seatID)
        }
        return time.Time{}, Internalf(err, "reading seat %s", seatID)
    }
    switch {
    case seat.Status == model.SeatBooked:
        monitoring.HoldOp("block", "conflict")
        return time.Time{}, Conflictf("seat %s is already booked", seat.SeatNumber)
    case seat.HeldBy(userID):
        ok, err := h.seats.ExtendHold(ctx, seatID, userID, expiresAt)
        if err != nil {
            return time.Time{}, Internalf(err, "extending hold on seat %s", seatID)
        }
        if !ok {
            // The hold was reclaimed between the read and the extend;
            // one fresh attempt covers the common case.
            if ok, err = h.seats.Block(ctx, seatID, userID, expiresAt); err != nil {
                return time.Time{}, Internalf(err, "blocking seat %s", seatID)
            }
            if !ok {
                monitoring.HoldOp("block", "conflict")
                return time.Time{}, Conflictf("seat %s is currently held by another user", seat.SeatNumber)
            }
        }
        monitoring.HoldOp("block", "extended")
        return expiresAt, nil
    case seat.Status == model.SeatBlocked:
        monitoring.HoldOp("block", "conflict")
        return time.Time{}, Conflictf("seat %s is currently held by another user", seat.SeatNumber)
    default:
        monitoring.HoldOp("block", "conflict")
        return time.Time{}, Conflictf("seat %s is not available for blocking", seat.SeatNumber)
    }
}

// UnblockSeat releases a hold.  With a non-empty userID only that owner's
// hold may be released; an empty userID is the privileged path used by
// rollback and never fails on an unheld seat.
func (h *HoldService) UnblockSeat(ctx context.Context, seatID, userID string) error {
    if userID == "" {
        if _, err := h.seats.Release(ctx, seatID, ""); err != nil {
            return Internalf(err, "releasing seat %s", seatID)
        }
        monitoring.HoldOp("unblock", "system")
        return nil
    }
    ok, err := h.seats.Release(ctx, seatID, userID)
    if err != nil {
        return Internalf(err, "releasing seat %s", seatID)
    }
    if ok {
        monitoring.HoldOp("unblock", "success")
        return nil
    }
    seat, err := h.seats.GetByID(ctx, seatID)
    if err != nil {
        if errors.Is(err, repository.ErrSeatNotFound) {
            return NotFoundf("seat %s not found", seatID)
        }
        return Internalf(err, "reading seat %s", seatID)
    }
    if seat.Status != model.SeatBlocked {
        monitoring.HoldOp("unblock", "conflict")
        return Conflictf("seat %s is not blocked", seat.SeatNumber)
    }
    monitoring.HoldOp("unblock", "unauthorized")
    return Unauthorizedf("you can only unblock seats that you have blocked")
}

// BlockMultiple holds up to MaxBulkSeats seats for userID with
// all-or-nothing semantics.  Every precondition violation across the set
// is collected into one conflict so the caller sees exactly which seats
// blocked the request.  A race detected after the bulk mutation rolls
// back the seats this call freshly blocked and fails the whole call.
func (h *HoldService) BlockMultiple(ctx context.Context, seatIDs []string, userID string) (time.Time, error) {
    ids, err := h.normalizeIDs(seatIDs)
    if err != nil {
        return time.Time{}, err
    }
    seats, err := h.fetchAll(ctx, ids)
    if err != nil {
        return time.Time{}, err
    }

    var violations []string
    fresh := make([]string, 0, len(ids)) // seats this call will newly block
    for _, seat := range seats {
        switch {
        case seat.Status == model.SeatAvailable:
            fresh = append(fresh, seat.ID)
        case seat.Status == model.SeatBooked:
            violations = append(violations, fmt.Sprintf("seat %s is already booked", seat.SeatNumber))
        case seat.HeldBy(userID):
            // already ours; the bulk update extends the expiry
        case seat.Status == model.SeatBlocked:
            violations = append(violations, fmt.Sprintf("seat %s is held by another user", seat.SeatNumber))
        default:
            violations = append(violations, fmt.Sprintf("seat %s is not available", seat.SeatNumber))
        }
    }
    if len(violations) > 0 {
        monitoring.HoldOp("block_multiple", "conflict")
        return time.Time{}, Conflictf("%s", strings.Join(violations, "; "))
    }

    expiresAt := h.now().UTC().Add(h.holdTTL)
    affected, err := h.seats.BlockBulk(ctx, ids, userID, expiresAt)
    if err != nil {
        return time.Time{}, Internalf(err, "blocking %d seats", len(ids))
    }
    if affected != int64(len(ids)) {
        // Another actor grabbed a seat between validation and mutation.
        // Best-effort rollback of our fresh holds; the owner condition on
        // the release keeps competitors' holds intact, and the sweeper
        // covers anything this misses.
        if len(fresh) > 0 {
            if _, rbErr := h.seats.ReleaseBulk(ctx, fresh, userID); rbErr != nil {
                log.Printf("hold: rollback of partial bulk block failed: %v", rbErr)
            }
        }
        monitoring.HoldOp("block_multiple", "race")
        return time.Time{}, Conflictf("seat availability changed while blocking; no seats were blocked")
    }
    monitoring.HoldOp("block_multiple", "success")
    return expiresAt, nil
}

// UnblockMultiple releases holds on up to MaxBulkSeats seats with
// all-or-nothing semantics.  An empty userID is the privileged path and
// releases whatever subset is currently blocked.
func (h *HoldService) UnblockMultiple(ctx context.Context, seatIDs []string, userID string) error {
    ids, err := h.normalizeIDs(seatIDs)
    if err != nil {
        return err
    }
    if userID == "" {
        if _, err := h.seats.ReleaseBulk(ctx, ids, ""); err != nil {
            return Internalf(err, "releasing %d seats", len(ids))
        }
        monitoring.HoldOp("unblock_multiple", "system")
        return nil
    }
    seats, err := h.fetchAll(ctx, ids)
    if err != nil {
        return err
    }
    var violations []string
    unauthorized := false
    for _, seat := range seats {
        switch {
        case seat.HeldBy(userID):
        case seat.Status == model.SeatBlocked:
            unauthorized = true
            violations = append(violations, fmt.Sprintf("seat %s is held by another user", seat.SeatNumber))
        default:
            violations = append(violations, fmt.Sprintf("seat %s is not blocked", seat.SeatNumber))
        }
    }
    if len(violations) > 0 {
        monitoring.HoldOp("unblock_multiple", "conflict")
        msg := strings.Join(violations, "; ")
        if unauthorized {
            return Unauthorizedf("%s", msg)
        }
        return Conflictf("%s", msg)
    }
    affected, err := h.seats.ReleaseBulk(ctx, ids, userID)
    if err != nil {
        return Internalf(err, "releasing %d seats", len(ids))
    }
    if affected != int64(len(ids)) {
        monitoring.HoldOp("unblock_multiple", "race")
        return Conflictf("seat states changed while unblocking")
    }
    monitoring.HoldOp("unblock_multiple", "success")
    return nil
}

// normalizeIDs deduplicates and bounds a bulk seat ID list.
func (h *HoldService) normalizeIDs(seatIDs []string) ([]string, error) {
    seen := make(map[string]struct{}, len(seatIDs))
    ids := make([]string, 0, len(seatIDs))
    for _, id := range seatIDs {
        if id == "" {
            continue
        }
        if _, ok := seen[id]; ok {
            continue
        }
        seen[id] = struct{}{}
        ids = append(ids, id)
    }
    if len(ids) == 0 {
        return nil, BadRequestf("no seat ids provided")
    }
    if len(ids) > MaxBulkSeats {
        return nil, BadRequestf("at most %d seats per request", MaxBulkSeats)
    }
    return ids, nil
}

// fetchAll loads every referenced seat and fails with one not-found
// naming all missing IDs.
func (h *HoldService) fetchAll(ctx context.Context, ids []string) ([]model.Seat, error) {
    seats, err := h.seats.GetByIDs(ctx, ids)
    if err != nil {
        return nil, Internalf(err, "reading %d seats", len(ids))
    }
    if len(seats) != len(ids) {
        found := make(map[string]struct{}, len(seats))
        for _, s := range seats {
            found[s.ID] = struct{}{}
        }
        var missing []string
        for _, id := range ids {
            if _, ok := found[id]; !ok {
                missing = append(missing, id)
            }
        }
        return nil, NotFoundf("seats not found: %s", strings.Join(missing, ", "))
    }
    return seats, nil
}
