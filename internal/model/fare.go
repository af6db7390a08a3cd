package model

import (
    "time"

    "github.com/shopspring/decimal"
)

// Fare is the active price for one flight/seat-class pair.  TotalPrice is
// precomputed as base + tax + service fee and copied into bookings at
// commit time; later fare changes never affect existing bookings.
//
// Fields:
//  ID          – primary key (uuid).
//  FlightID    – flight being priced.
//  SeatClassID – class being priced.
//  BasePrice   – base fare.
//  Tax         – tax portion.
//  ServiceFee  – service fee portion.
//  TotalPrice  – base + tax + service fee.
//  Currency    – ISO 4217 code.
//  IsActive    – only active fares are resolvable.
//  ValidFrom   – optional validity window start.
//  ValidTo     – optional validity window end.
type Fare struct {
    ID          string          // fares.id
    FlightID    string          // fares.flight_id
    SeatClassID string          // fares.seat_class_id
    BasePrice   decimal.Decimal // fares.base_price
    Tax         decimal.Decimal // fares.tax
    ServiceFee  decimal.Decimal // fares.service_fee
    TotalPrice  decimal.Decimal // fares.total_price
    Currency    string          // fares.currency
    IsActive    bool            // fares.is_active
    ValidFrom   *time.Time      // fares.valid_from (nullable)
    ValidTo     *time.Time      // fares.valid_to (nullable)
    CreatedAt   time.Time       // fares.created_at
    UpdatedAt   time.Time       // fares.updated_at
}
