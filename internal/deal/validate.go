package deal

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/TheJegede/Negotiator/internal/config"
	"github.com/TheJegede/Negotiator/internal/models"
)

// One sentinel per invariant so tests can assert exactly which constraint a
// set of parameters violates. Validation is a diagnostic aid; Generate never
// produces an invalid result.
var (
	ErrTargetNotBelowOpening         = errors.New("target price not below opening price")
	ErrReservationNotBelowTarget     = errors.New("reservation price not below target price")
	ErrReservationNotPositive        = errors.New("reservation price not positive")
	ErrPriceGapTooSmall              = errors.New("price levels closer than minimum gap")
	ErrReservationGapTooSmall        = errors.New("target and reservation price closer than minimum gap")
	ErrReservationBelowFloor         = errors.New("reservation price below opening floor")
	ErrDeliveryTargetNotBelowOpening = errors.New("target delivery not below opening delivery")
	ErrDeliveryReserveNotBelowTarget = errors.New("reservation delivery not below target delivery")
	ErrDeliveryReserveNotPositive    = errors.New("reservation delivery not positive")
	ErrDeliveryGapTooSmall           = errors.New("delivery levels closer than minimum gap")
	ErrDeliveryReserveGapTooSmall    = errors.New("target and reservation delivery closer than minimum gap")
	ErrStandardVolumeNotPositive     = errors.New("standard volume not positive")
	ErrTier1NotAboveStandard         = errors.New("tier 1 threshold not above standard volume")
	ErrTier2NotAboveTier1            = errors.New("tier 2 threshold not above tier 1 threshold")
)

// Validate checks every structural invariant of p against the generation
// constraints in cfg, returning the first violation found.
func Validate(p models.DealParameters, cfg config.DealConfig) error {
	if !p.Price.Target.LessThan(p.Price.Opening) {
		return fmt.Errorf("price %s/%s: %w", p.Price.Target, p.Price.Opening, ErrTargetNotBelowOpening)
	}
	if !p.Price.Reservation.LessThan(p.Price.Target) {
		return fmt.Errorf("price %s/%s: %w", p.Price.Reservation, p.Price.Target, ErrReservationNotBelowTarget)
	}
	if !p.Price.Reservation.IsPositive() {
		return fmt.Errorf("price %s: %w", p.Price.Reservation, ErrReservationNotPositive)
	}
	minGap := decimal.NewFromFloat(cfg.MinPriceGap)
	if p.Price.Opening.Sub(p.Price.Target).LessThan(minGap) {
		return fmt.Errorf("opening-target gap %s: %w", p.Price.Opening.Sub(p.Price.Target), ErrPriceGapTooSmall)
	}
	if p.Price.Target.Sub(p.Price.Reservation).LessThan(minGap) {
		return fmt.Errorf("target-reservation gap %s: %w", p.Price.Target.Sub(p.Price.Reservation), ErrReservationGapTooSmall)
	}
	floor := p.Price.Opening.Mul(decimal.NewFromFloat(cfg.ReservationFloorPct)).Round(2)
	if p.Price.Reservation.LessThan(floor) {
		return fmt.Errorf("reservation %s below floor %s: %w", p.Price.Reservation, floor, ErrReservationBelowFloor)
	}

	if p.Delivery.Target >= p.Delivery.Opening {
		return fmt.Errorf("delivery %d/%d: %w", p.Delivery.Target, p.Delivery.Opening, ErrDeliveryTargetNotBelowOpening)
	}
	if p.Delivery.Reservation >= p.Delivery.Target {
		return fmt.Errorf("delivery %d/%d: %w", p.Delivery.Reservation, p.Delivery.Target, ErrDeliveryReserveNotBelowTarget)
	}
	if p.Delivery.Reservation <= 0 {
		return fmt.Errorf("delivery %d: %w", p.Delivery.Reservation, ErrDeliveryReserveNotPositive)
	}
	if p.Delivery.Opening-p.Delivery.Target < cfg.MinDeliveryGap {
		return fmt.Errorf("opening-target gap %d: %w", p.Delivery.Opening-p.Delivery.Target, ErrDeliveryGapTooSmall)
	}
	if p.Delivery.Target-p.Delivery.Reservation < cfg.MinDeliveryGap {
		return fmt.Errorf("target-reservation gap %d: %w", p.Delivery.Target-p.Delivery.Reservation, ErrDeliveryReserveGapTooSmall)
	}

	if p.Volume.Standard <= 0 {
		return fmt.Errorf("standard volume %d: %w", p.Volume.Standard, ErrStandardVolumeNotPositive)
	}
	if p.Volume.Tier1Threshold <= p.Volume.Standard {
		return fmt.Errorf("tier 1 %d: %w", p.Volume.Tier1Threshold, ErrTier1NotAboveStandard)
	}
	if p.Volume.Tier2Threshold <= p.Volume.Tier1Threshold {
		return fmt.Errorf("tier 2 %d: %w", p.Volume.Tier2Threshold, ErrTier2NotAboveTier1)
	}

	return nil
}
