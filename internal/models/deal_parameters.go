package models

import "github.com/shopspring/decimal"

// PriceLevels are the three decreasing anchor prices defining the seller's
// negotiation zone. Reservation is the walk-away limit.
type PriceLevels struct {
	Opening     decimal.Decimal `json:"opening"`
	Target      decimal.Decimal `json:"target"`
	Reservation decimal.Decimal `json:"reservation"`
}

// DeliveryLevels mirror PriceLevels for delivery time in whole days.
type DeliveryLevels struct {
	Opening     int `json:"opening"`
	Target      int `json:"target"`
	Reservation int `json:"reservation"`
}

// VolumeTiers describe the standard order size and the two discount tiers
// available for larger commitments.
type VolumeTiers struct {
	Standard       int             `json:"standard"`
	Tier1Threshold int             `json:"tier_1_threshold"`
	Tier1Discount  decimal.Decimal `json:"tier_1_discount"`
	Tier2Threshold int             `json:"tier_2_threshold"`
	Tier2Discount  decimal.Decimal `json:"tier_2_discount"`
}

// DealParameters are the seller's hidden targets for one session. Generated
// once at session start and never mutated afterwards.
type DealParameters struct {
	Price    PriceLevels    `json:"price"`
	Delivery DeliveryLevels `json:"delivery"`
	Volume   VolumeTiers    `json:"volume"`
}
