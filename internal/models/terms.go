package models

import "github.com/shopspring/decimal"

// Terms holds the optionally-present numeric fields of an offer or an
// agreement. Presence is carried by the pointer, not by the value: a price
// or volume of literal 0 is present. Nil means the field was never stated.
type Terms struct {
	Price    *decimal.Decimal `json:"price,omitempty"`
	Delivery *int             `json:"delivery,omitempty"`
	Volume   *int             `json:"volume,omitempty"`
}

// FieldCount returns how many of the three fields are present.
func (t Terms) FieldCount() int {
	n := 0
	if t.Price != nil {
		n++
	}
	if t.Delivery != nil {
		n++
	}
	if t.Volume != nil {
		n++
	}
	return n
}

// Missing lists the absent field names in a fixed order.
func (t Terms) Missing() []string {
	missing := make([]string, 0, 3)
	if t.Price == nil {
		missing = append(missing, "price")
	}
	if t.Delivery == nil {
		missing = append(missing, "delivery")
	}
	if t.Volume == nil {
		missing = append(missing, "volume")
	}
	return missing
}

// Complete reports whether all three fields are present.
func (t Terms) Complete() bool {
	return t.FieldCount() == 3
}
