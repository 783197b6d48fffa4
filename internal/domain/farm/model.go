// Package farm tracks the farm's own milk production log: one record per
// calendar day with morning and evening volumes, plus an optional manual
// opening-stock override used by stock reconciliation.
package farm

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"milkledger/internal/core/apperror"
	"milkledger/internal/core/dateutil"
	"milkledger/internal/core/id"
)

// StockOverride is the tri-state opening-stock setting of a day:
//
//   - unset: the day never had an override, stock is derived;
//   - auto: an override existed and was explicitly reverted, stock is
//     derived again;
//   - manual: the operator pinned the day's opening stock to a value.
//
// Unset and auto derive the same way, but they are kept apart so a revert
// is visible as a deliberate action rather than missing data.
//
// In JSON a number means manual, null means auto, and an absent field
// stays unset (UnmarshalJSON is never called for absent fields).
type StockOverride struct {
	set   bool
	value *float64
}

// ManualStock pins the opening stock to a value.
func ManualStock(v float64) StockOverride {
	return StockOverride{set: true, value: &v}
}

// AutoStock marks the override as explicitly reverted.
func AutoStock() StockOverride {
	return StockOverride{set: true}
}

// IsSet reports whether the override was ever touched (manual or auto).
func (o StockOverride) IsSet() bool { return o.set }

// Manual returns the pinned value, if any.
func (o StockOverride) Manual() (float64, bool) {
	if o.set && o.value != nil {
		return *o.value, true
	}
	return 0, false
}

// Columns maps the override onto its two storage columns.
func (o StockOverride) Columns() (value *float64, set bool) {
	return o.value, o.set
}

// OverrideFromColumns rebuilds the override from its storage columns.
func OverrideFromColumns(value *float64, set bool) StockOverride {
	if !set {
		return StockOverride{}
	}
	return StockOverride{set: true, value: value}
}

// MarshalJSON renders manual values as numbers and everything else as null.
func (o StockOverride) MarshalJSON() ([]byte, error) {
	if v, ok := o.Manual(); ok {
		return json.Marshal(v)
	}
	return []byte("null"), nil
}

// UnmarshalJSON reads null as auto and a number as manual.
func (o *StockOverride) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = AutoStock()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = ManualStock(v)
	return nil
}

// FarmRecord is one day of own-farm production. At most one record exists
// per date.
type FarmRecord struct {
	ID   id.ID  `json:"id"`
	Date string `json:"date"` // YYYY-MM-DD

	MorningQty float64 `json:"morningQty"`
	EveningQty float64 `json:"eveningQty"`
	TotalQty   float64 `json:"totalQty"`

	OpeningStock StockOverride `json:"openingStock"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Day returns the record's day key.
func (r FarmRecord) Day() string { return r.Date }

// Validate checks record fields before persisting.
func (r *FarmRecord) Validate(ctx context.Context) error {
	if !dateutil.IsDay(r.Date) {
		return apperror.NewValidation("invalid date, expected YYYY-MM-DD").
			WithDetail("field", "date").
			WithDetail("value", r.Date)
	}
	if r.MorningQty < 0 || r.EveningQty < 0 {
		return apperror.NewValidation("quantities cannot be negative").
			WithDetail("field", "quantity")
	}
	if r.TotalQty != r.MorningQty+r.EveningQty {
		return apperror.NewValidation("total quantity must equal morning plus evening").
			WithDetail("field", "totalQty")
	}
	if v, ok := r.OpeningStock.Manual(); ok && v < 0 {
		return apperror.NewValidation("opening stock cannot be negative").
			WithDetail("field", "openingStock")
	}
	return nil
}
