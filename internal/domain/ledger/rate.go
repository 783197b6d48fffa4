package ledger

import (
	"github.com/shopspring/decimal"
)

// EffectiveRate resolves the price per liter that applies to a record.
//
// Resolution order:
//  1. the record's own snapshot, when present;
//  2. the rate implied by the stored billing, TotalPrice / TotalQty, when
//     both are positive;
//  3. the contact's current global rate.
//
// The snapshot wins even when the global rate has since changed, which is
// what keeps historical months stable across rate corrections.
func EffectiveRate(r MilkRecord, globalRate decimal.Decimal) decimal.Decimal {
	if r.PricePerLiter != nil {
		return *r.PricePerLiter
	}
	if r.TotalQty > 0 && r.TotalPrice > 0 {
		return decimal.NewFromInt(r.TotalPrice).Div(decimal.NewFromFloat(r.TotalQty))
	}
	return globalRate
}
