// Package ledger holds the dairy trade ledger: contacts, their daily milk
// records and the payments settled against them. The same model serves both
// trading directions; a Module value selects whether a contact buys milk
// from the farm or supplies milk to it.
package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"milkledger/internal/core/apperror"
	"milkledger/internal/core/dateutil"
	"milkledger/internal/core/id"
)

// Module selects a trading direction.
type Module string

const (
	// ModuleSale covers buyers: people the farm sells milk to.
	ModuleSale Module = "sale"

	// ModulePurchase covers suppliers: people the farm buys milk from.
	ModulePurchase Module = "purchase"
)

// DefaultRate is the fallback price per liter for new contacts.
var DefaultRate = decimal.NewFromInt(200)

// Contact is a buyer or supplier tracked by the ledger.
type Contact struct {
	ID     id.ID   `db:"id" json:"id"`
	Module Module  `db:"module" json:"module"`
	Name   string  `db:"name" json:"name"`
	Phone  *string `db:"phone" json:"phone,omitempty"`

	// RatePerLiter is the contact's current global rate. It prices new
	// records and serves as the last resort during rate resolution.
	RatePerLiter decimal.Decimal `db:"rate_per_liter" json:"ratePerLiter"`

	// OpeningBalance is the carried-over debt (whole currency units) at the
	// moment the contact was added to the ledger.
	OpeningBalance int64 `db:"opening_balance" json:"openingBalance"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewContact creates a contact with the default rate applied when none is given.
func NewContact(module Module, name string, rate *decimal.Decimal, openingBalance int64) *Contact {
	effective := DefaultRate
	if rate != nil {
		effective = *rate
	}
	now := time.Now().UTC()
	return &Contact{
		ID:             id.New(),
		Module:         module,
		Name:           name,
		RatePerLiter:   effective,
		OpeningBalance: openingBalance,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Validate checks contact fields before persisting.
func (c *Contact) Validate(ctx context.Context) error {
	if !isValidModule(c.Module) {
		return apperror.NewValidation("invalid module").
			WithDetail("field", "module").
			WithDetail("value", string(c.Module))
	}
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if c.RatePerLiter.IsNegative() {
		return apperror.NewValidation("rate per liter cannot be negative").
			WithDetail("field", "ratePerLiter")
	}
	return nil
}

// MilkRecord is one day's delivery for one contact. At most one record
// exists per (contact, date); re-entering a day overwrites it.
type MilkRecord struct {
	ID        id.ID  `db:"id" json:"id"`
	ContactID id.ID  `db:"contact_id" json:"contactId"`
	Date      string `db:"date" json:"date"` // YYYY-MM-DD

	MorningQty float64 `db:"morning_qty" json:"morningQty"`
	EveningQty float64 `db:"evening_qty" json:"eveningQty"`

	// TotalQty is always MorningQty + EveningQty. It is stored rather than
	// derived so period sums stay a single SQL aggregate.
	TotalQty float64 `db:"total_qty" json:"totalQty"`

	// PricePerLiter is the rate snapshot taken when the record was priced.
	// Nil means the record predates snapshotting and falls back to the
	// implied or global rate, see EffectiveRate.
	PricePerLiter *decimal.Decimal `db:"price_per_liter" json:"pricePerLiter,omitempty"`

	// TotalPrice is the billed amount in whole currency units.
	TotalPrice int64 `db:"total_price" json:"totalPrice"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Day implements Dated for period partitioning.
func (r MilkRecord) Day() string { return r.Date }

// Validate checks record fields before persisting.
func (r *MilkRecord) Validate(ctx context.Context) error {
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
	return nil
}

// Reprice stamps a new rate snapshot and recomputes the billed amount.
func (r *MilkRecord) Reprice(rate decimal.Decimal) {
	snapshot := rate
	r.PricePerLiter = &snapshot
	r.TotalPrice = Amount(r.TotalQty, rate)
	r.UpdatedAt = time.Now().UTC()
}

// Payment is money received from (sale) or paid to (purchase) a contact.
type Payment struct {
	ID        id.ID     `db:"id" json:"id"`
	ContactID id.ID     `db:"contact_id" json:"contactId"`
	Date      string    `db:"date" json:"date"` // YYYY-MM-DD
	Amount    int64     `db:"amount" json:"amount"`
	Note      *string   `db:"note" json:"note,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Day implements Dated for period partitioning.
func (p Payment) Day() string { return p.Date }

// Validate checks payment fields before persisting.
func (p *Payment) Validate(ctx context.Context) error {
	if !dateutil.IsDay(p.Date) {
		return apperror.NewValidation("invalid date, expected YYYY-MM-DD").
			WithDetail("field", "date").
			WithDetail("value", p.Date)
	}
	if p.Amount <= 0 {
		return apperror.NewValidation("payment amount must be positive").
			WithDetail("field", "amount")
	}
	return nil
}

// Amount prices a quantity at a rate, rounded to whole currency units,
// halves away from zero.
func Amount(qty float64, rate decimal.Decimal) int64 {
	return rate.Mul(decimal.NewFromFloat(qty)).Round(0).IntPart()
}

func isValidModule(m Module) bool {
	switch m {
	case ModuleSale, ModulePurchase:
		return true
	}
	return false
}
