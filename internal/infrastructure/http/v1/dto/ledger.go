package dto

import (
	"github.com/shopspring/decimal"
)

// CreateContactRequest for adding a buyer or supplier.
type CreateContactRequest struct {
	Name           string           `json:"name" binding:"required"`
	Phone          *string          `json:"phone"`
	RatePerLiter   *decimal.Decimal `json:"ratePerLiter"`
	OpeningBalance int64            `json:"openingBalance"`
}

// UpdateContactRequest for profile edits. Nil fields stay unchanged.
type UpdateContactRequest struct {
	Name           *string `json:"name"`
	Phone          *string `json:"phone"`
	OpeningBalance *int64  `json:"openingBalance"`
}

// UpsertRecordRequest for entering a day's quantities.
type UpsertRecordRequest struct {
	Date       string  `json:"date" binding:"required"`
	MorningQty float64 `json:"morningQty" binding:"gte=0"`
	EveningQty float64 `json:"eveningQty" binding:"gte=0"`
}

// CreatePaymentRequest for registering a settlement. An empty date means
// today.
type CreatePaymentRequest struct {
	Date   string  `json:"date"`
	Amount int64   `json:"amount" binding:"required,gt=0"`
	Note   *string `json:"note"`
}

// UpdatePaymentRequest for settlement edits. Nil fields stay unchanged.
type UpdatePaymentRequest struct {
	Date   *string `json:"date"`
	Amount *int64  `json:"amount"`
	Note   *string `json:"note"`
}

// SetRateRequest for a global rate change.
type SetRateRequest struct {
	Rate decimal.Decimal `json:"rate" binding:"required"`
}

// SetMonthRateRequest for a scoped month correction.
type SetMonthRateRequest struct {
	Month string          `json:"month" binding:"required"`
	Rate  decimal.Decimal `json:"rate" binding:"required"`
}

// SetDayRateRequest for a single-day correction.
type SetDayRateRequest struct {
	Date string          `json:"date" binding:"required"`
	Rate decimal.Decimal `json:"rate" binding:"required"`
}
