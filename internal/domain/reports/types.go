// Package reports assembles read-only settlement views over the trade
// ledger: monthly overviews, per-contact statements and outstanding lists.
package reports

import (
	"github.com/shopspring/decimal"

	"milkledger/internal/domain/ledger"
)

// OverviewRow is one contact's line in a monthly overview.
type OverviewRow struct {
	Contact ledger.Contact      `json:"contact"`
	Summary ledger.MonthSummary `json:"summary"`
}

// MonthlyOverview is the settlement picture of one trading direction for
// one month, one row per contact plus totals.
type MonthlyOverview struct {
	Module ledger.Module `json:"module"`
	Month  string        `json:"month"`
	Rows   []OverviewRow `json:"rows"`

	TotalQuantity    float64 `json:"totalQuantity"`
	TotalBilled      int64   `json:"totalBilled"`
	TotalPaid        int64   `json:"totalPaid"`
	TotalOutstanding int64   `json:"totalOutstanding"`
}

// StatementRow is one day's line in a contact statement.
type StatementRow struct {
	Date       string          `json:"date"`
	MorningQty float64         `json:"morningQty"`
	EveningQty float64         `json:"eveningQty"`
	TotalQty   float64         `json:"totalQty"`
	Rate       decimal.Decimal `json:"rate"`
	Amount     int64           `json:"amount"`
}

// Statement is a contact's full month: daily lines, payments received and
// the settlement summary.
type Statement struct {
	Contact  ledger.Contact      `json:"contact"`
	Month    string              `json:"month"`
	Rows     []StatementRow      `json:"rows"`
	Payments []ledger.Payment    `json:"payments"`
	Summary  ledger.MonthSummary `json:"summary"`
}

// ProfitSummary sets a month's sale billing against its purchase billing.
type ProfitSummary struct {
	Month          string `json:"month"`
	SaleBilled     int64  `json:"saleBilled"`
	PurchaseBilled int64  `json:"purchaseBilled"`
	Profit         int64  `json:"profit"`
}

// OutstandingEntry is a contact carrying an open balance.
type OutstandingEntry struct {
	Contact ledger.Contact `json:"contact"`
	Balance int64          `json:"balance"`
}

// OutstandingReport lists a trading direction's open balances at the end
// of a month, with the grand total of the listed balances.
type OutstandingReport struct {
	Module  ledger.Module      `json:"module"`
	Month   string             `json:"month"`
	Entries []OutstandingEntry `json:"entries"`
	Total   int64              `json:"total"`
}
