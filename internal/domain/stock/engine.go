// Package stock reconciles the farm's physical milk stock for any calendar
// day from the production log and the trade ledger's daily volumes.
package stock

import (
	"milkledger/internal/domain/farm"
)

// DayFlows is everything the engine needs to reconstruct stock levels:
// the production log and per-day traded volumes across all contacts.
type DayFlows struct {
	// Farm is the full production log, any order.
	Farm []farm.FarmRecord

	// Purchased and Sold map day keys to total liters bought from
	// suppliers and sold to buyers on that day.
	Purchased map[string]float64
	Sold      map[string]float64
}

// DailySnapshot is the reconciled stock picture of one day.
type DailySnapshot struct {
	Date string `json:"date"`

	// PreviousStock is the derived carry-over from all days before this one.
	PreviousStock float64 `json:"previousStock"`

	// OpeningStock is what the day actually starts with: the manual
	// override when one is pinned for the day, PreviousStock otherwise.
	OpeningStock  float64 `json:"openingStock"`
	ManualOpening bool    `json:"manualOpening"`

	FarmProduced float64 `json:"farmProduced"`
	Purchased    float64 `json:"purchased"`

	// TotalAvailable = OpeningStock + FarmProduced + Purchased.
	TotalAvailable float64 `json:"totalAvailable"`

	Sold float64 `json:"sold"`

	// NetRemaining = TotalAvailable - Sold. Negative values are reported
	// as-is; they signal more milk left the farm than the log accounts for.
	NetRemaining float64 `json:"netRemaining"`
}

// PreviousStock derives the stock carried into date.
//
// The walk starts at the anchor: the latest day strictly before date with
// a manually pinned opening stock. From the anchor's pinned value, every
// day's production and purchases are added and sales subtracted, the
// anchor day included, up to but excluding date. Without an anchor the
// walk starts from zero at the beginning of history.
func PreviousStock(flows DayFlows, date string) float64 {
	anchorDay := ""
	base := 0.0
	hasAnchor := false
	for _, r := range flows.Farm {
		if r.Date >= date {
			continue
		}
		if v, ok := r.OpeningStock.Manual(); ok && (!hasAnchor || r.Date > anchorDay) {
			anchorDay = r.Date
			base = v
			hasAnchor = true
		}
	}

	// With no anchor the empty anchorDay compares below every real day,
	// so the walk covers all of history from a zero base.

	stock := base
	for _, r := range flows.Farm {
		if r.Date >= anchorDay && r.Date < date {
			stock += r.TotalQty
		}
	}
	for day, qty := range flows.Purchased {
		if day >= anchorDay && day < date {
			stock += qty
		}
	}
	for day, qty := range flows.Sold {
		if day >= anchorDay && day < date {
			stock -= qty
		}
	}
	return stock
}

// Snapshot reconciles one day's stock picture.
func Snapshot(flows DayFlows, date string) DailySnapshot {
	s := DailySnapshot{
		Date:          date,
		PreviousStock: PreviousStock(flows, date),
		Purchased:     flows.Purchased[date],
		Sold:          flows.Sold[date],
	}

	s.OpeningStock = s.PreviousStock
	for _, r := range flows.Farm {
		if r.Date != date {
			continue
		}
		s.FarmProduced = r.TotalQty
		if v, ok := r.OpeningStock.Manual(); ok {
			s.OpeningStock = v
			s.ManualOpening = true
		}
		break
	}

	s.TotalAvailable = s.OpeningStock + s.FarmProduced + s.Purchased
	s.NetRemaining = s.TotalAvailable - s.Sold
	return s
}
