package stock

import (
	"context"

	"milkledger/internal/core/apperror"
	"milkledger/internal/core/dateutil"
	"milkledger/internal/domain/farm"
	"milkledger/internal/domain/ledger"
)

// Service reconciles stock by combining the production log with the trade
// ledger's daily volumes.
type Service struct {
	farmRepo   farm.Repository
	ledgerRepo ledger.Repository
}

// NewService creates a stock service.
func NewService(farmRepo farm.Repository, ledgerRepo ledger.Repository) *Service {
	return &Service{farmRepo: farmRepo, ledgerRepo: ledgerRepo}
}

// DailySnapshot reconciles the stock picture of one day.
func (s *Service) DailySnapshot(ctx context.Context, date string) (*DailySnapshot, error) {
	if !dateutil.IsDay(date) {
		return nil, apperror.NewValidation("invalid date, expected YYYY-MM-DD").
			WithDetail("value", date)
	}
	flows, err := s.loadFlows(ctx, dateutil.NextDay(date))
	if err != nil {
		return nil, err
	}
	snap := Snapshot(*flows, date)
	return &snap, nil
}

// MonthSnapshots reconciles every day of a month that carries production
// or trade activity, in date order.
func (s *Service) MonthSnapshots(ctx context.Context, month string) ([]DailySnapshot, error) {
	if !dateutil.IsMonth(month) {
		return nil, apperror.NewValidation("invalid month, expected YYYY-MM").
			WithDetail("value", month)
	}
	end := dateutil.MonthEndBound(month)
	flows, err := s.loadFlows(ctx, dateutil.MonthStart(dateutil.NextMonth(month)))
	if err != nil {
		return nil, err
	}

	days := make(map[string]struct{})
	for _, r := range flows.Farm {
		days[r.Date] = struct{}{}
	}
	for d := range flows.Purchased {
		days[d] = struct{}{}
	}
	for d := range flows.Sold {
		days[d] = struct{}{}
	}

	var out []DailySnapshot
	for d := dateutil.MonthStart(month); d <= end && dateutil.MonthOf(d) == month; d = dateutil.NextDay(d) {
		if _, ok := days[d]; !ok {
			continue
		}
		out = append(out, Snapshot(*flows, d))
	}
	return out, nil
}

// loadFlows loads the production log and daily traded volumes for every
// day strictly before bound.
func (s *Service) loadFlows(ctx context.Context, bound string) (*DayFlows, error) {
	farmRecords, err := s.farmRepo.ListRange(ctx, "", bound)
	if err != nil {
		return nil, err
	}

	purchased, err := s.ledgerRepo.DailyQuantities(ctx, ledger.ModulePurchase, "", bound)
	if err != nil {
		return nil, err
	}
	sold, err := s.ledgerRepo.DailyQuantities(ctx, ledger.ModuleSale, "", bound)
	if err != nil {
		return nil, err
	}

	return &DayFlows{Farm: farmRecords, Purchased: purchased, Sold: sold}, nil
}
