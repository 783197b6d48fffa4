package reports

import (
	"context"

	"milkledger/internal/core/apperror"
	"milkledger/internal/core/dateutil"
	"milkledger/internal/core/id"
	"milkledger/internal/domain/ledger"
)

// Service builds reports from the trade ledger.
type Service struct {
	repo ledger.Repository
}

// NewService creates a reports service.
func NewService(repo ledger.Repository) *Service {
	return &Service{repo: repo}
}

// MonthlyOverview summarizes one month for every contact of a trading
// direction. Rows follow the repository's contact order.
func (s *Service) MonthlyOverview(ctx context.Context, module ledger.Module, month string) (*MonthlyOverview, error) {
	if !dateutil.IsMonth(month) {
		return nil, apperror.NewValidation("invalid month, expected YYYY-MM").
			WithDetail("value", month)
	}

	contacts, err := s.repo.ListContacts(ctx, module)
	if err != nil {
		return nil, err
	}

	overview := &MonthlyOverview{Module: module, Month: month}
	for i := range contacts {
		c := contacts[i]
		summary, err := s.contactSummary(ctx, &c, month)
		if err != nil {
			return nil, err
		}
		overview.Rows = append(overview.Rows, OverviewRow{Contact: c, Summary: summary})
		overview.TotalQuantity += summary.TotalQuantity
		overview.TotalBilled += summary.Billed
		overview.TotalPaid += summary.Paid
		overview.TotalOutstanding += summary.CumulativeBalance
	}
	return overview, nil
}

// Statement builds a contact's day-by-day month view. Daily lines show
// the resolved rate so corrected months display the price that was
// actually charged.
func (s *Service) Statement(ctx context.Context, contactID id.ID, month string) (*Statement, error) {
	if !dateutil.IsMonth(month) {
		return nil, apperror.NewValidation("invalid month, expected YYYY-MM").
			WithDetail("value", month)
	}

	c, err := s.repo.GetContact(ctx, contactID)
	if err != nil {
		return nil, err
	}
	records, err := s.repo.ListRecords(ctx, contactID)
	if err != nil {
		return nil, err
	}
	payments, err := s.repo.ListPayments(ctx, contactID)
	if err != nil {
		return nil, err
	}

	st := &Statement{
		Contact: *c,
		Month:   month,
		Summary: ledger.SummarizeMonth(c, records, payments, month),
	}
	for _, r := range ledger.SplitByMonth(records, month).In {
		st.Rows = append(st.Rows, StatementRow{
			Date:       r.Date,
			MorningQty: r.MorningQty,
			EveningQty: r.EveningQty,
			TotalQty:   r.TotalQty,
			Rate:       ledger.EffectiveRate(r, c.RatePerLiter),
			Amount:     r.TotalPrice,
		})
	}
	st.Payments = ledger.SplitByMonth(payments, month).In
	return st, nil
}

// MonthlyProfit sets one month's sale billing against its purchase
// billing across all contacts.
func (s *Service) MonthlyProfit(ctx context.Context, month string) (*ProfitSummary, error) {
	if !dateutil.IsMonth(month) {
		return nil, apperror.NewValidation("invalid month, expected YYYY-MM").
			WithDetail("value", month)
	}

	summary := &ProfitSummary{Month: month}
	for _, module := range []ledger.Module{ledger.ModuleSale, ledger.ModulePurchase} {
		contacts, err := s.repo.ListContacts(ctx, module)
		if err != nil {
			return nil, err
		}
		var billed int64
		for i := range contacts {
			cs, err := s.contactSummary(ctx, &contacts[i], month)
			if err != nil {
				return nil, err
			}
			billed += cs.Billed
		}
		if module == ledger.ModuleSale {
			summary.SaleBilled = billed
		} else {
			summary.PurchaseBilled = billed
		}
	}
	summary.Profit = summary.SaleBilled - summary.PurchaseBilled
	return summary, nil
}

// Outstanding lists the contacts of a trading direction that still carry
// a positive balance at the end of a month. For sales these are
// receivables, for purchases payables. Settled and overpaid contacts are
// excluded, the repository's contact order is preserved, and the grand
// total sums the listed balances.
func (s *Service) Outstanding(ctx context.Context, module ledger.Module, month string) (*OutstandingReport, error) {
	if !dateutil.IsMonth(month) {
		return nil, apperror.NewValidation("invalid month, expected YYYY-MM").
			WithDetail("value", month)
	}

	contacts, err := s.repo.ListContacts(ctx, module)
	if err != nil {
		return nil, err
	}

	bound := dateutil.MonthEndBound(month)
	report := &OutstandingReport{Module: module, Month: month}
	for i := range contacts {
		c := contacts[i]
		records, err := s.repo.ListRecords(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		payments, err := s.repo.ListPayments(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		balance := ledger.CumulativeBalance(c.OpeningBalance, records, payments, bound)
		if balance > 0 {
			report.Entries = append(report.Entries, OutstandingEntry{Contact: c, Balance: balance})
			report.Total += balance
		}
	}
	return report, nil
}

func (s *Service) contactSummary(ctx context.Context, c *ledger.Contact, month string) (ledger.MonthSummary, error) {
	records, err := s.repo.ListRecords(ctx, c.ID)
	if err != nil {
		return ledger.MonthSummary{}, err
	}
	payments, err := s.repo.ListPayments(ctx, c.ID)
	if err != nil {
		return ledger.MonthSummary{}, err
	}
	return ledger.SummarizeMonth(c, records, payments, month), nil
}
