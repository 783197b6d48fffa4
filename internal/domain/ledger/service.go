package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"milkledger/internal/core/apperror"
	"milkledger/internal/core/dateutil"
	"milkledger/internal/core/id"
	"milkledger/pkg/logger"
)

// Service provides business logic for the trade ledger.
type Service struct {
	repo Repository
	tx   TxManager
}

// NewService creates a ledger service.
func NewService(repo Repository, tx TxManager) *Service {
	return &Service{repo: repo, tx: tx}
}

// --- Contacts ---

// CreateContactInput carries the fields accepted when adding a contact.
type CreateContactInput struct {
	Module         Module
	Name           string
	Phone          *string
	RatePerLiter   *decimal.Decimal // nil applies DefaultRate
	OpeningBalance int64
}

// CreateContact adds a buyer or supplier to the ledger.
func (s *Service) CreateContact(ctx context.Context, in CreateContactInput) (*Contact, error) {
	c := NewContact(in.Module, in.Name, in.RatePerLiter, in.OpeningBalance)
	c.Phone = in.Phone
	if err := c.Validate(ctx); err != nil {
		return nil, err
	}
	if err := s.repo.CreateContact(ctx, c); err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	logger.Info(ctx, "contact created",
		"contact_id", c.ID, "module", c.Module, "name", c.Name)
	return c, nil
}

// UpdateContactInput carries optional profile edits. Nil fields are left
// unchanged. Rate changes go through the rate operations instead, since
// they decide how existing records are repriced.
type UpdateContactInput struct {
	Name           *string
	Phone          *string
	OpeningBalance *int64
}

// UpdateContact edits a contact's profile.
func (s *Service) UpdateContact(ctx context.Context, contactID id.ID, in UpdateContactInput) (*Contact, error) {
	c, err := s.repo.GetContact(ctx, contactID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Phone != nil {
		c.Phone = in.Phone
	}
	if in.OpeningBalance != nil {
		c.OpeningBalance = *in.OpeningBalance
	}
	if err := c.Validate(ctx); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateContact(ctx, c); err != nil {
		return nil, fmt.Errorf("update contact: %w", err)
	}
	return c, nil
}

// DeleteContact removes a contact and its entire history.
func (s *Service) DeleteContact(ctx context.Context, contactID id.ID) error {
	if _, err := s.repo.GetContact(ctx, contactID); err != nil {
		return err
	}
	if err := s.repo.DeleteContact(ctx, contactID); err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	logger.Info(ctx, "contact deleted", "contact_id", contactID)
	return nil
}

// GetContact retrieves a contact by id.
func (s *Service) GetContact(ctx context.Context, contactID id.ID) (*Contact, error) {
	return s.repo.GetContact(ctx, contactID)
}

// ListContacts retrieves all contacts of one trading direction.
func (s *Service) ListContacts(ctx context.Context, module Module) ([]Contact, error) {
	if !isValidModule(module) {
		return nil, apperror.NewValidation("invalid module").
			WithDetail("value", string(module))
	}
	return s.repo.ListContacts(ctx, module)
}

// --- Records ---

// EnterQuantities records a day's morning and evening volumes for a
// contact. An existing record for that day is overwritten, and the billed
// amount is stamped with the contact's current rate.
func (s *Service) EnterQuantities(ctx context.Context, contactID id.ID, date string, morning, evening float64) (*MilkRecord, error) {
	c, err := s.repo.GetContact(ctx, contactID)
	if err != nil {
		return nil, err
	}

	r := &MilkRecord{
		ID:         id.New(),
		ContactID:  contactID,
		Date:       date,
		MorningQty: morning,
		EveningQty: evening,
		TotalQty:   morning + evening,
	}
	if err := r.Validate(ctx); err != nil {
		return nil, err
	}
	r.Reprice(c.RatePerLiter)
	r.CreatedAt = r.UpdatedAt

	if err := s.repo.UpsertRecord(ctx, r); err != nil {
		return nil, fmt.Errorf("upsert record: %w", err)
	}
	return r, nil
}

// DeleteRecord removes one day's record.
func (s *Service) DeleteRecord(ctx context.Context, recordID id.ID) error {
	return s.repo.DeleteRecord(ctx, recordID)
}

// ListRecords retrieves a contact's full record history, oldest first.
func (s *Service) ListRecords(ctx context.Context, contactID id.ID) ([]MilkRecord, error) {
	if _, err := s.repo.GetContact(ctx, contactID); err != nil {
		return nil, err
	}
	return s.repo.ListRecords(ctx, contactID)
}

// --- Rate corrections ---

// SetGlobalRate changes a contact's rate and reprices the entire history.
// Every record gets the new snapshot and a recomputed amount.
func (s *Service) SetGlobalRate(ctx context.Context, contactID id.ID, rate decimal.Decimal) error {
	if rate.IsNegative() {
		return apperror.NewValidation("rate cannot be negative")
	}
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		c, err := s.repo.GetContact(ctx, contactID)
		if err != nil {
			return err
		}
		c.RatePerLiter = rate
		if err := s.repo.UpdateContact(ctx, c); err != nil {
			return fmt.Errorf("update contact rate: %w", err)
		}

		records, err := s.repo.ListRecords(ctx, contactID)
		if err != nil {
			return err
		}
		for i := range records {
			records[i].Reprice(rate)
		}
		if err := s.repo.UpdateRecords(ctx, records); err != nil {
			return fmt.Errorf("reprice records: %w", err)
		}

		logger.Info(ctx, "global rate applied",
			"contact_id", contactID, "rate", rate, "records", len(records))
		return nil
	})
}

// SetMonthRate reprices the records of one month. The contact's global
// rate only moves when the month is the current one or later; corrections
// to closed months leave the going rate alone.
func (s *Service) SetMonthRate(ctx context.Context, contactID id.ID, month string, rate decimal.Decimal) error {
	if !dateutil.IsMonth(month) {
		return apperror.NewValidation("invalid month, expected YYYY-MM").
			WithDetail("value", month)
	}
	if rate.IsNegative() {
		return apperror.NewValidation("rate cannot be negative")
	}
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		c, err := s.repo.GetContact(ctx, contactID)
		if err != nil {
			return err
		}

		if month >= dateutil.CurrentMonth() {
			c.RatePerLiter = rate
			if err := s.repo.UpdateContact(ctx, c); err != nil {
				return fmt.Errorf("update contact rate: %w", err)
			}
		}

		records, err := s.repo.ListRecords(ctx, contactID)
		if err != nil {
			return err
		}
		inMonth := SplitByMonth(records, month).In
		for i := range inMonth {
			inMonth[i].Reprice(rate)
		}
		if err := s.repo.UpdateRecords(ctx, inMonth); err != nil {
			return fmt.Errorf("reprice records: %w", err)
		}

		logger.Info(ctx, "month rate applied",
			"contact_id", contactID, "month", month, "rate", rate, "records", len(inMonth))
		return nil
	})
}

// SetDayRate reprices a single day's record.
func (s *Service) SetDayRate(ctx context.Context, contactID id.ID, date string, rate decimal.Decimal) (*MilkRecord, error) {
	if rate.IsNegative() {
		return nil, apperror.NewValidation("rate cannot be negative")
	}
	r, err := s.repo.GetRecord(ctx, contactID, date)
	if err != nil {
		return nil, err
	}
	r.Reprice(rate)
	if err := s.repo.UpdateRecords(ctx, []MilkRecord{*r}); err != nil {
		return nil, fmt.Errorf("reprice record: %w", err)
	}
	return r, nil
}

// --- Payments ---

// AddPayment registers a settlement against a contact. An empty date
// defaults to today.
func (s *Service) AddPayment(ctx context.Context, contactID id.ID, date string, amount int64, note *string) (*Payment, error) {
	if _, err := s.repo.GetContact(ctx, contactID); err != nil {
		return nil, err
	}
	if date == "" {
		date = dateutil.Today()
	}
	p := &Payment{
		ID:        id.New(),
		ContactID: contactID,
		Date:      date,
		Amount:    amount,
		Note:      note,
		CreatedAt: time.Now().UTC(),
	}
	if err := p.Validate(ctx); err != nil {
		return nil, err
	}
	if err := s.repo.CreatePayment(ctx, p); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}
	return p, nil
}

// UpdatePaymentInput carries optional payment edits. Nil fields are left
// unchanged.
type UpdatePaymentInput struct {
	Date   *string
	Amount *int64
	Note   *string
}

// UpdatePayment edits a settlement's date, amount or note.
func (s *Service) UpdatePayment(ctx context.Context, paymentID id.ID, in UpdatePaymentInput) (*Payment, error) {
	p, err := s.repo.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if in.Date != nil {
		p.Date = *in.Date
	}
	if in.Amount != nil {
		p.Amount = *in.Amount
	}
	if in.Note != nil {
		p.Note = in.Note
	}
	if err := p.Validate(ctx); err != nil {
		return nil, err
	}
	if err := s.repo.UpdatePayment(ctx, p); err != nil {
		return nil, fmt.Errorf("update payment: %w", err)
	}
	return p, nil
}

// DeletePayment removes a settlement.
func (s *Service) DeletePayment(ctx context.Context, paymentID id.ID) error {
	return s.repo.DeletePayment(ctx, paymentID)
}

// ListPayments retrieves a contact's payment history, oldest first.
func (s *Service) ListPayments(ctx context.Context, contactID id.ID) ([]Payment, error) {
	if _, err := s.repo.GetContact(ctx, contactID); err != nil {
		return nil, err
	}
	return s.repo.ListPayments(ctx, contactID)
}

// --- Summaries ---

// MonthSummary builds the settlement view of one month for a contact.
func (s *Service) MonthSummary(ctx context.Context, contactID id.ID, month string) (*MonthSummary, error) {
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
	summary := SummarizeMonth(c, records, payments, month)
	return &summary, nil
}
