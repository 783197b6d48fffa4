package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"milkledger/internal/core/apperror"
	"milkledger/internal/core/id"
	"milkledger/internal/domain/ledger"
)

const (
	contactsTable = "contacts"
	recordsTable  = "milk_records"
	paymentsTable = "payments"
)

var (
	contactColumns = ExtractDBColumns[ledger.Contact]()
	recordColumns  = ExtractDBColumns[ledger.MilkRecord]()
	paymentColumns = ExtractDBColumns[ledger.Payment]()
)

// LedgerRepo implements ledger.Repository on PostgreSQL.
type LedgerRepo struct {
	txm     *TxManager
	builder squirrel.StatementBuilderType
}

// NewLedgerRepo creates a new ledger repository.
func NewLedgerRepo(txm *TxManager) *LedgerRepo {
	return &LedgerRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Ensure interface compliance.
var _ ledger.Repository = (*LedgerRepo)(nil)

// --- Contacts ---

// CreateContact inserts a contact.
func (r *LedgerRepo) CreateContact(ctx context.Context, c *ledger.Contact) error {
	q := r.builder.Insert(contactsTable).
		Columns(contactColumns...).
		Values(c.ID, c.Module, c.Name, c.Phone, c.RatePerLiter,
			c.OpeningBalance, c.CreatedAt, c.UpdatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

// UpdateContact rewrites a contact's mutable fields.
func (r *LedgerRepo) UpdateContact(ctx context.Context, c *ledger.Contact) error {
	q := r.builder.Update(contactsTable).
		Set("name", c.Name).
		Set("phone", c.Phone).
		Set("rate_per_liter", c.RatePerLiter).
		Set("opening_balance", c.OpeningBalance).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": c.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}
	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("contact", c.ID)
	}
	return nil
}

// DeleteContact removes a contact; records and payments go with it via
// ON DELETE CASCADE.
func (r *LedgerRepo) DeleteContact(ctx context.Context, contactID id.ID) error {
	q := r.builder.Delete(contactsTable).Where(squirrel.Eq{"id": contactID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("contact", contactID)
	}
	return nil
}

// GetContact retrieves a contact by id.
func (r *LedgerRepo) GetContact(ctx context.Context, contactID id.ID) (*ledger.Contact, error) {
	q := r.builder.Select(contactColumns...).
		From(contactsTable).
		Where(squirrel.Eq{"id": contactID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var c ledger.Contact
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &c, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("contact", contactID)
		}
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return &c, nil
}

// ListContacts retrieves a module's contacts in the order they were added.
func (r *LedgerRepo) ListContacts(ctx context.Context, module ledger.Module) ([]ledger.Contact, error) {
	q := r.builder.Select(contactColumns...).
		From(contactsTable).
		Where(squirrel.Eq{"module": module}).
		OrderBy("created_at", "id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var contacts []ledger.Contact
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &contacts, sql, args...); err != nil {
		return nil, fmt.Errorf("select contacts: %w", err)
	}
	return contacts, nil
}

// --- Records ---

// UpsertRecord inserts or overwrites the record for (contact, date). The
// stored row keeps its identity on conflict; r is updated to match.
func (r *LedgerRepo) UpsertRecord(ctx context.Context, rec *ledger.MilkRecord) error {
	q := r.builder.Insert(recordsTable).
		Columns(recordColumns...).
		Values(rec.ID, rec.ContactID, rec.Date, rec.MorningQty, rec.EveningQty,
			rec.TotalQty, rec.PricePerLiter, rec.TotalPrice, rec.CreatedAt, rec.UpdatedAt).
		Suffix(`ON CONFLICT (contact_id, date) DO UPDATE SET
			morning_qty = EXCLUDED.morning_qty,
			evening_qty = EXCLUDED.evening_qty,
			total_qty = EXCLUDED.total_qty,
			price_per_liter = EXCLUDED.price_per_liter,
			total_price = EXCLUDED.total_price,
			updated_at = EXCLUDED.updated_at`).
		Suffix("RETURNING id, created_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}
	row := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...)
	if err := row.Scan(&rec.ID, &rec.CreatedAt); err != nil {
		return fmt.Errorf("upsert record: %w", err)
	}
	return nil
}

// GetRecord retrieves one day's record for a contact.
func (r *LedgerRepo) GetRecord(ctx context.Context, contactID id.ID, date string) (*ledger.MilkRecord, error) {
	q := r.builder.Select(recordColumns...).
		From(recordsTable).
		Where(squirrel.Eq{"contact_id": contactID, "date": date}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rec ledger.MilkRecord
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &rec, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("record", date)
		}
		return nil, fmt.Errorf("get record: %w", err)
	}
	return &rec, nil
}

// ListRecords retrieves a contact's records ordered by date.
func (r *LedgerRepo) ListRecords(ctx context.Context, contactID id.ID) ([]ledger.MilkRecord, error) {
	q := r.builder.Select(recordColumns...).
		From(recordsTable).
		Where(squirrel.Eq{"contact_id": contactID}).
		OrderBy("date")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var records []ledger.MilkRecord
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &records, sql, args...); err != nil {
		return nil, fmt.Errorf("select records: %w", err)
	}
	return records, nil
}

// UpdateRecords rewrites pricing fields of the given records.
func (r *LedgerRepo) UpdateRecords(ctx context.Context, records []ledger.MilkRecord) error {
	for _, rec := range records {
		q := r.builder.Update(recordsTable).
			Set("price_per_liter", rec.PricePerLiter).
			Set("total_price", rec.TotalPrice).
			Set("updated_at", rec.UpdatedAt).
			Where(squirrel.Eq{"id": rec.ID})

		sql, args, err := q.ToSql()
		if err != nil {
			return fmt.Errorf("build update: %w", err)
		}
		if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("update record %s: %w", rec.ID, err)
		}
	}
	return nil
}

// DeleteRecord removes one record.
func (r *LedgerRepo) DeleteRecord(ctx context.Context, recordID id.ID) error {
	q := r.builder.Delete(recordsTable).Where(squirrel.Eq{"id": recordID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("record", recordID)
	}
	return nil
}

// --- Payments ---

// CreatePayment inserts a payment.
func (r *LedgerRepo) CreatePayment(ctx context.Context, p *ledger.Payment) error {
	q := r.builder.Insert(paymentsTable).
		Columns(paymentColumns...).
		Values(p.ID, p.ContactID, p.Date, p.Amount, p.Note, p.CreatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetPayment retrieves a payment by id.
func (r *LedgerRepo) GetPayment(ctx context.Context, paymentID id.ID) (*ledger.Payment, error) {
	q := r.builder.Select(paymentColumns...).
		From(paymentsTable).
		Where(squirrel.Eq{"id": paymentID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var p ledger.Payment
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("payment", paymentID)
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &p, nil
}

// UpdatePayment rewrites a payment's date, amount and note.
func (r *LedgerRepo) UpdatePayment(ctx context.Context, p *ledger.Payment) error {
	q := r.builder.Update(paymentsTable).
		Set("date", p.Date).
		Set("amount", p.Amount).
		Set("note", p.Note).
		Where(squirrel.Eq{"id": p.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}
	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("payment", p.ID)
	}
	return nil
}

// DeletePayment removes a payment.
func (r *LedgerRepo) DeletePayment(ctx context.Context, paymentID id.ID) error {
	q := r.builder.Delete(paymentsTable).Where(squirrel.Eq{"id": paymentID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("payment", paymentID)
	}
	return nil
}

// ListPayments retrieves a contact's payments ordered by date.
func (r *LedgerRepo) ListPayments(ctx context.Context, contactID id.ID) ([]ledger.Payment, error) {
	q := r.builder.Select(paymentColumns...).
		From(paymentsTable).
		Where(squirrel.Eq{"contact_id": contactID}).
		OrderBy("date", "created_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var payments []ledger.Payment
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &payments, sql, args...); err != nil {
		return nil, fmt.Errorf("select payments: %w", err)
	}
	return payments, nil
}

// DailyQuantities sums record volume per day across a module's contacts
// for from <= date < to.
func (r *LedgerRepo) DailyQuantities(ctx context.Context, module ledger.Module, from, to string) (map[string]float64, error) {
	q := r.builder.Select("r.date", "SUM(r.total_qty) AS qty").
		From(recordsTable+" r").
		Join(contactsTable+" c ON c.id = r.contact_id").
		Where(squirrel.Eq{"c.module": module}).
		Where(squirrel.Lt{"r.date": to}).
		GroupBy("r.date")
	if from != "" {
		q = q.Where(squirrel.GtOrEq{"r.date": from})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.txm.GetQuerier(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("select daily quantities: %w", err)
	}
	defer rows.Close()

	out := make(map[string]float64)
	for rows.Next() {
		var date string
		var qty float64
		if err := rows.Scan(&date, &qty); err != nil {
			return nil, fmt.Errorf("scan daily quantity: %w", err)
		}
		out[date] = qty
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily quantities: %w", err)
	}
	return out, nil
}
