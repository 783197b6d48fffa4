package ledger

import (
	"context"

	"milkledger/internal/core/id"
)

// Repository defines persistence for contacts, records and payments.
// List methods return items ordered by date ascending, then creation time.
type Repository interface {
	CreateContact(ctx context.Context, c *Contact) error
	UpdateContact(ctx context.Context, c *Contact) error
	// DeleteContact removes the contact together with its records and
	// payments.
	DeleteContact(ctx context.Context, contactID id.ID) error
	GetContact(ctx context.Context, contactID id.ID) (*Contact, error)
	ListContacts(ctx context.Context, module Module) ([]Contact, error)

	// UpsertRecord inserts or overwrites the record for (contact, date).
	UpsertRecord(ctx context.Context, r *MilkRecord) error
	GetRecord(ctx context.Context, contactID id.ID, date string) (*MilkRecord, error)
	ListRecords(ctx context.Context, contactID id.ID) ([]MilkRecord, error)
	// UpdateRecords rewrites pricing fields of the given records in bulk.
	UpdateRecords(ctx context.Context, records []MilkRecord) error
	DeleteRecord(ctx context.Context, recordID id.ID) error

	CreatePayment(ctx context.Context, p *Payment) error
	GetPayment(ctx context.Context, paymentID id.ID) (*Payment, error)
	UpdatePayment(ctx context.Context, p *Payment) error
	DeletePayment(ctx context.Context, paymentID id.ID) error
	ListPayments(ctx context.Context, contactID id.ID) ([]Payment, error)

	// DailyQuantities sums record volume per day across all contacts of a
	// module, for from <= date < to. Days without records are absent.
	DailyQuantities(ctx context.Context, module Module, from, to string) (map[string]float64, error)
}

// TxManager runs a function inside a database transaction. Repository
// calls made with the context it passes join that transaction.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
