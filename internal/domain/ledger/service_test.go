package ledger

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"milkledger/internal/core/apperror"
	"milkledger/internal/core/dateutil"
	"milkledger/internal/core/id"
)

// --- Fakes ---

type fakeRepo struct {
	contacts map[id.ID]*Contact
	records  map[id.ID][]MilkRecord
	payments map[id.ID][]Payment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		contacts: make(map[id.ID]*Contact),
		records:  make(map[id.ID][]MilkRecord),
		payments: make(map[id.ID][]Payment),
	}
}

func (f *fakeRepo) CreateContact(_ context.Context, c *Contact) error {
	f.contacts[c.ID] = c
	return nil
}

func (f *fakeRepo) UpdateContact(_ context.Context, c *Contact) error {
	f.contacts[c.ID] = c
	return nil
}

func (f *fakeRepo) DeleteContact(_ context.Context, contactID id.ID) error {
	delete(f.contacts, contactID)
	delete(f.records, contactID)
	delete(f.payments, contactID)
	return nil
}

func (f *fakeRepo) GetContact(_ context.Context, contactID id.ID) (*Contact, error) {
	c, ok := f.contacts[contactID]
	if !ok {
		return nil, apperror.NewNotFound("contact", contactID)
	}
	return c, nil
}

func (f *fakeRepo) ListContacts(_ context.Context, module Module) ([]Contact, error) {
	var out []Contact
	for _, c := range f.contacts {
		if c.Module == module {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpsertRecord(_ context.Context, r *MilkRecord) error {
	recs := f.records[r.ContactID]
	for i := range recs {
		if recs[i].Date == r.Date {
			// Mirror ON CONFLICT DO UPDATE: the stored row keeps its identity.
			r.ID = recs[i].ID
			r.CreatedAt = recs[i].CreatedAt
			recs[i] = *r
			return nil
		}
	}
	f.records[r.ContactID] = append(recs, *r)
	return nil
}

func (f *fakeRepo) GetRecord(_ context.Context, contactID id.ID, date string) (*MilkRecord, error) {
	for _, r := range f.records[contactID] {
		if r.Date == date {
			cp := r
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("record", date)
}

func (f *fakeRepo) ListRecords(_ context.Context, contactID id.ID) ([]MilkRecord, error) {
	return f.records[contactID], nil
}

func (f *fakeRepo) UpdateRecords(_ context.Context, records []MilkRecord) error {
	for _, upd := range records {
		recs := f.records[upd.ContactID]
		for i := range recs {
			if recs[i].ID == upd.ID {
				recs[i] = upd
			}
		}
	}
	return nil
}

func (f *fakeRepo) DeleteRecord(_ context.Context, recordID id.ID) error {
	for cid, recs := range f.records {
		for i := range recs {
			if recs[i].ID == recordID {
				f.records[cid] = append(recs[:i], recs[i+1:]...)
				return nil
			}
		}
	}
	return apperror.NewNotFound("record", recordID)
}

func (f *fakeRepo) CreatePayment(_ context.Context, p *Payment) error {
	f.payments[p.ContactID] = append(f.payments[p.ContactID], *p)
	return nil
}

func (f *fakeRepo) GetPayment(_ context.Context, paymentID id.ID) (*Payment, error) {
	for _, pays := range f.payments {
		for i := range pays {
			if pays[i].ID == paymentID {
				cp := pays[i]
				return &cp, nil
			}
		}
	}
	return nil, apperror.NewNotFound("payment", paymentID)
}

func (f *fakeRepo) UpdatePayment(_ context.Context, p *Payment) error {
	pays := f.payments[p.ContactID]
	for i := range pays {
		if pays[i].ID == p.ID {
			pays[i] = *p
			return nil
		}
	}
	return apperror.NewNotFound("payment", p.ID)
}

func (f *fakeRepo) DeletePayment(_ context.Context, paymentID id.ID) error {
	for cid, pays := range f.payments {
		for i := range pays {
			if pays[i].ID == paymentID {
				f.payments[cid] = append(pays[:i], pays[i+1:]...)
				return nil
			}
		}
	}
	return apperror.NewNotFound("payment", paymentID)
}

func (f *fakeRepo) ListPayments(_ context.Context, contactID id.ID) ([]Payment, error) {
	return f.payments[contactID], nil
}

func (f *fakeRepo) DailyQuantities(_ context.Context, module Module, from, to string) (map[string]float64, error) {
	out := make(map[string]float64)
	for cid, recs := range f.records {
		c, ok := f.contacts[cid]
		if !ok || c.Module != module {
			continue
		}
		for _, r := range recs {
			if r.Date >= from && r.Date < to {
				out[r.Date] += r.TotalQty
			}
		}
	}
	return out, nil
}

type fakeTx struct{}

func (fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, fakeTx{}), repo
}

// --- Tests ---

func TestCreateContactDefaultRate(t *testing.T) {
	svc, _ := newTestService()

	c, err := svc.CreateContact(context.Background(), CreateContactInput{
		Module: ModuleSale,
		Name:   "Ramesh",
	})

	require.NoError(t, err)
	assert.True(t, c.RatePerLiter.Equal(DefaultRate))
	assert.False(t, id.IsNil(c.ID))
}

func TestCreateContactValidation(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CreateContact(context.Background(), CreateContactInput{
		Module: Module("retail"),
		Name:   "X",
	})
	require.Error(t, err)

	_, err = svc.CreateContact(context.Background(), CreateContactInput{
		Module: ModulePurchase,
	})
	require.Error(t, err)
}

func TestEnterQuantitiesOverwritesSameDay(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	c, err := svc.CreateContact(ctx, CreateContactInput{Module: ModuleSale, Name: "Sita"})
	require.NoError(t, err)

	first, err := svc.EnterQuantities(ctx, c.ID, "2024-03-10", 3, 2)
	require.NoError(t, err)
	second, err := svc.EnterQuantities(ctx, c.ID, "2024-03-10", 4, 4)
	require.NoError(t, err)

	recs, err := repo.ListRecords(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, float64(8), recs[0].TotalQty)
}

func TestEnterQuantitiesStampsCurrentRate(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	rate := decimal.NewFromInt(240)
	c, err := svc.CreateContact(ctx, CreateContactInput{
		Module:       ModulePurchase,
		Name:         "Gopal",
		RatePerLiter: &rate,
	})
	require.NoError(t, err)

	r, err := svc.EnterQuantities(ctx, c.ID, "2024-03-10", 3, 2.5)
	require.NoError(t, err)

	require.NotNil(t, r.PricePerLiter)
	assert.True(t, r.PricePerLiter.Equal(rate))
	assert.Equal(t, int64(1320), r.TotalPrice)
}

func TestEnterQuantitiesRejectsNegative(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	c, err := svc.CreateContact(ctx, CreateContactInput{Module: ModuleSale, Name: "Sita"})
	require.NoError(t, err)

	_, err = svc.EnterQuantities(ctx, c.ID, "2024-03-10", -1, 2)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestSetGlobalRateRepricesHistory(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	c, err := svc.CreateContact(ctx, CreateContactInput{Module: ModuleSale, Name: "Sita"})
	require.NoError(t, err)
	_, err = svc.EnterQuantities(ctx, c.ID, "2023-11-05", 5, 5)
	require.NoError(t, err)
	_, err = svc.EnterQuantities(ctx, c.ID, "2024-03-10", 2, 2)
	require.NoError(t, err)

	err = svc.SetGlobalRate(ctx, c.ID, decimal.NewFromInt(250))
	require.NoError(t, err)

	got, err := repo.GetContact(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, got.RatePerLiter.Equal(decimal.NewFromInt(250)))

	recs, err := repo.ListRecords(ctx, c.ID)
	require.NoError(t, err)
	for _, r := range recs {
		require.NotNil(t, r.PricePerLiter)
		assert.True(t, r.PricePerLiter.Equal(decimal.NewFromInt(250)))
		assert.Equal(t, Amount(r.TotalQty, decimal.NewFromInt(250)), r.TotalPrice)
	}
}

func TestSetMonthRatePastMonthKeepsGlobalRate(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	c, err := svc.CreateContact(ctx, CreateContactInput{Module: ModuleSale, Name: "Sita"})
	require.NoError(t, err)
	_, err = svc.EnterQuantities(ctx, c.ID, "2020-01-05", 5, 5)
	require.NoError(t, err)
	_, err = svc.EnterQuantities(ctx, c.ID, "2020-02-05", 5, 5)
	require.NoError(t, err)

	err = svc.SetMonthRate(ctx, c.ID, "2020-01", decimal.NewFromInt(150))
	require.NoError(t, err)

	// Correcting a closed month leaves the going rate untouched.
	got, err := repo.GetContact(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, got.RatePerLiter.Equal(DefaultRate))

	jan, err := repo.GetRecord(ctx, c.ID, "2020-01-05")
	require.NoError(t, err)
	assert.True(t, jan.PricePerLiter.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, int64(1500), jan.TotalPrice)

	feb, err := repo.GetRecord(ctx, c.ID, "2020-02-05")
	require.NoError(t, err)
	assert.True(t, feb.PricePerLiter.Equal(DefaultRate))
}

func TestSetMonthRateCurrentMonthMovesGlobalRate(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	c, err := svc.CreateContact(ctx, CreateContactInput{Module: ModuleSale, Name: "Sita"})
	require.NoError(t, err)

	err = svc.SetMonthRate(ctx, c.ID, dateutil.CurrentMonth(), decimal.NewFromInt(275))
	require.NoError(t, err)

	got, err := repo.GetContact(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, got.RatePerLiter.Equal(decimal.NewFromInt(275)))
}

func TestEnterQuantitiesRestampsAfterDayOverride(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	c, err := svc.CreateContact(ctx, CreateContactInput{Module: ModuleSale, Name: "Sita"})
	require.NoError(t, err)
	_, err = svc.EnterQuantities(ctx, c.ID, "2024-03-10", 4, 4)
	require.NoError(t, err)
	_, err = svc.SetDayRate(ctx, c.ID, "2024-03-10", decimal.NewFromInt(300))
	require.NoError(t, err)

	// Re-entering the day's quantities prices at the contact's current
	// rate again; the day override does not survive the edit.
	r, err := svc.EnterQuantities(ctx, c.ID, "2024-03-10", 5, 5)
	require.NoError(t, err)
	require.NotNil(t, r.PricePerLiter)
	assert.True(t, r.PricePerLiter.Equal(DefaultRate))
	assert.Equal(t, Amount(10, DefaultRate), r.TotalPrice)

	stored, err := repo.GetRecord(ctx, c.ID, "2024-03-10")
	require.NoError(t, err)
	assert.True(t, stored.PricePerLiter.Equal(DefaultRate))
}

func TestSetDayRate(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	c, err := svc.CreateContact(ctx, CreateContactInput{Module: ModuleSale, Name: "Sita"})
	require.NoError(t, err)
	_, err = svc.EnterQuantities(ctx, c.ID, "2024-03-10", 4, 4)
	require.NoError(t, err)

	r, err := svc.SetDayRate(ctx, c.ID, "2024-03-10", decimal.NewFromInt(300))
	require.NoError(t, err)
	assert.Equal(t, int64(2400), r.TotalPrice)

	stored, err := repo.GetRecord(ctx, c.ID, "2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, int64(2400), stored.TotalPrice)
}

func TestAddPaymentDefaultsToToday(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	c, err := svc.CreateContact(ctx, CreateContactInput{Module: ModuleSale, Name: "Sita"})
	require.NoError(t, err)

	p, err := svc.AddPayment(ctx, c.ID, "", 500, nil)
	require.NoError(t, err)
	assert.Equal(t, dateutil.Today(), p.Date)
}

func TestAddPaymentRejectsNonPositive(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	c, err := svc.CreateContact(ctx, CreateContactInput{Module: ModuleSale, Name: "Sita"})
	require.NoError(t, err)

	_, err = svc.AddPayment(ctx, c.ID, "2024-03-10", 0, nil)
	require.Error(t, err)
	_, err = svc.AddPayment(ctx, c.ID, "2024-03-10", -5, nil)
	require.Error(t, err)
}

func TestUpdatePayment(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	c, err := svc.CreateContact(ctx, CreateContactInput{Module: ModuleSale, Name: "Sita"})
	require.NoError(t, err)
	p, err := svc.AddPayment(ctx, c.ID, "2024-03-10", 500, nil)
	require.NoError(t, err)

	amount := int64(750)
	note := "partial settlement"
	got, err := svc.UpdatePayment(ctx, p.ID, UpdatePaymentInput{Amount: &amount, Note: &note})
	require.NoError(t, err)
	assert.Equal(t, int64(750), got.Amount)
	assert.Equal(t, "2024-03-10", got.Date)

	stored, err := repo.GetPayment(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(750), stored.Amount)
	require.NotNil(t, stored.Note)
	assert.Equal(t, note, *stored.Note)

	zero := int64(0)
	_, err = svc.UpdatePayment(ctx, p.ID, UpdatePaymentInput{Amount: &zero})
	require.Error(t, err)
}

func TestDeleteContactRemovesHistory(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	c, err := svc.CreateContact(ctx, CreateContactInput{Module: ModuleSale, Name: "Sita"})
	require.NoError(t, err)
	_, err = svc.EnterQuantities(ctx, c.ID, "2024-03-10", 4, 4)
	require.NoError(t, err)
	_, err = svc.AddPayment(ctx, c.ID, "2024-03-11", 100, nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteContact(ctx, c.ID))

	_, err = repo.GetContact(ctx, c.ID)
	assert.True(t, apperror.IsNotFound(err))
	assert.Empty(t, repo.records[c.ID])
	assert.Empty(t, repo.payments[c.ID])
}
