package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testContact(opening int64) *Contact {
	return &Contact{OpeningBalance: opening, RatePerLiter: DefaultRate}
}

func TestSummarizeMonthDecomposition(t *testing.T) {
	c := testContact(500)
	records := []MilkRecord{
		rec("2024-02-10", 5, 1000),
		rec("2024-03-05", 6, 1200),
		rec("2024-03-20", 7, 1400),
		rec("2024-04-02", 8, 1600),
	}
	payments := []Payment{
		{Date: "2024-02-15", Amount: 700},
		{Date: "2024-03-10", Amount: 900},
		{Date: "2024-04-05", Amount: 100},
	}

	s := SummarizeMonth(c, records, payments, "2024-03")

	assert.Equal(t, int64(500+1000-700), s.PreviousBalance)
	assert.Equal(t, int64(2600), s.Billed)
	assert.Equal(t, int64(900), s.Paid)
	assert.Equal(t, float64(13), s.TotalQuantity)

	// The month pieces always recompose into the running balance.
	assert.Equal(t, s.PreviousBalance+s.Billed-s.Paid, s.CumulativeBalance)
	assert.Equal(t, CumulativeBalance(c.OpeningBalance, records, payments, "2024-03-31"), s.CumulativeBalance)
}

func TestCumulativeBalanceEmptyHistory(t *testing.T) {
	c := testContact(250)

	s := SummarizeMonth(c, nil, nil, "2024-03")

	assert.Equal(t, int64(250), s.PreviousBalance)
	assert.Equal(t, int64(250), s.CumulativeBalance)
	assert.Zero(t, s.Billed)
	assert.Zero(t, s.Paid)
}

func TestCumulativeBalanceMonotonicInPayments(t *testing.T) {
	c := testContact(0)
	records := []MilkRecord{rec("2024-03-05", 10, 2000)}
	payments := []Payment{{Date: "2024-03-10", Amount: 500}}

	before := CumulativeBalance(c.OpeningBalance, records, payments, "2024-03-31")

	more := append(payments, Payment{Date: "2024-03-15", Amount: 800})
	after := CumulativeBalance(c.OpeningBalance, records, more, "2024-03-31")

	assert.Equal(t, before-800, after)
	assert.Less(t, after, before)
}

func TestCumulativeBalanceCanGoNegative(t *testing.T) {
	c := testContact(0)
	records := []MilkRecord{rec("2024-03-05", 10, 2000)}
	payments := []Payment{{Date: "2024-03-10", Amount: 2500}}

	got := CumulativeBalance(c.OpeningBalance, records, payments, "2024-03-31")

	// Overpayment is carried as a negative balance, never clamped.
	assert.Equal(t, int64(-500), got)
}

func TestPreviousBalanceExcludesMonthActivity(t *testing.T) {
	c := testContact(100)
	records := []MilkRecord{
		rec("2024-02-29", 5, 1000),
		rec("2024-03-01", 6, 1200),
	}

	s := SummarizeMonth(c, records, nil, "2024-03")

	// Only strictly-earlier activity contributes to the carry-over.
	assert.Equal(t, int64(1100), s.PreviousBalance)
	assert.Equal(t, int64(1200), s.Billed)
}
