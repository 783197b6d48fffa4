package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func rec(date string, qty float64, price int64) MilkRecord {
	return MilkRecord{Date: date, TotalQty: qty, TotalPrice: price}
}

func TestSplitByMonth(t *testing.T) {
	records := []MilkRecord{
		rec("2024-02-28", 5, 1000),
		rec("2024-03-01", 6, 1200),
		rec("2024-03-31", 7, 1400),
		rec("2024-04-01", 8, 1600),
	}

	p := SplitByMonth(records, "2024-03")

	assert.Len(t, p.Before, 1)
	assert.Len(t, p.In, 2)
	assert.Len(t, p.After, 1)
	assert.Equal(t, "2024-02-28", p.Before[0].Date)
	assert.Equal(t, "2024-03-01", p.In[0].Date)
	assert.Equal(t, "2024-03-31", p.In[1].Date)
	assert.Equal(t, "2024-04-01", p.After[0].Date)
}

func TestSplitByMonthShortMonth(t *testing.T) {
	// February never has a day matching the -31 bound, the comparison
	// still buckets every real day correctly.
	records := []MilkRecord{
		rec("2024-01-31", 1, 100),
		rec("2024-02-01", 2, 200),
		rec("2024-02-29", 3, 300),
		rec("2024-03-01", 4, 400),
	}

	p := SplitByMonth(records, "2024-02")

	assert.Equal(t, []MilkRecord{records[1], records[2]}, p.In)
	assert.Equal(t, []MilkRecord{records[0]}, p.Before)
	assert.Equal(t, []MilkRecord{records[3]}, p.After)
}

func TestSplitByMonthPreservesOrder(t *testing.T) {
	// Input order survives partitioning even when dates are unsorted.
	records := []MilkRecord{
		rec("2024-03-20", 1, 100),
		rec("2024-03-05", 2, 200),
		rec("2024-03-11", 3, 300),
	}

	p := SplitByMonth(records, "2024-03")

	assert.Equal(t, []string{"2024-03-20", "2024-03-05", "2024-03-11"},
		[]string{p.In[0].Date, p.In[1].Date, p.In[2].Date})
}

func TestUpTo(t *testing.T) {
	payments := []Payment{
		{Date: "2024-03-10", Amount: 100},
		{Date: "2024-03-31", Amount: 200},
		{Date: "2024-04-01", Amount: 300},
	}

	got := UpTo(payments, "2024-03-31")

	assert.Len(t, got, 2)
	assert.Equal(t, int64(300), SumPayments(got))
}
