package ledger

// MonthSummary is a contact's settlement view for one month.
//
// The decomposition PreviousBalance + Billed - Paid == CumulativeBalance
// always holds: the cumulative figure is the same running balance the
// month pieces add up to.
type MonthSummary struct {
	Month string `json:"month"`

	// PreviousBalance is the running balance just before the month began.
	PreviousBalance int64 `json:"previousBalance"`

	// Billed is the sum of record amounts within the month.
	Billed int64 `json:"billed"`

	// Paid is the sum of payments within the month.
	Paid int64 `json:"paid"`

	// CumulativeBalance is the running balance as of the end of the month.
	// Positive means the counterparty still owes; negative means overpaid.
	CumulativeBalance int64 `json:"cumulativeBalance"`

	// TotalQuantity is the milk volume recorded within the month, in liters.
	TotalQuantity float64 `json:"totalQuantity"`
}

// SumAmounts totals the billed amounts of records.
func SumAmounts(records []MilkRecord) int64 {
	var total int64
	for _, r := range records {
		total += r.TotalPrice
	}
	return total
}

// SumQuantities totals the milk volume of records.
func SumQuantities(records []MilkRecord) float64 {
	var total float64
	for _, r := range records {
		total += r.TotalQty
	}
	return total
}

// SumPayments totals payment amounts.
func SumPayments(payments []Payment) int64 {
	var total int64
	for _, p := range payments {
		total += p.Amount
	}
	return total
}

// CumulativeBalance computes a contact's running balance as of endBound
// (inclusive): opening balance plus everything billed, minus everything
// paid, up to and including that day.
func CumulativeBalance(opening int64, records []MilkRecord, payments []Payment, endBound string) int64 {
	return opening + SumAmounts(UpTo(records, endBound)) - SumPayments(UpTo(payments, endBound))
}

// SummarizeMonth builds the month settlement view from a contact's full
// record and payment history.
func SummarizeMonth(c *Contact, records []MilkRecord, payments []Payment, month string) MonthSummary {
	recs := SplitByMonth(records, month)
	pays := SplitByMonth(payments, month)

	prev := c.OpeningBalance + SumAmounts(recs.Before) - SumPayments(pays.Before)
	billed := SumAmounts(recs.In)
	paid := SumPayments(pays.In)

	return MonthSummary{
		Month:             month,
		PreviousBalance:   prev,
		Billed:            billed,
		Paid:              paid,
		CumulativeBalance: prev + billed - paid,
		TotalQuantity:     SumQuantities(recs.In),
	}
}
