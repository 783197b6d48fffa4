package ledger

import (
	"milkledger/internal/core/dateutil"
)

// Dated is anything carrying a YYYY-MM-DD day key.
type Dated interface {
	Day() string
}

// Partition holds dated items split around one month. Each slice keeps the
// input order.
type Partition[T Dated] struct {
	Before []T // strictly before the month
	In     []T // within the month
	After  []T // strictly after the month
}

// SplitByMonth partitions items around a "YYYY-MM" month. Comparison is
// plain string ordering against the month's first day and its "-31" upper
// bound, so items never need parsing.
func SplitByMonth[T Dated](items []T, month string) Partition[T] {
	start := dateutil.MonthStart(month)
	end := dateutil.MonthEndBound(month)

	var p Partition[T]
	for _, it := range items {
		day := it.Day()
		switch {
		case day < start:
			p.Before = append(p.Before, it)
		case day > end:
			p.After = append(p.After, it)
		default:
			p.In = append(p.In, it)
		}
	}
	return p
}

// UpTo returns the items dated at or before bound, preserving order.
func UpTo[T Dated](items []T, bound string) []T {
	var out []T
	for _, it := range items {
		if it.Day() <= bound {
			out = append(out, it)
		}
	}
	return out
}
