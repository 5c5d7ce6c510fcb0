package core

import "errors"

// ErrInvalidInstallments rejects series sizes outside 1..120.
var ErrInvalidInstallments = errors.New("invalid installment count")

// SplitAmount divides a total into n per-installment amounts. The split
// is equal in cents with the remainder added to the final installment,
// so the sum of the parts always equals the total exactly:
// 100.00 over 3 yields {33.33, 33.33, 33.34}.
func SplitAmount(total Money, n int) ([]Money, error) {
	if n < 1 || n > 120 {
		return nil, ErrInvalidInstallments
	}
	if total.Cents <= 0 {
		return nil, ErrInvalidAmount
	}

	base := total.Cents / int64(n)
	remainder := total.Cents % int64(n)

	parts := make([]Money, n)
	for i := range parts {
		parts[i] = Money{Cents: base}
	}
	parts[n-1].Cents += remainder
	return parts, nil
}

// SeriesDates returns the date of each installment: the first keeps the
// purchase date, each following one advances a calendar month with the
// day clamped to the month's length.
func SeriesDates(start Date, n int) []Date {
	dates := make([]Date, n)
	for i := range dates {
		dates[i] = start.AddMonthsClamped(i)
	}
	return dates
}
