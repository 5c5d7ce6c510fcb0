package core

import (
	"strconv"
	"strings"
	"time"
)

// Invoice is the derived monthly grouping of a credit card's
// transactions between closing-day boundaries. It is computed, never
// stored as its own row set; only settlements are persisted.
type Invoice struct {
	CardID       int64
	CardName     string
	Year         int
	Month        int // closing month, 1-12
	ClosingDate  Date
	DueDate      Date
	Total        Money
	Paid         bool
	Transactions []Transaction
}

// Key identifies the invoice within its card.
func (i Invoice) Key() string {
	return strconv.Itoa(i.Year) + "-" + pad2(int64(i.Month))
}

// BillingMonth returns the year and month of the invoice a transaction
// belongs to for a card closing on closingDay: purchases up to and
// including the closing day fall into the invoice closing that month,
// later ones roll into the next month's invoice. The closing day is
// clamped to the length of the transaction's month.
func BillingMonth(txDate Date, closingDay int) (year, month int) {
	year, month = txDate.Year(), txDate.Month()
	closing := clampDay(year, month, closingDay)
	if txDate.Day() <= closing {
		return year, month
	}
	if month == 12 {
		return year + 1, 1
	}
	return year, month + 1
}

// ClosingDate is the boundary day of the invoice for (year, month),
// clamped to the month's length.
func ClosingDate(year, month, closingDay int) Date {
	return NewDate(year, month, clampDay(year, month, closingDay))
}

// InvoiceDueDate is the first occurrence of dueDay strictly after the
// invoice's closing date. This is the per-invoice computation; the
// display-oriented NextDueDate below is a separate rule and the two
// must not be conflated.
func InvoiceDueDate(year, month, closingDay, dueDay int) Date {
	closing := ClosingDate(year, month, closingDay)
	if dueDay > closing.Day() {
		return NewDate(year, month, clampDay(year, month, dueDay))
	}
	if month == 12 {
		return NewDate(year+1, 1, clampDay(year+1, 1, dueDay))
	}
	return NewDate(year, month+1, clampDay(year, month+1, dueDay))
}

// NextDueDate resolves the upcoming due date to display for a card
// given a reference date: if the due day has already passed this month
// it rolls to the next month, with year rollover.
func NextDueDate(today Date, dueDay int) Date {
	year, month := today.Year(), today.Month()
	if today.Day() > clampDay(year, month, dueDay) {
		if month == 12 {
			year, month = year+1, 1
		} else {
			month++
		}
	}
	return NewDate(year, month, clampDay(year, month, dueDay))
}

// CycleLabel renders "closing/due" as two-digit days, with "--/--"
// style placeholders for days outside [1,31] instead of erroring.
func (c CreditCard) CycleLabel() string {
	return dayLabel(c.ClosingDay) + "/" + dayLabel(c.DueDay)
}

// BrandIcon classifies a card brand string into an icon name. Pure
// string matching, case-insensitive; unknown brands get the generic
// icon.
func BrandIcon(brand string) string {
	b := strings.ToLower(brand)
	switch {
	case strings.Contains(b, "visa"):
		return "visa"
	case strings.Contains(b, "master"):
		return "mastercard"
	case strings.Contains(b, "amex"), strings.Contains(b, "american"):
		return "amex"
	default:
		return "generic"
	}
}

func dayLabel(day int) string {
	if day < 1 || day > 31 {
		return "--"
	}
	return pad2(int64(day))
}

func clampDay(year, month, day int) int {
	last := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > last {
		return last
	}
	if day < 1 {
		return 1
	}
	return day
}
