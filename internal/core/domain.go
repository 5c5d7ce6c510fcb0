package core

import (
	"errors"
	"strings"
	"time"
)

const (
	AccountPersonal AccountType = "personal"
	AccountBusiness AccountType = "business"

	Income  EntryType = "income"
	Expense EntryType = "expense"

	EditSingle EditScope = "single"
	EditAll    EditScope = "all"
	EditFuture EditScope = "future"
)

type (
	// AccountType gates business-only features (projects, cost centers,
	// clients). It is immutable after account creation.
	AccountType string

	// EntryType classifies money movement.
	EntryType string

	// EditScope selects how an edit fans out across an installment series.
	EditScope string

	Date struct {
		time.Time
	}

	Account struct {
		ID        int64
		Name      string
		Type      AccountType
		CreatedAt time.Time
	}

	BankAccount struct {
		ID             int64
		AccountID      int64
		Name           string
		InitialBalance Money
		Pix            string
		Shared         bool
	}

	Category struct {
		ID        int64
		AccountID int64
		Name      string
		Color     string
		Icon      string
		Type      EntryType
	}

	CreditCard struct {
		ID          int64
		AccountID   int64
		Name        string
		Brand       string
		CreditLimit Money
		DueDay      int
		ClosingDay  int
	}

	Transaction struct {
		ID               int64
		AccountID        int64
		Description      string
		Amount           Money
		Type             EntryType
		Date             Date
		CategoryID       *int64
		BankAccountID    *int64
		CreditCardID     *int64
		ProjectID        *int64
		CostCenterID     *int64
		PaymentMethod    string
		SeriesID         *int64
		InstallmentIndex int
		InstallmentTotal int
	}

	Project struct {
		ID        int64
		AccountID int64
		Name      string
		ClientID  *int64
	}

	CostCenter struct {
		ID        int64
		AccountID int64
		Name      string
	}

	Client struct {
		ID        int64
		AccountID int64
		Name      string
		Email     string
	}
)

var (
	ErrInvalidDay         = errors.New("invalid day")
	ErrInvalidMonth       = errors.New("invalid month")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrEmptyName          = errors.New("empty name")
	ErrEmptyDescription   = errors.New("empty description")
	ErrInvalidAccountType = errors.New("invalid account type")
	ErrInvalidEntryType   = errors.New("invalid entry type")
	ErrInvalidEditScope   = errors.New("invalid edit scope")
)

// NewDate creates a Date at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	_, month, day := d.Date()
	if day < 1 || day > 31 {
		return ErrInvalidDay
	}
	if month < 1 || month > 12 {
		return ErrInvalidMonth
	}
	return nil
}

// Day returns the day of the month.
func (d Date) Day() int { return d.Time.Day() }

// Month returns the month in 1-12.
func (d Date) Month() int { return int(d.Time.Month()) }

// Year returns the year.
func (d Date) Year() int { return d.Time.Year() }

// AddMonthsClamped advances the date by n calendar months, clamping the
// day to the last day of the target month (Jan 31 plus one month is
// Feb 28/29, never Mar 2).
func (d Date) AddMonthsClamped(n int) Date {
	year, month, day := d.Date()
	first := time.Date(year, month+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	lastDay := first.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return Date{Time: time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)}
}

// MarshalJSON renders the date as "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}

// UnmarshalJSON parses "YYYY-MM-DD". Empty and null map to the zero date.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return err
	}
	*d = Date{Time: t}
	return nil
}

func (t AccountType) Validate() error {
	switch t {
	case AccountPersonal, AccountBusiness:
		return nil
	}
	return ErrInvalidAccountType
}

func (t EntryType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	}
	return ErrInvalidEntryType
}

func (s EditScope) Validate() error {
	switch s {
	case EditSingle, EditAll, EditFuture:
		return nil
	}
	return ErrInvalidEditScope
}

func (a Account) Validate() error {
	if len(strings.TrimSpace(a.Name)) == 0 {
		return ErrEmptyName
	}
	if len(a.Name) > 100 {
		return errors.New("name too long (max 100 characters)")
	}
	return a.Type.Validate()
}

// IsBusiness reports whether business-only features are available.
func (a Account) IsBusiness() bool { return a.Type == AccountBusiness }

func (b BankAccount) Validate() error {
	if len(strings.TrimSpace(b.Name)) == 0 {
		return ErrEmptyName
	}
	if len(b.Name) > 100 {
		return errors.New("name too long (max 100 characters)")
	}
	return nil
}

func (c Category) Validate() error {
	if len(strings.TrimSpace(c.Name)) == 0 {
		return ErrEmptyName
	}
	if len(c.Name) > 100 {
		return errors.New("name too long (max 100 characters)")
	}
	return c.Type.Validate()
}

func (c CreditCard) Validate() error {
	if len(strings.TrimSpace(c.Name)) == 0 {
		return ErrEmptyName
	}
	if c.DueDay < 1 || c.DueDay > 31 {
		return ErrInvalidDay
	}
	if c.ClosingDay < 1 || c.ClosingDay > 31 {
		return ErrInvalidDay
	}
	if c.CreditLimit.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if t.Amount.Cents <= 0 {
		return ErrInvalidAmount
	}
	if err := t.Type.Validate(); err != nil {
		return err
	}
	if t.InstallmentTotal < 0 {
		return errors.New("installment total cannot be negative")
	}
	// Index 0 marks a row not yet expanded into its series; storage
	// assigns 1..N during expansion.
	if t.InstallmentIndex < 0 {
		return errors.New("installment index out of range")
	}
	if t.InstallmentIndex > 0 && (t.InstallmentTotal < 1 || t.InstallmentIndex > t.InstallmentTotal) {
		return errors.New("installment index out of range")
	}
	return nil
}

// InSeries reports whether the transaction belongs to an installment series.
func (t Transaction) InSeries() bool {
	return t.SeriesID != nil && t.InstallmentTotal > 1
}

func (p Project) Validate() error {
	if len(strings.TrimSpace(p.Name)) == 0 {
		return ErrEmptyName
	}
	return nil
}

func (c CostCenter) Validate() error {
	if len(strings.TrimSpace(c.Name)) == 0 {
		return ErrEmptyName
	}
	return nil
}

func (c Client) Validate() error {
	if len(strings.TrimSpace(c.Name)) == 0 {
		return ErrEmptyName
	}
	return nil
}
