package http

import (
	"time"

	"contas/internal/core"
	"contas/internal/storage"
)

// Request and response bodies. Monetary fields ride as decimal
// strings, dates as YYYY-MM-DD; both via the core JSON codecs.

type accountPayload struct {
	Name string           `json:"name"`
	Type core.AccountType `json:"type"`
}

type accountResponse struct {
	ID        int64            `json:"id"`
	Name      string           `json:"name"`
	Type      core.AccountType `json:"type"`
	CreatedAt time.Time        `json:"createdAt"`
}

func toAccountResponse(a core.Account) accountResponse {
	return accountResponse{ID: a.ID, Name: a.Name, Type: a.Type, CreatedAt: a.CreatedAt}
}

type bankAccountPayload struct {
	Name           string     `json:"name"`
	InitialBalance core.Money `json:"initialBalance"`
	Pix            string     `json:"pix"`
	Shared         bool       `json:"shared"`
}

type bankAccountResponse struct {
	ID             int64      `json:"id"`
	AccountID      int64      `json:"accountId"`
	Name           string     `json:"name"`
	InitialBalance core.Money `json:"initialBalance"`
	Pix            string     `json:"pix"`
	Shared         bool       `json:"shared"`
}

func toBankAccountResponse(b core.BankAccount) bankAccountResponse {
	return bankAccountResponse{
		ID: b.ID, AccountID: b.AccountID, Name: b.Name,
		InitialBalance: b.InitialBalance, Pix: b.Pix, Shared: b.Shared,
	}
}

type categoryPayload struct {
	Name  string         `json:"name"`
	Color string         `json:"color"`
	Icon  string         `json:"icon"`
	Type  core.EntryType `json:"type"`
}

type categoryResponse struct {
	ID        int64          `json:"id"`
	AccountID int64          `json:"accountId"`
	Name      string         `json:"name"`
	Color     string         `json:"color"`
	Icon      string         `json:"icon"`
	Type      core.EntryType `json:"type"`
}

func toCategoryResponse(c core.Category) categoryResponse {
	return categoryResponse{
		ID: c.ID, AccountID: c.AccountID, Name: c.Name,
		Color: c.Color, Icon: c.Icon, Type: c.Type,
	}
}

type creditCardPayload struct {
	Name        string     `json:"name"`
	Brand       string     `json:"brand"`
	CreditLimit core.Money `json:"creditLimit"`
	DueDay      int        `json:"dueDay"`
	ClosingDay  int        `json:"closingDay"`
}

type creditCardResponse struct {
	ID          int64      `json:"id"`
	AccountID   int64      `json:"accountId"`
	Name        string     `json:"name"`
	Brand       string     `json:"brand"`
	BrandIcon   string     `json:"brandIcon"`
	CreditLimit core.Money `json:"creditLimit"`
	DueDay      int        `json:"dueDay"`
	ClosingDay  int        `json:"closingDay"`
	CycleLabel  string     `json:"cycleLabel"`
	NextDueDate core.Date  `json:"nextDueDate"`
}

func toCreditCardResponse(c core.CreditCard) creditCardResponse {
	now := time.Now()
	today := core.NewDate(now.Year(), int(now.Month()), now.Day())
	return creditCardResponse{
		ID: c.ID, AccountID: c.AccountID, Name: c.Name,
		Brand: c.Brand, BrandIcon: core.BrandIcon(c.Brand),
		CreditLimit: c.CreditLimit, DueDay: c.DueDay, ClosingDay: c.ClosingDay,
		CycleLabel: c.CycleLabel(), NextDueDate: core.NextDueDate(today, c.DueDay),
	}
}

type transactionPayload struct {
	Description      string         `json:"description"`
	Amount           core.Money     `json:"amount"`
	Type             core.EntryType `json:"type"`
	Date             core.Date      `json:"date"`
	CategoryID       *int64         `json:"categoryId"`
	BankAccountID    *int64         `json:"bankAccountId"`
	CreditCardID     *int64         `json:"creditCardId"`
	ProjectID        *int64         `json:"projectId"`
	CostCenterID     *int64         `json:"costCenterId"`
	PaymentMethod    string         `json:"paymentMethod"`
	InstallmentTotal int            `json:"installmentTotal"`
}

type transactionResponse struct {
	ID               int64          `json:"id"`
	AccountID        int64          `json:"accountId"`
	Description      string         `json:"description"`
	Amount           core.Money     `json:"amount"`
	Type             core.EntryType `json:"type"`
	Date             core.Date      `json:"date"`
	CategoryID       *int64         `json:"categoryId,omitempty"`
	BankAccountID    *int64         `json:"bankAccountId,omitempty"`
	CreditCardID     *int64         `json:"creditCardId,omitempty"`
	ProjectID        *int64         `json:"projectId,omitempty"`
	CostCenterID     *int64         `json:"costCenterId,omitempty"`
	PaymentMethod    string         `json:"paymentMethod,omitempty"`
	SeriesID         *int64         `json:"seriesId,omitempty"`
	InstallmentIndex int            `json:"installmentIndex,omitempty"`
	InstallmentTotal int            `json:"installmentTotal,omitempty"`
}

func toTransactionResponse(t core.Transaction) transactionResponse {
	return transactionResponse{
		ID: t.ID, AccountID: t.AccountID, Description: t.Description,
		Amount: t.Amount, Type: t.Type, Date: t.Date,
		CategoryID: t.CategoryID, BankAccountID: t.BankAccountID,
		CreditCardID: t.CreditCardID, ProjectID: t.ProjectID,
		CostCenterID: t.CostCenterID, PaymentMethod: t.PaymentMethod,
		SeriesID: t.SeriesID, InstallmentIndex: t.InstallmentIndex,
		InstallmentTotal: t.InstallmentTotal,
	}
}

func toTransactionResponses(ts []core.Transaction) []transactionResponse {
	out := make([]transactionResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, toTransactionResponse(t))
	}
	return out
}

// transactionUpdatePayload carries a scoped edit. Reference fields
// use 0 to mean "clear"; absent fields stay untouched.
type transactionUpdatePayload struct {
	Scope         string      `json:"scope"`
	Description   *string     `json:"description"`
	Amount        *core.Money `json:"amount"`
	Date          *core.Date  `json:"date"`
	CategoryID    *int64      `json:"categoryId"`
	ProjectID     *int64      `json:"projectId"`
	CostCenterID  *int64      `json:"costCenterId"`
	PaymentMethod *string     `json:"paymentMethod"`
}

func (p transactionUpdatePayload) toUpdate() storage.TransactionUpdate {
	upd := storage.TransactionUpdate{
		Description:   p.Description,
		Amount:        p.Amount,
		Date:          p.Date,
		PaymentMethod: p.PaymentMethod,
	}
	if p.CategoryID != nil {
		upd.SetCategory = true
		if *p.CategoryID != 0 {
			upd.CategoryID = p.CategoryID
		}
	}
	if p.ProjectID != nil {
		upd.SetProject = true
		if *p.ProjectID != 0 {
			upd.ProjectID = p.ProjectID
		}
	}
	if p.CostCenterID != nil {
		upd.SetCostCenter = true
		if *p.CostCenterID != 0 {
			upd.CostCenterID = p.CostCenterID
		}
	}
	return upd
}

type invoiceResponse struct {
	CardID       int64                 `json:"cardId"`
	CardName     string                `json:"cardName"`
	Year         int                   `json:"year"`
	Month        int                   `json:"month"`
	Key          string                `json:"key"`
	ClosingDate  core.Date             `json:"closingDate"`
	DueDate      core.Date             `json:"dueDate"`
	Total        core.Money            `json:"total"`
	Paid         bool                  `json:"paid"`
	Transactions []transactionResponse `json:"transactions"`
}

func toInvoiceResponse(i core.Invoice) invoiceResponse {
	return invoiceResponse{
		CardID: i.CardID, CardName: i.CardName,
		Year: i.Year, Month: i.Month, Key: i.Key(),
		ClosingDate: i.ClosingDate, DueDate: i.DueDate,
		Total: i.Total, Paid: i.Paid,
		Transactions: toTransactionResponses(i.Transactions),
	}
}

type statsResponse struct {
	TotalBalance     core.Money `json:"totalBalance"`
	MonthlyIncome    core.Money `json:"monthlyIncome"`
	MonthlyExpenses  core.Money `json:"monthlyExpenses"`
	ProjectedBalance core.Money `json:"projectedBalance"`
}

type categoryStatResponse struct {
	CategoryID int64      `json:"categoryId"`
	Name       string     `json:"name"`
	Color      string     `json:"color"`
	Total      core.Money `json:"total"`
}

type projectPayload struct {
	Name     string `json:"name"`
	ClientID *int64 `json:"clientId"`
}

type projectResponse struct {
	ID        int64  `json:"id"`
	AccountID int64  `json:"accountId"`
	Name      string `json:"name"`
	ClientID  *int64 `json:"clientId,omitempty"`
}

type costCenterPayload struct {
	Name string `json:"name"`
}

type costCenterResponse struct {
	ID        int64  `json:"id"`
	AccountID int64  `json:"accountId"`
	Name      string `json:"name"`
}

type clientPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type clientResponse struct {
	ID        int64  `json:"id"`
	AccountID int64  `json:"accountId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

// deletedResponse confirms a mutation and names the owning account so
// clients can refresh the right view.
type deletedResponse struct {
	AccountID int64 `json:"accountId"`
	Deleted   bool  `json:"deleted"`
}
