package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"contas/internal/core"
	"contas/internal/storage"
)

// InvoiceService derives credit-card invoices from the ledger and
// settles the overdue ones. Invoices are never stored; only the
// settlement marker and its expense are.
type InvoiceService struct {
	storage *storage.SQLiteRepository
	ledger  *LedgerService
}

func NewInvoiceService(storage *storage.SQLiteRepository, ledger *LedgerService) *InvoiceService {
	return &InvoiceService{
		storage: storage,
		ledger:  ledger,
	}
}

func (s *InvoiceService) CreateCreditCard(ctx context.Context, c core.CreditCard) (core.CreditCard, error) {
	if err := c.Validate(); err != nil {
		return core.CreditCard{}, core.InvalidErr("creditCard", err)
	}
	if _, err := s.storage.GetAccount(ctx, c.AccountID); err != nil {
		return core.CreditCard{}, err
	}
	return s.storage.CreateCreditCard(ctx, c)
}

func (s *InvoiceService) ListCreditCards(ctx context.Context, accountID int64) ([]core.CreditCard, error) {
	return s.storage.ListCreditCards(ctx, accountID)
}

func (s *InvoiceService) UpdateCreditCard(ctx context.Context, c core.CreditCard) error {
	existing, err := s.storage.GetCreditCard(ctx, c.ID)
	if err != nil {
		return err
	}
	c.AccountID = existing.AccountID
	if err := c.Validate(); err != nil {
		return core.InvalidErr("creditCard", err)
	}
	return s.storage.UpdateCreditCard(ctx, c)
}

func (s *InvoiceService) DeleteCreditCard(ctx context.Context, id int64) error {
	return s.storage.DeleteCreditCard(ctx, id)
}

// GetInvoices derives every invoice of every card of the account,
// newest first within each card.
func (s *InvoiceService) GetInvoices(ctx context.Context, accountID int64) ([]core.Invoice, error) {
	cards, err := s.storage.ListCreditCards(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("list credit cards: %w", err)
	}

	var invoices []core.Invoice
	for _, card := range cards {
		cardInvoices, err := s.cardInvoices(ctx, card)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, cardInvoices...)
	}
	return invoices, nil
}

// GetCardInvoices derives the invoices of a single card.
func (s *InvoiceService) GetCardInvoices(ctx context.Context, cardID int64) ([]core.Invoice, error) {
	card, err := s.storage.GetCreditCard(ctx, cardID)
	if err != nil {
		return nil, err
	}
	return s.cardInvoices(ctx, card)
}

func (s *InvoiceService) cardInvoices(ctx context.Context, card core.CreditCard) ([]core.Invoice, error) {
	transactions, err := s.storage.ListCardTransactions(ctx, card.ID)
	if err != nil {
		return nil, fmt.Errorf("list card transactions: %w", err)
	}

	paid := map[string]bool{}
	payments, err := s.storage.ListInvoicePayments(ctx, card.ID)
	if err != nil {
		return nil, fmt.Errorf("list invoice payments: %w", err)
	}
	for _, p := range payments {
		paid[invoiceKey(p.Year, p.Month)] = true
	}

	byMonth := map[string]*core.Invoice{}
	for _, t := range transactions {
		year, month := core.BillingMonth(t.Date, card.ClosingDay)
		key := invoiceKey(year, month)
		inv, ok := byMonth[key]
		if !ok {
			inv = &core.Invoice{
				CardID:      card.ID,
				CardName:    card.Name,
				Year:        year,
				Month:       month,
				ClosingDate: core.ClosingDate(year, month, card.ClosingDay),
				DueDate:     core.InvoiceDueDate(year, month, card.ClosingDay, card.DueDay),
				Paid:        paid[key],
			}
			byMonth[key] = inv
		}
		inv.Total = inv.Total.Add(t.Amount)
		inv.Transactions = append(inv.Transactions, t)
	}

	invoices := make([]core.Invoice, 0, len(byMonth))
	for _, inv := range byMonth {
		invoices = append(invoices, *inv)
	}
	sort.Slice(invoices, func(i, j int) bool {
		if invoices[i].Year != invoices[j].Year {
			return invoices[i].Year > invoices[j].Year
		}
		return invoices[i].Month > invoices[j].Month
	})
	return invoices, nil
}

// ProcessOverdueInvoices settles every unpaid invoice of the account
// whose due date has passed, creating one settlement expense per
// invoice. Re-running it for the same day settles nothing new: the
// unique payment marker per (card, month) makes the sweep idempotent.
func (s *InvoiceService) ProcessOverdueInvoices(ctx context.Context, accountID int64, today core.Date) (int, error) {
	cards, err := s.storage.ListCreditCards(ctx, accountID)
	if err != nil {
		return 0, fmt.Errorf("list credit cards: %w", err)
	}

	settled := 0
	for _, card := range cards {
		invoices, err := s.cardInvoices(ctx, card)
		if err != nil {
			return settled, err
		}
		for _, inv := range invoices {
			if inv.Paid || inv.Total.Cents <= 0 {
				continue
			}
			if !inv.DueDate.Before(today.Time) {
				continue
			}

			settlement := core.Transaction{
				AccountID:     accountID,
				Description:   fmt.Sprintf("Invoice %s %s", card.Name, inv.Key()),
				Amount:        inv.Total,
				Type:          core.Expense,
				Date:          inv.DueDate,
				PaymentMethod: "invoice_payment",
			}
			created, wasNew, err := s.storage.SettleInvoice(ctx, card.ID, inv.Year, inv.Month, settlement)
			if err != nil {
				return settled, fmt.Errorf("settle invoice %s of card %d: %w", inv.Key(), card.ID, err)
			}
			if !wasNew {
				continue
			}
			settled++
			slog.InfoContext(ctx, "Settled overdue invoice",
				"card_id", card.ID,
				"invoice", inv.Key(),
				"amount", created.Amount.String(),
				"due_date", inv.DueDate.Format("2006-01-02"))
			if s.ledger != nil {
				s.ledger.publishSync(ctx, created.ID)
			}
		}
	}
	return settled, nil
}

func invoiceKey(year, month int) string {
	return core.Invoice{Year: year, Month: month}.Key()
}
