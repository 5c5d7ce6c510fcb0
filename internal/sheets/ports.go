package sheets

import (
	"context"

	"contas/internal/core"
)

// Ports for outbound adapters.
type (
	// EntryWriter appends one ledger transaction to the export target.
	EntryWriter interface {
		Append(ctx context.Context, t core.Transaction) (rowRef string, err error)
	}
)
