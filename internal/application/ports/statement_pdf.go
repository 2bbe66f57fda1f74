package ports

import (
	"context"

	"github.com/jhoicas/autoparts-ledger/internal/domain/ledger"
)

// StatementPDFGenerator puerto de salida para imprimir el estado de cuenta de un comprador.
type StatementPDFGenerator interface {
	GenerateStatementPDF(ctx context.Context, st ledger.Statement, title string) ([]byte, error)
}
