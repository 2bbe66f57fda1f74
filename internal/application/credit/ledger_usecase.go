package credit

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/autoparts-ledger/internal/application/dto"
	"github.com/jhoicas/autoparts-ledger/internal/application/ports"
	"github.com/jhoicas/autoparts-ledger/internal/domain"
	"github.com/jhoicas/autoparts-ledger/internal/domain/entity"
	"github.com/jhoicas/autoparts-ledger/internal/domain/ledger"
	"github.com/jhoicas/autoparts-ledger/pkg/logger"
	"github.com/jhoicas/autoparts-ledger/pkg/money"
)

// LedgerUseCase vistas derivadas de las tres colecciones. Cada llamada lee las colecciones
// completas y arma una foto nueva.
type LedgerUseCase struct {
	sales    Lister[*entity.Sale]
	credits  Lister[*entity.StandaloneCredit]
	payments Lister[*entity.Payment]
	pdf      ports.StatementPDFGenerator
	title    string
	log      *logger.Logger
	now      func() time.Time
}

// NewLedgerUseCase construye el caso de uso. title encabeza los PDF.
func NewLedgerUseCase(
	sales Lister[*entity.Sale],
	credits Lister[*entity.StandaloneCredit],
	payments Lister[*entity.Payment],
	pdf ports.StatementPDFGenerator,
	title string,
	log *logger.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{
		sales:    sales,
		credits:  credits,
		payments: payments,
		pdf:      pdf,
		title:    title,
		log:      log.Component("ledger"),
		now:      time.Now,
	}
}

// Snapshot lee las tres colecciones.
func (uc *LedgerUseCase) Snapshot(ctx context.Context) (*ledger.Ledger, error) {
	sales, err := uc.sales.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ledger: ventas: %w", err)
	}
	credits, err := uc.credits.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ledger: créditos: %w", err)
	}
	payments, err := uc.payments.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ledger: pagos: %w", err)
	}
	return ledger.New(sales, credits, payments), nil
}

// Buyers todos los compradores conocidos (nombre exacto, ordenados).
func (uc *LedgerUseCase) Buyers(ctx context.Context) ([]string, error) {
	snap, err := uc.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Buyers(), nil
}

// Outstanding compradores con saldo > 0 y el total adeudado.
func (uc *LedgerUseCase) Outstanding(ctx context.Context) (*dto.OutstandingResponse, error) {
	snap, err := uc.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	buyers := snap.WithOutstanding()
	total := decimal.Zero
	for _, b := range buyers {
		total = money.Add(total, b.Amount)
	}
	return &dto.OutstandingResponse{Buyers: buyers, Total: total}, nil
}

// ConsistencyReport diagnóstico de las colecciones. Solo informa: se loguea si hay problemas.
func (uc *LedgerUseCase) ConsistencyReport(ctx context.Context) (ledger.Report, error) {
	snap, err := uc.Snapshot(ctx)
	if err != nil {
		return ledger.Report{}, err
	}
	report := snap.Consistency(uc.now())
	if !report.IsConsistent {
		uc.log.Warn().
			Int("errors", len(report.Errors)).
			Int("warnings", len(report.Warnings)).
			Int("negative_credits", len(report.NegativeCredits)).
			Strs("detail", report.Errors).
			Msg("ledger inconsistente")
	}
	return report, nil
}

// Directory compradores agrupados por nombre normalizado con su saldo consolidado.
func (uc *LedgerUseCase) Directory(ctx context.Context) ([]dto.DirectoryEntry, error) {
	snap, err := uc.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	dir := snap.Directory()
	balances := make(map[string]decimal.Decimal)
	for _, b := range dir.OutstandingByBuyer(snap.Outstanding()) {
		balances[b.Name] = b.Amount
	}
	buyers := dir.Buyers()
	out := make([]dto.DirectoryEntry, 0, len(buyers))
	for _, b := range buyers {
		out = append(out, dto.DirectoryEntry{
			ID:          b.ID,
			Name:        b.Name,
			Aliases:     b.Aliases,
			Outstanding: balances[b.Name],
		})
	}
	return out, nil
}

// Statement estado de cuenta de un comprador por nombre exacto. ErrNotFound si no tiene movimientos.
func (uc *LedgerUseCase) Statement(ctx context.Context, buyerName string) (*ledger.Statement, error) {
	snap, err := uc.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if !contains(snap.Buyers(), buyerName) {
		return nil, fmt.Errorf("comprador %q: %w", buyerName, domain.ErrNotFound)
	}
	st := snap.Statement(buyerName)
	return &st, nil
}

// StatementPDF el estado de cuenta impreso.
func (uc *LedgerUseCase) StatementPDF(ctx context.Context, buyerName string) ([]byte, error) {
	st, err := uc.Statement(ctx, buyerName)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateStatementPDF(ctx, *st, uc.title)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
