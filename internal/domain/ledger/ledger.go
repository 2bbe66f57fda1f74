package ledger

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/autoparts-ledger/internal/domain/entity"
)

// Ledger foto inmutable de las tres colecciones con las vistas derivadas memorizadas.
// Se construye una por lectura; cada vista se calcula como máximo una vez por foto.
type Ledger struct {
	sales    []*entity.Sale
	credits  []*entity.StandaloneCredit
	payments []*entity.Payment

	outstandingOnce sync.Once
	outstanding     map[string]decimal.Decimal

	directoryOnce sync.Once
	directory     *Directory
}

// New construye la foto. Los slices no se copian: el llamador no debe mutarlos después.
func New(sales []*entity.Sale, credits []*entity.StandaloneCredit, payments []*entity.Payment) *Ledger {
	return &Ledger{sales: sales, credits: credits, payments: payments}
}

func (l *Ledger) outstandingMap() map[string]decimal.Decimal {
	l.outstandingOnce.Do(func() {
		l.outstanding = OutstandingCredit(l.sales, l.credits, l.payments)
	})
	return l.outstanding
}

// Outstanding copia del mapa comprador -> saldo pendiente.
func (l *Ledger) Outstanding() map[string]decimal.Decimal {
	src := l.outstandingMap()
	out := make(map[string]decimal.Decimal, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// AvailableCredit saldo pendiente de un comprador (0 si no existe).
func (l *Ledger) AvailableCredit(buyerName string) decimal.Decimal {
	return l.outstandingMap()[buyerName]
}

// Buyers todos los compradores (nombre exacto), ordenados.
func (l *Ledger) Buyers() []string {
	return AllBuyers(l.sales, l.credits, l.payments)
}

// WithOutstanding compradores con saldo > 0.
func (l *Ledger) WithOutstanding() []BuyerBalance {
	return positiveBalances(l.outstandingMap())
}

// Consistency reporte de consistencia evaluado en now.
func (l *Ledger) Consistency(now time.Time) Report {
	return CheckConsistency(l.sales, l.credits, l.payments, now)
}

// Directory directorio de compradores con alias.
func (l *Ledger) Directory() *Directory {
	l.directoryOnce.Do(func() {
		l.directory = BuildDirectory(l.sales, l.credits, l.payments)
	})
	return l.directory
}

// Statement estado de cuenta de un comprador.
func (l *Ledger) Statement(buyerName string) Statement {
	return BuildStatement(buyerName, l.sales, l.credits, l.payments)
}
