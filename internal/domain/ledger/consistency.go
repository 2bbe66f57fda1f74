package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/autoparts-ledger/internal/domain/entity"
	"github.com/jhoicas/autoparts-ledger/pkg/money"
)

// Tipos de registro usados en los diagnósticos.
const (
	KindSale             = "sale"
	KindStandaloneCredit = "standaloneCredit"
	KindPayment          = "payment"
)

// NegativeCreditWarning un pago que deja al comprador por debajo de cero.
type NegativeCreditWarning struct {
	BuyerName     string          `json:"buyerName"`
	PaymentID     string          `json:"paymentId"`
	PaymentAmount decimal.Decimal `json:"paymentAmount"`
	PriorBalance  decimal.Decimal `json:"priorBalance"`
}

// BuyerMismatch grafías distintas de un mismo nombre normalizado (posible duplicado o error de tipeo).
type BuyerMismatch struct {
	Normalized string   `json:"normalized"`
	Variants   []string `json:"variants"`
}

// DuplicateID un ID repetido entre cualquiera de las tres colecciones.
type DuplicateID struct {
	ID    string   `json:"id"`
	Count int      `json:"count"`
	Kinds []string `json:"kinds"`
}

// OrphanedPayment pago de un comprador sin ningún crédito registrado.
type OrphanedPayment struct {
	PaymentID string          `json:"paymentId"`
	BuyerName string          `json:"buyerName"`
	Amount    decimal.Decimal `json:"amount"`
}

// FutureDatedRecord registro con fecha posterior al instante de evaluación.
type FutureDatedRecord struct {
	Kind string    `json:"kind"`
	ID   string    `json:"id"`
	Date time.Time `json:"date"`
}

// Report diagnóstico de consistencia. Es solo informativo: nunca bloquea una escritura.
// IsConsistent = sin errores y sin advertencias de crédito negativo.
type Report struct {
	IsConsistent     bool                    `json:"isConsistent"`
	CheckedAt        time.Time               `json:"checkedAt"`
	NegativeCredits  []NegativeCreditWarning `json:"negativeCredits"`
	BuyerMismatches  []BuyerMismatch         `json:"buyerMismatches"`
	DuplicateIDs     []DuplicateID           `json:"duplicateIds"`
	OrphanedPayments []OrphanedPayment       `json:"orphanedPayments"`
	FutureDated      []FutureDatedRecord     `json:"futureDated"`
	Errors           []string                `json:"errors"`
	Warnings         []string                `json:"warnings"`
}

// CheckConsistency arma el reporte de consistencia evaluado en now.
func CheckConsistency(sales []*entity.Sale, credits []*entity.StandaloneCredit, payments []*entity.Payment, now time.Time) Report {
	r := Report{
		CheckedAt:        now,
		NegativeCredits:  []NegativeCreditWarning{},
		BuyerMismatches:  []BuyerMismatch{},
		DuplicateIDs:     []DuplicateID{},
		OrphanedPayments: []OrphanedPayment{},
		FutureDated:      []FutureDatedRecord{},
		Errors:           []string{},
		Warnings:         []string{},
	}

	checkNegativeCredit(&r, sales, credits, payments)
	checkBuyerNames(&r, sales, credits, payments)
	checkDuplicateIDs(&r, sales, credits, payments)
	checkOrphanedPayments(&r, sales, credits, payments)
	checkFutureDates(&r, sales, credits, payments, now)

	r.IsConsistent = len(r.Errors) == 0 && len(r.NegativeCredits) == 0
	return r
}

// checkNegativeCredit recorre los pagos con el mismo orden fijo que OutstandingCredit,
// pero sin recortar a cero: el saldo previo que se reporta es el real.
func checkNegativeCredit(r *Report, sales []*entity.Sale, credits []*entity.StandaloneCredit, payments []*entity.Payment) {
	running := accumulateCredits(sales, credits)
	for _, p := range payments {
		if p == nil {
			continue
		}
		prior := running[p.BuyerName]
		next := money.Sub(prior, p.Amount)
		if next.IsNegative() {
			r.NegativeCredits = append(r.NegativeCredits, NegativeCreditWarning{
				BuyerName:     p.BuyerName,
				PaymentID:     p.ID,
				PaymentAmount: p.Amount,
				PriorBalance:  prior,
			})
			r.Warnings = append(r.Warnings, fmt.Sprintf(
				"payment %s of %s by %q exceeds prior balance %s",
				p.ID, money.Format(p.Amount), p.BuyerName, money.Format(prior)))
		}
		running[p.BuyerName] = next
	}
}

func checkBuyerNames(r *Report, sales []*entity.Sale, credits []*entity.StandaloneCredit, payments []*entity.Payment) {
	for _, g := range groupNames(AllBuyers(sales, credits, payments), mismatchKey) {
		if len(g.variants) < 2 {
			continue
		}
		r.BuyerMismatches = append(r.BuyerMismatches, BuyerMismatch{Normalized: g.normalized, Variants: g.variants})
		r.Warnings = append(r.Warnings, fmt.Sprintf("buyer name variations %q may refer to the same buyer", g.variants))
	}
}

func checkDuplicateIDs(r *Report, sales []*entity.Sale, credits []*entity.StandaloneCredit, payments []*entity.Payment) {
	counts := make(map[string]int)
	kinds := make(map[string][]string)
	var order []string
	add := func(id, kind string) {
		if id == "" {
			return
		}
		if counts[id] == 0 {
			order = append(order, id)
		}
		counts[id]++
		kinds[id] = append(kinds[id], kind)
	}
	for _, s := range sales {
		if s != nil {
			add(s.ID, KindSale)
		}
	}
	for _, c := range credits {
		if c != nil {
			add(c.ID, KindStandaloneCredit)
		}
	}
	for _, p := range payments {
		if p != nil {
			add(p.ID, KindPayment)
		}
	}
	sort.Strings(order)
	for _, id := range order {
		if counts[id] < 2 {
			continue
		}
		r.DuplicateIDs = append(r.DuplicateIDs, DuplicateID{ID: id, Count: counts[id], Kinds: kinds[id]})
		r.Errors = append(r.Errors, fmt.Sprintf("transaction id %s appears %d times (%v)", id, counts[id], kinds[id]))
	}
}

func checkOrphanedPayments(r *Report, sales []*entity.Sale, credits []*entity.StandaloneCredit, payments []*entity.Payment) {
	withCredit := make(map[string]bool)
	for _, s := range sales {
		if s != nil && s.HasCredit() {
			withCredit[s.BuyerName] = true
		}
	}
	for _, c := range credits {
		if c != nil {
			withCredit[c.BuyerName] = true
		}
	}
	for _, p := range payments {
		if p == nil || withCredit[p.BuyerName] {
			continue
		}
		r.OrphanedPayments = append(r.OrphanedPayments, OrphanedPayment{PaymentID: p.ID, BuyerName: p.BuyerName, Amount: p.Amount})
		r.Warnings = append(r.Warnings, fmt.Sprintf("payment %s for %q has no credit record", p.ID, p.BuyerName))
	}
}

func checkFutureDates(r *Report, sales []*entity.Sale, credits []*entity.StandaloneCredit, payments []*entity.Payment, now time.Time) {
	add := func(kind, id string, date time.Time) {
		if !date.After(now) {
			return
		}
		r.FutureDated = append(r.FutureDated, FutureDatedRecord{Kind: kind, ID: id, Date: date})
		r.Warnings = append(r.Warnings, fmt.Sprintf("%s %s is dated in the future (%s)", kind, id, date.Format(time.RFC3339)))
	}
	for _, s := range sales {
		if s != nil {
			add(KindSale, s.ID, s.Date)
		}
	}
	for _, c := range credits {
		if c != nil {
			add(KindStandaloneCredit, c.ID, c.Date)
		}
	}
	for _, p := range payments {
		if p != nil {
			add(KindPayment, p.ID, p.Date)
		}
	}
}
