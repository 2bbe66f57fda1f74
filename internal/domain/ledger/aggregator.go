// Package ledger deriva las vistas de crédito de los compradores a partir de las tres
// colecciones de transacciones: ventas (con crédito embebido), créditos independientes y pagos.
//
// Todo se recalcula en memoria desde las colecciones completas. El orden de acumulación es fijo
// y documentado porque el redondeo se aplica en cada paso:
//  1. créditos de ventas (en orden de la colección)
//  2. créditos independientes (en orden de la colección)
//  3. pagos (en orden de la colección), recortando a cero después de cada uno
package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/autoparts-ledger/internal/domain/entity"
	"github.com/jhoicas/autoparts-ledger/pkg/money"
)

// BuyerBalance saldo pendiente de un comprador.
type BuyerBalance struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// AllBuyers devuelve todos los nombres de comprador distintos, ordenados alfabéticamente.
// El nombre es la clave exacta (sensible a mayúsculas).
func AllBuyers(sales []*entity.Sale, credits []*entity.StandaloneCredit, payments []*entity.Payment) []string {
	seen := make(map[string]struct{})
	for _, s := range sales {
		if s != nil {
			seen[s.BuyerName] = struct{}{}
		}
	}
	for _, c := range credits {
		if c != nil {
			seen[c.BuyerName] = struct{}{}
		}
	}
	for _, p := range payments {
		if p != nil {
			seen[p.BuyerName] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// OutstandingCredit calcula lo que debe cada comprador: crédito de ventas + créditos
// independientes - pagos, nunca negativo. Un pago mayor al saldo se absorbe (no queda saldo a favor).
// Los compradores que solo tienen pagos aparecen con 0.
func OutstandingCredit(sales []*entity.Sale, credits []*entity.StandaloneCredit, payments []*entity.Payment) map[string]decimal.Decimal {
	out := accumulateCredits(sales, credits)
	for _, p := range payments {
		if p == nil {
			continue
		}
		out[p.BuyerName] = money.EnsureNonNegative(money.Sub(out[p.BuyerName], p.Amount))
	}
	return out
}

// accumulateCredits pasos 1 y 2 del orden fijo.
func accumulateCredits(sales []*entity.Sale, credits []*entity.StandaloneCredit) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, s := range sales {
		if s == nil || !s.CreditInfo.CreditAmount.IsPositive() {
			continue
		}
		out[s.BuyerName] = money.Add(out[s.BuyerName], s.CreditInfo.CreditAmount)
	}
	for _, c := range credits {
		if c == nil {
			continue
		}
		out[c.BuyerName] = money.Add(out[c.BuyerName], c.CreditAmount)
	}
	return out
}

// BuyersWithOutstandingCredit lista los compradores con saldo > 0, ordenados por nombre.
func BuyersWithOutstandingCredit(sales []*entity.Sale, credits []*entity.StandaloneCredit, payments []*entity.Payment) []BuyerBalance {
	return positiveBalances(OutstandingCredit(sales, credits, payments))
}

func positiveBalances(outstanding map[string]decimal.Decimal) []BuyerBalance {
	out := make([]BuyerBalance, 0, len(outstanding))
	for name, amount := range outstanding {
		if amount.IsPositive() {
			out = append(out, BuyerBalance{Name: name, Amount: amount})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
