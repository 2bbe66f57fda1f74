package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/autoparts-ledger/internal/domain/entity"
	"github.com/jhoicas/autoparts-ledger/pkg/money"
)

// StatementEntry movimiento en el estado de cuenta de un comprador.
// Charge es crédito otorgado (venta o independiente), Paid es un abono.
type StatementEntry struct {
	Kind        string          `json:"kind"`
	RefID       string          `json:"refId"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Charge      decimal.Decimal `json:"charge"`
	Paid        decimal.Decimal `json:"paid"`
	Balance     decimal.Decimal `json:"balance"`
}

// Statement estado de cuenta cronológico de un comprador (nombre exacto).
// Balance de cada línea es el acumulado sin recortar; Closing es el saldo pendiente
// oficial (mismo valor que OutstandingCredit para ese comprador).
type Statement struct {
	BuyerName    string           `json:"buyerName"`
	Entries      []StatementEntry `json:"entries"`
	TotalCharged decimal.Decimal  `json:"totalCharged"`
	TotalPaid    decimal.Decimal  `json:"totalPaid"`
	Closing      decimal.Decimal  `json:"closing"`
}

// BuildStatement arma el estado de cuenta de buyerName. Los movimientos del mismo instante
// conservan el orden fijo del ledger (ventas, créditos, pagos).
func BuildStatement(buyerName string, sales []*entity.Sale, credits []*entity.StandaloneCredit, payments []*entity.Payment) Statement {
	st := Statement{BuyerName: buyerName, Entries: []StatementEntry{}}
	var mineSales []*entity.Sale
	var mineCredits []*entity.StandaloneCredit
	var minePayments []*entity.Payment

	for _, s := range sales {
		if s == nil || s.BuyerName != buyerName || !s.HasCredit() {
			continue
		}
		mineSales = append(mineSales, s)
		st.Entries = append(st.Entries, StatementEntry{
			Kind:        KindSale,
			RefID:       s.ID,
			Date:        s.Date,
			Description: "Credit on sale",
			Charge:      s.CreditInfo.CreditAmount,
		})
	}
	for _, c := range credits {
		if c == nil || c.BuyerName != buyerName {
			continue
		}
		mineCredits = append(mineCredits, c)
		st.Entries = append(st.Entries, StatementEntry{
			Kind:        KindStandaloneCredit,
			RefID:       c.ID,
			Date:        c.Date,
			Description: c.Description,
			Charge:      c.CreditAmount,
		})
	}
	for _, p := range payments {
		if p == nil || p.BuyerName != buyerName {
			continue
		}
		minePayments = append(minePayments, p)
		desc := p.Description
		if desc == "" {
			desc = "Payment"
		}
		st.Entries = append(st.Entries, StatementEntry{
			Kind:        KindPayment,
			RefID:       p.ID,
			Date:        p.Date,
			Description: desc,
			Paid:        p.Amount,
		})
	}

	sort.SliceStable(st.Entries, func(i, j int) bool { return st.Entries[i].Date.Before(st.Entries[j].Date) })

	running := decimal.Zero
	for i := range st.Entries {
		e := &st.Entries[i]
		st.TotalCharged = money.Add(st.TotalCharged, e.Charge)
		st.TotalPaid = money.Add(st.TotalPaid, e.Paid)
		running = money.Sub(money.Add(running, e.Charge), e.Paid)
		e.Balance = running
	}
	st.Closing = OutstandingCredit(mineSales, mineCredits, minePayments)[buyerName]
	return st
}
