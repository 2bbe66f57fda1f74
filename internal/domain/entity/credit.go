package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/autoparts-ledger/pkg/money"
)

// StandaloneCredit crédito otorgado fuera de una venta (ej: saldo arrastrado).
// Se crea y se borra; nunca se modifica.
type StandaloneCredit struct {
	ID           string          `json:"id"`
	BuyerName    string          `json:"buyerName"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Description  string          `json:"description"`
	Date         time.Time       `json:"date"`
	IsStandalone bool            `json:"isStandalone"`
}

// GetID implementa Record.
func (c *StandaloneCredit) GetID() string { return c.ID }

// Normalize re-redondea el monto y fija IsStandalone.
func (c *StandaloneCredit) Normalize() {
	c.CreditAmount = money.Round(c.CreditAmount)
	c.IsStandalone = true
}

// Payment abono de un comprador contra su crédito pendiente.
// SaleID y CreditID son referencias informativas (no se validan).
type Payment struct {
	ID          string          `json:"id"`
	BuyerName   string          `json:"buyerName"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description,omitempty"`
	SaleID      string          `json:"saleId,omitempty"`
	CreditID    string          `json:"creditId,omitempty"`
}

// GetID implementa Record.
func (p *Payment) GetID() string { return p.ID }

// Normalize re-redondea el monto.
func (p *Payment) Normalize() {
	p.Amount = money.Round(p.Amount)
}
