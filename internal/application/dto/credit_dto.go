package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/autoparts-ledger/internal/domain/ledger"
)

// CreateCreditRequest crédito independiente (saldo anterior, préstamo, etc.). Date vacío = ahora.
type CreateCreditRequest struct {
	BuyerName    string          `json:"buyerName"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Description  string          `json:"description"`
	Date         string          `json:"date,omitempty"`
}

// RecordPaymentRequest abono de un comprador. SaleID y CreditID son referencias opcionales.
type RecordPaymentRequest struct {
	BuyerName   string          `json:"buyerName"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date,omitempty"`
	Description string          `json:"description,omitempty"`
	SaleID      string          `json:"saleId,omitempty"`
	CreditID    string          `json:"creditId,omitempty"`
}

// OutstandingResponse saldos pendientes (> 0) y su total.
type OutstandingResponse struct {
	Buyers []ledger.BuyerBalance `json:"buyers"`
	Total  decimal.Decimal       `json:"total"`
}

// DirectoryEntry comprador con identidad estable, sus grafías y el saldo consolidado.
type DirectoryEntry struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Aliases     []string        `json:"aliases"`
	Outstanding decimal.Decimal `json:"outstanding"`
}
