package dto

import "github.com/shopspring/decimal"

// SaleItemRequest línea de venta. SellingPrice y Profit son opcionales: por defecto se toman
// del producto al momento de la venta (precio de venta y precio - costo).
type SaleItemRequest struct {
	ProductID    string           `json:"productId"`
	Quantity     int              `json:"quantity"`
	SellingPrice *decimal.Decimal `json:"sellingPrice,omitempty"`
	Profit       *decimal.Decimal `json:"profit,omitempty"`
}

// RecordSaleRequest entrada para registrar una venta. Date vacío = ahora.
// TotalAmount vacío = efectivo + crédito.
type RecordSaleRequest struct {
	BuyerName    string            `json:"buyerName"`
	Date         string            `json:"date,omitempty"`
	Items        []SaleItemRequest `json:"items"`
	CashAmount   decimal.Decimal   `json:"cashAmount"`
	CreditAmount decimal.Decimal   `json:"creditAmount"`
	TotalAmount  *decimal.Decimal  `json:"totalAmount,omitempty"`
}
