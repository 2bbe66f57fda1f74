package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/autoparts-ledger/pkg/money"
)

// SaleItem línea de venta. ProductName, Profit y SellingPrice son fotos al momento de la venta
// (por unidad) y no cambian si luego se edita el producto.
type SaleItem struct {
	ProductID    string          `json:"productId"`
	ProductName  string          `json:"productName"`
	Quantity     int             `json:"quantity"`
	Profit       decimal.Decimal `json:"profit"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
}

// Revenue precio x cantidad de la línea.
func (i SaleItem) Revenue() decimal.Decimal {
	return money.MulInt(i.SellingPrice, i.Quantity)
}

// TotalProfit ganancia x cantidad de la línea.
func (i SaleItem) TotalProfit() decimal.Decimal {
	return money.MulInt(i.Profit, i.Quantity)
}

// CreditInfo reparto del pago de una venta: TotalAmount == CashAmount + CreditAmount == TotalRevenue.
type CreditInfo struct {
	CashAmount   decimal.Decimal `json:"cashAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
}

// Sale venta registrada. Inmutable una vez creada (solo se puede borrar).
type Sale struct {
	ID           string          `json:"id"`
	Date         time.Time       `json:"date"`
	Items        []SaleItem      `json:"items"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	TotalProfit  decimal.Decimal `json:"totalProfit"`
	BuyerName    string          `json:"buyerName"`
	CreditInfo   CreditInfo      `json:"creditInfo"`
}

// NewSale arma la venta derivando los totales desde las líneas.
func NewSale(id string, date time.Time, buyerName string, items []SaleItem, credit CreditInfo) *Sale {
	s := &Sale{
		ID:         id,
		Date:       date,
		Items:      items,
		BuyerName:  buyerName,
		CreditInfo: credit,
	}
	s.TotalRevenue, s.TotalProfit = ItemTotals(items)
	return s
}

// ItemTotals suma ingresos y ganancias de las líneas, redondeando en cada paso.
func ItemTotals(items []SaleItem) (revenue, profit decimal.Decimal) {
	for _, it := range items {
		revenue = money.Add(revenue, it.Revenue())
		profit = money.Add(profit, it.TotalProfit())
	}
	return revenue, profit
}

// GetID implementa Record.
func (s *Sale) GetID() string { return s.ID }

// Normalize re-redondea los campos monetarios.
func (s *Sale) Normalize() {
	for i := range s.Items {
		s.Items[i].Profit = money.Round(s.Items[i].Profit)
		s.Items[i].SellingPrice = money.Round(s.Items[i].SellingPrice)
	}
	s.TotalRevenue = money.Round(s.TotalRevenue)
	s.TotalProfit = money.Round(s.TotalProfit)
	s.CreditInfo.CashAmount = money.Round(s.CreditInfo.CashAmount)
	s.CreditInfo.CreditAmount = money.Round(s.CreditInfo.CreditAmount)
	s.CreditInfo.TotalAmount = money.Round(s.CreditInfo.TotalAmount)
}

// HasCredit indica si la venta dejó saldo a crédito.
func (s *Sale) HasCredit() bool {
	return s.CreditInfo.CreditAmount.IsPositive()
}
