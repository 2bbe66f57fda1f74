package validation

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/autoparts-ledger/internal/domain/entity"
	"github.com/jhoicas/autoparts-ledger/pkg/money"
)

// ValidateProduct verifica un producto candidato.
func ValidateProduct(p *entity.Product) Result {
	r := newResult()
	if p == nil {
		r.addf("Product is required")
		return *r
	}
	if strings.TrimSpace(p.Name) == "" {
		r.addf("Product name is required")
	}
	if strings.TrimSpace(string(p.Type)) == "" {
		r.addf("Vehicle type is required")
	}
	if strings.TrimSpace(string(p.Category)) == "" {
		r.addf("Category is required")
	}
	if strings.TrimSpace(string(p.Brand)) == "" {
		r.addf("Brand is required")
	}
	if strings.TrimSpace(string(p.Country)) == "" {
		r.addf("Country of origin is required")
	}
	if !p.PurchasePrice.IsPositive() {
		r.addf("Purchase price must be greater than 0")
	}
	if !p.SellingPrice.IsPositive() {
		r.addf("Selling price must be greater than 0")
	}
	if p.Quantity < 0 {
		r.addf("Quantity cannot be negative")
	}
	if p.Pricing != nil {
		validatePricing(r, p.Pricing)
	}
	return *r
}

func validatePricing(r *Result, pr *entity.Pricing) {
	if !pr.OriginalAmount.IsPositive() {
		r.addf("Original amount must be greater than 0")
	}
	if pr.ExchangeRate != nil && !pr.ExchangeRate.IsPositive() {
		r.addf("Exchange rate must be greater than 0")
	}
	if pr.DutyPerUnit.IsNegative() {
		r.addf("Duty per unit cannot be negative")
	}
	if !pr.FinalPurchasePrice.IsPositive() {
		r.addf("Final purchase price must be greater than 0")
		return
	}
	expected := pr.ComputeFinalPurchasePrice()
	if !money.Equal(pr.FinalPurchasePrice, expected) {
		r.addf("Final purchase price (%s) does not match computed value (%s)",
			money.Format(pr.FinalPurchasePrice), money.Format(expected))
	}
}

// ValidateSale verifica una venta antes de registrarla contra el stock actual.
// El stock se controla de forma acumulada: dos líneas del mismo producto suman su cantidad.
// TotalAmount debe coincidir con efectivo + crédito y con la suma de precio x cantidad.
func ValidateSale(items []entity.SaleItem, buyerName string, credit entity.CreditInfo, availableProducts []*entity.Product) Result {
	r := newResult()
	if strings.TrimSpace(buyerName) == "" {
		r.addf("Buyer name is required")
	}
	if len(items) == 0 {
		r.addf("At least one item is required")
	}

	byID := make(map[string]*entity.Product, len(availableProducts))
	for _, p := range availableProducts {
		if p != nil {
			byID[p.ID] = p
		}
	}

	requested := make(map[string]int)
	revenue := decimal.Zero
	for i, it := range items {
		line := i + 1
		product, ok := byID[it.ProductID]
		if !ok {
			name := it.ProductName
			if name == "" {
				name = it.ProductID
			}
			r.addf("Product not found: %s", name)
		}
		if it.Quantity <= 0 {
			r.addf("Item %d: quantity must be greater than 0", line)
		} else if ok {
			requested[it.ProductID] += it.Quantity
			if requested[it.ProductID] > product.Quantity {
				r.addf("Insufficient inventory for %s: requested %d, available %d",
					product.Name, requested[it.ProductID], product.Quantity)
			}
		}
		if !it.SellingPrice.IsPositive() {
			r.addf("Item %d: selling price must be greater than 0", line)
		} else if it.Profit.LessThan(it.SellingPrice.Neg()) {
			r.addf("Item %d: loss (%s) cannot exceed selling price (%s)",
				line, money.Format(it.Profit), money.Format(it.SellingPrice))
		}
		revenue = money.Add(revenue, it.Revenue())
	}

	if credit.CashAmount.IsNegative() {
		r.addf("Cash amount cannot be negative")
	}
	if credit.CreditAmount.IsNegative() {
		r.addf("Credit amount cannot be negative")
	}
	paid := money.Add(credit.CashAmount, credit.CreditAmount)
	if !money.Equal(credit.TotalAmount, paid) {
		r.addf("Total amount (%s) must equal cash (%s) plus credit (%s)",
			money.Format(credit.TotalAmount), money.Format(credit.CashAmount), money.Format(credit.CreditAmount))
	}
	if !money.Equal(credit.TotalAmount, revenue) {
		r.addf("Total amount (%s) must equal sale revenue (%s)",
			money.Format(credit.TotalAmount), money.Format(revenue))
	}
	return *r
}

// ValidateStandaloneCredit verifica un crédito independiente.
func ValidateStandaloneCredit(c *entity.StandaloneCredit, now time.Time) Result {
	r := newResult()
	if c == nil {
		r.addf("Credit is required")
		return *r
	}
	if strings.TrimSpace(c.BuyerName) == "" {
		r.addf("Buyer name is required")
	}
	if !c.CreditAmount.IsPositive() {
		r.addf("Credit amount must be greater than 0")
	}
	if strings.TrimSpace(c.Description) == "" {
		r.addf("Description is required")
	}
	checkDate(r, c.Date, now)
	return *r
}

// ValidatePayment verifica un pago contra el crédito disponible del comprador.
func ValidatePayment(p *entity.Payment, availableCredit decimal.Decimal, now time.Time) Result {
	r := newResult()
	if p == nil {
		r.addf("Payment is required")
		return *r
	}
	if strings.TrimSpace(p.BuyerName) == "" {
		r.addf("Buyer name is required")
	}
	if !p.Amount.IsPositive() {
		r.addf("Payment amount must be greater than 0")
	} else if p.Amount.GreaterThan(availableCredit) && !money.Equal(p.Amount, availableCredit) {
		r.addf("Payment amount (%s) exceeds available credit (%s)",
			money.Format(p.Amount), money.Format(availableCredit))
	}
	checkDate(r, p.Date, now)
	return *r
}
