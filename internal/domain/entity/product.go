package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/autoparts-ledger/pkg/money"
)

// VehicleType marca de vehículo a la que aplica el repuesto.
type VehicleType string

const (
	VehicleTATA    VehicleType = "TATA"
	VehicleLeyland VehicleType = "Leyland"
	VehicleBedford VehicleType = "Bedford"
	VehicleOther   VehicleType = "Other"
)

// VehicleTypes lista cerrada de tipos de vehículo.
var VehicleTypes = []VehicleType{VehicleTATA, VehicleLeyland, VehicleBedford, VehicleOther}

// Country país de origen del repuesto.
type Country string

const (
	CountryIndia Country = "India"
	CountryChina Country = "China"
)

// Countries lista cerrada de países de origen.
var Countries = []Country{CountryIndia, CountryChina}

// Category categoría del repuesto.
type Category string

// Categories catálogo de categorías.
var Categories = []Category{
	"Engine", "Brake", "Clutch", "Suspension", "Electrical",
	"Filter", "Transmission", "Steering", "Cooling", "Fuel System",
	"Exhaust", "Body", "Lighting", "Bearing", "Gasket",
	"Belt & Hose", "Tyre & Wheel", "Axle", "Lubricant", "Accessories",
}

// Brand fabricante del repuesto.
type Brand string

// BrandOther marca fuera del catálogo.
const BrandOther Brand = "Other"

// Brands catálogo de marcas (incluye Other al final).
var Brands = []Brand{
	"Bosch", "Lucas TVS", "Minda", "Rane", "Brakes India", "Valeo", "Mahle",
	"Tata Genuine", "Leyland Genuine", "Exide", "Amaron", "SKF", "FAG", "NBC",
	"Timken", "Gabriel", "Monroe", "Mann-Filter", "Purolator", "Fleetguard",
	"Denso", "Napco", "Uno Minda", "Sundram", "Hella", "Wabco", "ZF",
	"Federal-Mogul", "Victor Reinz", "Goetze", "Castrol", "Mobil", "Shell",
	"Weichai", BrandOther,
}

// Pricing estructura detallada del costo de compra (importación).
// FinalPurchasePrice = Round(OriginalAmount * (ExchangeRate o 1) + DutyPerUnit).
type Pricing struct {
	OriginalAmount     decimal.Decimal  `json:"originalAmount"`
	Currency           string           `json:"currency"`
	ExchangeRate       *decimal.Decimal `json:"exchangeRate,omitempty"`
	DutyPerUnit        decimal.Decimal  `json:"dutyPerUnit"`
	FinalPurchasePrice decimal.Decimal  `json:"finalPurchasePrice"`
}

// ComputeFinalPurchasePrice recalcula el precio final de compra por unidad.
func (p Pricing) ComputeFinalPurchasePrice() decimal.Decimal {
	rate := decimal.NewFromInt(1)
	if p.ExchangeRate != nil {
		rate = *p.ExchangeRate
	}
	return money.Round(p.OriginalAmount.Mul(rate).Add(p.DutyPerUnit))
}

// Product repuesto en inventario.
// PurchasePrice es el campo plano heredado; si Pricing existe, es la fuente detallada del costo.
type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Type          VehicleType     `json:"type"`
	Category      Category        `json:"category"`
	Brand         Brand           `json:"brand"`
	Country       Country         `json:"country"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	Pricing       *Pricing        `json:"pricing,omitempty"`
	SellingPrice  decimal.Decimal `json:"sellingPrice"`
	Quantity      int             `json:"quantity"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// GetID implementa Record.
func (p *Product) GetID() string { return p.ID }

// Normalize re-redondea los campos monetarios.
func (p *Product) Normalize() {
	p.PurchasePrice = money.Round(p.PurchasePrice)
	p.SellingPrice = money.Round(p.SellingPrice)
	if p.Pricing != nil {
		p.Pricing.OriginalAmount = money.Round(p.Pricing.OriginalAmount)
		p.Pricing.DutyPerUnit = money.Round(p.Pricing.DutyPerUnit)
		p.Pricing.FinalPurchasePrice = money.Round(p.Pricing.FinalPurchasePrice)
	}
}

// UnitCost costo unitario efectivo: el de Pricing si existe, si no el precio plano.
func (p *Product) UnitCost() decimal.Decimal {
	if p.Pricing != nil && p.Pricing.FinalPurchasePrice.IsPositive() {
		return p.Pricing.FinalPurchasePrice
	}
	return p.PurchasePrice
}

// UnitProfit ganancia unitaria a precio de venta actual.
func (p *Product) UnitProfit() decimal.Decimal {
	return money.Sub(p.SellingPrice, p.UnitCost())
}
