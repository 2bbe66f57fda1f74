package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/autoparts-ledger/internal/domain/entity"
)

// ProductRequest entrada para crear o reemplazar un producto.
type ProductRequest struct {
	Name          string             `json:"name"`
	Type          entity.VehicleType `json:"type"`
	Category      entity.Category    `json:"category"`
	Brand         entity.Brand       `json:"brand"`
	Country       entity.Country     `json:"country"`
	PurchasePrice decimal.Decimal    `json:"purchasePrice"`
	Pricing       *entity.Pricing    `json:"pricing,omitempty"`
	SellingPrice  decimal.Decimal    `json:"sellingPrice"`
	Quantity      int                `json:"quantity"`
}

// ProductResponse salida de un producto con la ganancia unitaria derivada.
type ProductResponse struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Type          entity.VehicleType `json:"type"`
	Category      entity.Category    `json:"category"`
	Brand         entity.Brand       `json:"brand"`
	Country       entity.Country     `json:"country"`
	PurchasePrice decimal.Decimal    `json:"purchasePrice"`
	Pricing       *entity.Pricing    `json:"pricing,omitempty"`
	SellingPrice  decimal.Decimal    `json:"sellingPrice"`
	Quantity      int                `json:"quantity"`
	UnitProfit    decimal.Decimal    `json:"unitProfit"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// ImportFailure fila rechazada en una importación (Row cuenta desde 1 con el encabezado).
type ImportFailure struct {
	Row    int      `json:"row"`
	Errors []string `json:"errors"`
}

// ImportReport resultado de una importación masiva: éxito parcial permitido.
type ImportReport struct {
	Imported int             `json:"imported"`
	Failed   []ImportFailure `json:"failed"`
}

// CatalogResponse valores admitidos por los campos enumerados de Product.
type CatalogResponse struct {
	VehicleTypes []entity.VehicleType `json:"vehicleTypes"`
	Categories   []entity.Category    `json:"categories"`
	Brands       []entity.Brand       `json:"brands"`
	Countries    []entity.Country     `json:"countries"`
}
