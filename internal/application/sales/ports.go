package sales

import (
	"context"

	"github.com/jhoicas/autoparts-ledger/internal/application/gateway"
	"github.com/jhoicas/autoparts-ledger/internal/domain/entity"
)

// ProductLister stock actual contra el que se valida la venta.
type ProductLister interface {
	List(ctx context.Context) ([]*entity.Product, error)
}

// SaleStore lecturas y borrado de ventas.
type SaleStore interface {
	List(ctx context.Context) ([]*entity.Sale, error)
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	Delete(ctx context.Context, id string) error
}

// SaleCommitter registra la venta y el descuento de stock como una sola unidad.
type SaleCommitter interface {
	CommitSale(ctx context.Context, sale *entity.Sale, adjustments []gateway.StockAdjustment) error
}
