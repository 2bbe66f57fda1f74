package gateway

import (
	"context"

	"github.com/jhoicas/autoparts-ledger/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del almacén remoto, pasando repositorios
// atados a esa tx. Garantiza que la venta y los descuentos de stock se confirman juntos.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		sales repository.SaleRepository,
		products repository.ProductRepository,
	) error) error
}

// Locker exclusión mutua entre procesos. release no debe ser nil si err es nil.
type Locker interface {
	Lock(ctx context.Context, key string) (release func(), err error)
}
