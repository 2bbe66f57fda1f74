package repository

import (
	"context"

	"github.com/jhoicas/autoparts-ledger/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Store[*entity.Product]
	Update(ctx context.Context, product *entity.Product) error
	// DecrementQuantity descuenta stock vendido. Devuelve domain.ErrInsufficientStock si no alcanza
	// y domain.ErrNotFound si el producto no existe.
	DecrementQuantity(ctx context.Context, productID string, sold int) error
}
