package gateway

import (
	"context"

	"github.com/jhoicas/autoparts-ledger/internal/domain/entity"
	"github.com/jhoicas/autoparts-ledger/internal/domain/repository"
	"github.com/jhoicas/autoparts-ledger/pkg/logger"
)

// Products colección de productos: CRUD común más Update.
type Products struct {
	*Collection[*entity.Product]
	repo repository.ProductRepository
}

// NewProducts construye la colección de productos. repo puede ser nil.
func NewProducts(repo repository.ProductRepository, cache repository.LocalCache, log *logger.Logger) *Products {
	return &Products{
		Collection: NewCollection[*entity.Product](repository.CacheKeyProducts, repo, cache, log),
		repo:       repo,
	}
}

// Update reemplaza un producto existente (ErrNotFound si no existe en ningún lado).
func (p *Products) Update(ctx context.Context, product *entity.Product) error {
	return p.put(ctx, "update", product, func(ctx context.Context) error {
		return p.repo.Update(ctx, product)
	})
}
