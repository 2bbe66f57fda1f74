package credit

import (
	"context"

	"github.com/jhoicas/autoparts-ledger/internal/domain/entity"
)

// Lister lectura completa de una colección.
type Lister[T entity.Record] interface {
	List(ctx context.Context) ([]T, error)
}

// Store alta, lectura y baja de una colección (los registros de crédito no se modifican).
type Store[T entity.Record] interface {
	Lister[T]
	Create(ctx context.Context, rec T) error
	Delete(ctx context.Context, id string) error
}
