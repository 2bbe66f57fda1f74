package repository

import (
	"context"

	"github.com/jhoicas/autoparts-ledger/internal/domain/entity"
)

// Store puerto CRUD por ID común a las cuatro colecciones.
// GetByID y Delete devuelven domain.ErrNotFound cuando el registro no existe.
type Store[T entity.Record] interface {
	List(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, rec T) error
	Delete(ctx context.Context, id string) error

	// Upsert inserta o reemplaza por ID (última escritura gana). Lo usa la sincronización.
	Upsert(ctx context.Context, rec T) error
}
