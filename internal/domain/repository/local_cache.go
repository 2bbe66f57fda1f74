package repository

import "context"

// Claves de la caché local: una entrada por colección, cada una un arreglo JSON.
const (
	CacheKeyProducts          = "products"
	CacheKeySales             = "sales"
	CacheKeyStandaloneCredits = "standaloneCredits"
	CacheKeyPayments          = "payments"
)

// LocalCache almacén clave -> arreglo JSON usado como respaldo offline y como fuente de la sincronización.
// Load devuelve (nil, nil) si la clave no existe.
type LocalCache interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}
