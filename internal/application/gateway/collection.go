// Package gateway política de persistencia: almacén remoto primero, caché local como respaldo.
//
// Cada operación intenta el remoto. Si responde, el resultado se refleja en la caché local
// (sobrescribe). Si falla (o no hay remoto configurado) se registra el fallo y la operación se
// aplica solo sobre la caché, para que la app siga funcionando offline. Sync reconcilia después.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/jhoicas/autoparts-ledger/internal/domain"
	"github.com/jhoicas/autoparts-ledger/internal/domain/entity"
	"github.com/jhoicas/autoparts-ledger/internal/domain/repository"
	"github.com/jhoicas/autoparts-ledger/pkg/logger"
)

// Collection una colección con política remoto-primero sobre una clave de la caché local.
type Collection[T entity.Record] struct {
	key    string
	remote repository.Store[T] // nil = sin almacén remoto
	cache  repository.LocalCache
	log    *logger.Logger

	// mu serializa el leer-modificar-escribir del arreglo en caché.
	mu sync.Mutex
}

// NewCollection construye la colección. remote puede ser nil (modo solo local).
func NewCollection[T entity.Record](key string, remote repository.Store[T], cache repository.LocalCache, log *logger.Logger) *Collection[T] {
	return &Collection[T]{key: key, remote: remote, cache: cache, log: log}
}

// Key clave de la caché local de la colección.
func (c *Collection[T]) Key() string { return c.key }

// List devuelve todos los registros. Con remoto disponible la caché pasa a ser la lista remota
// más los registros que solo existen en caché (creados offline, pendientes de Sync), que también
// se devuelven al final.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	if c.remote != nil {
		recs, err := c.remote.List(ctx)
		if err == nil {
			for _, r := range recs {
				r.Normalize()
			}
			var merged []T
			c.mirror(ctx, "list", "", func(local []T) ([]T, error) {
				merged = mergePending(recs, local)
				return merged, nil
			})
			if merged == nil {
				merged = recs
			}
			return merged, nil
		}
		c.fallback("list", "", err)
	}
	return c.loadLocal(ctx)
}

// GetByID busca por ID. Un ErrNotFound remoto también consulta la caché: puede haber registros
// creados offline todavía no sincronizados.
func (c *Collection[T]) GetByID(ctx context.Context, id string) (T, error) {
	var zero T
	if c.remote != nil {
		rec, err := c.remote.GetByID(ctx, id)
		if err == nil {
			rec.Normalize()
			c.mirror(ctx, "get", id, upsertInto(rec))
			return rec, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			c.fallback("get", id, err)
		}
	}
	recs, err := c.loadLocal(ctx)
	if err != nil {
		return zero, err
	}
	if i := indexOf(recs, id); i >= 0 {
		return recs[i], nil
	}
	return zero, domain.ErrNotFound
}

// Create persiste un registro nuevo. Un ErrDuplicate remoto es definitivo y no cae a la caché.
func (c *Collection[T]) Create(ctx context.Context, rec T) error {
	rec.Normalize()
	if c.remote != nil {
		err := c.remote.Create(ctx, rec)
		if err == nil {
			c.mirror(ctx, "create", rec.GetID(), upsertInto(rec))
			return nil
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return err
		}
		c.fallback("create", rec.GetID(), err)
	}
	return c.writeLocal(ctx, func(recs []T) ([]T, error) {
		if indexOf(recs, rec.GetID()) >= 0 {
			return nil, domain.ErrDuplicate
		}
		return append(recs, rec), nil
	})
}

// Delete elimina por ID. Tras un fallo remoto, borrar algo que no está en caché es ErrNotFound.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	if c.remote != nil {
		err := c.remote.Delete(ctx, id)
		if err == nil {
			c.mirror(ctx, "delete", id, removeFrom[T](id, false))
			return nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			c.fallback("delete", id, err)
		}
	}
	return c.writeLocal(ctx, removeFrom[T](id, true))
}

// put reemplaza un registro existente con la misma política (remoteFn hace la escritura remota).
func (c *Collection[T]) put(ctx context.Context, op string, rec T, remoteFn func(context.Context) error) error {
	rec.Normalize()
	if c.remote != nil {
		err := remoteFn(ctx)
		if err == nil {
			c.mirror(ctx, op, rec.GetID(), upsertInto(rec))
			return nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			c.fallback(op, rec.GetID(), err)
		}
	}
	return c.writeLocal(ctx, func(recs []T) ([]T, error) {
		i := indexOf(recs, rec.GetID())
		if i < 0 {
			return nil, domain.ErrNotFound
		}
		recs[i] = rec
		return recs, nil
	})
}

// fallback registra el fallo remoto antes de operar sobre la caché.
func (c *Collection[T]) fallback(op, id string, err error) {
	c.log.Warn().Err(err).
		Str("collection", c.key).
		Str("op", op).
		Str("id", id).
		Msg("almacén remoto falló, operando sobre caché local")
}

// mirror refleja en caché un resultado remoto exitoso. Un fallo aquí no invalida la operación.
func (c *Collection[T]) mirror(ctx context.Context, op, id string, fn func([]T) ([]T, error)) {
	if err := c.writeLocal(ctx, fn); err != nil && !errors.Is(err, domain.ErrNotFound) {
		c.log.Warn().Err(err).
			Str("collection", c.key).
			Str("op", op).
			Str("id", id).
			Msg("no se pudo reflejar en caché local")
	}
}

// loadLocal lee y normaliza el arreglo en caché (re-redondea el dinero al leer).
func (c *Collection[T]) loadLocal(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadLocked(ctx)
}

func (c *Collection[T]) loadLocked(ctx context.Context) ([]T, error) {
	data, err := c.cache.Load(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("leer caché %s: %w", c.key, err)
	}
	recs := []T{}
	if len(data) == 0 {
		return recs, nil
	}
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("decodificar caché %s: %w", c.key, err)
	}
	for _, r := range recs {
		r.Normalize()
	}
	return recs, nil
}

func (c *Collection[T]) saveLocked(ctx context.Context, recs []T) error {
	data, err := encode(recs)
	if err != nil {
		return fmt.Errorf("codificar caché %s: %w", c.key, err)
	}
	if err := c.cache.Save(ctx, c.key, data); err != nil {
		return fmt.Errorf("escribir caché %s: %w", c.key, err)
	}
	return nil
}

// writeLocal aplica fn al arreglo en caché y lo guarda si fn no falla.
func (c *Collection[T]) writeLocal(ctx context.Context, fn func([]T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	recs, err := c.loadLocked(ctx)
	if err != nil {
		return err
	}
	next, err := fn(recs)
	if err != nil {
		return err
	}
	return c.saveLocked(ctx, next)
}

func encode[T any](recs []T) ([]byte, error) {
	if recs == nil {
		recs = []T{}
	}
	return json.Marshal(recs)
}

func indexOf[T entity.Record](recs []T, id string) int {
	for i, r := range recs {
		if r.GetID() == id {
			return i
		}
	}
	return -1
}

func mergePending[T entity.Record](remote, local []T) []T {
	seen := make(map[string]struct{}, len(remote))
	out := make([]T, 0, len(remote))
	for _, r := range remote {
		seen[r.GetID()] = struct{}{}
		out = append(out, r)
	}
	for _, r := range local {
		if _, ok := seen[r.GetID()]; !ok {
			out = append(out, r)
		}
	}
	return out
}

func upsertInto[T entity.Record](rec T) func([]T) ([]T, error) {
	return func(recs []T) ([]T, error) {
		if i := indexOf(recs, rec.GetID()); i >= 0 {
			recs[i] = rec
			return recs, nil
		}
		return append(recs, rec), nil
	}
}

func removeFrom[T entity.Record](id string, mustExist bool) func([]T) ([]T, error) {
	return func(recs []T) ([]T, error) {
		i := indexOf(recs, id)
		if i < 0 {
			if mustExist {
				return nil, domain.ErrNotFound
			}
			return recs, nil
		}
		return append(recs[:i], recs[i+1:]...), nil
	}
}
