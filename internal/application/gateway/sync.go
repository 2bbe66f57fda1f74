package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/autoparts-ledger/internal/domain"
)

// syncLockKey clave del lock entre instancias.
const syncLockKey = "sync"

// CollectionSync resultado de sincronizar una colección.
type CollectionSync struct {
	Collection string   `json:"collection"`
	Pushed     int      `json:"pushed"`
	Failed     int      `json:"failed"`
	Errors     []string `json:"errors"`
}

// SyncReport resultado de Sync.
type SyncReport struct {
	StartedAt   time.Time        `json:"startedAt"`
	Duration    time.Duration    `json:"duration"`
	Collections []CollectionSync `json:"collections"`
}

// Failed total de registros que no se pudieron empujar.
func (r SyncReport) Failed() int {
	n := 0
	for _, c := range r.Collections {
		n += c.Failed
	}
	return n
}

// Sync empuja cada registro de la caché local al almacén remoto con upsert por ID
// (la última escritura gana, sin resolución de conflictos). Pensado para correr una vez al
// arrancar, antes de las lecturas. Un registro que falla no detiene al resto.
func (g *Gateway) Sync(ctx context.Context) (SyncReport, error) {
	report := SyncReport{StartedAt: time.Now(), Collections: []CollectionSync{}}
	if g.Products.remote == nil {
		return report, domain.ErrRemoteUnavailable
	}
	if g.locker != nil {
		release, err := g.locker.Lock(ctx, syncLockKey)
		if err != nil {
			return report, err
		}
		defer release()
	}

	steps := []func(context.Context) (CollectionSync, error){
		g.Products.Collection.push,
		g.Sales.push,
		g.Credits.push,
		g.Payments.push,
	}
	for _, push := range steps {
		cs, err := push(ctx)
		if err != nil {
			return report, err
		}
		report.Collections = append(report.Collections, cs)
	}
	report.Duration = time.Since(report.StartedAt)

	ev := g.log.Info()
	if report.Failed() > 0 {
		ev = g.log.Warn()
	}
	ev.Int("failed", report.Failed()).Dur("duration", report.Duration).Msg("sincronización local -> remoto terminada")
	return report, nil
}

// push sube cada registro en caché. Error solo si no se puede leer la caché.
func (c *Collection[T]) push(ctx context.Context) (CollectionSync, error) {
	cs := CollectionSync{Collection: c.key, Errors: []string{}}
	if c.remote == nil {
		return cs, nil
	}
	recs, err := c.loadLocal(ctx)
	if err != nil {
		return cs, err
	}
	for _, rec := range recs {
		if err := ctx.Err(); err != nil {
			return cs, err
		}
		if err := c.remote.Upsert(ctx, rec); err != nil {
			cs.Failed++
			cs.Errors = append(cs.Errors, fmt.Sprintf("%s: %v", rec.GetID(), err))
			c.log.Warn().Err(err).Str("collection", c.key).Str("id", rec.GetID()).Msg("sync: upsert falló")
			continue
		}
		cs.Pushed++
	}
	return cs, nil
}
