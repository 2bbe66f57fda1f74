// Package bootstrap arma el gateway de persistencia a partir de la configuración:
// caché local según CACHE_DRIVER y almacén remoto PostgreSQL si está configurado.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jhoicas/autoparts-ledger/internal/application/gateway"
	"github.com/jhoicas/autoparts-ledger/internal/domain/repository"
	"github.com/jhoicas/autoparts-ledger/internal/infrastructure/cache"
	"github.com/jhoicas/autoparts-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/autoparts-ledger/pkg/config"
	"github.com/jhoicas/autoparts-ledger/pkg/logger"
)

// Store gateway listo para usar y la función que libera sus conexiones.
type Store struct {
	Gateway *gateway.Gateway
	// Remote indica si hay almacén remoto configurado.
	Remote bool
	// Online indica si el remoto respondió al arrancar.
	Online bool
	Close  func()
}

// Open abre la caché local y, si DB está configurada, el pool remoto. Un almacén remoto que no
// responde al arrancar no es fatal: el pool se conserva y cada operación lo vuelve a intentar
// antes de caer a la caché local. Las migraciones quedan para el próximo arranque con el remoto arriba.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Store, error) {
	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	localCache, locker, err := openCache(cfg, log)
	if err != nil {
		return nil, err
	}
	if rc, ok := localCache.(*cache.RedisCache); ok {
		closers = append(closers, func() { _ = rc.Close() })
	}

	var remote *gateway.Remote
	online := false
	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			closeAll()
			return nil, fmt.Errorf("almacén remoto: %w", err)
		}
		closers = append(closers, pool.Close)

		if err := postgres.Ping(ctx, pool); err != nil {
			log.Warn().Err(err).Msg("almacén remoto no responde: se reintenta en cada operación, mientras tanto caché local")
		} else {
			online = true
			if cfg.DB.Migrate {
				if err := postgres.Migrate(pool); err != nil {
					closeAll()
					return nil, fmt.Errorf("migraciones: %w", err)
				}
				log.Info().Msg("migraciones aplicadas")
			}
		}
		remote = &gateway.Remote{
			Products: postgres.NewProductRepository(pool),
			Sales:    postgres.NewSaleRepository(pool),
			Credits:  postgres.NewCreditRepository(pool),
			Payments: postgres.NewPaymentRepository(pool),
			Tx:       postgres.NewTxRunner(pool),
		}
	} else {
		log.Info().Msg("sin DATABASE_URL/DB_HOST: modo solo local")
	}

	var opts []gateway.Option
	if locker != nil {
		opts = append(opts, gateway.WithLocker(locker))
	}
	return &Store{
		Gateway: gateway.New(remote, localCache, log, opts...),
		Remote:  remote != nil,
		Online:  online,
		Close:   closeAll,
	}, nil
}

func openCache(cfg *config.Config, log *logger.Logger) (repository.LocalCache, gateway.Locker, error) {
	switch cfg.Cache.Driver {
	case config.CacheMemory:
		log.Info().Str("driver", cfg.Cache.Driver).Msg("caché local")
		return cache.NewMemoryCache(), nil, nil
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(cfg.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("caché redis: %w", err)
		}
		log.Info().Str("driver", cfg.Cache.Driver).Str("host", cfg.Redis.Host).Msg("caché local")
		return rc, rc, nil
	default:
		fc, err := cache.NewFileCache(cfg.Cache.Dir)
		if err != nil {
			return nil, nil, fmt.Errorf("caché en archivo: %w", err)
		}
		log.Info().Str("driver", config.CacheFile).Str("dir", cfg.Cache.Dir).Msg("caché local")
		return fc, nil, nil
	}
}
