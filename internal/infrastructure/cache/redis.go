package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/autoparts-ledger/internal/domain"
	"github.com/jhoicas/autoparts-ledger/internal/domain/repository"
	"github.com/jhoicas/autoparts-ledger/pkg/config"
)

var _ repository.LocalCache = (*RedisCache)(nil)

// keyPrefix separa las colecciones de esta app de otras claves del mismo Redis.
const keyPrefix = "ledger:"

// lockTTL vida máxima de un lock si el proceso muere sin liberarlo.
const lockTTL = 5 * time.Minute

// RedisCache caché local sobre Redis (sin TTL: es respaldo offline, no caché volátil).
// También sirve de Locker para que dos instancias no sincronicen a la vez.
type RedisCache struct {
	client *redis.Client
	locker *redislock.Client
}

// NewRedisCache crea el cliente desde config y verifica la conexión.
func NewRedisCache(cfg config.RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return &RedisCache{client: client, locker: redislock.New(client)}, nil
}

// Load devuelve el arreglo JSON guardado en key, o nil si no existe.
func (r *RedisCache) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, nil
}

// Save reemplaza el arreglo JSON de key.
func (r *RedisCache) Save(ctx context.Context, key string, data []byte) error {
	if err := r.client.Set(ctx, keyPrefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Lock toma un lock exclusivo sobre key. Devuelve domain.ErrBusy si otra instancia lo tiene.
func (r *RedisCache) Lock(ctx context.Context, key string) (func(), error) {
	lock, err := r.locker.Obtain(ctx, keyPrefix+"lock:"+key, lockTTL, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("lock %s: %w", key, domain.ErrBusy)
	}
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", key, err)
	}
	return func() {
		// contexto propio: el del llamador puede estar cancelado al liberar
		_ = lock.Release(context.Background())
	}, nil
}

// Close cierra la conexión.
func (r *RedisCache) Close() error {
	return r.client.Close()
}
