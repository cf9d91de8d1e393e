package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/backoffice-api/internal/application/order"
	"github.com/jhoicas/backoffice-api/pkg/config"
	"github.com/redis/go-redis/v9"
)

const idempotencyKeyPrefix = "backoffice:order:idem:"

var _ order.IdempotencyGuard = (*IdempotencyStore)(nil)

// IdempotencyStore claves Idempotency-Key de pedidos en Redis (SETNX con TTL). El valor es vacío
// mientras el pedido está en curso y el ID del pedido una vez confirmado.
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewClient abre el cliente y verifica la conexión con PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// NewIdempotencyStore ttl <= 0 usa 24h.
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Reserve true si la clave quedó reservada por esta llamada.
func (s *IdempotencyStore) Reserve(ctx context.Context, key string) (bool, error) {
	ok, err := s.client.SetNX(ctx, idempotencyKeyPrefix+key, "", s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx: %w", err)
	}
	return ok, nil
}

// Complete guarda el ID del pedido conservando el TTL de la reserva.
func (s *IdempotencyStore) Complete(ctx context.Context, key, orderID string) error {
	if err := s.client.Set(ctx, idempotencyKeyPrefix+key, orderID, redis.KeepTTL).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Lookup ID del pedido asociado a la clave; "" si no existe o sigue en curso.
func (s *IdempotencyStore) Lookup(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, idempotencyKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis get: %w", err)
	}
	return v, nil
}

// Release libera la clave tras un pedido fallido para permitir el reintento del cliente.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, idempotencyKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
