// Package rediscache implementa el caché de catálogo sobre Redis.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/jhoicas/marketplace-api/internal/application/usecase"
	"github.com/jhoicas/marketplace-api/pkg/config"
)

var _ usecase.CatalogCache = (*CatalogCache)(nil)

// CatalogCache caché JSON con TTL para las lecturas públicas de catálogo.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New conecta a Redis y devuelve el caché. Falla si el servidor no responde:
// con REDIS_ADDR definido, un Redis caído es un error de arranque.
func New(ctx context.Context, cfg config.RedisConfig) (*CatalogCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	ttl := time.Duration(cfg.TTLS) * time.Second
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CatalogCache{client: client, ttl: ttl}, nil
}

// GetJSON deserializa la entrada en dest; devuelve false si no existe.
func (c *CatalogCache) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("redis unmarshal %s: %w", key, err)
	}
	return true, nil
}

// SetJSON serializa y guarda con el TTL configurado.
func (c *CatalogCache) SetJSON(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("redis marshal %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// InvalidatePrefix borra todas las claves con el prefijo dado usando SCAN
// (nunca KEYS, que bloquea el servidor).
func (c *CatalogCache) InvalidatePrefix(ctx context.Context, prefix string) error {
	iter := c.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("redis del %s: %w", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan %s: %w", prefix, err)
	}
	return nil
}

// Close cierra la conexión.
func (c *CatalogCache) Close() error {
	return c.client.Close()
}
