// Package redis guarda las respuestas de idempotencia de Fiber en Redis,
// compartidas entre réplicas del servicio.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/bodega-api/pkg/config"
)

var _ fiber.Storage = (*Storage)(nil)

const opTimeout = 2 * time.Second

// Storage implementa fiber.Storage sobre go-redis. Todas las claves llevan prefix.
type Storage struct {
	rdb    goredis.UniversalClient
	prefix string
}

// NewClient abre el cliente y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

// NewStorage envuelve un cliente existente.
func NewStorage(rdb goredis.UniversalClient, prefix string) *Storage {
	return &Storage{rdb: rdb, prefix: prefix}
}

// Get devuelve nil, nil si la clave no existe (contrato de fiber.Storage).
func (s *Storage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	val, err := s.rdb.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	return val, err
}

// Set guarda val; exp 0 = sin expiración.
func (s *Storage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return s.rdb.Set(ctx, s.prefix+key, val, exp).Err()
}

// Delete borra la clave.
func (s *Storage) Delete(key string) error {
	if key == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return s.rdb.Del(ctx, s.prefix+key).Err()
}

// Reset borra solo las claves con el prefijo propio.
func (s *Storage) Reset() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*opTimeout)
	defer cancel()
	iter := s.rdb.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Close cierra el cliente.
func (s *Storage) Close() error {
	return s.rdb.Close()
}
