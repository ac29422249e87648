package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"streamflix/internal/config"

	"github.com/redis/go-redis/v9"
)

var client *redis.Client

func InitRedis(cfg *config.Config) {
	client = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("[redis] error conectando: %v", err)
	}

	log.Println("[redis] conectado OK")
}

// =======================================================
//  Helpers JSON para usar desde los servicios
// =======================================================

// GetJSON lee una key de Redis, si existe deserializa el JSON en `dest`.
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if client == nil {
		return false, nil
	}

	val, err := client.Get(ctx, key).Result()
	if err == redis.Nil {
		// no existe la clave
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON serializa `value` a JSON y lo guarda en Redis con TTL en segundos.
func SetJSON(ctx context.Context, key string, value any, ttlSeconds int) error {
	if client == nil {
		return nil
	}

	b, err := json.Marshal(value)
	if err != nil {
		return err
	}

	ttl := time.Duration(ttlSeconds) * time.Second
	return client.Set(ctx, key, b, ttl).Err()
}

// DelPrefix borra todas las claves que empiecen con `prefix`. Se usa para
// invalidar las filas del home cuando un admin toca el catálogo.
func DelPrefix(ctx context.Context, prefix string) error {
	if client == nil {
		return nil
	}

	iter := client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
