package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/alexisallendez04/appBarberos-sub001/internal/dto"
)

// AvailabilityCache guarda grillas ya calculadas por (barbero, fecha,
// servicio). La invalidación es por versión: cada reserva o cancelación
// incrementa la versión de (barbero, fecha) y las entradas viejas expiran
// solas. Con client nil el cache es un no-op.
type AvailabilityCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAvailabilityCache(rdb *redis.Client) *AvailabilityCache {
	return &AvailabilityCache{
		rdb: rdb,
		ttl: 60 * time.Second,
	}
}

func (c *AvailabilityCache) enabled() bool {
	return c != nil && c.rdb != nil
}

func (c *AvailabilityCache) versionKey(barberID uint, date string) string {
	return fmt.Sprintf("availver:%d:%s", barberID, date)
}

func (c *AvailabilityCache) slotKey(barberID uint, date string, serviceID uint, version int64) string {
	return fmt.Sprintf("avail:%d:%s:%d:v%d", barberID, date, serviceID, version)
}

func (c *AvailabilityCache) version(ctx context.Context, barberID uint, date string) int64 {
	v, err := c.rdb.Get(ctx, c.versionKey(barberID, date)).Int64()
	if err != nil {
		return 0
	}
	return v
}

func (c *AvailabilityCache) Get(
	ctx context.Context,
	barberID uint,
	date string,
	serviceID uint,
) (*dto.AvailabilityDTO, bool) {

	if !c.enabled() {
		return nil, false
	}

	key := c.slotKey(barberID, date, serviceID, c.version(ctx, barberID, date))
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}

	var out dto.AvailabilityDTO
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false
	}
	return &out, true
}

func (c *AvailabilityCache) Set(
	ctx context.Context,
	barberID uint,
	date string,
	serviceID uint,
	value *dto.AvailabilityDTO,
) {
	if !c.enabled() {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return
	}

	key := c.slotKey(barberID, date, serviceID, c.version(ctx, barberID, date))
	c.rdb.Set(ctx, key, raw, c.ttl)
}

// Invalidate sube la versión de (barbero, fecha); cualquier grilla cacheada
// para esa fecha queda huérfana.
func (c *AvailabilityCache) Invalidate(ctx context.Context, barberID uint, date string) {
	if !c.enabled() {
		return
	}
	c.rdb.IncrBy(ctx, c.versionKey(barberID, date), 1)
	c.rdb.Expire(ctx, c.versionKey(barberID, date), 24*time.Hour)
}
