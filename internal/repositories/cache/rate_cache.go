package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/expense_admin_app/internal/core/domain"
	portssvc "github.com/SscSPs/expense_admin_app/internal/core/ports/services"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const keyPrefix = "fx"

// loadTimeout bounds a shared load once it no longer follows the caller's context.
const loadTimeout = 10 * time.Second

// RateCache stores resolved exchange rates in Redis. Keys embed a per-company
// version; bumping the version orphans every entry of that company.
// A nil *RateCache, or one without a client, calls the loader directly.
type RateCache struct {
	client *redis.Client
	ttl    time.Duration
	group  singleflight.Group
}

var _ portssvc.RateCache = (*RateCache)(nil)

// NewRateCache returns a cache backed by client. A nil client disables caching.
func NewRateCache(client *redis.Client, ttl time.Duration) *RateCache {
	return &RateCache{client: client, ttl: ttl}
}

func versionKey(companyID int64) string {
	return fmt.Sprintf("%s:version:%d", keyPrefix, companyID)
}

func (c *RateCache) enabled() bool {
	return c != nil && c.client != nil
}

// version returns the company's cache version, initialising it when missing.
func (c *RateCache) version(ctx context.Context, companyID int64) (int64, error) {
	ver, err := c.client.Get(ctx, versionKey(companyID)).Int64()
	if errors.Is(err, redis.Nil) {
		// SETNX so concurrent initialisers agree on the value.
		if err := c.client.SetNX(ctx, versionKey(companyID), 1, 0).Err(); err != nil {
			return 0, err
		}
		return c.client.Get(ctx, versionKey(companyID)).Int64()
	}
	return ver, err
}

func (c *RateCache) rateKey(ver, companyID, fromID, toID int64, date time.Time) string {
	return fmt.Sprintf("%s:rate:%d:%d:%d:%s:v%d", keyPrefix, companyID, fromID, toID, domain.DateOnly(date).Format(time.DateOnly), ver)
}

// GetRate serves the rate from Redis or loads it. Concurrent misses on the
// same key share one load. Redis failures fall back to the loader; load
// errors are returned and never cached.
func (c *RateCache) GetRate(ctx context.Context, companyID, fromID, toID int64, date time.Time, load func(context.Context) (*domain.ExchangeRate, error)) (*domain.ExchangeRate, error) {
	if !c.enabled() {
		return load(ctx)
	}
	ver, err := c.version(ctx, companyID)
	if err != nil {
		return load(ctx)
	}
	key := c.rateKey(ver, companyID, fromID, toID, date)

	if payload, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var rate domain.ExchangeRate
		if json.Unmarshal(payload, &rate) == nil {
			return &rate, nil
		}
	}

	// Waiters share this load; it must not follow the first caller's cancellation.
	ch := c.group.DoChan(key, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()
		rate, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		if raw, err := json.Marshal(rate); err == nil {
			_ = c.client.Set(loadCtx, key, raw, c.ttl).Err()
		}
		return rate, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.ExchangeRate), nil
	}
}

// Invalidate bumps the company's version.
func (c *RateCache) Invalidate(ctx context.Context, companyID int64) error {
	if !c.enabled() {
		return nil
	}
	return c.client.Incr(ctx, versionKey(companyID)).Err()
}
