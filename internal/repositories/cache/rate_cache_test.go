package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SscSPs/expense_admin_app/internal/apperrors"
	"github.com/SscSPs/expense_admin_app/internal/core/domain"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*RateCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRateCache(client, time.Minute), mr
}

func countingLoader(calls *int32, rate string) func(context.Context) (*domain.ExchangeRate, error) {
	return func(context.Context) (*domain.ExchangeRate, error) {
		atomic.AddInt32(calls, 1)
		return &domain.ExchangeRate{ID: 1, Rate: decimal.RequireFromString(rate)}, nil
	}
}

func TestRateCache_HitsAfterFirstLoad(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	date := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	var calls int32

	first, err := c.GetRate(ctx, 1, 2, 3, date, countingLoader(&calls, "0.0125"))
	require.NoError(t, err)
	second, err := c.GetRate(ctx, 1, 2, 3, date, countingLoader(&calls, "0.0125"))
	require.NoError(t, err)

	require.Equal(t, int32(1), calls)
	require.True(t, first.Rate.Equal(second.Rate))
}

func TestRateCache_InvalidateIsPerCompany(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	date := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	var calls int32

	_, err := c.GetRate(ctx, 1, 2, 3, date, countingLoader(&calls, "0.012"))
	require.NoError(t, err)
	_, err = c.GetRate(ctx, 2, 2, 3, date, countingLoader(&calls, "0.012"))
	require.NoError(t, err)
	require.Equal(t, int32(2), calls)

	require.NoError(t, c.Invalidate(ctx, 1))

	fresh, err := c.GetRate(ctx, 1, 2, 3, date, countingLoader(&calls, "0.0125"))
	require.NoError(t, err)
	require.Equal(t, "0.0125", fresh.Rate.String())
	_, err = c.GetRate(ctx, 2, 2, 3, date, countingLoader(&calls, "0.0125"))
	require.NoError(t, err)
	require.Equal(t, int32(3), calls)
}

func TestRateCache_ErrorsAreNotCached(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	date := time.Now()
	var calls int32
	failing := func(context.Context) (*domain.ExchangeRate, error) {
		atomic.AddInt32(&calls, 1)
		return nil, apperrors.NewNotFoundError("No exchange rate found")
	}

	_, err := c.GetRate(ctx, 1, 2, 3, date, failing)
	require.True(t, errors.Is(err, apperrors.ErrNotFound))
	_, err = c.GetRate(ctx, 1, 2, 3, date, failing)
	require.Error(t, err)
	require.Equal(t, int32(2), calls)
}

func TestRateCache_RedisDownFallsBackToLoader(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()
	var calls int32

	rate, err := c.GetRate(context.Background(), 1, 2, 3, time.Now(), countingLoader(&calls, "1.5"))
	require.NoError(t, err)
	require.Equal(t, "1.5", rate.Rate.String())
}

func TestRateCache_NilIsPassThrough(t *testing.T) {
	var c *RateCache
	var calls int32

	_, err := c.GetRate(context.Background(), 1, 2, 3, time.Now(), countingLoader(&calls, "2"))
	require.NoError(t, err)
	require.NoError(t, c.Invalidate(context.Background(), 1))
	require.Equal(t, int32(1), calls)
}

func TestRateCache_SharedLoadSurvivesFirstCallerCancel(t *testing.T) {
	c, _ := newTestCache(t)
	date := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	started := make(chan struct{})
	release := make(chan struct{})
	var calls int32
	load := func(ctx context.Context) (*domain.ExchangeRate, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
		}
		select {
		case <-release:
			return &domain.ExchangeRate{ID: 1, Rate: decimal.RequireFromString("0.0125")}, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	firstCtx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := c.GetRate(firstCtx, 1, 2, 3, date, load)
		firstErr <- err
	}()
	<-started

	type result struct {
		rate *domain.ExchangeRate
		err  error
	}
	second := make(chan result, 1)
	go func() {
		rate, err := c.GetRate(context.Background(), 1, 2, 3, date, load)
		second <- result{rate, err}
	}()
	time.Sleep(50 * time.Millisecond)

	cancel()
	require.ErrorIs(t, <-firstErr, context.Canceled)
	close(release)

	got := <-second
	require.NoError(t, got.err)
	require.Equal(t, "0.0125", got.rate.Rate.String())
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
