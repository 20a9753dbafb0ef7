package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"raja-digital/internal/dto"
	"raja-digital/internal/weekly"
	"raja-digital/pkg/redis"
)

// ReportCache JSON cache; implemented by *redis.Client
type ReportCache interface {
	GetJSON(ctx context.Context, key string, dst interface{}) error
	SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// TokenBlacklist revoked token store; implemented by *redis.Client
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
}

// weeklyCache caches assembled weekly reports per window. Cache failures
// are logged and otherwise ignored; the database stays the source of truth.
type weeklyCache struct {
	cache  ReportCache
	ttl    time.Duration
	logger *zap.Logger
}

func newWeeklyCache(cache ReportCache, ttl time.Duration, logger *zap.Logger) *weeklyCache {
	return &weeklyCache{cache: cache, ttl: ttl, logger: logger}
}

func weeklyCacheKey(w weekly.Window) string {
	return "weekly:" + w.StartDate() + ":" + w.EndDate()
}

func (c *weeklyCache) enabled() bool {
	return c != nil && c.cache != nil && c.ttl > 0
}

func (c *weeklyCache) get(ctx context.Context, w weekly.Window) (*dto.WeeklyReport, bool) {
	if !c.enabled() {
		return nil, false
	}
	var r dto.WeeklyReport
	err := c.cache.GetJSON(ctx, weeklyCacheKey(w), &r)
	if err != nil {
		if !errors.Is(err, redis.ErrCacheMiss) {
			c.logger.Warn("weekly cache read failed", zap.String("window", w.StartDate()), zap.Error(err))
		}
		return nil, false
	}
	return &r, true
}

func (c *weeklyCache) put(ctx context.Context, w weekly.Window, r *dto.WeeklyReport) {
	if !c.enabled() {
		return
	}
	if err := c.cache.SetJSON(ctx, weeklyCacheKey(w), r, c.ttl); err != nil {
		c.logger.Warn("weekly cache write failed", zap.String("window", w.StartDate()), zap.Error(err))
	}
}

// evict drops the cached windows containing any of dates.
func (c *weeklyCache) evict(ctx context.Context, dates ...string) {
	if !c.enabled() {
		return
	}
	seen := make(map[string]bool)
	var keys []string
	for _, d := range dates {
		t, err := time.Parse(weekly.DateLayout, d)
		if err != nil {
			continue
		}
		k := weeklyCacheKey(weekly.WeekOf(t))
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return
	}
	if err := c.cache.Delete(ctx, keys...); err != nil {
		c.logger.Warn("weekly cache evict failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
