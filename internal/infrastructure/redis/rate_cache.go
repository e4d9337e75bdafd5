package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Na-Rajan/compareremittance/internal/application"
	"github.com/Na-Rajan/compareremittance/internal/domain"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "rate:"

var _ application.RateCache = (*RateCache)(nil)

// RateCache keeps live market rates for a short TTL under "rate:FROM-TO".
type RateCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *RateCache {
	return &RateCache{Client: client, TTL: ttl}
}

type cachedRate struct {
	From       string    `json:"from"`
	To         string    `json:"to"`
	Rate       float64   `json:"rate"`
	ObservedAt time.Time `json:"observed_at"`
	Source     string    `json:"source"`
}

func (c *RateCache) Get(ctx context.Context, pair domain.CurrencyPair) (domain.MarketRate, bool, error) {
	raw, err := c.Client.Get(ctx, keyPrefix+pair.Key()).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.MarketRate{}, false, nil
	}
	if err != nil {
		return domain.MarketRate{}, false, err
	}
	var v cachedRate
	if err := json.Unmarshal(raw, &v); err != nil {
		return domain.MarketRate{}, false, fmt.Errorf("decode cached rate: %w", err)
	}
	return domain.MarketRate{
		Pair:       domain.NewPair(v.From, v.To),
		Rate:       v.Rate,
		ObservedAt: v.ObservedAt,
		Source:     domain.RateSource(v.Source),
	}, true, nil
}

// Set stores a live rate. Fallback results are never cached.
func (c *RateCache) Set(ctx context.Context, mr domain.MarketRate) error {
	if mr.IsFallback() {
		return nil
	}
	raw, err := json.Marshal(cachedRate{
		From:       mr.Pair.From,
		To:         mr.Pair.To,
		Rate:       mr.Rate,
		ObservedAt: mr.ObservedAt,
		Source:     string(mr.Source),
	})
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, keyPrefix+mr.Pair.Key(), raw, c.TTL).Err()
}

func (c *RateCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}
