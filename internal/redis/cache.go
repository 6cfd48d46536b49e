package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// QuoteCache stores computed quotes in Redis, keyed by a fingerprint of the
// pricing request. The calculator is deterministic, so a hit can be served
// without recomputation.
type QuoteCache struct {
	client *redis.Client
}

// NewQuoteCache creates a new QuoteCache.
func NewQuoteCache(client *redis.Client) *QuoteCache {
	return &QuoteCache{client: client}
}

// QuoteCacheTTL bounds staleness after a tariff table update ships.
const QuoteCacheTTL = 10 * time.Minute

const quoteCachePrefix = "cache:quote:"

// CachedQuote is the cached result of a pricing request. The request itself
// is encoded in the cache key.
type CachedQuote struct {
	ID        string    `json:"id"`
	PriceCZK  float64   `json:"price_czk"`
	Breakdown string    `json:"breakdown"`
	CreatedAt time.Time `json:"created_at"`
}

// GetQuote retrieves a cached quote by request fingerprint. A miss returns
// (nil, nil).
func (s *QuoteCache) GetQuote(ctx context.Context, fingerprint string) (*CachedQuote, error) {
	key := quoteCachePrefix + fingerprint
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var quote CachedQuote
	if err := json.Unmarshal(data, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

// SetQuote stores a quote under the request fingerprint.
func (s *QuoteCache) SetQuote(ctx context.Context, fingerprint string, quote *CachedQuote) error {
	key := quoteCachePrefix + fingerprint
	data, err := json.Marshal(quote)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, QuoteCacheTTL).Err()
}
