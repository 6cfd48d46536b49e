package redis

import "context"

// QuoteCacheInterface defines the interface for quote caching.
type QuoteCacheInterface interface {
	GetQuote(ctx context.Context, fingerprint string) (*CachedQuote, error)
	SetQuote(ctx context.Context, fingerprint string, quote *CachedQuote) error
}

// Ensure concrete types implement interfaces.
var _ QuoteCacheInterface = (*QuoteCache)(nil)
