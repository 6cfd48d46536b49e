package tests

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/strohel/za-kolik-pojedu/internal/domain"
	"github.com/strohel/za-kolik-pojedu/internal/redis"
	"github.com/strohel/za-kolik-pojedu/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK QUOTE REPOSITORY
// ──────────────────────────────────────────────

// MockQuoteRepository is a mock implementation of QuoteRepository.
type MockQuoteRepository struct {
	mu     sync.RWMutex
	quotes map[string]*domain.QuoteRecord
	order  []string

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError error
}

// NewMockQuoteRepository creates a new mock quote repository.
func NewMockQuoteRepository() *MockQuoteRepository {
	return &MockQuoteRepository{
		quotes: make(map[string]*domain.QuoteRecord),
	}
}

var _ repository.QuoteRepository = (*MockQuoteRepository)(nil)

func (m *MockQuoteRepository) Create(ctx context.Context, quote *domain.QuoteRecord) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quotes[quote.ID] = quote
	m.order = append(m.order, quote.ID)
	return nil
}

func (m *MockQuoteRepository) GetByID(ctx context.Context, id string) (*domain.QuoteRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	quote, ok := m.quotes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *quote
	return &copy, nil
}

func (m *MockQuoteRepository) GetAll(ctx context.Context) ([]*domain.QuoteRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	// Newest first, matching the real repository's ordering.
	result := make([]*domain.QuoteRecord, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		copy := *m.quotes[m.order[i]]
		result = append(result, &copy)
	}
	return result, nil
}

// GetQuote returns the stored record for test assertions.
func (m *MockQuoteRepository) GetQuote(id string) *domain.QuoteRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.quotes[id]
}

// CountQuotes returns the number of persisted quotes.
func (m *MockQuoteRepository) CountQuotes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.quotes)
}

// ──────────────────────────────────────────────
// MOCK QUOTE CACHE
// ──────────────────────────────────────────────

// MockQuoteCache is a mock implementation of QuoteCacheInterface.
type MockQuoteCache struct {
	mu      sync.RWMutex
	entries map[string]*redis.CachedQuote

	// Counters for verification
	GetCallCount int32
	SetCallCount int32

	// Error injection
	GetError error
	SetError error
}

// NewMockQuoteCache creates a new mock quote cache.
func NewMockQuoteCache() *MockQuoteCache {
	return &MockQuoteCache{
		entries: make(map[string]*redis.CachedQuote),
	}
}

var _ redis.QuoteCacheInterface = (*MockQuoteCache)(nil)

func (m *MockQuoteCache) GetQuote(ctx context.Context, fingerprint string) (*redis.CachedQuote, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.entries[fingerprint]
	if !ok {
		return nil, nil // Cache miss
	}
	copy := *entry
	return &copy, nil
}

func (m *MockQuoteCache) SetQuote(ctx context.Context, fingerprint string, quote *redis.CachedQuote) error {
	atomic.AddInt32(&m.SetCallCount, 1)
	if m.SetError != nil {
		return m.SetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *quote
	m.entries[fingerprint] = &copy
	return nil
}

// CountEntries returns the number of cached fingerprints.
func (m *MockQuoteCache) CountEntries() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// ──────────────────────────────────────────────
// HELPER ERRORS
// ──────────────────────────────────────────────

var (
	ErrMockDBConstraint = errors.New("mock: unique constraint violation")
	ErrMockTimeout      = errors.New("mock: operation timeout")
)
