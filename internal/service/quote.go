package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/strohel/za-kolik-pojedu/internal/domain"
	"github.com/strohel/za-kolik-pojedu/internal/redis"
	"github.com/strohel/za-kolik-pojedu/internal/repository"
)

// QuoteService answers trip pricing requests. It resolves the provider,
// computes the quote, persists it for history, and caches results of
// identical requests (safe because the calculator is deterministic).
type QuoteService struct {
	providers     map[string]Provider
	providerOrder []string
	quoteRepo     repository.QuoteRepository
	cache         redis.QuoteCacheInterface
}

// NewQuoteService creates a QuoteService. Providers are looked up by name in
// requests and listed in registration order.
func NewQuoteService(quoteRepo repository.QuoteRepository, cache redis.QuoteCacheInterface, providers ...Provider) *QuoteService {
	s := &QuoteService{
		providers: make(map[string]Provider, len(providers)),
		quoteRepo: quoteRepo,
		cache:     cache,
	}
	for _, p := range providers {
		s.providers[p.Name()] = p
		s.providerOrder = append(s.providerOrder, p.Name())
	}
	return s
}

// QuoteRequest contains the parameters for pricing a trip.
type QuoteRequest struct {
	Provider   string // empty selects DefaultProviderName
	Tier       string
	Categories []string
	DistanceKm float64
	Begin      time.Time
	End        time.Time
}

// RequestQuote prices the trip and records the result.
func (s *QuoteService) RequestQuote(ctx context.Context, req QuoteRequest) (*domain.QuoteRecord, error) {
	if req.DistanceKm < 0 {
		return nil, ErrInvalidDistance
	}
	if req.Begin.IsZero() || req.End.IsZero() {
		return nil, ErrInvalidTimeRange
	}
	if len(req.Categories) == 0 {
		return nil, ErrNoEligibleCategories
	}

	tier, err := domain.ParsePricingTier(req.Tier)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTier, req.Tier)
	}

	categories := make([]domain.CarCategory, 0, len(req.Categories))
	for _, name := range req.Categories {
		category, err := domain.ParseCarCategory(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
		}
		categories = append(categories, category)
	}

	providerName := req.Provider
	if providerName == "" {
		providerName = DefaultProviderName
	}
	provider, ok := s.providers[providerName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, providerName)
	}

	trip := domain.TripRequest{DistanceKm: req.DistanceKm, Begin: req.Begin, End: req.End}
	fingerprint := requestFingerprint(providerName, tier, categories, trip)

	// Serve identical requests from cache. Redis failures fall through to a
	// fresh calculation.
	if s.cache != nil {
		if cached, err := s.cache.GetQuote(ctx, fingerprint); err == nil && cached != nil {
			return s.recordFromCache(providerName, tier, categories, trip, cached), nil
		}
	}

	quote, err := provider.Quote(ctx, tier, categories, trip)
	if err != nil {
		return nil, err
	}

	record := &domain.QuoteRecord{
		ID:         uuid.New().String(),
		Provider:   providerName,
		Tier:       tier,
		Categories: categories,
		DistanceKm: trip.DistanceKm,
		Begin:      trip.Begin,
		End:        trip.End,
		PriceCZK:   quote.PriceCZK,
		Breakdown:  quote.Breakdown,
		CreatedAt:  time.Now(),
	}

	if s.quoteRepo != nil {
		if err := s.quoteRepo.Create(ctx, record); err != nil {
			return nil, err
		}
	}

	if s.cache != nil {
		_ = s.cache.SetQuote(ctx, fingerprint, &redis.CachedQuote{
			ID:        record.ID,
			PriceCZK:  record.PriceCZK,
			Breakdown: record.Breakdown,
			CreatedAt: record.CreatedAt,
		})
	}

	return record, nil
}

// GetQuote retrieves a previously computed quote by ID.
func (s *QuoteService) GetQuote(ctx context.Context, id string) (*domain.QuoteRecord, error) {
	return s.quoteRepo.GetByID(ctx, id)
}

// GetAllQuotes retrieves recent quotes, newest first.
func (s *QuoteService) GetAllQuotes(ctx context.Context) ([]*domain.QuoteRecord, error) {
	return s.quoteRepo.GetAll(ctx)
}

// Providers returns the registered provider names in registration order.
func (s *QuoteService) Providers() []string {
	return append([]string(nil), s.providerOrder...)
}

func (s *QuoteService) recordFromCache(provider string, tier domain.PricingTier, categories []domain.CarCategory, trip domain.TripRequest, cached *redis.CachedQuote) *domain.QuoteRecord {
	return &domain.QuoteRecord{
		ID:         cached.ID,
		Provider:   provider,
		Tier:       tier,
		Categories: categories,
		DistanceKm: trip.DistanceKm,
		Begin:      trip.Begin,
		End:        trip.End,
		PriceCZK:   cached.PriceCZK,
		Breakdown:  cached.Breakdown,
		CreatedAt:  cached.CreatedAt,
	}
}

// requestFingerprint builds a stable cache key for a pricing request.
// Categories are normalized to canonical order so equivalent selections share
// an entry.
func requestFingerprint(provider string, tier domain.PricingTier, categories []domain.CarCategory, trip domain.TripRequest) string {
	selected := make(map[domain.CarCategory]bool, len(categories))
	for _, c := range categories {
		selected[c] = true
	}
	var keys []string
	for _, c := range domain.Categories() {
		if selected[c] {
			keys = append(keys, c.Key())
		}
	}

	const layout = "2006-01-02T15:04:05"
	return fmt.Sprintf("%s:%s:%s:%g:%s:%s",
		provider, tier, strings.Join(keys, "+"),
		trip.DistanceKm, trip.Begin.Format(layout), trip.End.Format(layout))
}
