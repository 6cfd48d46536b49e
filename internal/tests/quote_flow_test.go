package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/strohel/za-kolik-pojedu/internal/domain"
	"github.com/strohel/za-kolik-pojedu/internal/repository"
	"github.com/strohel/za-kolik-pojedu/internal/service"
	"github.com/strohel/za-kolik-pojedu/internal/tariff"
)

// ──────────────────────────────────────────────
// 1. QUOTE REQUEST FLOW
// ──────────────────────────────────────────────

// newQuoteService wires a QuoteService over the embedded tariff tables with
// mock persistence and cache.
func newQuoteService(t *testing.T, repo *MockQuoteRepository, cache *MockQuoteCache) *service.QuoteService {
	t.Helper()
	catalog, err := tariff.BuildCatalog()
	if err != nil {
		t.Fatalf("failed to build catalog: %v", err)
	}
	return service.NewQuoteService(repo, cache,
		service.NewCar4wayProvider(catalog),
		service.NewBoltProvider(),
	)
}

// basicRequest is a one-hour daytime trip with no distance: 60 minutes at the
// basic tier's 6.50/min legend day rate.
func basicRequest() service.QuoteRequest {
	begin := time.Date(2026, time.March, 3, 9, 0, 0, 0, time.Local)
	return service.QuoteRequest{
		Tier:       "basic",
		Categories: []string{"legend"},
		DistanceKm: 0,
		Begin:      begin,
		End:        begin.Add(time.Hour),
	}
}

func TestQuoteRequest_ValidInput_Succeeds(t *testing.T) {
	t.Parallel()

	repo := NewMockQuoteRepository()
	cache := NewMockQuoteCache()
	svc := newQuoteService(t, repo, cache)

	record, err := svc.RequestQuote(context.Background(), basicRequest())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if record == nil {
		t.Fatal("expected a quote record")
	}
	if record.ID == "" {
		t.Error("expected quote ID to be set")
	}
	if record.Provider != service.DefaultProviderName {
		t.Errorf("expected default provider %s, got %s", service.DefaultProviderName, record.Provider)
	}
	if record.PriceCZK != 390 {
		t.Errorf("expected price 390.00, got %v", record.PriceCZK)
	}
}

func TestQuoteRequest_PersistsRecord(t *testing.T) {
	t.Parallel()

	repo := NewMockQuoteRepository()
	cache := NewMockQuoteCache()
	svc := newQuoteService(t, repo, cache)

	record, err := svc.RequestQuote(context.Background(), basicRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.CreateCallCount != 1 {
		t.Errorf("expected Create to be called once, called %d times", repo.CreateCallCount)
	}

	stored := repo.GetQuote(record.ID)
	if stored == nil {
		t.Fatal("expected quote to be stored in repository")
	}
	if stored.PriceCZK != record.PriceCZK {
		t.Errorf("stored price %v differs from returned %v", stored.PriceCZK, record.PriceCZK)
	}
	if stored.Tier != domain.TierBasic {
		t.Errorf("expected stored tier %s, got %s", domain.TierBasic, stored.Tier)
	}
	if len(stored.Categories) != 1 || stored.Categories[0] != domain.CategoryLegend {
		t.Errorf("unexpected stored categories: %v", stored.Categories)
	}
}

func TestQuoteRequest_CacheHitSkipsRecompute(t *testing.T) {
	t.Parallel()

	repo := NewMockQuoteRepository()
	cache := NewMockQuoteCache()
	svc := newQuoteService(t, repo, cache)

	first, err := svc.RequestQuote(context.Background(), basicRequest())
	if err != nil {
		t.Fatalf("first request failed: %v", err)
	}
	if cache.SetCallCount != 1 {
		t.Fatalf("expected the first request to populate the cache, SetQuote called %d times", cache.SetCallCount)
	}

	second, err := svc.RequestQuote(context.Background(), basicRequest())
	if err != nil {
		t.Fatalf("second request failed: %v", err)
	}

	// A hit reuses the original record: same ID, no new persistence.
	if second.ID != first.ID {
		t.Errorf("expected cached request to reuse ID %s, got %s", first.ID, second.ID)
	}
	if second.PriceCZK != first.PriceCZK {
		t.Errorf("cached price %v differs from original %v", second.PriceCZK, first.PriceCZK)
	}
	if repo.CreateCallCount != 1 {
		t.Errorf("expected no second Create call, got %d", repo.CreateCallCount)
	}
}

func TestQuoteRequest_CategoryOrderSharesCacheEntry(t *testing.T) {
	t.Parallel()

	repo := NewMockQuoteRepository()
	cache := NewMockQuoteCache()
	svc := newQuoteService(t, repo, cache)

	req := basicRequest()
	req.Categories = []string{"boss", "legend"}
	first, err := svc.RequestQuote(context.Background(), req)
	if err != nil {
		t.Fatalf("first request failed: %v", err)
	}

	req.Categories = []string{"legend", "boss"}
	second, err := svc.RequestQuote(context.Background(), req)
	if err != nil {
		t.Fatalf("second request failed: %v", err)
	}

	if second.ID != first.ID {
		t.Error("equivalent category selections should share a cache entry")
	}
	if cache.CountEntries() != 1 {
		t.Errorf("expected 1 cache entry, got %d", cache.CountEntries())
	}
}

func TestQuoteRequest_CacheFailureFallsThrough(t *testing.T) {
	t.Parallel()

	repo := NewMockQuoteRepository()
	cache := NewMockQuoteCache()
	cache.GetError = ErrMockTimeout
	svc := newQuoteService(t, repo, cache)

	record, err := svc.RequestQuote(context.Background(), basicRequest())
	if err != nil {
		t.Fatalf("a cache failure must not fail the request: %v", err)
	}
	if record.PriceCZK != 390 {
		t.Errorf("expected freshly computed price 390.00, got %v", record.PriceCZK)
	}
	if repo.CreateCallCount != 1 {
		t.Errorf("expected the quote to be persisted, Create called %d times", repo.CreateCallCount)
	}
}

func TestQuoteRequest_RepositoryErrorPropagates(t *testing.T) {
	t.Parallel()

	repo := NewMockQuoteRepository()
	repo.CreateError = ErrMockDBConstraint
	svc := newQuoteService(t, repo, NewMockQuoteCache())

	_, err := svc.RequestQuote(context.Background(), basicRequest())
	if !errors.Is(err, ErrMockDBConstraint) {
		t.Fatalf("expected the repository error, got %v", err)
	}
}

func TestQuoteRequest_DistinctRequestsGetDistinctIDs(t *testing.T) {
	t.Parallel()

	repo := NewMockQuoteRepository()
	svc := newQuoteService(t, repo, NewMockQuoteCache())

	first, err := svc.RequestQuote(context.Background(), basicRequest())
	if err != nil {
		t.Fatalf("first request failed: %v", err)
	}

	req := basicRequest()
	req.DistanceKm = 10
	second, err := svc.RequestQuote(context.Background(), req)
	if err != nil {
		t.Fatalf("second request failed: %v", err)
	}

	if first.ID == second.ID {
		t.Error("expected different IDs for different requests")
	}
	if repo.CountQuotes() != 2 {
		t.Errorf("expected 2 persisted quotes, got %d", repo.CountQuotes())
	}
}

// ──────────────────────────────────────────────
// 2. VALIDATION AND PROVIDER EDGE CASES
// ──────────────────────────────────────────────

func TestQuoteRequest_InvalidInput_Rejected(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		mutate  func(*service.QuoteRequest)
		wantErr error
	}{
		{
			name:    "negative distance",
			mutate:  func(r *service.QuoteRequest) { r.DistanceKm = -1 },
			wantErr: service.ErrInvalidDistance,
		},
		{
			name:    "zero begin time",
			mutate:  func(r *service.QuoteRequest) { r.Begin = time.Time{} },
			wantErr: service.ErrInvalidTimeRange,
		},
		{
			name:    "zero end time",
			mutate:  func(r *service.QuoteRequest) { r.End = time.Time{} },
			wantErr: service.ErrInvalidTimeRange,
		},
		{
			name:    "no categories",
			mutate:  func(r *service.QuoteRequest) { r.Categories = nil },
			wantErr: service.ErrNoEligibleCategories,
		},
		{
			name:    "unknown tier",
			mutate:  func(r *service.QuoteRequest) { r.Tier = "platinum" },
			wantErr: service.ErrUnknownTier,
		},
		{
			name:    "unknown category",
			mutate:  func(r *service.QuoteRequest) { r.Categories = []string{"tractor"} },
			wantErr: service.ErrUnknownCategory,
		},
		{
			name:    "unknown provider",
			mutate:  func(r *service.QuoteRequest) { r.Provider = "uber" },
			wantErr: service.ErrUnknownProvider,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			repo := NewMockQuoteRepository()
			svc := newQuoteService(t, repo, NewMockQuoteCache())

			req := basicRequest()
			tc.mutate(&req)

			_, err := svc.RequestQuote(context.Background(), req)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if repo.CountQuotes() != 0 {
				t.Errorf("rejected request must not persist anything, got %d quotes", repo.CountQuotes())
			}
		})
	}
}

func TestQuoteRequest_BoltNotImplemented(t *testing.T) {
	t.Parallel()

	repo := NewMockQuoteRepository()
	svc := newQuoteService(t, repo, NewMockQuoteCache())

	req := basicRequest()
	req.Provider = "bolt"

	_, err := svc.RequestQuote(context.Background(), req)
	if !errors.Is(err, service.ErrProviderNotImplemented) {
		t.Fatalf("expected ErrProviderNotImplemented, got %v", err)
	}
	if repo.CountQuotes() != 0 {
		t.Errorf("failed request must not persist anything, got %d quotes", repo.CountQuotes())
	}
}

func TestProviders_RegistrationOrder(t *testing.T) {
	t.Parallel()

	svc := newQuoteService(t, NewMockQuoteRepository(), NewMockQuoteCache())

	providers := svc.Providers()
	if len(providers) != 2 || providers[0] != "car4way" || providers[1] != "bolt" {
		t.Errorf("unexpected provider list: %v", providers)
	}
}

// ──────────────────────────────────────────────
// 3. QUOTE HISTORY
// ──────────────────────────────────────────────

func TestGetQuote_NotFound(t *testing.T) {
	t.Parallel()

	svc := newQuoteService(t, NewMockQuoteRepository(), NewMockQuoteCache())

	_, err := svc.GetQuote(context.Background(), "no-such-id")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetAllQuotes_NewestFirst(t *testing.T) {
	t.Parallel()

	repo := NewMockQuoteRepository()
	svc := newQuoteService(t, repo, NewMockQuoteCache())

	older, err := svc.RequestQuote(context.Background(), basicRequest())
	if err != nil {
		t.Fatalf("first request failed: %v", err)
	}

	req := basicRequest()
	req.DistanceKm = 25
	newer, err := svc.RequestQuote(context.Background(), req)
	if err != nil {
		t.Fatalf("second request failed: %v", err)
	}

	all, err := svc.GetAllQuotes(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 quotes, got %d", len(all))
	}
	if all[0].ID != newer.ID || all[1].ID != older.ID {
		t.Errorf("expected newest first, got %s then %s", all[0].ID, all[1].ID)
	}
}
