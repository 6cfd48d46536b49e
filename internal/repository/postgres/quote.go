package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/strohel/za-kolik-pojedu/internal/domain"
	"github.com/strohel/za-kolik-pojedu/internal/repository"
)

// QuoteRepository is a PostgreSQL implementation of repository.QuoteRepository.
type QuoteRepository struct {
	q Querier
}

// NewQuoteRepository creates a new PostgreSQL quote repository.
func NewQuoteRepository(db *sql.DB) *QuoteRepository {
	return &QuoteRepository{q: db}
}

// NewQuoteRepositoryWithTx creates a quote repository using a transaction.
func NewQuoteRepositoryWithTx(tx *sql.Tx) *QuoteRepository {
	return &QuoteRepository{q: tx}
}

// Create persists a new quote record.
func (r *QuoteRepository) Create(ctx context.Context, quote *domain.QuoteRecord) error {
	query := `
		INSERT INTO quotes (id, provider, tier, categories, distance_km, begin_at, end_at, price_czk, breakdown, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.q.ExecContext(ctx, query,
		quote.ID,
		quote.Provider,
		string(quote.Tier),
		pq.Array(categoryKeys(quote.Categories)),
		quote.DistanceKm,
		quote.Begin,
		quote.End,
		quote.PriceCZK,
		quote.Breakdown,
		quote.CreatedAt,
	)

	return err
}

// GetByID retrieves a quote record by ID.
func (r *QuoteRepository) GetByID(ctx context.Context, id string) (*domain.QuoteRecord, error) {
	query := `
		SELECT id, provider, tier, categories, distance_km, begin_at, end_at, price_czk, breakdown, created_at
		FROM quotes WHERE id = $1
	`

	quote, err := scanQuote(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return quote, nil
}

// GetAll retrieves recent quote records, newest first.
func (r *QuoteRepository) GetAll(ctx context.Context) ([]*domain.QuoteRecord, error) {
	query := `
		SELECT id, provider, tier, categories, distance_km, begin_at, end_at, price_czk, breakdown, created_at
		FROM quotes ORDER BY created_at DESC LIMIT 100
	`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quotes []*domain.QuoteRecord
	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, quote)
	}

	return quotes, rows.Err()
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanQuote(s scanner) (*domain.QuoteRecord, error) {
	var quote domain.QuoteRecord
	var tier string
	var categories pq.StringArray

	if err := s.Scan(
		&quote.ID,
		&quote.Provider,
		&tier,
		&categories,
		&quote.DistanceKm,
		&quote.Begin,
		&quote.End,
		&quote.PriceCZK,
		&quote.Breakdown,
		&quote.CreatedAt,
	); err != nil {
		return nil, err
	}

	quote.Tier = domain.PricingTier(tier)
	for _, key := range categories {
		category, err := domain.ParseCarCategory(key)
		if err != nil {
			return nil, err
		}
		quote.Categories = append(quote.Categories, category)
	}

	return &quote, nil
}

func categoryKeys(categories []domain.CarCategory) []string {
	keys := make([]string, len(categories))
	for i, c := range categories {
		keys[i] = c.Key()
	}
	return keys
}

// Ensure QuoteRepository implements repository.QuoteRepository.
var _ repository.QuoteRepository = (*QuoteRepository)(nil)
