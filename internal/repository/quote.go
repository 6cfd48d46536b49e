package repository

import (
	"context"

	"github.com/strohel/za-kolik-pojedu/internal/domain"
)

// QuoteRepository defines the persistence operations for computed quotes.
type QuoteRepository interface {
	// Create persists a new quote record.
	Create(ctx context.Context, quote *domain.QuoteRecord) error

	// GetByID retrieves a quote record by ID.
	GetByID(ctx context.Context, id string) (*domain.QuoteRecord, error)

	// GetAll retrieves recent quote records, newest first.
	GetAll(ctx context.Context) ([]*domain.QuoteRecord, error)
}
