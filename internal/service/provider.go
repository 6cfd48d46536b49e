package service

import (
	"context"

	"github.com/strohel/za-kolik-pojedu/internal/domain"
	"github.com/strohel/za-kolik-pojedu/internal/tariff"
)

// Provider prices trips for one car-sharing service.
type Provider interface {
	// Name returns the provider's stable machine name.
	Name() string

	// Quote computes the cheapest price for the trip under the given tier and
	// eligible categories.
	Quote(ctx context.Context, tier domain.PricingTier, categories []domain.CarCategory, trip domain.TripRequest) (domain.Quote, error)
}

// DefaultProviderName is used when a quote request names no provider.
const DefaultProviderName = "car4way"

// Car4wayProvider prices trips against the parsed car4way tariff catalog.
type Car4wayProvider struct {
	catalog *tariff.Catalog
}

// NewCar4wayProvider creates a Car4wayProvider backed by the given catalog.
func NewCar4wayProvider(catalog *tariff.Catalog) *Car4wayProvider {
	return &Car4wayProvider{catalog: catalog}
}

func (p *Car4wayProvider) Name() string { return DefaultProviderName }

func (p *Car4wayProvider) Quote(ctx context.Context, tier domain.PricingTier, categories []domain.CarCategory, trip domain.TripRequest) (domain.Quote, error) {
	return Calculate(p.catalog.Tariff(tier), categories, trip)
}

// BoltProvider is a registered placeholder; its pricing is not implemented.
type BoltProvider struct{}

// NewBoltProvider creates a BoltProvider.
func NewBoltProvider() *BoltProvider {
	return &BoltProvider{}
}

func (p *BoltProvider) Name() string { return "bolt" }

func (p *BoltProvider) Quote(ctx context.Context, tier domain.PricingTier, categories []domain.CarCategory, trip domain.TripRequest) (domain.Quote, error) {
	return domain.Quote{}, ErrProviderNotImplemented
}

// Ensure concrete providers implement Provider.
var (
	_ Provider = (*Car4wayProvider)(nil)
	_ Provider = (*BoltProvider)(nil)
)
