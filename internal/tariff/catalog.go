package tariff

import (
	"fmt"

	"github.com/strohel/za-kolik-pojedu/internal/domain"
)

// Catalog holds one parsed Tariff per pricing tier. It is built exactly once,
// at startup, and is immutable afterward, so any number of concurrent readers
// may share it without locking.
type Catalog struct {
	tariffs map[domain.PricingTier]*domain.Tariff
}

// BuildCatalog parses the embedded tariff tables for all pricing tiers. An
// error means the checked-in table data is defective and the process should
// not start.
func BuildCatalog() (*Catalog, error) {
	sources := []struct {
		tier domain.PricingTier
		data []byte
	}{
		{domain.TierBasic, basicTable},
		{domain.TierActive, activeTable},
		{domain.TierBusiness, businessTable},
	}

	c := &Catalog{tariffs: make(map[domain.PricingTier]*domain.Tariff, len(sources))}
	for _, source := range sources {
		t, err := Parse(source.tier, source.data)
		if err != nil {
			return nil, fmt.Errorf("building %s tariff: %w", source.tier, err)
		}
		c.tariffs[source.tier] = t
	}
	return c, nil
}

// Tariff returns the tariff for the given tier. All tiers are built during
// construction, so a miss is a programming error.
func (c *Catalog) Tariff(tier domain.PricingTier) *domain.Tariff {
	t, ok := c.tariffs[tier]
	if !ok {
		panic(fmt.Sprintf("no tariff built for tier %q", tier))
	}
	return t
}

// Tariffs returns all tariffs in tier order.
func (c *Catalog) Tariffs() []*domain.Tariff {
	tariffs := make([]*domain.Tariff, 0, len(c.tariffs))
	for _, tier := range domain.Tiers() {
		tariffs = append(tariffs, c.tariffs[tier])
	}
	return tariffs
}
