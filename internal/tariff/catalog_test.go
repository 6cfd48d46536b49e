package tariff

import (
	"sync"
	"testing"
	"time"

	"github.com/strohel/za-kolik-pojedu/internal/domain"
)

func TestBuildCatalog_EmbeddedTables(t *testing.T) {
	t.Parallel()

	catalog, err := BuildCatalog()
	if err != nil {
		t.Fatalf("embedded tables must parse: %v", err)
	}

	for _, tier := range domain.Tiers() {
		tariff := catalog.Tariff(tier)
		if tariff.Tier != tier {
			t.Errorf("tariff for %s reports tier %s", tier, tariff.Tier)
		}
		if tariff.PerKmCZK <= 0 {
			t.Errorf("%s: per-km price not populated", tier)
		}
		for _, category := range domain.Categories() {
			car := tariff.CarTariff(category)
			if len(car.PerMinute) != 2 {
				t.Errorf("%s/%s: expected day and night rates, got %d", tier, category, len(car.PerMinute))
			}
			if len(car.Packages) == 0 {
				t.Errorf("%s/%s: expected packages", tier, category)
			}
		}
	}

	if got := len(catalog.Tariffs()); got != len(domain.Tiers()) {
		t.Errorf("expected %d tariffs, got %d", len(domain.Tiers()), got)
	}
}

// Every tier and category must have per-minute windows tiling the full
// 24-hour cycle: each minute of the day belongs to exactly one window,
// including across the midnight wrap.
func TestCatalog_RateWindowsTileDay(t *testing.T) {
	t.Parallel()

	catalog, err := BuildCatalog()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.Local)
	for _, tier := range domain.Tiers() {
		tariff := catalog.Tariff(tier)
		for _, category := range domain.Categories() {
			rates := tariff.CarTariff(category).PerMinute
			for minute := 0; minute < 24*60; minute++ {
				instant := day.Add(time.Duration(minute) * time.Minute)
				matches := 0
				for _, rate := range rates {
					if rate.Contains(instant) {
						matches++
					}
				}
				if matches != 1 {
					t.Fatalf("%s/%s: %02d:%02d contained in %d windows, want exactly 1",
						tier, category, minute/60, minute%60, matches)
				}
			}
		}
	}
}

func TestCatalog_SharedAcrossConcurrentReaders(t *testing.T) {
	t.Parallel()

	catalog, err := BuildCatalog()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, tier := range domain.Tiers() {
				tariff := catalog.Tariff(tier)
				for _, category := range domain.Categories() {
					if len(tariff.CarTariff(category).PerMinute) != 2 {
						t.Error("tariff mutated under concurrent read")
						return
					}
				}
			}
		}()
	}
	wg.Wait()
}
