package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/strohel/za-kolik-pojedu/internal/domain"
)

// Calculate computes the cheapest way to cover the trip with the given tariff,
// considering every eligible car category and, per category, every prepaid
// package as well as plain per-minute pricing.
//
// It is a pure function over immutable inputs: deterministic, non-blocking,
// and free of I/O. Categories are evaluated in their canonical order and ties
// keep the first-encountered result, so identical inputs always yield an
// identical quote.
func Calculate(tariff *domain.Tariff, eligible []domain.CarCategory, trip domain.TripRequest) (domain.Quote, error) {
	selected := make(map[domain.CarCategory]bool, len(eligible))
	for _, category := range eligible {
		selected[category] = true
	}
	if len(selected) == 0 {
		return domain.Quote{}, ErrNoEligibleCategories
	}

	var best domain.Quote
	found := false
	for _, category := range domain.Categories() {
		if !selected[category] {
			continue
		}
		quote := calculateForCar(tariff, category, trip)
		if !found || quote.PriceCZK < best.PriceCZK {
			best = quote
			found = true
		}
	}
	if !found {
		return domain.Quote{}, ErrNoEligibleCategories
	}
	return best, nil
}

// calculateForCar returns the cheapest quote for a single category: the
// minimum over its packages (in source-table order) and the no-package option,
// which is evaluated last. Ties keep the earlier option.
func calculateForCar(tariff *domain.Tariff, category domain.CarCategory, trip domain.TripRequest) domain.Quote {
	car := tariff.CarTariff(category)

	var best domain.Quote
	found := false
	consider := func(pkg *domain.Package) {
		quote := calculateForPackage(tariff, category, pkg, trip)
		if !found || quote.PriceCZK < best.PriceCZK {
			best = quote
			found = true
		}
	}

	for i := range car.Packages {
		consider(&car.Packages[i])
	}
	consider(nil)

	return best
}

// calculateForPackage prices the trip for one category with an optional
// prepaid package applied first.
//
// The cursor starts at trip begin. A chosen package consumes its duration and
// included kilometers up front; the remaining time is billed by walking the
// per-minute rate windows the cursor passes through, and any remaining
// distance is billed at the tier's per-km rate.
//
// Known gap kept on purpose: a package's time restriction (e.g. the weekend
// package's Friday-Monday validity) is not checked against the trip, and the
// tariff's airport fees are never added. TODO: apply the weekend package
// restriction once the product behavior for trips outside the window is
// decided.
func calculateForPackage(tariff *domain.Tariff, category domain.CarCategory, pkg *domain.Package, trip domain.TripRequest) domain.Quote {
	cursor := trip.Begin
	remainingKm := trip.DistanceKm
	price := 0.0
	parts := []string{category.DisplayName()}

	if pkg != nil {
		cursor = cursor.Add(pkg.Duration)
		remainingKm -= pkg.Kilometers
		if remainingKm < 0 {
			remainingKm = 0
		}
		price += pkg.PriceCZK
		parts = append(parts, pkg.Name)
	}

	for cursor.Before(trip.End) {
		rate := rateAt(tariff.CarTariff(category).PerMinute, cursor)

		segmentEnd := rate.NextEnd(cursor)
		if trip.End.Before(segmentEnd) {
			segmentEnd = trip.End
		}

		// Keep sub-minute precision; Minutes returns a fractional count.
		price += segmentEnd.Sub(cursor).Minutes() * rate.PerMinuteCZK
		parts = append(parts, fmt.Sprintf("per-minute tariff %s-%s", rate.Start, rate.End))
		cursor = segmentEnd
	}

	if remainingKm > 0 {
		price += remainingKm * tariff.PerKmCZK
		parts = append(parts, "extra distance")
	}

	return domain.Quote{PriceCZK: price, Breakdown: strings.Join(parts, ", ")}
}

// rateAt returns the per-minute rate whose window contains t's time of day.
// The parser guarantees the windows tile the full day, so exactly one matches;
// anything else is a programming error.
func rateAt(rates []domain.PerMinuteRate, t time.Time) domain.PerMinuteRate {
	for _, rate := range rates {
		if rate.Contains(t) {
			return rate
		}
	}
	panic(fmt.Sprintf("no per-minute rate window contains %v", t))
}
