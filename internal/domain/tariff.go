package domain

import (
	"fmt"
	"time"
)

// PricingTier identifies one of the provider's named rate plans. Each tier has
// its own full tariff table.
type PricingTier string

const (
	TierBasic    PricingTier = "basic"
	TierActive   PricingTier = "active"
	TierBusiness PricingTier = "business"
)

// Tiers returns all pricing tiers in their declared order.
func Tiers() []PricingTier {
	return []PricingTier{TierBasic, TierActive, TierBusiness}
}

// ParsePricingTier parses a machine tier name.
func ParsePricingTier(s string) (PricingTier, error) {
	switch PricingTier(s) {
	case TierBasic, TierActive, TierBusiness:
		return PricingTier(s), nil
	}
	return "", fmt.Errorf("unknown pricing tier %q", s)
}

// CarCategory is a class of vehicle with tier-specific pricing. The declared
// order is canonical: iteration and price tie-breaking follow it.
type CarCategory int

const (
	CategoryLegend CarCategory = iota
	CategoryFancy
	CategoryBoss

	// NumCarCategories sizes category-indexed arrays.
	NumCarCategories = 3
)

// Categories returns all car categories in canonical order.
func Categories() []CarCategory {
	return []CarCategory{CategoryLegend, CategoryFancy, CategoryBoss}
}

// Key returns the stable machine name of the category.
func (c CarCategory) Key() string {
	switch c {
	case CategoryLegend:
		return "legend"
	case CategoryFancy:
		return "fancy"
	case CategoryBoss:
		return "boss"
	}
	return fmt.Sprintf("CarCategory(%d)", int(c))
}

// DisplayName returns the human name shown in quote breakdowns.
func (c CarCategory) DisplayName() string {
	switch c {
	case CategoryLegend:
		return "Legend (Fabia)"
	case CategoryFancy:
		return "Fancy (Scala, Karoq, Octavia, Caddy Van)"
	case CategoryBoss:
		return "Boss (Superb / Kodiaq)"
	}
	return c.Key()
}

func (c CarCategory) String() string { return c.Key() }

// ParseCarCategory parses a machine category name.
func ParseCarCategory(s string) (CarCategory, error) {
	for _, c := range Categories() {
		if c.Key() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown car category %q", s)
}

// TimeOfDay is a wall-clock time with minute precision.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t TimeOfDay) secondOfDay() int {
	return (t.Hour*60 + t.Minute) * 60
}

func secondOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

// PerMinuteRate is a half-open time-of-day window [Start, End) with a price per
// minute. The window may wrap past midnight (Start >= End).
type PerMinuteRate struct {
	Start        TimeOfDay
	End          TimeOfDay
	PerMinuteCZK float64
}

// Contains reports whether t's time of day falls inside the window.
func (r PerMinuteRate) Contains(t time.Time) bool {
	s := secondOfDay(t)
	start, end := r.Start.secondOfDay(), r.End.secondOfDay()
	if start < end {
		return s >= start && s < end
	}
	// Wrapping window, e.g. 20:00-6:00.
	return s >= start || s < end
}

// NextEnd returns the first instant strictly after t at which the window ends.
func (r PerMinuteRate) NextEnd(t time.Time) time.Time {
	end := time.Date(t.Year(), t.Month(), t.Day(), r.End.Hour, r.End.Minute, 0, 0, t.Location())
	if !end.After(t) {
		end = end.AddDate(0, 0, 1)
	}
	return end
}

// WeekdayTime is a weekday plus a time of day, e.g. "Friday 16:00".
type WeekdayTime struct {
	Weekday time.Weekday
	Time    TimeOfDay
}

// TimeRestriction limits when a package may be started and ended.
//
// It is parsed from the tariff tables but intentionally not enforced by the
// calculator; see the calculator for details.
type TimeRestriction struct {
	From WeekdayTime
	To   WeekdayTime
}

// Package is a prepaid bundle of duration and included distance for a flat
// price, optionally restricted to a weekday/time window.
type Package struct {
	Name        string
	Duration    time.Duration
	Kilometers  float64
	PriceCZK    float64
	Restriction *TimeRestriction
}

// CarTariff holds the pricing of a single car category within a tier: the
// per-minute rate windows (tiling the full day) and the prepaid packages in
// source-table order.
type CarTariff struct {
	PerMinute []PerMinuteRate
	Packages  []Package
}

// Tariff is the complete parsed price model of one pricing tier.
type Tariff struct {
	Tier   PricingTier
	PerCar [NumCarCategories]CarTariff

	// Tier-wide scalars.
	PerKmCZK        float64 // price per km driven beyond package allowances
	AirportEnterCZK float64 // parsed but not applied to any total
	AirportLeaveCZK float64 // parsed but not applied to any total
}

// CarTariff returns the pricing for the given category.
func (t *Tariff) CarTariff(c CarCategory) *CarTariff {
	return &t.PerCar[c]
}
