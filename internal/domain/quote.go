package domain

import "time"

// TripRequest is the caller-supplied trip to be priced. Begin and End are naive
// local date-times; End is expected at or after Begin, but a zero or negative
// duration is accepted and simply consumes no per-minute time.
type TripRequest struct {
	DistanceKm float64
	Begin      time.Time
	End        time.Time
}

// Duration returns End - Begin. May be zero or negative for degenerate trips.
func (t TripRequest) Duration() time.Duration {
	return t.End.Sub(t.Begin)
}

// Quote is the result of pricing a trip: the cheapest total over the eligible
// categories and package options, with a human-readable breakdown of the
// components applied, in order.
type Quote struct {
	PriceCZK  float64
	Breakdown string
}

// QuoteRecord is a persisted quote: the request, the result, and bookkeeping.
type QuoteRecord struct {
	ID         string
	Provider   string
	Tier       PricingTier
	Categories []CarCategory
	DistanceKm float64
	Begin      time.Time
	End        time.Time
	PriceCZK   float64
	Breakdown  string
	CreatedAt  time.Time
}
