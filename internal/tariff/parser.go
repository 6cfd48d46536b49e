package tariff

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/strohel/za-kolik-pojedu/internal/domain"
)

// Window boundaries and the weekend validity window. Keep in sync with the row
// labels below.
var (
	dayStart   = domain.TimeOfDay{Hour: 6}
	nightStart = domain.TimeOfDay{Hour: 20}

	weekendFrom = domain.WeekdayTime{Weekday: time.Friday, Time: domain.TimeOfDay{Hour: 16}}
	weekendTo   = domain.WeekdayTime{Weekday: time.Monday, Time: domain.TimeOfDay{Hour: 10}}
)

// Friday 16:00 through Monday 10:00.
const weekendDuration = (8 + 24 + 24 + 10) * time.Hour

// labelColumnHeader is the header of the row-label column in the source tables.
const labelColumnHeader = "Minutový tarif  (km v ceně)"

// categoryColumnHeaders maps the source tables' price column headers to car
// categories.
var categoryColumnHeaders = map[string]domain.CarCategory{
	"Legend Fabia":                            domain.CategoryLegend,
	"Fancy  Scala, Karoq, Octavia, Caddy Van": domain.CategoryFancy,
	"Boss Superb / Kodiaq":                    domain.CategoryBoss,
}

var (
	hourPackageRe = regexp.MustCompile(`([0-9]+) hodiny? \+ ([0-9]+) km`)
	dayPackageRe  = regexp.MustCompile(`([0-9]+) dn[yí] \+ ([0-9]+) km`)
)

// tariffRow is one parsed body row: the label and an optional price per car
// category (nil = empty cell).
type tariffRow struct {
	label  string
	prices [domain.NumCarCategories]*float64
}

// only returns the single price of the row, failing unless exactly one of the
// category cells is non-empty.
func (r tariffRow) only() (float64, error) {
	var found *float64
	for _, p := range r.prices {
		if p == nil {
			continue
		}
		if found != nil {
			return 0, fmt.Errorf("row %q: expected exactly one price value", r.label)
		}
		found = p
	}
	if found == nil {
		return 0, fmt.Errorf("row %q: expected exactly one price value", r.label)
	}
	return *found, nil
}

// rowRule pairs a label matcher with its handler. Rules are tried in order;
// the first match wins and a label matching no rule is a parse error.
type rowRule struct {
	literal string
	pattern *regexp.Regexp
	apply   func(b *tariffBuilder, row tariffRow, captures []string) error
}

func (r rowRule) match(label string) ([]string, bool) {
	if r.pattern != nil {
		captures := r.pattern.FindStringSubmatch(label)
		return captures, captures != nil
	}
	return nil, label == r.literal
}

var rowRules = []rowRule{
	{
		literal: "Denní: 6:00 - 20:00 Po-Ne",
		apply: func(b *tariffBuilder, row tariffRow, _ []string) error {
			return b.setMinuteRate(&b.day, row, dayStart, nightStart)
		},
	},
	{
		literal: "Noční: 20:00 - 6:00 Po-Ne",
		apply: func(b *tariffBuilder, row tariffRow, _ []string) error {
			return b.setMinuteRate(&b.night, row, nightStart, dayStart)
		},
	},
	{
		// Section header, carries no prices.
		literal: "Výhodné balíčky",
		apply:   func(*tariffBuilder, tariffRow, []string) error { return nil },
	},
	{
		pattern: hourPackageRe,
		apply: func(b *tariffBuilder, row tariffRow, captures []string) error {
			return b.addScaledPackage(row, captures, time.Hour)
		},
	},
	{
		pattern: dayPackageRe,
		apply: func(b *tariffBuilder, row tariffRow, captures []string) error {
			return b.addScaledPackage(row, captures, 24*time.Hour)
		},
	},
	{
		literal: "Víkend + 200 km",
		apply: func(b *tariffBuilder, row tariffRow, _ []string) error {
			restriction := &domain.TimeRestriction{From: weekendFrom, To: weekendTo}
			return b.addPackage(row, weekendDuration, 200, restriction)
		},
	},
	{
		literal: "Km nad rámec balíčků",
		apply: func(b *tariffBuilder, row tariffRow, _ []string) error {
			return b.setScalar(&b.perKm, row)
		},
	},
	{
		literal: "Letiště Praha - příjezd",
		apply: func(b *tariffBuilder, row tariffRow, _ []string) error {
			return b.setScalar(&b.airportEnter, row)
		},
	},
	{
		literal: "Letiště Praha - výjezd",
		apply: func(b *tariffBuilder, row tariffRow, _ []string) error {
			return b.setScalar(&b.airportLeave, row)
		},
	},
}

// Parse parses one raw tab-separated tariff table into a Tariff for the given
// tier. Any failure means the versioned source table is defective; callers
// treat it as fatal.
func Parse(tier domain.PricingTier, data []byte) (*domain.Tariff, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1 // rows omit trailing empty cells

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading tariff table: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty tariff table")
	}

	columns, err := mapHeader(records[0])
	if err != nil {
		return nil, err
	}

	b := &tariffBuilder{}
	for _, record := range records[1:] {
		row, err := parseRow(record, columns)
		if err != nil {
			return nil, err
		}
		if row.label == "" {
			continue
		}

		if err := applyRow(b, row); err != nil {
			return nil, err
		}
	}

	return b.build(tier)
}

// applyRow finds the first matching rule for the row's label and applies it.
func applyRow(b *tariffBuilder, row tariffRow) error {
	for _, rule := range rowRules {
		if captures, ok := rule.match(row.label); ok {
			return rule.apply(b, row, captures)
		}
	}
	return fmt.Errorf("%w: %q", ErrUnrecognizedRow, row.label)
}

// mapHeader resolves which record index holds each category's price. The label
// column is the first one; the three category columns are identified by their
// fixed header strings.
func mapHeader(header []string) ([domain.NumCarCategories]int, error) {
	var columns [domain.NumCarCategories]int
	for i := range columns {
		columns[i] = -1
	}

	for i, cell := range header {
		name := strings.TrimSpace(cell)
		if i == 0 {
			if name != labelColumnHeader {
				return columns, fmt.Errorf("unexpected label column header %q", name)
			}
			continue
		}
		category, ok := categoryColumnHeaders[name]
		if !ok {
			return columns, fmt.Errorf("unknown tariff column header %q", name)
		}
		columns[category] = i
	}

	for _, category := range domain.Categories() {
		if columns[category] == -1 {
			return columns, fmt.Errorf("%w: no price column for %s", ErrMissingField, category)
		}
	}
	return columns, nil
}

func parseRow(record []string, columns [domain.NumCarCategories]int) (tariffRow, error) {
	row := tariffRow{label: strings.TrimSpace(record[0])}

	for _, category := range domain.Categories() {
		col := columns[category]
		if col >= len(record) {
			continue
		}
		cell := strings.TrimSpace(record[col])
		if cell == "" {
			continue
		}
		value, err := parseDecimal(cell)
		if err != nil {
			return row, err
		}
		row.prices[category] = &value
	}
	return row, nil
}

// parseDecimal parses a price cell in the tables' Czech locale format: decimal
// comma, optional spaces as thousands separators.
func parseDecimal(cell string) (float64, error) {
	normalized := strings.ReplaceAll(cell, ",", ".")
	normalized = strings.ReplaceAll(normalized, " ", "")
	value, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedNumber, cell)
	}
	return value, nil
}

// tariffBuilder accumulates fields while table rows are consumed and validates
// completeness in build.
type tariffBuilder struct {
	day      [domain.NumCarCategories]*domain.PerMinuteRate
	night    [domain.NumCarCategories]*domain.PerMinuteRate
	packages [domain.NumCarCategories][]domain.Package

	perKm        *float64
	airportEnter *float64
	airportLeave *float64
}

func (b *tariffBuilder) setMinuteRate(dst *[domain.NumCarCategories]*domain.PerMinuteRate, row tariffRow, start, end domain.TimeOfDay) error {
	for _, category := range domain.Categories() {
		price := row.prices[category]
		if price == nil {
			return fmt.Errorf("%w: %q has no price for %s", ErrIncompletePriceRow, row.label, category)
		}
		dst[category] = &domain.PerMinuteRate{Start: start, End: end, PerMinuteCZK: *price}
	}
	return nil
}

// addScaledPackage adds a package whose duration is captures[1] units and whose
// included distance is captures[2] km.
func (b *tariffBuilder) addScaledPackage(row tariffRow, captures []string, unit time.Duration) error {
	count, err := strconv.Atoi(captures[1])
	if err != nil {
		return fmt.Errorf("%w: package duration in %q", ErrMalformedNumber, row.label)
	}
	kilometers, err := strconv.ParseFloat(captures[2], 64)
	if err != nil {
		return fmt.Errorf("%w: package kilometers in %q", ErrMalformedNumber, row.label)
	}
	return b.addPackage(row, time.Duration(count)*unit, kilometers, nil)
}

func (b *tariffBuilder) addPackage(row tariffRow, duration time.Duration, kilometers float64, restriction *domain.TimeRestriction) error {
	for _, category := range domain.Categories() {
		price := row.prices[category]
		if price == nil {
			return fmt.Errorf("%w: %q has no price for %s", ErrIncompletePriceRow, row.label, category)
		}
		b.packages[category] = append(b.packages[category], domain.Package{
			Name:        row.label,
			Duration:    duration,
			Kilometers:  kilometers,
			PriceCZK:    *price,
			Restriction: restriction,
		})
	}
	return nil
}

func (b *tariffBuilder) setScalar(dst **float64, row tariffRow) error {
	value, err := row.only()
	if err != nil {
		return err
	}
	*dst = &value
	return nil
}

func (b *tariffBuilder) build(tier domain.PricingTier) (*domain.Tariff, error) {
	tariff := &domain.Tariff{Tier: tier}

	for _, category := range domain.Categories() {
		day, night := b.day[category], b.night[category]
		if day == nil {
			return nil, fmt.Errorf("%w: day per-minute rate for %s", ErrMissingField, category)
		}
		if night == nil {
			return nil, fmt.Errorf("%w: night per-minute rate for %s", ErrMissingField, category)
		}
		tariff.PerCar[category] = domain.CarTariff{
			PerMinute: []domain.PerMinuteRate{*day, *night},
			Packages:  b.packages[category],
		}
	}

	if b.perKm == nil {
		return nil, fmt.Errorf("%w: per-km price", ErrMissingField)
	}
	if b.airportEnter == nil {
		return nil, fmt.Errorf("%w: airport entry price", ErrMissingField)
	}
	if b.airportLeave == nil {
		return nil, fmt.Errorf("%w: airport exit price", ErrMissingField)
	}
	tariff.PerKmCZK = *b.perKm
	tariff.AirportEnterCZK = *b.airportEnter
	tariff.AirportLeaveCZK = *b.airportLeave

	return tariff, nil
}
