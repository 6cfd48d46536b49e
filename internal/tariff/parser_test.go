package tariff

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/strohel/za-kolik-pojedu/internal/domain"
)

const testHeader = "Minutový tarif  (km v ceně)\tLegend Fabia\tFancy  Scala, Karoq, Octavia, Caddy Van\tBoss Superb / Kodiaq"

// table builds a tab-separated tariff table from the given body rows.
func table(rows ...string) []byte {
	return []byte(testHeader + "\n" + strings.Join(rows, "\n") + "\n")
}

// completeRows is a minimal set of rows populating every required field.
var completeRows = []string{
	"Denní: 6:00 - 20:00 Po-Ne\t6,50\t9,00\t11,50",
	"Noční: 20:00 - 6:00 Po-Ne\t3,50\t5,00\t6,50",
	"Km nad rámec balíčků\t5,50",
	"Letiště Praha - příjezd\t150",
	"Letiště Praha - výjezd\t150",
}

func TestParse_CompleteTable(t *testing.T) {
	t.Parallel()

	rows := append([]string{
		"Denní: 6:00 - 20:00 Po-Ne\t6,50\t9,00\t11,50",
		"Noční: 20:00 - 6:00 Po-Ne\t3,50\t5,00\t6,50",
		"Výhodné balíčky",
		"3 hodiny + 25 km\t690\t890\t1 190",
		"2 dny + 150 km\t2 690\t3 590\t4 690",
		"Víkend + 200 km\t2 490\t3 290\t4 290",
	}, completeRows[2:]...)

	tariff, err := Parse(domain.TierBasic, table(rows...))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tariff.Tier != domain.TierBasic {
		t.Errorf("expected tier %s, got %s", domain.TierBasic, tariff.Tier)
	}
	if tariff.PerKmCZK != 5.5 {
		t.Errorf("expected per-km price 5.5, got %v", tariff.PerKmCZK)
	}
	if tariff.AirportEnterCZK != 150 || tariff.AirportLeaveCZK != 150 {
		t.Errorf("expected airport fees 150/150, got %v/%v", tariff.AirportEnterCZK, tariff.AirportLeaveCZK)
	}

	legend := tariff.CarTariff(domain.CategoryLegend)
	if len(legend.PerMinute) != 2 {
		t.Fatalf("expected 2 per-minute rates, got %d", len(legend.PerMinute))
	}
	day, night := legend.PerMinute[0], legend.PerMinute[1]
	if day.Start.Hour != 6 || day.End.Hour != 20 || day.PerMinuteCZK != 6.5 {
		t.Errorf("unexpected day rate: %+v", day)
	}
	if night.Start.Hour != 20 || night.End.Hour != 6 || night.PerMinuteCZK != 3.5 {
		t.Errorf("unexpected night rate: %+v", night)
	}

	boss := tariff.CarTariff(domain.CategoryBoss)
	if boss.PerMinute[0].PerMinuteCZK != 11.5 {
		t.Errorf("expected boss day rate 11.5, got %v", boss.PerMinute[0].PerMinuteCZK)
	}

	if len(legend.Packages) != 3 {
		t.Fatalf("expected 3 packages, got %d", len(legend.Packages))
	}

	hourly := legend.Packages[0]
	if hourly.Name != "3 hodiny + 25 km" || hourly.Duration != 3*time.Hour || hourly.Kilometers != 25 || hourly.PriceCZK != 690 {
		t.Errorf("unexpected hourly package: %+v", hourly)
	}

	daily := legend.Packages[1]
	if daily.Duration != 48*time.Hour || daily.Kilometers != 150 || daily.PriceCZK != 2690 {
		t.Errorf("unexpected daily package: %+v", daily)
	}

	weekend := tariff.CarTariff(domain.CategoryFancy).Packages[2]
	if weekend.Duration != 66*time.Hour || weekend.Kilometers != 200 || weekend.PriceCZK != 3290 {
		t.Errorf("unexpected weekend package: %+v", weekend)
	}
	if weekend.Restriction == nil {
		t.Fatal("weekend package should carry a time restriction")
	}
	if weekend.Restriction.From.Weekday != time.Friday || weekend.Restriction.From.Time.Hour != 16 {
		t.Errorf("unexpected weekend restriction start: %+v", weekend.Restriction.From)
	}
	if weekend.Restriction.To.Weekday != time.Monday || weekend.Restriction.To.Time.Hour != 10 {
		t.Errorf("unexpected weekend restriction end: %+v", weekend.Restriction.To)
	}
}

func TestParse_PackageOrderFollowsTable(t *testing.T) {
	t.Parallel()

	rows := append([]string{
		"6 hodin + 50 km\t990\t1 290\t1 690",
		"3 hodiny + 25 km\t690\t890\t1 190",
	}, completeRows...)

	tariff, err := Parse(domain.TierActive, table(rows...))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	packages := tariff.CarTariff(domain.CategoryLegend).Packages
	if packages[0].Name != "6 hodin + 50 km" || packages[1].Name != "3 hodiny + 25 km" {
		t.Errorf("packages out of source order: %q, %q", packages[0].Name, packages[1].Name)
	}
}

func TestParse_UnrecognizedRow(t *testing.T) {
	t.Parallel()

	rows := append([]string{"Záhadný řádek\t1\t2\t3"}, completeRows...)

	_, err := Parse(domain.TierBasic, table(rows...))
	if !errors.Is(err, ErrUnrecognizedRow) {
		t.Fatalf("expected ErrUnrecognizedRow, got %v", err)
	}
	if !strings.Contains(err.Error(), "Záhadný řádek") {
		t.Errorf("error should name the offending label: %v", err)
	}
}

func TestParse_IncompletePriceRow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		row  string
	}{
		{"minute rate missing boss", "Denní: 6:00 - 20:00 Po-Ne\t6,50\t9,00"},
		{"package missing fancy", "3 hodiny + 25 km\t690\t\t1 190"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := append([]string{tt.row}, completeRows[1:]...)
			_, err := Parse(domain.TierBasic, table(rows...))
			if !errors.Is(err, ErrIncompletePriceRow) {
				t.Fatalf("expected ErrIncompletePriceRow, got %v", err)
			}
		})
	}
}

func TestParse_MissingField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		omit int // index into completeRows
	}{
		{"no day rate", 0},
		{"no night rate", 1},
		{"no per-km price", 2},
		{"no airport entry", 3},
		{"no airport exit", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rows []string
			for i, row := range completeRows {
				if i != tt.omit {
					rows = append(rows, row)
				}
			}
			_, err := Parse(domain.TierBasic, table(rows...))
			if !errors.Is(err, ErrMissingField) {
				t.Fatalf("expected ErrMissingField, got %v", err)
			}
		})
	}
}

func TestParse_MalformedNumber(t *testing.T) {
	t.Parallel()

	rows := append([]string{"3 hodiny + 25 km\tdost\t890\t1 190"}, completeRows...)

	_, err := Parse(domain.TierBasic, table(rows...))
	if !errors.Is(err, ErrMalformedNumber) {
		t.Fatalf("expected ErrMalformedNumber, got %v", err)
	}
	if !strings.Contains(err.Error(), "dost") {
		t.Errorf("error should include the raw cell: %v", err)
	}
}

func TestParse_DecimalCommaAndSpaces(t *testing.T) {
	t.Parallel()

	rows := append([]string{"3 hodiny + 25 km\t1 190,50\t2 000\t3 000,25"}, completeRows...)

	tariff, err := Parse(domain.TierBasic, table(rows...))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := tariff.CarTariff(domain.CategoryLegend).Packages[0].PriceCZK; got != 1190.5 {
		t.Errorf("expected 1190.5, got %v", got)
	}
	if got := tariff.CarTariff(domain.CategoryBoss).Packages[0].PriceCZK; got != 3000.25 {
		t.Errorf("expected 3000.25, got %v", got)
	}
}

func TestParse_ScalarRowRequiresExactlyOneValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		row  string
	}{
		{"two values", "Km nad rámec balíčků\t5,50\t6,00"},
		{"no value", "Km nad rámec balíčků"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := append([]string{completeRows[0], completeRows[1], tt.row}, completeRows[3:]...)
			_, err := Parse(domain.TierBasic, table(rows...))
			if err == nil {
				t.Fatal("expected an error for a scalar row without exactly one value")
			}
		})
	}
}

func TestParse_UnknownHeaderColumn(t *testing.T) {
	t.Parallel()

	data := []byte("Minutový tarif  (km v ceně)\tLegend Fabia\tNeznámá kategorie\tBoss Superb / Kodiaq\n" +
		strings.Join(completeRows, "\n") + "\n")

	if _, err := Parse(domain.TierBasic, data); err == nil {
		t.Fatal("expected an error for an unknown header column")
	}
}
