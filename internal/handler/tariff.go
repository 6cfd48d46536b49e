package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/strohel/za-kolik-pojedu/internal/domain"
	"github.com/strohel/za-kolik-pojedu/internal/tariff"
)

// TariffHandler exposes the parsed tariff catalog, mainly so UI callers can
// render the available tiers, categories and packages.
type TariffHandler struct {
	catalog *tariff.Catalog
}

// NewTariffHandler creates a new TariffHandler.
func NewTariffHandler(catalog *tariff.Catalog) *TariffHandler {
	return &TariffHandler{catalog: catalog}
}

// TariffResponse is the HTTP representation of one tier's tariff.
type TariffResponse struct {
	Tier            string              `json:"tier"`
	Cars            []CarTariffResponse `json:"cars"`
	PerKmCZK        float64             `json:"per_km_czk"`
	AirportEnterCZK float64             `json:"airport_enter_czk"`
	AirportLeaveCZK float64             `json:"airport_leave_czk"`
}

// CarTariffResponse is one car category's pricing within a tier.
type CarTariffResponse struct {
	Category    string                  `json:"category"`
	DisplayName string                  `json:"display_name"`
	PerMinute   []PerMinuteRateResponse `json:"per_minute"`
	Packages    []PackageResponse       `json:"packages"`
}

// PerMinuteRateResponse is one time-of-day rate window.
type PerMinuteRateResponse struct {
	Start        string  `json:"start"`
	End          string  `json:"end"`
	PerMinuteCZK float64 `json:"per_minute_czk"`
}

// PackageResponse is one prepaid package.
type PackageResponse struct {
	Name            string                   `json:"name"`
	DurationMinutes int64                    `json:"duration_minutes"`
	Kilometers      float64                  `json:"kilometers"`
	PriceCZK        float64                  `json:"price_czk"`
	Restriction     *TimeRestrictionResponse `json:"restriction,omitempty"`
}

// TimeRestrictionResponse is a package validity window. It is informational:
// the calculator does not enforce it.
type TimeRestrictionResponse struct {
	FromWeekday string `json:"from_weekday"`
	FromTime    string `json:"from_time"`
	ToWeekday   string `json:"to_weekday"`
	ToTime      string `json:"to_time"`
}

// GetAll handles GET /v1/tariffs
func (h *TariffHandler) GetAll(c *gin.Context) {
	tariffs := h.catalog.Tariffs()

	response := make([]TariffResponse, 0, len(tariffs))
	for _, t := range tariffs {
		response = append(response, tariffResponse(t))
	}

	c.JSON(http.StatusOK, response)
}

// GetTariff handles GET /v1/tariffs/:tier
func (h *TariffHandler) GetTariff(c *gin.Context) {
	tier, err := domain.ParsePricingTier(c.Param("tier"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	respondJSON(c, http.StatusOK, tariffResponse(h.catalog.Tariff(tier)))
}

func tariffResponse(t *domain.Tariff) TariffResponse {
	response := TariffResponse{
		Tier:            string(t.Tier),
		PerKmCZK:        t.PerKmCZK,
		AirportEnterCZK: t.AirportEnterCZK,
		AirportLeaveCZK: t.AirportLeaveCZK,
	}

	for _, category := range domain.Categories() {
		car := t.CarTariff(category)

		carResponse := CarTariffResponse{
			Category:    category.Key(),
			DisplayName: category.DisplayName(),
			PerMinute:   make([]PerMinuteRateResponse, 0, len(car.PerMinute)),
			Packages:    make([]PackageResponse, 0, len(car.Packages)),
		}

		for _, rate := range car.PerMinute {
			carResponse.PerMinute = append(carResponse.PerMinute, PerMinuteRateResponse{
				Start:        rate.Start.String(),
				End:          rate.End.String(),
				PerMinuteCZK: rate.PerMinuteCZK,
			})
		}

		for _, pkg := range car.Packages {
			pkgResponse := PackageResponse{
				Name:            pkg.Name,
				DurationMinutes: int64(pkg.Duration.Minutes()),
				Kilometers:      pkg.Kilometers,
				PriceCZK:        pkg.PriceCZK,
			}
			if pkg.Restriction != nil {
				pkgResponse.Restriction = &TimeRestrictionResponse{
					FromWeekday: pkg.Restriction.From.Weekday.String(),
					FromTime:    pkg.Restriction.From.Time.String(),
					ToWeekday:   pkg.Restriction.To.Weekday.String(),
					ToTime:      pkg.Restriction.To.Time.String(),
				}
			}
			carResponse.Packages = append(carResponse.Packages, pkgResponse)
		}

		response.Cars = append(response.Cars, carResponse)
	}

	return response
}
