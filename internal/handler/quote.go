package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/strohel/za-kolik-pojedu/internal/domain"
	"github.com/strohel/za-kolik-pojedu/internal/service"
)

// tripTimeLayout is the naive local date-time format used by the quote API.
// It matches what an HTML datetime-local input submits.
const tripTimeLayout = "2006-01-02T15:04"

// QuoteHandler handles HTTP requests for quotes.
type QuoteHandler struct {
	quoteService *service.QuoteService
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(quoteService *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

// CreateQuoteRequest is the HTTP request body for pricing a trip.
type CreateQuoteRequest struct {
	Provider   string   `json:"provider,omitempty"` // defaults to car4way
	Tier       string   `json:"tier"`
	Categories []string `json:"categories"`
	DistanceKm float64  `json:"distance_km"`
	Begin      string   `json:"begin"` // naive local, 2006-01-02T15:04
	End        string   `json:"end"`
}

// QuoteResponse is the HTTP response for quote operations.
type QuoteResponse struct {
	ID         string   `json:"id"`
	Provider   string   `json:"provider"`
	Tier       string   `json:"tier"`
	Categories []string `json:"categories"`
	DistanceKm float64  `json:"distance_km"`
	Begin      string   `json:"begin"`
	End        string   `json:"end"`
	PriceCZK   float64  `json:"price_czk"`
	Breakdown  string   `json:"breakdown"`
	CreatedAt  string   `json:"created_at"`
}

// CreateQuote handles POST /v1/quotes
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var req CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	begin, err := parseTripTime(req.Begin)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	end, err := parseTripTime(req.End)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	record, err := h.quoteService.RequestQuote(c.Request.Context(), service.QuoteRequest{
		Provider:   req.Provider,
		Tier:       req.Tier,
		Categories: req.Categories,
		DistanceKm: req.DistanceKm,
		Begin:      begin,
		End:        end,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, quoteResponse(record))
}

// GetQuote handles GET /v1/quotes/:id
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	record, err := h.quoteService.GetQuote(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, quoteResponse(record))
}

// GetAll handles GET /v1/quotes
func (h *QuoteHandler) GetAll(c *gin.Context) {
	records, err := h.quoteService.GetAllQuotes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]QuoteResponse, 0, len(records))
	for _, record := range records {
		response = append(response, quoteResponse(record))
	}

	c.JSON(http.StatusOK, response)
}

// GetProviders handles GET /v1/providers
func (h *QuoteHandler) GetProviders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"providers": h.quoteService.Providers()})
}

func quoteResponse(record *domain.QuoteRecord) QuoteResponse {
	categories := make([]string, len(record.Categories))
	for i, category := range record.Categories {
		categories[i] = category.Key()
	}

	return QuoteResponse{
		ID:         record.ID,
		Provider:   record.Provider,
		Tier:       string(record.Tier),
		Categories: categories,
		DistanceKm: record.DistanceKm,
		Begin:      record.Begin.Format(tripTimeLayout),
		End:        record.End.Format(tripTimeLayout),
		PriceCZK:   record.PriceCZK,
		Breakdown:  record.Breakdown,
		CreatedAt:  record.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func parseTripTime(value string) (time.Time, error) {
	for _, layout := range []string{tripTimeLayout, "2006-01-02T15:04:05"} {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid trip time %q, want %s", value, tripTimeLayout)
}
