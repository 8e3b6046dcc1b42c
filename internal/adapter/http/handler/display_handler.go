package handler

import (
	"currency-wallet/internal/adapter/http/dto"
	"currency-wallet/internal/core/ports"
	"currency-wallet/pkg/response"

	"github.com/gin-gonic/gin"
)

// DisplayHandler handles the read-only exchange rate and news endpoints.
type DisplayHandler struct {
	ratesSvc     ports.RatesService
	baseCurrency string
	defaultQuery string
}

// NewDisplayHandler creates a new DisplayHandler.
func NewDisplayHandler(ratesSvc ports.RatesService, baseCurrency, defaultQuery string) *DisplayHandler {
	return &DisplayHandler{
		ratesSvc:     ratesSvc,
		baseCurrency: baseCurrency,
		defaultQuery: defaultQuery,
	}
}

// Rates handles GET /api/v1/exchange?base=USD.
func (h *DisplayHandler) Rates(c *gin.Context) {
	base := c.DefaultQuery("base", h.baseCurrency)

	rates, err := h.ratesSvc.DisplayRates(c.Request.Context(), base)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := dto.RatesResponse{
		Base:  base,
		Rates: make(map[string]string, len(rates)),
	}
	for code, rate := range rates {
		resp.Rates[code] = rate.String()
	}

	response.OK(c, resp)
}

// News handles GET /api/v1/news?query=...
func (h *DisplayHandler) News(c *gin.Context) {
	query := c.DefaultQuery("query", h.defaultQuery)

	// The feed is decoration; an upstream outage yields an empty list
	// rather than an error page.
	articles, err := h.ratesSvc.Headlines(c.Request.Context(), query)
	if err != nil {
		response.OK(c, []dto.ArticleResponse{})
		return
	}

	resp := make([]dto.ArticleResponse, 0, len(articles))
	for _, a := range articles {
		item := dto.ArticleResponse{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			Source:      a.Source,
		}
		if !a.PublishedAt.IsZero() {
			item.PublishedAt = a.PublishedAt.UTC().Format("2006-01-02T15:04:05Z07:00")
		}
		resp = append(resp, item)
	}

	response.OK(c, resp)
}
