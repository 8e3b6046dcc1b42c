package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"currency-wallet/internal/core/domain"
	"currency-wallet/internal/core/ports/mocks"
	"currency-wallet/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newDisplayRouter(t *testing.T) (*gin.Engine, *mocks.MockRatesService, *gomock.Controller) {
	ctrl := gomock.NewController(t)
	ratesSvc := mocks.NewMockRatesService(ctrl)
	h := NewDisplayHandler(ratesSvc, "INR", "money AND currencies")

	r := gin.New()
	r.GET("/exchange", h.Rates)
	r.GET("/news", h.News)
	return r, ratesSvc, ctrl
}

func TestDisplayHandler_Rates_DefaultBase(t *testing.T) {
	r, ratesSvc, ctrl := newDisplayRouter(t)
	defer ctrl.Finish()

	ratesSvc.EXPECT().DisplayRates(gomock.Any(), "INR").
		Return(map[string]decimal.Decimal{"USD": decimal.NewFromFloat(0.012)}, nil)

	w := doJSON(r, http.MethodGet, "/exchange", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Base  string            `json:"base"`
		Rates map[string]string `json:"rates"`
	}
	decodeData(t, w, &resp)
	assert.Equal(t, "INR", resp.Base)
	assert.Equal(t, "0.012", resp.Rates["USD"])
}

func TestDisplayHandler_Rates_ExplicitBase(t *testing.T) {
	r, ratesSvc, ctrl := newDisplayRouter(t)
	defer ctrl.Finish()

	ratesSvc.EXPECT().DisplayRates(gomock.Any(), "USD").
		Return(map[string]decimal.Decimal{"INR": decimal.NewFromFloat(83.2)}, nil)

	w := doJSON(r, http.MethodGet, "/exchange?base=USD", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Base string `json:"base"`
	}
	decodeData(t, w, &resp)
	assert.Equal(t, "USD", resp.Base)
}

func TestDisplayHandler_Rates_UpstreamDown(t *testing.T) {
	r, ratesSvc, ctrl := newDisplayRouter(t)
	defer ctrl.Finish()

	ratesSvc.EXPECT().DisplayRates(gomock.Any(), "INR").
		Return(nil, apperror.ErrRateLookupFailed(nil))

	w := doJSON(r, http.MethodGet, "/exchange", nil)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "FX_002", decodeError(t, w).ErrorCode)
}

func TestDisplayHandler_News_DefaultQuery(t *testing.T) {
	r, ratesSvc, ctrl := newDisplayRouter(t)
	defer ctrl.Finish()

	published := time.Date(2026, 8, 27, 9, 30, 0, 0, time.UTC)
	ratesSvc.EXPECT().Headlines(gomock.Any(), "money AND currencies").
		Return([]domain.Article{
			{Title: "Rupee edges higher", Source: "Reuters", URL: "https://example.com/a", PublishedAt: published},
		}, nil)

	w := doJSON(r, http.MethodGet, "/news", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []struct {
		Title       string `json:"title"`
		Source      string `json:"source"`
		PublishedAt string `json:"published_at"`
	}
	decodeData(t, w, &resp)
	require.Len(t, resp, 1)
	assert.Equal(t, "Rupee edges higher", resp[0].Title)
	assert.Equal(t, "2026-08-27T09:30:00Z", resp[0].PublishedAt)
}

func TestDisplayHandler_News_UpstreamDown(t *testing.T) {
	r, ratesSvc, ctrl := newDisplayRouter(t)
	defer ctrl.Finish()

	ratesSvc.EXPECT().Headlines(gomock.Any(), "money AND currencies").
		Return(nil, apperror.InternalError(nil))

	w := doJSON(r, http.MethodGet, "/news", nil)

	// Feed outages degrade to an empty list, not an error.
	assert.Equal(t, http.StatusOK, w.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "[]", string(env.Data))
}

func TestDisplayHandler_News_CustomQuery(t *testing.T) {
	r, ratesSvc, ctrl := newDisplayRouter(t)
	defer ctrl.Finish()

	ratesSvc.EXPECT().Headlines(gomock.Any(), "rupee").Return([]domain.Article{}, nil)

	w := doJSON(r, http.MethodGet, "/news?query=rupee", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "[]", string(env.Data))
}
