package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"currency-wallet/internal/core/domain"
	"currency-wallet/internal/core/ports"
	"currency-wallet/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// RatesServiceImpl implements ports.RatesService. Both reads sit on the
// display path only, so results are served from a short Redis cache;
// the conversion path in the wallet service never reads this cache.
type RatesServiceImpl struct {
	fxClient   ports.ExchangeRateClient
	newsClient ports.NewsClient
	cache      ports.Cache
	ratesTTL   time.Duration
	newsTTL    time.Duration
	log        zerolog.Logger
}

// NewRatesService creates a new RatesServiceImpl.
func NewRatesService(
	fxClient ports.ExchangeRateClient,
	newsClient ports.NewsClient,
	cache ports.Cache,
	ratesTTL time.Duration,
	newsTTL time.Duration,
	log zerolog.Logger,
) *RatesServiceImpl {
	return &RatesServiceImpl{
		fxClient:   fxClient,
		newsClient: newsClient,
		cache:      cache,
		ratesTTL:   ratesTTL,
		newsTTL:    newsTTL,
		log:        log,
	}
}

// DisplayRates returns the rate table for the given base currency,
// cached briefly to spare the upstream.
func (s *RatesServiceImpl) DisplayRates(ctx context.Context, base string) (map[string]decimal.Decimal, error) {
	base = strings.ToUpper(strings.TrimSpace(base))
	if base == "" {
		return nil, apperror.Validation("base currency is required")
	}

	cacheKey := "rates:" + base
	cached, err := s.cache.Get(ctx, cacheKey)
	if err != nil {
		s.log.Warn().Err(err).Str("base", base).Msg("rates cache read failed")
	}
	if cached != nil {
		var rates map[string]decimal.Decimal
		if err := json.Unmarshal(cached, &rates); err == nil {
			return rates, nil
		}
		s.log.Warn().Str("base", base).Msg("discarding unreadable cached rates")
	}

	rates, err := s.fxClient.GetRates(ctx, base)
	if err != nil {
		return nil, apperror.ErrRateLookupFailed(fmt.Errorf("fetch rates: %w", err))
	}

	if payload, err := json.Marshal(rates); err == nil {
		if err := s.cache.Set(ctx, cacheKey, payload, s.ratesTTL); err != nil {
			s.log.Warn().Err(err).Str("base", base).Msg("rates cache write failed")
		}
	}

	return rates, nil
}

// Headlines returns cached currency news articles for the home feed.
func (s *RatesServiceImpl) Headlines(ctx context.Context, query string) ([]domain.Article, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperror.Validation("query is required")
	}

	cacheKey := "news:" + query
	cached, err := s.cache.Get(ctx, cacheKey)
	if err != nil {
		s.log.Warn().Err(err).Msg("news cache read failed")
	}
	if cached != nil {
		var articles []domain.Article
		if err := json.Unmarshal(cached, &articles); err == nil {
			return articles, nil
		}
		s.log.Warn().Msg("discarding unreadable cached articles")
	}

	articles, err := s.newsClient.Headlines(ctx, query)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("fetch headlines: %w", err))
	}

	if payload, err := json.Marshal(articles); err == nil {
		if err := s.cache.Set(ctx, cacheKey, payload, s.newsTTL); err != nil {
			s.log.Warn().Err(err).Msg("news cache write failed")
		}
	}

	return articles, nil
}
