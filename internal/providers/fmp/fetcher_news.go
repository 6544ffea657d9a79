package fmp

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/seenimoa/earncal/internal/provider"
	"github.com/seenimoa/earncal/pkg/models"
)

// --- CompanyNews fetcher ---

const defaultNewsLimit = 10

type companyNewsFetcher struct {
	provider.BaseFetcher
}

func newCompanyNewsFetcher() *companyNewsFetcher {
	return &companyNewsFetcher{
		BaseFetcher: provider.NewBaseFetcherWithOpts(
			provider.ModelCompanyNews,
			"Company news articles from the FMP stock news endpoint",
			[]string{provider.ParamSymbol},
			[]string{provider.ParamLimit},
			10*time.Minute, 4, time.Second,
		),
	}
}

func (f *companyNewsFetcher) Fetch(ctx context.Context, params provider.QueryParams) (*provider.FetchResult, error) {
	symbol := params[provider.ParamSymbol]
	apiKey := params["_fmp_api_key"]

	limit := defaultNewsLimit
	if s := params[provider.ParamLimit]; s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = n
		}
	}

	cacheKey := provider.CacheKey(f.ModelType(), params)
	if cached, ok := f.CacheGet(cacheKey); ok {
		return newCachedResult(cached), nil
	}
	if err := f.RateLimit(ctx); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/stock_news?tickers=%s&limit=%d", symbol, limit)
	var rows []fmpStockNews
	if err := fetchFMPJSON(ctx, path, apiKey, &rows); err != nil {
		return nil, fmt.Errorf("fmp stock news %s: %w", symbol, err)
	}

	articles := buildNews(symbol, rows)
	if len(articles) == 0 {
		return nil, fmt.Errorf("news %s: %w", symbol, provider.ErrNoData)
	}

	f.CacheSet(cacheKey, articles)
	return newResult(articles), nil
}

// buildNews converts FMP news rows, skipping entries without a title.
func buildNews(symbol string, rows []fmpStockNews) []models.NewsArticle {
	articles := make([]models.NewsArticle, 0, len(rows))
	for _, r := range rows {
		if r.Title == "" {
			continue
		}
		a := models.NewsArticle{
			Symbol:  symbol,
			Title:   r.Title,
			URL:     r.URL,
			Source:  r.Site,
			Summary: r.Text,
		}
		if t, err := time.Parse("2006-01-02 15:04:05", r.PublishedDate); err == nil {
			a.PublishedAt = t
		}
		articles = append(articles, a)
	}
	return articles
}
