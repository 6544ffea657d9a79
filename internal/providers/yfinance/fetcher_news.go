package yfinance

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/seenimoa/earncal/internal/provider"
	"github.com/seenimoa/earncal/pkg/models"
)

// --- CompanyNews fetcher ---

const defaultNewsLimit = 10

type companyNewsFetcher struct {
	provider.BaseFetcher
	parser *gofeed.Parser
}

func newCompanyNewsFetcher() *companyNewsFetcher {
	return &companyNewsFetcher{
		BaseFetcher: provider.NewBaseFetcherWithOpts(
			provider.ModelCompanyNews,
			"Company news headlines from the Yahoo Finance RSS feed",
			[]string{provider.ParamSymbol},
			[]string{provider.ParamLimit},
			10*time.Minute, 5, time.Second,
		),
		parser: gofeed.NewParser(),
	}
}

func (f *companyNewsFetcher) Fetch(ctx context.Context, params provider.QueryParams) (*provider.FetchResult, error) {
	symbol := params[provider.ParamSymbol]

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

	feedURL := fmt.Sprintf(headlineRSSURL, symbol)
	feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("yfinance news %s: %w", symbol, err)
	}

	articles := buildArticles(symbol, feed, limit)
	if len(articles) == 0 {
		return nil, fmt.Errorf("news %s: %w", symbol, provider.ErrNoData)
	}

	f.CacheSet(cacheKey, articles)
	return newResult(articles), nil
}

// buildArticles converts RSS items into news articles, newest-first as the
// feed delivers them. Items without a parseable publish time are kept with a
// zero timestamp rather than dropped.
func buildArticles(symbol string, feed *gofeed.Feed, limit int) []models.NewsArticle {
	source := "Yahoo Finance"
	if feed.Title != "" {
		source = feed.Title
	}

	articles := make([]models.NewsArticle, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil || item.Title == "" {
			continue
		}
		a := models.NewsArticle{
			Symbol:  symbol,
			Title:   cleanHTML(item.Title),
			URL:     item.Link,
			Source:  source,
			Summary: cleanHTML(item.Description),
		}
		if item.PublishedParsed != nil {
			a.PublishedAt = *item.PublishedParsed
		}
		articles = append(articles, a)
		if len(articles) >= limit {
			break
		}
	}
	return articles
}
