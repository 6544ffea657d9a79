package provider

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/seenimoa/earncal/internal/infra"
)

// Defaults applied by NewBaseFetcher. Earnings data moves slowly, so a
// few minutes of caching is safe; the rate limit keeps batch runs polite
// toward free upstream endpoints.
const (
	defaultCacheTTL   = 5 * time.Minute
	defaultRateLimit  = 10
	defaultRateWindow = time.Second
)

// BaseFetcher carries the plumbing every fetcher needs: model identity,
// parameter declarations, a response cache, and a rate limiter. Concrete
// fetchers embed it and implement only Fetch.
type BaseFetcher struct {
	model       ModelType
	description string
	required    []string
	optional    []string
	cache       *infra.Cache
	limiter     *infra.RateLimiter
}

// NewBaseFetcher builds a fetcher base with the default cache and limit.
func NewBaseFetcher(model ModelType, desc string, required, optional []string) BaseFetcher {
	return NewBaseFetcherWithOpts(model, desc, required, optional,
		defaultCacheTTL, defaultRateLimit, defaultRateWindow)
}

// NewBaseFetcherWithOpts builds a fetcher base with an explicit cache TTL
// and rate limit, for endpoints that are slower-moving or stricter than
// the defaults assume.
func NewBaseFetcherWithOpts(model ModelType, desc string, required, optional []string, cacheTTL time.Duration, rateLimit int, rateWindow time.Duration) BaseFetcher {
	return BaseFetcher{
		model:       model,
		description: desc,
		required:    required,
		optional:    optional,
		cache:       infra.NewCache(cacheTTL),
		limiter:     infra.NewRateLimiter(rateLimit, rateWindow),
	}
}

func (b *BaseFetcher) ModelType() ModelType     { return b.model }
func (b *BaseFetcher) Description() string      { return b.description }
func (b *BaseFetcher) RequiredParams() []string { return b.required }
func (b *BaseFetcher) OptionalParams() []string { return b.optional }

// CacheGet looks up a previously fetched value.
func (b *BaseFetcher) CacheGet(key string) (any, bool) {
	return b.cache.Get(key)
}

// CacheSet stores a fetched value under the fetcher's default TTL.
func (b *BaseFetcher) CacheSet(key string, value any) {
	b.cache.Set(key, value)
}

// CacheSetTTL stores a fetched value under an explicit TTL.
func (b *BaseFetcher) CacheSetTTL(key string, value any, ttl time.Duration) {
	b.cache.SetWithTTL(key, value, ttl)
}

// RateLimit blocks until the fetcher may issue another upstream request.
func (b *BaseFetcher) RateLimit(ctx context.Context) error {
	return b.limiter.Wait(ctx)
}

// CacheKey derives a stable cache key from the model and query parameters.
// Parameters are sorted so equivalent queries share an entry. The provider
// override stays out because the same data hangs off whichever provider
// served it, and underscore-prefixed params stay out because they carry
// injected credentials, not query identity.
func CacheKey(model ModelType, params QueryParams) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if k == ParamProvider || strings.HasPrefix(k, "_") {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(string(model))
	for _, k := range keys {
		sb.WriteByte(':')
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(params[k])
	}
	return sb.String()
}

// BaseProvider implements the metadata and bookkeeping half of Provider.
// Concrete providers embed it, register their fetchers, and override Ping.
type BaseProvider struct {
	info        ProviderInfo
	fetchers    map[ModelType]Fetcher
	credentials map[string]string
}

// NewBaseProvider builds the provider base from static metadata.
func NewBaseProvider(name, description, website string, creds []ProviderCredential) BaseProvider {
	return BaseProvider{
		info: ProviderInfo{
			Name:        name,
			Description: description,
			Website:     website,
			Credentials: creds,
		},
		fetchers:    make(map[ModelType]Fetcher),
		credentials: make(map[string]string),
	}
}

func (bp *BaseProvider) Info() ProviderInfo { return bp.info }

// Init stores the supplied credentials after checking that every required
// one is present and non-empty.
func (bp *BaseProvider) Init(credentials map[string]string) error {
	for _, cred := range bp.info.Credentials {
		if !cred.Required {
			continue
		}
		if credentials[cred.Name] == "" {
			return &ErrInvalidCredentials{
				Provider: bp.info.Name,
				Detail:   "missing required credential: " + cred.Name,
			}
		}
	}
	bp.credentials = credentials
	return nil
}

func (bp *BaseProvider) Fetcher(model ModelType) Fetcher {
	return bp.fetchers[model]
}

// SupportedModels lists the models with a registered fetcher, sorted so
// listings render the same way on every run.
func (bp *BaseProvider) SupportedModels() []ModelType {
	models := make([]ModelType, 0, len(bp.fetchers))
	for m := range bp.fetchers {
		models = append(models, m)
	}
	sort.Slice(models, func(i, j int) bool { return models[i] < models[j] })
	return models
}

// Ping reports reachability. The base returns nil; providers with a live
// endpoint override it.
func (bp *BaseProvider) Ping(ctx context.Context) error {
	return nil
}

// RegisterFetcher wires a fetcher into the provider and refreshes the
// advertised model list.
func (bp *BaseProvider) RegisterFetcher(f Fetcher) {
	bp.fetchers[f.ModelType()] = f
	bp.info.Models = bp.SupportedModels()
}

// Credential returns a stored credential value, or "" if unset.
func (bp *BaseProvider) Credential(name string) string {
	return bp.credentials[name]
}
