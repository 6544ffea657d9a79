// Package provider implements the data-provider abstraction layer.
// It defines a Provider interface, a Fetcher interface, and a central
// registry that routes earnings-data requests to the appropriate provider
// based on model type.
package provider

import (
	"context"
	"fmt"
	"time"
)

// ProviderCredential declares one credential a provider needs before it
// can serve requests.
type ProviderCredential struct {
	Name        string `json:"name"`        // credential key, e.g., "api_key"
	Description string `json:"description"` // where to obtain it
	Required    bool   `json:"required"`
	EnvVar      string `json:"env_var"` // e.g., "FMP_API_KEY"
}

// ProviderInfo is the static metadata a provider advertises through the
// registry: identity, credential requirements, and model coverage.
type ProviderInfo struct {
	Name        string               `json:"name"` // e.g., "fmp", "yfinance"
	Description string               `json:"description"`
	Website     string               `json:"website"`
	Credentials []ProviderCredential `json:"credentials"`
	Models      []ModelType          `json:"models"`
}

// Provider is one upstream data source. A provider owns a set of fetchers,
// one per model type it can serve, and is addressed by name through the
// registry.
type Provider interface {
	// Info returns the provider's static metadata.
	Info() ProviderInfo

	// Init receives credentials once, before registration. Providers with
	// required credentials reject empty or missing values here so a
	// misconfigured provider never enters the registry.
	Init(credentials map[string]string) error

	// Fetcher returns the fetcher for a model type, or nil when the
	// provider does not cover it.
	Fetcher(model ModelType) Fetcher

	// SupportedModels lists every model type this provider covers.
	SupportedModels() []ModelType

	// Ping checks that the upstream endpoint is reachable with the
	// configured credentials.
	Ping(ctx context.Context) error
}

// QueryParams is the generic query parameter map passed to fetchers.
// Common keys include:
//   - "symbol"     : ticker symbol (e.g., "AAPL")
//   - "start_date" : start date (YYYY-MM-DD)
//   - "end_date"   : end date
//   - "limit"      : max results
//   - "provider"   : override provider name
//
// Each fetcher defines which keys it requires/supports.
type QueryParams map[string]string

// QueryParamKey constants for commonly used query parameters.
const (
	ParamSymbol    = "symbol"
	ParamStartDate = "start_date"
	ParamEndDate   = "end_date"
	ParamLimit     = "limit"
	ParamProvider  = "provider"
)

// FetchResult is a fetched payload plus its provenance: which provider
// served it, for which model, when, and whether it came from cache.
type FetchResult struct {
	Provider  string    `json:"provider"`
	Model     ModelType `json:"model"`
	Data      any       `json:"data"` // typed per model, see Fetcher.Fetch
	FetchedAt time.Time `json:"fetched_at"`
	Cached    bool      `json:"cached"`
}

// Fetcher serves a single model type for its provider. It declares the
// parameters it understands so the registry can validate queries before
// any upstream call is made.
type Fetcher interface {
	// ModelType identifies the model this fetcher serves.
	ModelType() ModelType

	// Description is a one-line summary shown in provider listings.
	Description() string

	// RequiredParams lists parameter keys that must be present.
	RequiredParams() []string

	// OptionalParams lists parameter keys the fetcher also understands.
	OptionalParams() []string

	// Fetch retrieves the data. The concrete type of FetchResult.Data
	// depends on the model:
	//   - EarningsSummary  → *models.EarningsSummary
	//   - EarningsCalendar → *models.EarningsCalendar
	//   - EarningsHistory  → []models.EarningsEvent
	//   - CompanyNews      → []models.NewsArticle
	Fetch(ctx context.Context, params QueryParams) (*FetchResult, error)
}

// ErrTickerNotFound is returned when a provider does not recognize the symbol.
var ErrTickerNotFound = fmt.Errorf("ticker not found")

// ErrNoData is returned when a provider recognizes the symbol but has no
// rows for the requested model.
var ErrNoData = fmt.Errorf("no data available")

// ErrProviderNotFound is returned when a requested provider is not registered.
type ErrProviderNotFound struct {
	Name string
}

func (e *ErrProviderNotFound) Error() string {
	return fmt.Sprintf("provider %q not found", e.Name)
}

// ErrModelNotSupported is returned when a provider doesn't support a model type.
type ErrModelNotSupported struct {
	Provider string
	Model    ModelType
}

func (e *ErrModelNotSupported) Error() string {
	return fmt.Sprintf("provider %q does not support model %q", e.Provider, e.Model)
}

// ErrMissingParam is returned when a required query parameter is missing.
type ErrMissingParam struct {
	Param string
}

func (e *ErrMissingParam) Error() string {
	return fmt.Sprintf("missing required parameter %q", e.Param)
}

// ErrInvalidCredentials is returned when provider credentials are invalid.
type ErrInvalidCredentials struct {
	Provider string
	Detail   string
}

func (e *ErrInvalidCredentials) Error() string {
	return fmt.Sprintf("invalid credentials for provider %q: %s", e.Provider, e.Detail)
}

// ValidateParams reports the first required parameter that is missing or
// empty in params.
func ValidateParams(params QueryParams, required []string) error {
	for _, key := range required {
		if params[key] == "" {
			return &ErrMissingParam{Param: key}
		}
	}
	return nil
}
