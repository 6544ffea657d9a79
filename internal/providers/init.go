// Package providers wires the concrete data providers into a registry.
package providers

import (
	"fmt"

	"github.com/seenimoa/earncal/internal/provider"
	"github.com/seenimoa/earncal/internal/providers/fmp"
	"github.com/seenimoa/earncal/internal/providers/yfinance"
)

// Options controls which providers get registered and which one answers
// by default.
type Options struct {
	// FMPAPIKey enables the FMP provider when non-empty.
	FMPAPIKey string
	// Default names the provider preferred for every model it supports.
	// Empty keeps the registration-order default (yfinance).
	Default string
}

// NewRegistry builds a registry with all available providers. YFinance is
// always registered; FMP only when an API key is supplied.
func NewRegistry(opts Options) (*provider.Registry, error) {
	reg := provider.NewRegistry()

	yf := yfinance.New()
	if err := yf.Init(nil); err != nil {
		return nil, err
	}
	if err := reg.Register(yf); err != nil {
		return nil, err
	}

	if opts.FMPAPIKey != "" {
		fp := fmp.New()
		if err := fp.Init(map[string]string{"api_key": opts.FMPAPIKey}); err != nil {
			return nil, err
		}
		if err := reg.Register(fp); err != nil {
			return nil, err
		}
	}

	if opts.Default != "" {
		p, err := reg.Get(opts.Default)
		if err != nil {
			return nil, fmt.Errorf("default provider: %w", err)
		}
		for _, m := range p.SupportedModels() {
			if err := reg.SetDefault(m, opts.Default); err != nil {
				return nil, err
			}
		}
	}

	return reg, nil
}
