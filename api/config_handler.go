// Package api — configuration endpoints.
package api

import (
	"net/http"

	"github.com/seenimoa/earncal/internal/config"
)

// ConfigResponse is the JSON payload for GET /api/v1/config. Credentials are
// reduced to a set/not-set flag so the endpoint never echoes a secret.
type ConfigResponse struct {
	ProviderDefault string   `json:"provider_default"`
	FMPKeySet       bool     `json:"fmp_key_set"`
	FetchDelay      string   `json:"fetch_delay"`
	OutputFile      string   `json:"output_file"`
	ServerAddr      string   `json:"server_addr"`
	CORSOrigins     []string `json:"cors_origins"`
	LogLevel        string   `json:"log_level"`
	LogFormat       string   `json:"log_format"`
}

// handleGetConfig returns the sanitized running configuration.
func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: ConfigResponse{
			ProviderDefault: s.cfg.Provider.Default,
			FMPKeySet:       s.cfg.Provider.FMPAPIKey != "",
			FetchDelay:      s.cfg.Fetch.Delay.String(),
			OutputFile:      s.cfg.Output.File,
			ServerAddr:      s.cfg.Server.Addr,
			CORSOrigins:     s.cfg.Server.CORSOrigins,
			LogLevel:        s.cfg.Logging.Level,
			LogFormat:       s.cfg.Logging.Format,
		},
	})
}

// handleGetConfigKeys returns the masked status of provider API keys.
func (s *Server) handleGetConfigKeys(w http.ResponseWriter, r *http.Request) {
	keys := config.CheckAPIKeys(s.cfg)
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    keys,
	})
}
