package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/seenimoa/earncal/internal/config"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level   string
		debugOn bool
		infoOn  bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"warn", false, false},
		{"error", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger, err := New(config.LoggingConfig{Level: tt.level, Format: "console"})
			if err != nil {
				t.Fatalf("New(%q) error: %v", tt.level, err)
			}
			if got := logger.Core().Enabled(zapcore.DebugLevel); got != tt.debugOn {
				t.Errorf("debug enabled = %v, want %v", got, tt.debugOn)
			}
			if got := logger.Core().Enabled(zapcore.InfoLevel); got != tt.infoOn {
				t.Errorf("info enabled = %v, want %v", got, tt.infoOn)
			}
		})
	}
}

func TestNewFormats(t *testing.T) {
	for _, format := range []string{"", "console", "json"} {
		if _, err := New(config.LoggingConfig{Level: "info", Format: format}); err != nil {
			t.Errorf("New(format=%q) error: %v", format, err)
		}
	}
}

func TestNewInvalidLevel(t *testing.T) {
	if _, err := New(config.LoggingConfig{Level: "loud", Format: "console"}); err == nil {
		t.Fatal("expected error for unknown level, got nil")
	}
}

func TestNewInvalidFormat(t *testing.T) {
	if _, err := New(config.LoggingConfig{Level: "info", Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format, got nil")
	}
}
