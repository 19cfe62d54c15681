package aici

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, DefaultBaseURL)
	}
	if cfg.LogLevel != LogDeltas {
		t.Errorf("LogLevel = %d, want %d", cfg.LogLevel, LogDeltas)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestConfig_LoadFromEnv(t *testing.T) {
	t.Setenv("AICI_BASE_URL", "http://example.com:9000/v1/")
	t.Setenv("AICI_LOG_LEVEL", "2")
	t.Setenv("AICI_TIMEOUT", "90s")

	cfg := FromEnv()

	if cfg.BaseURL != "http://example.com:9000/v1/" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.LogLevel != LogDiagnostics {
		t.Errorf("LogLevel = %d, want %d", cfg.LogLevel, LogDiagnostics)
	}
	if cfg.Timeout != 90*time.Second {
		t.Errorf("Timeout = %v, want 90s", cfg.Timeout)
	}
}

func TestConfig_LoadFromEnv_IgnoresInvalid(t *testing.T) {
	t.Setenv("AICI_LOG_LEVEL", "loud")
	t.Setenv("AICI_TIMEOUT", "soon")

	cfg := DefaultConfig()
	cfg.LoadFromEnv()

	if cfg.LogLevel != LogDeltas {
		t.Errorf("LogLevel = %d, want default preserved", cfg.LogLevel)
	}
	if cfg.Timeout != 0 {
		t.Errorf("Timeout = %v, want default preserved", cfg.Timeout)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"zero value", Config{}, false},
		{"default", DefaultConfig(), false},
		{"log level too high", Config{LogLevel: 3}, true},
		{"log level negative", Config{LogLevel: -1}, true},
		{"negative timeout", Config{Timeout: -time.Second}, true},
		{"relative base url", Config{BaseURL: "localhost:8080/v1/"}, true},
		{"absolute base url", Config{BaseURL: "https://aici.internal/v1"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_NormalizedAddsTrailingSlash(t *testing.T) {
	cfg := Config{BaseURL: "http://example.com/v1"}.normalized()

	if cfg.BaseURL != "http://example.com/v1/" {
		t.Errorf("BaseURL = %q, want trailing slash", cfg.BaseURL)
	}
}

func TestConfig_With(t *testing.T) {
	cfg := DefaultConfig().WithBaseURL("http://x/v1/").WithLogLevel(LogSilent)

	if cfg.BaseURL != "http://x/v1/" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.LogLevel != LogSilent {
		t.Errorf("LogLevel = %d, want %d", cfg.LogLevel, LogSilent)
	}
}
