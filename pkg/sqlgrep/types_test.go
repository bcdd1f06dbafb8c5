package sqlgrep_test

import (
	"errors"
	"testing"
	"time"

	"github.com/vvka-141/sqlgrep/pkg/sqlgrep"
)

func TestScanConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		config    sqlgrep.ScanConfig
		wantError bool
	}{
		{
			name:   "valid config",
			config: sqlgrep.ScanConfig{Pattern: "Ali", DatabaseURI: "sqlite:test.db"},
		},
		{
			name:   "empty pattern is valid",
			config: sqlgrep.ScanConfig{DatabaseURI: "sqlite:test.db"},
		},
		{
			name:      "missing database URI",
			config:    sqlgrep.ScanConfig{Pattern: "x"},
			wantError: true,
		},
		{
			name:      "negative timeout",
			config:    sqlgrep.ScanConfig{DatabaseURI: "sqlite:test.db", Timeout: -time.Second},
			wantError: true,
		},
		{
			name:      "unknown auth method",
			config:    sqlgrep.ScanConfig{DatabaseURI: "sqlite:test.db", AuthMethod: sqlgrep.AuthMethod(42)},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, sqlgrep.ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestParseAuthMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    sqlgrep.AuthMethod
		wantErr bool
	}{
		{"", sqlgrep.AuthMethodStandard, false},
		{"standard", sqlgrep.AuthMethodStandard, false},
		{"aws", sqlgrep.AuthMethodAWSIAM, false},
		{"azure", sqlgrep.AuthMethodAzureEntraID, false},
		{"google", sqlgrep.AuthMethodGoogleIAM, false},
		{"kerberos", sqlgrep.AuthMethodStandard, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := sqlgrep.ParseAuthMethod(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAuthMethod(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseAuthMethod(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestBackend_String(t *testing.T) {
	if got := sqlgrep.BackendPostgreSQL.String(); got != "PostgreSQL" {
		t.Errorf("String() = %q", got)
	}
	if got := sqlgrep.Backend(9).String(); got != "Unknown(9)" {
		t.Errorf("String() = %q", got)
	}
}
