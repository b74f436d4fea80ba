// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"testing"
	"time"
)

func TestParseFlags_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != ":memory:" {
		t.Errorf("expected in-memory DSN, got %q", cfg.DatabaseURL)
	}
	if cfg.SeedPath != "data/hubs.json" {
		t.Errorf("expected default seed path, got %q", cfg.SeedPath)
	}
	if cfg.AdminPassword != "commonkind" {
		t.Errorf("expected demo admin password default, got %q", cfg.AdminPassword)
	}
	if cfg.AdminSecret != "" {
		t.Errorf("expected no reset secret by default, got %q", cfg.AdminSecret)
	}
	if cfg.AITimeout != DefaultAITimeout {
		t.Errorf("expected default AI timeout %v, got %v", DefaultAITimeout, cfg.AITimeout)
	}
}

func TestParseFlags_EnvVars(t *testing.T) {
	os.Setenv("PORT", "9000")
	os.Setenv("ADMIN_PASSWORD", "hunter2")
	os.Setenv("ADMIN_SECRET", "reset-me")
	os.Setenv("AI_TIMEOUT_SECONDS", "20")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.AdminPassword != "hunter2" {
		t.Errorf("expected env admin password, got %q", cfg.AdminPassword)
	}
	if cfg.AdminSecret != "reset-me" {
		t.Errorf("expected env admin secret, got %q", cfg.AdminSecret)
	}
	if cfg.AITimeout != 20*time.Second {
		t.Errorf("expected 20s AI timeout, got %v", cfg.AITimeout)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	os.Setenv("PORT", "9000")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-p", "8081", "-admin-password", "cli-pass"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8081 {
		t.Errorf("CLI should override env: expected 8081, got %d", cfg.Port)
	}
	if cfg.AdminPassword != "cli-pass" {
		t.Errorf("CLI should override env: expected cli-pass, got %q", cfg.AdminPassword)
	}
}

func TestParseFlags_AITimeoutClamped(t *testing.T) {
	os.Clearenv()

	tests := []struct {
		name string
		sec  string
		want time.Duration
	}{
		{"below floor", "5", MinAITimeout},
		{"above ceiling", "60", MaxAITimeout},
		{"in range", "25", 25 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseFlags([]string{"-ai-timeout", tt.sec})
			if err != nil {
				t.Fatal(err)
			}
			if cfg.AITimeout != tt.want {
				t.Errorf("AI timeout = %v, want %v", cfg.AITimeout, tt.want)
			}
		})
	}
}

func TestParseFlags_InvalidPort(t *testing.T) {
	os.Setenv("PORT", "not-a-number")
	defer os.Clearenv()

	if _, err := ParseFlags([]string{}); err == nil {
		t.Error("expected error for invalid PORT env variable")
	}
}
