package config

import (
	"testing"

	"github.com/dlanguage-api/internal/constants"

	"github.com/spf13/viper"
)

func TestSetDefaultsUnmarshal(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		t.Fatalf("unmarshal defaults failed: %v", err)
	}
	cfg.Normalize()

	if cfg.Invoice.NumberPrefix != "DLA" {
		t.Fatalf("unexpected invoice prefix: %s", cfg.Invoice.NumberPrefix)
	}
	if cfg.Invoice.NumberMaxRetries != constants.DefaultInvoiceNumberRetry {
		t.Fatalf("unexpected invoice retries: %d", cfg.Invoice.NumberMaxRetries)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Fatalf("unexpected database driver: %s", cfg.Database.Driver)
	}
	if cfg.Queue.Queues[constants.QueueDefault] != 10 {
		t.Fatalf("unexpected default queue weight: %+v", cfg.Queue.Queues)
	}
}

func TestNormalizeFillsInvalidValues(t *testing.T) {
	cfg := &Config{
		Invoice: InvoiceConfig{NumberPrefix: "  ", NumberMaxRetries: -1},
		Email:   EmailConfig{FrontendURL: " https://dlanguage.test/ "},
	}
	cfg.Normalize()

	if cfg.Invoice.NumberPrefix != constants.DefaultInvoiceNumberPrefix {
		t.Fatalf("expected default prefix, got %q", cfg.Invoice.NumberPrefix)
	}
	if cfg.Invoice.NumberMaxRetries != constants.DefaultInvoiceNumberRetry {
		t.Fatalf("expected default retries, got %d", cfg.Invoice.NumberMaxRetries)
	}
	if cfg.Auth.VerificationTokenTTLHours != 24 || cfg.Auth.ResetTokenTTLMinutes != 60 {
		t.Fatalf("expected default token ttl, got %+v", cfg.Auth)
	}
	if cfg.Email.FrontendURL != "https://dlanguage.test" {
		t.Fatalf("unexpected frontend url: %q", cfg.Email.FrontendURL)
	}
}
