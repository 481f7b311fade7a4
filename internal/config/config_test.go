package config

import (
	"strings"
	"testing"
	"time"
)

// validConfig returns a Config that passes Validate; tests mutate one field
// at a time to exercise each rule.
func validConfig() Config {
	return Config{
		Environment: "prod",
		LicenseID:   "2f5b0b06-6c3e-4b44-9f6d-9c6a14ab4c01",
		BenchmarkID: "CSBP",
		OutputPath:  "failed_asset-test.csv",
		PageSize:    1000,
		HTTPTimeout: 60 * time.Second,
		Secrets: Secrets{
			ApplicationID:     "app-id",
			ApplicationSecret: "app-secret",
			SubscriptionKey:   "sub-key",
		},
	}
}

func TestValidate_ResolvesAPIHost(t *testing.T) {
	cases := map[string]string{
		"dev":   "https://devapi.cloudneeti.com",
		"qa":    "https://qaapi.cloudneeti.com",
		"trial": "https://trialapi.cloudneeti.com",
		"prod":  "https://api.cloudneeti.com",
		"prod1": "https://prod1api.cloudneeti.com",
	}
	for envName, wantHost := range cases {
		cfg := validConfig()
		cfg.Environment = envName
		if err := cfg.Validate(); err != nil {
			t.Fatalf("Validate(%q) returned error: %v", envName, err)
		}
		if cfg.APIHost != wantHost {
			t.Errorf("environment %q resolved to %q, want %q", envName, cfg.APIHost, wantHost)
		}
	}
}

func TestValidate_UnknownEnvironment(t *testing.T) {
	cfg := validConfig()
	cfg.Environment = "staging"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate accepted unknown environment")
	}
	if !strings.Contains(err.Error(), "staging") {
		t.Errorf("error should name the bad environment; got: %v", err)
	}
}

func TestValidate_BadLicenseID(t *testing.T) {
	cfg := validConfig()
	cfg.LicenseID = "not-a-uuid"
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate accepted malformed license id")
	}
}

func TestValidate_BadAccountID(t *testing.T) {
	cfg := validConfig()
	cfg.AccountIDs = []string{"9d1b1c02-7f51-4f8e-a2ce-0a2f0c8e8f10", "bogus"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate accepted malformed account id")
	}
}

func TestValidate_DefaultsBenchmark(t *testing.T) {
	cfg := validConfig()
	cfg.BenchmarkID = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if cfg.BenchmarkID != "CSBP" {
		t.Errorf("empty benchmark id defaulted to %q, want CSBP", cfg.BenchmarkID)
	}
}

func TestValidate_MissingSecrets(t *testing.T) {
	for _, clear := range []func(*Config){
		func(c *Config) { c.Secrets.ApplicationID = "" },
		func(c *Config) { c.Secrets.ApplicationSecret = "" },
		func(c *Config) { c.Secrets.SubscriptionKey = "" },
	} {
		cfg := validConfig()
		clear(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Error("Validate accepted config with a missing secret")
		}
	}
}

func TestValidate_RejectsZeroPageSize(t *testing.T) {
	cfg := validConfig()
	cfg.PageSize = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate accepted zero page size")
	}
}

func TestLoadSecrets_FromEnvironment(t *testing.T) {
	t.Setenv("CSPM_APP_ID", "app")
	t.Setenv("CSPM_APP_SECRET", "secret")
	t.Setenv("CSPM_SUBSCRIPTION_KEY", "key")

	s, err := LoadSecrets()
	if err != nil {
		t.Fatalf("LoadSecrets returned error: %v", err)
	}
	if s.ApplicationID != "app" || s.ApplicationSecret != "secret" || s.SubscriptionKey != "key" {
		t.Errorf("LoadSecrets returned %+v", s)
	}
}
