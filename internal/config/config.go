package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/igt-all/docs-cloudneeti/internal/models"
)

// environmentHosts maps the CSPM environment name to its API host.
// The table is fixed; an unknown name is rejected during validation before
// any network call is attempted.
var environmentHosts = map[string]string{
	"dev":   "https://devapi.cloudneeti.com",
	"qa":    "https://qaapi.cloudneeti.com",
	"trial": "https://trialapi.cloudneeti.com",
	"prod":  "https://api.cloudneeti.com",
	"prod1": "https://prod1api.cloudneeti.com",
}

// Environments returns the valid environment names, for flag help text.
func Environments() []string {
	return []string{"dev", "qa", "trial", "prod", "prod1"}
}

// Secrets holds the credential material read from the process environment.
// Values never appear on argv, in logs, or in error messages.
type Secrets struct {
	// ApplicationID is the CSPM API application identifier.
	ApplicationID string `env:"CSPM_APP_ID"`

	// ApplicationSecret is the CSPM API application secret.
	ApplicationSecret string `env:"CSPM_APP_SECRET"`

	// SubscriptionKey is sent as Ocp-Apim-Subscription-Key on every call.
	SubscriptionKey string `env:"CSPM_SUBSCRIPTION_KEY"`
}

// Config is the fully resolved input for one export run: flag values plus
// environment-sourced secrets.
type Config struct {
	// Environment selects the API host (see environmentHosts).
	Environment string

	// APIHost is resolved from Environment during Validate.
	APIHost string

	// LicenseID is the license UUID whose accounts are exported.
	LicenseID string

	// AccountIDs is the optional explicit account list. When empty the run
	// resolves the full list via the onboarding API.
	AccountIDs []string

	// BenchmarkID names the compliance ruleset to query. Defaults to "CSBP".
	BenchmarkID string

	// OutputPath is the CSV file the run appends to.
	OutputPath string

	// PageSize is the failed-assets page size. Defaults to 1000.
	PageSize int

	// HTTPTimeout bounds each individual API call.
	HTTPTimeout time.Duration

	Secrets Secrets
}

// LoadSecrets reads credential material from the environment, loading a .env
// file first when one exists in the working directory.
func LoadSecrets() (Secrets, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return Secrets{}, fmt.Errorf("load .env: %w", err)
		}
	}

	var s Secrets
	if err := env.Parse(&s); err != nil {
		return Secrets{}, fmt.Errorf("parse environment: %w", err)
	}
	return s, nil
}

// Credentials returns the API application identity used for token minting.
func (c *Config) Credentials() models.Credentials {
	return models.Credentials{
		ApplicationID: c.Secrets.ApplicationID,
		Secret:        c.Secrets.ApplicationSecret,
	}
}

// Validate checks the run inputs and resolves APIHost from Environment.
// It is called once, before any network activity.
func (c *Config) Validate() error {
	host, ok := environmentHosts[c.Environment]
	if !ok {
		return fmt.Errorf("unknown environment %q (valid: %v)", c.Environment, Environments())
	}
	c.APIHost = host

	if _, err := uuid.Parse(c.LicenseID); err != nil {
		return fmt.Errorf("license id %q is not a valid UUID", c.LicenseID)
	}
	for _, id := range c.AccountIDs {
		if _, err := uuid.Parse(id); err != nil {
			return fmt.Errorf("account id %q is not a valid UUID", id)
		}
	}

	if c.BenchmarkID == "" {
		c.BenchmarkID = "CSBP"
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page size must be positive, got %d", c.PageSize)
	}
	if c.OutputPath == "" {
		return fmt.Errorf("output path must not be empty")
	}

	if c.Secrets.ApplicationID == "" {
		return fmt.Errorf("CSPM_APP_ID is not set")
	}
	if c.Secrets.ApplicationSecret == "" {
		return fmt.Errorf("CSPM_APP_SECRET is not set")
	}
	if c.Secrets.SubscriptionKey == "" {
		return fmt.Errorf("CSPM_SUBSCRIPTION_KEY is not set")
	}
	return nil
}
