// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Candidate info
	Name  string `json:"name,omitempty"`  // Candidate full name
	Email string `json:"email,omitempty"` // Candidate email
	Phone string `json:"phone,omitempty"` // Candidate phone

	// Generation
	APIKey               string  `json:"api_key,omitempty"`                // Gemini API key
	Model                string  `json:"model,omitempty"`                  // Model name
	ResumeCharCap        int     `json:"resume_char_cap,omitempty"`        // Max resume characters per request
	MaxRetries           int     `json:"max_retries,omitempty"`            // Retry budget for transient failures
	RetryBaseBackoffMS   int     `json:"retry_base_backoff_ms,omitempty"`  // First backoff delay in milliseconds
	BackoffMultiplier    float64 `json:"backoff_multiplier,omitempty"`     // Backoff growth factor
	GenerationTimeoutSec int     `json:"generation_timeout_sec,omitempty"` // Per-call timeout in seconds

	// Dispatch
	SenderEmail string `json:"sender_email,omitempty"` // Sender address for SMTP dispatch
	SenderName  string `json:"sender_name,omitempty"`  // Display name on outgoing mail

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.ResumeCharCap < 0 {
		return fmt.Errorf("config error: 'resume_char_cap' must be non-negative")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("config error: 'max_retries' must be non-negative")
	}
	if c.RetryBaseBackoffMS < 0 {
		return fmt.Errorf("config error: 'retry_base_backoff_ms' must be non-negative")
	}
	if c.BackoffMultiplier != 0 && c.BackoffMultiplier < 1 {
		return fmt.Errorf("config error: 'backoff_multiplier' must be at least 1")
	}
	if c.GenerationTimeoutSec < 0 {
		return fmt.Errorf("config error: 'generation_timeout_sec' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Name == "" {
		result.Name = defaults.Name
	}
	if result.Email == "" {
		result.Email = defaults.Email
	}
	if result.Phone == "" {
		result.Phone = defaults.Phone
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.SenderEmail == "" {
		result.SenderEmail = defaults.SenderEmail
	}
	if result.SenderName == "" {
		result.SenderName = defaults.SenderName
	}

	// Numeric fields: use default if zero
	if result.ResumeCharCap == 0 {
		result.ResumeCharCap = defaults.ResumeCharCap
	}
	if result.MaxRetries == 0 {
		result.MaxRetries = defaults.MaxRetries
	}
	if result.RetryBaseBackoffMS == 0 {
		result.RetryBaseBackoffMS = defaults.RetryBaseBackoffMS
	}
	if result.BackoffMultiplier == 0 {
		result.BackoffMultiplier = defaults.BackoffMultiplier
	}
	if result.GenerationTimeoutSec == 0 {
		result.GenerationTimeoutSec = defaults.GenerationTimeoutSec
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
