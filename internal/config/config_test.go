package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"name": "Test User",
		"email": "test@example.com",
		"api_key": "key-123",
		"max_retries": 5,
		"generation_timeout_sec": 30,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "Test User", cfg.Name)
	assert.Equal(t, "test@example.com", cfg.Email)
	assert.Equal(t, "key-123", cfg.APIKey)
	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Equal(t, 30, cfg.GenerationTimeoutSec)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))

	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")

	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"empty config is valid", Config{}, ""},
		{"valid full config", Config{MaxRetries: 3, BackoffMultiplier: 2.0, GenerationTimeoutSec: 60}, ""},
		{"negative retries", Config{MaxRetries: -1}, "max_retries"},
		{"negative char cap", Config{ResumeCharCap: -1}, "resume_char_cap"},
		{"negative backoff", Config{RetryBaseBackoffMS: -1}, "retry_base_backoff_ms"},
		{"multiplier below one", Config{BackoffMultiplier: 0.5}, "backoff_multiplier"},
		{"negative timeout", Config{GenerationTimeoutSec: -1}, "generation_timeout_sec"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Name: "Set Name", MaxRetries: 2}
	defaults := Config{
		Name:                 "Default Name",
		Email:                "default@example.com",
		Model:                "gemini-2.5-flash",
		MaxRetries:           3,
		GenerationTimeoutSec: 60,
	}

	merged := cfg.MergeWithDefaults(defaults)

	// Set fields win.
	assert.Equal(t, "Set Name", merged.Name)
	assert.Equal(t, 2, merged.MaxRetries)
	// Unset fields fall back.
	assert.Equal(t, "default@example.com", merged.Email)
	assert.Equal(t, "gemini-2.5-flash", merged.Model)
	assert.Equal(t, 60, merged.GenerationTimeoutSec)
	// Originals are untouched.
	assert.Equal(t, "", cfg.Email)
}
