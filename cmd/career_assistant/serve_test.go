package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/career-assistant/internal/config"
)

func TestServerConfig_ThreadsGenerationSettings(t *testing.T) {
	fileCfg := config.Config{
		Model:                "gemini-2.5-pro",
		ResumeCharCap:        5000,
		MaxRetries:           5,
		RetryBaseBackoffMS:   250,
		BackoffMultiplier:    1.5,
		GenerationTimeoutSec: 90,
	}

	cfg := serverConfig(fileCfg, 9090, "key", "", true)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "key", cfg.APIKey)
	assert.Equal(t, "gemini-2.5-pro", cfg.Model)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Equal(t, 90*time.Second, cfg.GenerationTimeout)
	assert.Equal(t, 250*time.Millisecond, cfg.BaseBackoff)
	assert.Equal(t, 1.5, cfg.BackoffMultiplier)
	assert.Equal(t, 5000, cfg.ResumeCharCap)
}

func TestServerConfig_ModelFlagWins(t *testing.T) {
	fileCfg := config.Config{Model: "gemini-2.5-pro"}

	cfg := serverConfig(fileCfg, 8080, "key", "gemini-2.5-flash", false)

	assert.Equal(t, "gemini-2.5-flash", cfg.Model)
}
