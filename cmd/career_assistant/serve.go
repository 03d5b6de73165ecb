package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-assistant/internal/config"
	"github.com/jonathan/career-assistant/internal/server"
)

var (
	serveConfigPath string
	servePort       int
	serveModel      string
	serveVerbose    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes session-based REST endpoints for context management, document generation, and SMTP dispatch.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file (generation settings apply to all sessions)")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveModel, "model", "", "Model name (overrides the config file)")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	// Get API key from environment
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	var fileCfg config.Config
	if serveConfigPath != "" {
		loaded, err := config.LoadConfig(serveConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		fileCfg = *loaded
	}

	srv, err := server.New(serverConfig(fileCfg, servePort, apiKey, serveModel, serveVerbose))
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// serverConfig maps the config file's generation settings onto the
// server configuration. The --model flag wins over the file.
func serverConfig(fileCfg config.Config, port int, apiKey, model string, verbose bool) server.Config {
	if model == "" {
		model = fileCfg.Model
	}
	return server.Config{
		Port:              port,
		APIKey:            apiKey,
		Model:             model,
		Verbose:           verbose,
		MaxRetries:        fileCfg.MaxRetries,
		GenerationTimeout: time.Duration(fileCfg.GenerationTimeoutSec) * time.Second,
		BaseBackoff:       time.Duration(fileCfg.RetryBaseBackoffMS) * time.Millisecond,
		BackoffMultiplier: fileCfg.BackoffMultiplier,
		ResumeCharCap:     fileCfg.ResumeCharCap,
	}
}
