package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-assistant/internal/fetch"
	"github.com/jonathan/career-assistant/internal/observability"
)

var fetchJobCmd = &cobra.Command{
	Use:   "fetch-job",
	Short: "Fetch and parse a job posting from a URL",
	Long: `Fetches a job posting page, detects the job board (LinkedIn, Indeed,
Greenhouse, Lever, or generic), and extracts the title, company, location,
and description text.`,
	RunE: runFetchJob,
}

var (
	fetchURL     string
	fetchOutFile string
	fetchAsJSON  bool
)

func init() {
	fetchJobCmd.Flags().StringVarP(&fetchURL, "url", "u", "", "Job posting URL (required)")
	fetchJobCmd.Flags().StringVarP(&fetchOutFile, "out", "o", "", "Write the description text to this file")
	fetchJobCmd.Flags().BoolVar(&fetchAsJSON, "json", false, "Print the full posting as JSON")

	if err := fetchJobCmd.MarkFlagRequired("url"); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(fetchJobCmd)
}

func runFetchJob(_ *cobra.Command, _ []string) error {
	posting, err := fetch.FetchJobPosting(context.Background(), fetchURL)
	if err != nil {
		return err
	}

	if fetchAsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(posting); err != nil {
			return fmt.Errorf("failed to encode posting: %w", err)
		}
	} else {
		observability.NewPrinter(os.Stdout).PrintJobPosting(posting)
	}

	if fetchOutFile != "" {
		if err := os.WriteFile(fetchOutFile, []byte(posting.Description), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Description written to: %s\n", fetchOutFile)
	}
	return nil
}
