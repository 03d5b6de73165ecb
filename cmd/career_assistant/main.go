// Package main provides the entry point for the career assistant CLI and server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "career_assistant",
	Short: "Career Assistant document generation toolkit",
	Long:  "Career Assistant generates tailored application emails, cover letters, and resume updates from a resume and a target job posting, and can dispatch the result over SMTP.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
