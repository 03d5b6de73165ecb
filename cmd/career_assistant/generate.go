package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-assistant/internal/config"
	"github.com/jonathan/career-assistant/internal/extract"
	"github.com/jonathan/career-assistant/internal/fetch"
	"github.com/jonathan/career-assistant/internal/llm"
	"github.com/jonathan/career-assistant/internal/observability"
	"github.com/jonathan/career-assistant/internal/pipeline"
	"github.com/jonathan/career-assistant/internal/prompt"
	"github.com/jonathan/career-assistant/internal/session"
	"github.com/jonathan/career-assistant/internal/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a tailored application document",
	Long: `Builds a session from the given resume and job posting, then runs the
full generation pipeline: snapshot -> build -> generate -> validate.

Supported kinds: email, cover_letter, resume_update, qa, analysis.
Configuration can be loaded from a JSON file using --config; command-line
arguments override config file values.`,
	RunE: runGenerate,
}

var (
	genConfigPath string
	genKind       string
	genResume     string
	genJob        string
	genJobURL     string
	genName       string
	genEmail      string
	genPhone      string
	genAPIKey     string
	genModel      string
	genOutFile    string
	genVerbose    bool

	genTone       string
	genPurpose    string
	genFocus      string
	genQuestion   string
	genManager    string
	genExtra      string
	genInterested string
	genAnalysis   string
)

func init() {
	generateCmd.Flags().StringVar(&genConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	generateCmd.Flags().StringVarP(&genKind, "kind", "k", "", "Document kind: email, cover_letter, resume_update, qa, analysis (required)")
	generateCmd.Flags().StringVarP(&genResume, "resume", "r", "", "Path to resume file (.txt, .pdf, or .docx)")
	generateCmd.Flags().StringVarP(&genJob, "job", "j", "", "Path to job posting text file (mutually exclusive with --job-url)")
	generateCmd.Flags().StringVar(&genJobURL, "job-url", "", "URL to fetch the job posting from (mutually exclusive with --job)")
	generateCmd.Flags().StringVarP(&genName, "name", "n", "", "Candidate name")
	generateCmd.Flags().StringVar(&genEmail, "email", "", "Candidate email")
	generateCmd.Flags().StringVar(&genPhone, "phone", "", "Candidate phone")
	generateCmd.Flags().StringVarP(&genOutFile, "out", "o", "", "Write the generated document to this file (default: stdout)")
	generateCmd.Flags().BoolVarP(&genVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	generateCmd.Flags().StringVar(&genAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	generateCmd.Flags().StringVar(&genModel, "model", "", "Model name (optional)")

	// Kind-specific options
	generateCmd.Flags().StringVar(&genTone, "tone", "", "Writing tone (email, cover_letter)")
	generateCmd.Flags().StringVar(&genPurpose, "purpose", "", "Email purpose (email)")
	generateCmd.Flags().StringVar(&genFocus, "focus", "", "Focus area (resume_update, analysis)")
	generateCmd.Flags().StringVar(&genQuestion, "question", "", "Application question to answer (qa)")
	generateCmd.Flags().StringVar(&genManager, "hiring-manager", "", "Hiring manager name (cover_letter)")
	generateCmd.Flags().StringVar(&genExtra, "additional-context", "", "Extra instructions passed through to generation")
	generateCmd.Flags().StringVar(&genInterested, "why-interested", "", "Why you want this role (cover_letter)")
	generateCmd.Flags().StringVar(&genAnalysis, "analysis", "", "Analysis type (analysis)")

	if err := generateCmd.MarkFlagRequired("kind"); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadMergedConfig(cmd, genConfigPath)
	if err != nil {
		return err
	}

	kind, err := types.ParseKind(genKind)
	if err != nil {
		return err
	}

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	store := session.NewStore()
	store.SetPersonalDetails(types.PersonalDetails{
		FullName: cfg.Name,
		Email:    cfg.Email,
		Phone:    cfg.Phone,
	})

	if err := seedJob(ctx, store, genJob, genJobURL, cfg.Verbose); err != nil {
		return err
	}
	if err := seedResume(store, genResume); err != nil {
		return err
	}

	completer, err := llm.NewGeminiCompleter(ctx, apiKey, cfg.Model)
	if err != nil {
		return fmt.Errorf("failed to create generation client: %w", err)
	}
	defer completer.Close()

	// loadMergedConfig has already filled every generation setting.
	llmCfg := llm.Config{
		Model:             cfg.Model,
		Timeout:           time.Duration(cfg.GenerationTimeoutSec) * time.Second,
		MaxRetries:        cfg.MaxRetries,
		BaseBackoff:       time.Duration(cfg.RetryBaseBackoffMS) * time.Millisecond,
		BackoffMultiplier: cfg.BackoffMultiplier,
	}

	builder := prompt.NewBuilder()
	builder.ResumeCharCap = cfg.ResumeCharCap

	p := pipeline.New(store, builder, llm.NewClient(completer, llmCfg))
	p.Verbose = cfg.Verbose

	result, err := p.Run(ctx, kind, collectOptions())
	if err != nil {
		return err
	}

	if genOutFile != "" {
		if err := os.WriteFile(genOutFile, []byte(result.NormalizedText), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Document written to: %s\n", genOutFile)
	} else {
		fmt.Fprintf(os.Stdout, "\n%s\n", result.NormalizedText)
	}

	if !result.Valid() {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintIssues(result)
	}
	return nil
}

// collectOptions assembles the kind-specific option map from the flags
// that were set. Option validation happens in the request builder.
func collectOptions() map[string]string {
	opts := make(map[string]string)
	for key, value := range map[string]string{
		types.OptionTone:              genTone,
		types.OptionPurpose:           genPurpose,
		types.OptionFocus:             genFocus,
		types.OptionQuestion:          genQuestion,
		types.OptionHiringManager:     genManager,
		types.OptionAdditionalContext: genExtra,
		types.OptionWhyInterested:     genInterested,
		types.OptionAnalysis:          genAnalysis,
	} {
		if value != "" {
			opts[key] = value
		}
	}
	if len(opts) == 0 {
		return nil
	}
	return opts
}

// seedJob loads the job context from a file or a job posting URL.
func seedJob(ctx context.Context, store *session.Store, jobPath, jobURL string, verbose bool) error {
	switch {
	case jobPath != "" && jobURL != "":
		return fmt.Errorf("cannot use --job and --job-url together")
	case jobPath != "":
		content, err := os.ReadFile(jobPath)
		if err != nil {
			return fmt.Errorf("failed to read job file: %w", err)
		}
		store.SetJobDescription(string(content))
	case jobURL != "":
		posting, err := fetch.FetchJobPosting(ctx, jobURL)
		if err != nil {
			return fmt.Errorf("failed to fetch job posting: %w", err)
		}
		if verbose {
			observability.NewPrinter(os.Stdout).PrintJobPosting(posting)
		}
		store.SetJob(posting.Description, posting.Title)
	default:
		return fmt.Errorf("a job posting is required (use --job or --job-url)")
	}
	return nil
}

// seedResume loads the resume, extracting text from PDF or DOCX files
// based on the file extension.
func seedResume(store *session.Store, resumePath string) error {
	if resumePath == "" {
		return fmt.Errorf("a resume is required (use --resume)")
	}
	data, err := os.ReadFile(resumePath)
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}
	format, err := extract.ParseFormat(filepath.Ext(resumePath))
	if err != nil {
		return err
	}
	text, err := extract.Extract(data, format)
	if err != nil {
		return err
	}
	store.SetResume(text)
	return nil
}

// loadMergedConfig loads the optional config file and applies CLI flag
// overrides, flags taking priority over file values.
func loadMergedConfig(cmd *cobra.Command, path string) (config.Config, error) {
	var cfg config.Config
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
	}

	// Only override when the flag was explicitly set
	if cmd.Flags().Changed("name") {
		cfg.Name = genName
	}
	if cmd.Flags().Changed("email") {
		cfg.Email = genEmail
	}
	if cmd.Flags().Changed("phone") {
		cfg.Phone = genPhone
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = genAPIKey
	}
	if cmd.Flags().Changed("model") {
		cfg.Model = genModel
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = genVerbose
	}

	return cfg.MergeWithDefaults(generationDefaults()), nil
}

// generationDefaults mirrors the generation client's built-in policy so
// a partial config file still yields a fully specified run.
func generationDefaults() config.Config {
	def := llm.DefaultConfig()
	return config.Config{
		Model:                def.Model,
		ResumeCharCap:        prompt.DefaultResumeCharCap,
		MaxRetries:           def.MaxRetries,
		RetryBaseBackoffMS:   int(def.BaseBackoff / time.Millisecond),
		BackoffMultiplier:    def.BackoffMultiplier,
		GenerationTimeoutSec: int(def.Timeout / time.Second),
	}
}
