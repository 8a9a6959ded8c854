package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobscout/internal/browser"
	"github.com/jonathan/jobscout/internal/config"
	"github.com/jonathan/jobscout/internal/pipeline"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full search pipeline end-to-end",
	Long: `Orchestrates the entire flow: harvest job links -> extract postings -> rank against resume -> write shortlist -> optionally apply.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runPipelineCmd,
}

var (
	runConfigPath    string
	runResume        string
	runKeywords      string
	runLocation      string
	runCoverFile     string
	runCoverText     string
	runPhone         string
	runCollect       int
	runTop           int
	runProfile       string
	runProfileDir    string
	runHeadless      bool
	runApply         bool
	runAutoSubmit    bool
	runOut           string
	runKeywordConfig string
	runVerbose       bool
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runResume, "resume", "r", "", "Path to resume document (pdf, docx, or plain text)")
	runCommand.Flags().StringVarP(&runKeywords, "keywords", "k", "", "Comma-separated search keywords")
	runCommand.Flags().StringVarP(&runLocation, "location", "l", "", "Search location")
	runCommand.Flags().StringVar(&runCoverFile, "cover-file", "", "Path to cover letter text file (mutually exclusive with --cover-text)")
	runCommand.Flags().StringVar(&runCoverText, "cover-text", "", "Inline cover letter text (mutually exclusive with --cover-file)")
	runCommand.Flags().StringVar(&runPhone, "phone", "", "Phone number to fill when a phone field is recognized")
	runCommand.Flags().IntVar(&runCollect, "collect", 0, "Maximum job links to collect per keyword")
	runCommand.Flags().IntVar(&runTop, "top", 0, "Shortlist size")
	runCommand.Flags().StringVar(&runProfile, "profile", "", "Chrome user-data-dir with an authenticated session")
	runCommand.Flags().StringVar(&runProfileDir, "profile-dir", "", "Profile directory name inside the user-data-dir")
	runCommand.Flags().BoolVar(&runHeadless, "headless", false, "Run the browser headless")
	runCommand.Flags().BoolVar(&runApply, "apply", false, "Walk the application flow for each shortlisted job")
	runCommand.Flags().BoolVar(&runAutoSubmit, "auto-submit", false, "Allow the driver to press the final submit control")
	runCommand.Flags().StringVarP(&runOut, "out", "o", "", "Shortlist output file")
	runCommand.Flags().StringVar(&runKeywordConfig, "keyword-config", "", "YAML file overriding field-classification keyword sets")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadMergedConfig(cmd)
	if err != nil {
		return err
	}

	// Validate merged configuration
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Resume == "" {
		return fmt.Errorf("--resume is required (via flag or config)")
	}
	keywords := splitKeywords(cfg.Keywords)
	if len(keywords) == 0 {
		return fmt.Errorf("--keywords is required (via flag or config)")
	}

	coverText, err := resolveCoverText(cfg)
	if err != nil {
		return err
	}

	fieldKeywords := config.DefaultFieldKeywords()
	if cfg.KeywordConfig != "" {
		fieldKeywords, err = config.LoadFieldKeywords(cfg.KeywordConfig)
		if err != nil {
			return fmt.Errorf("failed to load keyword config: %w", err)
		}
	}

	session, err := browser.NewChromeSession(ctx, browser.Options{
		UserDataDir: cfg.Profile,
		ProfileName: cfg.ProfileDir,
		Headless:    cfg.Headless,
		Verbose:     cfg.Verbose,
	})
	if err != nil {
		return fmt.Errorf("failed to start browser: %w", err)
	}
	defer session.Close()

	runner := pipeline.NewRunner(session, pipeline.RunOptions{
		Keywords:      keywords,
		Location:      cfg.Location,
		ResumePath:    cfg.Resume,
		CoverText:     coverText,
		Phone:         cfg.Phone,
		Collect:       cfg.Collect,
		Top:           cfg.Top,
		Apply:         cfg.Apply,
		AutoSubmit:    cfg.AutoSubmit,
		OutPath:       cfg.Out,
		FieldKeywords: fieldKeywords,
		Verbose:       cfg.Verbose,
	})

	result, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Done: %d link(s) harvested, %d posting(s) extracted, shortlist of %d written to %s\n",
		len(result.Links), len(result.Records), len(result.Shortlist), cfg.Out)
	return nil
}

// loadMergedConfig builds the effective configuration: config file values,
// overridden by explicitly set flags, backfilled with defaults.
func loadMergedConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if runConfigPath != "" {
		loadedCfg, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loadedCfg
		if runVerbose {
			fmt.Printf("Loaded config from: %s\n", runConfigPath)
		}
	}

	// Apply CLI overrides; only flags that were explicitly set win
	if cmd.Flags().Changed("resume") {
		cfg.Resume = runResume
	}
	if cmd.Flags().Changed("keywords") {
		cfg.Keywords = runKeywords
	}
	if cmd.Flags().Changed("location") {
		cfg.Location = runLocation
	}
	if cmd.Flags().Changed("cover-file") {
		cfg.CoverFile = runCoverFile
	}
	if cmd.Flags().Changed("cover-text") {
		cfg.CoverText = runCoverText
	}
	if cmd.Flags().Changed("phone") {
		cfg.Phone = runPhone
	}
	if cmd.Flags().Changed("collect") {
		cfg.Collect = runCollect
	}
	if cmd.Flags().Changed("top") {
		cfg.Top = runTop
	}
	if cmd.Flags().Changed("profile") {
		cfg.Profile = runProfile
	}
	if cmd.Flags().Changed("profile-dir") {
		cfg.ProfileDir = runProfileDir
	}
	if cmd.Flags().Changed("headless") {
		cfg.Headless = runHeadless
	}
	if cmd.Flags().Changed("apply") {
		cfg.Apply = runApply
	}
	if cmd.Flags().Changed("auto-submit") {
		cfg.AutoSubmit = runAutoSubmit
	}
	if cmd.Flags().Changed("out") {
		cfg.Out = runOut
	}
	if cmd.Flags().Changed("keyword-config") {
		cfg.KeywordConfig = runKeywordConfig
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}

	defaults := config.Config{
		Collect:    50,
		Top:        8,
		ProfileDir: "Default",
		Out:        "selected_urls.txt",
	}
	return cfg.MergeWithDefaults(defaults), nil
}

// splitKeywords parses the comma-separated keyword list, dropping empties.
func splitKeywords(s string) []string {
	var keywords []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			keywords = append(keywords, trimmed)
		}
	}
	return keywords
}

// resolveCoverText returns the cover letter body from either source.
func resolveCoverText(cfg config.Config) (string, error) {
	if cfg.CoverFile != "" {
		data, err := os.ReadFile(cfg.CoverFile)
		if err != nil {
			return "", fmt.Errorf("failed to read cover file %s: %w", cfg.CoverFile, err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	return cfg.CoverText, nil
}
