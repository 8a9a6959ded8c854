package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobscout/internal/browser"
	"github.com/jonathan/jobscout/internal/extract"
	"github.com/jonathan/jobscout/internal/harvest"
	"github.com/jonathan/jobscout/internal/observability"
	"github.com/jonathan/jobscout/internal/schemas"
	"github.com/jonathan/jobscout/internal/types"
)

var harvestCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Collect job links from search results",
	Long:  "Collects unique job links for the given keywords and writes them as a job records JSON file. With --extract, each job page is also visited to fill in title, organization, and description.",
	RunE:  runHarvest,
}

var (
	harvestKeywords   string
	harvestLocation   string
	harvestCollect    int
	harvestOutput     string
	harvestExtract    bool
	harvestProfile    string
	harvestProfileDir string
	harvestHeadless   bool
	harvestVerbose    bool
)

func init() {
	harvestCmd.Flags().StringVarP(&harvestKeywords, "keywords", "k", "", "Comma-separated search keywords (required)")
	harvestCmd.Flags().StringVarP(&harvestLocation, "location", "l", "", "Search location")
	harvestCmd.Flags().IntVar(&harvestCollect, "collect", 50, "Maximum job links to collect per keyword")
	harvestCmd.Flags().StringVarP(&harvestOutput, "out", "o", "jobs.json", "Path to output job records JSON file")
	harvestCmd.Flags().BoolVar(&harvestExtract, "extract", false, "Visit each job page and extract posting details")
	harvestCmd.Flags().StringVar(&harvestProfile, "profile", "", "Chrome user-data-dir with an authenticated session")
	harvestCmd.Flags().StringVar(&harvestProfileDir, "profile-dir", "Default", "Profile directory name inside the user-data-dir")
	harvestCmd.Flags().BoolVar(&harvestHeadless, "headless", false, "Run the browser headless")
	harvestCmd.Flags().BoolVarP(&harvestVerbose, "verbose", "v", false, "Print detailed debug information")

	if err := harvestCmd.MarkFlagRequired("keywords"); err != nil {
		panic(fmt.Sprintf("failed to mark keywords flag as required: %v", err))
	}

	rootCmd.AddCommand(harvestCmd)
}

func runHarvest(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	keywords := splitKeywords(harvestKeywords)
	if len(keywords) == 0 {
		return fmt.Errorf("--keywords must contain at least one keyword")
	}

	session, err := browser.NewChromeSession(ctx, browser.Options{
		UserDataDir: harvestProfile,
		ProfileName: harvestProfileDir,
		Headless:    harvestHeadless,
		Verbose:     harvestVerbose,
	})
	if err != nil {
		return fmt.Errorf("failed to start browser: %w", err)
	}
	defer session.Close()

	printer := observability.NewPrinter(os.Stdout)

	seen := make(map[string]bool)
	var links []string
	for _, keyword := range keywords {
		searchURL := harvest.SearchURL(keyword, harvestLocation, 0)
		if err := session.Navigate(ctx, searchURL); err != nil {
			fmt.Printf("Warning: search navigation failed for %q: %v\n", keyword, err)
			continue
		}

		h := harvest.New(session, harvestCollect)
		h.Verbose = harvestVerbose
		found, err := h.Harvest(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			fmt.Printf("Warning: harvest failed for %q: %v\n", keyword, err)
		}
		for _, link := range found {
			if !seen[link] {
				seen[link] = true
				links = append(links, link)
			}
		}
		printer.PrintHarvestSummary(keyword, len(found))
	}
	if len(links) == 0 {
		return fmt.Errorf("no job links found for keywords %v", keywords)
	}

	records := types.JobRecords{Jobs: make([]types.JobRecord, 0, len(links))}
	if harvestExtract {
		ex := extract.New(session)
		ex.Verbose = harvestVerbose
		for _, link := range links {
			record, err := ex.Extract(ctx, link)
			if err != nil {
				fmt.Printf("Warning: failed to extract %s: %v\n", link, err)
				continue
			}
			records.Jobs = append(records.Jobs, record)
		}
	} else {
		for _, link := range links {
			records.Jobs = append(records.Jobs, types.JobRecord{URL: link})
		}
	}

	if err := writeJSONArtifact(harvestOutput, records, "schemas/job_records.schema.json"); err != nil {
		return err
	}

	fmt.Printf("Successfully wrote %d job record(s) to %s\n", len(records.Jobs), harvestOutput)
	return nil
}

// writeJSONArtifact marshals v to path with indentation and validates the
// result against the named schema when it can be located. Validation is a
// safety check, not a requirement; failures are warnings.
func writeJSONArtifact(path string, v any, schemaRelPath string) error {
	jsonOutput, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output JSON: %w", err)
	}

	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
	}
	if err := os.WriteFile(path, jsonOutput, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}

	if schemaPath := schemas.ResolveSchemaPath(schemaRelPath); schemaPath != "" {
		if err := schemas.ValidateJSON(schemaPath, path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Output validation failed: %v\n", err)
		}
	}
	return nil
}
