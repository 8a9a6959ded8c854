package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobscout/internal/observability"
	"github.com/jonathan/jobscout/internal/pipeline"
	"github.com/jonathan/jobscout/internal/ranking"
	"github.com/jonathan/jobscout/internal/resume"
	"github.com/jonathan/jobscout/internal/textutil"
	"github.com/jonathan/jobscout/internal/types"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank harvested job records against a resume",
	Long:  "Deterministically ranks a job records JSON file against a resume by TF-IDF cosine similarity, producing a RankedJobs JSON sorted by relevance score. No browser is involved.",
	RunE:  runRank,
}

var (
	rankResume    string
	rankJobs      string
	rankTop       int
	rankOutput    string
	rankShortlist string
)

func init() {
	rankCmd.Flags().StringVarP(&rankResume, "resume", "r", "", "Path to resume document (required)")
	rankCmd.Flags().StringVarP(&rankJobs, "jobs", "j", "", "Path to input job records JSON file (required)")
	rankCmd.Flags().IntVar(&rankTop, "top", 8, "Shortlist size")
	rankCmd.Flags().StringVarP(&rankOutput, "out", "o", "ranked_jobs.json", "Path to output RankedJobs JSON file")
	rankCmd.Flags().StringVar(&rankShortlist, "shortlist", "", "Optional path to also write shortlist URLs, one per line")

	if err := rankCmd.MarkFlagRequired("resume"); err != nil {
		panic(fmt.Sprintf("failed to mark resume flag as required: %v", err))
	}
	if err := rankCmd.MarkFlagRequired("jobs"); err != nil {
		panic(fmt.Sprintf("failed to mark jobs flag as required: %v", err))
	}

	rootCmd.AddCommand(rankCmd)
}

func runRank(_ *cobra.Command, _ []string) error {
	resumeText, err := resume.ReadDocument(rankResume)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}
	resumeText = textutil.Normalize(resumeText)
	if resumeText == "" {
		return fmt.Errorf("resume %s contains no extractable text", rankResume)
	}

	jobsContent, err := os.ReadFile(rankJobs)
	if err != nil {
		return fmt.Errorf("failed to read job records file %s: %w", rankJobs, err)
	}
	var records types.JobRecords
	if err := json.Unmarshal(jobsContent, &records); err != nil {
		return fmt.Errorf("failed to unmarshal job records JSON: %w", err)
	}
	if len(records.Jobs) == 0 {
		return fmt.Errorf("job records file %s contains no jobs", rankJobs)
	}

	ranked := ranking.Rank(resumeText, records.Jobs, rankTop)
	observability.NewPrinter(os.Stdout).PrintShortlist(ranked)

	if err := writeJSONArtifact(rankOutput, types.RankedJobs{Ranked: ranked}, "schemas/ranked_jobs.schema.json"); err != nil {
		return err
	}
	if rankShortlist != "" {
		if err := pipeline.WriteShortlist(rankShortlist, ranked); err != nil {
			return err
		}
	}

	fmt.Printf("Successfully ranked %d job(s) to %s\n", len(ranked), rankOutput)
	return nil
}
