// Package pipeline provides the high-level orchestration for the job
// search flow: harvest links, extract postings, rank against the resume,
// and optionally run the application driver on the shortlist.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/jonathan/jobscout/internal/apply"
	"github.com/jonathan/jobscout/internal/browser"
	"github.com/jonathan/jobscout/internal/config"
	"github.com/jonathan/jobscout/internal/extract"
	"github.com/jonathan/jobscout/internal/harvest"
	"github.com/jonathan/jobscout/internal/observability"
	"github.com/jonathan/jobscout/internal/ranking"
	"github.com/jonathan/jobscout/internal/resume"
	"github.com/jonathan/jobscout/internal/textutil"
	"github.com/jonathan/jobscout/internal/types"
)

// navInterval paces page navigations so the pipeline does not hammer the
// site when many links are queued.
const navInterval = 2 * time.Second

// RunOptions holds configuration for running the pipeline.
type RunOptions struct {
	Keywords   []string
	Location   string
	ResumePath string
	CoverText  string
	Phone      string

	Collect int // max links to collect per keyword
	Top     int // shortlist size

	Apply      bool
	AutoSubmit bool
	OutPath    string

	FieldKeywords config.FieldKeywords
	Verbose       bool
}

// Result summarizes a completed pipeline run.
type Result struct {
	RunID     uuid.UUID
	Links     []string
	Records   []types.JobRecord
	Shortlist []types.RankedJob
	Outcomes  map[string]apply.Outcome
}

// Runner executes the pipeline against a browser session. The session is
// owned by the caller; the runner never closes it.
type Runner struct {
	Session browser.Session
	Opts    RunOptions

	// Sleep overrides pacing pauses; nil means time.Sleep.
	Sleep func(time.Duration)

	// Limiter paces page navigations.
	Limiter *rate.Limiter
}

// NewRunner returns a Runner over the given session.
func NewRunner(session browser.Session, opts RunOptions) *Runner {
	return &Runner{
		Session: session,
		Opts:    opts,
		Limiter: rate.NewLimiter(rate.Every(navInterval), 1),
	}
}

func (r *Runner) pause(d time.Duration) {
	if r.Sleep != nil {
		r.Sleep(d)
		return
	}
	time.Sleep(d)
}

// Run executes the full flow. Resume read failures and empty harvests are
// fatal; individual extraction and application failures are logged and
// skipped so one bad posting cannot sink the run.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	opts := r.Opts
	printer := observability.NewPrinter(os.Stdout)

	result := &Result{RunID: uuid.New()}
	if opts.Verbose {
		log.Printf("[PIPELINE] run %s starting", result.RunID)
	}

	fmt.Printf("Step 1/4: Reading resume from %s...\n", opts.ResumePath)
	resumeText, err := resume.ReadDocument(opts.ResumePath)
	if err != nil {
		return nil, fmt.Errorf("resume read failed: %w", err)
	}
	resumeText = textutil.Normalize(resumeText)
	if resumeText == "" {
		return nil, fmt.Errorf("resume %s contains no extractable text", opts.ResumePath)
	}

	fmt.Printf("Step 2/4: Collecting job links for %d keyword(s)...\n", len(opts.Keywords))
	links, err := r.harvestAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return nil, fmt.Errorf("no job links found for keywords %v", opts.Keywords)
	}
	result.Links = links

	fmt.Printf("Step 3/4: Extracting and ranking %d posting(s)...\n", len(links))
	result.Records = r.extractAll(ctx, links)
	result.Shortlist = ranking.Rank(resumeText, result.Records, opts.Top)
	printer.PrintShortlist(result.Shortlist)

	fmt.Printf("Step 4/4: Writing shortlist to %s...\n", opts.OutPath)
	if err := WriteShortlist(opts.OutPath, result.Shortlist); err != nil {
		return nil, err
	}

	if opts.Apply {
		result.Outcomes = r.applyAll(ctx, printer, result.Shortlist)
	}
	return result, nil
}

// harvestAll collects job links for every keyword, deduplicated across
// keywords in first-seen order. A failed harvest for one keyword is a
// warning, not a run failure, as long as another keyword produced links.
func (r *Runner) harvestAll(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var links []string

	for _, keyword := range r.Opts.Keywords {
		if err := r.Limiter.Wait(ctx); err != nil {
			return links, err
		}

		searchURL := harvest.SearchURL(keyword, r.Opts.Location, 0)
		if err := r.Session.Navigate(ctx, searchURL); err != nil {
			fmt.Printf("Warning: search navigation failed for %q: %v\n", keyword, err)
			continue
		}

		h := harvest.New(r.Session, r.Opts.Collect)
		h.Verbose = r.Opts.Verbose
		h.Sleep = r.Sleep
		found, err := h.Harvest(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return links, err
			}
			fmt.Printf("Warning: harvest failed for %q: %v\n", keyword, err)
		}
		added := 0
		for _, link := range found {
			if seen[link] {
				continue
			}
			seen[link] = true
			links = append(links, link)
			added++
		}
		if r.Opts.Verbose {
			log.Printf("[PIPELINE] keyword %q: %d link(s), %d new", keyword, len(found), added)
		}
	}
	return links, nil
}

// extractAll visits each link and extracts the posting. Failed extractions
// are skipped.
func (r *Runner) extractAll(ctx context.Context, links []string) []types.JobRecord {
	ex := extract.New(r.Session)
	ex.Verbose = r.Opts.Verbose
	ex.Sleep = r.Sleep

	records := make([]types.JobRecord, 0, len(links))
	for i, link := range links {
		if err := r.Limiter.Wait(ctx); err != nil {
			return records
		}
		record, err := ex.Extract(ctx, link)
		if err != nil {
			fmt.Printf("Warning: failed to extract %s: %v\n", link, err)
			continue
		}
		records = append(records, record)
		if r.Opts.Verbose {
			log.Printf("[PIPELINE] extracted %d/%d: %s", i+1, len(links), record.Title)
		}
	}
	return records
}

// applyAll runs the application driver over the shortlist in rank order.
func (r *Runner) applyAll(ctx context.Context, printer *observability.Printer, shortlist []types.RankedJob) map[string]apply.Outcome {
	driver := apply.New(r.Session)
	driver.Keywords = r.Opts.FieldKeywords
	driver.ResumePath = r.Opts.ResumePath
	driver.CoverText = r.Opts.CoverText
	driver.Phone = r.Opts.Phone
	driver.AutoSubmit = r.Opts.AutoSubmit
	driver.Verbose = r.Opts.Verbose
	driver.Sleep = r.Sleep

	outcomes := make(map[string]apply.Outcome, len(shortlist))
	for i, job := range shortlist {
		if ctx.Err() != nil {
			return outcomes
		}
		fmt.Printf("Applying to %d/%d: %s\n", i+1, len(shortlist), job.URL)
		outcome, err := driver.Apply(ctx, job.URL)
		if err != nil && ctx.Err() == nil {
			fmt.Printf("Warning: application flow failed for %s: %v\n", job.URL, err)
		}
		outcomes[job.URL] = outcome
		printer.PrintOutcome(job.URL, outcome)

		if i < len(shortlist)-1 {
			// Jittered gap between applications.
			r.pause(3*time.Second + time.Duration(rand.Float64()*2*float64(time.Second)))
		}
	}
	return outcomes
}

// WriteShortlist writes the shortlist URLs to path, one per line, replacing
// any previous contents.
func WriteShortlist(path string, shortlist []types.RankedJob) error {
	var sb strings.Builder
	for _, job := range shortlist {
		sb.WriteString(job.URL)
		sb.WriteString("\n")
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write shortlist %s: %w", path, err)
	}
	return nil
}
