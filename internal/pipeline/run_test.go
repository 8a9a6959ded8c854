package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/jonathan/jobscout/internal/apply"
	"github.com/jonathan/jobscout/internal/browser"
	"github.com/jonathan/jobscout/internal/browser/browsertest"
	"github.com/jonathan/jobscout/internal/config"
	"github.com/jonathan/jobscout/internal/harvest"
	"github.com/jonathan/jobscout/internal/types"
)

var (
	jobAnchorLoc = browser.Locator(`//a[contains(@href,'` + harvest.JobDetailPathMarker + `')]`)
	titleLoc     = browser.Locator(`//h1`)
	orgLoc       = browser.Locator(`//a[contains(@href,'/company/') or contains(@class,'topcard__org-name')]`)
	descLoc      = browser.Locator(`//div[contains(@class,'description')]`)
)

func scriptJobPage(s *browsertest.Session, url, title, org, desc string) {
	p := s.AddPage(url)
	p.Add(titleLoc, &browsertest.Element{TextValue: title})
	p.Add(orgLoc, &browsertest.Element{TextValue: org})
	p.Add(descLoc, &browsertest.Element{TextValue: desc})
}

func testRunner(s *browsertest.Session, opts RunOptions) *Runner {
	r := NewRunner(s, opts)
	r.Sleep = func(time.Duration) {}
	r.Limiter = rate.NewLimiter(rate.Inf, 1)
	return r
}

func TestRun_EndToEnd(t *testing.T) {
	dir := t.TempDir()

	resumePath := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(resumePath,
		[]byte("Platform engineer with kubernetes grpc golang and distributed systems experience."), 0o644))
	outPath := filepath.Join(dir, "selected_urls.txt")

	s := browsertest.NewSession()

	search := s.AddPage(harvest.SearchURL("golang", "Remote", 0))
	search.Extent = 1000
	filler := strings.Repeat("coordinating quarterly retail promotions and in store merchandising displays ", 2)
	var urls []string
	for i := 0; i < 10; i++ {
		u := fmt.Sprintf("https://www.example.com/jobs/view/%d", i)
		urls = append(urls, u)
		search.Add(jobAnchorLoc, &browsertest.Element{Attrs: map[string]string{"href": u + "?refId=abc"}})

		desc := filler
		if i == 4 {
			desc = "Seeking a platform engineer with kubernetes grpc golang and distributed systems experience."
		}
		scriptJobPage(s, u, fmt.Sprintf("Role %d", i), "Acme", desc)
	}

	r := testRunner(s, RunOptions{
		Keywords:   []string{"golang"},
		Location:   "Remote",
		ResumePath: resumePath,
		Collect:    10,
		Top:        3,
		OutPath:    outPath,
	})

	result, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, result.Links, 10)
	assert.Equal(t, urls, result.Links)
	assert.Len(t, result.Records, 10)
	require.Len(t, result.Shortlist, 3)
	assert.Equal(t, urls[4], result.Shortlist[0].URL, "closest posting should rank first")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, result.Shortlist[0].URL, lines[0])
	assert.Equal(t, result.Shortlist[1].URL, lines[1])
	assert.Equal(t, result.Shortlist[2].URL, lines[2])
}

func TestRun_ApplyRecordsOutcomes(t *testing.T) {
	dir := t.TempDir()

	resumePath := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(resumePath, []byte("golang engineer"), 0o644))

	s := browsertest.NewSession()
	search := s.AddPage(harvest.SearchURL("golang", "", 0))
	search.Extent = 500
	u := "https://www.example.com/jobs/view/7"
	search.Add(jobAnchorLoc, &browsertest.Element{Attrs: map[string]string{"href": u}})
	scriptJobPage(s, u, "Engineer", "Acme",
		"A golang engineer role building backend services for a growing platform team.")

	r := testRunner(s, RunOptions{
		Keywords:      []string{"golang"},
		ResumePath:    resumePath,
		Collect:       1,
		Top:           1,
		OutPath:       filepath.Join(dir, "out.txt"),
		Apply:         true,
		FieldKeywords: config.DefaultFieldKeywords(),
	})

	result, err := r.Run(context.Background())
	require.NoError(t, err)

	// The scripted page has no application entry point, so the driver
	// reports that without failing the run.
	require.Len(t, result.Outcomes, 1)
	assert.Equal(t, apply.OutcomeNoEntryPointFound, result.Outcomes[u])
}

func TestRun_MissingResumeFails(t *testing.T) {
	r := testRunner(browsertest.NewSession(), RunOptions{
		Keywords:   []string{"golang"},
		ResumePath: filepath.Join(t.TempDir(), "absent.txt"),
		Collect:    1,
		Top:        1,
	})

	_, err := r.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resume read failed")
}

func TestRun_FailedKeywordIsSkipped(t *testing.T) {
	dir := t.TempDir()
	resumePath := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(resumePath, []byte("golang engineer"), 0o644))

	s := browsertest.NewSession()
	// First keyword's search page is not scripted, so navigation fails.
	search := s.AddPage(harvest.SearchURL("kubernetes", "", 0))
	search.Extent = 500
	u := "https://www.example.com/jobs/view/1"
	search.Add(jobAnchorLoc, &browsertest.Element{Attrs: map[string]string{"href": u}})
	scriptJobPage(s, u, "Engineer", "Acme",
		"A kubernetes engineer role operating production clusters for a platform team.")

	r := testRunner(s, RunOptions{
		Keywords:   []string{"golang", "kubernetes"},
		ResumePath: resumePath,
		Collect:    5,
		Top:        5,
		OutPath:    filepath.Join(dir, "out.txt"),
	})

	result, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{u}, result.Links)
}

func TestWriteShortlist_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, os.WriteFile(path, []byte("stale contents\nmore stale\n"), 0o644))

	shortlist := []types.RankedJob{
		{JobRecord: types.JobRecord{URL: "https://www.example.com/jobs/view/1"}, Score: 0.9},
	}
	require.NoError(t, WriteShortlist(path, shortlist))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://www.example.com/jobs/view/1\n", string(data))
}
