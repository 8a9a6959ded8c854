// Package extract recovers job details from a rendered job page using an
// ordered cascade of locator strategies. The underlying markup is not
// contractually stable, so every strategy is best-effort and the extractor
// always produces a record, degrading to empty fields rather than failing
// the pipeline for one job.
package extract

import (
	"context"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/jonathan/jobscout/internal/browser"
	"github.com/jonathan/jobscout/internal/textutil"
	"github.com/jonathan/jobscout/internal/types"
)

// minDescriptionLength filters out short labels and buttons that the broad
// description selectors also match.
const minDescriptionLength = 50

const renderWait = 6 * time.Second

var (
	titleLocator = browser.Locator(`//h1`)

	// Organization strategies, most specific first.
	organizationLocators = []browser.Locator{
		`//a[contains(@href,'/company/') or contains(@class,'topcard__org-name')]`,
		`//span[contains(@class,'topcard__flavor')]`,
	}

	// Description strategies, most to least specific. The first strategy
	// that yields any qualifying element wins.
	descriptionLocators = []browser.Locator{
		`//div[contains(@class,'description')]`,
		`//div[contains(@class,'job-description')]`,
		`//div[contains(@class,'jobs-description')]`,
		`//div[contains(@class,'show-more-less-html__markup')]`,
		`//section[contains(@class,'description')]`,
	}

	detailsFallbackLocator = browser.Locator(`//div[@id='job-details']`)
)

// Extractor pulls job records from detail pages through a browser session.
type Extractor struct {
	Session browser.Session
	Verbose bool

	// Sleep overrides the render-settling pause; nil means time.Sleep.
	Sleep func(time.Duration)
}

// New returns an Extractor over the given session.
func New(session browser.Session) *Extractor {
	return &Extractor{Session: session}
}

func (e *Extractor) pause(d time.Duration) {
	if e.Sleep != nil {
		e.Sleep(d)
		return
	}
	time.Sleep(d)
}

// Extract navigates to the job page and returns its record. Only a
// navigation failure is reported as an error; a page missing any or all of
// the expected containers yields a record with empty fields.
func (e *Extractor) Extract(ctx context.Context, jobURL string) (types.JobRecord, error) {
	record := types.JobRecord{URL: jobURL}

	if err := e.Session.Navigate(ctx, jobURL); err != nil {
		return record, err
	}
	// Baseline content wait is best-effort; a slow page still gets a scan.
	if err := e.Session.WaitVisible(ctx, "body", renderWait); err != nil && e.Verbose {
		log.Printf("[EXTRACT] body wait expired for %s: %v", jobURL, err)
	}
	e.pause(time.Second + time.Duration(rand.Float64()*0.7*float64(time.Second)))

	record.Title = textutil.Normalize(e.firstText(ctx, titleLocator))
	record.Organization = textutil.Normalize(e.firstNonEmpty(ctx, organizationLocators))
	record.Description = textutil.Normalize(e.description(ctx))

	return record, nil
}

// firstText returns the text of the first element matching loc, or "".
func (e *Extractor) firstText(ctx context.Context, loc browser.Locator) string {
	el, err := e.Session.FindFirst(ctx, loc)
	if err != nil {
		return ""
	}
	text, err := el.Text(ctx)
	if err != nil {
		return ""
	}
	return text
}

// firstNonEmpty tries locators in order and returns the first non-empty text.
func (e *Extractor) firstNonEmpty(ctx context.Context, locs []browser.Locator) string {
	for _, loc := range locs {
		if text := strings.TrimSpace(e.firstText(ctx, loc)); text != "" {
			return text
		}
	}
	return ""
}

// description runs the cascade of description strategies, then the
// job-details container, then a snapshot parse of the rendered HTML.
func (e *Extractor) description(ctx context.Context) string {
	for _, loc := range descriptionLocators {
		elems, err := e.Session.FindAll(ctx, loc)
		if err != nil {
			continue
		}
		var texts []string
		for _, el := range elems {
			text, err := el.Text(ctx)
			if err != nil {
				continue
			}
			text = strings.TrimSpace(text)
			if len(text) > minDescriptionLength {
				texts = append(texts, text)
			}
		}
		if len(texts) > 0 {
			return strings.Join(texts, "\n")
		}
	}

	if text := strings.TrimSpace(e.firstText(ctx, detailsFallbackLocator)); text != "" {
		return text
	}

	// Last resort: parse the rendered markup directly. Live locators can
	// miss content rendered into containers the strategies don't cover.
	html, err := e.Session.HTML(ctx)
	if err != nil || html == "" {
		return ""
	}
	return descriptionFromHTML(html)
}
