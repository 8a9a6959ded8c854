// Package harvest collects unique job-detail links from an infinite-scroll
// search results page.
package harvest

import (
	"context"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/jonathan/jobscout/internal/browser"
)

// DefaultStagnationLimit is how many consecutive scroll cycles may pass
// without the page growing before harvesting gives up. This bounds
// harvesting time when the results page has fewer jobs than requested.
const DefaultStagnationLimit = 20

// jobLinkLocator matches every anchor pointing at a job detail page.
var jobLinkLocator = browser.Locator(`//a[contains(@href,'` + JobDetailPathMarker + `')]`)

// Harvester accumulates unique job links from an already-loaded results
// page by repeatedly scanning anchors and extending the page.
type Harvester struct {
	Session         browser.Session
	MaxLinks        int
	StagnationLimit int
	Verbose         bool

	// Sleep overrides the pause between scroll cycles; nil means time.Sleep.
	Sleep func(time.Duration)
}

// New returns a Harvester with the default stagnation bound.
func New(session browser.Session, maxLinks int) *Harvester {
	return &Harvester{
		Session:         session,
		MaxLinks:        maxLinks,
		StagnationLimit: DefaultStagnationLimit,
	}
}

func (h *Harvester) pause(d time.Duration) {
	if h.Sleep != nil {
		h.Sleep(d)
		return
	}
	time.Sleep(d)
}

// Harvest scans the current page for job links, scrolling to load more,
// until MaxLinks are collected or the page stops growing for
// StagnationLimit consecutive cycles. Links are returned canonicalized, in
// first-seen order, without duplicates; the result may be shorter than
// MaxLinks when the page runs out of content.
func (h *Harvester) Harvest(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	links := make([]string, 0, h.MaxLinks)

	lastExtent, err := h.Session.ScrollExtent(ctx)
	if err != nil {
		return links, err
	}

	stagnant := 0
	for len(links) < h.MaxLinks && stagnant < h.StagnationLimit {
		if err := ctx.Err(); err != nil {
			return links, err
		}

		anchors, err := h.Session.FindAll(ctx, jobLinkLocator)
		if err != nil {
			// A transient scan failure costs one cycle, not the harvest.
			if h.Verbose {
				log.Printf("[HARVEST] anchor scan failed: %v", err)
			}
			anchors = nil
		}
		for _, a := range anchors {
			href, err := a.Attribute(ctx, "href")
			if err != nil || !strings.Contains(href, JobDetailPathMarker) {
				continue
			}
			canonical := CanonicalJobURL(href)
			if canonical == "" || seen[canonical] {
				continue
			}
			seen[canonical] = true
			links = append(links, canonical)
			if len(links) >= h.MaxLinks {
				return links, nil
			}
		}

		if err := h.Session.ScrollBy(ctx, 0.7); err != nil {
			if h.Verbose {
				log.Printf("[HARVEST] scroll failed: %v", err)
			}
		}
		// Jittered pause so asynchronously loaded results have time to render.
		h.pause(time.Second + time.Duration(rand.Float64()*1.2*float64(time.Second)))

		extent, err := h.Session.ScrollExtent(ctx)
		if err != nil {
			return links, err
		}
		if extent == lastExtent {
			stagnant++
		} else {
			lastExtent = extent
			stagnant = 0
		}
	}

	if h.Verbose {
		log.Printf("[HARVEST] collected %d link(s)", len(links))
	}
	return links, nil
}
