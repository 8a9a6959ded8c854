package apply

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/jonathan/jobscout/internal/browser"
	"github.com/jonathan/jobscout/internal/config"
)

// DefaultMaxSteps bounds the wizard loop. Application flows longer than
// this are treated as not completable by the driver.
const DefaultMaxSteps = 8

// maxCoverLength truncates cover text inserted into rich-text regions.
const maxCoverLength = 1000

const (
	entryWait  = 4 * time.Second
	dialogWait = 6 * time.Second
)

// Driver executes the application flow for single jobs. All locator
// failures degrade to "field not filled" rather than aborting the flow;
// only a missing entry point is terminal for a job.
type Driver struct {
	Session  browser.Session
	Keywords config.FieldKeywords

	// ResumePath, CoverText, and Phone are filled into recognized fields
	// when non-empty; empty values skip the corresponding fill.
	ResumePath string
	CoverText  string
	Phone      string

	// AutoSubmit authorizes the driver to activate the terminal control
	// itself. When false the driver holds the session open at the terminal
	// step so the operator can review and submit manually.
	AutoSubmit bool

	MaxSteps int
	Verbose  bool

	// Sleep overrides pacing pauses; nil means time.Sleep.
	Sleep func(time.Duration)
}

// New returns a Driver with default step budget and keyword sets.
func New(session browser.Session) *Driver {
	return &Driver{
		Session:  session,
		Keywords: config.DefaultFieldKeywords(),
		MaxSteps: DefaultMaxSteps,
	}
}

func (d *Driver) pause(d0 time.Duration, jitter time.Duration) {
	delay := d0 + time.Duration(rand.Float64()*float64(jitter))
	if d.Sleep != nil {
		d.Sleep(delay)
		return
	}
	time.Sleep(delay)
}

func (d *Driver) logf(format string, args ...any) {
	if d.Verbose {
		log.Printf("[APPLY] "+format, args...)
	}
}

// Apply runs the flow against one job URL. The returned error reports a
// navigation failure or an authorized submission that could not be
// activated; every other irregularity is absorbed into the outcome.
func (d *Driver) Apply(ctx context.Context, jobURL string) (Outcome, error) {
	if err := d.Session.Navigate(ctx, jobURL); err != nil {
		return OutcomeNoEntryPointFound, err
	}
	d.pause(1200*time.Millisecond, 800*time.Millisecond)
	// Nudge the entry control into view before looking for it.
	if err := d.Session.ScrollBy(ctx, 0.2); err != nil {
		d.logf("pre-apply scroll failed: %v", err)
	}

	entry := d.findEntryPoint(ctx)
	if entry == nil {
		d.logf("no entry point on %s", jobURL)
		return OutcomeNoEntryPointFound, nil
	}
	if err := entry.Click(ctx); err != nil {
		d.logf("entry point click failed: %v", err)
		return OutcomeNoEntryPointFound, nil
	}
	d.logf("opened application dialog on %s", jobURL)
	d.pause(1200*time.Millisecond, 0)

	if err := d.Session.WaitVisible(ctx, dialogLocator, dialogWait); err != nil {
		// The dialog locator is a convenience; some flows render inline.
		d.logf("dialog wait expired: %v", err)
	}
	d.pause(800*time.Millisecond, 0)

	// Field fills are independent; one failing must not stop the others.
	d.fillAttachment(ctx)
	d.fillNarrative(ctx)
	d.fillPhone(ctx)

	return d.advance(ctx, jobURL)
}

// findEntryPoint tries the primary locator, then a looser text match.
func (d *Driver) findEntryPoint(ctx context.Context) browser.Element {
	if err := d.Session.WaitVisible(ctx, entryLocators[0], entryWait); err != nil {
		d.logf("entry control wait expired: %v", err)
	}
	for _, loc := range entryLocators {
		if el, err := d.Session.FindFirst(ctx, loc); err == nil {
			return el
		}
	}
	return nil
}

// fillAttachment sends the resume path to the first visible file input.
func (d *Driver) fillAttachment(ctx context.Context) {
	if d.ResumePath == "" {
		return
	}
	inputs, err := d.Session.FindAll(ctx, fileInputLocator)
	if err != nil {
		d.logf("file input scan failed: %v", err)
		return
	}
	abs, err := filepath.Abs(d.ResumePath)
	if err != nil {
		abs = d.ResumePath
	}
	for _, in := range inputs {
		if visible, _ := in.IsVisible(ctx); !visible {
			continue
		}
		if err := in.SetFiles(ctx, abs); err != nil {
			d.logf("resume upload failed: %v", err)
			return
		}
		d.logf("uploaded resume")
		d.pause(time.Second, 0)
		return
	}
}

// fillNarrative puts the cover text into the free-text area classified as
// the narrative field: first a textarea whose placeholder or name matches a
// narrative keyword, else the first visible textarea, else a rich-text
// region whose accessible label matches.
func (d *Driver) fillNarrative(ctx context.Context) {
	if d.CoverText == "" {
		return
	}
	textareas, err := d.Session.FindAll(ctx, textareaLocator)
	if err != nil {
		d.logf("textarea scan failed: %v", err)
		textareas = nil
	}

	for _, ta := range textareas {
		placeholder, _ := ta.Attribute(ctx, "placeholder")
		name, _ := ta.Attribute(ctx, "name")
		if !matchesAny(d.Keywords.Narrative, placeholder, name) {
			continue
		}
		if d.typeInto(ctx, ta, d.CoverText) {
			d.logf("filled classified narrative field")
			return
		}
	}
	for _, ta := range textareas {
		if visible, _ := ta.IsVisible(ctx); !visible {
			continue
		}
		if d.typeInto(ctx, ta, d.CoverText) {
			d.logf("filled first visible textarea")
			return
		}
	}

	regions, err := d.Session.FindAll(ctx, contentEditableLocator)
	if err != nil {
		return
	}
	for _, region := range regions {
		label, _ := region.Attribute(ctx, "aria-label")
		if !matchesAny(d.Keywords.Narrative, label) {
			continue
		}
		if err := region.Click(ctx); err != nil {
			continue
		}
		if err := region.TypeText(ctx, truncate(d.CoverText, maxCoverLength)); err == nil {
			d.logf("filled rich-text narrative region")
			return
		}
	}
}

// fillPhone fills the first visible telephone input.
func (d *Driver) fillPhone(ctx context.Context) {
	if d.Phone == "" {
		return
	}
	inputs, err := d.Session.FindAll(ctx, phoneLocator(d.Keywords.Phone))
	if err != nil {
		return
	}
	for _, in := range inputs {
		if visible, _ := in.IsVisible(ctx); !visible {
			continue
		}
		if d.typeInto(ctx, in, d.Phone) {
			d.logf("filled phone")
		}
		return
	}
}

// typeInto clears then types; the clear is best-effort because some
// controls reject it while still accepting keystrokes.
func (d *Driver) typeInto(ctx context.Context, el browser.Element, text string) bool {
	_ = el.Clear(ctx)
	if err := el.TypeText(ctx, text); err != nil {
		d.logf("type failed: %v", err)
		return false
	}
	return true
}

// advance walks the wizard: on each step a terminal control ends the loop,
// otherwise the first visible enabled advance control is clicked. Running
// out of controls or steps abandons the attempt.
func (d *Driver) advance(ctx context.Context, jobURL string) (Outcome, error) {
	maxSteps := d.MaxSteps
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}

	for step := 0; step < maxSteps; step++ {
		if err := ctx.Err(); err != nil {
			return OutcomeAbandoned, err
		}
		d.pause(900*time.Millisecond, 600*time.Millisecond)

		if terminal := d.findTerminal(ctx); terminal != nil {
			return d.finish(ctx, terminal, jobURL)
		}

		clicked := false
		for _, label := range d.Keywords.Advance {
			btn, err := d.Session.FindFirst(ctx, advanceLocator(label))
			if err != nil {
				continue
			}
			visible, _ := btn.IsVisible(ctx)
			enabled, _ := btn.IsEnabled(ctx)
			if !visible || !enabled {
				continue
			}
			if err := btn.Click(ctx); err != nil {
				continue
			}
			d.logf("advanced wizard (step %d)", step+1)
			clicked = true
			d.pause(time.Second, 800*time.Millisecond)
			break
		}
		if !clicked {
			break
		}
	}

	d.logf("no terminal control within step budget on %s", jobURL)
	d.dismiss(ctx)
	return OutcomeAbandoned, nil
}

// findTerminal returns the terminal control if one is present and its label
// actually contains a terminal keyword.
func (d *Driver) findTerminal(ctx context.Context) browser.Element {
	btn, err := d.Session.FindFirst(ctx, terminalLocator(d.Keywords.Terminal))
	if err != nil {
		return nil
	}
	text, err := btn.Text(ctx)
	if err != nil {
		return nil
	}
	if !matchesAny(d.Keywords.Terminal, text) {
		return nil
	}
	return btn
}

// finish handles the terminal step. Without authorization the driver never
// activates the control; it holds the live session open so the operator can
// review and submit, then reports the pause.
func (d *Driver) finish(ctx context.Context, terminal browser.Element, jobURL string) (Outcome, error) {
	if d.AutoSubmit {
		if err := terminal.Click(ctx); err != nil {
			return OutcomeAbandoned, fmt.Errorf("activate terminal control on %s: %w", jobURL, err)
		}
		d.logf("auto-submitted %s", jobURL)
		d.pause(time.Second, 0)
		return OutcomeSubmitted, nil
	}

	d.logf("terminal step reached on %s; pausing for manual review", jobURL)
	d.pause(10*time.Second, 6*time.Second)
	return OutcomePausedForManualReview, nil
}

// dismiss closes the application dialog, best-effort.
func (d *Driver) dismiss(ctx context.Context) {
	btn, err := d.Session.FindFirst(ctx, dismissLocator)
	if err != nil {
		return
	}
	if err := btn.Click(ctx); err != nil {
		d.logf("dialog dismiss failed: %v", err)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
