// Package browser defines the automation capability surface the core
// components depend on, and provides a chromedp-backed implementation.
// The harvester, extractor, and application driver never talk to a
// concrete automation product directly; any Session implementation is
// interchangeable, which is what makes those components testable without
// a rendered page.
package browser

import (
	"context"
	"errors"
	"time"
)

// ErrNoMatch is returned by FindFirst when no element matches the locator.
// Callers generally treat it as "feature not present" rather than a failure.
var ErrNoMatch = errors.New("browser: no element matches locator")

// Locator identifies elements on the current page. Locators prefixed with
// "//" or "(" are evaluated as XPath expressions; anything else is a CSS
// selector.
type Locator string

// IsXPath reports whether the locator is an XPath expression.
func (l Locator) IsXPath() bool {
	return len(l) > 0 && (l[0] == '(' || (len(l) > 1 && l[0] == '/' && l[1] == '/'))
}

// Element is a handle to a single element on the current page. Handles are
// valid for the page load they were obtained from; a navigation invalidates
// them.
type Element interface {
	Text(ctx context.Context) (string, error)
	Attribute(ctx context.Context, name string) (string, error)
	IsVisible(ctx context.Context) (bool, error)
	IsEnabled(ctx context.Context) (bool, error)
	Click(ctx context.Context) error
	TypeText(ctx context.Context, s string) error
	Clear(ctx context.Context) error
	// SetFiles attaches local file paths to a file input element.
	SetFiles(ctx context.Context, paths ...string) error
}

// Session is a single automated browsing session. It is used by exactly one
// logical thread of control; implementations are not required to be safe for
// concurrent use.
type Session interface {
	Navigate(ctx context.Context, url string) error
	FindAll(ctx context.Context, loc Locator) ([]Element, error)
	// FindFirst returns the first matching element in document order, or
	// ErrNoMatch when nothing matches.
	FindFirst(ctx context.Context, loc Locator) (Element, error)
	// WaitVisible blocks until an element matching loc is visible or the
	// timeout expires. Expiry is reported as an error; callers decide
	// whether that is fatal.
	WaitVisible(ctx context.Context, loc Locator, timeout time.Duration) error
	// ScrollExtent reports the current scrollable height of the page, used
	// by the harvester to detect stagnation.
	ScrollExtent(ctx context.Context) (float64, error)
	// ScrollBy scrolls down by the given fraction of the current extent.
	ScrollBy(ctx context.Context, fraction float64) error
	// HTML returns the rendered markup of the current page.
	HTML(ctx context.Context) (string, error)
	Close() error
}
