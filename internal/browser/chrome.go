// chrome.go implements Session on top of a chromedp-driven Chrome instance.
package browser

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/chromedp"
)

// Options configures the Chrome session.
type Options struct {
	// UserDataDir points at an existing Chrome profile directory so the
	// session reuses an already-authenticated identity. Empty means a
	// throwaway profile.
	UserDataDir string
	// ProfileName selects the profile inside UserDataDir (usually "Default").
	ProfileName string
	Headless    bool
	Verbose     bool
}

// ChromeSession drives a single Chrome instance via the DevTools protocol.
// It owns the browser lifetime; Close releases it.
type ChromeSession struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	verbose     bool
}

// NewChromeSession launches Chrome and returns a ready Session.
// Requires Chrome/Chromium to be installed on the system.
func NewChromeSession(ctx context.Context, opts Options) (*ChromeSession, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("start-maximized", true),
	)
	if opts.UserDataDir != "" {
		allocOpts = append(allocOpts, chromedp.UserDataDir(opts.UserDataDir))
		if opts.ProfileName != "" {
			allocOpts = append(allocOpts, chromedp.Flag("profile-directory", opts.ProfileName))
		}
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	browserCtx, cancel := chromedp.NewContext(allocCtx)

	// Start the browser eagerly so a missing Chrome binary surfaces here
	// instead of on the first navigation.
	if err := chromedp.Run(browserCtx); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	if opts.Verbose {
		log.Printf("[BROWSER] Started Chrome (headless=%v, profile=%q)", opts.Headless, opts.UserDataDir)
	}

	return &ChromeSession{
		ctx:         browserCtx,
		cancel:      cancel,
		allocCancel: allocCancel,
		verbose:     opts.Verbose,
	}, nil
}

// run executes chromedp actions on the browser context. chromedp actions must
// run on the session's own context chain; the caller context only gates
// cancellation.
func (s *ChromeSession) run(ctx context.Context, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return chromedp.Run(s.ctx, actions...)
}

// Navigate loads the URL and waits for baseline content to be present.
func (s *ChromeSession) Navigate(ctx context.Context, url string) error {
	if s.verbose {
		log.Printf("[BROWSER] Navigating to %s", url)
	}
	if err := s.run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	return nil
}

func queryOpt(loc Locator) chromedp.QueryOption {
	if loc.IsXPath() {
		return chromedp.BySearch
	}
	return chromedp.ByQueryAll
}

// FindAll returns handles for every element matching loc, in document order.
func (s *ChromeSession) FindAll(ctx context.Context, loc Locator) ([]Element, error) {
	var nodes []*cdp.Node
	err := s.run(ctx, chromedp.Nodes(string(loc), &nodes, queryOpt(loc), chromedp.AtLeast(0)))
	if err != nil {
		return nil, fmt.Errorf("find %q: %w", loc, err)
	}
	elems := make([]Element, 0, len(nodes))
	for _, n := range nodes {
		elems = append(elems, &chromeElement{sess: s, node: n})
	}
	return elems, nil
}

// FindFirst returns the first element matching loc, or ErrNoMatch.
func (s *ChromeSession) FindFirst(ctx context.Context, loc Locator) (Element, error) {
	elems, err := s.FindAll(ctx, loc)
	if err != nil {
		return nil, err
	}
	if len(elems) == 0 {
		return nil, ErrNoMatch
	}
	return elems[0], nil
}

// WaitVisible blocks until loc is visible or timeout expires.
func (s *ChromeSession) WaitVisible(ctx context.Context, loc Locator, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	waitCtx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()
	if err := chromedp.Run(waitCtx, chromedp.WaitVisible(string(loc), queryOpt(loc))); err != nil {
		return fmt.Errorf("wait for %q: %w", loc, err)
	}
	return nil
}

// ScrollExtent reports document.body.scrollHeight.
func (s *ChromeSession) ScrollExtent(ctx context.Context) (float64, error) {
	var extent float64
	if err := s.run(ctx, chromedp.Evaluate(`document.body.scrollHeight`, &extent)); err != nil {
		return 0, fmt.Errorf("read scroll extent: %w", err)
	}
	return extent, nil
}

// ScrollBy scrolls down by fraction of the current page extent.
func (s *ChromeSession) ScrollBy(ctx context.Context, fraction float64) error {
	expr := fmt.Sprintf(`window.scrollBy(0, document.body.scrollHeight*%g);`, fraction)
	if err := s.run(ctx, chromedp.Evaluate(expr, nil)); err != nil {
		return fmt.Errorf("scroll: %w", err)
	}
	return nil
}

// HTML returns the rendered markup of the current page.
func (s *ChromeSession) HTML(ctx context.Context) (string, error) {
	var html string
	if err := s.run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("read page HTML: %w", err)
	}
	return html, nil
}

// Close shuts the browser down.
func (s *ChromeSession) Close() error {
	s.cancel()
	s.allocCancel()
	return nil
}

// chromeElement is a handle backed by a DevTools node ID.
type chromeElement struct {
	sess *ChromeSession
	node *cdp.Node
}

func (e *chromeElement) ids() []cdp.NodeID {
	return []cdp.NodeID{e.node.NodeID}
}

func (e *chromeElement) Text(ctx context.Context) (string, error) {
	var text string
	err := e.sess.run(ctx, chromedp.Text(e.ids(), &text, chromedp.ByNodeID))
	if err != nil {
		return "", fmt.Errorf("element text: %w", err)
	}
	return text, nil
}

func (e *chromeElement) Attribute(ctx context.Context, name string) (string, error) {
	var value string
	var ok bool
	err := e.sess.run(ctx, chromedp.AttributeValue(e.ids(), name, &value, &ok, chromedp.ByNodeID))
	if err != nil {
		return "", fmt.Errorf("element attribute %q: %w", name, err)
	}
	if !ok {
		return "", nil
	}
	return value, nil
}

// IsVisible reports whether the element has a layout box with non-zero area.
// A detached or display:none element has no box model and reports false.
func (e *chromeElement) IsVisible(ctx context.Context) (bool, error) {
	var visible bool
	err := e.sess.run(ctx, chromedp.ActionFunc(func(cctx context.Context) error {
		box, err := dom.GetBoxModel().WithNodeID(e.node.NodeID).Do(cctx)
		if err != nil || box == nil {
			visible = false
			return nil
		}
		visible = box.Width > 0 && box.Height > 0
		return nil
	}))
	if err != nil {
		return false, err
	}
	return visible, nil
}

// IsEnabled checks for the boolean disabled attribute. Any value, including
// the empty string, means disabled, so presence is what matters.
func (e *chromeElement) IsEnabled(_ context.Context) (bool, error) {
	for i := 0; i+1 < len(e.node.Attributes); i += 2 {
		if e.node.Attributes[i] == "disabled" {
			return false, nil
		}
	}
	return true, nil
}

func (e *chromeElement) Click(ctx context.Context) error {
	if err := e.sess.run(ctx, chromedp.MouseClickNode(e.node)); err != nil {
		return fmt.Errorf("click: %w", err)
	}
	return nil
}

func (e *chromeElement) TypeText(ctx context.Context, s string) error {
	if err := e.sess.run(ctx, chromedp.SendKeys(e.ids(), s, chromedp.ByNodeID)); err != nil {
		return fmt.Errorf("type text: %w", err)
	}
	return nil
}

func (e *chromeElement) Clear(ctx context.Context) error {
	if err := e.sess.run(ctx, chromedp.Clear(e.ids(), chromedp.ByNodeID)); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	return nil
}

func (e *chromeElement) SetFiles(ctx context.Context, paths ...string) error {
	if err := e.sess.run(ctx, chromedp.SetUploadFiles(e.ids(), paths, chromedp.ByNodeID)); err != nil {
		return fmt.Errorf("set upload files: %w", err)
	}
	return nil
}
