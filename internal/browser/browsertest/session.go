// Package browsertest provides a scriptable in-memory Session implementation
// for unit-testing components that consume the browser capability interface.
package browsertest

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/jobscout/internal/browser"
)

// Element is a scripted element handle. Zero values are usable; set fields
// to shape behavior.
type Element struct {
	TextValue string
	Attrs     map[string]string
	Hidden    bool
	Disabled  bool

	ClickErr error
	TypeErr  error

	// OnClick runs after a successful Click, typically to mutate the page.
	OnClick func()

	Clicks  int
	Typed   []string
	Cleared int
	Files   []string
}

var _ browser.Element = (*Element)(nil)

func (e *Element) Text(context.Context) (string, error) { return e.TextValue, nil }

func (e *Element) Attribute(_ context.Context, name string) (string, error) {
	return e.Attrs[name], nil
}

func (e *Element) IsVisible(context.Context) (bool, error) { return !e.Hidden, nil }
func (e *Element) IsEnabled(context.Context) (bool, error) { return !e.Disabled, nil }

func (e *Element) Click(context.Context) error {
	if e.ClickErr != nil {
		return e.ClickErr
	}
	e.Clicks++
	if e.OnClick != nil {
		e.OnClick()
	}
	return nil
}

func (e *Element) TypeText(_ context.Context, s string) error {
	if e.TypeErr != nil {
		return e.TypeErr
	}
	e.Typed = append(e.Typed, s)
	return nil
}

func (e *Element) Clear(context.Context) error {
	e.Cleared++
	return nil
}

func (e *Element) SetFiles(_ context.Context, paths ...string) error {
	e.Files = append(e.Files, paths...)
	return nil
}

// Page is one scripted page of a Session.
type Page struct {
	Elements map[browser.Locator][]*Element
	Markup   string
	Extent   float64

	// OnScroll runs on every ScrollBy against this page, typically to
	// append elements or grow Extent, simulating lazy loading.
	OnScroll func(p *Page)
}

// Add appends scripted elements under a locator.
func (p *Page) Add(loc browser.Locator, elems ...*Element) {
	if p.Elements == nil {
		p.Elements = map[browser.Locator][]*Element{}
	}
	p.Elements[loc] = append(p.Elements[loc], elems...)
}

// Session is a scripted browser session backed by an in-memory page map.
type Session struct {
	Pages   map[string]*Page
	Current *Page

	NavigateErrs map[string]error
	Navigations  []string
	ScrollCalls  int
	Closed       bool
}

var _ browser.Session = (*Session)(nil)

// NewSession returns an empty scripted session.
func NewSession() *Session {
	return &Session{Pages: map[string]*Page{}}
}

// AddPage registers a page under a URL and returns it for scripting.
func (s *Session) AddPage(url string) *Page {
	p := &Page{Elements: map[browser.Locator][]*Element{}}
	s.Pages[url] = p
	return p
}

func (s *Session) Navigate(_ context.Context, url string) error {
	s.Navigations = append(s.Navigations, url)
	if err := s.NavigateErrs[url]; err != nil {
		return err
	}
	p, ok := s.Pages[url]
	if !ok {
		return fmt.Errorf("browsertest: no page scripted for %s", url)
	}
	s.Current = p
	return nil
}

func (s *Session) FindAll(_ context.Context, loc browser.Locator) ([]browser.Element, error) {
	if s.Current == nil {
		return nil, nil
	}
	scripted := s.Current.Elements[loc]
	elems := make([]browser.Element, 0, len(scripted))
	for _, e := range scripted {
		elems = append(elems, e)
	}
	return elems, nil
}

func (s *Session) FindFirst(ctx context.Context, loc browser.Locator) (browser.Element, error) {
	elems, err := s.FindAll(ctx, loc)
	if err != nil {
		return nil, err
	}
	if len(elems) == 0 {
		return nil, browser.ErrNoMatch
	}
	return elems[0], nil
}

func (s *Session) WaitVisible(ctx context.Context, loc browser.Locator, _ time.Duration) error {
	elems, err := s.FindAll(ctx, loc)
	if err != nil {
		return err
	}
	for _, e := range elems {
		if visible, _ := e.IsVisible(ctx); visible {
			return nil
		}
	}
	return fmt.Errorf("browsertest: %q never became visible", loc)
}

func (s *Session) ScrollExtent(context.Context) (float64, error) {
	if s.Current == nil {
		return 0, nil
	}
	return s.Current.Extent, nil
}

func (s *Session) ScrollBy(_ context.Context, _ float64) error {
	s.ScrollCalls++
	if s.Current != nil && s.Current.OnScroll != nil {
		s.Current.OnScroll(s.Current)
	}
	return nil
}

func (s *Session) HTML(context.Context) (string, error) {
	if s.Current == nil {
		return "", nil
	}
	return s.Current.Markup, nil
}

func (s *Session) Close() error {
	s.Closed = true
	return nil
}
