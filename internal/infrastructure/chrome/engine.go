// Package chrome adapts a Rod-driven headless Chromium to the ports.Browser
// capability surface. One Engine owns one browser process and one page;
// Quit releases both.
package chrome

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"AspectScanner/internal/ports"
)

const visibilityPollInterval = 100 * time.Millisecond

// Config configures the Chromium launch.
type Config struct {
	Headless bool
	// RemoteURL is the WebSocket URL of an external Chrome instance.
	// Empty launches a local browser via the Rod launcher.
	RemoteURL string
}

// Engine drives one Chromium session.
type Engine struct {
	browser *rod.Browser
	page    *rod.Page
	lnch    *launcher.Launcher
	logger  *slog.Logger
	closed  bool
}

var _ ports.Browser = (*Engine)(nil)

// New launches (or attaches to) a Chromium and opens a single stealth page.
func New(cfg Config, logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		wsURL string
		lnch  *launcher.Launcher
	)

	if cfg.RemoteURL != "" {
		wsURL = cfg.RemoteURL
		logger.Info("connecting to remote chrome", "url", wsURL)
	} else {
		lnch = launcher.New().
			Headless(cfg.Headless).
			NoSandbox(true).
			Set("disable-gpu")

		u, err := lnch.Launch()
		if err != nil {
			return nil, fmt.Errorf("launch chrome: %w", err)
		}
		wsURL = u
		logger.Info("launched local chrome", "headless", cfg.Headless)
	}

	browser := rod.New().ControlURL(wsURL)
	if err := browser.Connect(); err != nil {
		if lnch != nil {
			lnch.Cleanup()
		}
		return nil, fmt.Errorf("connect chrome: %w", err)
	}

	page, err := stealth.Page(browser)
	if err != nil {
		browser.Close()
		if lnch != nil {
			lnch.Cleanup()
		}
		return nil, fmt.Errorf("create stealth page: %w", err)
	}

	return &Engine{browser: browser, page: page, lnch: lnch, logger: logger}, nil
}

// Navigate loads the URL and waits for the load event. A failed load event
// is logged, not fatal: the target app keeps rendering after it.
func (e *Engine) Navigate(ctx context.Context, url string) error {
	if err := e.page.Context(ctx).Navigate(url); err != nil {
		return fmt.Errorf("navigate %s: %w: %v", url, ports.ErrEngineFault, err)
	}
	if err := e.page.Context(ctx).WaitLoad(); err != nil {
		e.logger.Warn("wait load failed", "url", url, "error", err)
	}
	return nil
}

// Element locates one element without waiting.
func (e *Engine) Element(ctx context.Context, loc ports.Locator) (ports.Element, error) {
	page := e.page.Context(ctx).Sleeper(rod.NotFoundSleeper)

	var (
		el  *rod.Element
		err error
	)
	switch loc.Kind {
	case ports.ByXPath:
		el, err = page.ElementX(loc.Query)
	default:
		el, err = page.Element(loc.Query)
	}
	if err != nil {
		return nil, mapRodError("locate", loc, err)
	}
	return &element{el: el}, nil
}

// Elements locates all matches without waiting; none is an empty slice.
func (e *Engine) Elements(ctx context.Context, loc ports.Locator) ([]ports.Element, error) {
	page := e.page.Context(ctx)

	var (
		els rod.Elements
		err error
	)
	switch loc.Kind {
	case ports.ByXPath:
		els, err = page.ElementsX(loc.Query)
	default:
		els, err = page.Elements(loc.Query)
	}
	if err != nil {
		return nil, mapRodError("locate all", loc, err)
	}
	return wrapElements(els), nil
}

// WaitVisible blocks until the element exists and is rendered visible.
func (e *Engine) WaitVisible(ctx context.Context, loc ports.Locator, timeout time.Duration) (ports.Element, error) {
	el, err := e.waitExists(ctx, loc, timeout)
	if err != nil {
		return nil, err
	}
	if err := el.Timeout(timeout).WaitVisible(); err != nil {
		return nil, mapRodError("wait visible", loc, err)
	}
	return &element{el: el}, nil
}

// WaitPresent blocks until the element exists in the DOM; visibility is
// not required.
func (e *Engine) WaitPresent(ctx context.Context, loc ports.Locator, timeout time.Duration) (ports.Element, error) {
	el, err := e.waitExists(ctx, loc, timeout)
	if err != nil {
		return nil, err
	}
	return &element{el: el}, nil
}

// WaitVisibleAll polls until at least one match is visible, then returns
// every match in document order.
func (e *Engine) WaitVisibleAll(ctx context.Context, loc ports.Locator, timeout time.Duration) ([]ports.Element, error) {
	deadline := time.Now().Add(timeout)
	for {
		els, err := e.Elements(ctx, loc)
		if err != nil {
			return nil, err
		}
		if len(els) > 0 {
			first := els[0].(*element)
			visible, vErr := first.el.Visible()
			if vErr == nil && visible {
				return els, nil
			}
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("wait visible all %s: %w", loc.Query, ports.ErrWaitTimeout)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(visibilityPollInterval):
		}
	}
}

// CurrentURL reports the page's current location.
func (e *Engine) CurrentURL(ctx context.Context) (string, error) {
	info, err := e.page.Context(ctx).Info()
	if err != nil {
		return "", fmt.Errorf("page info: %w: %v", ports.ErrEngineFault, err)
	}
	return info.URL, nil
}

// Quit closes the page, the browser connection, and the launched process.
func (e *Engine) Quit() error {
	if e.closed {
		return nil
	}
	e.closed = true

	if e.page != nil {
		if err := e.page.Close(); err != nil {
			e.logger.Warn("close page failed", "error", err)
		}
	}
	if e.browser != nil {
		if err := e.browser.Close(); err != nil {
			e.logger.Warn("close browser failed", "error", err)
		}
	}
	if e.lnch != nil {
		e.lnch.Cleanup()
	}
	return nil
}

func (e *Engine) waitExists(ctx context.Context, loc ports.Locator, timeout time.Duration) (*rod.Element, error) {
	page := e.page.Context(ctx).Timeout(timeout)

	var (
		el  *rod.Element
		err error
	)
	switch loc.Kind {
	case ports.ByXPath:
		el, err = page.ElementX(loc.Query)
	default:
		el, err = page.Element(loc.Query)
	}
	if err != nil {
		return nil, mapRodError("wait present", loc, err)
	}
	// Drop the wait deadline so later interactions with the element are
	// bounded by their own contexts.
	return el.CancelTimeout(), nil
}

type element struct {
	el *rod.Element
}

var _ ports.Element = (*element)(nil)

func (e *element) Text() (string, error) {
	text, err := e.el.Text()
	if err != nil {
		return "", fmt.Errorf("read text: %w: %v", ports.ErrEngineFault, err)
	}
	return text, nil
}

func (e *element) Click() error {
	if err := e.el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click: %w: %v", ports.ErrEngineFault, err)
	}
	return nil
}

func (e *element) ScrollIntoView() error {
	if err := e.el.ScrollIntoView(); err != nil {
		return fmt.Errorf("scroll into view: %w: %v", ports.ErrEngineFault, err)
	}
	return nil
}

func (e *element) Input(text string) error {
	if err := e.el.SelectAllText(); err != nil {
		return fmt.Errorf("select text: %w: %v", ports.ErrEngineFault, err)
	}
	if err := e.el.Input(text); err != nil {
		return fmt.Errorf("input text: %w: %v", ports.ErrEngineFault, err)
	}
	return nil
}

func (e *element) Enabled() (bool, error) {
	disabled, err := e.el.Property("disabled")
	if err != nil {
		return false, fmt.Errorf("read disabled property: %w: %v", ports.ErrEngineFault, err)
	}
	return !disabled.Bool(), nil
}

func (e *element) Attribute(name string) (string, error) {
	value, err := e.el.Attribute(name)
	if err != nil {
		return "", fmt.Errorf("read attribute %s: %w: %v", name, ports.ErrEngineFault, err)
	}
	if value == nil {
		return "", nil
	}
	return *value, nil
}

func (e *element) Elements(loc ports.Locator) ([]ports.Element, error) {
	var (
		els rod.Elements
		err error
	)
	switch loc.Kind {
	case ports.ByXPath:
		els, err = e.el.ElementsX(loc.Query)
	default:
		els, err = e.el.Elements(loc.Query)
	}
	if err != nil {
		return nil, mapRodError("locate descendants", loc, err)
	}
	return wrapElements(els), nil
}

func wrapElements(els rod.Elements) []ports.Element {
	wrapped := make([]ports.Element, 0, len(els))
	for _, el := range els {
		wrapped = append(wrapped, &element{el: el})
	}
	return wrapped
}

func mapRodError(op string, loc ports.Locator, err error) error {
	var notFound *rod.ElementNotFoundError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s %s: %w", op, loc.Query, ports.ErrWaitTimeout)
	case errors.As(err, &notFound):
		return fmt.Errorf("%s %s: %w", op, loc.Query, ports.ErrElementNotFound)
	default:
		return fmt.Errorf("%s %s: %w: %v", op, loc.Query, ports.ErrEngineFault, err)
	}
}
