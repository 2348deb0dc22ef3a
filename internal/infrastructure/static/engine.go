// Package static implements the ports.Browser surface over plain HTTP.
// It fetches documents with resty and resolves locators against the parsed
// tree (goquery for CSS, htmlquery for XPath). There is no script
// execution: waits degrade to immediate lookups, clicking an anchor
// navigates to its href, and every other interaction reports
// ports.ErrInteractionUnsupported.
package static

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html"

	"AspectScanner/internal/ports"
)

const userAgent = "AspectScanner/1.0"

// Engine fetches and queries static documents.
type Engine struct {
	client *resty.Client
	logger *slog.Logger

	root *html.Node
	doc  *goquery.Document
	base *url.URL
}

var _ ports.Browser = (*Engine)(nil)

// New builds a static engine with the given request timeout.
func New(timeout time.Duration, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent)
	return &Engine{client: client, logger: logger}
}

// Navigate fetches the URL and replaces the current document.
func (e *Engine) Navigate(ctx context.Context, pageURL string) error {
	resp, err := e.client.R().SetContext(ctx).Get(pageURL)
	if err != nil {
		return fmt.Errorf("fetch %s: %w: %v", pageURL, ports.ErrEngineFault, err)
	}
	if resp.StatusCode() != 200 {
		return fmt.Errorf("fetch %s: %w: status %s", pageURL, ports.ErrEngineFault, resp.Status())
	}

	root, err := htmlquery.Parse(strings.NewReader(string(resp.Body())))
	if err != nil {
		return fmt.Errorf("parse %s: %w: %v", pageURL, ports.ErrEngineFault, err)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return fmt.Errorf("parse url %s: %w: %v", pageURL, ports.ErrEngineFault, err)
	}

	e.root = root
	e.doc = goquery.NewDocumentFromNode(root)
	e.base = base
	return nil
}

// Element resolves a locator against the current document.
func (e *Engine) Element(ctx context.Context, loc ports.Locator) (ports.Element, error) {
	nodes, err := e.find(loc)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("locate %s: %w", loc.Query, ports.ErrElementNotFound)
	}
	return &element{engine: e, node: nodes[0]}, nil
}

// Elements resolves all matches; none is an empty slice.
func (e *Engine) Elements(ctx context.Context, loc ports.Locator) ([]ports.Element, error) {
	nodes, err := e.find(loc)
	if err != nil {
		return nil, err
	}
	return e.wrap(nodes), nil
}

// WaitVisible degrades to an immediate lookup; a static document has no
// rendering to wait for. An unresolved locator reports a timeout so that
// page-loop termination behaves as with a live engine.
func (e *Engine) WaitVisible(ctx context.Context, loc ports.Locator, timeout time.Duration) (ports.Element, error) {
	return e.immediate(loc)
}

// WaitPresent degrades to an immediate lookup.
func (e *Engine) WaitPresent(ctx context.Context, loc ports.Locator, timeout time.Duration) (ports.Element, error) {
	return e.immediate(loc)
}

// WaitVisibleAll degrades to an immediate lookup over all matches.
func (e *Engine) WaitVisibleAll(ctx context.Context, loc ports.Locator, timeout time.Duration) ([]ports.Element, error) {
	nodes, err := e.find(loc)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("wait visible all %s: %w", loc.Query, ports.ErrWaitTimeout)
	}
	return e.wrap(nodes), nil
}

// CurrentURL reports the URL of the last fetched document.
func (e *Engine) CurrentURL(ctx context.Context) (string, error) {
	if e.base == nil {
		return "", fmt.Errorf("no document loaded: %w", ports.ErrEngineFault)
	}
	return e.base.String(), nil
}

// Quit drops the current document. There is no session to release.
func (e *Engine) Quit() error {
	e.root = nil
	e.doc = nil
	e.base = nil
	return nil
}

func (e *Engine) immediate(loc ports.Locator) (ports.Element, error) {
	nodes, err := e.find(loc)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("wait %s: %w", loc.Query, ports.ErrWaitTimeout)
	}
	return &element{engine: e, node: nodes[0]}, nil
}

func (e *Engine) find(loc ports.Locator) ([]*html.Node, error) {
	if e.root == nil {
		return nil, fmt.Errorf("no document loaded: %w", ports.ErrEngineFault)
	}
	return findIn(e.root, e.doc, loc)
}

func findIn(root *html.Node, doc *goquery.Document, loc ports.Locator) ([]*html.Node, error) {
	switch loc.Kind {
	case ports.ByXPath:
		nodes, err := htmlquery.QueryAll(root, loc.Query)
		if err != nil {
			return nil, fmt.Errorf("xpath %s: %w: %v", loc.Query, ports.ErrEngineFault, err)
		}
		return nodes, nil
	default:
		if doc == nil {
			doc = goquery.NewDocumentFromNode(root)
		}
		return doc.Find(loc.Query).Nodes, nil
	}
}

func (e *Engine) wrap(nodes []*html.Node) []ports.Element {
	wrapped := make([]ports.Element, 0, len(nodes))
	for _, node := range nodes {
		wrapped = append(wrapped, &element{engine: e, node: node})
	}
	return wrapped
}

type element struct {
	engine *Engine
	node   *html.Node
}

var _ ports.Element = (*element)(nil)

func (el *element) Text() (string, error) {
	return htmlquery.InnerText(el.node), nil
}

// Click follows an anchor's href; any other element cannot be clicked
// without script execution.
func (el *element) Click() error {
	if el.node.Type != html.ElementNode || el.node.Data != "a" {
		return fmt.Errorf("click non-anchor: %w", ports.ErrInteractionUnsupported)
	}

	href := htmlquery.SelectAttr(el.node, "href")
	if href == "" {
		return fmt.Errorf("click anchor without href: %w", ports.ErrInteractionUnsupported)
	}

	target, err := el.resolve(href)
	if err != nil {
		return err
	}
	return el.engine.Navigate(context.Background(), target)
}

func (el *element) ScrollIntoView() error {
	return nil
}

func (el *element) Input(text string) error {
	return fmt.Errorf("input text: %w", ports.ErrInteractionUnsupported)
}

// Enabled checks attribute presence: a bare disabled attribute parses
// with an empty value.
func (el *element) Enabled() (bool, error) {
	for _, attr := range el.node.Attr {
		if attr.Key == "disabled" {
			return false, nil
		}
	}
	return true, nil
}

func (el *element) Attribute(name string) (string, error) {
	return htmlquery.SelectAttr(el.node, name), nil
}

func (el *element) Elements(loc ports.Locator) ([]ports.Element, error) {
	nodes, err := findIn(el.node, nil, loc)
	if err != nil {
		return nil, err
	}
	return el.engine.wrap(nodes), nil
}

func (el *element) resolve(href string) (string, error) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("resolve href %s: %w: %v", href, ports.ErrEngineFault, err)
	}
	if el.engine.base == nil {
		return ref.String(), nil
	}
	return el.engine.base.ResolveReference(ref).String(), nil
}
