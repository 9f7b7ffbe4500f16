package filters

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// RenderContext is the host that renders the product list. It is decided by
// the page and handed to the widget; the widget never infers it.
type RenderContext int

const (
	// ClientBlock filters a list already loaded in memory, without navigation.
	ClientBlock RenderContext = iota
	// ServerPage lists products from a server response, so filter changes
	// navigate to a URL carrying the encoded selection.
	ServerPage
)

func (rc RenderContext) String() string {
	if rc == ServerPage {
		return "server_page"
	}
	return "client_block"
}

func ParseRenderContext(s string) (RenderContext, error) {
	switch strings.ToLower(s) {
	case "", "client", "client_block", "block":
		return ClientBlock, nil
	case "server", "server_page", "page":
		return ServerPage, nil
	}
	return ClientBlock, fmt.Errorf("unknown render context %q", s)
}

// Renderer redraws the in-memory product list of a client block.
type Renderer interface {
	Render(ctx context.Context, items []Product) error
}

// Navigator requests a full page load. Implementations must not wait for the
// new page: once requested, the page belongs to the browser.
type Navigator interface {
	Navigate(ctx context.Context, target string) error
}

// AppliedResult describes what Apply did.
type AppliedResult struct {
	Context RenderContext
	// Count is the number of rendered items (ClientBlock only).
	Count int
	// Navigated is true when a page load was requested.
	Navigated bool
	// URL is the target of the navigation, or the unchanged current URL.
	URL string
}

// Pagination parameters reset on every filter change.
var pagingParams = map[string]bool{"paged": true, "page": true, "product-page": true}

var pagePathSegment = regexp.MustCompile(`/page/[0-9]+/?$`)

// Adapter applies committed selections to the rendering context.
type Adapter struct {
	products  []Product
	renderer  Renderer
	navigator Navigator
	current   *url.URL
	logger    *zap.Logger

	// superseded is set once a navigation was requested; the page is about to
	// be replaced and this widget instance no longer owns it.
	superseded bool
}

type AdapterOption func(*Adapter)

// WithProducts sets the in-memory list rendered by a client block.
func WithProducts(products []Product) AdapterOption {
	return func(a *Adapter) { a.products = products }
}

func WithRenderer(r Renderer) AdapterOption {
	return func(a *Adapter) { a.renderer = r }
}

func WithNavigator(n Navigator) AdapterOption {
	return func(a *Adapter) { a.navigator = n }
}

// WithCurrentURL sets the URL of the page hosting the widget.
func WithCurrentURL(u *url.URL) AdapterOption {
	return func(a *Adapter) {
		c := *u
		a.current = &c
	}
}

func WithAdapterLogger(l *zap.Logger) AdapterOption {
	return func(a *Adapter) { a.logger = l }
}

func NewAdapter(opts ...AdapterOption) *Adapter {
	a := &Adapter{
		current: &url.URL{Path: "/"},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// CurrentURL returns the URL the adapter believes the page is on.
func (a *Adapter) CurrentURL() string {
	return a.current.String()
}

// Apply makes sel visible in rc. The decision depends only on rc and on
// whether the encoded target differs from the current URL, never on which
// widget fired.
func (a *Adapter) Apply(ctx context.Context, sel Selection, rc RenderContext) (AppliedResult, error) {
	switch rc {
	case ClientBlock:
		return a.applyClient(ctx, sel)
	case ServerPage:
		return a.applyServer(ctx, sel)
	}
	return AppliedResult{}, fmt.Errorf("unknown render context %d", rc)
}

func (a *Adapter) applyClient(ctx context.Context, sel Selection) (AppliedResult, error) {
	items := sel.Filter(a.products)
	if a.renderer != nil {
		if err := a.renderer.Render(ctx, items); err != nil {
			return AppliedResult{}, fmt.Errorf("render product list: %w", err)
		}
	}
	a.logger.Debug("client block re-rendered", zap.Int("count", len(items)))
	return AppliedResult{Context: ClientBlock, Count: len(items)}, nil
}

func (a *Adapter) applyServer(ctx context.Context, sel Selection) (AppliedResult, error) {
	if reflected, err := DecodeLenient(a.current.RawQuery); err == nil && reflected.SameFilters(sel) {
		return AppliedResult{Context: ServerPage, URL: a.current.String()}, nil
	}
	target := TargetURL(a.current, sel)
	if target.String() == a.current.String() {
		return AppliedResult{Context: ServerPage, URL: target.String()}, nil
	}
	if a.superseded {
		return AppliedResult{}, fmt.Errorf("%w: page already navigating to %s", ErrNavigationAborted, a.current)
	}
	if a.navigator == nil {
		return AppliedResult{}, fmt.Errorf("%w: no navigator configured", ErrNavigationAborted)
	}
	if err := a.navigator.Navigate(ctx, target.String()); err != nil {
		return AppliedResult{}, fmt.Errorf("%w: %w", ErrNavigationAborted, err)
	}
	a.current = target
	a.superseded = true
	a.logger.Debug("navigation requested", zap.String("url", target.String()))
	return AppliedResult{Context: ServerPage, Navigated: true, URL: target.String()}, nil
}

// TargetURL replaces the filter parameters of current with the encoded
// selection. Unrelated parameters keep their order and come first;
// pagination is reset to the first page.
func TargetURL(current *url.URL, sel Selection) *url.URL {
	target := *current
	target.Path = pagePathSegment.ReplaceAllString(current.Path, "/")
	target.RawPath = ""

	var kept []string
	for _, piece := range strings.Split(current.RawQuery, paramSeparator) {
		if piece == "" {
			continue
		}
		rawName, _, _ := strings.Cut(piece, keyValueSeparator)
		name, err := url.QueryUnescape(rawName)
		if err != nil || IsFilterParam(name) || pagingParams[name] {
			continue
		}
		kept = append(kept, piece)
	}
	if encoded := Encode(sel); encoded != "" {
		kept = append(kept, encoded)
	}
	target.RawQuery = strings.Join(kept, paramSeparator)
	target.ForceQuery = false
	return &target
}
