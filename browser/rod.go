// Package browser drives a real Chrome page with Rod. RodNavigator is the
// Navigator used when a server-rendered catalog page must be reloaded.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/Modeva-Ecommerce/modeva-storefront-filters/filters"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

type Config struct {
	Headless bool          // Run in headless mode (default: true)
	Timeout  time.Duration // Per navigation timeout (default: 30s)
}

func DefaultConfig() Config {
	return Config{
		Headless: true,
		Timeout:  30 * time.Second,
	}
}

// Client owns one Chrome process.
type Client struct {
	browser *rod.Browser
	timeout time.Duration
}

func Launch(cfg Config) (*Client, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		Set("no-sandbox").
		Set("disable-gpu")

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch Chrome: %w", err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to Chrome: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultConfig().Timeout
	}
	return &Client{browser: b, timeout: timeout}, nil
}

// Open creates a tab on url and returns its navigator.
func (c *Client) Open(ctx context.Context, url string) (*RodNavigator, error) {
	page, err := c.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	nav := NewRodNavigator(page, c.timeout)
	if err := nav.Navigate(ctx, url); err != nil {
		return nil, err
	}
	if err := nav.WaitLoad(ctx); err != nil {
		return nil, err
	}
	return nav, nil
}

// Close cleans up browser resources.
// Always call this (via defer) to prevent orphaned Chrome processes.
func (c *Client) Close() error {
	if c.browser != nil {
		return c.browser.Close()
	}
	return nil
}

var _ filters.Navigator = (*RodNavigator)(nil)

type RodNavigator struct {
	page    *rod.Page
	timeout time.Duration
}

func NewRodNavigator(page *rod.Page, timeout time.Duration) *RodNavigator {
	return &RodNavigator{page: page, timeout: timeout}
}

// Navigate starts loading target and returns once the browser accepted the
// navigation. It does not wait for the new page; use WaitLoad for that.
func (n *RodNavigator) Navigate(ctx context.Context, target string) error {
	if err := n.page.Context(ctx).Timeout(n.timeout).Navigate(target); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", target, err)
	}
	return nil
}

// WaitLoad blocks until the current page fired its load event.
func (n *RodNavigator) WaitLoad(ctx context.Context) error {
	if err := n.page.Context(ctx).Timeout(n.timeout).WaitLoad(); err != nil {
		return fmt.Errorf("failed to wait for page load: %w", err)
	}
	return nil
}

// URL returns the address the page is showing.
func (n *RodNavigator) URL() (string, error) {
	info, err := n.page.Info()
	if err != nil {
		return "", err
	}
	return info.URL, nil
}

// Text returns the text of the first element matching selector.
func (n *RodNavigator) Text(selector string) (string, error) {
	body, err := n.page.Timeout(n.timeout).Element(selector)
	if err != nil {
		return "", err
	}
	return body.Text()
}

func (n *RodNavigator) Page() *rod.Page {
	return n.page
}
