package rod

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fwojciec/schemascan"
	"github.com/go-rod/rod/lib/proto"
)

var _ schemascan.Fetcher = (*Fetcher)(nil)

// Default timings for a single fetch.
const (
	DefaultFetchTimeout = 30 * time.Second
	DefaultIdleWindow   = 500 * time.Millisecond
	DefaultIdleTimeout  = 5 * time.Second
)

// Fetcher retrieves rendered HTML with headless Chrome. Structured data
// injected by client-side scripts is present in the returned markup.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager      *BrowserManager
	managerOpts  []ManagerOption
	fetchTimeout time.Duration
	idleWindow   time.Duration
	idleTimeout  time.Duration
	closed       atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout bounds navigation, load and serialization of one page.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.fetchTimeout = d
	}
}

// WithNetworkIdle sets how long the network must stay quiet before the page
// counts as rendered, and how long to wait for that at most.
func WithNetworkIdle(window, timeout time.Duration) Option {
	return func(f *Fetcher) {
		f.idleWindow = window
		f.idleTimeout = timeout
	}
}

// WithManagerOptions passes options to the underlying BrowserManager.
func WithManagerOptions(opts ...ManagerOption) Option {
	return func(f *Fetcher) {
		f.managerOpts = append(f.managerOpts, opts...)
	}
}

// NewFetcher launches a managed headless browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		fetchTimeout: DefaultFetchTimeout,
		idleWindow:   DefaultIdleWindow,
		idleTimeout:  DefaultIdleTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager(f.managerOpts...)
	if err != nil {
		return nil, err
	}
	f.manager = manager
	return f, nil
}

// Fetch navigates to url, waits for the load event and for the network to
// settle, and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", schemascan.Errorf(schemascan.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if f.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.fetchTimeout)
		defer cancel()
	}

	html, err := f.render(ctx, url)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("fetching %s: %w", url, ctxErr)
		}
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}

	f.manager.IncrementPageCount()
	return html, nil
}

func (f *Fetcher) render(ctx context.Context, url string) (string, error) {
	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}
	if f.idleWindow > 0 {
		page.Timeout(f.idleTimeout).WaitRequestIdle(f.idleWindow, nil, nil, nil)()
	}

	return page.HTML()
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}
