package rod

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the number of pages rendered before the browser is
// replaced with a fresh process.
const DefaultMaxPages = 75

// DefaultUserAgent is sent by the browser unless WithUserAgent overrides it.
const DefaultUserAgent = "Mozilla/5.0 (compatible; schemascan/1.0; +https://github.com/fwojciec/schemascan)"

// BrowserManager owns one headless Chrome process and replaces it after
// maxPages renders. Chrome's resident memory grows with every page and never
// returns to its baseline, so long sitemap runs need periodic restarts.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu       sync.Mutex
	current  *instance
	rendered atomic.Int64
	closed   atomic.Bool

	maxPages  int64
	binPath   string
	noSandbox bool
	userAgent string
	logger    *slog.Logger
}

// instance is a running browser and the launcher that started it.
type instance struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
}

func (in *instance) close() error {
	var err error
	if in.browser != nil {
		err = in.browser.Close()
	}
	if in.launcher != nil {
		in.launcher.Kill()
	}
	return err
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets how many pages are rendered before the browser restarts.
func WithMaxPages(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxPages = n
	}
}

// WithChromePath uses the Chrome or Chromium binary at path instead of
// searching for one.
func WithChromePath(path string) ManagerOption {
	return func(bm *BrowserManager) {
		bm.binPath = path
	}
}

// WithNoSandbox disables the Chrome sandbox, which containers running as
// root require.
func WithNoSandbox(disable bool) ManagerOption {
	return func(bm *BrowserManager) {
		bm.noSandbox = disable
	}
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) ManagerOption {
	return func(bm *BrowserManager) {
		bm.userAgent = ua
	}
}

// WithLogger reports failed restarts. Nothing is logged by default.
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(bm *BrowserManager) {
		bm.logger = logger
	}
}

// NewBrowserManager starts a headless browser. Close must be called when the
// BrowserManager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{
		maxPages:  DefaultMaxPages,
		userAgent: DefaultUserAgent,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(bm)
	}

	in, err := bm.start()
	if err != nil {
		return nil, err
	}
	bm.current = in
	return bm, nil
}

// Browser returns the running browser, restarting it first when the page
// budget is spent. Callers report each rendered page with
// IncrementPageCount.
func (bm *BrowserManager) Browser() *rod.Browser {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.maxPages > 0 && bm.rendered.Load() >= bm.maxPages {
		bm.restart()
	}
	if bm.current == nil {
		return nil
	}
	return bm.current.browser
}

// IncrementPageCount counts one rendered page toward the restart threshold.
func (bm *BrowserManager) IncrementPageCount() {
	bm.rendered.Add(1)
}

// Close stops the browser. Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	if !bm.closed.CompareAndSwap(false, true) {
		return nil
	}

	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.current == nil {
		return nil
	}
	err := bm.current.close()
	bm.current = nil
	return err
}

// newLauncher returns the launch configuration shared by every browser start.
func (bm *BrowserManager) newLauncher() *launcher.Launcher {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Set("user-agent", bm.userAgent).
		NoSandbox(bm.noSandbox).
		Leakless(true).
		Headless(true)
	if bm.binPath != "" {
		l = l.Bin(bm.binPath)
	}
	return l
}

func (bm *BrowserManager) start() (*instance, error) {
	l := bm.newLauncher()
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return &instance{browser: browser, launcher: l}, nil
}

// restart swaps in a fresh browser. The old one keeps serving when the new
// one fails to start. Must be called with mu held.
func (bm *BrowserManager) restart() {
	next, err := bm.start()
	if err != nil {
		bm.logger.Warn("browser restart failed, reusing current browser", "err", err)
		return
	}

	if bm.current != nil {
		_ = bm.current.close()
	}
	bm.current = next
	bm.rendered.Store(0)
}

// LauncherPID returns the process ID of the browser launcher, or 0 after
// Close. Tests use it to verify cleanup.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.current == nil || bm.current.launcher == nil {
		return 0
	}
	return bm.current.launcher.PID()
}
