package http

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/schemascan"
	"github.com/fwojciec/schemascan/bloom"
)

// DefaultMaxSitemapURLs caps how many page URLs one discovery returns.
const DefaultMaxSitemapURLs = 500

var _ schemascan.SitemapService = (*SitemapService)(nil)

// SitemapService discovers the pages of a site from its sitemaps.
type SitemapService struct {
	client    *http.Client
	userAgent string
	maxURLs   int
}

// SitemapOption configures a SitemapService.
type SitemapOption func(*SitemapService)

// WithMaxURLs caps the number of URLs returned. Zero or less means no cap.
func WithMaxURLs(n int) SitemapOption {
	return func(s *SitemapService) {
		s.maxURLs = n
	}
}

// WithSitemapUserAgent overrides DefaultUserAgent.
func WithSitemapUserAgent(ua string) SitemapOption {
	return func(s *SitemapService) {
		s.userAgent = ua
	}
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client, opts ...SitemapOption) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	s := &SitemapService{
		client:    client,
		userAgent: DefaultUserAgent,
		maxURLs:   DefaultMaxSitemapURLs,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DiscoverURLs returns the page URLs listed in a site's sitemaps, in
// sitemap order and without duplicates. Returns an empty slice (not nil)
// if no sitemap is found.
//
// When baseURL has a non-root path (e.g., https://example.com/shop/), only
// URLs below that path are returned.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *schemascan.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, schemascan.Errorf(schemascan.EINVALID, "invalid base URL: %s", baseURL)
	}

	prefix := base.Path
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	if prefix == "/" {
		prefix = ""
	}

	root := &url.URL{Scheme: base.Scheme, Host: base.Host}
	sitemaps, err := s.locateSitemaps(ctx, root)
	if err != nil {
		return nil, err
	}

	w := &walker{svc: s, visited: make(map[string]bool)}
	for _, sm := range sitemaps {
		if err := w.walk(ctx, sm); err != nil {
			return nil, err
		}
	}

	out := []string{}
	seen := bloom.NewFilter(uint(len(w.locs)), bloom.DefaultFalsePositiveRate)
	for _, u := range w.locs {
		if !underPrefix(u, prefix) || !filter.Match(u) || seen.Seen(u) {
			continue
		}
		out = append(out, u)
		if s.maxURLs > 0 && len(out) >= s.maxURLs {
			break
		}
	}
	return out, nil
}

// underPrefix reports whether rawURL's path lies below prefix, respecting
// path boundaries: /shop/ matches /shop/item but not /shopping.
func underPrefix(rawURL, prefix string) bool {
	if prefix == "" {
		return true
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.HasPrefix(u.Path, prefix)
}

// locateSitemaps reads Sitemap: directives from robots.txt and falls back
// to /sitemap.xml. A missing fallback yields no sitemaps, not an error.
func (s *SitemapService) locateSitemaps(ctx context.Context, root *url.URL) ([]string, error) {
	robots := root.ResolveReference(&url.URL{Path: "/robots.txt"}).String()
	if found, err := s.robotsSitemaps(ctx, robots); err == nil && len(found) > 0 {
		return found, nil
	}

	fallback := root.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, fallback, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}
	return []string{fallback}, nil
}

func (s *SitemapService) robotsSitemaps(ctx context.Context, robotsURL string) ([]string, error) {
	resp, err := get(ctx, s.client, s.userAgent, robotsURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var found []string
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) > len("sitemap:") && strings.EqualFold(line[:len("sitemap:")], "sitemap:") {
			if loc := strings.TrimSpace(line[len("sitemap:"):]); loc != "" {
				found = append(found, loc)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading robots.txt: %w", err)
	}
	return found, nil
}

// walker follows sitemap indexes depth-first and collects page locations.
type walker struct {
	svc     *SitemapService
	visited map[string]bool
	locs    []string
}

func (w *walker) walk(ctx context.Context, sitemapURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.visited[sitemapURL] {
		return nil
	}
	w.visited[sitemapURL] = true

	root, err := w.svc.fetchSitemap(ctx, sitemapURL)
	if err != nil {
		return err
	}

	if root.Tag == "sitemapindex" {
		for _, child := range locs(root, "sitemap") {
			if err := w.walk(ctx, child); err != nil {
				return err
			}
		}
		return nil
	}

	w.locs = append(w.locs, locs(root, "url")...)
	return nil
}

// fetchSitemap downloads and parses one sitemap, gunzipping .gz files.
func (s *SitemapService) fetchSitemap(ctx context.Context, sitemapURL string) (*etree.Element, error) {
	resp, err := get(ctx, s.client, s.userAgent, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body io.Reader = resp.Body
	if strings.HasSuffix(strings.ToLower(sitemapURL), ".gz") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("decompressing %s: %w", sitemapURL, err)
		}
		defer gz.Close()
		body = gz
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, fmt.Errorf("parsing sitemap XML: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty sitemap XML: %s", sitemapURL)
	}
	return root, nil
}

// locs returns the trimmed <loc> text of every child element named tag.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			out = append(out, u)
		}
	}
	return out
}
