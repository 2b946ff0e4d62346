package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/schemascan"
)

var _ schemascan.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService logs sitemap discovery.
type LoggingSitemapService struct {
	next   schemascan.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService wraps next.
func NewLoggingSitemapService(next schemascan.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped service and logs how many pages
// were found.
func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *schemascan.URLFilter) (urls []string, err error) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if err != nil {
			level = slog.LevelWarn
		}
		s.logger.Log(ctx, level, "sitemap discovery",
			"site", baseURL,
			"filtered", filter != nil,
			"pages", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, baseURL, filter)
}
