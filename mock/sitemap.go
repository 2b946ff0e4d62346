package mock

import (
	"context"

	"github.com/fwojciec/schemascan"
)

var _ schemascan.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of schemascan.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *schemascan.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *schemascan.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
