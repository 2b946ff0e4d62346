// Package bloom deduplicates page URLs with a Bloom filter. Memory stays
// bounded for sitemaps listing hundreds of thousands of pages, at the cost
// of rarely treating an unseen URL as a duplicate.
package bloom

import (
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
)

// DefaultFalsePositiveRate is the duplicate misdetection rate used by
// sitemap discovery.
const DefaultFalsePositiveRate = 1e-6

// Filter records which page URLs have been seen.
// Filter is not safe for concurrent use.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a Filter sized for n expected URLs with the given false
// positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = 1
	}
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Seen records url and reports whether it had been recorded before. URLs
// differing only by fragment count as the same page.
func (f *Filter) Seen(url string) bool {
	return f.f.TestAndAddString(stripFragment(url))
}

// Contains reports whether url might have been recorded, without recording it.
func (f *Filter) Contains(url string) bool {
	return f.f.TestString(stripFragment(url))
}

// EstimatedCount returns the approximate number of distinct URLs recorded.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}

func stripFragment(url string) string {
	if i := strings.IndexByte(url, '#'); i != -1 {
		return url[:i]
	}
	return url
}
