package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fwojciec/schemascan"
)

// DefaultUserAgent identifies requests made by this package.
const DefaultUserAgent = "schemascan/1.0 (+https://github.com/fwojciec/schemascan)"

// get issues a GET request and returns the response for a 200 status.
// Any other status closes the body and returns an error; 404 and 410 map
// to ENOTFOUND.
func get(ctx context.Context, client *http.Client, userAgent, targetURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
			return nil, schemascan.Errorf(schemascan.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, targetURL)
		}
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, targetURL)
	}
	return resp, nil
}
