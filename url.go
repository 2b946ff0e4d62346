package schemascan

import (
	"net/url"
	"strings"
)

// NormalizeURL validates that raw is an absolute http or https URL and
// returns it in normalized form: lower-cased scheme and host, and "/" as
// the path of a bare origin.
func NormalizeURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return "", Errorf(EINVALID, "invalid URL: %s", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", Errorf(EINVALID, "URL must use HTTP or HTTPS protocol: %s", raw)
	}
	u.Host = strings.ToLower(u.Host)
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String(), nil
}
