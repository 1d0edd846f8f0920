package crawler

import (
	"fmt"
	"net/url"
	"strings"
)

// NormalizeURL standardizes a URL for visited-set bookkeeping.
// It lowercases the scheme and host, removes default ports, sorts query
// parameters and drops the fragment.
func NormalizeURL(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)

	if u.Scheme == "http" && strings.HasSuffix(u.Host, ":80") {
		u.Host = strings.TrimSuffix(u.Host, ":80")
	}
	if u.Scheme == "https" && strings.HasSuffix(u.Host, ":443") {
		u.Host = strings.TrimSuffix(u.Host, ":443")
	}

	u.Fragment = ""
	u.RawFragment = ""

	if u.RawQuery != "" {
		u.RawQuery = u.Query().Encode()
	}

	return u.String(), nil
}

// visitKey is the visited-set key for rawURL. URLs that do not parse are
// tracked verbatim.
func visitKey(rawURL string) string {
	key, err := NormalizeURL(rawURL)
	if err != nil || key == "" {
		return strings.TrimSpace(rawURL)
	}
	return key
}

// ResolveHref turns an anchor href found on the page at base into an absolute
// http(s) URL. Root-relative and protocol-relative hrefs are resolved against
// base; path-relative hrefs and other schemes (mailto:, javascript:, tel:)
// are rejected.
func ResolveHref(base *url.URL, href string) (string, bool) {
	href = strings.TrimSpace(href)
	switch {
	case href == "":
		return "", false
	case strings.HasPrefix(href, "//"):
		if base == nil || base.Scheme == "" {
			return "", false
		}
		return base.Scheme + ":" + href, true
	case strings.HasPrefix(href, "/"):
		if base == nil || base.Scheme == "" || base.Host == "" {
			return "", false
		}
		return base.Scheme + "://" + base.Host + href, true
	}
	lower := strings.ToLower(href)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return href, true
	}
	return "", false
}
