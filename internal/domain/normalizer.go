package domain

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"unicode/utf8"

	"github.com/weppos/publicsuffix-go/publicsuffix"
	"golang.org/x/net/idna"
)

// Domain is a lower-cased registrable domain such as "example.co.uk".
type Domain string

// String implements fmt.Stringer.
func (d Domain) String() string {
	return string(d)
}

// Normalization failures. Every one of them wraps ErrInvalid so callers that
// only care about "extractable or not" can use errors.Is(err, ErrInvalid).
var (
	ErrInvalid       = errors.New("domain not extractable")
	ErrEmptyHost     = fmt.Errorf("%w: empty host", ErrInvalid)
	ErrIPAddress     = fmt.Errorf("%w: host is an ip address", ErrInvalid)
	ErrMalformedHost = fmt.Errorf("%w: malformed host", ErrInvalid)
	ErrNoSuffix      = fmt.Errorf("%w: no registrable name under a public suffix", ErrInvalid)
)

// icannOnly mirrors the usual extractor default: private PSL sections such as
// blogspot.com are treated as ordinary names.
var icannOnly = &publicsuffix.FindOptions{IgnorePrivate: true}

// Normalize reduces a URL (absolute, protocol-relative, or a bare host) to its
// registrable domain. Subdomains, ports, userinfo, path, query and fragment
// are dropped. It never panics; anything that cannot be reduced returns an
// error wrapping ErrInvalid.
func Normalize(raw string) (Domain, error) {
	host, err := hostOf(raw)
	if err != nil {
		return "", err
	}
	registrable, err := publicsuffix.DomainFromListWithOptions(publicsuffix.DefaultList, host, icannOnly)
	if err != nil || registrable == "" {
		return "", fmt.Errorf("%w: %q", ErrNoSuffix, host)
	}
	return Domain(strings.ToLower(registrable)), nil
}

// hostOf extracts a canonical ASCII host name from raw without requiring a
// strictly valid URL.
func hostOf(raw string) (string, error) {
	rest := strings.TrimSpace(raw)
	if i := strings.Index(rest, "://"); i >= 0 {
		rest = rest[i+3:]
	} else {
		rest = strings.TrimPrefix(rest, "//")
	}
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		rest = rest[:i]
	}
	if at := strings.LastIndexByte(rest, '@'); at >= 0 {
		rest = rest[at+1:]
	}

	host := rest
	if strings.HasPrefix(host, "[") {
		// IPv6 literal, with or without a port.
		if end := strings.IndexByte(host, ']'); end > 0 {
			return "", fmt.Errorf("%w: %q", ErrIPAddress, host[1:end])
		}
		return "", fmt.Errorf("%w: %q", ErrMalformedHost, raw)
	}
	if colon := strings.LastIndexByte(host, ':'); colon >= 0 {
		host = host[:colon]
	}
	host = strings.TrimSuffix(host, ".")
	if host == "" {
		return "", ErrEmptyHost
	}
	if net.ParseIP(host) != nil {
		return "", fmt.Errorf("%w: %q", ErrIPAddress, host)
	}

	if !isASCII(host) {
		if !utf8.ValidString(host) || strings.ContainsRune(host, utf8.RuneError) {
			return "", fmt.Errorf("%w: invalid utf-8 in %q", ErrMalformedHost, host)
		}
		ascii, err := idna.Lookup.ToASCII(host)
		if err != nil {
			return "", fmt.Errorf("%w: idna: %v", ErrMalformedHost, err)
		}
		host = ascii
	}
	host = strings.ToLower(host)
	if !validHostname(host) {
		return "", fmt.Errorf("%w: %q", ErrMalformedHost, host)
	}
	return host, nil
}

func validHostname(host string) bool {
	if strings.HasPrefix(host, ".") || strings.Contains(host, "..") {
		return false
	}
	for _, label := range strings.Split(host, ".") {
		if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return false
		}
	}
	for i := 0; i < len(host); i++ {
		c := host[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '-', c == '.', c == '_':
		default:
			return false
		}
	}
	return true
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
