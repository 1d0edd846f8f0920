package domain

import (
	"errors"
	"strings"
)

// ErrNoAllowedSuffixes reports a Filter built without any allowed suffix,
// which would reject every domain.
var ErrNoAllowedSuffixes = errors.New("filter requires at least one allowed suffix")

// Filter decides whether a normalized domain belongs on the block list.
type Filter struct {
	suffixes []string
	excluded []string
}

// NewFilter builds a Filter. Suffixes may be given with or without the leading
// dot; blank entries in either list are ignored.
func NewFilter(allowedSuffixes, excluded []string) (*Filter, error) {
	f := &Filter{}
	for _, raw := range allowedSuffixes {
		s := strings.ToLower(strings.TrimSpace(raw))
		s = strings.TrimPrefix(s, ".")
		if s == "" {
			continue
		}
		f.suffixes = append(f.suffixes, "."+s)
	}
	if len(f.suffixes) == 0 {
		return nil, ErrNoAllowedSuffixes
	}
	for _, raw := range excluded {
		e := strings.ToLower(strings.TrimSpace(raw))
		if e == "" {
			continue
		}
		f.excluded = append(f.excluded, e)
	}
	return f, nil
}

// Accept reports whether d ends with an allowed suffix and contains none of
// the excluded entries. Exclusion is substring containment, so "techradar.com"
// also rejects "mytechradar.com".
func (f *Filter) Accept(d Domain) bool {
	s := string(d)
	if s == "" {
		return false
	}
	allowed := false
	for _, suffix := range f.suffixes {
		if strings.HasSuffix(s, suffix) {
			allowed = true
			break
		}
	}
	if !allowed {
		return false
	}
	for _, e := range f.excluded {
		if strings.Contains(s, e) {
			return false
		}
	}
	return true
}

// Suffixes returns the normalized allowed suffixes.
func (f *Filter) Suffixes() []string {
	return append([]string(nil), f.suffixes...)
}
