// Package suffixfilter selects directory entries by a literal name suffix.
package suffixfilter

import (
	"errors"
	"strings"
)

// ErrEmptySuffix is returned when a filter is built without a suffix.
var ErrEmptySuffix = errors.New("suffix cannot be empty")

// Filter matches entry names against a case-sensitive suffix.
type Filter struct {
	suffix string
}

// New creates a Filter for suffix.
func New(suffix string) (*Filter, error) {
	if suffix == "" {
		return nil, ErrEmptySuffix
	}
	return &Filter{suffix: suffix}, nil
}

// Suffix returns the configured suffix.
func (f *Filter) Suffix() string {
	return f.suffix
}

// Match reports whether name ends with the suffix and has at least one
// byte in front of it. A name equal to the suffix does not match.
func (f *Filter) Match(name string) bool {
	return len(name) > len(f.suffix) && strings.HasSuffix(name, f.suffix)
}

// Strip removes the suffix from a matching name. Other names are returned as is.
func (f *Filter) Strip(name string) string {
	if !f.Match(name) {
		return name
	}
	return name[:len(name)-len(f.suffix)]
}

// FilterNames keeps the matching names, preserving their order.
func (f *Filter) FilterNames(names []string) []string {
	var matched []string
	for _, name := range names {
		if f.Match(name) {
			matched = append(matched, name)
		}
	}
	return matched
}
