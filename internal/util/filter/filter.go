// Package filter narrows file listings with glob patterns.
package filter

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter holds include/exclude glob patterns applied to base names.
// A nil Filter, or one with no patterns, passes everything.
type Filter struct {
	// Include patterns: when any are set, only matching names pass.
	Include []string

	// Exclude patterns: matching names are dropped, after Include.
	Exclude []string
}

// Parse builds a Filter from comma-separated pattern lists as stored in
// the config [filter] section. Blank entries are dropped. Returns nil
// when both lists are empty so the no-filter path stays allocation-free.
func Parse(include, exclude string) *Filter {
	inc := splitPatterns(include)
	exc := splitPatterns(exclude)
	if len(inc) == 0 && len(exc) == 0 {
		return nil
	}
	return &Filter{Include: inc, Exclude: exc}
}

// Match reports whether name passes the filter. A name passes when it
// matches at least one include pattern (or no includes are configured)
// and matches no exclude pattern. Malformed patterns are skipped.
func (f *Filter) Match(name string) bool {
	if f == nil {
		return true
	}

	if len(f.Include) > 0 {
		included := false
		for _, pattern := range f.Include {
			if ok, err := doublestar.Match(pattern, name); err == nil && ok {
				included = true
				break
			}
		}
		if !included {
			return false
		}
	}

	for _, pattern := range f.Exclude {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return false
		}
	}

	return true
}

func splitPatterns(list string) []string {
	if strings.TrimSpace(list) == "" {
		return nil
	}
	parts := strings.Split(list, ",")
	patterns := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns
}
