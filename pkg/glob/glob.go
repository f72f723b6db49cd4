// Package glob implements the pattern matching used by exclusion and
// truncation rules. Patterns support `**` (any number of path segments),
// `*` (any run of characters within one segment), and `?` (one character
// within a segment). Matching is always performed against the relative
// path normalized to forward slashes, regardless of the host separator.
package glob

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Pattern is a single compiled glob pattern. Compiled once at startup,
// safe for concurrent use.
type Pattern struct {
	raw string
	re  *regexp.Regexp
}

// Compile translates a glob pattern into an anchored regular expression.
// Malformed patterns (empty, or `**` embedded inside a segment) are
// rejected so that configuration errors surface before any scanning.
func Compile(pattern string) (*Pattern, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, fmt.Errorf("empty glob pattern")
	}

	expr, err := translate(pattern)
	if err != nil {
		return nil, err
	}

	re, err := regexp.Compile("^" + expr + "$")
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}

	return &Pattern{raw: pattern, re: re}, nil
}

// Match reports whether the normalized form of path matches the pattern.
func (p *Pattern) Match(path string) bool {
	return p.re.MatchString(Normalize(path))
}

// String returns the original pattern text.
func (p *Pattern) String() string {
	return p.raw
}

// Set is an ordered collection of patterns matched as a logical OR:
// a path matching any member matches the set.
type Set struct {
	patterns []*Pattern
}

// CompileSet compiles every pattern, failing on the first malformed one.
func CompileSet(patterns []string) (*Set, error) {
	s := &Set{patterns: make([]*Pattern, 0, len(patterns))}
	for _, pattern := range patterns {
		p, err := Compile(pattern)
		if err != nil {
			return nil, err
		}
		s.patterns = append(s.patterns, p)
	}
	return s, nil
}

// Matches reports whether path matches any pattern in the set.
func (s *Set) Matches(path string) bool {
	normalized := Normalize(path)
	for _, p := range s.patterns {
		if p.re.MatchString(normalized) {
			return true
		}
	}
	return false
}

// Len returns the number of patterns in the set.
func (s *Set) Len() int {
	return len(s.patterns)
}

// Normalize converts OS-specific path separators to forward slashes.
func Normalize(path string) string {
	return filepath.ToSlash(path)
}

// translate converts a glob pattern into a regular expression body.
// `**` must occupy a whole path segment: "a/**/b" is valid, "a**b" is not.
func translate(pattern string) (string, error) {
	var sb strings.Builder
	i := 0
	for i < len(pattern) {
		c := pattern[i]
		switch c {
		case '*':
			if i+1 < len(pattern) && pattern[i+1] == '*' {
				prevOK := i == 0 || pattern[i-1] == '/'
				next := i + 2
				nextOK := next == len(pattern) || pattern[next] == '/'
				if !prevOK || !nextOK {
					return "", fmt.Errorf("invalid glob pattern %q: `**` must span a full path segment", pattern)
				}
				if next < len(pattern) {
					// "**/" matches zero or more whole segments.
					sb.WriteString(`(?:[^/]+/)*`)
					i = next + 1
				} else {
					// Trailing "**" matches everything below this point.
					sb.WriteString(`.*`)
					i = next
				}
			} else {
				sb.WriteString(`[^/]*`)
				i++
			}
		case '?':
			sb.WriteString(`[^/]`)
			i++
		default:
			sb.WriteString(regexp.QuoteMeta(string(c)))
			i++
		}
	}
	return sb.String(), nil
}
