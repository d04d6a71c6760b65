// File: pkg/paths/pattern.go
package paths

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Pattern is a compiled glob pattern matched against whole slash-separated paths.
type Pattern struct {
	Glob   string         // Original pattern text, without any '!' prefix.
	Negate bool           // True if the pattern was given with a leading '!'.
	re     *regexp.Regexp // Anchored regular expression equivalent of Glob.
}

// CompilePattern parses a glob pattern. A leading '!' marks an exclusion.
// Supported syntax: '*' and '?' within one path segment, '[...]' classes
// ('[!...]' negated), and '**' spanning any number of segments.
func CompilePattern(pattern string) (*Pattern, error) {
	negate := strings.HasPrefix(pattern, "!")
	glob := strings.TrimPrefix(pattern, "!")
	if glob == "" {
		return nil, fmt.Errorf("empty pattern %q", pattern)
	}

	expr, err := globToRegex(normalizePath(glob))
	if err != nil {
		return nil, fmt.Errorf("could not parse pattern %q: %w", pattern, err)
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("could not parse pattern %q: %w", pattern, err)
	}
	return &Pattern{Glob: glob, Negate: negate, re: re}, nil
}

// Match reports whether path matches the pattern.
func (p *Pattern) Match(path string) bool {
	return p.re.MatchString(normalizePath(path))
}

// hasMeta reports whether the pattern contains glob metacharacters.
func hasMeta(glob string) bool {
	return strings.ContainsAny(glob, "*?[")
}

// normalizePath cleans a path and converts it to forward slashes.
func normalizePath(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}

// globToRegex converts a slash-separated glob to an anchored regular expression.
func globToRegex(glob string) (string, error) {
	var b strings.Builder
	b.WriteString("^")
	for i := 0; i < len(glob); i++ {
		c := glob[i]
		switch c {
		case '*':
			if i+1 < len(glob) && glob[i+1] == '*' {
				i++
				if i+1 < len(glob) && glob[i+1] == '/' {
					i++
					b.WriteString("(.*/)?")
				} else {
					b.WriteString(".*")
				}
				continue
			}
			b.WriteString("[^/]*")
		case '?':
			b.WriteString("[^/]")
		case '[':
			end := strings.IndexByte(glob[i+1:], ']')
			if end < 0 {
				return "", fmt.Errorf("unterminated character class at offset %d", i)
			}
			class := glob[i+1 : i+1+end]
			if strings.HasPrefix(class, "!") {
				class = "^" + class[1:]
			}
			b.WriteString("[" + class + "]")
			i += end + 1
		case '\\':
			if i+1 < len(glob) {
				i++
			}
			b.WriteString(regexp.QuoteMeta(string(glob[i])))
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	b.WriteString("$")
	return b.String(), nil
}
