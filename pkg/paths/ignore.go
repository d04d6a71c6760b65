// File: pkg/paths/ignore.go
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadIgnoreFile reads exclusion patterns from an ignore file, one per line.
// Empty lines and lines starting with '#' are skipped. Every returned pattern carries
// a leading '!', so the result can be appended directly to Resolve's arguments.
// A leading "\#" or "\!" escapes a literal first character.
func LoadIgnoreFile(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read ignore file %s: %w", path, err)
	}

	var patterns []string
	for i, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		trimmed = strings.TrimPrefix(trimmed, "!")
		if strings.HasPrefix(trimmed, `\#`) || strings.HasPrefix(trimmed, `\!`) {
			trimmed = trimmed[1:]
		}
		if _, err := CompilePattern(trimmed); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, i+1, err)
		}
		patterns = append(patterns, "!"+trimmed)
	}
	return patterns, nil
}

// EnsureParentDir creates the missing parent directories of a file path.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not create directory for file %s: %w", path, err)
	}
	return nil
}
