// Package paths turns command-line glob patterns into the ordered list of files to merge.
package paths

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Resolve expands include patterns in argument order and removes every path matched by
// a '!'-prefixed exclusion pattern. The result contains regular files only, keeps the
// first occurrence of each path, and lists each pattern's matches in lexical order.
func Resolve(patterns []string, logger *zap.Logger) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var includes []string
	var excludes []*Pattern
	for _, raw := range patterns {
		if strings.HasPrefix(raw, "!") {
			p, err := CompilePattern(raw)
			if err != nil {
				return nil, err
			}
			excludes = append(excludes, p)
			continue
		}
		matches, err := expand(raw)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			logger.Warn("Pattern matched no files", zap.String("pattern", raw))
		}
		logger.Debug("Expanded pattern", zap.String("pattern", raw), zap.Int("matchCount", len(matches)))
		includes = append(includes, matches...)
	}

	files := lo.UniqBy(includes, normalizePath)
	files = lo.Filter(files, func(path string, _ int) bool {
		for _, ex := range excludes {
			if ex.Match(path) {
				logger.Debug("Excluded path", zap.String("path", path), zap.String("pattern", ex.Glob))
				return false
			}
		}
		return true
	})

	logger.Debug("Resolved file list",
		zap.Int("includedCount", len(includes)),
		zap.Int("excludePatterns", len(excludes)),
		zap.Int("fileCount", len(files)))
	return files, nil
}

// expand returns the regular files matched by a single include pattern.
func expand(pattern string) ([]string, error) {
	if !hasMeta(pattern) {
		if isRegularFile(pattern) {
			return []string{pattern}, nil
		}
		return nil, nil
	}

	if !strings.Contains(pattern, "**") {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("could not parse pattern %q: %w", pattern, err)
		}
		sort.Strings(matches)
		return lo.Filter(matches, func(path string, _ int) bool { return isRegularFile(path) }), nil
	}

	compiled, err := CompilePattern(pattern)
	if err != nil {
		return nil, err
	}
	var matches []string
	err = filepath.WalkDir(walkRoot(pattern), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.Type().IsRegular() && compiled.Match(path) {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not expand pattern %q: %w", pattern, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// walkRoot returns the longest leading directory of pattern that has no metacharacters.
func walkRoot(pattern string) string {
	segments := strings.Split(normalizePath(pattern), "/")
	var static []string
	for _, seg := range segments {
		if hasMeta(seg) {
			break
		}
		static = append(static, seg)
	}
	if len(static) == 0 {
		return "."
	}
	root := strings.Join(static, "/")
	if root == "" {
		return "/"
	}
	return filepath.FromSlash(root)
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
