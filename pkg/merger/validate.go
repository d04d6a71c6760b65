// File: pkg/merger/validate.go
package merger

import (
	"os"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
)

// Validate checks every path and reports all reasons the set can not be merged.
// It never stops at the first problem: the returned error is a *multierror.Error
// holding one *Violation per problem, formatted one per line. A nil return means
// every file is safe to encode.
func (m *Merger) Validate(paths []string) error {
	_, err := m.Check(paths)
	return err
}

// Check is Validate that also returns the readable files whose content does not end
// with a newline. Encode adds one to each of them, so they unmerge with a trailing
// newline they did not have before.
func (m *Merger) Check(paths []string) (missingNewline []string, err error) {
	var result *multierror.Error
	for _, path := range paths {
		violations, terminated := m.checkFile(path)
		for _, v := range violations {
			result = multierror.Append(result, v)
		}
		if !terminated {
			missingNewline = append(missingNewline, path)
		}
	}
	if result == nil {
		m.logger.Debug("All files can be merged", zap.Int("fileCount", len(paths)))
		return missingNewline, nil
	}
	result.ErrorFormat = listFormat
	m.logger.Debug("Validation found violations", zap.Int("violationCount", len(result.Errors)))
	return missingNewline, result
}

// checkFile returns the violations of a single file, and whether its content is
// empty or ends with a newline. Files that could not be read count as terminated.
func (m *Merger) checkFile(path string) ([]*Violation, bool) {
	var violations []*Violation
	// the header line ends at the first '\n', and a trailing '\r' is dropped when it is parsed
	if strings.Contains(path, "\n") || strings.HasSuffix(path, "\r") {
		violations = append(violations, &Violation{Kind: BadPath, Path: path})
	}

	info, err := os.Stat(path)
	if err != nil {
		return append(violations, &Violation{Kind: Unreadable, Path: path, Detail: err.Error()}), true
	}
	if info.Size() > MaxFileSize {
		return append(violations, &Violation{
			Kind:   TooBig,
			Path:   path,
			Detail: humanize.Comma(info.Size()) + " bytes, limit is " + humanize.IBytes(MaxFileSize),
		}), true
	}

	m.logger.Debug("Reading file into memory", zap.String("path", path))
	data, err := os.ReadFile(path)
	if err != nil {
		return append(violations, &Violation{Kind: Unreadable, Path: path, Detail: err.Error()}), true
	}
	if !utf8.Valid(data) {
		return append(violations, &Violation{Kind: Unreadable, Path: path, Detail: "not valid UTF-8 text"}), true
	}

	m.logger.Debug("Checking lines for markers", zap.String("path", path))
	for i, line := range splitLines(string(data)) {
		switch {
		case m.markers.isHeader(line):
			violations = append(violations, &Violation{Kind: PrependCollision, Path: path, Line: i + 1})
		case m.markers.isTrailer(line):
			violations = append(violations, &Violation{Kind: AppendCollision, Path: path, Line: i + 1})
		}
	}
	return violations, len(data) == 0 || data[len(data)-1] == '\n'
}

// splitLines splits content on '\n'. A trailing newline does not start another line.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}
