// File: pkg/merger/encode.go
package merger

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/drengskapur/filemerge/pkg/paths"
)

// ErrOutputIsInput is returned when the output file is also one of the inputs.
var ErrOutputIsInput = errors.New("output file is also an input file")

// Encode writes files, in order, into a single merged file at output.
// Files are re-read from disk; callers are expected to have run Validate first.
// The first failure aborts the whole operation.
func (m *Merger) Encode(files []string, output string) (err error) {
	if err := checkOutputNotInput(files, output); err != nil {
		return err
	}
	if err := paths.EnsureParentDir(output); err != nil {
		return err
	}

	outFile, err := os.Create(output)
	if err != nil {
		m.logger.Error("Failed to create output file", zap.String("file", output), zap.Error(err))
		return fmt.Errorf("could not create output file %s: %w", output, err)
	}
	defer multierr.AppendInvoke(&err, multierr.Close(outFile))

	m.progress.Start(len(files))
	defer m.progress.Stop()

	writer := bufio.NewWriter(outFile)
	var written int64
	for _, path := range files {
		m.logger.Debug("Adding file to output", zap.String("path", path))

		if _, err := writer.WriteString(m.markers.header(path)); err != nil {
			return fmt.Errorf("could not write prepend line for %s to %s: %w", path, output, err)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			m.logger.Error("Failed to read input file", zap.String("path", path), zap.Error(err))
			return fmt.Errorf("could not read file %s: %w", path, err)
		}
		if _, err := writer.Write(content); err != nil {
			return fmt.Errorf("could not write file %s to %s: %w", path, output, err)
		}
		if len(content) > 0 && content[len(content)-1] != '\n' {
			m.logger.Warn("File does not end with a newline, one is added", zap.String("path", path))
			if err := writer.WriteByte('\n'); err != nil {
				return fmt.Errorf("could not write file %s to %s: %w", path, output, err)
			}
		}

		if _, err := writer.WriteString(m.markers.trailer()); err != nil {
			return fmt.Errorf("could not write append line for %s to %s: %w", path, output, err)
		}
		written += int64(len(content))
		m.progress.Increment()
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("could not flush output file %s: %w", output, err)
	}
	m.logger.Info("Merged files",
		zap.String("output", output),
		zap.Int("fileCount", len(files)),
		zap.String("size", humanize.IBytes(uint64(written))))
	return nil
}

// checkOutputNotInput rejects a file list that contains the output path,
// which would be truncated before it is read.
func checkOutputNotInput(files []string, output string) error {
	outInfo, statErr := os.Stat(output)
	absOut, absErr := filepath.Abs(output)
	for _, path := range files {
		if absErr == nil {
			if absPath, err := filepath.Abs(path); err == nil && absPath == absOut {
				return fmt.Errorf("%w: %s", ErrOutputIsInput, path)
			}
		}
		if statErr == nil {
			if info, err := os.Stat(path); err == nil && os.SameFile(info, outInfo) {
				return fmt.Errorf("%w: %s", ErrOutputIsInput, path)
			}
		}
	}
	return nil
}
