// File: pkg/merger/decode.go
package merger

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/drengskapur/filemerge/pkg/paths"
)

// ErrOutsideRoot is returned when a block path would be written outside the unmerge root.
var ErrOutsideRoot = errors.New("path is outside the output directory")

// blockWriter receives the content lines of one block.
type blockWriter interface {
	io.Writer
	Close() error
}

// blockSink decides where the content of each block goes.
type blockSink interface {
	open(path string, line int) (blockWriter, error)
}

// openBlock is the decoder's writing state; a nil *openBlock means idle.
type openBlock struct {
	path   string
	header int
	w      blockWriter
}

// Unmerge recreates every file stored in the merged file at merged.
func (m *Merger) Unmerge(merged string) (err error) {
	file, err := os.Open(merged)
	if err != nil {
		m.logger.Error("Failed to open merged file", zap.String("file", merged), zap.Error(err))
		return fmt.Errorf("could not open merged file %s: %w", merged, err)
	}
	defer multierr.AppendInvoke(&err, multierr.Close(file))

	if err := m.Decode(file); err != nil {
		return fmt.Errorf("could not unmerge %s: %w", merged, err)
	}
	return nil
}

// Decode reads a merged stream from r and writes each block to its path.
// Existing files at those paths are replaced.
func (m *Merger) Decode(r io.Reader) error {
	m.progress.Start(-1)
	defer m.progress.Stop()

	blocks, err := m.run(r, &fileSink{root: m.root, logger: m.logger})
	if err != nil {
		return err
	}
	m.logger.Info("Unmerged files", zap.Int("fileCount", blocks))
	return nil
}

// run drives the block state machine over r and returns the number of completed blocks.
func (m *Merger) run(r io.Reader, sink blockSink) (blocks int, err error) {
	var current *openBlock
	defer func() {
		if current != nil {
			err = multierr.Append(err, current.w.Close())
		}
	}()

	reader := bufio.NewReader(r)
	for lineNo := 1; ; lineNo++ {
		line, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return blocks, fmt.Errorf("could not read line #%d: %w", lineNo, readErr)
		}
		if line == "" && readErr != nil {
			break
		}
		line = strings.TrimSuffix(line, "\n")

		switch {
		case m.markers.isHeader(line):
			if current != nil {
				return blocks, &FormatError{Line: lineNo, Err: ErrNestedBlock}
			}
			path, ok := m.markers.headerPath(line)
			if !ok {
				return blocks, &FormatError{Line: lineNo, Err: ErrMissingPath}
			}
			w, err := sink.open(path, lineNo)
			if err != nil {
				return blocks, err
			}
			current = &openBlock{path: path, header: lineNo, w: w}

		case current == nil:
			return blocks, &FormatError{Line: lineNo, Err: ErrOrphanLine}

		case m.markers.isTrailer(line):
			closeErr := current.w.Close()
			path := current.path
			current = nil
			if closeErr != nil {
				return blocks, fmt.Errorf("could not close file %s: %w", path, closeErr)
			}
			blocks++
			m.progress.Increment()

		default:
			if _, err := io.WriteString(current.w, line+"\n"); err != nil {
				return blocks, fmt.Errorf("could not write line #%d to %s: %w", lineNo, current.path, err)
			}
		}

		if readErr != nil {
			break
		}
	}

	if current != nil {
		// reported at the header of the block that was never closed
		return blocks, &FormatError{Line: current.header, Err: ErrUnterminatedBlock}
	}
	return blocks, nil
}

// fileSink writes each block to a file on disk.
type fileSink struct {
	root   string
	logger *zap.Logger
}

func (s *fileSink) open(path string, line int) (blockWriter, error) {
	target := path
	if s.root != "" && !filepath.IsAbs(target) {
		if !filepath.IsLocal(target) {
			return nil, fmt.Errorf("%w: %s (line #%d)", ErrOutsideRoot, path, line)
		}
		target = filepath.Join(s.root, target)
	}
	s.logger.Debug("Writing block", zap.String("path", target), zap.Int("headerLine", line))

	if info, err := os.Lstat(target); err == nil {
		if info.IsDir() {
			return nil, fmt.Errorf("could not replace %s: is a directory", target)
		}
		if err := os.Remove(target); err != nil {
			return nil, fmt.Errorf("could not remove existing file %s: %w", target, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("could not stat %s: %w", target, err)
	}
	if err := paths.EnsureParentDir(target); err != nil {
		return nil, err
	}
	f, err := os.Create(target)
	if err != nil {
		return nil, fmt.Errorf("could not create file %s: %w", target, err)
	}
	return &bufferedFile{file: f, Writer: bufio.NewWriter(f)}, nil
}

// bufferedFile flushes its buffer before closing the file.
type bufferedFile struct {
	*bufio.Writer
	file *os.File
}

func (b *bufferedFile) Close() error {
	return multierr.Append(b.Flush(), b.file.Close())
}
