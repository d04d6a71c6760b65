// Package merger packs text files into a single merged file and unpacks them again.
//
// A merged file is a sequence of blocks. Each block starts with a header line made of
// the prepend marker, a space and the original path, continues with the file's lines
// verbatim, and ends with a line equal to the append marker:
//
//	<<<<<<<<<< filemerge: begin docs/readme.md
//	# Readme
//	>>>>>>>>>> filemerge: end
//
// Validate proves a file set can be encoded without any content line being mistaken
// for a marker, Encode writes the blocks, and Unmerge walks a merged file with a two
// state machine (idle, writing) to recreate the files.
package merger

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/drengskapur/filemerge/pkg/progress"
)

// MaxFileSize is the largest file, in bytes, that may be merged.
const MaxFileSize = 1024 * 1024

// Merger merges and unmerges files using a fixed marker pair.
type Merger struct {
	markers  Markers
	logger   *zap.Logger
	progress progress.Reporter
	root     string
}

// Option configures a Merger.
type Option func(*Merger)

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Merger) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithProgress sets the progress reporter advanced once per file or block.
func WithProgress(r progress.Reporter) Option {
	return func(m *Merger) {
		if r != nil {
			m.progress = r
		}
	}
}

// WithRoot resolves relative block paths under dir when unmerging.
func WithRoot(dir string) Option {
	return func(m *Merger) { m.root = dir }
}

// New returns a Merger for the given markers.
func New(markers Markers, opts ...Option) (*Merger, error) {
	if _, err := NewMarkers(markers.prepend, markers.append); err != nil {
		return nil, err
	}
	m := &Merger{
		markers:  markers,
		logger:   zap.NewNop(),
		progress: progress.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Markers returns the marker pair in use.
func (m *Merger) Markers() Markers { return m.markers }

// Merge validates paths and, if every file is mergeable, encodes them into output.
func (m *Merger) Merge(paths []string, output string) error {
	m.logger.Info("Merging files", zap.Int("fileCount", len(paths)), zap.String("output", output))
	if err := m.Validate(paths); err != nil {
		return fmt.Errorf("files can not be merged:\n%w", err)
	}
	return m.Encode(paths, output)
}
