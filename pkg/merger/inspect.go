package merger

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
)

// Block describes one file stored in a merged stream.
type Block struct {
	Path   string // path recorded in the header line
	Header int    // 1-based line number of the header
	Lines  int    // number of content lines
}

// Inspect parses a merged stream without writing anything and returns its blocks in order.
// It fails on the same malformed input Decode does.
func (m *Merger) Inspect(r io.Reader) ([]Block, error) {
	sink := &inspectSink{}
	if _, err := m.run(r, sink); err != nil {
		return nil, err
	}
	return sink.blocks, nil
}

// InspectFile is Inspect for a merged file on disk.
func (m *Merger) InspectFile(merged string) (blocks []Block, err error) {
	file, err := os.Open(merged)
	if err != nil {
		return nil, fmt.Errorf("could not open merged file %s: %w", merged, err)
	}
	defer multierr.AppendInvoke(&err, multierr.Close(file))
	return m.Inspect(file)
}

type inspectSink struct {
	blocks []Block
}

func (s *inspectSink) open(path string, line int) (blockWriter, error) {
	s.blocks = append(s.blocks, Block{Path: path, Header: line})
	return &lineCounter{block: &s.blocks[len(s.blocks)-1]}, nil
}

// lineCounter counts the lines written to a block and discards them.
type lineCounter struct {
	block *Block
}

func (c *lineCounter) Write(p []byte) (int, error) {
	c.block.Lines++
	return len(p), nil
}

func (c *lineCounter) Close() error { return nil }
