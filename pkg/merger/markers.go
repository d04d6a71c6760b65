// File: pkg/merger/markers.go
package merger

import (
	"errors"
	"fmt"
	"strings"
)

// Default marker lines used when no configuration overrides them.
const (
	DefaultPrependMarker = "<<<<<<<<<< filemerge: begin"
	DefaultAppendMarker  = ">>>>>>>>>> filemerge: end"
)

// ErrInvalidMarkers is returned by NewMarkers for an unusable marker pair.
var ErrInvalidMarkers = errors.New("invalid marker configuration")

// Markers holds the pair of sentinel lines that delimit each file inside a merged stream.
// A Markers value is immutable once constructed.
type Markers struct {
	prepend string
	append  string
}

// NewMarkers validates and returns a marker pair.
func NewMarkers(prepend, appendMarker string) (Markers, error) {
	switch {
	case prepend == "" || appendMarker == "":
		return Markers{}, fmt.Errorf("%w: markers can not be empty", ErrInvalidMarkers)
	case prepend == appendMarker:
		return Markers{}, fmt.Errorf("%w: prepend and append markers can not be the same", ErrInvalidMarkers)
	case strings.ContainsAny(prepend, "\r\n") || strings.ContainsAny(appendMarker, "\r\n"):
		return Markers{}, fmt.Errorf("%w: markers must fit on a single line", ErrInvalidMarkers)
	case strings.HasPrefix(appendMarker, prepend):
		// the terminator would be read back as a header
		return Markers{}, fmt.Errorf("%w: append marker can not start with the prepend marker", ErrInvalidMarkers)
	}
	return Markers{prepend: prepend, append: appendMarker}, nil
}

// DefaultMarkers returns the built-in marker pair.
func DefaultMarkers() Markers {
	return Markers{prepend: DefaultPrependMarker, append: DefaultAppendMarker}
}

// Prepend returns the header marker.
func (m Markers) Prepend() string { return m.prepend }

// Append returns the terminator marker.
func (m Markers) Append() string { return m.append }

// header formats the header line for path, newline included.
func (m Markers) header(path string) string {
	return m.prepend + " " + path + "\n"
}

// trailer formats the terminator line, newline included.
func (m Markers) trailer() string {
	return m.append + "\n"
}

// isHeader reports whether line would be read as a block header.
func (m Markers) isHeader(line string) bool {
	return strings.HasPrefix(line, m.prepend)
}

// isTrailer reports whether line would be read as a block terminator.
// A single trailing carriage return is ignored.
func (m Markers) isTrailer(line string) bool {
	return strings.TrimSuffix(line, "\r") == m.append
}

// headerPath extracts the path from a header line. It returns false when
// the marker is not followed by a space and a non-empty path.
func (m Markers) headerPath(line string) (string, bool) {
	rest := strings.TrimPrefix(line, m.prepend)
	if !strings.HasPrefix(rest, " ") {
		return "", false
	}
	path := strings.TrimSuffix(rest[1:], "\r")
	return path, path != ""
}
