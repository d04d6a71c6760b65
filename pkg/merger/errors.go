package merger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Decoder state machine failures. They are wrapped in a *FormatError.
var (
	ErrNestedBlock       = errors.New("prepend marker found before a matching append marker")
	ErrOrphanLine        = errors.New("content line with no prior prepend marker")
	ErrUnterminatedBlock = errors.New("unterminated block at end of stream")
	ErrMissingPath       = errors.New("header line has no path")
)

// FormatError reports a merged stream that violates the block structure.
type FormatError struct {
	Line int   // 1-based line number in the merged stream
	Err  error // one of the Err* sentinels above
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("line #%d: %v", e.Line, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// ViolationKind classifies why a file can not be merged.
type ViolationKind int

const (
	TooBig ViolationKind = iota
	Unreadable
	PrependCollision
	AppendCollision
	BadPath
)

func (k ViolationKind) String() string {
	switch k {
	case TooBig:
		return "too big"
	case Unreadable:
		return "could not be read"
	case PrependCollision:
		return "starts with prepend marker"
	case AppendCollision:
		return "equals append marker"
	case BadPath:
		return "has a path that can not be stored in a header line"
	default:
		return "unknown"
	}
}

// Violation is a single reason a file can not be embedded in a merged stream.
type Violation struct {
	Kind   ViolationKind
	Path   string
	Line   int    // 1-based; zero for whole-file violations
	Detail string // optional extra context
}

func (v *Violation) Error() string {
	var msg string
	switch v.Kind {
	case PrependCollision:
		return fmt.Sprintf("Line #%d in file %s starts with the prepend marker", v.Line, v.Path)
	case AppendCollision:
		return fmt.Sprintf("Line #%d in file %s is the same as the append marker", v.Line, v.Path)
	case TooBig:
		msg = fmt.Sprintf("File %s is too big", v.Path)
	case BadPath:
		msg = fmt.Sprintf("File %q has a path that can not be stored in a header line", v.Path)
	default:
		msg = fmt.Sprintf("File %s %s", v.Path, v.Kind)
	}
	if v.Detail != "" {
		msg += " (" + v.Detail + ")"
	}
	return msg
}

// Violations returns every *Violation contained in err, in report order.
func Violations(err error) []*Violation {
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		var v *Violation
		if errors.As(err, &v) {
			return []*Violation{v}
		}
		return nil
	}
	out := make([]*Violation, 0, len(merr.Errors))
	for _, e := range merr.Errors {
		var v *Violation
		if errors.As(e, &v) {
			out = append(out, v)
		}
	}
	return out
}

// listFormat renders one violation per line.
func listFormat(errs []error) string {
	lines := make([]string, len(errs))
	for i, err := range errs {
		lines[i] = err.Error()
	}
	return strings.Join(lines, "\n")
}
