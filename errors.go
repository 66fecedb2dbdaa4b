package katachi

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies why a source was skipped.
type Kind byte

const (
	SourceUnavailable Kind = iota // the file could not be read
	SourceEmpty                   // the file has no content
	MalformedRecord               // the file is not a readable game record
	IllegalMove                   // a move of the record could not be played
	DuplicateGame                 // the game repeats an earlier one (only when duplicates are skipped)
	kindCount
)

var kindNames = [...]string{
	SourceUnavailable: "unavailable",
	SourceEmpty:       "empty",
	MalformedRecord:   "malformed",
	IllegalMove:       "illegal move",
	DuplicateGame:     "duplicate",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", byte(k))
}

// Kinds lists every Kind in order.
func Kinds() []Kind {
	retVal := make([]Kind, 0, kindCount)
	for k := SourceUnavailable; k < kindCount; k++ {
		retVal = append(retVal, k)
	}
	return retVal
}

// SourceError is returned for a source that was skipped. It never aborts a run.
type SourceError struct {
	Kind   Kind
	Source string
	err    error
}

func newSourceError(kind Kind, source string, err error) *SourceError {
	return &SourceError{Kind: kind, Source: source, err: err}
}

func (e *SourceError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("%s: %v", e.Source, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Source, e.Kind, e.err)
}

func (e *SourceError) Cause() error  { return e.err }
func (e *SourceError) Unwrap() error { return e.err }

// KindOf returns the Kind of a *SourceError anywhere in err's chain.
func KindOf(err error) (Kind, bool) {
	var se *SourceError
	if errors.As(err, &se) {
		return se.Kind, true
	}
	return 0, false
}
