package writer

import (
	"errors"
	"fmt"
)

// SinkKind classifies a persistence failure.
type SinkKind int

const (
	// KindFile covers CSV open/write failures.
	KindFile SinkKind = iota + 1
	// KindConnect covers failure to open the database connection.
	KindConnect
	// KindInsert covers a failed insert into one table.
	KindInsert
)

func (k SinkKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindConnect:
		return "connect"
	case KindInsert:
		return "insert"
	default:
		return "unknown"
	}
}

// SinkError reports one failed sink operation. Target names the file path or table.
type SinkError struct {
	Kind   SinkKind
	Target string
	Err    error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Target, e.Err)
}

func (e *SinkError) Unwrap() error {
	return e.Err
}

// SinkErrors flattens an error returned by Persist into its SinkErrors.
func SinkErrors(err error) []*SinkError {
	if err == nil {
		return nil
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []*SinkError
		for _, e := range joined.Unwrap() {
			out = append(out, SinkErrors(e)...)
		}
		return out
	}

	var se *SinkError
	if errors.As(err, &se) {
		return []*SinkError{se}
	}
	return nil
}
