package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies why a catalogue fetch failed.
type ErrorKind int

const (
	// KindTransport covers network failures and non-2xx responses.
	KindTransport ErrorKind = iota + 1
	// KindDecode covers malformed JSON and unexpected payload shapes.
	KindDecode
	// KindParse covers numeric fields that are not valid suffix notation.
	KindParse
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindDecode:
		return "decode"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// FetchError is returned by GetCatalogue. It carries whatever response data was available
// so the caller can log it alongside the URL.
type FetchError struct {
	Kind       ErrorKind
	URL        string
	StatusCode int
	Header     http.Header
	Body       []byte
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ParseError reports a value that ParseSuffixed could not expand.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("parse suffixed number %q", e.Input)
	}
	return fmt.Sprintf("parse suffixed number %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// KindOf returns the ErrorKind of err, or 0 if err is not a *FetchError.
func KindOf(err error) ErrorKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}
