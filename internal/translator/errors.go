package translator

import (
	"errors"
	"fmt"

	"github.com/pricofy/translation-lookup/internal/domain"
	"github.com/pricofy/translation-lookup/internal/normalizer"
	"github.com/pricofy/translation-lookup/internal/parser"
)

// Placeholder texts shown in place of a translation when a lookup fails.
const (
	InternetErrorText = "[Internet Error]"
	ResponseErrorText = "[Error In Google Translate Response]"
)

// TransportError means the service could not be reached or answered with a
// non-success status.
type TransportError struct {
	URL    string
	Status int // 0 when no response was received
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("translator: %s: unexpected status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("translator: %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ErrBodyTooLarge is wrapped by a ResponseError when the body exceeds the
// configured limit.
var ErrBodyTooLarge = errors.New("response body too large")

// ResponseError means the service answered but the body could not be
// interpreted. Err is a *parser.ParseError, a *normalizer.ShapeError or
// ErrBodyTooLarge.
type ResponseError struct {
	Body string
	Err  error
}

func (e *ResponseError) Error() string {
	return "translator: interpret response: " + e.Err.Error()
}

func (e *ResponseError) Unwrap() error { return e.Err }

// placeholderFor maps the three expected failure kinds to the entry shown
// instead of a translation. ok is false for anything else.
func placeholderFor(err error) (entry domain.Entry, ok bool) {
	var (
		transportErr *TransportError
		parseErr     *parser.ParseError
		shapeErr     *normalizer.ShapeError
	)
	switch {
	case errors.As(err, &transportErr):
		return domain.NewMutedEntry(InternetErrorText), true
	case errors.As(err, &parseErr), errors.As(err, &shapeErr), errors.Is(err, ErrBodyTooLarge):
		return domain.NewMutedEntry(ResponseErrorText), true
	default:
		return domain.Entry{}, false
	}
}
