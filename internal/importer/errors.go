package importer

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedJSON   = errors.New("malformed JSON")
	ErrInvalidSchema   = errors.New("invalid workout plan schema")
	ErrUnsupportedFile = errors.New("unsupported file type")
	ErrEmptyInput      = errors.New("empty input")
)

// Rejection is returned when an import payload is refused. Kind is one of the
// Err* sentinels above, so callers can branch with errors.Is.
type Rejection struct {
	Kind error
	Msg  string
}

func (e *Rejection) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *Rejection) Unwrap() error { return e.Kind }

func reject(kind error, format string, args ...any) error {
	return &Rejection{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// KindName returns the stable name of a rejection kind, as used in API
// responses and metric labels. It returns "" for errors that are not
// rejections.
func KindName(err error) string {
	switch {
	case errors.Is(err, ErrMalformedJSON):
		return "MalformedJSON"
	case errors.Is(err, ErrInvalidSchema):
		return "InvalidSchema"
	case errors.Is(err, ErrUnsupportedFile):
		return "UnsupportedFile"
	case errors.Is(err, ErrEmptyInput):
		return "EmptyInput"
	}
	return ""
}

// Message returns the text shown to the user for an import failure.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrMalformedJSON):
		return "Invalid JSON format. Please check your JSON syntax and try again."
	case errors.Is(err, ErrInvalidSchema):
		return "Invalid workout plan format. Please ensure the JSON contains a valid workout plan structure."
	case errors.Is(err, ErrUnsupportedFile):
		return "Please select a valid JSON file."
	case errors.Is(err, ErrEmptyInput):
		return "Please paste JSON content in the text area."
	}
	return "Import failed. Please try again."
}
