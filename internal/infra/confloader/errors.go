package confloader

import (
	"errors"
	"fmt"
)

var (
	// ErrNotDirectory is returned when an autoload path exists but is not a directory.
	ErrNotDirectory = errors.New("confloader: not a directory")

	// ErrNotRegistered is returned when the config service is missing from a container.
	ErrNotRegistered = errors.New("confloader: config service not registered")
)

// ParseError reports a file whose extension a driver owns but whose content
// is malformed for that format.
//
// Message keeps the historical wording
//
//	Invalid JSON provided "<parser message>" in <path>
//
// which callers may match on.
type ParseError struct {
	Format  string
	Path    string
	Message string
	Err     error
}

func newParseError(format, path string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		Path:    path,
		Message: fmt.Sprintf("Invalid %s provided \"%s\" in %s", format, err, path),
		Err:     err,
	}
}

func (e *ParseError) Error() string {
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsParseError reports whether err is or wraps a *ParseError.
func IsParseError(err error) bool {
	var perr *ParseError
	return errors.As(err, &perr)
}
