package location

import (
	"errors"
	"fmt"
)

// ErrorType classifies pipeline failures.
type ErrorType int

const (
	// ErrorTypeUnknown is an unclassified failure.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeNotFound means the input file does not exist.
	ErrorTypeNotFound
	// ErrorTypeParse means the input file content is malformed.
	ErrorTypeParse
	// ErrorTypeRecordConstruction means a single row could not be turned into a record.
	ErrorTypeRecordConstruction
	// ErrorTypeRenderTarget means an output file could not be written.
	ErrorTypeRenderTarget
)

// String returns the error type name used in logs.
func (t ErrorType) String() string {
	switch t {
	case ErrorTypeNotFound:
		return "not_found"
	case ErrorTypeParse:
		return "parse"
	case ErrorTypeRecordConstruction:
		return "record_construction"
	case ErrorTypeRenderTarget:
		return "render_target"
	default:
		return "unknown"
	}
}

// Error is the error returned by every stage of the location pipeline.
// Path is set for file level failures, Row and Name for record level ones.
type Error struct {
	Err     error
	Path    string
	Name    string
	Message string
	Type    ErrorType
	Row     int
}

func (e *Error) Error() string {
	msg := e.Message
	switch {
	case e.Path != "":
		msg = fmt.Sprintf("%s %q", msg, e.Path)
	case e.Name != "":
		msg = fmt.Sprintf("%s %q at row %d", msg, e.Name, e.Row)
	}

	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}

	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func isType(err error, t ErrorType) bool {
	var locErr *Error
	if errors.As(err, &locErr) {
		return locErr.Type == t
	}

	return false
}

// IsNotFound reports whether err is a missing input file.
func IsNotFound(err error) bool { return isType(err, ErrorTypeNotFound) }

// IsParse reports whether err is malformed input.
func IsParse(err error) bool { return isType(err, ErrorTypeParse) }

// IsRecordConstruction reports whether err is a dropped record.
func IsRecordConstruction(err error) bool { return isType(err, ErrorTypeRecordConstruction) }

// IsRenderTarget reports whether err is an output write failure.
func IsRenderTarget(err error) bool { return isType(err, ErrorTypeRenderTarget) }
