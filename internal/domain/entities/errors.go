package entities

import (
	"errors"
	"fmt"
)

// ConversionErrorType categorizes the failures a conversion run can surface
type ConversionErrorType string

const (
	// ErrorTypeNotFound indicates the source path does not exist or is
	// not readable
	ErrorTypeNotFound ConversionErrorType = "not_found"

	// ErrorTypeInvalidFormat indicates the source exists but is not a
	// valid deck container (corrupt archive, missing required parts)
	ErrorTypeInvalidFormat ConversionErrorType = "invalid_format"

	// ErrorTypeDestination indicates the destination cannot be created
	// or written
	ErrorTypeDestination ConversionErrorType = "destination_unwritable"

	// ErrorTypeRender indicates a derived view of an already-written
	// document could not be produced; it never unwinds a success
	ErrorTypeRender ConversionErrorType = "render_failure"

	// ErrorTypeCancelled indicates the run was cancelled cooperatively
	ErrorTypeCancelled ConversionErrorType = "cancelled"
)

// ErrConversionInProgress is returned when a second run is started on an
// engine whose previous run is still outstanding.
var ErrConversionInProgress = errors.New("a conversion is already in progress")

// ConversionError provides categorized error information for a run
type ConversionError struct {
	Type    ConversionErrorType `json:"type"`
	Message string              `json:"message"`
	Path    string              `json:"path,omitempty"`
	Cause   error               `json:"-"`
}

func (e *ConversionError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", e.Message, e.Path)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *ConversionError) Unwrap() error {
	return e.Cause
}

// NewNotFoundError reports a missing or unreadable source
func NewNotFoundError(path string, cause error) *ConversionError {
	return &ConversionError{
		Type:    ErrorTypeNotFound,
		Message: "source file not found or not readable",
		Path:    path,
		Cause:   cause,
	}
}

// NewInvalidFormatError reports a source that is not a valid deck container
func NewInvalidFormatError(path string, cause error) *ConversionError {
	return &ConversionError{
		Type:    ErrorTypeInvalidFormat,
		Message: "not a valid slide deck",
		Path:    path,
		Cause:   cause,
	}
}

// NewDestinationError reports an unwritable destination
func NewDestinationError(path string, cause error) *ConversionError {
	return &ConversionError{
		Type:    ErrorTypeDestination,
		Message: "cannot write destination",
		Path:    path,
		Cause:   cause,
	}
}

// NewRenderError reports a failed derived-view rendering
func NewRenderError(cause error) *ConversionError {
	return &ConversionError{
		Type:    ErrorTypeRender,
		Message: "rendering derived view",
		Cause:   cause,
	}
}

// NewCancelledError reports a cooperatively cancelled run
func NewCancelledError(cause error) *ConversionError {
	return &ConversionError{
		Type:    ErrorTypeCancelled,
		Message: "conversion cancelled",
		Cause:   cause,
	}
}

// ErrorTypeOf extracts the conversion error category, or an empty string
// when the error is not a ConversionError
func ErrorTypeOf(err error) ConversionErrorType {
	var cerr *ConversionError
	if errors.As(err, &cerr) {
		return cerr.Type
	}
	return ""
}

// IsNotFound reports whether err is a missing-source error
func IsNotFound(err error) bool {
	return ErrorTypeOf(err) == ErrorTypeNotFound
}

// IsInvalidFormat reports whether err is an invalid-container error
func IsInvalidFormat(err error) bool {
	return ErrorTypeOf(err) == ErrorTypeInvalidFormat
}
