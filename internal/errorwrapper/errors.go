package errorwrapper

import (
	"fmt"
)

// WrapError wraps an error with additional context information
func WrapError(err error, message string) error {
	if err == nil {
		return fmt.Errorf("%s: <nil>", message)
	}
	return fmt.Errorf("%s: %w", message, err)
}

// NewError creates a new error with a formatted message
func NewError(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// UpstreamUnavailableError indicates the remote archive index could not be
// listed. It is always fatal: without a trustworthy index the run must abort.
type UpstreamUnavailableError struct {
	Source  string
	Wrapped error
}

func (e *UpstreamUnavailableError) Error() string {
	return fmt.Sprintf("upstream index unavailable for '%s': %v", e.Source, e.Wrapped)
}

func (e *UpstreamUnavailableError) Unwrap() error {
	return e.Wrapped
}

// NewUpstreamUnavailableError creates a new upstream unavailable error
func NewUpstreamUnavailableError(source string, wrapped error) *UpstreamUnavailableError {
	return &UpstreamUnavailableError{Source: source, Wrapped: wrapped}
}

// DownloadError indicates a network or write failure while fetching an
// archive file. It is file-level: the continue-after-error policy decides
// whether the run proceeds to the next archive.
type DownloadError struct {
	URL     string
	Reason  string
	Wrapped error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download error for URL '%s': %s", e.URL, e.Reason)
}

func (e *DownloadError) Unwrap() error {
	return e.Wrapped
}

// NewDownloadError creates a new download error
func NewDownloadError(url, reason string, wrapped error) *DownloadError {
	return &DownloadError{URL: url, Reason: reason, Wrapped: wrapped}
}

// ArchiveParseError indicates malformed container structure in a local
// archive file. File-level, same policy gate as DownloadError.
type ArchiveParseError struct {
	Path    string
	Wrapped error
}

func (e *ArchiveParseError) Error() string {
	return fmt.Sprintf("archive parse error for '%s': %v", e.Path, e.Wrapped)
}

func (e *ArchiveParseError) Unwrap() error {
	return e.Wrapped
}

// NewArchiveParseError creates a new archive parse error
func NewArchiveParseError(path string, wrapped error) *ArchiveParseError {
	return &ArchiveParseError{Path: path, Wrapped: wrapped}
}

// CheckpointWriteError indicates the checkpoint log could not be appended or
// synced. Always fatal: continuing without checkpoints risks duplicate
// reprocessing after a restart.
type CheckpointWriteError struct {
	Path    string
	Wrapped error
}

func (e *CheckpointWriteError) Error() string {
	return fmt.Sprintf("checkpoint write error for '%s': %v", e.Path, e.Wrapped)
}

func (e *CheckpointWriteError) Unwrap() error {
	return e.Wrapped
}

// NewCheckpointWriteError creates a new checkpoint write error
func NewCheckpointWriteError(path string, wrapped error) *CheckpointWriteError {
	return &CheckpointWriteError{Path: path, Wrapped: wrapped}
}

// ValidationError represents validation errors with field-specific information
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: field '%s' with value '%v': %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}
