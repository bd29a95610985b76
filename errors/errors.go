package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Fatal indicates the program should terminate rather than skip the turn.
	Fatal bool `json:"fatal"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with fatality derived from the code.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Fatal:   IsFatalCode(code),
	}
}

// IsFatal reports whether err (or any error it wraps) is a fatal AppError.
// Unknown error types are treated as fatal.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Fatal
	}
	return true
}

// AsAppError unwraps err to an AppError when one is in the chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// --- Common Error Constructors ---

// DownloadFailed creates a new AppError for a failed model archive download.
func DownloadFailed(url string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeDownloadFailed, Message: "Failed to download the model archive.",
		Fatal: true, Cause: cause,
		Details: map[string]any{"url": url},
	}
}

// ExtractFailed creates a new AppError for a failed archive extraction.
func ExtractFailed(archive string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeExtractFailed, Message: "Failed to extract the model archive.",
		Fatal: true, Cause: cause,
		Details: map[string]any{"archive": archive},
	}
}

// ModelMissing creates a new AppError for a model artifact that is absent
// after provisioning completed.
func ModelMissing(path string) *AppError {
	return &AppError{
		Code: ErrCodeModelMissing, Message: fmt.Sprintf("Model artifact not found at %s.", path),
		Fatal: true,
		Details: map[string]any{"path": path},
	}
}

// ModelLoadFailed creates a new AppError for a model that failed to load.
func ModelLoadFailed(model string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeModelLoadFailed, Message: fmt.Sprintf("Failed to load model %s.", model),
		Fatal: true, Cause: cause,
		Details: map[string]any{"model": model},
	}
}

// CaptureFailed creates a new AppError for an audio device failure.
func CaptureFailed(cause error) *AppError {
	return &AppError{
		Code: ErrCodeCaptureFailed, Message: "Audio capture failed.",
		Fatal: false, Cause: cause,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		Fatal: true,
	}
}
