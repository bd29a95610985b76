// Package errors provides unified error handling for voiceloop.
// It implements structured error types with error codes, severity
// classification, and fatal-versus-recoverable detection.
package errors
