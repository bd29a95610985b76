package errors

// ErrorCode represents a machine-readable error code.
//
// Codes cover failures that surface as errors: provisioning, startup, and
// the audio device. Per-turn transcription failures never become errors;
// they are skip reasons in the asr package.
type ErrorCode string

// Provisioning errors (fatal: the model cannot be obtained)
const (
	// ErrCodeDownloadFailed indicates the model archive could not be downloaded.
	ErrCodeDownloadFailed ErrorCode = "DOWNLOAD_FAILED"
	// ErrCodeExtractFailed indicates the model archive could not be extracted.
	ErrCodeExtractFailed ErrorCode = "EXTRACT_FAILED"
	// ErrCodeModelMissing indicates a required model artifact is absent after provisioning.
	ErrCodeModelMissing ErrorCode = "MODEL_MISSING"
	// ErrCodeModelLoadFailed indicates the model could not be loaded into the engine.
	ErrCodeModelLoadFailed ErrorCode = "MODEL_LOAD_FAILED"
)

// Runtime errors
const (
	// ErrCodeCaptureFailed indicates the audio device failed. Recoverable:
	// the turn is skipped, the loop continues.
	ErrCodeCaptureFailed ErrorCode = "CAPTURE_FAILED"
	// ErrCodeInvalidInput indicates configuration input is invalid. Fatal:
	// startup cannot proceed.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

var fatalCodes = map[ErrorCode]bool{
	ErrCodeDownloadFailed:  true,
	ErrCodeExtractFailed:   true,
	ErrCodeModelMissing:    true,
	ErrCodeModelLoadFailed: true,
	ErrCodeInvalidInput:    true,
}

// IsFatalCode returns true if the error code should terminate the program
// rather than skip the current turn.
func IsFatalCode(code ErrorCode) bool {
	return fatalCodes[code]
}
