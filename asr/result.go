package asr

// SkipReason explains why a turn produced no transcript.
type SkipReason string

const (
	// SkipUnsupportedInput marks audio that is neither samples nor a path.
	SkipUnsupportedInput SkipReason = "unsupported_input"
	// SkipBadAudioFile marks a file input whose header could not be read.
	SkipBadAudioFile SkipReason = "bad_audio_file"
	// SkipInferenceFailed marks a model failure during inference.
	SkipInferenceFailed SkipReason = "inference_failed"
	// SkipNoHypothesis marks model output with zero batches or hypotheses.
	SkipNoHypothesis SkipReason = "no_hypothesis"
	// SkipMalformedOutput marks a hypothesis the post-processor rejected.
	SkipMalformedOutput SkipReason = "malformed_output"
)

// Result is the outcome of one transcription turn. A skipped result is a
// normal outcome, distinct from an empty transcript: empty text with
// Skipped false means the model genuinely heard nothing worth writing.
type Result struct {
	// Text is the display-ready transcript. Meaningful only when !Skipped.
	Text string
	// Skipped marks a turn that produced no transcript.
	Skipped bool
	// Reason explains a skipped turn.
	Reason SkipReason
}

// OK wraps display text as a successful result.
func OK(text string) Result {
	return Result{Text: text}
}

// Skip marks the turn as produced-no-transcript for the given reason.
func Skip(reason SkipReason) Result {
	return Result{Skipped: true, Reason: reason}
}
