// Package asr owns the transcription engine: it classifies audio input,
// times inference, isolates model failures to the current turn, and hands
// raw hypotheses to the post-processor.
//
// The engine never returns an error for per-turn problems. A turn either
// produces a Result carrying display text or a skipped Result carrying the
// reason, so the interaction loop never has to distinguish recoverable
// errors from fatal ones at its boundary.
package asr
