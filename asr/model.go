package asr

import (
	"context"

	"github.com/kbukum/voiceloop/provider"
)

// InferenceRequest carries one turn's audio plus the engine's fixed decoding
// parameters to a model backend. Exactly one of Samples or Path is set; the
// engine validates this before the backend sees the request.
type InferenceRequest struct {
	// Samples is mono PCM at the engine's sample rate.
	Samples []float32
	// Path is a WAV file to transcribe.
	Path string
	// Language is the target transcription language code.
	Language string
	// UseITN applies inverse text normalization to numerals and dates.
	UseITN bool
}

// Model is a loaded speech model backend. Infer returns batches of
// hypotheses; the engine always selects the first hypothesis of the first
// batch.
type Model interface {
	provider.Provider
	Infer(ctx context.Context, req InferenceRequest) ([][]string, error)
}
