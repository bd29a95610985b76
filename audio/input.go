package audio

// Input is the audio handed to the transcription engine. Exactly one of
// Samples or Path must be set.
type Input struct {
	// Samples is mono PCM in [-1, 1].
	Samples []float32
	// Path points to a WAV file on disk.
	Path string
}

// FromSamples wraps in-memory PCM samples as an Input.
func FromSamples(samples []float32) Input {
	return Input{Samples: samples}
}

// FromPath wraps a WAV file path as an Input.
func FromPath(path string) Input {
	return Input{Path: path}
}

// Kind classifies an Input.
type Kind int

const (
	// KindInvalid marks inputs with neither or both variants set.
	KindInvalid Kind = iota
	// KindSamples marks in-memory sample inputs.
	KindSamples
	// KindPath marks file path inputs.
	KindPath
)

// Classify reports which variant the input carries. An input with both or
// neither variant set is invalid; a non-nil empty sample slice is a valid
// samples input of zero duration.
func (in Input) Classify() Kind {
	hasSamples := in.Samples != nil
	hasPath := in.Path != ""
	switch {
	case hasSamples && hasPath:
		return KindInvalid
	case hasSamples:
		return KindSamples
	case hasPath:
		return KindPath
	default:
		return KindInvalid
	}
}

// SampleDuration returns the duration in seconds of a sample slice at the
// given rate.
func SampleDuration(samples []float32, sampleRate int) float64 {
	if sampleRate <= 0 {
		return 0
	}
	return float64(len(samples)) / float64(sampleRate)
}
