package audio

import "fmt"

// Decimate reduces the sample rate of mono PCM by an integer factor,
// averaging each block of factor samples. Averaging gives crude low-pass
// behavior, enough for speech captured at 48 kHz and consumed at 16 kHz.
func Decimate(samples []float32, factor int) ([]float32, error) {
	if factor <= 0 {
		return nil, fmt.Errorf("decimation factor must be positive, got %d", factor)
	}
	if factor == 1 {
		return samples, nil
	}
	out := make([]float32, 0, len(samples)/factor)
	for i := 0; i+factor <= len(samples); i += factor {
		var sum float32
		for j := 0; j < factor; j++ {
			sum += samples[i+j]
		}
		out = append(out, sum/float32(factor))
	}
	return out, nil
}

// Resample converts mono PCM from srcRate to dstRate. Only integer
// decimation is supported (e.g., 48000 to 16000).
func Resample(samples []float32, srcRate, dstRate int) ([]float32, error) {
	if srcRate <= 0 || dstRate <= 0 {
		return nil, fmt.Errorf("sample rates must be positive, got %d and %d", srcRate, dstRate)
	}
	if srcRate == dstRate {
		return samples, nil
	}
	if srcRate%dstRate != 0 {
		return nil, fmt.Errorf("resampling from %d Hz to %d Hz requires an integer factor", srcRate, dstRate)
	}
	return Decimate(samples, srcRate/dstRate)
}

// MixToMono averages interleaved multi-channel PCM into mono.
func MixToMono(samples []float32, channels int) ([]float32, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("channels must be positive, got %d", channels)
	}
	if channels == 1 {
		return samples, nil
	}
	out := make([]float32, 0, len(samples)/channels)
	for i := 0; i+channels <= len(samples); i += channels {
		var sum float32
		for j := 0; j < channels; j++ {
			sum += samples[i+j]
		}
		out = append(out, sum/float32(channels))
	}
	return out, nil
}
