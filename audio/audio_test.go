package audio_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/kbukum/voiceloop/audio"
	"github.com/kbukum/voiceloop/testutil"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		in   audio.Input
		want audio.Kind
	}{
		{"samples", audio.FromSamples([]float32{0.1, 0.2}), audio.KindSamples},
		{"empty samples", audio.FromSamples([]float32{}), audio.KindSamples},
		{"path", audio.FromPath("/tmp/a.wav"), audio.KindPath},
		{"neither", audio.Input{}, audio.KindInvalid},
		{"both", audio.Input{Samples: []float32{0}, Path: "/tmp/a.wav"}, audio.KindInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.Classify(); got != tc.want {
				t.Errorf("Classify() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSampleDuration(t *testing.T) {
	samples := make([]float32, 32000)
	if got := audio.SampleDuration(samples, 16000); got != 2.0 {
		t.Errorf("expected 2.0s, got %v", got)
	}
	if got := audio.SampleDuration(nil, 16000); got != 0 {
		t.Errorf("expected 0s for nil samples, got %v", got)
	}
	if got := audio.SampleDuration(samples, 0); got != 0 {
		t.Errorf("expected 0s for zero rate, got %v", got)
	}
}

func TestReadWAVInfo(t *testing.T) {
	dir := t.TempDir()
	samples := testutil.Sine(440, 1.5, 16000)
	path := testutil.WriteWAV(t, dir, "tone.wav", samples, 16000)

	info, err := audio.ReadWAVInfo(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.SampleRate != 16000 {
		t.Errorf("expected rate 16000, got %d", info.SampleRate)
	}
	if info.Channels != 1 {
		t.Errorf("expected 1 channel, got %d", info.Channels)
	}
	if info.Frames != len(samples) {
		t.Errorf("expected %d frames, got %d", len(samples), info.Frames)
	}
	if math.Abs(info.Duration()-1.5) > 1e-9 {
		t.Errorf("expected duration 1.5s, got %v", info.Duration())
	}
}

func TestReadWAVInfo_UsesFileRate(t *testing.T) {
	dir := t.TempDir()
	// Same frame count at a different rate gives a different duration.
	samples := testutil.Sine(440, 1.0, 8000)
	path := testutil.WriteWAV(t, dir, "slow.wav", samples, 8000)

	info, err := audio.ReadWAVInfo(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.SampleRate != 8000 {
		t.Errorf("expected file's own rate 8000, got %d", info.SampleRate)
	}
	if math.Abs(info.Duration()-1.0) > 1e-9 {
		t.Errorf("expected duration 1.0s, got %v", info.Duration())
	}
}

func TestReadWAVInfo_NotWAV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bogus.wav")
	if err := os.WriteFile(path, []byte("this is not audio"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := audio.ReadWAVInfo(path); err == nil {
		t.Error("expected error for non-WAV file")
	}
}

func TestReadWAVInfo_Missing(t *testing.T) {
	if _, err := audio.ReadWAVInfo("/nonexistent/file.wav"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDecimate(t *testing.T) {
	in := []float32{1, 1, 1, 3, 3, 3}
	out, err := audio.Decimate(in, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(out))
	}
	if out[0] != 1 || out[1] != 3 {
		t.Errorf("expected [1 3], got %v", out)
	}
}

func TestDecimate_FactorOne(t *testing.T) {
	in := []float32{0.5, -0.5}
	out, err := audio.Decimate(in, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Errorf("expected unchanged slice, got %v", out)
	}
}

func TestResample48kTo16k(t *testing.T) {
	in := make([]float32, 48000)
	out, err := audio.Resample(in, 48000, 16000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 16000 {
		t.Errorf("expected 16000 samples, got %d", len(out))
	}
}

func TestResample_NonIntegerFactor(t *testing.T) {
	if _, err := audio.Resample(make([]float32, 100), 44100, 16000); err == nil {
		t.Error("expected error for non-integer factor")
	}
}

func TestMixToMono(t *testing.T) {
	stereo := []float32{1, 0, 0, 1}
	mono, err := audio.MixToMono(stereo, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mono) != 2 || mono[0] != 0.5 || mono[1] != 0.5 {
		t.Errorf("expected [0.5 0.5], got %v", mono)
	}
}
