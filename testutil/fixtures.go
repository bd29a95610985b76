package testutil

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// WriteWAV writes 16-bit PCM samples as a WAV file and returns its path.
// Samples are mono floats in [-1, 1].
func WriteWAV(t *testing.T, dir, name string, samples []float32, sampleRate int) string {
	t.Helper()

	const (
		channels      = 1
		bitsPerSample = 16
	)
	blockAlign := channels * bitsPerSample / 8
	dataSize := len(samples) * blockAlign

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	writeU32(&buf, uint32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	writeU32(&buf, 16)
	writeU16(&buf, 1) // PCM
	writeU16(&buf, channels)
	writeU32(&buf, uint32(sampleRate))
	writeU32(&buf, uint32(sampleRate*blockAlign))
	writeU16(&buf, uint16(blockAlign))
	writeU16(&buf, bitsPerSample)

	buf.WriteString("data")
	writeU32(&buf, uint32(dataSize))
	for _, s := range samples {
		v := int16(math.Round(float64(s) * 32767))
		writeU16(&buf, uint16(v))
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("writing wav fixture: %v", err)
	}
	return path
}

// TarGz builds an in-memory gzipped tarball from a map of file name to
// contents. Names may contain directory separators.
func TarGz(t *testing.T, files map[string][]byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)

	for name, content := range files {
		hdr := &tar.Header{
			Name: name,
			Mode: 0o644,
			Size: int64(len(content)),
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("writing tar header for %s: %v", name, err)
		}
		if _, err := tw.Write(content); err != nil {
			t.Fatalf("writing tar entry %s: %v", name, err)
		}
	}

	if err := tw.Close(); err != nil {
		t.Fatalf("closing tar writer: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("closing gzip writer: %v", err)
	}
	return buf.Bytes()
}

// Sine generates a mono sine wave of the given frequency and duration.
func Sine(freq float64, seconds float64, sampleRate int) []float32 {
	n := int(seconds * float64(sampleRate))
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(0.5 * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)))
	}
	return out
}

func writeU16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}
