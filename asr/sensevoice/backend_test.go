package sensevoice

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/kbukum/voiceloop/asr"
	"github.com/kbukum/voiceloop/modelcache"
)

// fakeRuntime writes an executable shell script that prints the given JSON.
func fakeRuntime(t *testing.T, dir, stdout string, exitCode int) string {
	t.Helper()
	script := "#!/bin/sh\ncat >/dev/null\nprintf '%s' '" + stdout + "'\nexit " + strconv.Itoa(exitCode) + "\n"
	path := filepath.Join(dir, "sensevoice-runtime")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func modelDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	marker := filepath.Join(dir, modelcache.ArtifactQuantModel)
	if err := os.WriteFile(marker, []byte("onnx"), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestNew_RequiresModelDir(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("expected error for missing model_dir")
	}
}

func TestInfer_ParsesHypotheses(t *testing.T) {
	dir := t.TempDir()
	bin := fakeRuntime(t, dir, `[["<|zh|><|NEUTRAL|>你好","alt"]]`, 0)

	b, err := New(Config{Binary: bin, ModelDir: modelDir(t)})
	if err != nil {
		t.Fatal(err)
	}

	hyp, err := b.Infer(context.Background(), asr.InferenceRequest{
		Samples:  make([]float32, 160),
		Language: "zh",
		UseITN:   true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hyp) != 1 || len(hyp[0]) != 2 {
		t.Fatalf("unexpected shape: %v", hyp)
	}
	if hyp[0][0] != "<|zh|><|NEUTRAL|>你好" {
		t.Errorf("got %q", hyp[0][0])
	}
}

func TestInfer_PathInput(t *testing.T) {
	dir := t.TempDir()
	bin := fakeRuntime(t, dir, `[["from file"]]`, 0)

	b, err := New(Config{Binary: bin, ModelDir: modelDir(t)})
	if err != nil {
		t.Fatal(err)
	}

	hyp, err := b.Infer(context.Background(), asr.InferenceRequest{Path: "/tmp/turn.wav"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hyp[0][0] != "from file" {
		t.Errorf("got %q", hyp[0][0])
	}
}

func TestInfer_RuntimeFailure(t *testing.T) {
	dir := t.TempDir()
	bin := fakeRuntime(t, dir, "", 1)

	b, err := New(Config{Binary: bin, ModelDir: modelDir(t)})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := b.Infer(context.Background(), asr.InferenceRequest{Samples: []float32{0}}); err == nil {
		t.Error("expected error for failing runtime")
	}
}

func TestInfer_GarbageOutput(t *testing.T) {
	dir := t.TempDir()
	bin := fakeRuntime(t, dir, "not json", 0)

	b, err := New(Config{Binary: bin, ModelDir: modelDir(t)})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := b.Infer(context.Background(), asr.InferenceRequest{Samples: []float32{0}}); err == nil {
		t.Error("expected error for unparseable output")
	}
}

func TestIsAvailable(t *testing.T) {
	dir := t.TempDir()
	bin := fakeRuntime(t, dir, "[]", 0)
	md := modelDir(t)

	b, err := New(Config{Binary: bin, ModelDir: md})
	if err != nil {
		t.Fatal(err)
	}
	if !b.IsAvailable(context.Background()) {
		t.Error("expected backend to be available")
	}

	b2, err := New(Config{Binary: "/nonexistent/bin", ModelDir: md})
	if err != nil {
		t.Fatal(err)
	}
	if b2.IsAvailable(context.Background()) {
		t.Error("expected unavailable for missing binary")
	}

	b3, err := New(Config{Binary: bin, ModelDir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	if b3.IsAvailable(context.Background()) {
		t.Error("expected unavailable for unprovisioned model dir")
	}
}

func TestInfer_TimeoutKillsHungRuntime(t *testing.T) {
	dir := t.TempDir()
	script := "#!/bin/sh\ncat >/dev/null\nsleep 30\n"
	bin := filepath.Join(dir, "sensevoice-runtime")
	if err := os.WriteFile(bin, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}

	b, err := New(Config{
		Binary:       bin,
		ModelDir:     modelDir(t),
		InferTimeout: 100 * time.Millisecond,
		GracePeriod:  500 * time.Millisecond,
	})
	if err != nil {
		t.Fatal(err)
	}

	start := time.Now()
	_, err = b.Infer(context.Background(), asr.InferenceRequest{Samples: []float32{0}})
	if err == nil {
		t.Fatal("expected error for hung runtime")
	}
	if time.Since(start) > 5*time.Second {
		t.Fatalf("timeout took too long to fire: %v", time.Since(start))
	}
}

func TestFactory(t *testing.T) {
	md := modelDir(t)
	m, err := Factory(map[string]any{
		"binary":        "sensevoice-runtime",
		"model_dir":     md,
		"sample_rate":   16000,
		"infer_timeout": "30s",
		"grace_period":  "2s",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Name() != BackendName {
		t.Errorf("expected %s, got %s", BackendName, m.Name())
	}
	b := m.(*Backend)
	if b.cfg.InferTimeout != 30*time.Second {
		t.Errorf("expected 30s infer timeout, got %v", b.cfg.InferTimeout)
	}
}

func TestFactory_BadDuration(t *testing.T) {
	if _, err := Factory(map[string]any{
		"model_dir":    modelDir(t),
		"grace_period": "soon",
	}); err == nil {
		t.Error("expected error for bad grace_period")
	}
	if _, err := Factory(map[string]any{
		"model_dir":     modelDir(t),
		"infer_timeout": "eventually",
	}); err == nil {
		t.Error("expected error for bad infer_timeout")
	}
}
