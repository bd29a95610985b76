package observability

import (
	"context"
	"math"
	"testing"
	"time"

	"go.opentelemetry.io/otel/metric/noop"
)

func TestDefaultTracerConfig(t *testing.T) {
	cfg := DefaultTracerConfig("voiceloop")

	if cfg.ServiceName != "voiceloop" {
		t.Errorf("expected ServiceName 'voiceloop', got %s", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected Endpoint 'localhost:4318', got %s", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected SampleRate 1.0, got %f", cfg.SampleRate)
	}
	if !cfg.Insecure {
		t.Error("expected Insecure to be true")
	}
}

func TestDefaultMeterConfig(t *testing.T) {
	cfg := DefaultMeterConfig("voiceloop")

	if cfg.ServiceName != "voiceloop" {
		t.Errorf("expected ServiceName 'voiceloop', got %s", cfg.ServiceName)
	}
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", cfg.Interval)
	}
}

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Enabled {
		t.Error("telemetry should be disabled by default")
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected default endpoint, got %s", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected default sample rate 1.0, got %f", cfg.SampleRate)
	}
}

func TestNewMetrics(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	metrics, err := NewMetrics(meter)
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}
	if metrics == nil {
		t.Fatal("expected non-nil metrics")
	}

	ctx := context.Background()
	metrics.RecordTranscription(ctx, "sensevoice", "ok", 0.5, 2.0, 0.25)
	metrics.RecordSkip(ctx, "empty_audio")
}

func TestRecordTranscription_InfiniteRTF(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	metrics, err := NewMetrics(meter)
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}

	// Must not panic on the zero-duration sentinel.
	metrics.RecordTranscription(context.Background(), "sensevoice", "ok", 0.1, 0, math.Inf(1))
}
