package observability

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/voiceloop/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds OpenTelemetry metric instruments for the capture pipeline.
type Metrics struct {
	transcriptionTotal metric.Int64Counter
	inferDuration      metric.Float64Histogram
	audioDuration      metric.Float64Histogram
	rtf                metric.Float64Histogram
	turnSkipped        metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	transcriptionTotal, err := meter.Int64Counter("transcription.total",
		metric.WithDescription("Total number of transcription turns"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transcription.total counter: %w", err)
	}

	inferDuration, err := meter.Float64Histogram("transcription.infer.duration",
		metric.WithDescription("Model inference wall time in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transcription.infer.duration histogram: %w", err)
	}

	audioDuration, err := meter.Float64Histogram("transcription.audio.duration",
		metric.WithDescription("Duration of transcribed audio in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transcription.audio.duration histogram: %w", err)
	}

	rtf, err := meter.Float64Histogram("transcription.rtf",
		metric.WithDescription("Real-time factor: inference time over audio duration"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transcription.rtf histogram: %w", err)
	}

	turnSkipped, err := meter.Int64Counter("turn.skipped",
		metric.WithDescription("Turns that produced no transcript, by reason"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating turn.skipped counter: %w", err)
	}

	return &Metrics{
		transcriptionTotal: transcriptionTotal,
		inferDuration:      inferDuration,
		audioDuration:      audioDuration,
		rtf:                rtf,
		turnSkipped:        turnSkipped,
	}, nil
}

// RecordTranscription records a completed transcription turn.
// An infinite RTF (zero-length audio) is counted but not recorded in the
// histogram.
func (m *Metrics) RecordTranscription(ctx context.Context, model, status string, inferSecs, audioSecs, rtf float64) {
	m.transcriptionTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("model", model),
		attribute.String("status", status),
	))
	modelAttr := metric.WithAttributes(attribute.String("model", model))
	m.inferDuration.Record(ctx, inferSecs, modelAttr)
	m.audioDuration.Record(ctx, audioSecs, modelAttr)
	if !math.IsInf(rtf, 0) && !math.IsNaN(rtf) {
		m.rtf.Record(ctx, rtf, modelAttr)
	}
}

// RecordSkip records a turn that produced no transcript.
func (m *Metrics) RecordSkip(ctx context.Context, reason string) {
	m.turnSkipped.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", reason),
	))
}
