// Package observability provides OpenTelemetry tracing and metrics
// integration for voiceloop.
//
// Telemetry is disabled by default and activated from configuration. The
// interaction loop keeps working without a collector.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("voiceloop"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanTranscribe)
//	defer span.End()
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("voiceloop"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("voiceloop"))
//	metrics.RecordTranscription(ctx, "sensevoice", "ok", inferSecs, audioSecs, rtf)
package observability
