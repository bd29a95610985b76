package asr

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/kbukum/voiceloop/audio"
	"github.com/kbukum/voiceloop/errors"
	"github.com/kbukum/voiceloop/logger"
	"github.com/kbukum/voiceloop/observability"
	"github.com/kbukum/voiceloop/postprocess"
)

// Engine owns a loaded model for its process lifetime and maps audio to
// display text. A single Engine issues one inference at a time; it is not
// torn down by a failed turn.
type Engine struct {
	model   Model
	cfg     Config
	log     *logger.Logger
	metrics *observability.Metrics
}

// NewEngine creates an engine around a loaded model backend.
func NewEngine(model Model, cfg Config) (*Engine, error) {
	if model == nil {
		return nil, errors.ModelLoadFailed(cfg.Backend, fmt.Errorf("no model backend"))
	}
	cfg.ApplyDefaults()
	return &Engine{
		model: model,
		cfg:   cfg,
		log:   logger.WithComponent("asr"),
	}, nil
}

// WithMetrics attaches metric instruments. Nil metrics are allowed; the
// engine then only logs.
func (e *Engine) WithMetrics(m *observability.Metrics) *Engine {
	e.metrics = m
	return e
}

// Transcribe maps one turn's audio to a Result. Classification happens
// before any timing starts; the stopwatch wraps only the model invocation.
func (e *Engine) Transcribe(ctx context.Context, in audio.Input) Result {
	var (
		req      InferenceRequest
		audioDur float64
	)

	switch in.Classify() {
	case audio.KindSamples:
		req.Samples = in.Samples
		audioDur = audio.SampleDuration(in.Samples, e.cfg.SampleRate)
	case audio.KindPath:
		info, err := audio.ReadWAVInfo(in.Path)
		if err != nil {
			e.log.Warn("unreadable audio file, skipping turn", logger.Fields(
				logger.FieldPath, in.Path,
				logger.FieldError, err.Error(),
			))
			e.recordSkip(ctx, SkipBadAudioFile)
			return Skip(SkipBadAudioFile)
		}
		req.Path = in.Path
		// The file's own rate is authoritative for file inputs.
		audioDur = info.Duration()
	default:
		e.log.Warn("unsupported audio input, skipping turn", logger.Fields(
			"has_samples", in.Samples != nil,
			"has_path", in.Path != "",
		))
		e.recordSkip(ctx, SkipUnsupportedInput)
		return Skip(SkipUnsupportedInput)
	}

	req.Language = e.cfg.Language
	req.UseITN = e.cfg.UseITN()

	ctx, span := observability.StartSpan(ctx, observability.SpanTranscribe)
	defer span.End()

	start := time.Now()
	hypotheses, err := e.model.Infer(ctx, req)
	inferSecs := time.Since(start).Seconds()

	rtf := math.Inf(1)
	if audioDur > 0 {
		rtf = inferSecs / audioDur
	}

	if err != nil {
		e.log.Warn("inference failed, skipping turn", logger.Fields(
			logger.FieldModel, e.model.Name(),
			logger.FieldError, err.Error(),
			logger.FieldInferSecs, inferSecs,
		))
		observability.SetSpanError(ctx, err)
		e.recordTurn(ctx, "error", inferSecs, audioDur, rtf)
		return Skip(SkipInferenceFailed)
	}

	e.log.Info("inference complete", logger.Fields(
		logger.FieldModel, e.model.Name(),
		logger.FieldInferSecs, inferSecs,
		logger.FieldAudioSecs, audioDur,
		logger.FieldRTF, rtf,
	))
	e.recordTurn(ctx, "ok", inferSecs, audioDur, rtf)

	if len(hypotheses) == 0 || len(hypotheses[0]) == 0 {
		e.log.Warn("model returned no hypotheses, skipping turn", logger.Fields(
			logger.FieldModel, e.model.Name(),
		))
		e.recordSkip(ctx, SkipNoHypothesis)
		return Skip(SkipNoHypothesis)
	}

	// First hypothesis of the first batch element is the engine's contract
	// with every backend.
	text, err := postprocess.Normalize(hypotheses[0][0])
	if err != nil {
		e.log.Warn("malformed model output, skipping turn", logger.Fields(
			logger.FieldModel, e.model.Name(),
			logger.FieldError, err.Error(),
		))
		e.recordSkip(ctx, SkipMalformedOutput)
		return Skip(SkipMalformedOutput)
	}

	return OK(text)
}

func (e *Engine) recordTurn(ctx context.Context, status string, inferSecs, audioSecs, rtf float64) {
	if e.metrics != nil {
		e.metrics.RecordTranscription(ctx, e.model.Name(), status, inferSecs, audioSecs, rtf)
	}
}

func (e *Engine) recordSkip(ctx context.Context, reason SkipReason) {
	if e.metrics != nil {
		e.metrics.RecordSkip(ctx, string(reason))
	}
}
