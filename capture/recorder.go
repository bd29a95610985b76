package capture

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/voiceloop/audio"
	"github.com/kbukum/voiceloop/logger"
	"github.com/kbukum/voiceloop/observability"
)

// FrameSource is the audio device abstraction. Read blocks until the next
// frame of interleaved samples is available and returns io.EOF when the
// stream ends.
type FrameSource interface {
	Read(ctx context.Context) ([]float32, error)
	Close() error
}

// Recorder is the Session implementation over a FrameSource. Capture runs
// on its own goroutine; Stop is the join point.
type Recorder struct {
	cfg Config
	src FrameSource
	mon *Monitor
	log *logger.Logger

	mu      sync.Mutex
	done    chan struct{}
	cancel  context.CancelFunc
	span    trace.Span
	result  []float32
	gotten  bool
	readErr error

	closeOnce sync.Once
	closeErr  error
}

// NewRecorder creates a recorder over the given source.
func NewRecorder(src FrameSource, cfg Config) (*Recorder, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Recorder{
		cfg: cfg,
		src: src,
		mon: NewMonitor(cfg),
		log: logger.WithComponent("capture"),
	}, nil
}

// Start begins a capture cycle.
func (r *Recorder) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done != nil {
		return fmt.Errorf("capture: recording already in progress")
	}

	r.mon.Reset()
	r.result = nil
	r.gotten = false
	r.readErr = nil

	ctx, cancel := context.WithCancel(ctx)
	ctx, r.span = observability.StartSpan(ctx, observability.SpanCapture)
	r.cancel = cancel
	r.done = make(chan struct{})

	go r.run(ctx)
	return nil
}

// run reads frames until the monitor's stop policy fires or the context is
// canceled. Stream position advances by sample count at the device rate.
func (r *Recorder) run(ctx context.Context) {
	defer close(r.done)

	var streamSamples int
	for {
		if ctx.Err() != nil {
			return
		}

		frame, err := r.src.Read(ctx)
		if err != nil {
			if err != io.EOF && ctx.Err() == nil {
				r.mu.Lock()
				r.readErr = err
				r.mu.Unlock()
				r.log.Warn("device read failed", logger.ErrorFields("read", err))
			}
			return
		}

		mono, err := audio.MixToMono(frame, r.cfg.Channels)
		if err != nil {
			r.mu.Lock()
			r.readErr = err
			r.mu.Unlock()
			return
		}

		streamSamples += len(mono)
		pos := time.Duration(streamSamples) * time.Second / time.Duration(r.cfg.DeviceSampleRate)

		if r.mon.Feed(mono, pos) {
			return
		}
	}
}

// Stop blocks until the capture goroutine finishes and finalizes the buffer.
func (r *Recorder) Stop() error {
	r.mu.Lock()
	done := r.done
	cancel := r.cancel
	r.mu.Unlock()

	if done == nil {
		return fmt.Errorf("capture: no recording in progress")
	}

	<-done

	if cancel != nil {
		cancel()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.done = nil
	r.cancel = nil
	if r.span != nil {
		r.span.End()
		r.span = nil
	}

	if r.readErr != nil {
		return r.readErr
	}

	samples, ok := r.mon.Samples()
	if !ok {
		r.log.Debug("nothing recorded")
		return nil
	}

	mono, err := audio.Resample(samples, r.cfg.DeviceSampleRate, r.cfg.SampleRate)
	if err != nil {
		return err
	}

	r.result = mono
	r.gotten = true
	r.log.Debug("recording finalized", logger.Fields(
		logger.FieldAudioSecs, audio.SampleDuration(mono, r.cfg.SampleRate),
	))
	return nil
}

// Audio returns the last finalized buffer. ok is false when the last cycle
// recorded nothing.
func (r *Recorder) Audio() (audio.Input, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.gotten {
		return audio.Input{}, false
	}
	return audio.FromSamples(r.result), true
}

// Close releases the underlying device.
func (r *Recorder) Close() error {
	r.closeOnce.Do(func() {
		r.mu.Lock()
		cancel := r.cancel
		r.mu.Unlock()
		if cancel != nil {
			cancel()
		}
		r.closeErr = r.src.Close()
	})
	return r.closeErr
}

var _ Session = (*Recorder)(nil)
