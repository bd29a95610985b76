package capture

import (
	"context"

	"github.com/kbukum/voiceloop/audio"
)

// Session records one finite audio buffer per Start/Stop cycle.
type Session interface {
	// Start begins capturing on a separate execution context.
	Start(ctx context.Context) error
	// Stop blocks until the session's VAD and duration policy finalize the
	// buffer, then joins the capture goroutine.
	Stop() error
	// Audio returns the finalized buffer for the last cycle. ok is false
	// when nothing was recorded, a normal per-turn outcome.
	Audio() (audio.Input, bool)
	// Close releases the underlying device. Safe to call more than once.
	Close() error
}
