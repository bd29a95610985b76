package loop

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/kbukum/voiceloop/asr"
	"github.com/kbukum/voiceloop/audio"
	"github.com/kbukum/voiceloop/capture"
	"github.com/kbukum/voiceloop/logger"
)

// Transcriber maps one turn's audio to a result.
type Transcriber interface {
	Transcribe(ctx context.Context, in audio.Input) asr.Result
}

// Loop owns the interactive turn cycle.
type Loop struct {
	session capture.Session
	engine  Transcriber
	in      io.Reader
	out     io.Writer
	log     *logger.Logger

	state     State
	cleanOnce sync.Once
}

// New creates a loop reading triggers from in and printing transcripts to
// out.
func New(session capture.Session, engine Transcriber, in io.Reader, out io.Writer) *Loop {
	return &Loop{
		session: session,
		engine:  engine,
		in:      in,
		out:     out,
		log:     logger.WithComponent("loop"),
		state:   StateWaitingForTrigger,
	}
}

// State returns the loop's current state.
func (l *Loop) State() State { return l.state }

// Run drives the turn cycle until the context is canceled, the input
// stream ends, or the user quits.
func (l *Loop) Run(ctx context.Context) error {
	defer l.cleanup()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(l.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		l.setState(StateWaitingForTrigger, "")
		fmt.Fprintln(l.out, "Press Enter to start recording (q to quit)")

		select {
		case <-ctx.Done():
			l.setState(StateShuttingDown, "")
			return ctx.Err()
		case line, ok := <-lines:
			if !ok || isQuit(line) {
				l.setState(StateShuttingDown, "")
				return nil
			}
		}

		turnID := uuid.NewString()
		if done := l.turn(ctx, turnID); done {
			l.setState(StateShuttingDown, turnID)
			return ctx.Err()
		}
	}
}

// turn runs one Recording→Transcribing→Displaying cycle. It reports true
// when the context was canceled mid-turn.
func (l *Loop) turn(ctx context.Context, turnID string) bool {
	l.setState(StateRecording, turnID)
	if err := l.session.Start(ctx); err != nil {
		l.log.WithError(err).Error("failed to start recording",
			logger.Fields(logger.FieldTurnID, turnID))
		return ctx.Err() != nil
	}
	if err := l.session.Stop(); err != nil {
		l.log.WithError(err).Warn("recording failed, skipping turn",
			logger.Fields(logger.FieldTurnID, turnID))
		return ctx.Err() != nil
	}

	in, ok := l.session.Audio()
	if !ok {
		l.log.Info("nothing recorded", logger.Fields(logger.FieldTurnID, turnID))
		fmt.Fprintln(l.out, "(nothing recorded)")
		return ctx.Err() != nil
	}

	l.setState(StateTranscribing, turnID)
	res := l.engine.Transcribe(ctx, in)

	l.setState(StateDisplaying, turnID)
	if res.Skipped {
		l.log.Warn("turn skipped", logger.Fields(
			logger.FieldTurnID, turnID,
			logger.FieldReason, string(res.Reason),
		))
	} else {
		fmt.Fprintln(l.out, res.Text)
	}

	return ctx.Err() != nil
}

func (l *Loop) setState(s State, turnID string) {
	l.state = s
	fields := logger.Fields(logger.FieldState, string(s))
	if turnID != "" {
		fields[logger.FieldTurnID] = turnID
	}
	l.log.Debug("state transition", fields)
}

// cleanup closes the session exactly once, whatever state the loop exited
// from.
func (l *Loop) cleanup() {
	l.cleanOnce.Do(func() {
		if err := l.session.Close(); err != nil {
			l.log.Warn("session cleanup failed", logger.ErrorFields("close", err))
		}
	})
}

// isQuit recognizes the explicit quit commands.
func isQuit(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "q", "quit", "exit":
		return true
	}
	return false
}
