package capture

import "time"

// preSpeechFrames is how many recent frames are kept before the gate opens,
// so the first syllable is not clipped.
const preSpeechFrames = 10

// Monitor accumulates gated audio and decides when a recording is done.
// Time advances with the sample stream: callers pass the stream position,
// not the wall clock.
type Monitor struct {
	cfg  Config
	gate *Gate

	buf        []float32
	preSpeech  []float32
	frameSize  int
	speechSeen bool
	lastSpeech time.Duration
}

// NewMonitor creates a monitor for one recording cycle.
func NewMonitor(cfg Config) *Monitor {
	cfg.ApplyDefaults()
	return &Monitor{
		cfg:       cfg,
		gate:      NewGate(cfg.TriggerOn, cfg.TriggerOff),
		frameSize: cfg.FrameSize,
	}
}

// Reset prepares the monitor for a new cycle.
func (m *Monitor) Reset() {
	m.buf = nil
	m.preSpeech = nil
	m.speechSeen = false
	m.lastSpeech = 0
	m.gate.Reset()
}

// Feed consumes one mono frame at the given stream position and reports
// whether the recording should stop.
func (m *Monitor) Feed(frame []float32, pos time.Duration) (stop bool) {
	speech := m.gate.Update(EnergyProbability(frame))

	if !m.speechSeen {
		// Rolling pre-speech buffer.
		limit := m.frameSize * preSpeechFrames
		if len(m.preSpeech) > limit {
			m.preSpeech = m.preSpeech[len(m.preSpeech)-limit:]
		}
		m.preSpeech = append(m.preSpeech, frame...)
	}

	if speech {
		m.lastSpeech = pos
		if !m.speechSeen {
			m.speechSeen = true
			m.buf = append(m.buf, m.preSpeech...)
			m.preSpeech = nil
		}
	}

	if !m.speechSeen {
		return pos >= m.cfg.MaxDuration
	}

	m.buf = append(m.buf, frame...)
	if pos-m.lastSpeech >= m.cfg.SilenceDuration {
		return true
	}
	return pos >= m.cfg.MaxDuration
}

// Samples returns the accumulated buffer and whether speech was detected.
func (m *Monitor) Samples() ([]float32, bool) {
	if !m.speechSeen {
		return nil, false
	}
	return m.buf, true
}
