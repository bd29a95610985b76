package capture

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os/exec"
	"strconv"
	"sync"
	"syscall"

	"github.com/kbukum/voiceloop/logger"
)

// ExecSourceConfig configures a recorder subprocess that writes raw signed
// 16-bit little-endian PCM to stdout.
type ExecSourceConfig struct {
	// Binary is the recorder executable. Defaults to arecord.
	Binary string
	// Args overrides the generated argument list entirely when set.
	Args []string
	// Device is the capture device name passed to the recorder. Empty means
	// the system default.
	Device string
	// SampleRate, Channels and FrameSize describe the raw stream.
	SampleRate int
	Channels   int
	FrameSize  int
}

func (c *ExecSourceConfig) applyDefaults() {
	if c.Binary == "" {
		c.Binary = "arecord"
	}
	if c.SampleRate == 0 {
		c.SampleRate = 16000
	}
	if c.Channels == 0 {
		c.Channels = 1
	}
	if c.FrameSize == 0 {
		c.FrameSize = 512
	}
}

// ExecSource is a FrameSource over a long-running recorder subprocess. A
// reader goroutine drains stdout continuously so the device keeps flowing
// between turns; when nobody is consuming, the oldest frames are dropped.
type ExecSource struct {
	cfg    ExecSourceConfig
	cmd    *exec.Cmd
	frames chan []float32
	log    *logger.Logger

	mu      sync.Mutex
	readErr error

	closeOnce sync.Once
	closeErr  error
}

// NewExecSource starts the recorder subprocess and begins draining it.
func NewExecSource(cfg ExecSourceConfig) (*ExecSource, error) {
	cfg.applyDefaults()

	args := cfg.Args
	if args == nil {
		args = recorderArgs(cfg)
	}

	cmd := exec.Command(cfg.Binary, args...) //nolint:gosec // the recorder binary is operator-configured
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("capture: stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("capture: start %s: %w", cfg.Binary, err)
	}

	s := &ExecSource{
		cfg:    cfg,
		cmd:    cmd,
		frames: make(chan []float32, 8),
		log:    logger.WithComponent("capture"),
	}
	go s.drain(stdout)
	return s, nil
}

// recorderArgs builds the arecord argument list for the configured stream.
func recorderArgs(cfg ExecSourceConfig) []string {
	args := []string{
		"-q",
		"-f", "S16_LE",
		"-c", strconv.Itoa(cfg.Channels),
		"-r", strconv.Itoa(cfg.SampleRate),
		"-t", "raw",
	}
	if cfg.Device != "" {
		args = append(args, "-D", cfg.Device)
	}
	return append(args, "-")
}

// drain converts the raw byte stream into frames. It owns the frames
// channel and closes it when the stream ends.
func (s *ExecSource) drain(r io.Reader) {
	defer close(s.frames)

	samplesPerFrame := s.cfg.FrameSize * s.cfg.Channels
	buf := make([]byte, samplesPerFrame*2)
	for {
		if _, err := io.ReadFull(r, buf); err != nil {
			if err != io.EOF && err != io.ErrUnexpectedEOF {
				s.mu.Lock()
				s.readErr = err
				s.mu.Unlock()
			}
			return
		}

		frame := make([]float32, samplesPerFrame)
		for i := range frame {
			v := int16(binary.LittleEndian.Uint16(buf[i*2:]))
			frame[i] = float32(v) / math.MaxInt16
		}

		select {
		case s.frames <- frame:
		default:
			// Consumer is idle. Drop the oldest frame to stay live.
			select {
			case <-s.frames:
			default:
			}
			select {
			case s.frames <- frame:
			default:
			}
		}
	}
}

// Read returns the next frame of interleaved samples.
func (s *ExecSource) Read(ctx context.Context) ([]float32, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case frame, ok := <-s.frames:
		if !ok {
			s.mu.Lock()
			err := s.readErr
			s.mu.Unlock()
			if err != nil {
				return nil, err
			}
			return nil, io.EOF
		}
		return frame, nil
	}
}

// Close terminates the recorder process group and reaps it.
func (s *ExecSource) Close() error {
	s.closeOnce.Do(func() {
		if s.cmd.Process != nil {
			_ = syscall.Kill(-s.cmd.Process.Pid, syscall.SIGTERM)
		}
		err := s.cmd.Wait()
		// SIGTERM is the expected exit path.
		if err != nil {
			if _, ok := err.(*exec.ExitError); !ok {
				s.closeErr = err
			}
		}
		for range s.frames {
			// Unblock the drain goroutine.
		}
	})
	return s.closeErr
}

var _ FrameSource = (*ExecSource)(nil)
