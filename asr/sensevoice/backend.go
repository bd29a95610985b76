package sensevoice

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/kbukum/voiceloop/asr"
	"github.com/kbukum/voiceloop/logger"
	"github.com/kbukum/voiceloop/modelcache"
	"github.com/kbukum/voiceloop/process"
)

// BackendName is the registry name of this backend.
const BackendName = "sensevoice"

// DefaultBinary is the runtime executable resolved via PATH.
const DefaultBinary = "sensevoice-runtime"

// Config configures the SenseVoice subprocess backend.
type Config struct {
	// Binary is the runtime executable path or name.
	Binary string
	// ModelDir is the provisioned model directory.
	ModelDir string
	// SampleRate is the rate declared for raw PCM passed on stdin.
	SampleRate int
	// InferTimeout caps one runtime invocation. Zero means no cap.
	InferTimeout time.Duration
	// GracePeriod is the SIGTERM-to-SIGKILL window on cancellation.
	GracePeriod time.Duration
}

// Backend shells out to the SenseVoice runtime for each inference.
type Backend struct {
	cfg Config
	log *logger.Logger
}

// New creates a backend from config.
func New(cfg Config) (*Backend, error) {
	if cfg.Binary == "" {
		cfg.Binary = DefaultBinary
	}
	if cfg.ModelDir == "" {
		return nil, fmt.Errorf("sensevoice: model_dir is required")
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 16000
	}
	return &Backend{
		cfg: cfg,
		log: logger.WithComponent("sensevoice"),
	}, nil
}

// Name returns the backend identifier.
func (b *Backend) Name() string { return BackendName }

// IsAvailable reports whether the runtime binary resolves and the model
// directory holds the provisioned encoder.
func (b *Backend) IsAvailable(_ context.Context) bool {
	if _, err := exec.LookPath(b.cfg.Binary); err != nil {
		return false
	}
	marker := filepath.Join(b.cfg.ModelDir, modelcache.ArtifactQuantModel)
	_, err := os.Stat(marker)
	return err == nil
}

// Infer runs the runtime once and parses its hypotheses.
func (b *Backend) Infer(ctx context.Context, req asr.InferenceRequest) ([][]string, error) {
	cmd := process.Command{
		Binary: b.cfg.Binary,
		Args: []string{
			"--model-dir", b.cfg.ModelDir,
			"--language", req.Language,
			"--use-itn", strconv.FormatBool(req.UseITN),
			"--output", "json",
		},
		Timeout:     b.cfg.InferTimeout,
		GracePeriod: b.cfg.GracePeriod,
	}

	if req.Path != "" {
		cmd.Args = append(cmd.Args, "--input", req.Path)
	} else {
		cmd.Args = append(cmd.Args,
			"--input", "-",
			"--sample-rate", strconv.Itoa(b.cfg.SampleRate),
		)
		cmd.Stdin = bytes.NewReader(encodeSamples(req.Samples))
	}

	result, err := process.Run(ctx, cmd)
	if err != nil {
		if result != nil && result.ErrOutput() != "" {
			return nil, fmt.Errorf("sensevoice: %w: %s", err, result.ErrOutput())
		}
		return nil, fmt.Errorf("sensevoice: %w", err)
	}

	var hypotheses [][]string
	if err := json.Unmarshal(result.Stdout, &hypotheses); err != nil {
		return nil, fmt.Errorf("sensevoice: parsing runtime output: %w", err)
	}

	b.log.Debug("runtime finished", logger.Fields(
		logger.FieldDuration, result.Duration.Milliseconds(),
	))
	return hypotheses, nil
}

// encodeSamples packs mono PCM as little-endian float32 for stdin.
func encodeSamples(samples []float32) []byte {
	buf := make([]byte, 4*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(s))
	}
	return buf
}
