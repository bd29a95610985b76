package sensevoice

import (
	"fmt"
	"time"

	"github.com/kbukum/voiceloop/asr"
)

// Factory builds a Backend from registry config. Recognized keys:
// binary, model_dir, sample_rate, infer_timeout, grace_period.
func Factory(cfg map[string]any) (asr.Model, error) {
	var c Config
	var err error

	if v, ok := cfg["binary"].(string); ok {
		c.Binary = v
	}
	if v, ok := cfg["model_dir"].(string); ok {
		c.ModelDir = v
	}
	switch v := cfg["sample_rate"].(type) {
	case int:
		c.SampleRate = v
	case float64:
		c.SampleRate = int(v)
	}
	if c.InferTimeout, err = durationKey(cfg, "infer_timeout"); err != nil {
		return nil, err
	}
	if c.GracePeriod, err = durationKey(cfg, "grace_period"); err != nil {
		return nil, err
	}

	return New(c)
}

func durationKey(cfg map[string]any, key string) (time.Duration, error) {
	switch v := cfg[key].(type) {
	case time.Duration:
		return v, nil
	case string:
		d, err := time.ParseDuration(v)
		if err != nil {
			return 0, fmt.Errorf("sensevoice: invalid %s %q: %w", key, v, err)
		}
		return d, nil
	}
	return 0, nil
}
