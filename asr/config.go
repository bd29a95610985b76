package asr

import "time"

// Config holds the engine's fixed per-instance parameters. They are not
// per-call overrides; one engine transcribes one language the same way for
// its whole lifetime.
type Config struct {
	// Backend selects the model backend by registry name.
	Backend string `yaml:"backend" mapstructure:"backend" validate:"required"`
	// Language is the target transcription language code.
	Language string `yaml:"language" mapstructure:"language" validate:"required"`
	// DisableITN turns off inverse text normalization of numerals and
	// dates. Normalization is on by default.
	DisableITN bool `yaml:"disable_itn" mapstructure:"disable_itn"`
	// SampleRate is the declared rate for in-memory sample inputs. File
	// inputs use the file's own header rate instead.
	SampleRate int `yaml:"sample_rate" mapstructure:"sample_rate" validate:"required,gt=0"`
	// InferTimeout caps a single inference. Zero means no cap; a hung
	// runtime then blocks the turn until interrupted.
	InferTimeout time.Duration `yaml:"infer_timeout" mapstructure:"infer_timeout"`
}

// ApplyDefaults applies default values to engine configuration.
func (c *Config) ApplyDefaults() {
	if c.Backend == "" {
		c.Backend = "sensevoice"
	}
	if c.Language == "" {
		c.Language = "zh"
	}
	if c.SampleRate == 0 {
		c.SampleRate = 16000
	}
}

// UseITN reports whether inverse text normalization is enabled.
func (c *Config) UseITN() bool {
	return !c.DisableITN
}
