package config

import (
	"github.com/kbukum/voiceloop/asr"
	"github.com/kbukum/voiceloop/capture"
	"github.com/kbukum/voiceloop/logger"
	"github.com/kbukum/voiceloop/modelcache"
	"github.com/kbukum/voiceloop/observability"
	"github.com/kbukum/voiceloop/validation"
)

// AppName is the configuration namespace: config search paths and the
// environment variable prefix both derive from it.
const AppName = "voiceloop"

// Config is the full application configuration.
type Config struct {
	Name        string `yaml:"name" mapstructure:"name"`
	Environment string `yaml:"environment" mapstructure:"environment"`
	Debug       bool   `yaml:"debug" mapstructure:"debug"`

	Logging   logger.Config        `yaml:"logging" mapstructure:"logging"`
	Model     modelcache.Config    `yaml:"model" mapstructure:"model"`
	Engine    asr.Config           `yaml:"engine" mapstructure:"engine"`
	Capture   capture.Config       `yaml:"capture" mapstructure:"capture"`
	Telemetry observability.Config `yaml:"telemetry" mapstructure:"telemetry"`
}

// ApplyDefaults fills every unset field with its default.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = AppName
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	c.Logging.ApplyDefaults()
	if c.Debug && c.Logging.Level == "info" {
		c.Logging.Level = "debug"
	}
	c.Model.ApplyDefaults()
	c.Engine.ApplyDefaults()
	c.Capture.ApplyDefaults()
	c.Telemetry.ApplyDefaults()
}

// Validate checks the whole configuration tree.
func (c *Config) Validate() error {
	v := validation.New()
	v.Required("name", c.Name)
	v.OneOf("environment", c.Environment, []string{"development", "production"})
	v.Pattern("engine.language", c.Engine.Language, `^(auto|[a-z]{2,3})$`)
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if err := validation.Validate(&c.Model); err != nil {
		return err
	}
	if err := validation.Validate(&c.Engine); err != nil {
		return err
	}
	if err := c.Capture.Validate(); err != nil {
		return err
	}
	if err := validation.Validate(&c.Telemetry); err != nil {
		return err
	}
	// Rate mismatches between capture and the engine surface here rather
	// than as garbled transcripts later.
	m := validation.New()
	m.Custom(c.Capture.SampleRate == c.Engine.SampleRate,
		"capture.sample_rate", "must match engine.sample_rate")
	if appErr := m.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// LoadConfig loads, defaults, and validates the application configuration.
func LoadConfig(opts ...LoaderOption) (*Config, error) {
	var cfg Config
	if err := Load(AppName, &cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
