package capture

import (
	"time"

	"github.com/kbukum/voiceloop/validation"
)

// Config holds the session's recording and VAD parameters.
type Config struct {
	// SilenceDuration is how long silence must last to finalize the buffer.
	SilenceDuration time.Duration `yaml:"silence_duration" mapstructure:"silence_duration"`
	// MaxDuration bounds a single recording.
	MaxDuration time.Duration `yaml:"max_duration" mapstructure:"max_duration"`
	// Channels is the device channel count.
	Channels int `yaml:"channels" mapstructure:"channels" validate:"required,gt=0"`
	// SampleRate is the rate delivered to the transcription engine.
	SampleRate int `yaml:"sample_rate" mapstructure:"sample_rate" validate:"required,gt=0"`
	// DeviceSampleRate is the device's native rate. Must be an integer
	// multiple of SampleRate; equal means no resampling.
	DeviceSampleRate int `yaml:"device_sample_rate" mapstructure:"device_sample_rate"`
	// Device is the input device name handed to the recorder subprocess,
	// for example "hw:1,0". Empty means the system default.
	Device string `yaml:"device" mapstructure:"device"`
	// TriggerOn is the VAD probability above which speech starts.
	TriggerOn float64 `yaml:"trigger_on" mapstructure:"trigger_on"`
	// TriggerOff is the VAD probability below which speech ends.
	TriggerOff float64 `yaml:"trigger_off" mapstructure:"trigger_off"`
	// FrameSize is the per-read frame length in samples.
	FrameSize int `yaml:"frame_size" mapstructure:"frame_size"`
}

// ApplyDefaults applies default values to capture configuration.
func (c *Config) ApplyDefaults() {
	if c.SilenceDuration == 0 {
		c.SilenceDuration = time.Second
	}
	if c.MaxDuration == 0 {
		c.MaxDuration = 5 * time.Second
	}
	if c.Channels == 0 {
		c.Channels = 1
	}
	if c.SampleRate == 0 {
		c.SampleRate = 16000
	}
	if c.DeviceSampleRate == 0 {
		c.DeviceSampleRate = c.SampleRate
	}
	if c.TriggerOn == 0 {
		c.TriggerOn = 0.60
	}
	if c.TriggerOff == 0 {
		c.TriggerOff = 0.35
	}
	if c.FrameSize == 0 {
		c.FrameSize = 512
	}
}

// Validate validates capture configuration.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	v := validation.New()
	v.UnitInterval("trigger_on", c.TriggerOn)
	v.UnitInterval("trigger_off", c.TriggerOff)
	v.Custom(c.TriggerOff <= c.TriggerOn, "trigger_off", "must not exceed trigger_on")
	v.Custom(c.SilenceDuration > 0, "silence_duration", "must be positive")
	v.Custom(c.MaxDuration > 0, "max_duration", "must be positive")
	v.Range("channels", c.Channels, 1, 8)
	v.Positive("frame_size", c.FrameSize)
	v.Max("frame_size", c.FrameSize, 8192)
	v.Min("device_sample_rate", c.DeviceSampleRate, c.SampleRate)
	v.Custom(c.DeviceSampleRate%c.SampleRate == 0, "device_sample_rate", "must be an integer multiple of sample_rate")
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}
