// Package validation provides input validation utilities for voiceloop.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Struct tag validation is
// recommended for configuration sections.
//
// # Struct Tag Validation
//
//	type CaptureConfig struct {
//	    SampleRate int     `validate:"required,gt=0"`
//	    TriggerOn  float64 `validate:"gte=0,lte=1"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Custom(cfg.TriggerOff <= cfg.TriggerOn, "trigger_off", "must not exceed trigger_on")
//	err := v.Validate()
package validation
