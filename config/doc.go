// Package config provides configuration loading and validation for
// voiceloop.
//
// It uses Viper to load configuration from a YAML file and environment
// variables, with an optional .env file loaded via godotenv.
//
// # Usage
//
//	var cfg config.Config
//	err := config.Load("voiceloop", &cfg)
//
// Environment variables override file values using the VOICELOOP_ prefix
// with underscore-separated paths (e.g., VOICELOOP_CAPTURE_SAMPLE_RATE).
package config
