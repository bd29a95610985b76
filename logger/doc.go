// Package logger provides structured logging for voiceloop using zerolog.
//
// It supports JSON and console output formats, log level configuration,
// and component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "console"
//
// # Usage
//
//	log := logger.WithComponent("asr")
//	log.Info("transcription complete", logger.Fields(logger.FieldRTF, rtf))
package logger
