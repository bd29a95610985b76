// Package capture provides the VAD-gated recording session consumed by the
// interaction loop.
//
// A Session produces one finite audio buffer per Start/Stop cycle. The
// Recorder implementation reads frames from a FrameSource (the audio
// device abstraction), gates them through an energy-based voice activity
// detector with hysteresis, and finalizes the buffer when silence outlasts
// the configured threshold or the maximum recording time is reached.
//
// Timing is derived from the sample stream, not the wall clock, so the
// stop policy behaves identically on a live device and in tests.
package capture
