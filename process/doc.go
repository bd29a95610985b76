// Package process executes subprocesses with graceful shutdown semantics.
//
// Commands run in their own process group. When the context is canceled the
// group receives SIGTERM first, then SIGKILL after the grace period, so
// model runtimes get a chance to release the audio device and flush output.
package process
