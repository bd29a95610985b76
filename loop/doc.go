// Package loop drives the interactive capture session: wait for the enter
// key, record until the voice activity policy finalizes the buffer,
// transcribe, print, repeat.
//
// The loop is a small state machine. Every per-turn problem (nothing
// recorded, unsupported input, inference failure) returns it to the waiting
// state; only context cancellation or an explicit quit command ends it.
// Session cleanup runs exactly once on the way out, whatever state the
// shutdown arrived in.
package loop
