// Package modelcache provisions the speech model into a local cache
// directory before first use.
//
// Ensure checks whether the expected model artifact already exists under the
// cache root. If not, it downloads the model archive, extracts it in place,
// and removes the archive. Any failure during provisioning is fatal: the
// transcription engine must not be constructed against a partial cache.
package modelcache
