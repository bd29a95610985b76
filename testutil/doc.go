// Package testutil provides shared test fixtures: WAV file writers,
// in-memory tar.gz archives for provisioning tests, and scripted fakes for
// the capture session and model interfaces.
package testutil
