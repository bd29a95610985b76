// Package audio defines the audio input types shared by the capture and
// transcription layers.
//
// An Input is either in-memory PCM samples or a path to a WAV file, never
// both. The package also provides a RIFF/WAVE header reader for measuring
// file duration without decoding, and an integer-factor decimator for
// devices that only record at multiples of the model rate.
package audio
