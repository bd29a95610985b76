// Package sensevoice runs the SenseVoice ONNX runtime as a subprocess and
// adapts it to the asr.Model interface.
//
// The runtime binary reads a WAV file or raw float32 PCM on stdin and
// prints its hypotheses as a JSON array of batches on stdout. The backend
// validates availability by resolving the binary and checking the
// provisioned model directory.
package sensevoice
