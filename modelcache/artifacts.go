package modelcache

// Files shipped in the SenseVoice model bundle.
const (
	// ArtifactQuantModel is the quantized encoder, the provisioning marker.
	ArtifactQuantModel = "model_quant_optimized.onnx"
	// ArtifactDecoder is the decoder model.
	ArtifactDecoder = "sensevoice_decoder_model.onnx"
	// ArtifactVAD is the silero voice-activity-detection model.
	ArtifactVAD = "silero_vad.onnx"
	// ArtifactTokens is the token vocabulary.
	ArtifactTokens = "tokens.txt"
	// ArtifactCMVN holds the cepstral mean/variance normalization stats.
	ArtifactCMVN = "am.mvn"
	// ArtifactConfig is the model family configuration.
	ArtifactConfig = "config.yaml"
)

// BundleArtifacts lists every file expected in an extracted bundle.
var BundleArtifacts = []string{
	ArtifactQuantModel,
	ArtifactDecoder,
	ArtifactVAD,
	ArtifactTokens,
	ArtifactCMVN,
	ArtifactConfig,
}
