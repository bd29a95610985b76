package modelcache

import (
	"os"
	"path/filepath"
	"time"
)

// DefaultArchiveURL is the published SenseVoice model bundle.
const DefaultArchiveURL = "https://archive.spacemit.com/spacemit-ai/openwebui/sensevoice.tar.gz"

// DefaultModelDir is the archive's top-level directory under the cache root.
const DefaultModelDir = "sensevoice"

// Config controls where the model is cached and where it is fetched from.
// All sources are explicit; nothing is read from the environment at
// provisioning time.
type Config struct {
	// CacheRoot is the directory the archive is extracted into.
	CacheRoot string `yaml:"cache_root" mapstructure:"cache_root"`
	// ArchiveURL is the model bundle download source.
	ArchiveURL string `yaml:"archive_url" mapstructure:"archive_url" validate:"required,url"`
	// ModelDir is the archive's directory name under CacheRoot.
	ModelDir string `yaml:"model_dir" mapstructure:"model_dir" validate:"required"`
	// ModelFile is the artifact whose presence marks the cache as provisioned.
	ModelFile string `yaml:"model_file" mapstructure:"model_file" validate:"required"`
	// DownloadTimeout bounds the archive fetch. Zero means no timeout.
	DownloadTimeout time.Duration `yaml:"download_timeout" mapstructure:"download_timeout"`
	// RetryBackoff is the initial delay between download retries.
	RetryBackoff time.Duration `yaml:"retry_backoff" mapstructure:"retry_backoff"`
}

// ApplyDefaults applies default values to cache configuration.
func (c *Config) ApplyDefaults() {
	if c.CacheRoot == "" {
		if dir, err := os.UserCacheDir(); err == nil {
			c.CacheRoot = dir
		} else {
			c.CacheRoot = "."
		}
	}
	if c.ArchiveURL == "" {
		c.ArchiveURL = DefaultArchiveURL
	}
	if c.ModelDir == "" {
		c.ModelDir = DefaultModelDir
	}
	if c.ModelFile == "" {
		c.ModelFile = ArtifactQuantModel
	}
	if c.DownloadTimeout == 0 {
		c.DownloadTimeout = 10 * time.Minute
	}
	if c.RetryBackoff == 0 {
		c.RetryBackoff = time.Second
	}
}

// ModelPath returns the absolute path of the provisioning marker artifact.
func (c *Config) ModelPath() string {
	return filepath.Join(c.CacheRoot, c.ModelDir, c.ModelFile)
}

// ArchivePath returns the transient archive location under the cache root.
func (c *Config) ArchivePath() string {
	return filepath.Join(c.CacheRoot, filepath.Base(c.ModelDir)+".tar.gz")
}
