package modelcache

import (
	"archive/tar"
	"compress/gzip"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kbukum/voiceloop/errors"
	"github.com/kbukum/voiceloop/logger"
	"github.com/kbukum/voiceloop/observability"
	"github.com/kbukum/voiceloop/resilience"
)

// Location describes a provisioned model cache.
type Location struct {
	// Dir is the extracted model directory.
	Dir string
	// ModelPath is the marker artifact inside Dir.
	ModelPath string
}

// Artifact returns the path of a named bundle file under Dir.
func (l Location) Artifact(name string) string {
	return filepath.Join(l.Dir, name)
}

// HasArtifact reports whether the named bundle file is present.
func (l Location) HasArtifact(name string) bool {
	return fileExists(l.Artifact(name))
}

// Provisioner fetches and unpacks the model bundle on demand.
type Provisioner struct {
	cfg    Config
	client *http.Client
	log    *logger.Logger
}

// NewProvisioner creates a Provisioner from config.
func NewProvisioner(cfg Config) *Provisioner {
	cfg.ApplyDefaults()
	return &Provisioner{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.DownloadTimeout},
		log:    logger.WithComponent("modelcache"),
	}
}

// Ensure makes the model artifact present under the cache root, downloading
// and extracting the bundle if needed. On success the returned location's
// ModelPath exists and is readable. Concurrent provisioning by two processes
// is not guarded; the existence check is check-then-act.
func (p *Provisioner) Ensure(ctx context.Context) (Location, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanProvision)
	defer span.End()

	loc := Location{
		Dir:       filepath.Join(p.cfg.CacheRoot, p.cfg.ModelDir),
		ModelPath: p.cfg.ModelPath(),
	}

	if fileExists(loc.ModelPath) {
		p.log.Debug("model already cached", logger.Fields(logger.FieldPath, loc.ModelPath))
		return loc, nil
	}

	p.log.Info("model not cached, downloading", logger.Fields(
		logger.FieldURL, p.cfg.ArchiveURL,
		logger.FieldPath, loc.Dir,
	))

	archive := p.cfg.ArchivePath()
	if err := p.download(ctx, archive); err != nil {
		return Location{}, err
	}

	if err := extractTarGz(archive, p.cfg.CacheRoot); err != nil {
		return Location{}, errors.ExtractFailed(archive, err)
	}

	if err := os.Remove(archive); err != nil {
		p.log.Warn("failed to remove archive", logger.ErrorFields("cleanup", err))
	}

	if !fileExists(loc.ModelPath) {
		return Location{}, errors.ModelMissing(loc.ModelPath)
	}

	p.log.Info("model provisioned", logger.Fields(logger.FieldPath, loc.ModelPath))
	return loc, nil
}

// permanentError marks download failures retrying cannot fix.
type permanentError struct{ err error }

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// download fetches the archive with retry. Transient network and server
// errors back off and try again; client errors and cancellation abort.
func (p *Provisioner) download(ctx context.Context, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return errors.DownloadFailed(p.cfg.ArchiveURL, err)
	}

	cfg := resilience.DefaultRetryConfig()
	cfg.InitialBackoff = p.cfg.RetryBackoff
	cfg.RetryIf = func(err error) bool {
		var pe *permanentError
		return resilience.DefaultRetryIf(err) && !stderrors.As(err, &pe)
	}
	cfg.OnRetry = func(attempt int, err error, backoff time.Duration) {
		p.log.Warn("download attempt failed, retrying", logger.Fields(
			"attempt", attempt,
			"backoff", backoff.String(),
			logger.FieldError, err.Error(),
		))
	}

	err := resilience.RetryFunc(ctx, cfg, func() error {
		return p.fetch(ctx, dest)
	})
	if err != nil {
		return errors.DownloadFailed(p.cfg.ArchiveURL, err)
	}
	return nil
}

// fetch performs one download attempt to a temporary file and renames it
// into place, so a partial fetch never masquerades as a complete archive.
func (p *Provisioner) fetch(ctx context.Context, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.ArchiveURL, nil)
	if err != nil {
		return &permanentError{err}
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		statusErr := fmt.Errorf("unexpected status %s", resp.Status)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return &permanentError{statusErr}
		}
		return statusErr
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".*")
	if err != nil {
		return &permanentError{err}
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), dest)
}

// extractTarGz unpacks a gzipped tarball into destDir, rejecting entries
// that escape it.
func extractTarGz(archive, destDir string) error {
	f, err := os.Open(archive)
	if err != nil {
		return err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return err
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		target := filepath.Join(destDir, hdr.Name) //nolint:gosec // checked below
		if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry escapes destination: %s", hdr.Name)
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return err
			}
			out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, os.FileMode(hdr.Mode)&0o777)
			if err != nil {
				return err
			}
			if _, err := io.Copy(out, tr); err != nil { //nolint:gosec // trusted bundle
				out.Close()
				return err
			}
			if err := out.Close(); err != nil {
				return err
			}
		default:
			// symlinks and specials are not expected in the bundle
		}
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
