package modelcache_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kbukum/voiceloop/errors"
	"github.com/kbukum/voiceloop/modelcache"
	"github.com/kbukum/voiceloop/testutil"
)

func bundleArchive(t *testing.T) []byte {
	t.Helper()
	files := map[string][]byte{}
	for _, name := range modelcache.BundleArtifacts {
		files["sensevoice/"+name] = []byte("fake " + name)
	}
	return testutil.TarGz(t, files)
}

func TestEnsure_AlreadyCached(t *testing.T) {
	root := t.TempDir()
	modelDir := filepath.Join(root, "sensevoice")
	if err := os.MkdirAll(modelDir, 0o755); err != nil {
		t.Fatal(err)
	}
	marker := filepath.Join(modelDir, modelcache.ArtifactQuantModel)
	if err := os.WriteFile(marker, []byte("cached"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := modelcache.NewProvisioner(modelcache.Config{
		CacheRoot:  root,
		ArchiveURL: "http://127.0.0.1:1/unreachable.tar.gz",
	})

	loc, err := p.Ensure(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.ModelPath != marker {
		t.Errorf("expected model path %s, got %s", marker, loc.ModelPath)
	}
}

func TestEnsure_DownloadsAndExtracts(t *testing.T) {
	archive := bundleArchive(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(archive)
	}))
	defer srv.Close()

	root := t.TempDir()
	p := modelcache.NewProvisioner(modelcache.Config{
		CacheRoot:  root,
		ArchiveURL: srv.URL + "/sensevoice.tar.gz",
	})

	loc, err := p.Ensure(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Transient archive is removed after extraction.
	if _, err := os.Stat(filepath.Join(root, "sensevoice.tar.gz")); !os.IsNotExist(err) {
		t.Error("expected archive to be deleted after extraction")
	}

	for _, name := range modelcache.BundleArtifacts {
		if !loc.HasArtifact(name) {
			t.Errorf("expected artifact %s in location", name)
		}
	}
	if loc.Artifact(modelcache.ArtifactQuantModel) != loc.ModelPath {
		t.Error("marker artifact path should match ModelPath")
	}
}

func TestEnsure_DownloadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	p := modelcache.NewProvisioner(modelcache.Config{
		CacheRoot:  t.TempDir(),
		ArchiveURL: srv.URL + "/sensevoice.tar.gz",
	})

	_, err := p.Ensure(context.Background())
	if err == nil {
		t.Fatal("expected error for 404 download")
	}
	if !errors.IsFatal(err) {
		t.Error("provisioning failure should be fatal")
	}
}

func TestEnsure_ClientErrorIsNotRetried(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	p := modelcache.NewProvisioner(modelcache.Config{
		CacheRoot:  t.TempDir(),
		ArchiveURL: srv.URL + "/sensevoice.tar.gz",
	})

	if _, err := p.Ensure(context.Background()); err == nil {
		t.Fatal("expected error for 404 download")
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Errorf("expected a single attempt for a client error, got %d", n)
	}
}

func TestEnsure_RetriesTransientServerError(t *testing.T) {
	archive := bundleArchive(t)
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		w.Write(archive)
	}))
	defer srv.Close()

	p := modelcache.NewProvisioner(modelcache.Config{
		CacheRoot:    t.TempDir(),
		ArchiveURL:   srv.URL + "/sensevoice.tar.gz",
		RetryBackoff: time.Millisecond,
	})

	loc, err := p.Ensure(context.Background())
	if err != nil {
		t.Fatalf("expected recovery after transient failures: %v", err)
	}
	if _, err := os.Stat(loc.ModelPath); err != nil {
		t.Errorf("expected provisioned model: %v", err)
	}
	if n := atomic.LoadInt32(&hits); n != 3 {
		t.Errorf("expected 3 attempts, got %d", n)
	}
}

func TestEnsure_CorruptArchive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not a gzip stream"))
	}))
	defer srv.Close()

	p := modelcache.NewProvisioner(modelcache.Config{
		CacheRoot:  t.TempDir(),
		ArchiveURL: srv.URL + "/sensevoice.tar.gz",
	})

	_, err := p.Ensure(context.Background())
	if err == nil {
		t.Fatal("expected error for corrupt archive")
	}
}

func TestEnsure_ArchiveMissingMarker(t *testing.T) {
	archive := testutil.TarGz(t, map[string][]byte{
		"sensevoice/tokens.txt": []byte("tokens only"),
	})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(archive)
	}))
	defer srv.Close()

	p := modelcache.NewProvisioner(modelcache.Config{
		CacheRoot:  t.TempDir(),
		ArchiveURL: srv.URL + "/sensevoice.tar.gz",
	})

	_, err := p.Ensure(context.Background())
	if err == nil {
		t.Fatal("expected error when extracted bundle lacks the model artifact")
	}
}

func TestEnsure_CanceledContext(t *testing.T) {
	archive := bundleArchive(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(archive)
	}))
	defer srv.Close()

	p := modelcache.NewProvisioner(modelcache.Config{
		CacheRoot:  t.TempDir(),
		ArchiveURL: srv.URL + "/sensevoice.tar.gz",
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Ensure(ctx); err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestConfig_Defaults(t *testing.T) {
	cfg := modelcache.Config{}
	cfg.ApplyDefaults()

	if cfg.ArchiveURL != modelcache.DefaultArchiveURL {
		t.Errorf("unexpected archive URL: %s", cfg.ArchiveURL)
	}
	if cfg.ModelDir != "sensevoice" {
		t.Errorf("unexpected model dir: %s", cfg.ModelDir)
	}
	if cfg.ModelFile != modelcache.ArtifactQuantModel {
		t.Errorf("unexpected model file: %s", cfg.ModelFile)
	}
	if cfg.CacheRoot == "" {
		t.Error("expected cache root default")
	}
}
