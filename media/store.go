package media

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Store abstracts where uploaded bytes live. Stored paths returned by Save
// always contain the "/uploads/" marker segment so PublicURL can derive the
// served URL; Open and Delete take that URL path back.
type Store interface {
	// EnsureBuckets idempotently creates every known bucket. Called once at
	// startup, never from the per-upload write path.
	EnsureBuckets(ctx context.Context, buckets []string) error
	// Save writes data under the bucket and returns the stored path.
	Save(ctx context.Context, bucket, filename string, data io.Reader, size int64, contentType string) (string, error)
	// Open retrieves an asset by its public URL path ("/uploads/...").
	Open(ctx context.Context, urlPath string) (io.ReadCloser, error)
	// Delete removes an asset by its public URL path. Missing assets are not
	// an error.
	Delete(ctx context.Context, urlPath string) error
}

// LocalStorage implements Store on the local filesystem. Files live under
// <basePath>/uploads/<bucket>/<filename>.
type LocalStorage struct {
	basePath string // absolute path that contains the "uploads" tree
}

// NewLocalStorage creates a local filesystem store rooted at basePath.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	absBasePath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("invalid base storage path '%s': %w", basePath, err)
	}

	if err := os.MkdirAll(absBasePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base storage directory '%s': %w", absBasePath, err)
	}

	log.Printf("media.store: Initialized LocalStorage at %s", absBasePath)
	return &LocalStorage{basePath: absBasePath}, nil
}

func (ls *LocalStorage) EnsureBuckets(_ context.Context, buckets []string) error {
	for _, bucket := range buckets {
		dir := filepath.Join(ls.basePath, "uploads", bucket)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to ensure bucket directory '%s': %w", dir, err)
		}
	}
	return nil
}

func (ls *LocalStorage) Save(_ context.Context, bucket, filename string, data io.Reader, _ int64, _ string) (string, error) {
	targetDir := filepath.Join(ls.basePath, "uploads", bucket)
	if !strings.HasPrefix(filepath.Clean(targetDir), ls.basePath) {
		return "", fmt.Errorf("invalid bucket '%s'", bucket)
	}

	fullSavePath := filepath.Join(targetDir, filepath.Base(filename))

	outFile, err := os.Create(fullSavePath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file '%s': %w", fullSavePath, err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, data); err != nil {
		outFile.Close()
		os.Remove(fullSavePath)
		return "", fmt.Errorf("failed to write data to '%s': %w", fullSavePath, err)
	}

	return fullSavePath, nil
}

func (ls *LocalStorage) Open(_ context.Context, urlPath string) (io.ReadCloser, error) {
	fullPath, err := ls.resolve(urlPath)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("asset not found at '%s': %w", urlPath, err)
		}
		return nil, fmt.Errorf("failed to open asset '%s': %w", urlPath, err)
	}
	return file, nil
}

func (ls *LocalStorage) Delete(_ context.Context, urlPath string) error {
	fullPath, err := ls.resolve(urlPath)
	if err != nil {
		return err
	}
	err = os.Remove(fullPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete asset '%s': %w", urlPath, err)
	}
	if err == nil {
		log.Printf("media.store: Deleted asset %s", fullPath)
	}
	return nil
}

// resolve maps a public URL path to an absolute filesystem path, refusing
// anything that escapes the base directory.
func (ls *LocalStorage) resolve(urlPath string) (string, error) {
	cleanRelative := filepath.Clean(strings.TrimPrefix(urlPath, "/"))
	fullPath := filepath.Join(ls.basePath, cleanRelative)

	absFullPath, err := filepath.Abs(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path for '%s': %w", urlPath, err)
	}
	if !strings.HasPrefix(absFullPath, ls.basePath) {
		return "", fmt.Errorf("invalid path: access denied for '%s'", urlPath)
	}
	return absFullPath, nil
}

// BasePath returns the storage root; the asset server serves from here.
func (ls *LocalStorage) BasePath() string {
	return ls.basePath
}
