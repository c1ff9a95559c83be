// Package storage persists uploaded item photos and hands back opaque
// reference strings. The rest of the system treats references as-is; only
// this package knows they are paths under the upload directory.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// thumbWidth is the bounding width for generated thumbnails; height scales
// to preserve aspect ratio.
const thumbWidth = 480

// allowedExtensions maps accepted upload extensions. Anything else is
// rejected before the file is decoded.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// ImageStore saves uploaded photos and returns a stable reference string.
type ImageStore interface {
	// Save decodes the upload, writes the image plus a thumbnail, and
	// returns the public reference for the full-size image.
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
	// Remove deletes the image (and its thumbnail) behind a reference.
	// Removing an unknown reference is not an error.
	Remove(ctx context.Context, ref string) error
}

// DiskStore is an ImageStore backed by a local directory, served by the API
// process under baseURL.
type DiskStore struct {
	dir     string
	baseURL string
}

// NewDiskStore creates the upload directory if needed and returns a store
// writing into it. baseURL is the URL prefix references are built from
// (e.g. "/uploads").
func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Save decodes the upload to verify it is a real image, writes it under a
// generated UUID name, and writes a thumbnail alongside it.
func (s *DiskStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("unsupported image type %q", ext)
	}

	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	name := uuid.New().String() + ext
	fullPath := filepath.Join(s.dir, name)
	if err := imaging.Save(img, fullPath); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}

	thumb := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, s.thumbPath(name)); err != nil {
		_ = os.Remove(fullPath)
		return "", fmt.Errorf("save thumbnail: %w", err)
	}

	return s.baseURL + "/" + name, nil
}

// Remove deletes the stored image and thumbnail behind ref.
func (s *DiskStore) Remove(ctx context.Context, ref string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	name := path.Base(ref)
	if name == "." || name == "/" || name == "" {
		return nil
	}

	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove image: %w", err)
	}
	if err := os.Remove(s.thumbPath(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove thumbnail: %w", err)
	}
	return nil
}

// Dir returns the directory the store writes into, for static file serving.
func (s *DiskStore) Dir() string {
	return s.dir
}

func (s *DiskStore) thumbPath(name string) string {
	ext := filepath.Ext(name)
	return filepath.Join(s.dir, strings.TrimSuffix(name, ext)+"_thumb"+ext)
}
