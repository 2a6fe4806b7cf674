// Package storage keeps uploaded carousel images on the local disk.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/intranet-portal/portal-api/internal/core/domain"
	"github.com/intranet-portal/portal-api/internal/core/ports"
)

// sniffLen is how much of the upload is read to detect its type.
const sniffLen = 3072

var allowedImages = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// LocalImageStore writes images under Dir and serves them from URLPrefix.
type LocalImageStore struct {
	dir       string
	urlPrefix string
	maxBytes  int64
}

var _ ports.ImageStore = (*LocalImageStore)(nil)

func NewLocalImageStore(dir, urlPrefix string, maxBytes int64) (*LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalImageStore{dir: dir, urlPrefix: urlPrefix, maxBytes: maxBytes}, nil
}

// Save checks the content type, stores the image as image-<uuid><ext> and
// returns its public URL. The original filename is not trusted.
func (s *LocalImageStore) Save(ctx context.Context, _ string, r io.Reader) (string, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]
	if n == 0 {
		return "", domain.NewValidationError("La imagen está vacía")
	}

	ext, ok := allowedImages[mimetype.Detect(head).String()]
	if !ok {
		return "", domain.NewValidationError("Formato de imagen no soportado")
	}

	name := "image-" + uuid.NewString() + ext
	full := filepath.Join(s.dir, name)
	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}

	src := io.MultiReader(bytes.NewReader(head), r)
	if s.maxBytes > 0 {
		src = io.LimitReader(src, s.maxBytes+1)
	}
	written, copyErr := io.Copy(f, src)
	closeErr := f.Close()
	switch {
	case copyErr != nil:
		_ = os.Remove(full)
		return "", fmt.Errorf("write image: %w", copyErr)
	case closeErr != nil:
		_ = os.Remove(full)
		return "", fmt.Errorf("close image: %w", closeErr)
	case s.maxBytes > 0 && written > s.maxBytes:
		_ = os.Remove(full)
		return "", domain.NewValidationError("La imagen excede el tamaño permitido")
	case ctx.Err() != nil:
		_ = os.Remove(full)
		return "", ctx.Err()
	}

	return path.Join("/", strings.Trim(s.urlPrefix, "/"), name), nil
}

// Delete removes an image previously returned by Save. URLs outside the
// store's prefix are rejected.
func (s *LocalImageStore) Delete(_ context.Context, url string) error {
	prefix := path.Join("/", strings.Trim(s.urlPrefix, "/"))
	if prefix != "/" {
		prefix += "/"
	}
	name, ok := strings.CutPrefix(path.Clean("/"+strings.TrimPrefix(url, "/")), prefix)
	if !ok || name == "" || strings.Contains(name, "/") {
		return fmt.Errorf("image %q is not served by this store", url)
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove image: %w", err)
	}
	return nil
}
