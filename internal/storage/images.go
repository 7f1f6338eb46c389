// Package storage implements the tour-images store.  Admin uploads are
// written under a generated unique key that is never reused, and the
// resulting public URL is stored on the owning row.  The store is a
// plain directory served by the HTTP server's static route; the
// contract (write under a fresh key, resolve a public URL) is the same
// one a hosted bucket would offer.
package storage

import (
    "errors"
    "io"
    "os"
    "path"
    "path/filepath"
    "strings"

    "github.com/davronbekm/silkroad-booking/internal/utils"
)

// PublicPath is the URL path prefix the upload directory is served
// under.
const PublicPath = "/uploads"

// ErrUnsupportedType is returned for uploads that are not images.
var ErrUnsupportedType = errors.New("unsupported file type")

// allowed image extensions, lower case.
var allowedExt = map[string]bool{
    ".jpg":  true,
    ".jpeg": true,
    ".png":  true,
    ".webp": true,
    ".gif":  true,
}

// ImageStore writes uploaded images into a directory and builds their
// public URLs.
type ImageStore struct {
    dir     string
    baseURL string
}

// NewImageStore ensures the upload directory exists.  baseURL may be
// empty, in which case returned URLs are server-relative.
func NewImageStore(dir, baseURL string) (*ImageStore, error) {
    if err := os.MkdirAll(dir, 0o755); err != nil {
        return nil, err
    }
    return &ImageStore{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Dir returns the directory uploads are written to, for the static
// file route.
func (s *ImageStore) Dir() string { return s.dir }

// Save stores the content under a fresh random key, keeping the
// original extension, and returns the public URL.  Keys are 16 random
// bytes, so collisions and overwrites do not occur in practice.
func (s *ImageStore) Save(filename string, r io.Reader) (string, error) {
    ext := strings.ToLower(filepath.Ext(filename))
    if !allowedExt[ext] {
        return "", ErrUnsupportedType
    }
    key, err := utils.RandomKey(16)
    if err != nil {
        return "", err
    }
    name := key + ext
    f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
    if err != nil {
        return "", err
    }
    if _, err := io.Copy(f, r); err != nil {
        f.Close()
        _ = os.Remove(f.Name())
        return "", err
    }
    if err := f.Close(); err != nil {
        return "", err
    }
    return s.baseURL + path.Join(PublicPath, name), nil
}
