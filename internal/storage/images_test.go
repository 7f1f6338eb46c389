package storage

import (
    "os"
    "path/filepath"
    "strings"
    "testing"
)

// TestImageStoreSave writes an upload under a fresh key and returns a
// URL below the public path.
func TestImageStoreSave(t *testing.T) {
    dir := t.TempDir()
    store, err := NewImageStore(dir, "")
    if err != nil {
        t.Fatalf("NewImageStore returned error: %v", err)
    }

    url, err := store.Save("registan.JPG", strings.NewReader("not really a jpeg"))
    if err != nil {
        t.Fatalf("Save returned error: %v", err)
    }
    if !strings.HasPrefix(url, PublicPath+"/") {
        t.Fatalf("url %q must live under %s", url, PublicPath)
    }
    if !strings.HasSuffix(url, ".jpg") {
        t.Fatalf("extension should be kept lower case, got %q", url)
    }

    name := filepath.Base(url)
    data, err := os.ReadFile(filepath.Join(dir, name))
    if err != nil {
        t.Fatalf("stored file missing: %v", err)
    }
    if string(data) != "not really a jpeg" {
        t.Fatalf("stored content mismatch: %q", data)
    }
}

// TestImageStoreSaveUniqueKeys never reuses a key for the same filename.
func TestImageStoreSaveUniqueKeys(t *testing.T) {
    store, err := NewImageStore(t.TempDir(), "")
    if err != nil {
        t.Fatalf("NewImageStore returned error: %v", err)
    }
    a, err := store.Save("cover.png", strings.NewReader("a"))
    if err != nil {
        t.Fatalf("first Save returned error: %v", err)
    }
    b, err := store.Save("cover.png", strings.NewReader("b"))
    if err != nil {
        t.Fatalf("second Save returned error: %v", err)
    }
    if a == b {
        t.Fatalf("two uploads produced the same url: %q", a)
    }
}

// TestImageStoreSaveBaseURL prefixes returned URLs with the external
// base when configured.
func TestImageStoreSaveBaseURL(t *testing.T) {
    store, err := NewImageStore(t.TempDir(), "https://cdn.example.com/")
    if err != nil {
        t.Fatalf("NewImageStore returned error: %v", err)
    }
    url, err := store.Save("photo.webp", strings.NewReader("x"))
    if err != nil {
        t.Fatalf("Save returned error: %v", err)
    }
    if !strings.HasPrefix(url, "https://cdn.example.com"+PublicPath+"/") {
        t.Fatalf("unexpected url %q", url)
    }
}

// TestImageStoreRejectsNonImages refuses extensions outside the
// allow-list.
func TestImageStoreRejectsNonImages(t *testing.T) {
    store, err := NewImageStore(t.TempDir(), "")
    if err != nil {
        t.Fatalf("NewImageStore returned error: %v", err)
    }
    for _, name := range []string{"notes.txt", "payload.exe", "archive.tar.gz", "noext"} {
        if _, err := store.Save(name, strings.NewReader("x")); err != ErrUnsupportedType {
            t.Errorf("Save(%q) = %v, want ErrUnsupportedType", name, err)
        }
    }
}
