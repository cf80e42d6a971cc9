// Copyright (c) 2024 Neomantra Corp

package source

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
)

func TestOpen_PlainFilePassesThroughUnmodified(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "feed.itch")
	want := []byte("raw itch bytes")
	if err := os.WriteFile(path, want, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	rc, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer rc.Close()

	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(got) != string(want) {
		t.Fatalf("Open() content = %q, want %q", got, want)
	}
}

func TestOpen_GzipSuffixDecompressesTransparently(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "feed.itch.gz")
	want := []byte("compressed itch bytes, repeated for a non-trivial gzip stream")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	gz := gzip.NewWriter(f)
	if _, err := gz.Write(want); err != nil {
		t.Fatalf("gzip Write: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("gzip Close: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	rc, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer rc.Close()

	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(got) != string(want) {
		t.Fatalf("Open() content = %q, want %q", got, want)
	}
}

func TestOpen_MissingFileReturnsError(t *testing.T) {
	if _, err := Open("/no/such/path.itch"); err == nil {
		t.Fatalf("Open() on a missing file should return an error")
	}
}
