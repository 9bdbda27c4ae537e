package library

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestLibrary(t *testing.T) (*Library, string, string) {
	t.Helper()
	base := t.TempDir()
	downloads := filepath.Join(base, "downloads")
	trimmed := filepath.Join(base, "trimmed")
	lib, err := New(downloads, trimmed)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return lib, downloads, trimmed
}

func mustWrite(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestNewCreatesDirectories(t *testing.T) {
	_, downloads, trimmed := newTestLibrary(t)
	for _, dir := range []string{downloads, trimmed} {
		fi, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("stat %s: %v", dir, err)
		}
		if !fi.IsDir() {
			t.Errorf("%s is not a directory", dir)
		}
	}
}

func TestDownloads(t *testing.T) {
	lib, downloads, _ := newTestLibrary(t)

	mustWrite(t, filepath.Join(downloads, "b.mp4"), []byte("bbbb"))
	mustWrite(t, filepath.Join(downloads, "a.mp4"), []byte("aa"))
	if err := os.Mkdir(filepath.Join(downloads, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}

	entries, err := lib.Downloads()
	if err != nil {
		t.Fatalf("Downloads: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2 (directories skipped)", len(entries))
	}
	if entries[0].Name != "a.mp4" || entries[1].Name != "b.mp4" {
		t.Errorf("entries not sorted by name: %v, %v", entries[0].Name, entries[1].Name)
	}
	if entries[0].Bytes != 2 {
		t.Errorf("a.mp4 Bytes = %d, want 2", entries[0].Bytes)
	}
}

func TestTrimmedEmpty(t *testing.T) {
	lib, _, _ := newTestLibrary(t)
	entries, err := lib.Trimmed()
	if err != nil {
		t.Fatalf("Trimmed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries in fresh dir, want 0", len(entries))
	}
}

func TestResolveDownload(t *testing.T) {
	lib, downloads, _ := newTestLibrary(t)
	mustWrite(t, filepath.Join(downloads, "clip.mp4"), []byte("data"))

	t.Run("plain name resolves", func(t *testing.T) {
		path, err := lib.ResolveDownload("clip.mp4")
		if err != nil {
			t.Fatalf("ResolveDownload: %v", err)
		}
		if path != filepath.Join(downloads, "clip.mp4") {
			t.Errorf("path = %q", path)
		}
	})

	t.Run("rejects traversal and separators", func(t *testing.T) {
		for _, name := range []string{"", ".", "..", "../clip.mp4", "sub/clip.mp4", "/etc/passwd"} {
			if _, err := lib.ResolveDownload(name); !errors.Is(err, ErrBadName) {
				t.Errorf("ResolveDownload(%q) err = %v, want ErrBadName", name, err)
			}
		}
	})

	t.Run("missing file surfaces stat error", func(t *testing.T) {
		_, err := lib.ResolveDownload("nope.mp4")
		if err == nil {
			t.Fatal("expected error for missing file")
		}
		if !os.IsNotExist(err) {
			t.Errorf("err = %v, want not-exist", err)
		}
	})

	t.Run("rejects non-regular file", func(t *testing.T) {
		if err := os.Mkdir(filepath.Join(downloads, "adir"), 0o755); err != nil {
			t.Fatal(err)
		}
		if _, err := lib.ResolveDownload("adir"); !errors.Is(err, ErrBadName) {
			t.Errorf("err = %v, want ErrBadName", err)
		}
	})
}

func TestReadAll(t *testing.T) {
	lib, _, trimmed := newTestLibrary(t)
	mustWrite(t, filepath.Join(trimmed, "trimmed_clip.mp4"), []byte("video bytes"))

	path, err := lib.ResolveTrimmed("trimmed_clip.mp4")
	if err != nil {
		t.Fatalf("ResolveTrimmed: %v", err)
	}
	data, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(data) != "video bytes" {
		t.Errorf("data = %q", data)
	}
}
