package archive

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// contentEntry builds an in-memory file entry for writer tests.
func contentEntry(name, data string) Entry {
	e := Entry{Name: name, Size: uint64(len(data))}
	if len(data) > 0 {
		e.Open = func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(data)), nil
		}
	}
	return e
}

func TestWriterRoundTrip(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "out.zip")

	entries := []Entry{
		contentEntry("x.txt", "hi"),
		{Name: "emptydir", IsDir: true},
		contentEntry("y.bin", ""),
		contentEntry("sub/nested.txt", "nested content"),
	}

	w, err := Create(dest, 9)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	for _, e := range entries {
		if err := w.Append(e); err != nil {
			t.Fatalf("Append(%q) failed: %v", e.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	r, err := OpenReader(dest)
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer r.Close()

	if r.Len() != len(entries) {
		t.Fatalf("Len() = %d, expected %d", r.Len(), len(entries))
	}

	i := 0
	for got := range r.Iterate {
		want := entries[i]
		if got.Name != want.Name {
			t.Errorf("entry %d name = %q, expected %q", i, got.Name, want.Name)
		}
		if got.IsDir != want.IsDir {
			t.Errorf("entry %q IsDir = %v, expected %v", got.Name, got.IsDir, want.IsDir)
		}
		if got.Size != want.Size {
			t.Errorf("entry %q size = %d, expected %d", got.Name, got.Size, want.Size)
		}
		if (got.Open == nil) != (want.IsDir || want.Size == 0) {
			t.Errorf("entry %q content presence is wrong", got.Name)
		}
		i++
	}
}

func TestWriterPreservesContent(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "content.zip")

	payload := strings.Repeat("repacker test payload\n", 512)
	w, err := Create(dest, 6)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := w.Append(contentEntry("data.txt", payload)); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	r, err := OpenReader(dest)
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer r.Close()

	for e := range r.Iterate {
		rc, err := e.Open()
		if err != nil {
			t.Fatalf("Open entry failed: %v", err)
		}
		got, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read entry failed: %v", err)
		}
		if string(got) != payload {
			t.Errorf("entry content does not round-trip (%d bytes, expected %d)", len(got), len(payload))
		}
	}
}

func TestCreateRejectsBadLevel(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		level   int
		wantErr bool
	}{
		{name: "store level", level: 0, wantErr: false},
		{name: "best compression", level: 9, wantErr: false},
		{name: "negative level", level: -1, wantErr: true},
		{name: "level too high", level: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := Create(filepath.Join(dir, tt.name+".zip"), tt.level)
			if (err != nil) != tt.wantErr {
				t.Errorf("Create(level=%d) error = %v, wantErr %v", tt.level, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidLevel) {
				t.Errorf("Create(level=%d) error = %v, want ErrInvalidLevel", tt.level, err)
			}
			if err == nil {
				w.Discard()
			}
		})
	}
}

func TestWriterCommitIsAtomic(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "atomic.zip")

	w, err := Create(dest, 9)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := w.Append(contentEntry("a.txt", "content")); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	// Nothing may exist under the final name until Close commits.
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Errorf("destination exists before Close (stat err = %v)", err)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	dirents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(dirents) != 1 || dirents[0].Name() != "atomic.zip" {
		t.Errorf("directory not clean after commit: %v", dirents)
	}
}

func TestWriterDiscardLeavesNothing(t *testing.T) {
	dir := t.TempDir()

	w, err := Create(filepath.Join(dir, "gone.zip"), 9)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := w.Append(contentEntry("a.txt", "content")); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	w.Discard()

	dirents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(dirents) != 0 {
		t.Errorf("directory not empty after Discard: %v", dirents)
	}
}

func TestWriterRejectsUseAfterClose(t *testing.T) {
	dir := t.TempDir()

	w, err := Create(filepath.Join(dir, "closed.zip"), 9)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if err := w.Append(contentEntry("late.txt", "x")); !errors.Is(err, ErrWriterClosed) {
		t.Errorf("Append after Close error = %v, want ErrWriterClosed", err)
	}
	if err := w.Close(); !errors.Is(err, ErrWriterClosed) {
		t.Errorf("second Close error = %v, want ErrWriterClosed", err)
	}
}
