package archive

import (
	"archive/zip"
	"io"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
)

// ReadExtensions lists the input container formats OpenReader understands,
// lowercase with leading dot.
var ReadExtensions = []string{".7z", ".zip"}

// CanRead reports whether ext (case-insensitive, leading dot) names a
// container format this package can enumerate.
func CanRead(ext string) bool {
	ext = strings.ToLower(ext)
	for _, known := range ReadExtensions {
		if ext == known {
			return true
		}
	}
	return false
}

// Reader enumerates the members of one container archive.
type Reader struct {
	path    string
	entries []Entry
	closer  io.Closer
}

// OpenReader opens the container at path, picking the backend from the file
// extension. The caller must Close the Reader; content streams obtained from
// its entries are only valid before Close.
func OpenReader(path string) (*Reader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		return openZip(path)
	case ".7z":
		return openSevenZip(path)
	default:
		return nil, &ReadError{Path: path, Err: ErrUnsupportedFormat}
	}
}

// Iterate yields entries in container order, for use as a range expression:
//
//	for entry := range r.Iterate { ... }
//
// Content is single-pass. In-order consumption is also the cheap path for
// solid 7z input, where random access re-decompresses the block.
func (r *Reader) Iterate(yield func(Entry) bool) {
	for _, e := range r.entries {
		if !yield(e) {
			return
		}
	}
}

// Len reports the number of entries in the container.
func (r *Reader) Len() int { return len(r.entries) }

// ContentSize reports the aggregate uncompressed size of the non-directory
// entries, computed from headers without touching content.
func (r *Reader) ContentSize() uint64 {
	var total uint64
	for _, e := range r.entries {
		if !e.IsDir {
			total += e.Size
		}
	}
	return total
}

// Close releases the underlying container file.
func (r *Reader) Close() error {
	return r.closer.Close()
}

func openZip(path string) (*Reader, error) {
	zrc, err := zip.OpenReader(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	entries := make([]Entry, 0, len(zrc.File))
	for _, f := range zrc.File {
		name, isDir := normalizeName(f.Name, f.FileInfo().IsDir())
		if name == "" {
			// zip can carry a bare root marker; it is not a member
			continue
		}
		e := Entry{Name: name, IsDir: isDir}
		if !isDir {
			e.Size = f.UncompressedSize64
		}
		if !isDir && e.Size > 0 {
			e.Open = openEntryFunc(path, f.Open)
		}
		entries = append(entries, e)
	}
	return &Reader{path: path, entries: entries, closer: zrc}, nil
}

func openSevenZip(path string) (*Reader, error) {
	szr, err := sevenzip.OpenReader(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	entries := make([]Entry, 0, len(szr.File))
	for _, f := range szr.File {
		fi := f.FileInfo()
		name, isDir := normalizeName(f.Name, fi.IsDir())
		if name == "" {
			continue
		}
		e := Entry{Name: name, IsDir: isDir}
		if !isDir {
			e.Size = uint64(fi.Size())
		}
		if !isDir && e.Size > 0 {
			e.Open = openEntryFunc(path, f.Open)
		}
		entries = append(entries, e)
	}
	return &Reader{path: path, entries: entries, closer: szr}, nil
}

// openEntryFunc wraps a backend's per-entry opener so failures carry the
// container path.
func openEntryFunc(path string, open func() (io.ReadCloser, error)) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) {
		rc, err := open()
		if err != nil {
			return nil, &ReadError{Path: path, Err: err}
		}
		return rc, nil
	}
}
