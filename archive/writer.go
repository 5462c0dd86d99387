package archive

import (
	"archive/zip"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/flate"
)

// Extension is the suffix of every normalized container this package writes.
const Extension = ".zip"

// Writer streams entries into a normalized container. Bytes accumulate in a
// hidden temp file beside the destination; Close commits it with a rename,
// so an interrupted or failed build never leaves a partial archive under
// the final name.
type Writer struct {
	path string
	tmp  *os.File
	zw   *zip.Writer
	done bool
}

// Create starts a normalized container that Close will commit to path.
// level is the DEFLATE level, 0 (store) through 9 (best compression).
func Create(path string, level int) (*Writer, error) {
	if level < 0 || level > 9 {
		return nil, &WriteError{Path: path, Err: ErrInvalidLevel}
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return nil, &WriteError{Path: path, Err: err}
	}
	zw := zip.NewWriter(tmp)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, level)
	})
	return &Writer{path: path, tmp: tmp, zw: zw}, nil
}

// Append writes one entry. Directory entries become true directory markers
// and zero-length entries become real empty members, so the entry set
// round-trips exactly. Content is streamed, never buffered whole.
func (w *Writer) Append(e Entry) error {
	if w.done {
		return &WriteError{Path: w.path, Err: ErrWriterClosed}
	}
	hdr := &zip.FileHeader{Name: e.Name, Method: zip.Deflate}
	if e.IsDir {
		hdr.Name += "/"
		hdr.Method = zip.Store
		hdr.SetMode(fs.ModeDir | 0o755)
	} else {
		if e.Size == 0 {
			hdr.Method = zip.Store
		}
		hdr.SetMode(0o644)
	}
	fw, err := w.zw.CreateHeader(hdr)
	if err != nil {
		return &WriteError{Path: w.path, Err: err}
	}
	if e.IsDir || e.Open == nil {
		return nil
	}
	rc, err := e.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	if _, err := io.Copy(fw, rc); err != nil {
		return &WriteError{Path: w.path, Err: err}
	}
	return nil
}

// Close finalizes the container, syncs it, and renames it into place. The
// Writer is unusable afterwards.
func (w *Writer) Close() error {
	if w.done {
		return &WriteError{Path: w.path, Err: ErrWriterClosed}
	}
	w.done = true
	if err := w.zw.Close(); err != nil {
		w.remove()
		return &WriteError{Path: w.path, Err: err}
	}
	if err := w.tmp.Sync(); err != nil {
		w.remove()
		return &WriteError{Path: w.path, Err: err}
	}
	if err := w.tmp.Close(); err != nil {
		os.Remove(w.tmp.Name())
		return &WriteError{Path: w.path, Err: err}
	}
	if err := os.Rename(w.tmp.Name(), w.path); err != nil {
		os.Remove(w.tmp.Name())
		return &WriteError{Path: w.path, Err: err}
	}
	return nil
}

// Discard abandons the container and removes the temp file. Call it after a
// failed Append; calling it after Close is a no-op.
func (w *Writer) Discard() {
	if w.done {
		return
	}
	w.done = true
	w.remove()
}

func (w *Writer) remove() {
	w.tmp.Close()
	os.Remove(w.tmp.Name())
}
