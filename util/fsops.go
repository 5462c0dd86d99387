package util

import (
	"io"
	"os"
	"path/filepath"
)

// CopyFile mirrors src to dst byte for byte and reports the bytes written.
// Data lands in a hidden temp file beside dst and is renamed into place
// after a sync, so a failed copy never leaves a partial file under the
// final name. A symlinked source is followed; the destination is always a
// regular file.
func CopyFile(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".tmp-*")
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(tmp, in)
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return 0, err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		return 0, err
	}
	return n, nil
}
