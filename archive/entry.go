package archive

import (
	"io"
	"strings"
)

// Entry describes one member of a container in format-neutral terms.
//
// Directory markers and zero-length files carry no content, so Open is nil
// exactly when IsDir is true or Size is zero; both are still real entries
// and a Writer records them as such. For everything else Open returns a
// single-pass content stream owned by the Reader that produced the Entry —
// consume it before advancing to the next entry.
type Entry struct {
	Name  string // slash-separated, no trailing slash
	IsDir bool
	Size  uint64 // uncompressed size from the container header
	Open  func() (io.ReadCloser, error)
}

// normalizeName converts a container member name to forward-slash form and
// folds zip's trailing-slash directory convention into the IsDir flag.
func normalizeName(name string, isDir bool) (string, bool) {
	name = strings.ReplaceAll(name, `\`, "/")
	if strings.HasSuffix(name, "/") {
		isDir = true
		name = strings.TrimSuffix(name, "/")
	}
	return name, isDir
}
