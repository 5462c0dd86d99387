package repack

import (
	"path/filepath"
	"strings"

	"github.com/noisysoil/repacker/archive"
)

// Treatment is the disposition chosen for one source file.
type Treatment int

const (
	// TreatCopy mirrors the file byte for byte.
	TreatCopy Treatment = iota
	// TreatTranscode rebuilds a readable container as a normalized one.
	TreatTranscode
	// TreatWrap stores the file as the sole entry of a new container.
	TreatWrap
)

func (t Treatment) String() string {
	switch t {
	case TreatCopy:
		return "copy"
	case TreatTranscode:
		return "transcode"
	case TreatWrap:
		return "wrap"
	}
	return "unknown"
}

// Classify decides how a single file is carried to the destination. The
// rules apply in order: oversized files are copied, files outside the
// allow-list are copied, readable containers are transcoded, and whatever
// remains of the allow-list is wrapped. Pure function of its inputs; every
// file maps to exactly one Treatment.
func Classify(name string, size int64, cfg Config) Treatment {
	if size > cfg.MaxFileSize {
		return TreatCopy
	}
	ext := strings.ToLower(filepath.Ext(name))
	if !cfg.Extensions[ext] {
		return TreatCopy
	}
	if archive.CanRead(ext) {
		return TreatTranscode
	}
	return TreatWrap
}
