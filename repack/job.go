package repack

import "github.com/google/uuid"

// Job is one source file queued for mirroring. The walker creates it,
// exactly one worker consumes it, and nothing changes it in between.
type Job struct {
	ID     uuid.UUID
	Source string // path to the source file
	RelDir string // directory relative to the source root, "" at the root
	Base   string // file name with extension
	Size   int64
}

// Outcome reports how one Job ended. Applied differs from Planned when a
// container failure forced the verbatim-copy fallback; Err is set only
// when even that fallback failed.
type Outcome struct {
	Job       Job
	Planned   Treatment
	Applied   Treatment
	DestPath  string
	DestBytes int64
	Err       error
}

// Downgraded reports whether the job fell back from a container treatment
// to a plain copy.
func (o Outcome) Downgraded() bool {
	return o.Err == nil && o.Planned != o.Applied
}
