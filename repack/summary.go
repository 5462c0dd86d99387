package repack

import "time"

// Summary aggregates the outcomes of one run.
type Summary struct {
	Files       int
	Copied      int // includes downgraded jobs
	Transcoded  int
	Wrapped     int
	Downgraded  int
	Failed      int
	SourceBytes int64
	DestBytes   int64
	Elapsed     time.Duration
}

// Add folds one outcome in. The Runner's collector goroutine is the only
// caller, so Add needs no locking.
func (s *Summary) Add(o Outcome) {
	s.Files++
	s.SourceBytes += o.Job.Size
	if o.Err != nil {
		s.Failed++
		return
	}
	s.DestBytes += o.DestBytes
	if o.Downgraded() {
		s.Downgraded++
	}
	switch o.Applied {
	case TreatCopy:
		s.Copied++
	case TreatTranscode:
		s.Transcoded++
	case TreatWrap:
		s.Wrapped++
	}
}

// Ok reports whether every job landed without an unrecovered error.
func (s Summary) Ok() bool {
	return s.Failed == 0
}
