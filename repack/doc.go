// Package repack implements the mirroring pipeline: walk a source tree,
// decide a per-file treatment, and carry every file into the destination
// tree under a bounded worker pool.
//
// The pipeline has four stages, leaves first:
//
//   - Classify is a pure decision: copy verbatim, transcode a container,
//     or wrap a loose file into a fresh container.
//   - Walk enumerates the source tree and emits one immutable Job per
//     regular file.
//   - Engine executes a single Job against the archive codec and the
//     filesystem, downgrading container failures to verbatim copies so a
//     broken archive never aborts a run or survives as a half-written one.
//   - Runner fans Jobs out to at most Config.Workers goroutines, using
//     blocking slot acquisition as the only backpressure, and folds every
//     Outcome into a Summary.
//
// All stages read the same immutable Config; nothing here mutates shared
// state beyond the Runner's outcome collector.
package repack
