// Package util provides the small filesystem and formatting helpers shared
// across repacker.
//
// It carries the pieces that sit below the pipeline: byte-for-byte file
// copying with atomic commit semantics, free-space reporting for the
// destination volume, and the human-readable byte formatting the logs use.
// Nothing here knows about jobs, treatments, or container formats.
package util
