// Package archive reads container archives entry-by-entry and writes the
// normalized output container.
//
// This package is the codec layer of repacker. It understands two input
// formats (zip via the standard library, 7z via github.com/bodgit/sevenzip)
// and emits exactly one output format: zip with DEFLATE compression at a
// caller-chosen level, backed by github.com/klauspost/compress.
//
// Key Components:
//
// Reading:
//   - OpenReader picks the backend from the file extension
//   - Entries are format-neutral (Entry), yielded in container order
//   - Directory markers and zero-length files survive as real entries
//   - Content is lazy and single-pass: consume before advancing
//
// Writing:
//   - Create opens a Writer that accumulates in a hidden temp file
//   - Close commits with an atomic rename; Discard abandons cleanly
//   - A partially written archive never appears under the final name
//
// Errors carry the archive path and split along the read/write boundary
// (ReadError, WriteError) so callers can decide the fallback tier without
// string matching.
package archive
